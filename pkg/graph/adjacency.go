package graph

import "gonum.org/v1/gonum/mat"

// Adjacency returns the symmetric weighted adjacency matrix of the graph.
// Row/column order matches Nodes(). The layout engine derives its edge list
// from this matrix.
func (g *Graph) Adjacency() *mat.Dense {
	n := len(g.nodes)
	a := mat.NewDense(n, n, nil)
	for _, e := range g.edges {
		u := g.nodeIndex[e.U]
		v := g.nodeIndex[e.V]
		a.Set(u, v, e.Weight)
		a.Set(v, u, e.Weight)
	}
	return a
}
