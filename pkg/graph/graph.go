// Package graph projects a parsed model into the undirected variable
// co-occurrence graph that layout, centrality, and rendering consume.
//
// Nodes are variable ids. An edge connects two variables that appear
// together in at least one constraint; its weight is the number of distinct
// constraints in which the pair co-occurs (or a fixed 1 in unweighted mode).
package graph

import (
	"slices"

	"github.com/mipviz/mipviz/pkg/model"
)

// Edge is an undirected edge between two variables. Edges are canonical:
// U is always the lexicographically smaller id, and at most one edge exists
// per unordered pair.
type Edge struct {
	U      string  `json:"u"`
	V      string  `json:"v"`
	Weight float64 `json:"weight"`
}

// Graph is an immutable weighted undirected co-occurrence graph.
// Node order follows variable creation order in the source model; edges are
// sorted by (U, V) so all derived products are deterministic.
type Graph struct {
	nodes     []string
	nodeIndex map[string]int
	edges     []Edge
}

// FromModel projects a model into a co-occurrence graph.
//
// Every unordered pair of distinct variables inside one constraint counts at
// most once for that constraint, no matter how often either variable repeats
// in the row; self-pairs from duplicate tokens are excluded. With weighted
// set, edge weight is the number of constraints the pair shares; otherwise
// every edge has weight 1.
//
// Cost is quadratic in constraint size. A single dense constraint over
// thousands of variables dominates the runtime; that is a property of the
// projection, not something the projector guards against.
func FromModel(m *model.Model, weighted bool) *Graph {
	g := &Graph{
		nodes:     make([]string, m.VariableCount()),
		nodeIndex: make(map[string]int, m.VariableCount()),
	}
	for i, v := range m.Variables() {
		g.nodes[i] = v.ID
		g.nodeIndex[v.ID] = i
	}

	type pair struct{ u, v int }
	counts := make(map[pair]int)
	seen := make(map[pair]bool)
	for _, c := range m.Constraints() {
		clear(seen)
		for i := 0; i < len(c.Variables); i++ {
			for j := i + 1; j < len(c.Variables); j++ {
				u, v := c.Variables[i], c.Variables[j]
				if u == v {
					continue
				}
				if g.nodes[v] < g.nodes[u] {
					u, v = v, u
				}
				p := pair{u, v}
				if seen[p] {
					continue
				}
				seen[p] = true
				counts[p]++
			}
		}
	}

	g.edges = make([]Edge, 0, len(counts))
	for p, n := range counts {
		w := 1.0
		if weighted {
			w = float64(n)
		}
		g.edges = append(g.edges, Edge{U: g.nodes[p.u], V: g.nodes[p.v], Weight: w})
	}
	slices.SortFunc(g.edges, func(a, b Edge) int {
		if a.U != b.U {
			if a.U < b.U {
				return -1
			}
			return 1
		}
		if a.V < b.V {
			return -1
		}
		if a.V > b.V {
			return 1
		}
		return 0
	})
	return g
}

// Nodes returns the node ids in model order.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Nodes() []string { return g.nodes }

// Edges returns the canonical edge list sorted by (U, V).
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeIndex returns the dense index of a node id, if present.
func (g *Graph) NodeIndex(id string) (int, bool) {
	i, ok := g.nodeIndex[id]
	return i, ok
}

// AdjacencyList returns neighbor indices per node index. Both endpoints of
// every edge list each other. The shortest-path algorithms treat the graph
// as unweighted, so weights are not included here.
func (g *Graph) AdjacencyList() [][]int {
	adj := make([][]int, len(g.nodes))
	for _, e := range g.edges {
		u := g.nodeIndex[e.U]
		v := g.nodeIndex[e.V]
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	return adj
}
