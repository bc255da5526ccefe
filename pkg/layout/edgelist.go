package layout

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMatrixAsymmetric is returned when the adjacency matrix is not square.
	ErrMatrixAsymmetric = errors.New("adjacency matrix not square")
	// ErrMatrixEmpty is returned for a zero-dimension matrix.
	ErrMatrixEmpty = errors.New("adjacency matrix empty")
)

// springEdge is one undirected attraction spring between two node indices.
type springEdge struct {
	u, v   int
	weight float64
}

// matrixToEdgelist extracts the lower triangle of a symmetric weighted
// adjacency matrix as a spring list. Asymmetric entries are symmetrized by
// taking the midpoint of the two weights. A graph without edges yields an
// empty list; the simulation then runs purely on repulsion.
func matrixToEdgelist(a *mat.Dense) ([]springEdge, error) {
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return nil, ErrMatrixEmpty
	}
	if r != c {
		return nil, ErrMatrixAsymmetric
	}

	var edges []springEdge
	for i := 0; i < r; i++ {
		for j := 0; j < i; j++ {
			w1 := a.At(i, j)
			w2 := a.At(j, i)
			if w1 <= 0 && w2 <= 0 {
				continue
			}
			edges = append(edges, springEdge{u: i, v: j, weight: (w1 + w2) / 2})
		}
	}
	return edges, nil
}
