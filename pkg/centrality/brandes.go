// Package centrality computes normalized betweenness centrality with
// Brandes' algorithm.
//
// The graph is treated as unweighted for shortest-path purposes: edge
// weights from co-occurrence counts are a presentation attribute, not a
// distance metric. Per-source contributions are independent, so sources
// are fanned out across workers and summed.
package centrality

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mipviz/mipviz/pkg/graph"
)

// Compute returns one score in [0, 1] per node.
//
// Accumulation is directed-style (every ordered source/target pair counts)
// and the result is divided by (N-1)(N-2), which for undirected graphs is
// equivalent to halving the accumulation and dividing by (N-1)(N-2)/2. A
// node on every shortest path between all other pairs scores exactly 1.
// Graphs with fewer than three nodes, and isolated nodes, score 0.
//
// There is no partial result: cancellation via ctx aborts the whole
// computation and returns the context error.
func Compute(ctx context.Context, g *graph.Graph) (map[string]float64, error) {
	nodes := g.Nodes()
	n := len(nodes)

	out := make(map[string]float64, n)
	for _, id := range nodes {
		out[id] = 0
	}
	if n < 3 {
		return out, nil
	}

	adj := g.AdjacencyList()

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	// Each worker owns a private accumulator; they are summed after the
	// group finishes so no locking happens in the hot loop.
	accums := make([][]float64, workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		acc := make([]float64, n)
		accums[w] = acc
		stride := w
		eg.Go(func() error {
			st := newSourceState(n)
			for s := stride; s < n; s += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				accumulate(adj, s, st, acc)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	scale := 1 / (float64(n-1) * float64(n-2))
	for i, id := range nodes {
		var sum float64
		for _, acc := range accums {
			sum += acc[i]
		}
		out[id] = sum * scale
	}
	return out, nil
}

// sourceState holds the per-source scratch buffers so one worker can reuse
// them across all of its sources.
type sourceState struct {
	dist  []int
	sigma []float64
	delta []float64
	preds [][]int
	stack []int
	queue []int
}

func newSourceState(n int) *sourceState {
	return &sourceState{
		dist:  make([]int, n),
		sigma: make([]float64, n),
		delta: make([]float64, n),
		preds: make([][]int, n),
		stack: make([]int, 0, n),
		queue: make([]int, 0, n),
	}
}

// accumulate adds source s's betweenness contributions to acc.
//
// A breadth-first pass records, for every reachable node, its distance from
// s, the number of shortest paths reaching it (sigma), and its shortest-path
// predecessors. Dependencies are then back-propagated in reverse discovery
// order: each node passes its share of path counts up to its predecessors.
func accumulate(adj [][]int, s int, st *sourceState, acc []float64) {
	n := len(adj)
	for i := 0; i < n; i++ {
		st.dist[i] = -1
		st.sigma[i] = 0
		st.delta[i] = 0
		st.preds[i] = st.preds[i][:0]
	}
	st.stack = st.stack[:0]
	st.queue = st.queue[:0]

	st.dist[s] = 0
	st.sigma[s] = 1
	st.queue = append(st.queue, s)

	for len(st.queue) > 0 {
		v := st.queue[0]
		st.queue = st.queue[1:]
		st.stack = append(st.stack, v)
		for _, w := range adj[v] {
			if st.dist[w] < 0 {
				st.dist[w] = st.dist[v] + 1
				st.queue = append(st.queue, w)
			}
			if st.dist[w] == st.dist[v]+1 {
				st.sigma[w] += st.sigma[v]
				st.preds[w] = append(st.preds[w], v)
			}
		}
	}

	for i := len(st.stack) - 1; i >= 0; i-- {
		w := st.stack[i]
		for _, v := range st.preds[w] {
			st.delta[v] += st.sigma[v] / st.sigma[w] * (1 + st.delta[w])
		}
		if w != s {
			acc[w] += st.delta[w]
		}
	}
}
