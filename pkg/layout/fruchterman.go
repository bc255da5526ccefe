// Package layout computes 2D node positions for a co-occurrence graph using
// Fruchterman-Reingold force-directed relaxation.
//
// Every iteration applies a pairwise repulsive force between all nodes and
// an attractive force along every edge, then moves each node by its net
// force capped at an annealing temperature. The temperature cools toward
// zero over the iteration budget, so positions settle; a convergence
// tolerance can stop the simulation earlier once movement dies down.
//
// Positions have no absolute scale. The renderer fits them to its canvas.
package layout

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/mipviz/mipviz/pkg/graph"
)

// Point is a node position in the layout plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config tunes the force simulation. The zero value of any field selects a
// size-dependent default matching the classic algorithm.
type Config struct {
	// Iterations is the simulation budget. Default 500.
	Iterations int

	// MaxDelta is the initial temperature: the maximum distance a node may
	// move in one iteration. Default: the node count.
	MaxDelta float64

	// Area is the size of the square the simulation explores. Default n².
	Area float64

	// CoolExp is the cooling exponent of the annealing schedule. Default 3.
	CoolExp float64

	// RepulseRad is the squared radius at which vertex/vertex repulsion
	// cancels out attraction of adjacent vertices. Default Area·log(n).
	RepulseRad float64

	// Tolerance stops the simulation early once the maximum per-node
	// displacement of an iteration falls below it. Zero disables early stop.
	Tolerance float64

	// Seed makes node placement reproducible. Zero draws a seed from the
	// clock, so two runs will differ.
	Seed int64
}

func (c *Config) applyDefaults(n float64) {
	if c.Iterations == 0 {
		c.Iterations = 500
	}
	if c.MaxDelta == 0 {
		c.MaxDelta = n
	}
	if c.Area == 0 {
		c.Area = n * n
	}
	if c.CoolExp == 0 {
		c.CoolExp = 3
	}
	if c.RepulseRad == 0 {
		c.RepulseRad = c.Area * math.Log(n)
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Compute runs the force simulation for g and returns one position per node.
// The context is checked every iteration; cancellation returns ctx.Err().
//
// A graph without edges still relaxes under pure repulsion, and a single
// node yields a degenerate one-point layout. The force pass is O(n²) per
// iteration, so very large graphs are dominated by the repulsion loop.
func Compute(ctx context.Context, g *graph.Graph, cfg Config) (map[string]Point, error) {
	nodes := g.Nodes()
	nint := len(nodes)
	if nint == 0 {
		return map[string]Point{}, nil
	}
	n := float64(nint)
	cfg.applyDefaults(n)

	edges, err := matrixToEdgelist(g.Adjacency())
	if err != nil {
		return nil, err
	}

	frk2 := cfg.Area / n
	frk := math.Sqrt(frk2)

	// Repulsive force between any two vertices at distance d.
	repulse := func(d float64) float64 {
		return frk2 * (1/d - d*d/cfg.RepulseRad)
	}
	// Attractive force along an edge of the given weight at distance d.
	attract := func(weight, d float64) float64 {
		return weight * d * d / frk
	}
	// Annealing temperature for iteration i.
	cool := func(i int) float64 {
		return cfg.MaxDelta * math.Pow(float64(cfg.Iterations-i)/float64(cfg.Iterations), cfg.CoolExp)
	}

	// Seed starting coordinates on a circle.
	rnd := rand.New(rand.NewSource(cfg.Seed))
	x := make([]float64, nint)
	y := make([]float64, nint)
	twopi := 2 * math.Pi
	for j := 0; j < nint; j++ {
		a := rnd.Float64()
		x[j] = n / twopi * math.Sin(twopi*a)
		y[j] = n / twopi * math.Cos(twopi*a)
	}

	dx := make([]float64, nint)
	dy := make([]float64, nint)

	for i := 0; i < cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for j := range dx {
			dx[j] = 0
			dy[j] = 0
		}

		// Pairwise repulsion. All reads use iteration i's positions; writes
		// only touch the deltas, so the update below stays consistent.
		for j := 0; j < nint; j++ {
			for k := j + 1; k < nint; k++ {
				xd := x[j] - x[k]
				yd := y[j] - y[k]
				ded := euclidean(xd, yd)
				if ded == 0 {
					ded = 1
				}
				xd /= ded
				yd /= ded
				rf := repulse(ded)
				dx[j] += xd * rf
				dx[k] -= xd * rf
				dy[j] += yd * rf
				dy[k] -= yd * rf
			}
		}

		// Attraction along edges.
		for _, e := range edges {
			xd := x[e.u] - x[e.v]
			yd := y[e.u] - y[e.v]
			ded := euclidean(xd, yd)
			if ded == 0 {
				ded = 1
			}
			xd /= ded
			yd /= ded
			af := attract(e.weight, ded)
			dx[e.u] -= xd * af
			dx[e.v] += xd * af
			dy[e.u] -= yd * af
			dy[e.v] += yd * af
		}

		// Cap displacement at the temperature and move the points.
		t := cool(i)
		var maxDisp float64
		for j := 0; j < nint; j++ {
			ded := euclidean(dx[j], dy[j])
			if ded > t {
				scale := t / ded
				dx[j] *= scale
				dy[j] *= scale
				ded = t
			}
			x[j] += dx[j]
			y[j] += dy[j]
			maxDisp = math.Max(maxDisp, ded)
		}

		if cfg.Tolerance > 0 && maxDisp < cfg.Tolerance {
			break
		}
	}

	out := make(map[string]Point, nint)
	for j, id := range nodes {
		out[id] = Point{X: x[j], Y: y[j]}
	}
	return out, nil
}

func euclidean(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}
