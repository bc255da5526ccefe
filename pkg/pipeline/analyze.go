package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mipviz/mipviz/pkg/centrality"
	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/layout"
	"github.com/mipviz/mipviz/pkg/observability"
)

// AnalyzeGraph computes node positions and betweenness centrality. The two
// analyses are independent and run concurrently; if either fails, the whole
// stage fails.
func AnalyzeGraph(ctx context.Context, g *graph.Graph, opts Options) (Analysis, error) {
	opts.SetAnalyzeDefaults()

	var a Analysis
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		observability.Pipeline().OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())
		start := time.Now()
		pos, err := layout.Compute(ctx, g, layout.Config{
			Seed:       opts.Seed,
			Iterations: opts.Iterations,
		})
		observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), err)
		if err != nil {
			return err
		}
		a.Positions = pos
		return nil
	})

	eg.Go(func() error {
		observability.Pipeline().OnCentralityStart(ctx, g.NodeCount())
		start := time.Now()
		bc, err := centrality.Compute(ctx, g)
		observability.Pipeline().OnCentralityComplete(ctx, time.Since(start), err)
		if err != nil {
			return err
		}
		a.Centrality = bc
		return nil
	})

	if err := eg.Wait(); err != nil {
		return Analysis{}, err
	}
	return a, nil
}
