package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mipviz/mipviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input      string // input LP/MPS file, possibly compressed
	output     string // output PNG path (default: input with format suffix replaced)
	dark       bool   // dark theme
	logScale   bool   // log-scale centrality coloring
	weighted   bool   // weight edges by shared-constraint count
	seed       int64  // layout seed
	iterations int    // layout iteration budget
	size       int    // image edge length in pixels
	noCache    bool   // disable the stage cache
	refresh    bool   // recompute even when cached
}

// renderCommand creates the render command, the main entry point: it runs
// the full parse → graph → analyze → render pipeline and writes a PNG.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		dark:       c.Config.Dark,
		logScale:   c.Config.Log,
		weighted:   c.Config.Weighted,
		seed:       c.Config.Seed,
		iterations: c.Config.Iterations,
		size:       c.Config.Size,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an LP or MPS file as a variable graph image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input file in LP or MPS format (.gz and .tar.gz supported)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file in PNG format (default: input with .png)")
	cmd.Flags().BoolVarP(&opts.logScale, "log", "l", opts.logScale, "use log scale for centrality coloring")
	cmd.Flags().BoolVarP(&opts.dark, "dark", "d", opts.dark, "use dark theme")
	cmd.Flags().BoolVarP(&opts.weighted, "weighted", "w", opts.weighted, "weight edges by number of shared constraints")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "layout random seed")
	cmd.Flags().IntVar(&opts.iterations, "iterations", opts.iterations, "layout iteration budget")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "image edge length in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute all stages, ignoring cached results")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", opts.input))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:      opts.input,
		Output:     opts.output,
		Dark:       opts.dark,
		Log:        opts.logScale,
		Weighted:   opts.weighted,
		Seed:       opts.seed,
		Iterations: opts.iterations,
		Size:       opts.size,
		Refresh:    opts.refresh,
		Logger:     loggerFromContext(ctx),
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", result.OutputPath))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount,
		result.CacheInfo.GraphHit && result.CacheInfo.AnalyzeHit && result.CacheInfo.RenderHit)
	printFile(result.OutputPath)
	return nil
}
