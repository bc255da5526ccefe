package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	input    string // input LP/MPS file
	output   string // optional graph JSON export path
	weighted bool   // weight edges by shared-constraint count
	noCache  bool   // disable the stage cache
}

// parseCommand creates the parse command: it builds the co-occurrence graph
// and reports its shape, optionally exporting it as JSON.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{weighted: c.Config.Weighted}

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse an LP or MPS file and report the variable graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input file in LP or MPS format (.gz and .tar.gz supported)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the graph as JSON to this path")
	cmd.Flags().BoolVarP(&opts.weighted, "weighted", "w", opts.weighted, "weight edges by number of shared constraints")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, opts *parseOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	g, m, err := runner.BuildGraph(ctx, pipeline.Options{
		Input:    opts.input,
		Weighted: opts.weighted,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %s", opts.input))

	printSuccess("Built variable graph")
	if m != nil {
		printDetail("%d variables, %d constraints", m.VariableCount(), m.ConstraintCount())
	}
	printStats(g.NodeCount(), g.EdgeCount(), m == nil)

	if opts.output != "" {
		if err := graph.WriteFile(g, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	} else {
		printNextStep("Render it", fmt.Sprintf("mipviz render -i %s", opts.input))
	}
	return nil
}
