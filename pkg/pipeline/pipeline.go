// Package pipeline provides the core visualization pipeline.
//
// This package implements the complete parse → graph → layout → render
// pipeline shared by all CLI commands. Centralizing it keeps behavior
// consistent across entry points and avoids code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Read variable/constraint structure from an LP or MPS file
//  2. Graph: Project the model onto a variable co-occurrence graph
//  3. Analyze: Compute node positions and betweenness centrality
//  4. Render: Draw the graph to a PNG image
//
// Layout and centrality are independent and run concurrently. Each stage
// can also be run on its own.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input: "model.lp.gz",
//	    Dark:  true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath)
//
// Run individual stages:
//
//	m, format, err := runner.ParseModel(ctx, opts)
//	g, _, err := runner.BuildGraph(ctx, opts)
//	analysis, err := runner.Analyze(ctx, g, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mipviz/mipviz/pkg/cache"
	"github.com/mipviz/mipviz/pkg/errors"
	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/layout"
	"github.com/mipviz/mipviz/pkg/model"
	"github.com/mipviz/mipviz/pkg/parse"
	"github.com/mipviz/mipviz/pkg/parse/lp"
	"github.com/mipviz/mipviz/pkg/parse/mps"
)

// =============================================================================
// Default Values - Single Source of Truth for All Commands
// =============================================================================

const (
	// DefaultIterations is the layout simulation budget.
	DefaultIterations = 500

	// DefaultSize is the rendered image edge length in pixels.
	DefaultSize = 2048

	// DefaultSeed makes runs reproducible unless the caller asks otherwise.
	DefaultSeed = int64(42)
)

// Parsers returns the set of supported input formats.
func Parsers() []parse.Parser {
	return []parse.Parser{lp.New(), mps.New()}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for run manifests.
type Options struct {
	// Parse options
	Input string `json:"input"`

	// Graph options
	Weighted bool `json:"weighted,omitempty"` // Edge weight = shared-constraint count

	// Layout options
	Seed       int64 `json:"seed,omitempty"`
	Iterations int   `json:"iterations,omitempty"`

	// Render options
	Output string `json:"output,omitempty"` // Default: Input with its format suffix replaced by .png
	Dark   bool   `json:"dark,omitempty"`
	Log    bool   `json:"log,omitempty"` // Log-scale the centrality coloring
	Size   int    `json:"size,omitempty"`

	// Refresh bypasses cached results and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the parsed variable/constraint structure.
	Model *model.Model

	// Graph is the derived co-occurrence graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Analysis holds node positions and centrality scores.
	Analysis Analysis

	// Artifact is the rendered PNG.
	Artifact []byte

	// OutputPath is where the artifact was written.
	OutputPath string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Analysis bundles the two per-node analyses computed from a graph.
// It is the unit of layout-stage caching.
type Analysis struct {
	Positions  map[string]layout.Point `json:"positions"`
	Centrality map[string]float64      `json:"centrality"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VariableCount   int
	ConstraintCount int
	NodeCount       int
	EdgeCount       int
	ParseTime       time.Duration
	AnalyzeTime     time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit   bool // Whether the graph came from cache
	AnalyzeHit bool // Whether positions and centrality came from cache
	RenderHit  bool // Whether the artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetAnalyzeDefaults()
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if _, err := parse.Detect(o.Input, Parsers()...); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetAnalyzeDefaults sets default values for layout and centrality.
func (o *Options) SetAnalyzeDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput(o.Input)
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DefaultOutput derives the output image path from an input path: the
// format suffix, including any compression extension, becomes .png.
func DefaultOutput(input string) string {
	out := input
	for _, suffix := range []string{".tar.gz", ".gz"} {
		out = strings.TrimSuffix(out, suffix)
	}
	for _, suffix := range []string{".lp", ".mps"} {
		if strings.HasSuffix(out, suffix) {
			return strings.TrimSuffix(out, suffix) + ".png"
		}
	}
	return out + ".png"
}

// GraphKeyOpts returns cache key options for graph projection.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Weighted: o.Weighted,
	}
}

// AnalyzeKeyOpts returns cache key options for layout and centrality.
func (o *Options) AnalyzeKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Seed:       o.Seed,
		Iterations: o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for the rendered image.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Dark: o.Dark,
		Log:  o.Log,
		Size: o.Size,
	}
}
