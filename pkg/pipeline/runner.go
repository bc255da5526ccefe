package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mipviz/mipviz/pkg/cache"
	"github.com/mipviz/mipviz/pkg/errors"
	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/inputs"
	"github.com/mipviz/mipviz/pkg/model"
	"github.com/mipviz/mipviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → graph → analyze → render pipeline with
// caching and writes the rendered image to opts.Output.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	runID := uuid.New().String()
	logger := opts.Logger.With("run", runID)

	result := &Result{}

	// Stage 1+2: Parse and project onto the co-occurrence graph
	parseStart := time.Now()
	g, m, graphHit, err := r.BuildGraphWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Model = m
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.GraphHit = graphHit
	if m != nil {
		result.Stats.VariableCount = m.VariableCount()
		result.Stats.ConstraintCount = m.ConstraintCount()
	}

	// Compute graph hash for cache keys and run manifests
	if graphData, err := graph.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	logger.Info("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"cached", graphHit,
		"duration", result.Stats.ParseTime)

	// Stage 3: Layout and centrality
	analyzeStart := time.Now()
	analysis, analyzeHit, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.AnalyzeHit = analyzeHit

	logger.Info("analyzed graph",
		"cached", analyzeHit,
		"duration", result.Stats.AnalyzeTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, g, analysis, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	if err := os.WriteFile(opts.Output, artifact, 0644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "write %s", opts.Output)
	}
	result.OutputPath = opts.Output

	logger.Info("rendered image",
		"output", opts.Output,
		"bytes", len(artifact),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildGraphWithCacheInfo parses the input and projects it onto the
// co-occurrence graph, with caching keyed on the input file's content hash.
// The parsed model is nil on a cache hit: only the graph is stored.
func (r *Runner) BuildGraphWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, *model.Model, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	inputHash, err := hashInput(opts.Input)
	if err != nil {
		return nil, nil, false, err
	}
	cacheKey := r.Keyer.GraphKey(inputHash, opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, nil, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	m, _, err := ParseInput(ctx, opts)
	if err != nil {
		return nil, nil, false, err
	}
	g := graph.FromModel(m, opts.Weighted)

	if data, err := graph.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, m, false, nil
}

// BuildGraph is a convenience wrapper that discards the cache hit info.
func (r *Runner) BuildGraph(ctx context.Context, opts Options) (*graph.Graph, *model.Model, error) {
	g, m, _, err := r.BuildGraphWithCacheInfo(ctx, opts)
	return g, m, err
}

// AnalyzeWithCacheInfo computes positions and centrality with caching and
// returns cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (Analysis, bool, error) {
	opts.SetAnalyzeDefaults()
	r.applyLogger(&opts)

	graphData, err := graph.Marshal(g)
	if err != nil {
		return Analysis{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.AnalyzeKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "analysis")
				return cached, true, nil
			}
			// Deserialization failure falls through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	a, err := AnalyzeGraph(ctx, g, opts)
	if err != nil {
		return Analysis{}, false, err
	}

	if data, err := json.Marshal(a); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}

	return a, false, nil
}

// Analyze is a convenience wrapper that discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g *graph.Graph, opts Options) (Analysis, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, g, opts)
	return a, err
}

// RenderWithCacheInfo renders the artifact with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, a Analysis, opts Options) ([]byte, bool, error) {
	opts.SetRenderDefaults()
	r.applyLogger(&opts)

	analysisData, err := json.Marshal(a)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize analysis for cache key")
	}
	cacheKey := r.Keyer.ArtifactKey(cache.Hash(analysisData), opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := RenderArtifact(ctx, g, a, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// hashInput fingerprints the decompressed input content, so renaming or
// recompressing a file still hits the same cache entries.
func hashInput(path string) (string, error) {
	f, err := inputs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return cache.HashReader(f)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
