package pipeline

import (
	"bytes"
	"context"
	"math"
	"time"

	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/observability"
	"github.com/mipviz/mipviz/pkg/render"
)

// RenderArtifact draws the analyzed graph and returns the encoded PNG.
// Node colors come from the centrality scores; with opts.Log each score c
// is first mapped to log(c+1), which compresses the long tail that
// betweenness distributions typically have.
func RenderArtifact(ctx context.Context, g *graph.Graph, a Analysis, opts Options) ([]byte, error) {
	opts.SetRenderDefaults()

	observability.Pipeline().OnRenderStart(ctx, opts.Output)
	start := time.Now()

	data, err := renderPNG(g, a, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Output, time.Since(start), err)
	return data, err
}

func renderPNG(g *graph.Graph, a Analysis, opts Options) ([]byte, error) {
	colors := a.Centrality
	if opts.Log && colors != nil {
		scaled := make(map[string]float64, len(colors))
		for id, c := range colors {
			scaled[id] = math.Log(c + 1)
		}
		colors = scaled
	}

	renderOpts := []render.Option{render.WithSize(opts.Size)}
	if opts.Dark {
		renderOpts = append(renderOpts, render.WithDarkTheme())
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, g, a.Positions, colors, renderOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
