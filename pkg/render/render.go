// Package render draws a laid-out co-occurrence graph to a raster image.
//
// Nodes are filled circles colored by a scalar score through a colormap,
// edges are thin translucent lines. Node and edge sizes shrink as the graph
// grows so dense instances stay readable.
package render

import (
	"image"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/mipviz/mipviz/pkg/errors"
	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/layout"
)

// =====================================================================
// Options
// =====================================================================

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	size     int
	dark     bool
	colormap Colormap
	padding  float64
}

// WithDarkTheme draws a black background with white edges.
func WithDarkTheme() Option {
	return func(r *renderer) { r.dark = true }
}

// WithSize sets the square canvas edge length in pixels (default 2048).
func WithSize(px int) Option {
	return func(r *renderer) { r.size = px }
}

// WithColormap overrides the node colormap (default Plasma).
func WithColormap(m Colormap) Option {
	return func(r *renderer) { r.colormap = m }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{size: 2048, colormap: Plasma(), padding: 0.05}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// =====================================================================
// Rendering
// =====================================================================

// Image draws the graph and returns the rendered frame.
//
// pos must hold a position for every node; colors supplies the per-node
// scalar fed through the colormap and may be nil, which paints all nodes
// with the low end of the map. Color values are normalized to their own
// maximum, so any non-negative scale works.
func Image(g *graph.Graph, pos map[string]layout.Point, colors map[string]float64, opts ...Option) (image.Image, error) {
	r := newRenderer(opts...)

	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeRender, "nothing to render: graph has no nodes")
	}
	for _, id := range nodes {
		if _, ok := pos[id]; !ok {
			return nil, errors.New(errors.ErrCodeRender, "no position for node %q", id)
		}
	}

	fit := fitToCanvas(nodes, pos, float64(r.size), r.padding)

	// Size nodes and edges down as the graph grows, vanishing at 4000 nodes.
	sizeFactor := 1 - math.Min(1, float64(len(nodes))/4000)
	nodeArea := 25 + sizeFactor*300
	nodeRadius := math.Sqrt(nodeArea/math.Pi) * float64(r.size) / 1500
	edgeWidth := (0.1 + sizeFactor) * float64(r.size) / 1500

	dc := gg.NewContext(r.size, r.size)
	if r.dark {
		dc.SetRGB(0, 0, 0)
	} else {
		dc.SetRGB(1, 1, 1)
	}
	dc.Clear()

	// Edges first so nodes draw on top.
	var edgeShade float64
	if r.dark {
		edgeShade = 1
	}
	dc.SetRGBA(edgeShade, edgeShade, edgeShade, 0.3)
	dc.SetLineWidth(edgeWidth)
	for _, e := range g.Edges() {
		p := fit(pos[e.U])
		q := fit(pos[e.V])
		dc.DrawLine(p.X, p.Y, q.X, q.Y)
		dc.Stroke()
	}

	maxColor := 0.0
	for _, v := range colors {
		maxColor = math.Max(maxColor, v)
	}
	for _, id := range nodes {
		p := fit(pos[id])
		dc.SetColor(nodeColor(r.colormap, colors, id, maxColor))
		dc.DrawCircle(p.X, p.Y, nodeRadius)
		dc.Fill()
	}

	return dc.Image(), nil
}

// WritePNG renders the graph and encodes it as PNG to w.
func WritePNG(w io.Writer, g *graph.Graph, pos map[string]layout.Point, colors map[string]float64, opts ...Option) error {
	img, err := Image(g, pos, colors, opts...)
	if err != nil {
		return err
	}
	if err := gg.NewContextForImage(img).EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return nil
}

// WriteFile renders the graph to a PNG file at path.
func WriteFile(path string, g *graph.Graph, pos map[string]layout.Point, colors map[string]float64, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "create %s", path)
	}
	defer f.Close()

	if err := WritePNG(f, g, pos, colors, opts...); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return nil
}

func nodeColor(m Colormap, colors map[string]float64, id string, maxColor float64) colorful.Color {
	if colors == nil || maxColor == 0 {
		return m.Lookup(0)
	}
	return m.Lookup(colors[id] / maxColor)
}

// fitToCanvas maps layout coordinates into canvas pixels, preserving the
// aspect ratio and centering the drawing inside the padded square.
func fitToCanvas(nodes []string, pos map[string]layout.Point, size, padding float64) func(layout.Point) layout.Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range nodes {
		p := pos[id]
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	inner := size * (1 - 2*padding)
	scale := 1.0
	if span > 0 {
		scale = inner / span
	}
	offX := (size - (maxX-minX)*scale) / 2
	offY := (size - (maxY-minY)*scale) / 2

	return func(p layout.Point) layout.Point {
		return layout.Point{
			X: offX + (p.X-minX)*scale,
			Y: offY + (p.Y-minY)*scale,
		}
	}
}
