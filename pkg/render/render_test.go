package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mipviz/mipviz/pkg/errors"
	"github.com/mipviz/mipviz/pkg/graph"
	"github.com/mipviz/mipviz/pkg/layout"
	"github.com/mipviz/mipviz/pkg/model"
)

func triangle(t *testing.T) (*graph.Graph, map[string]layout.Point) {
	t.Helper()
	m := model.New()
	m.CreateConstraintRelation([]string{"x", "y", "z"})
	g := graph.FromModel(m, false)
	pos := map[string]layout.Point{
		"x": {X: -1, Y: -1},
		"y": {X: 1, Y: -1},
		"z": {X: 0, Y: 1},
	}
	return g, pos
}

func TestWritePNG(t *testing.T) {
	g, pos := triangle(t)

	var buf bytes.Buffer
	err := WritePNG(&buf, g, pos, nil, WithSize(256))
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 256, bounds.Dx())
	assert.Equal(t, 256, bounds.Dy())
}

func TestImageThemes(t *testing.T) {
	g, pos := triangle(t)

	light, err := Image(g, pos, nil, WithSize(64))
	require.NoError(t, err)
	dark, err := Image(g, pos, nil, WithSize(64), WithDarkTheme())
	require.NoError(t, err)

	// Corners stay background-colored; nodes sit inside the padding.
	lr, lg, lb, _ := light.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{lr, lg, lb})
	dr, dg, db, _ := dark.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{dr, dg, db})
}

func TestImageColorsNodesByScore(t *testing.T) {
	g, pos := triangle(t)
	colors := map[string]float64{"x": 0, "y": 0.5, "z": 1}

	_, err := Image(g, pos, colors, WithSize(64))
	require.NoError(t, err)
}

func TestImageEmptyGraph(t *testing.T) {
	g := graph.FromModel(model.New(), false)

	_, err := Image(g, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRender))
}

func TestImageMissingPosition(t *testing.T) {
	g, pos := triangle(t)
	delete(pos, "z")

	_, err := Image(g, pos, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRender))
}

func TestImageSingleNode(t *testing.T) {
	m := model.New()
	m.CreateVariable("only")
	g := graph.FromModel(m, false)

	img, err := Image(g, map[string]layout.Point{"only": {}}, nil, WithSize(64))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestColormapEndpoints(t *testing.T) {
	m := Plasma()

	assert.Equal(t, m.Lookup(0), m.Lookup(-5), "inputs clamp at the low end")
	assert.Equal(t, m.Lookup(1), m.Lookup(7), "inputs clamp at the high end")
	assert.NotEqual(t, m.Lookup(0), m.Lookup(1))

	mid := m.Lookup(0.5)
	assert.True(t, mid.IsValid())
}
