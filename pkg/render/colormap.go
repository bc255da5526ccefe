package render

import "github.com/lucasb-eyer/go-colorful"

// Colormap maps a scalar in [0, 1] to a color. Inputs outside the range are
// clamped.
type Colormap struct {
	anchors []colorful.Color
}

// Plasma is the perceptually uniform purple-to-yellow map used for node
// coloring. Anchor points are blended in Luv space.
func Plasma() Colormap {
	return newColormap("#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921")
}

// Viridis is the green-to-yellow alternative map.
func Viridis() Colormap {
	return newColormap("#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725")
}

func newColormap(hexes ...string) Colormap {
	anchors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("render: bad colormap anchor " + h)
		}
		anchors[i] = c
	}
	return Colormap{anchors: anchors}
}

// Lookup returns the color for t.
func (m Colormap) Lookup(t float64) colorful.Color {
	if t <= 0 {
		return m.anchors[0]
	}
	if t >= 1 {
		return m.anchors[len(m.anchors)-1]
	}
	scaled := t * float64(len(m.anchors)-1)
	lo := int(scaled)
	return m.anchors[lo].BlendLuv(m.anchors[lo+1], scaled-float64(lo))
}
