package moire

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSB composes a color from hue, saturation, brightness and alpha, each on
// a 0–255 scale. Hue wraps, so 255 is the same as 0. Channels are quantized
// to 8 bits, which is what the serialized scene records.
func HSB(h, s, b, a float64) Color {
	hue := math.Mod(h/255*360, 360)
	if hue < 0 {
		hue += 360
	}
	c := colorful.Hsv(hue, clamp01(s/255), clamp01(b/255)).Clamped()
	r, g, bl := c.RGB255()
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(bl) / 255,
		A: clamp01(a / 255),
	}
}
