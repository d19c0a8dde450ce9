package moire

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteImage is a lazily-initialized 3x3 white image; sampling its centre
// pixel gives untextured triangles that take their color from the vertices.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func ensureWhiteSubImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// EbitenCanvas tessellates primitives with the vector package and coalesces
// them into one vertex buffer, submitted with a single DrawTriangles32 call
// on Flush. Vertex colors carry each primitive's style, so draw order is
// preserved within the batch.
type EbitenCanvas struct {
	vs []ebiten.Vertex
	is []uint32

	// scratch buffers for per-primitive tessellation
	pvs []ebiten.Vertex
	pis []uint16

	prims int
}

// Len returns the number of primitives queued since the last Flush.
func (c *EbitenCanvas) Len() int { return c.prims }

// Flush draws every queued primitive onto dst and empties the batch.
func (c *EbitenCanvas) Flush(dst *ebiten.Image) {
	if len(c.is) > 0 {
		op := &ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		}
		dst.DrawTriangles32(c.vs, c.is, ensureWhiteSubImage(), op)
	}
	c.vs = c.vs[:0]
	c.is = c.is[:0]
	c.prims = 0
}

// appendPath tessellates path for s and appends the result to the batch.
func (c *EbitenCanvas) appendPath(path *vector.Path, closed bool, s Style) {
	c.prims++
	if s.Filled && closed {
		c.pvs, c.pis = path.AppendVerticesAndIndicesForFilling(c.pvs[:0], c.pis[:0])
		c.appendTessellated(s.Fill)
	}
	if s.Stroked() {
		op := &vector.StrokeOptions{
			Width:    float32(s.Width),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		}
		c.pvs, c.pis = path.AppendVerticesAndIndicesForStroke(c.pvs[:0], c.pis[:0], op)
		c.appendTessellated(s.Stroke)
	}
}

// appendTessellated copies the scratch buffers into the batch, tinting every
// vertex with the premultiplied color.
func (c *EbitenCanvas) appendTessellated(col Color) {
	a := float32(clamp01(col.A))
	r := float32(clamp01(col.R)) * a
	g := float32(clamp01(col.G)) * a
	b := float32(clamp01(col.B)) * a
	base := uint32(len(c.vs))
	for _, v := range c.pvs {
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
		c.vs = append(c.vs, v)
	}
	for _, i := range c.pis {
		c.is = append(c.is, base+uint32(i))
	}
}

func (c *EbitenCanvas) Line(a, b Vec2, s Style) {
	var p vector.Path
	p.MoveTo(float32(a.X), float32(a.Y))
	p.LineTo(float32(b.X), float32(b.Y))
	c.appendPath(&p, false, s)
}

func (c *EbitenCanvas) Polyline(pts []Vec2, closed bool, s Style) {
	if len(pts) == 0 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	if closed {
		p.Close()
	}
	c.appendPath(&p, closed, s)
}

func (c *EbitenCanvas) Arc(ctr Vec2, r, start, end float64, s Style) {
	if r <= 0 {
		return
	}
	var p vector.Path
	p.Arc(float32(ctr.X), float32(ctr.Y), float32(r), float32(start), float32(end), vector.Clockwise)
	full := math.Abs(end-start) >= 2*math.Pi-1e-9
	if full {
		p.Close()
	}
	c.appendPath(&p, full, s)
}

func (c *EbitenCanvas) Triangle(a, b, d Vec2, s Style) {
	c.Polyline([]Vec2{a, b, d}, true, s)
}

func (c *EbitenCanvas) Circle(ctr Vec2, r float64, s Style) {
	c.Arc(ctr, r, 0, 2*math.Pi, s)
}
