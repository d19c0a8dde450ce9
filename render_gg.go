package moire

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ImageCanvas rasterizes primitives offline with gg. It needs no GPU or
// window, so saved scenes can be rendered from the command line.
type ImageCanvas struct {
	dc *gg.Context
}

// NewImageCanvas returns a width×height canvas cleared to bg.
func NewImageCanvas(width, height int, bg Color) *ImageCanvas {
	dc := gg.NewContext(width, height)
	dc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
	dc.Clear()
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &ImageCanvas{dc: dc}
}

// Image returns the rendered pixels.
func (c *ImageCanvas) Image() image.Image { return c.dc.Image() }

// paint fills then strokes the current path according to s.
func (c *ImageCanvas) paint(s Style) {
	if s.Filled {
		c.dc.SetRGBA(s.Fill.R, s.Fill.G, s.Fill.B, s.Fill.A)
		if s.Stroked() {
			c.dc.FillPreserve()
		} else {
			c.dc.Fill()
		}
	}
	if s.Stroked() {
		c.dc.SetRGBA(s.Stroke.R, s.Stroke.G, s.Stroke.B, s.Stroke.A)
		c.dc.SetLineWidth(s.Width)
		c.dc.Stroke()
	}
	c.dc.ClearPath()
}

func (c *ImageCanvas) Line(a, b Vec2, s Style) {
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.paint(s)
}

func (c *ImageCanvas) Polyline(pts []Vec2, closed bool, s Style) {
	if len(pts) == 0 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	if closed {
		c.dc.ClosePath()
	}
	c.paint(s)
}

func (c *ImageCanvas) Arc(ctr Vec2, r, start, end float64, s Style) {
	c.dc.NewSubPath()
	c.dc.DrawArc(ctr.X, ctr.Y, r, start, end)
	c.paint(s)
}

func (c *ImageCanvas) Triangle(a, b, d Vec2, s Style) {
	c.Polyline([]Vec2{a, b, d}, true, s)
}

func (c *ImageCanvas) Circle(ctr Vec2, r float64, s Style) {
	c.dc.NewSubPath()
	c.dc.DrawCircle(ctr.X, ctr.Y, r)
	c.paint(s)
}

// Caption draws text in the bottom-left corner with a black outline.
func (c *ImageCanvas) Caption(text string, size float64) error {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parse caption font: %w", err)
	}
	c.dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	x, y := 20.0, float64(c.dc.Height())-20
	c.dc.SetRGB(0, 0, 0)
	for _, d := range outlineOffsets(2, 8) {
		c.dc.DrawString(text, x+d.X, y+d.Y)
	}
	c.dc.SetRGB(1, 1, 1)
	c.dc.DrawString(text, x, y)
	return nil
}

// outlineOffsets returns n points on a circle of radius r, used to fake a
// text outline by stamping the text around its position.
func outlineOffsets(r float64, n int) []Vec2 {
	out := make([]Vec2, n)
	for i := range out {
		out[i] = FromAngle(float64(i) * 2 * math.Pi / float64(n)).Scale(r)
	}
	return out
}

// RenderOptions controls RenderImage.
type RenderOptions struct {
	// Caption, when set, is drawn in the bottom-left corner.
	Caption     string
	CaptionSize float64
}

// RenderImage rasterizes a saved scene on a black background.
func RenderImage(doc Document, opts RenderOptions) (image.Image, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("render: canvas size %dx%d must be positive", doc.Width, doc.Height)
	}
	c := NewImageCanvas(doc.Width, doc.Height, ColorBlack)
	for _, g := range doc.Grids {
		DrawGrid(c, g.Params(), float64(doc.Width), float64(doc.Height))
	}
	if opts.Caption != "" {
		size := opts.CaptionSize
		if size <= 0 {
			size = 20
		}
		if err := c.Caption(opts.Caption, size); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}
	return c.Image(), nil
}
