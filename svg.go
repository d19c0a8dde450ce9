package moire

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVGCanvas emits primitives as SVG path elements. Coordinates keep two
// decimals, which is below a pixel at any sensible zoom.
type SVGCanvas struct {
	svg *svg.SVG
}

// NewSVGCanvas wraps an svgo document that has already been started.
func NewSVGCanvas(s *svg.SVG) *SVGCanvas { return &SVGCanvas{svg: s} }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func rgb(c Color) string {
	n := c.toNRGBA()
	return fmt.Sprintf("rgb(%d,%d,%d)", n.R, n.G, n.B)
}

func svgStyle(s Style) string {
	var b strings.Builder
	if s.Filled {
		fmt.Fprintf(&b, "fill:%s;fill-opacity:%.3f", rgb(s.Fill), clamp01(s.Fill.A))
	} else {
		b.WriteString("fill:none")
	}
	if s.Stroked() {
		fmt.Fprintf(&b, ";stroke:%s;stroke-opacity:%.3f;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round",
			rgb(s.Stroke), clamp01(s.Stroke.A), num(s.Width))
	}
	return b.String()
}

func (c *SVGCanvas) Line(a, b Vec2, s Style) {
	c.svg.Path("M"+num(a.X)+" "+num(a.Y)+" L"+num(b.X)+" "+num(b.Y), svgStyle(s))
}

func (c *SVGCanvas) Polyline(pts []Vec2, closed bool, s Style) {
	if len(pts) == 0 {
		return
	}
	var d strings.Builder
	for i, p := range pts {
		if i == 0 {
			d.WriteString("M")
		} else {
			d.WriteString(" L")
		}
		d.WriteString(num(p.X) + " " + num(p.Y))
	}
	if closed {
		d.WriteString(" Z")
	}
	c.svg.Path(d.String(), svgStyle(s))
}

func (c *SVGCanvas) Arc(ctr Vec2, r, start, end float64, s Style) {
	if r <= 0 {
		return
	}
	sweep := end - start
	if math.Abs(sweep) >= 2*math.Pi-1e-9 {
		c.Circle(ctr, r, s)
		return
	}
	p0 := ctr.Add(FromAngle(start).Scale(r))
	p1 := ctr.Add(FromAngle(end).Scale(r))
	large, dir := 0, 1
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	if sweep < 0 {
		dir = 0
	}
	d := fmt.Sprintf("M%s %s A%s %s 0 %d %d %s %s",
		num(p0.X), num(p0.Y), num(r), num(r), large, dir, num(p1.X), num(p1.Y))
	c.svg.Path(d, svgStyle(s))
}

func (c *SVGCanvas) Triangle(a, b, d Vec2, s Style) {
	c.Polyline([]Vec2{a, b, d}, true, s)
}

func (c *SVGCanvas) Circle(ctr Vec2, r float64, s Style) {
	// Two half arcs; path data keeps fractional centres that svg.Circle's
	// integer arguments would round away.
	d := fmt.Sprintf("M%s %s A%s %s 0 1 1 %s %s A%s %s 0 1 1 %s %s Z",
		num(ctr.X+r), num(ctr.Y),
		num(r), num(r), num(ctr.X-r), num(ctr.Y),
		num(r), num(r), num(ctr.X+r), num(ctr.Y))
	c.svg.Path(d, svgStyle(s))
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// RenderSVG writes doc as a standalone SVG document on a black background.
func RenderSVG(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}
	s := svg.New(ew)
	s.Start(doc.Width, doc.Height)
	s.Title(fmt.Sprintf("moire: %d grids", len(doc.Grids)))
	s.Rect(0, 0, doc.Width, doc.Height, "fill:"+rgb(ColorBlack))
	cv := NewSVGCanvas(s)
	for _, g := range doc.Grids {
		DrawGrid(cv, g.Params(), float64(doc.Width), float64(doc.Height))
	}
	s.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeSVGFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderSVG(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
