package moire

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	svg "github.com/ajstarks/svgo"
)

func newTestSVG(w io.Writer) *svg.SVG {
	s := svg.New(w)
	s.Start(100, 100)
	return s
}

func TestSVGStyle(t *testing.T) {
	tests := []struct {
		name string
		in   Style
		want string
	}{
		{"stroke only", Style{Stroke: ColorWhite, Width: 2}, "fill:none;stroke:rgb(255,255,255);stroke-opacity:1.000;stroke-width:2.00;stroke-linecap:round;stroke-linejoin:round"},
		{"fill only", Style{Fill: RGB255(255, 0, 0, 255), Filled: true}, "fill:rgb(255,0,0);fill-opacity:1.000"},
		{"zero width", Style{Stroke: ColorWhite}, "fill:none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svgStyle(tt.in); got != tt.want {
				t.Errorf("svgStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

func renderSVGString(t *testing.T, doc Document) string {
	t.Helper()
	var sb strings.Builder
	if err := RenderSVG(&sb, doc); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	return sb.String()
}

func TestRenderSVGDocument(t *testing.T) {
	p := GridParams{Kind: LineGrid, Origin: Vec2{100, 50}, Gap: 10, Stroke: 1, Color: ColorWhite}
	doc := NewDocument(200, 100, []GridParams{p})
	out := renderSVGString(t, doc)

	for _, want := range []string{`width="200"`, `height="100"`, "<title>moire: 1 grids</title>", "fill:rgb(0,0,0)", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	var rec Recorder
	DrawGrid(&rec, doc.Grids[0].Params(), 200, 100)
	if got, want := strings.Count(out, "<path"), rec.Count(PrimLine); got != want || want == 0 {
		t.Errorf("paths = %d, want %d", got, want)
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	out := renderSVGString(t, NewDocument(10, 10, nil))
	if strings.Contains(out, "<path") {
		t.Error("empty scene should have no paths")
	}
}

func TestSVGArcFlags(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       string
	}{
		{"quarter", 0, math.Pi / 2, "A10.00 10.00 0 0 1 0.00 10.00"},
		{"three quarters", 0, 3 * math.Pi / 2, "A10.00 10.00 0 1 1 "},
		{"backwards", 0, -math.Pi / 2, "A10.00 10.00 0 0 0 0.00 -10.00"},
		{"full", 0, 2 * math.Pi, "A10.00 10.00 0 1 1 -10.00 0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			s := newTestSVG(&sb)
			NewSVGCanvas(s).Arc(Vec2{}, 10, tt.start, tt.end, Style{Stroke: ColorWhite, Width: 1})
			s.End()
			if !strings.Contains(sb.String(), tt.want) {
				t.Errorf("output %q missing %q", sb.String(), tt.want)
			}
		})
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestRenderSVGWriteError(t *testing.T) {
	p := GridParams{Kind: SquareGrid, Origin: Vec2{400, 300}, Gap: 5, Stroke: 1, Color: ColorWhite}
	err := RenderSVG(failingWriter{}, NewDocument(800, 600, []GridParams{p}))
	if !errors.Is(err, errDiskFull) {
		t.Errorf("err = %v, want disk full", err)
	}
}
