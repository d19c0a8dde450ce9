package moire

import (
	"math"
	"testing"
)

func TestEbitenCanvasBatchesPrimitives(t *testing.T) {
	var c EbitenCanvas
	c.Line(Vec2{0, 0}, Vec2{100, 0}, Style{Stroke: ColorWhite, Width: 2})
	c.Circle(Vec2{50, 50}, 10, Style{Fill: ColorWhite, Filled: true})
	c.Triangle(Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 10}, Style{Fill: ColorWhite, Filled: true, Stroke: ColorWhite, Width: 1})
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if len(c.vs) == 0 || len(c.is) == 0 {
		t.Fatal("expected tessellated geometry")
	}
	if len(c.is)%3 != 0 {
		t.Errorf("indices = %d, not whole triangles", len(c.is))
	}
	for _, i := range c.is {
		if int(i) >= len(c.vs) {
			t.Fatalf("index %d out of range %d", i, len(c.vs))
		}
	}
}

func TestEbitenCanvasPremultipliesColor(t *testing.T) {
	var c EbitenCanvas
	c.Line(Vec2{0, 0}, Vec2{10, 0}, Style{Stroke: Color{R: 1, G: 0.5, B: 0, A: 0.5}, Width: 2})
	for _, v := range c.vs {
		if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
			t.Fatalf("vertex colour = (%v,%v,%v,%v)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
		if v.SrcX != 1 || v.SrcY != 1 {
			t.Fatalf("vertex samples (%v,%v), want the white pixel", v.SrcX, v.SrcY)
		}
	}
}

func TestEbitenCanvasSkipsEmpty(t *testing.T) {
	var c EbitenCanvas
	c.Polyline(nil, false, Style{Stroke: ColorWhite, Width: 1})
	c.Arc(Vec2{}, 0, 0, math.Pi, Style{Stroke: ColorWhite, Width: 1})
	c.Line(Vec2{}, Vec2{10, 10}, Style{Stroke: ColorWhite}) // zero width
	if len(c.vs) != 0 {
		t.Errorf("vertices = %d, want 0", len(c.vs))
	}
}

func TestEbitenCanvasDrawsWholeGrid(t *testing.T) {
	var c EbitenCanvas
	var rec Recorder
	p := GridParams{Kind: SquareGrid, Origin: Vec2{400, 300}, Gap: 20, Stroke: 2, Color: ColorWhite}
	DrawGrid(&c, p, 800, 600)
	DrawGrid(&rec, p, 800, 600)
	if c.Len() != len(rec.Prims) {
		t.Errorf("batched %d primitives, recorded %d", c.Len(), len(rec.Prims))
	}
}
