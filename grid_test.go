package moire

import (
	"errors"
	"math"
	"testing"
)

func TestFloodRadius(t *testing.T) {
	tests := []struct {
		name   string
		origin Vec2
		want   float64
	}{
		{"centre", Vec2{400, 300}, 500},
		{"corner", Vec2{0, 0}, 1000},
		{"off canvas", Vec2{-300, 300}, math.Hypot(1100, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "radius", FloodRadius(tt.origin, 800, 600), tt.want)
		})
	}
}

func TestGridKindNames(t *testing.T) {
	if NumGridKinds != 14 {
		t.Fatalf("NumGridKinds = %d, want 14", NumGridKinds)
	}
	for k := GridKind(0); int(k) < NumGridKinds; k++ {
		got, err := ParseGridKind(k.String())
		if err != nil {
			t.Fatalf("ParseGridKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseGridKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseGridKind("PentagonGrid"); !errors.Is(err, ErrUnknownGridKind) {
		t.Errorf("err = %v, want ErrUnknownGridKind", err)
	}
	if GridKind(14).Valid() {
		t.Error("GridKind(14) should be invalid")
	}
	if RadialGrid.String() != "RadialGrid" || TriangleRadial.String() != "TriangleRadial" {
		t.Error("unexpected kind names")
	}
}

func centredParams(kind GridKind, gap float64) GridParams {
	return GridParams{
		Kind:   kind,
		Origin: Vec2{400, 300},
		Gap:    gap,
		Stroke: 2,
		Color:  ColorWhite,
	}
}

func TestSquareGridLineCount(t *testing.T) {
	var rec Recorder
	DrawGrid(&rec, centredParams(SquareGrid, 20), 800, 600)
	// r = 500, h = 0, 20, ..., 480: 25 rows of 4 lines.
	if got := rec.Count(PrimLine); got != 100 {
		t.Errorf("lines = %d, want 100", got)
	}
	if len(rec.Prims) != 100 {
		t.Errorf("prims = %d, want only lines", len(rec.Prims))
	}
	// The first horizontal line passes through the origin and spans the
	// flood circle.
	first := rec.Prims[0]
	assertVec(t, "a", first.Points[0], Vec2{900, 300})
	assertVec(t, "b", first.Points[1], Vec2{-100, 300})
}

func TestConcentricGrid(t *testing.T) {
	var rec Recorder
	DrawGrid(&rec, centredParams(ConcentricGrid, 20), 800, 600)
	if got := rec.Count(PrimArc); got != 25 {
		t.Fatalf("arcs = %d, want 25", got)
	}
	for i, a := range rec.Prims {
		assertVec(t, "centre", a.Points[0], Vec2{400, 300})
		assertNear(t, "radius", a.Radius, float64(i)*20)
		assertNear(t, "sweep", a.End-a.Start, 2*math.Pi)
	}
}

func TestRadialGridSpokes(t *testing.T) {
	var rec Recorder
	DrawGrid(&rec, centredParams(RadialGrid, 10), 800, 600)
	if got := rec.Count(PrimLine); got != 20 {
		t.Fatalf("spokes = %d, want 20", got)
	}
	for i, l := range rec.Prims {
		assertVec(t, "hub", l.Points[0], Vec2{400, 300})
		assertNear(t, "length", l.Points[0].Dist(l.Points[1]), 500)
		// Spoke i points at (i+1)·π/10 past straight down.
		want := Vec2{400, 300}.Add(FromAngle(math.Pi/2 + float64(i+1)*math.Pi/10).Scale(500))
		assertVec(t, "tip", l.Points[1], want)
	}
}

func TestRadialGridTruncatesGap(t *testing.T) {
	var rec Recorder
	DrawGrid(&rec, centredParams(RadialGrid, 10.5), 800, 600)
	// i < 2·gap gives 21 spokes; the step uses ⌊gap⌋.
	if got := rec.Count(PrimLine); got != 21 {
		t.Errorf("spokes = %d, want 21", got)
	}
}

func TestTriangleRadialFillsWedges(t *testing.T) {
	var rec Recorder
	p := centredParams(TriangleRadial, 6)
	p.Color = RGB255(255, 0, 0, 255)
	DrawGrid(&rec, p, 800, 600)
	if got := rec.Count(PrimTriangle); got != 12 {
		t.Fatalf("wedges = %d, want 12", got)
	}
	for _, tri := range rec.Prims {
		if !tri.Style.Filled || tri.Style.Stroked() {
			t.Fatalf("style = %+v, want fill only", tri.Style)
		}
		if tri.Style.Fill != p.Color {
			t.Errorf("fill = %v, want %v", tri.Style.Fill, p.Color)
		}
		assertVec(t, "apex", tri.Points[0], p.Origin)
	}
}

func TestEveryKindDraws(t *testing.T) {
	for k := GridKind(0); int(k) < NumGridKinds; k++ {
		t.Run(k.String(), func(t *testing.T) {
			var rec Recorder
			p := centredParams(k, 30)
			p.Color = RGB255(10, 20, 30, 255)
			p.Stroke = 3
			DrawGrid(&rec, p, 800, 600)
			if len(rec.Prims) == 0 {
				t.Fatal("no primitives")
			}
			for _, pr := range rec.Prims {
				if k == TriangleRadial {
					continue
				}
				if pr.Style.Width != 3 || pr.Style.Stroke != p.Color {
					t.Fatalf("style = %+v", pr.Style)
				}
			}
		})
	}
}

func TestTiledKindsDrawAtZeroRadius(t *testing.T) {
	tiled := []GridKind{
		HexagonalGrid, StarGrid, OctGrid, SquareStarGrid,
		SquareOffsetGrid, CrossGrid, CircleGrid, CircleStarGrid,
	}
	for _, k := range tiled {
		t.Run(k.String(), func(t *testing.T) {
			var rec Recorder
			drawGridRadius(&rec, centredParams(k, 20), 0, 800)
			if len(rec.Prims) == 0 {
				t.Error("expected the central motif")
			}
		})
	}
}

func TestDualGridDoublesSingle(t *testing.T) {
	var single, dual Recorder
	g := gridDraw{r: 300, gap: 25}
	singleGrid(hexTiling)(newPen(&single, Style{}), g)
	dualGrid(hexTiling)(newPen(&dual, Style{}), g)
	if len(dual.Prims) != 2*len(single.Prims) {
		t.Errorf("dual = %d, single = %d", len(dual.Prims), len(single.Prims))
	}
}

func TestRotationIsRigid(t *testing.T) {
	var a, b Recorder
	p := centredParams(HexagonalGrid, 25)
	DrawGrid(&a, p, 800, 600)
	p.Rotation = 1.1
	DrawGrid(&b, p, 800, 600)
	if len(a.Prims) != len(b.Prims) {
		t.Fatalf("prim count changed under rotation: %d vs %d", len(a.Prims), len(b.Prims))
	}
	for i := range a.Prims {
		la := a.Prims[i].Points[0].Dist(a.Prims[i].Points[1])
		lb := b.Prims[i].Points[0].Dist(b.Prims[i].Points[1])
		if math.Abs(la-lb) > 1e-6 {
			t.Fatalf("segment %d length %v became %v", i, la, lb)
		}
	}
}

func TestInvalidKindDrawsNothing(t *testing.T) {
	var rec Recorder
	DrawGrid(&rec, centredParams(GridKind(200), 20), 800, 600)
	if len(rec.Prims) != 0 {
		t.Errorf("prims = %d, want 0", len(rec.Prims))
	}
}
