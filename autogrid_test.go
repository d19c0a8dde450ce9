package moire

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newTestAuto(kind GridKind, seed uint64) *AutoGrid {
	return NewAutoGrid(kind, 800, 600, DefaultConfig().Auto, rand.New(rand.NewPCG(seed, seed)))
}

func TestAutoGridDefaultGap(t *testing.T) {
	tests := []struct {
		kind GridKind
		want float64
	}{
		{RadialGrid, 38},
		{TriangleRadial, 38},
		{TriangleGrid, 42},
		{SquareGrid, 17},
		{ConcentricGrid, 17},
		{LineGrid, 17},
		{HexagonalGrid, 30},
		{CircleStarGrid, 30},
		{CrossGrid, 30},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			a := newTestAuto(tt.kind, 1)
			assertNear(t, "gap", a.DefaultGap(), tt.want)
			assertNear(t, "stationary gap", a.Stationary().Gap, tt.want)
		})
	}
}

func TestAutoGridRadialStationary(t *testing.T) {
	a := newTestAuto(RadialGrid, 3)
	s := a.Stationary()
	assertVec(t, "origin", s.Origin, Vec2{400, 300})
	assertNear(t, "rotation", s.Rotation, 0)
	assertNear(t, "gap", s.Gap, 38)
	assertNear(t, "stroke", s.Stroke, 5)
	if s.Kind != RadialGrid {
		t.Errorf("kind = %v", s.Kind)
	}
}

func TestAutoGridRadialBounds(t *testing.T) {
	a := newTestAuto(RadialGrid, 4)
	for i := 0; i < 2000; i++ {
		m := a.Moving()
		if math.Abs(m.Origin.X-400) > 200+easeEpsilon || math.Abs(m.Origin.Y-300) > 200+easeEpsilon {
			t.Fatalf("tick %d: origin %v strays more than 200 from the centre", i, m.Origin)
		}
		assertNearEps(t, "constant gap", m.Gap, 38, easeEpsilon)
		a.Update()
	}
}

func TestAutoGridSquareBounds(t *testing.T) {
	a := newTestAuto(SquareGrid, 5)
	for i := 0; i < 2000; i++ {
		m := a.Moving()
		if m.Origin.X < -easeEpsilon || m.Origin.X > 800+easeEpsilon ||
			m.Origin.Y < -easeEpsilon || m.Origin.Y > 600+easeEpsilon {
			t.Fatalf("tick %d: origin %v left the canvas", i, m.Origin)
		}
		if m.Gap < 14-easeEpsilon || m.Gap > 20+easeEpsilon {
			t.Fatalf("tick %d: gap %v outside 17±3", i, m.Gap)
		}
		if m.Stroke < 4-easeEpsilon || m.Stroke > 6+easeEpsilon {
			t.Fatalf("tick %d: stroke %v outside 5±1", i, m.Stroke)
		}
		if math.Abs(m.Rotation) > 2*math.Pi/50+easeEpsilon {
			t.Fatalf("tick %d: rotation %v outside ±2π/50", i, m.Rotation)
		}
		a.Update()
	}
}

func TestAutoGridUpdateMoves(t *testing.T) {
	a := newTestAuto(HexagonalGrid, 6)
	before := a.Moving()
	for i := 0; i < 50; i++ {
		a.Update()
	}
	after := a.Moving()
	if before.Origin == after.Origin && before.Rotation == after.Rotation {
		t.Error("50 ticks should move the grid")
	}
	// The stationary grid never moves.
	assertVec(t, "stationary", a.Stationary().Origin, Vec2{400, 300})
}

func TestAutoGridDeterministic(t *testing.T) {
	a := newTestAuto(StarGrid, 9)
	b := newTestAuto(StarGrid, 9)
	for i := 0; i < 10; i++ {
		a.Update()
		b.Update()
	}
	if a.Moving() != b.Moving() || a.Stationary() != b.Stationary() {
		t.Error("same seed should give the same animation")
	}
}

func TestAutoGridParamsOrder(t *testing.T) {
	a := newTestAuto(OctGrid, 2)
	ps := a.Params()
	if len(ps) != 2 {
		t.Fatalf("len = %d, want 2", len(ps))
	}
	if ps[0] != a.Moving() || ps[1] != a.Stationary() {
		t.Error("params should be moving then stationary")
	}
	if ps[0].Color != HSB(a.hue.Value(), 255, 255, 255) {
		t.Error("moving grid should use the first hue")
	}
	if ps[1].Color != HSB(a.hue2.Value(), 255, 255, 255) {
		t.Error("stationary grid should use the second hue")
	}
}

func TestAutoGridDrawBlendsMovingTwice(t *testing.T) {
	a := newTestAuto(ConcentricGrid, 8)
	var moving, stationary, all Recorder
	DrawGrid(&moving, a.Moving(), 800, 600)
	DrawGrid(&stationary, a.Stationary(), 800, 600)
	a.Draw(&all)

	n, s := len(moving.Prims), len(stationary.Prims)
	if len(all.Prims) != 2*n+s {
		t.Fatalf("prims = %d, want %d", len(all.Prims), 2*n+s)
	}
	last := all.Prims[len(all.Prims)-1]
	assertNear(t, "blend alpha", last.Style.Stroke.A, 127.0/255)
	first := all.Prims[0]
	assertNear(t, "first alpha", first.Style.Stroke.A, 1)
}
