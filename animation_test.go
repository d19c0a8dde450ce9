package moire

import (
	"math"
	"math/rand/v2"
	"testing"
)

// float32 easing keeps about six significant digits.
const easeEpsilon = 1e-3

func assertNearEps(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, eps)
	}
}

// --- Oscillator ---

func TestOscillatorValueFollowsSine(t *testing.T) {
	tests := []struct {
		name  string
		phase float64
		want  float64
	}{
		{"zero phase is midpoint", 0, 150},
		{"quarter is max", math.Pi / 2, 200},
		{"half is midpoint", math.Pi, 150},
		{"three quarters is min", 3 * math.Pi / 2, 100},
		{"negative phase", -math.Pi / 2, 100},
		{"large phase", 1000*math.Pi + math.Pi/2, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOscillator(100, 200, 0, tt.phase)
			assertNearEps(t, "value", o.Value(), tt.want, easeEpsilon)
		})
	}
}

func TestOscillatorMatchesClosedForm(t *testing.T) {
	o := NewOscillator(-3, 7, 0.37, 0.2)
	for i := 0; i < 200; i++ {
		want := -3 + 10*(math.Sin(o.Phase())+1)/2
		assertNearEps(t, "value", o.Value(), want, easeEpsilon)
		o.Advance()
	}
}

func TestOscillatorInvertedRange(t *testing.T) {
	o := NewOscillator(255, 0, 0, math.Pi/2)
	assertNearEps(t, "max phase", o.Value(), 0, easeEpsilon)
	o = NewOscillator(255, 0, 0, -math.Pi/2)
	assertNearEps(t, "min phase", o.Value(), 255, easeEpsilon)
}

func TestOscillatorAdvance(t *testing.T) {
	o := NewOscillator(0, 1, 0.25, 1)
	o.Advance()
	o.Advance()
	assertNear(t, "phase", o.Phase(), 1.5)

	o.Speed = -0.5
	o.Advance()
	assertNear(t, "phase", o.Phase(), 1)
}

func TestOscillatorStaysInRange(t *testing.T) {
	o := NewOscillator(10, 20, 0.013, 0)
	for i := 0; i < 5000; i++ {
		v := o.Value()
		if v < 10-easeEpsilon || v > 20+easeEpsilon {
			t.Fatalf("tick %d: value %v outside [10, 20]", i, v)
		}
		o.Advance()
	}
}

func TestRandomOscillator(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		o := RandomOscillator(rng, 0, 1, 0.01)
		if o.Speed < -0.01 || o.Speed > 0.01 {
			t.Fatalf("speed %v outside ±0.01", o.Speed)
		}
		if o.Phase() < 0 || o.Phase() >= 2*math.Pi {
			t.Fatalf("phase %v outside [0, 2π)", o.Phase())
		}
	}
}

func TestRandomOscillatorDeterministic(t *testing.T) {
	a := RandomOscillator(rand.New(rand.NewPCG(7, 7)), 0, 1, 0.01)
	b := RandomOscillator(rand.New(rand.NewPCG(7, 7)), 0, 1, 0.01)
	if a.Speed != b.Speed || a.Phase() != b.Phase() {
		t.Error("same seed should give the same oscillator")
	}
}

// --- Fade ---

func TestFadeReachesTarget(t *testing.T) {
	f := NewFade(1, 0.25)
	f.To(0)
	if f.Done() {
		t.Fatal("fade should be running")
	}
	for i := 0; i < 30 && !f.Done(); i++ {
		f.Update(1.0 / 60)
	}
	if !f.Done() {
		t.Fatal("fade did not finish")
	}
	assertNearEps(t, "alpha", f.Alpha(), 0, 1e-6)
}

func TestFadeIsMonotonic(t *testing.T) {
	f := NewFade(0, 0.5)
	f.To(1)
	prev := f.Alpha()
	for !f.Done() {
		f.Update(1.0 / 60)
		if f.Alpha() < prev {
			t.Fatalf("alpha went from %v to %v", prev, f.Alpha())
		}
		prev = f.Alpha()
	}
	assertNearEps(t, "alpha", f.Alpha(), 1, 1e-6)
}

func TestFadeZeroDurationIsImmediate(t *testing.T) {
	f := NewFade(1, 0)
	f.To(0)
	if !f.Done() || f.Alpha() != 0 {
		t.Errorf("alpha = %v done = %v, want 0 true", f.Alpha(), f.Done())
	}
}

func TestFadeRetargetsFromCurrent(t *testing.T) {
	f := NewFade(0, 1)
	f.To(1)
	f.Update(0.5)
	mid := f.Alpha()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("mid alpha = %v", mid)
	}
	f.To(0)
	f.Update(0)
	assertNearEps(t, "restart", f.Alpha(), mid, 1e-6)
}
