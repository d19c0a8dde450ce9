package moire

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Oscillator sweeps between Min and Max on a sine curve. It is a pure
// function of its accumulated phase: Advance adds Speed (radians per tick)
// and Value reads the curve. Min > Max is allowed and simply runs the sweep
// backwards; a negative Speed reverses direction.
type Oscillator struct {
	Min, Max float64
	Speed    float64
	phase    float64
}

// NewOscillator returns an oscillator starting at the given phase.
func NewOscillator(min, max, speed, phase float64) *Oscillator {
	return &Oscillator{Min: min, Max: max, Speed: speed, phase: phase}
}

// RandomOscillator returns an oscillator with a uniformly random starting
// phase and a speed drawn uniformly from [-maxSpeed, maxSpeed].
func RandomOscillator(rng *rand.Rand, min, max, maxSpeed float64) *Oscillator {
	return &Oscillator{
		Min:   min,
		Max:   max,
		Speed: randRange(rng, -maxSpeed, maxSpeed),
		phase: rng.Float64() * 2 * math.Pi,
	}
}

// Advance moves the oscillator forward one tick.
func (o *Oscillator) Advance() { o.phase += o.Speed }

// Phase returns the accumulated phase in radians.
func (o *Oscillator) Phase() float64 { return o.phase }

// Value returns Min + (Max−Min)·(sin(phase)+1)/2.
//
// The curve is ease.InOutSine over a half period shifted by π/2, which
// traces exactly that sine. The phase is wrapped first so the float32
// easing keeps its precision however long the sketch runs.
func (o *Oscillator) Value() float64 {
	t := math.Mod(o.phase+math.Pi/2, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return float64(ease.InOutSine(float32(t), float32(o.Min), float32(o.Max-o.Min), math.Pi))
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Fade eases an overlay alpha between hidden (0) and shown (1). There is no
// global animation manager; the owner calls Update each frame.
type Fade struct {
	tween    *gween.Tween
	value    float64
	duration float32
}

// NewFade returns a fade resting at the given alpha.
func NewFade(alpha float64, duration float32) *Fade {
	return &Fade{value: alpha, duration: duration}
}

// To starts easing towards target from the current value.
func (f *Fade) To(target float64) {
	if f.duration <= 0 {
		f.tween = nil
		f.value = target
		return
	}
	f.tween = gween.New(float32(f.value), float32(target), f.duration, ease.OutQuad)
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.tween == nil {
		return
	}
	v, done := f.tween.Update(dt)
	f.value = float64(v)
	if done {
		f.tween = nil
	}
}

// Alpha returns the current overlay alpha.
func (f *Fade) Alpha() float64 { return f.value }

// Done reports whether no fade is in progress.
func (f *Fade) Done() bool { return f.tween == nil }
