package moire

import (
	"math"
	"math/rand/v2"
)

// AutoGrid animates one grid over a stationary twin of the same kind. Seven
// oscillators drive the moving grid: two hues, x, y, rotation, gap and
// stroke. The first hue colours the moving grid and the second the
// stationary one.
type AutoGrid struct {
	Kind GridKind

	hue, hue2 *Oscillator
	x, y      *Oscillator
	rotation  *Oscillator
	gap       *Oscillator
	stroke    *Oscillator

	width, height float64
	cfg           AutoConfig
}

// NewAutoGrid builds the oscillators for kind on a width×height canvas,
// drawing every random range and phase from rng.
func NewAutoGrid(kind GridKind, width, height float64, cfg AutoConfig, rng *rand.Rand) *AutoGrid {
	osc := func(lo, hi float64) *Oscillator { return RandomOscillator(rng, lo, hi, cfg.Speed) }
	span := func(r [2]float64) float64 { return randRange(rng, r[0], r[1]) }

	a := &AutoGrid{Kind: kind, width: width, height: height, cfg: cfg}
	a.hue = osc(span(cfg.ColorLow), span(cfg.ColorHigh))
	a.hue2 = osc(span(cfg.ColorLow), span(cfg.ColorHigh))
	a.rotation = osc(randRange(rng, 0, cfg.RotationMax), -randRange(rng, 0, cfg.RotationMax))
	a.stroke = osc(
		randRange(rng, cfg.Stroke-cfg.StrokeJitter, cfg.Stroke),
		randRange(rng, cfg.Stroke, cfg.Stroke+cfg.StrokeJitter),
	)

	cx, cy := width/2, height/2
	if kind.isRadial() {
		d := cfg.RadialMaxDist
		a.x = osc(randRange(rng, cx-d, cx), randRange(rng, cx, cx+d))
		a.y = osc(randRange(rng, cy-d, cy), randRange(rng, cy, cy+d))
	} else {
		lo, hi := cfg.FactorMin, cfg.FactorMax
		a.x = osc(randRange(rng, width*(1-hi), width*(1-lo)), randRange(rng, width*lo, width*hi))
		a.y = osc(randRange(rng, height*(1-hi), height*(1-lo)), randRange(rng, height*lo, height*hi))
	}

	g := a.DefaultGap()
	if kind.isRadial() {
		// Spoke count follows the gap, so radial kinds hold it still.
		a.gap = NewOscillator(g, g, 0, rng.Float64()*2*math.Pi)
	} else {
		a.gap = osc(randRange(rng, g-cfg.GapJitter, g), randRange(rng, g, g+cfg.GapJitter))
	}
	return a
}

// DefaultGap returns the stationary gap for the grid's kind class: radial
// kinds, the triangle grid, kinds drawn as plain parallel or concentric
// lines, and kinds tiled from a unit motif.
func (a *AutoGrid) DefaultGap() float64 {
	switch a.Kind {
	case RadialGrid, TriangleRadial:
		return a.cfg.RadialGap
	case TriangleGrid:
		return a.cfg.TriangleGap
	case SquareGrid, ConcentricGrid, LineGrid:
		return a.cfg.GenericGap
	default:
		return a.cfg.UnitGap
	}
}

// Update advances every oscillator one tick.
func (a *AutoGrid) Update() {
	for _, o := range a.oscillators() {
		o.Advance()
	}
}

func (a *AutoGrid) oscillators() [7]*Oscillator {
	return [7]*Oscillator{a.hue, a.hue2, a.x, a.y, a.rotation, a.gap, a.stroke}
}

// Moving returns the animated grid at the current phase.
func (a *AutoGrid) Moving() GridParams {
	return GridParams{
		Kind:     a.Kind,
		Origin:   Vec2{a.x.Value(), a.y.Value()},
		Rotation: a.rotation.Value(),
		Gap:      a.gap.Value(),
		Stroke:   a.stroke.Value(),
		Color:    HSB(a.hue.Value(), 255, 255, 255),
	}
}

// Stationary returns the reference grid: centred, unrotated, with the
// kind's default gap and the base stroke.
func (a *AutoGrid) Stationary() GridParams {
	return GridParams{
		Kind:     a.Kind,
		Origin:   Vec2{a.width / 2, a.height / 2},
		Rotation: 0,
		Gap:      a.DefaultGap(),
		Stroke:   a.cfg.Stroke,
		Color:    HSB(a.hue2.Value(), 255, 255, 255),
	}
}

// Params returns the moving grid then the stationary grid.
func (a *AutoGrid) Params() []GridParams {
	return []GridParams{a.Moving(), a.Stationary()}
}

// Draw paints the moving grid, the stationary grid over it, then the moving
// grid again at half alpha so the two blend where they cross.
func (a *AutoGrid) Draw(c Canvas) {
	m := a.Moving()
	DrawGrid(c, m, a.width, a.height)
	DrawGrid(c, a.Stationary(), a.width, a.height)
	m.Color = m.Color.WithAlpha(127.0 / 255)
	DrawGrid(c, m, a.width, a.height)
}
