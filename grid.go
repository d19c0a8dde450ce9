package moire

import (
	"errors"
	"fmt"
	"math"
)

// GridKind selects one of the fixed procedural tiling patterns.
type GridKind uint8

const (
	SquareGrid GridKind = iota
	ConcentricGrid
	TriangleRadial
	HexagonalGrid
	TriangleGrid
	StarGrid
	OctGrid
	SquareStarGrid
	SquareOffsetGrid
	CrossGrid
	CircleGrid
	CircleStarGrid
	LineGrid
	RadialGrid

	numGridKinds
)

// NumGridKinds is the number of defined grid kinds.
const NumGridKinds = int(numGridKinds)

// ErrUnknownGridKind is returned when a grid kind name or key is not recognised.
var ErrUnknownGridKind = errors.New("moire: unknown grid kind")

var gridKindNames = [numGridKinds]string{
	"SquareGrid",
	"ConcentricGrid",
	"TriangleRadial",
	"HexagonalGrid",
	"TriangleGrid",
	"StarGrid",
	"OctGrid",
	"SquareStarGrid",
	"SquareOffsetGrid",
	"CrossGrid",
	"CircleGrid",
	"CircleStarGrid",
	"LineGrid",
	"RadialGrid",
}

// String returns the name used in the serialized scene format.
func (k GridKind) String() string {
	if k < numGridKinds {
		return gridKindNames[k]
	}
	return fmt.Sprintf("GridKind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k GridKind) Valid() bool { return k < numGridKinds }

// ParseGridKind is the inverse of GridKind.String.
func ParseGridKind(name string) (GridKind, error) {
	for i, n := range gridKindNames {
		if n == name {
			return GridKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGridKind, name)
}

// isRadial reports whether the kind is drawn as spokes around its origin.
func (k GridKind) isRadial() bool { return k == TriangleRadial || k == RadialGrid }

const (
	triangleHeight = 0.86602540378443864676 // √3 / 2
	rootTwo        = math.Sqrt2
)

// FloodRadius returns the smallest radius around origin that covers the
// whole width×height canvas: the largest distance to any canvas corner.
func FloodRadius(origin Vec2, width, height float64) float64 {
	return max(
		origin.Dist(Vec2{0, 0}),
		origin.Dist(Vec2{0, height}),
		origin.Dist(Vec2{width, height}),
		origin.Dist(Vec2{width, 0}),
	)
}

// GridParams places one grid on the canvas.
type GridParams struct {
	Kind     GridKind
	Origin   Vec2
	Rotation float64 // radians
	Gap      float64 // motif spacing; must be > 0
	Stroke   float64 // line width
	Color    Color
}

// DrawGrid renders p into c, flooding a width×height canvas. The radius is
// derived from the origin with FloodRadius, so the pattern covers the canvas
// wherever the origin sits, including off-canvas.
//
// p.Gap must be positive; the step loops do not guard against it.
func DrawGrid(c Canvas, p GridParams, width, height float64) {
	r := FloodRadius(p.Origin, width, height)
	drawGridRadius(c, p, r, width)
}

func drawGridRadius(c Canvas, p GridParams, r, canvasWidth float64) {
	if !p.Kind.Valid() {
		return
	}
	g := gridDraw{r: r, gap: p.Gap, stroke: p.Stroke, canvasWidth: canvasWidth}
	style := Style{Stroke: p.Color, Width: p.Stroke}
	if p.Kind == TriangleRadial {
		style = Style{Fill: p.Color, Filled: true}
	}
	pn := newPen(c, style)
	pn.translate(p.Origin.X, p.Origin.Y)
	pn.rotate(p.Rotation)
	gridDrawers[p.Kind](pn, g)
}

// gridDraw carries the per-call parameters a drawer needs besides the pen.
type gridDraw struct {
	r, gap, stroke float64
	canvasWidth    float64
}

// gridDrawers is the kind → drawer lookup table. Each drawer receives a pen
// already translated to the origin and rotated.
var gridDrawers = [numGridKinds]func(*pen, gridDraw){
	SquareGrid:       drawSquare,
	ConcentricGrid:   drawConcentric,
	TriangleRadial:   drawTriangleRadial,
	HexagonalGrid:    dualGrid(hexTiling),
	TriangleGrid:     drawTriangle,
	StarGrid:         dualGrid(starTiling),
	OctGrid:          singleGrid(octTiling),
	SquareStarGrid:   singleGrid(squareStarTiling),
	SquareOffsetGrid: dualGrid(squareOffsetTiling),
	CrossGrid:        singleGrid(crossTiling),
	CircleGrid:       dualGrid(circleTiling),
	CircleStarGrid:   dualGrid(circleStarTiling),
	LineGrid:         drawLine,
	RadialGrid:       drawRadial,
}

// --- special-cased kinds ---

func drawSquare(p *pen, g gridDraw) {
	rsq := g.r * g.r
	for h := 0.0; h < g.r; h += g.gap {
		w := math.Sqrt(rsq - h*h)
		p.line(w, h, -w, h)
		p.line(h, w, h, -w)
		p.line(w, -h-g.gap, -w, -h-g.gap)
		p.line(-h-g.gap, w, -h-g.gap, -w)
	}
}

func drawConcentric(p *pen, g gridDraw) {
	for cr := 0.0; cr < g.r; cr += g.gap {
		p.arc(0, 0, cr, 0, 2*math.Pi)
	}
}

// radialStep returns the spoke angle step, π / ⌊gap⌋.
func radialStep(gap float64) float64 {
	return math.Pi / math.Trunc(gap)
}

func drawRadial(p *pen, g gridDraw) {
	step := radialStep(g.gap)
	for i := 0; float64(i) < g.gap*2; i++ {
		p.rotate(step)
		p.line(0, 0, 0, g.r)
	}
}

// drawTriangleRadial fills alternating wedges. The wedge half-width at the
// rim is the x component of (stroke, canvasWidth/2) rescaled to r.
func drawTriangleRadial(p *pen, g gridDraw) {
	up := Vec2{g.stroke, g.canvasWidth / 2}.WithLen(g.r).X
	step := radialStep(g.gap)
	for i := 0; float64(i) < g.gap*2; i++ {
		p.rotate(step)
		p.triangle(0, 0, up*2, g.r, -up*2, g.r)
	}
}

func drawTriangle(p *pen, g gridDraw) {
	rsq := g.r * g.r
	for h := 0.0; h < g.r; h += g.gap {
		w := math.Sqrt(rsq - h*h)
		p.push()
		for i := 0; i < 3; i++ {
			p.rotate(2 * math.Pi / 3)
			p.line(w, h, -w, h)
			p.line(w, -h-g.gap, -w, -h-g.gap)
		}
		p.pop()
	}
}

func drawLine(p *pen, g gridDraw) {
	rsq := g.r * g.r
	for h := 0.0; h < g.r; h += g.gap {
		w := math.Sqrt(rsq - h*h)
		p.line(-h-g.gap, -w, -h-g.gap, w)
		p.line(h, -w, h, w)
	}
}
