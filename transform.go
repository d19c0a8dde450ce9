package moire

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func translation(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

func rotation(th float64) [6]float64 {
	sin, cos := math.Sincos(th)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// pen is the engine's drawing state: a current transform plus a save stack,
// and the canvas primitives are emitted to. Only rigid transforms (translate,
// rotate) are ever applied, so circles stay circles and arc angles shift by
// the accumulated rotation.
type pen struct {
	canvas Canvas
	style  Style
	m      [6]float64
	stack  [][6]float64
}

func newPen(c Canvas, s Style) *pen {
	return &pen{canvas: c, style: s, m: identityTransform}
}

func (p *pen) push() { p.stack = append(p.stack, p.m) }

func (p *pen) pop() {
	n := len(p.stack) - 1
	p.m = p.stack[n]
	p.stack = p.stack[:n]
}

func (p *pen) translate(x, y float64) { p.m = multiplyAffine(p.m, translation(x, y)) }

func (p *pen) rotate(th float64) { p.m = multiplyAffine(p.m, rotation(th)) }

// angle is the accumulated rotation of the current transform.
func (p *pen) angle() float64 { return math.Atan2(p.m[1], p.m[0]) }

func (p *pen) world(x, y float64) Vec2 {
	wx, wy := transformPoint(p.m, x, y)
	return Vec2{wx, wy}
}

func (p *pen) line(x1, y1, x2, y2 float64) {
	p.canvas.Line(p.world(x1, y1), p.world(x2, y2), p.style)
}

// shape emits a polyline through the given local points (x0, y0, x1, y1, ...).
func (p *pen) shape(closed bool, coords ...float64) {
	pts := make([]Vec2, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, p.world(coords[i], coords[i+1]))
	}
	p.canvas.Polyline(pts, closed, p.style)
}

// arc emits a circular arc of radius r around the local point (x, y) from
// start to end (radians, clockwise in screen space).
func (p *pen) arc(x, y, r, start, end float64) {
	rot := p.angle()
	p.canvas.Arc(p.world(x, y), r, start+rot, end+rot, p.style)
}

func (p *pen) triangle(x1, y1, x2, y2, x3, y3 float64) {
	p.canvas.Triangle(p.world(x1, y1), p.world(x2, y2), p.world(x3, y3), p.style)
}
