package moire

// Style describes how a primitive is painted. A zero Width with Filled set
// paints fill only, matching the engine's wedge triangles.
type Style struct {
	Stroke Color
	Width  float64
	Fill   Color
	Filled bool
}

// Stroked reports whether the outline should be painted.
func (s Style) Stroked() bool { return s.Width > 0 && s.Stroke.A > 0 }

// Canvas receives world-space primitives from the grid engine and the
// widget overlay. Implementations: Recorder (tests, stats), EbitenCanvas
// (live window), ImageCanvas (offline raster) and SVGCanvas (vector export).
type Canvas interface {
	Line(a, b Vec2, s Style)
	Polyline(pts []Vec2, closed bool, s Style)
	// Arc draws a circular arc around c from start to end, in radians.
	// A sweep of 2π draws a full circle.
	Arc(c Vec2, r, start, end float64, s Style)
	Triangle(a, b, c Vec2, s Style)
	Circle(c Vec2, r float64, s Style)
}

// PrimitiveType identifies a recorded primitive.
type PrimitiveType uint8

const (
	PrimLine PrimitiveType = iota
	PrimPolyline
	PrimArc
	PrimTriangle
	PrimCircle
)

// Primitive is a single recorded canvas call.
type Primitive struct {
	Type   PrimitiveType
	Points []Vec2
	Closed bool
	Radius float64
	Start  float64
	End    float64
	Style  Style
}

// Recorder is a Canvas that keeps every primitive it receives.
type Recorder struct {
	Prims []Primitive
}

// Reset discards all recorded primitives, keeping capacity.
func (r *Recorder) Reset() { r.Prims = r.Prims[:0] }

// Count returns the number of recorded primitives of type t.
func (r *Recorder) Count(t PrimitiveType) int {
	n := 0
	for i := range r.Prims {
		if r.Prims[i].Type == t {
			n++
		}
	}
	return n
}

func (r *Recorder) Line(a, b Vec2, s Style) {
	r.Prims = append(r.Prims, Primitive{Type: PrimLine, Points: []Vec2{a, b}, Style: s})
}

func (r *Recorder) Polyline(pts []Vec2, closed bool, s Style) {
	cp := make([]Vec2, len(pts))
	copy(cp, pts)
	r.Prims = append(r.Prims, Primitive{Type: PrimPolyline, Points: cp, Closed: closed, Style: s})
}

func (r *Recorder) Arc(c Vec2, rad, start, end float64, s Style) {
	r.Prims = append(r.Prims, Primitive{Type: PrimArc, Points: []Vec2{c}, Radius: rad, Start: start, End: end, Style: s})
}

func (r *Recorder) Triangle(a, b, c Vec2, s Style) {
	r.Prims = append(r.Prims, Primitive{Type: PrimTriangle, Points: []Vec2{a, b, c}, Style: s})
}

func (r *Recorder) Circle(c Vec2, rad float64, s Style) {
	r.Prims = append(r.Prims, Primitive{Type: PrimCircle, Points: []Vec2{c}, Radius: rad, Style: s})
}

// counter is a Canvas that only counts primitives; the scene uses it to
// report frame stats in debug mode.
type counter struct {
	inner Canvas
	n     int
}

func (c *counter) Line(a, b Vec2, s Style) { c.n++; c.inner.Line(a, b, s) }

func (c *counter) Polyline(pts []Vec2, closed bool, s Style) {
	c.n++
	c.inner.Polyline(pts, closed, s)
}

func (c *counter) Arc(ctr Vec2, r, start, end float64, s Style) {
	c.n++
	c.inner.Arc(ctr, r, start, end, s)
}

func (c *counter) Triangle(a, b, d Vec2, s Style) { c.n++; c.inner.Triangle(a, b, d, s) }

func (c *counter) Circle(ctr Vec2, r float64, s Style) { c.n++; c.inner.Circle(ctr, r, s) }
