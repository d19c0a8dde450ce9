package moire

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Scalar widget layout of a grid instance: the base angle of each ray and
// its glyph color. Rays fan out clockwise from the positive X axis.
var (
	gapRayAngle    = 0.0
	strokeRayAngle = math.Pi / 2
	hueRayAngle    = math.Pi / 8
	satRayAngle    = math.Pi / 4
	briRayAngle    = 3 * math.Pi / 8
	alphaRayAngle  = 3 * math.Pi / 4

	rotationBaseAngle = math.Pi

	copyButtonOffset   = Vec2{25, -40}
	deleteButtonOffset = Vec2{-25, -40}
)

var (
	gapGlyph      = RGB255(0, 0, 255, 255)
	strokeGlyph   = RGB255(255, 255, 0, 255)
	hueGlyph      = RGB255(255, 100, 100, 255)
	satGlyph      = RGB255(100, 255, 100, 255)
	briGlyph      = RGB255(100, 100, 255, 255)
	alphaGlyph    = RGB255(255, 255, 100, 255)
	positionGlyph = RGB255(255, 0, 255, 255)
	rotationGlyph = RGB255(0, 255, 255, 255)
	copyGlyph     = RGB255(0, 255, 0, 255)
	deleteGlyph   = RGB255(255, 0, 0, 255)
)

// Colour scalar ranges. Saturation is stored inverted: the grid saturation
// is satInvert minus the widget value, so a fresh instance (widget at its
// maximum) is unsaturated white.
const (
	hueMax    = 255
	satMin    = 100
	satInvert = 355
	briMax    = 255
	alphaMax  = 255
)

// GridInstance is one widget-controlled grid. Its parameters live entirely
// in the widgets it owns; Params reads them back after syncing the frame.
type GridInstance struct {
	Kind GridKind

	position *DragPoint
	rotation *RotationHandle
	gap      *ExtendScalar
	stroke   *ExtendScalar
	hue      *ExtendScalar
	sat      *ExtendScalar
	bri      *ExtendScalar
	alpha    *ExtendScalar
	copyBtn  *Button
	delBtn   *Button

	owner *Composer
}

// Position returns the grid origin.
func (g *GridInstance) Position() Vec2 { return g.position.Position() }

// Rotation returns the grid rotation in [0, 2π).
func (g *GridInstance) Rotation() float64 { return g.rotation.Rotation() }

// PositionWidget returns the drag point that owns the origin.
func (g *GridInstance) PositionWidget() *DragPoint { return g.position }

// RotationWidget returns the handle that owns the rotation.
func (g *GridInstance) RotationWidget() *RotationHandle { return g.rotation }

// Scalars returns the gap, stroke, hue, saturation, brightness and alpha
// widgets, in that order.
func (g *GridInstance) Scalars() [6]*ExtendScalar {
	return [6]*ExtendScalar{g.gap, g.stroke, g.hue, g.sat, g.bri, g.alpha}
}

// CopyButton returns the button that duplicates the instance.
func (g *GridInstance) CopyButton() *Button { return g.copyBtn }

// DeleteButton returns the button that removes the instance.
func (g *GridInstance) DeleteButton() *Button { return g.delBtn }

// Widgets returns every widget the instance owns, in registration order.
// The position point is first, so it wins presses on the centre.
func (g *GridInstance) Widgets() []Widget {
	return []Widget{
		g.position,
		g.gap, g.stroke, g.hue, g.sat, g.bri, g.alpha,
		g.rotation, g.copyBtn, g.delBtn,
	}
}

// sync pushes the position into every dependent widget, then the rotation.
// Rotation recomputes offsets around the current anchor, so the order is
// fixed.
func (g *GridInstance) sync() {
	p := g.position.Position()
	for _, s := range g.Scalars() {
		s.SetAnchor(p)
	}
	g.rotation.SetAnchor(p)
	g.copyBtn.SetAnchor(p)
	g.delBtn.SetAnchor(p)

	th := g.rotation.Rotation()
	for _, s := range g.Scalars() {
		s.SetRotation(th)
	}
	g.copyBtn.SetRotation(th)
	g.delBtn.SetRotation(th)
}

// Color composes the grid color from the colour scalars.
func (g *GridInstance) Color() Color {
	return HSB(g.hue.Value(), satInvert-g.sat.Value(), g.bri.Value(), g.alpha.Value())
}

// Params syncs the widget frame and returns the grid to draw.
func (g *GridInstance) Params() GridParams {
	g.sync()
	return GridParams{
		Kind:     g.Kind,
		Origin:   g.position.Position(),
		Rotation: g.rotation.Rotation(),
		Gap:      g.gap.Value(),
		Stroke:   g.stroke.Value(),
		Color:    g.Color(),
	}
}

// Apply sets every widget so Params reproduces p as closely as the scalar
// ranges allow. The colour is decomposed back to hue, saturation and
// brightness.
func (g *GridInstance) Apply(p GridParams) {
	g.position.SetPosition(p.Origin)
	g.rotation.SetAnchor(p.Origin)
	g.rotation.SetRotation(p.Rotation)
	g.gap.Restore(p.Gap)
	g.stroke.Restore(p.Stroke)

	h, s, v := colorful.Color{R: clamp01(p.Color.R), G: clamp01(p.Color.G), B: clamp01(p.Color.B)}.Hsv()
	g.hue.Restore(h / 360 * hueMax)
	g.sat.Restore(satInvert - s*255)
	g.bri.Restore(v * briMax)
	g.alpha.Restore(p.Color.A * alphaMax)
	g.sync()
}

// Composer owns the interactive grid instances, in creation order.
type Composer struct {
	reg       *Registry
	cfg       InteractiveConfig
	center    Vec2
	instances []*GridInstance
}

// NewComposer returns an empty composer that builds widgets in reg and
// centres new instances on center.
func NewComposer(reg *Registry, cfg InteractiveConfig, center Vec2) *Composer {
	if reg == nil {
		panic("moire: NewComposer with nil registry")
	}
	return &Composer{reg: reg, cfg: cfg, center: center}
}

// Len returns the number of live instances.
func (c *Composer) Len() int { return len(c.instances) }

// Instances returns the live instances in creation order. The returned
// slice MUST NOT be mutated.
func (c *Composer) Instances() []*GridInstance { return c.instances }

// Add creates an instance of kind at the canvas centre with rotation 0, a
// white colour and gap and stroke at half range.
func (c *Composer) Add(kind GridKind) *GridInstance {
	at := c.center
	r := c.reg
	g := &GridInstance{
		Kind:     kind,
		position: r.NewDragPoint(at, positionGlyph),
		gap:      r.NewExtendScalar(at, gapRayAngle, c.cfg.GapMin, c.cfg.GapMax, gapGlyph),
		stroke:   r.NewExtendScalar(at, strokeRayAngle, c.cfg.StrokeMin, c.cfg.StrokeMax, strokeGlyph),
		hue:      r.NewExtendScalar(at, hueRayAngle, 0, hueMax, hueGlyph),
		sat:      r.NewExtendScalar(at, satRayAngle, satMin, satInvert, satGlyph),
		bri:      r.NewExtendScalar(at, briRayAngle, 0, briMax, briGlyph),
		alpha:    r.NewExtendScalar(at, alphaRayAngle, 0, alphaMax, alphaGlyph),
	}
	g.sat.SetValue(satInvert)
	g.bri.SetValue(briMax)
	g.alpha.SetValue(alphaMax)
	g.rotation = r.NewRotationHandle(at, rotationBaseAngle, rotationGlyph)
	c.attach(g)
	return g
}

// attach gives g fresh copy and delete buttons and appends it.
func (c *Composer) attach(g *GridInstance) {
	at := g.position.Position()
	g.owner = c
	g.copyBtn = c.reg.NewButton(at, copyButtonOffset, copyGlyph, func() { c.Copy(g) })
	g.delBtn = c.reg.NewButton(at, deleteButtonOffset, deleteGlyph, func() { c.Delete(g) })
	c.instances = append(c.instances, g)
}

// Copy duplicates g with independent widgets at the same place.
func (c *Composer) Copy(g *GridInstance) *GridInstance {
	if g.owner != c {
		return nil
	}
	cp := &GridInstance{
		Kind:     g.Kind,
		position: g.position.Copy(),
		gap:      g.gap.Copy(),
		stroke:   g.stroke.Copy(),
		hue:      g.hue.Copy(),
		sat:      g.sat.Copy(),
		bri:      g.bri.Copy(),
		alpha:    g.alpha.Copy(),
		rotation: g.rotation.Copy(),
	}
	c.attach(cp)
	return cp
}

// Delete kills all of g's widgets and drops it. Deleting twice is a no-op.
func (c *Composer) Delete(g *GridInstance) {
	if g.owner != c {
		return
	}
	for _, w := range g.Widgets() {
		w.Kill()
	}
	g.owner = nil
	for i, it := range c.instances {
		if it == g {
			c.instances = append(c.instances[:i], c.instances[i+1:]...)
			break
		}
	}
}

// Clear deletes every instance.
func (c *Composer) Clear() {
	for len(c.instances) > 0 {
		c.Delete(c.instances[len(c.instances)-1])
	}
}

// Params syncs every instance and returns their grids in creation order.
func (c *Composer) Params() []GridParams {
	out := make([]GridParams, 0, len(c.instances))
	for _, g := range c.instances {
		out = append(out, g.Params())
	}
	return out
}

// Draw renders every instance onto a width×height canvas.
func (c *Composer) Draw(cv Canvas, width, height float64) {
	for _, p := range c.Params() {
		DrawGrid(cv, p, width, height)
	}
}
