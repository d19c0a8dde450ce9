package moire

import "math"

// NudgeStep is the keyboard step of one widget kind. Delta is applied per
// arrow key; DeltaDelta is how much Increase and Decrease change Delta.
type NudgeStep struct {
	Delta      float64
	DeltaDelta float64
}

// Increase grows the step by DeltaDelta.
func (s *NudgeStep) Increase() { s.Delta = math.Abs(s.Delta + s.DeltaDelta) }

// Decrease shrinks the step by DeltaDelta. The step never goes negative:
// shrinking past zero reflects it back.
func (s *NudgeStep) Decrease() { s.Delta = math.Abs(s.Delta - s.DeltaDelta) }

// WidgetConfig holds the glyph geometry and default nudge steps of every
// widget kind.
type WidgetConfig struct {
	DragRadius   float64
	ExtendRadius float64
	// ExtendRange is the longest offset an ExtendScalar can reach, in pixels.
	ExtendRange  float64
	RotateLength float64
	RotateRadius float64
	ButtonRadius float64

	DragStep   NudgeStep
	ExtendStep NudgeStep
	RotateStep NudgeStep // radians
}

// --- DragPoint ---

// DragPoint is a free 2D point.
type DragPoint struct {
	widgetBase
	pos Vec2
}

// NewDragPoint registers a drag point at pos.
func (r *Registry) NewDragPoint(pos Vec2, col Color) *DragPoint {
	w := &DragPoint{widgetBase: widgetBase{reg: r, color: col}, pos: pos}
	r.add(w)
	return w
}

// Position returns the point.
func (w *DragPoint) Position() Vec2 { return w.pos }

// SetPosition moves the point.
func (w *DragPoint) SetPosition(p Vec2) { w.pos = p }

func (w *DragPoint) Hit(p Vec2) bool {
	return hitAt(w.pos, w.reg.cfg.DragRadius).Contains(p.X, p.Y)
}

func (w *DragPoint) Drag(p Vec2) { w.pos = p }

func (w *DragPoint) Nudge(d Direction) {
	step := w.reg.DragStep.Delta
	switch d {
	case DirUp:
		w.pos.Y -= step
	case DirDown:
		w.pos.Y += step
	case DirLeft:
		w.pos.X -= step
	case DirRight:
		w.pos.X += step
	}
}

func (w *DragPoint) Draw(c Canvas) {
	c.Circle(w.pos, w.reg.cfg.DragRadius, w.solid())
}

// Copy registers an independent drag point with the same state.
func (w *DragPoint) Copy() *DragPoint { return w.reg.NewDragPoint(w.pos, w.color) }

// --- ExtendScalar ---

// ExtendScalar is a bounded scalar edited by pulling a handle along a ray
// from its anchor. The ray points at base plus the owner's rotation; the
// handle's distance from the anchor (its magnitude, in [0, ExtendRange])
// encodes the value.
//
// The value is magnitude/ExtendRange·Max clamped to [Min, Max]. SetValue
// inverts that map onto [1, ExtendRange] rather than [0, ExtendRange], so
// reading back a value set with SetValue overshoots by up to
// Max/ExtendRange, most visibly at Min. Restore uses the exact inverse,
// which can leave the handle on its anchor.
type ExtendScalar struct {
	widgetBase
	anchor    Vec2
	offset    Vec2
	baseAngle float64
	min, max  float64
}

// NewExtendScalar registers a scalar anchored at anchor whose ray points at
// angle base. The handle starts at half range. max must be positive.
func (r *Registry) NewExtendScalar(anchor Vec2, base, min, max float64, col Color) *ExtendScalar {
	w := &ExtendScalar{
		widgetBase: widgetBase{reg: r, color: col},
		anchor:     anchor,
		offset:     FromAngle(base).Scale(r.cfg.ExtendRange / 2),
		baseAngle:  base,
		min:        min,
		max:        max,
	}
	r.add(w)
	return w
}

// Bounds returns the value range.
func (w *ExtendScalar) Bounds() (min, max float64) { return w.min, w.max }

// Anchor returns the ray origin.
func (w *ExtendScalar) Anchor() Vec2 { return w.anchor }

// Tip returns the handle position.
func (w *ExtendScalar) Tip() Vec2 { return w.anchor.Add(w.offset) }

// Magnitude returns the handle's distance from the anchor.
func (w *ExtendScalar) Magnitude() float64 { return w.offset.Len() }

// Value returns the scalar, always within [Min, Max].
func (w *ExtendScalar) Value() float64 {
	return clamp(mapRange(w.offset.Len(), 0, w.reg.cfg.ExtendRange, 0, w.max), w.min, w.max)
}

// SetValue positions the handle for v. v is clamped to [Min, Max] and
// mapped onto magnitudes [1, ExtendRange].
func (w *ExtendScalar) SetValue(v float64) {
	w.setMagnitude(mapRange(clamp(v, w.min, w.max), 0, w.max, 1, w.reg.cfg.ExtendRange))
}

// Restore positions the handle so Value returns v exactly (for v within
// [Min, Max]). It is used when rebuilding saved scenes.
func (w *ExtendScalar) Restore(v float64) {
	w.setMagnitude(mapRange(clamp(v, w.min, w.max), 0, w.max, 0, w.reg.cfg.ExtendRange))
}

// setMagnitude rescales the offset, keeping its direction even when the
// current magnitude is zero.
func (w *ExtendScalar) setMagnitude(m float64) {
	dir := w.offset.Normalize()
	if dir == (Vec2{}) {
		dir = FromAngle(w.baseAngle)
	}
	w.offset = dir.Scale(m)
}

// SetAnchor moves the ray origin, carrying the handle with it.
func (w *ExtendScalar) SetAnchor(p Vec2) { w.anchor = p }

// SetRotation points the ray at base+th, keeping the magnitude.
func (w *ExtendScalar) SetRotation(th float64) {
	w.offset = FromAngle(th + w.baseAngle).Scale(w.offset.Len())
}

func (w *ExtendScalar) Hit(p Vec2) bool {
	return hitAt(w.Tip(), w.reg.cfg.ExtendRadius).Contains(p.X, p.Y)
}

// Drag projects the pointer onto the ray and uses the projection, clamped
// to [1, ExtendRange], as the new magnitude. Pulling behind the anchor pins
// the handle at 1 instead of flipping the ray.
func (w *ExtendScalar) Drag(p Vec2) {
	dir := w.offset.Normalize()
	if dir == (Vec2{}) {
		dir = FromAngle(w.baseAngle)
	}
	l := p.Sub(w.anchor).Dot(dir)
	w.offset = dir.Scale(clamp(l, 1, w.reg.cfg.ExtendRange))
}

// Nudge lengthens the handle on up/right and shortens it on down/left,
// staying within [1, ExtendRange].
func (w *ExtendScalar) Nudge(d Direction) {
	step := w.reg.ExtendStep.Delta
	switch d {
	case DirUp, DirRight:
		w.setMagnitude(clamp(w.offset.Len()+step, 1, w.reg.cfg.ExtendRange))
	case DirDown, DirLeft:
		w.setMagnitude(clamp(w.offset.Len()-step, 1, w.reg.cfg.ExtendRange))
	}
}

func (w *ExtendScalar) Draw(c Canvas) {
	tip := w.Tip()
	c.Circle(tip, w.reg.cfg.ExtendRadius, w.outline())
	c.Line(w.anchor, tip, w.outline())
}

// Copy registers an independent scalar with the same state.
func (w *ExtendScalar) Copy() *ExtendScalar {
	cp := &ExtendScalar{
		widgetBase: widgetBase{reg: w.reg, color: w.color},
		anchor:     w.anchor,
		offset:     w.offset,
		baseAngle:  w.baseAngle,
		min:        w.min,
		max:        w.max,
	}
	w.reg.add(cp)
	return cp
}

// --- RotationHandle ---

// RotationHandle is an angle edited by swinging a fixed-length head around
// its anchor. The reported rotation is measured from the base angle, so a
// fresh handle reads 0 whatever way it points.
type RotationHandle struct {
	widgetBase
	anchor    Vec2
	head      Vec2
	baseAngle float64
}

// NewRotationHandle registers a handle at anchor whose head points at base.
func (r *Registry) NewRotationHandle(anchor Vec2, base float64, col Color) *RotationHandle {
	w := &RotationHandle{
		widgetBase: widgetBase{reg: r, color: col},
		anchor:     anchor,
		head:       FromAngle(base).Scale(r.cfg.RotateLength),
		baseAngle:  normalizeAngle(base),
	}
	r.add(w)
	return w
}

// Rotation returns the angle relative to base, in [0, 2π).
func (w *RotationHandle) Rotation() float64 {
	return normalizeAngle(w.head.Heading() - w.baseAngle)
}

// SetRotation points the head at base+th.
func (w *RotationHandle) SetRotation(th float64) {
	w.head = FromAngle(th + w.baseAngle).Scale(w.head.Len())
}

// SetAnchor moves the pivot, carrying the head with it.
func (w *RotationHandle) SetAnchor(p Vec2) { w.anchor = p }

// Head returns the head position.
func (w *RotationHandle) Head() Vec2 { return w.anchor.Add(w.head) }

func (w *RotationHandle) Hit(p Vec2) bool {
	return hitAt(w.Head(), w.reg.cfg.RotateRadius).Contains(p.X, p.Y)
}

// Drag points the head at the pointer. A pointer exactly on the anchor has
// no direction and is ignored.
func (w *RotationHandle) Drag(p Vec2) {
	d := p.Sub(w.anchor)
	if d == (Vec2{}) {
		return
	}
	w.head = d.WithLen(w.reg.cfg.RotateLength)
}

func (w *RotationHandle) Nudge(d Direction) {
	step := w.reg.RotateStep.Delta
	switch d {
	case DirUp, DirRight:
		w.SetRotation(w.Rotation() + step)
	case DirDown, DirLeft:
		w.SetRotation(w.Rotation() - step)
	}
}

func (w *RotationHandle) Draw(c Canvas) {
	head := w.Head()
	c.Circle(head, w.reg.cfg.RotateRadius, w.outline())
	c.Line(w.anchor, head, w.outline())
}

// Copy registers an independent handle with the same state.
func (w *RotationHandle) Copy() *RotationHandle {
	cp := &RotationHandle{
		widgetBase: widgetBase{reg: w.reg, color: w.color},
		anchor:     w.anchor,
		head:       w.head,
		baseAngle:  w.baseAngle,
	}
	w.reg.add(cp)
	return cp
}

// --- Button ---

// Button fires a callback when pressed. It sits at a fixed offset from its
// anchor; the offset turns with the owner's rotation.
type Button struct {
	widgetBase
	anchor    Vec2
	offset    Vec2
	baseAngle float64
	onClick   func()
}

// NewButton registers a button at anchor+offset.
func (r *Registry) NewButton(anchor, offset Vec2, col Color, onClick func()) *Button {
	w := &Button{
		widgetBase: widgetBase{reg: r, color: col},
		anchor:     anchor,
		offset:     offset,
		baseAngle:  offset.Heading(),
		onClick:    onClick,
	}
	r.add(w)
	return w
}

// Center returns the button position.
func (w *Button) Center() Vec2 { return w.anchor.Add(w.offset) }

// SetAnchor moves the button with its owner.
func (w *Button) SetAnchor(p Vec2) { w.anchor = p }

// SetRotation turns the offset to base+th, keeping its length.
func (w *Button) SetRotation(th float64) {
	w.offset = FromAngle(th + w.baseAngle).Scale(w.offset.Len())
}

func (w *Button) Hit(p Vec2) bool {
	return hitAt(w.Center(), w.reg.cfg.ButtonRadius).Contains(p.X, p.Y)
}

func (w *Button) Click() {
	if w.onClick != nil {
		w.onClick()
	}
}

func (w *Button) Draw(c Canvas) {
	c.Circle(w.Center(), w.reg.cfg.ButtonRadius, w.solid())
}

// Copy registers an independent button with the same offset and callback.
func (w *Button) Copy() *Button {
	cp := &Button{
		widgetBase: widgetBase{reg: w.reg, color: w.color},
		anchor:     w.anchor,
		offset:     w.offset,
		baseAngle:  w.baseAngle,
		onClick:    w.onClick,
	}
	w.reg.add(cp)
	return cp
}
