package moire

import "fmt"

// --- Hit shapes ---

// HitCircle is a circular hit area in screen coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies strictly inside the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy < c.Radius*c.Radius
}

func hitAt(center Vec2, r float64) HitCircle {
	return HitCircle{CenterX: center.X, CenterY: center.Y, Radius: r}
}

// --- Widget contract ---

// Widget is an interactive control owned by a Registry. Widgets keep their
// own screen-space geometry; nothing is transformed by a parent node, so hit
// tests compare the raw pointer position with the glyph position.
type Widget interface {
	// Hit reports whether p falls on the widget's glyph.
	Hit(p Vec2) bool
	// Click is delivered once when a press selects the widget.
	Click()
	// Drag is delivered for every pointer move while the widget is pressed.
	Drag(p Vec2)
	// Release is delivered when the press ends.
	Release()
	// Nudge applies one keyboard step in direction d.
	Nudge(d Direction)
	// Draw paints the widget glyph.
	Draw(c Canvas)
	// Kill marks the widget for removal on the next draw pass.
	Kill()
	// Killed reports whether Kill has been called.
	Killed() bool

	base() *widgetBase
}

// widgetBase is embedded by every widget kind.
type widgetBase struct {
	reg   *Registry
	color Color
	dead  bool
}

func (b *widgetBase) base() *widgetBase { return b }

func (b *widgetBase) Click()          {}
func (b *widgetBase) Drag(Vec2)       {}
func (b *widgetBase) Release()        {}
func (b *widgetBase) Nudge(Direction) {}

// Kill marks the widget dead. A dead widget stays hit-testable until the
// next Registry.Draw, but stops being a nudge target immediately.
func (b *widgetBase) Kill() {
	if b.dead {
		return
	}
	b.dead = true
	if b.reg.target != nil && b.reg.target.base() == b {
		b.reg.target = nil
	}
}

// Killed reports whether Kill has been called.
func (b *widgetBase) Killed() bool { return b.dead }

// Color returns the glyph color.
func (b *widgetBase) Color() Color { return b.color }

// glyphWidth is the stroke width of every widget outline.
const glyphWidth = 3

func (b *widgetBase) outline() Style { return Style{Stroke: b.color, Width: glyphWidth} }

func (b *widgetBase) solid() Style {
	return Style{Stroke: b.color, Width: glyphWidth, Fill: b.color, Filled: true}
}

// --- Registry ---

// Registry is the arena that owns every widget of a scene. Widgets are
// appended on construction and physically removed only during Draw, which
// walks the list backwards so removal never skips an element.
//
// Pointer dispatch is a two-state machine: idle, or pressed on one widget.
// A press selects the first widget in registration order whose hit test
// succeeds (first match wins, not topmost). Drags go to the pressed widget
// without re-testing. Release returns to idle but keeps the widget as the
// nudge target until another successful press or until it is killed.
type Registry struct {
	widgets []Widget
	pressed Widget
	target  Widget

	// Visible gates glyph rendering only; interaction is unaffected.
	Visible bool

	cfg WidgetConfig

	// Nudge steps shared by every widget of a kind.
	DragStep   NudgeStep
	ExtendStep NudgeStep
	RotateStep NudgeStep
}

// NewRegistry returns an empty, visible registry. cfg must have passed
// Config.Validate.
func NewRegistry(cfg WidgetConfig) *Registry {
	r := &Registry{Visible: true, cfg: cfg}
	r.ResetSteps()
	return r
}

// ResetSteps restores every nudge step to its configured default.
func (r *Registry) ResetSteps() {
	r.DragStep = r.cfg.DragStep
	r.ExtendStep = r.cfg.ExtendStep
	r.RotateStep = r.cfg.RotateStep
}

// Config returns the geometry the registry builds widgets with.
func (r *Registry) Config() WidgetConfig { return r.cfg }

func (r *Registry) add(w Widget) {
	if w.base().reg != r {
		panic(fmt.Sprintf("moire: widget %T registered with a foreign registry", w))
	}
	r.widgets = append(r.widgets, w)
}

// Len returns the number of widgets still held, including killed widgets
// that have not been swept yet.
func (r *Registry) Len() int { return len(r.widgets) }

// Widgets returns the registry's widget list in registration order. The
// returned slice MUST NOT be mutated.
func (r *Registry) Widgets() []Widget { return r.widgets }

// Pressed returns the widget currently held by the pointer, or nil.
func (r *Registry) Pressed() Widget { return r.pressed }

// Target returns the widget that receives keyboard nudges, or nil.
func (r *Registry) Target() Widget { return r.target }

// Press selects the first widget hit at p and delivers Click. A press that
// hits nothing leaves both the pressed widget and the nudge target alone.
// It reports whether a widget was selected.
func (r *Registry) Press(p Vec2) bool {
	for _, w := range r.widgets {
		if w.Hit(p) {
			r.pressed = w
			r.target = w
			if w.Killed() {
				r.target = nil
			}
			w.Click()
			return true
		}
	}
	return false
}

// Drag forwards p to the pressed widget, if any.
func (r *Registry) Drag(p Vec2) {
	if r.pressed != nil {
		r.pressed.Drag(p)
	}
}

// Release ends the current press.
func (r *Registry) Release() {
	if r.pressed == nil {
		return
	}
	w := r.pressed
	r.pressed = nil
	w.Release()
}

// Nudge applies one keyboard step to the nudge target. It reports whether
// a target existed.
func (r *Registry) Nudge(d Direction) bool {
	if r.target == nil {
		return false
	}
	r.target.Nudge(d)
	return true
}

// ToggleVisible flips glyph rendering.
func (r *Registry) ToggleVisible() { r.Visible = !r.Visible }

// Sweep physically removes killed widgets. It is the only place the list
// shrinks.
func (r *Registry) Sweep() {
	for i := len(r.widgets) - 1; i >= 0; i-- {
		if r.widgets[i].Killed() {
			r.remove(i)
		}
	}
}

// Draw sweeps killed widgets and, when visible, paints every live glyph.
// Glyphs are painted in reverse registration order, so the widget that wins
// a press is drawn last, on top.
func (r *Registry) Draw(c Canvas) {
	for i := len(r.widgets) - 1; i >= 0; i-- {
		w := r.widgets[i]
		if w.Killed() {
			r.remove(i)
			continue
		}
		if r.Visible {
			w.Draw(c)
		}
	}
}

func (r *Registry) remove(i int) {
	copy(r.widgets[i:], r.widgets[i+1:])
	r.widgets[len(r.widgets)-1] = nil
	r.widgets = r.widgets[:len(r.widgets)-1]
}

// Clear kills every widget and forgets the press and nudge target.
func (r *Registry) Clear() {
	for _, w := range r.widgets {
		w.Kill()
	}
	r.pressed = nil
	r.target = nil
	r.Sweep()
}
