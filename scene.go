package moire

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// tickDT is the simulated time of one Update, in seconds.
const tickDT = 1.0 / 60

// pointerState tracks the single mouse pointer between frames.
type pointerState struct {
	down bool
	last Vec2
}

// Scene is the top-level object: it owns the widget registry, the grid
// composer or the auto grid (never both), the save pipeline and the input
// state. All methods must be called from the frame loop's goroutine.
type Scene struct {
	cfg   Config
	log   *slog.Logger
	debug bool
	rng   *rand.Rand

	width, height float64

	mode  Mode
	reg   *Registry
	grids *Composer
	auto  *AutoGrid

	showSteps bool
	countFade *Fade

	saver       *Saver
	pendingSave *bool

	pointer     pointerState
	injectQueue []syntheticEvent
	testRunner  *TestRunner
	lastUpdate  time.Duration
}

// NewScene validates cfg and returns an interactive scene with no grids.
// A nil logger discards.
func NewScene(cfg Config, logger *slog.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = orDiscard(logger)
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	w, h := float64(cfg.Width), float64(cfg.Height)
	reg := NewRegistry(cfg.Widgets)
	s := &Scene{
		cfg:       cfg,
		log:       logger,
		debug:     cfg.Debug,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		width:     w,
		height:    h,
		reg:       reg,
		grids:     NewComposer(reg, cfg.Interactive, Vec2{w / 2, h / 2}),
		countFade: NewFade(1, float32(cfg.HUDFade)),
		saver:     NewSaver(cfg.Output, logger),
	}
	logger.Debug("Scene created.", "width", cfg.Width, "height", cfg.Height, "seed", seed)
	return s, nil
}

// Mode returns the active mode.
func (s *Scene) Mode() Mode { return s.mode }

// Size returns the canvas size.
func (s *Scene) Size() (width, height int) { return s.cfg.Width, s.cfg.Height }

// Registry returns the widget registry.
func (s *Scene) Registry() *Registry { return s.reg }

// Composer returns the interactive grid instances.
func (s *Scene) Composer() *Composer { return s.grids }

// Auto returns the auto grid, or nil in interactive mode.
func (s *Scene) Auto() *AutoGrid { return s.auto }

// Saver returns the save pipeline.
func (s *Scene) Saver() *Saver { return s.saver }

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// stats are logged at debug level and grids with a non-positive gap panic
// before reaching the engine.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// --- Modes and grid selection ---

// SetMode switches between interactive and auto mode. Entering auto mode
// discards every grid instance and starts a square auto grid; leaving it
// discards the auto grid and resets the widget registry.
func (s *Scene) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	switch m {
	case ModeAuto:
		s.grids.Clear()
		s.reg.Clear()
		s.auto = s.newAuto(SquareGrid)
		s.countFade.To(0)
	default:
		s.auto = nil
		s.reg.Clear()
		s.reg.ResetSteps()
		s.reg.Visible = true
		s.showSteps = false
		s.countFade.To(1)
	}
	s.pointer = pointerState{}
	s.mode = m
	s.log.Info("Mode changed.", "mode", m.String())
}

// ToggleMode flips between the two modes.
func (s *Scene) ToggleMode() {
	if s.mode == ModeAuto {
		s.SetMode(ModeInteractive)
	} else {
		s.SetMode(ModeAuto)
	}
}

func (s *Scene) newAuto(kind GridKind) *AutoGrid {
	return NewAutoGrid(kind, s.width, s.height, s.cfg.Auto, s.rng)
}

// SelectKind spawns a grid of kind: a new instance in interactive mode, or
// a replacement auto grid in auto mode.
func (s *Scene) SelectKind(kind GridKind) {
	if !kind.Valid() {
		return
	}
	if s.mode == ModeAuto {
		s.auto = s.newAuto(kind)
		return
	}
	s.grids.Add(kind)
}

// KindForKey maps the number row to grid kinds: 1–9 select the first nine
// kinds, then 0, minus, equals, Backspace and Tab select the rest.
func KindForKey(k ebiten.Key) (GridKind, bool) {
	switch {
	case k >= ebiten.KeyDigit1 && k <= ebiten.KeyDigit9:
		return GridKind(k - ebiten.KeyDigit1), true
	case k == ebiten.KeyDigit0:
		return CrossGrid, true
	case k == ebiten.KeyMinus:
		return CircleGrid, true
	case k == ebiten.KeyEqual:
		return CircleStarGrid, true
	case k == ebiten.KeyBackspace:
		return LineGrid, true
	case k == ebiten.KeyTab:
		return RadialGrid, true
	}
	return 0, false
}

// directionForKey maps arrow keys to nudge directions.
func directionForKey(k ebiten.Key) (Direction, bool) {
	switch k {
	case ebiten.KeyArrowUp:
		return DirUp, true
	case ebiten.KeyArrowDown:
		return DirDown, true
	case ebiten.KeyArrowLeft:
		return DirLeft, true
	case ebiten.KeyArrowRight:
		return DirRight, true
	}
	return 0, false
}

// HandleKey applies one key press. Step adjustment, visibility toggles and
// nudges only exist in interactive mode; saving, mode switching and grid
// selection work in both.
func (s *Scene) HandleKey(k ebiten.Key) {
	if s.mode == ModeInteractive {
		switch k {
		case ebiten.KeyA:
			s.reg.DragStep.Decrease()
		case ebiten.KeyQ:
			s.reg.DragStep.Increase()
		case ebiten.KeyS:
			s.reg.ExtendStep.Decrease()
		case ebiten.KeyW:
			s.reg.ExtendStep.Increase()
		case ebiten.KeyD:
			s.reg.RotateStep.Decrease()
		case ebiten.KeyE:
			s.reg.RotateStep.Increase()
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
			s.reg.ToggleVisible()
			if s.reg.Visible {
				s.countFade.To(1)
			} else {
				s.countFade.To(0)
			}
		case ebiten.KeySpace:
			s.showSteps = !s.showSteps
		}
		if d, ok := directionForKey(k); ok {
			s.reg.Nudge(d)
		}
	}

	switch k {
	case ebiten.KeyF:
		s.RequestSave(false)
	case ebiten.KeyI:
		s.RequestSave(true)
	case ebiten.KeyP:
		s.ToggleMode()
	}
	if kind, ok := KindForKey(k); ok {
		s.SelectKind(kind)
	}
}

// --- Pointer ---

// Press starts a pointer press at p. Ignored in auto mode.
func (s *Scene) Press(p Vec2) {
	if s.mode == ModeInteractive {
		s.reg.Press(p)
	}
}

// Drag moves the held pointer to p. Ignored in auto mode.
func (s *Scene) Drag(p Vec2) {
	if s.mode == ModeInteractive {
		s.reg.Drag(p)
	}
}

// Release ends the pointer press. Ignored in auto mode.
func (s *Scene) Release() {
	if s.mode == ModeInteractive {
		s.reg.Release()
	}
}

// processPointer turns a sampled pointer state into press, drag and
// release events. A release at a new position delivers that last drag
// first.
func (s *Scene) processPointer(p Vec2, pressed bool) {
	ps := &s.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		s.Press(p)
	case pressed && ps.down:
		if p != ps.last {
			s.Drag(p)
		}
	case !pressed && ps.down:
		if p != ps.last {
			s.Drag(p)
		}
		ps.down = false
		s.Release()
	}
	ps.last = p
}

// --- Frame ---

// Update advances one tick: test script, one injected event, the auto
// oscillators and the HUD fade.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	if s.auto != nil {
		s.auto.Update()
	}
	s.countFade.Update(tickDT)
	if s.debug {
		s.lastUpdate = time.Since(t0)
	}
}

// Params returns the grids of the active mode in draw order, syncing the
// widget frames of interactive instances.
func (s *Scene) Params() []GridParams {
	if s.mode == ModeAuto {
		return s.auto.Params()
	}
	return s.grids.Params()
}

// Draw renders the grids and, in interactive mode, the widget glyphs.
// Killed widgets are swept here.
func (s *Scene) Draw(c Canvas) {
	var t0 time.Time
	var cnt *counter
	if s.debug {
		t0 = time.Now()
		cnt = &counter{inner: c}
		c = cnt
	}

	var drawn int
	if s.mode == ModeAuto {
		if s.debug {
			for _, p := range s.auto.Params() {
				debugCheckGap(p)
				drawn++
			}
		}
		s.auto.Draw(c)
	} else {
		for _, p := range s.grids.Params() {
			if s.debug {
				debugCheckGap(p)
			}
			DrawGrid(c, p, s.width, s.height)
			drawn++
		}
		s.reg.Draw(c)
	}

	if s.debug {
		s.debugLog(debugStats{
			updateTime: s.lastUpdate,
			drawTime:   time.Since(t0),
			primitives: cnt.n,
			widgets:    s.reg.Len(),
			grids:      drawn,
		})
	}
}

// HUDState returns what the overlay should show this frame.
func (s *Scene) HUDState() HUDState {
	return HUDState{
		Count:      s.grids.Len(),
		CountAlpha: s.countFade.Alpha(),
		ShowSteps:  s.mode == ModeInteractive && s.showSteps && s.reg.Visible,
		Steps:      [3]NudgeStep{s.reg.DragStep, s.reg.ExtendStep, s.reg.RotateStep},
	}
}

// --- Saving ---

// Document captures the active mode's grids in the scene text model.
func (s *Scene) Document() Document {
	return NewDocument(s.cfg.Width, s.cfg.Height, s.Params())
}

// RequestSave queues a save for the end of the frame, when the rendered
// image is available for the snapshot.
func (s *Scene) RequestSave(withImage bool) {
	if s.pendingSave != nil && *s.pendingSave {
		return
	}
	s.pendingSave = &withImage
}

// SavePending reports whether a save is queued.
func (s *Scene) SavePending() bool { return s.pendingSave != nil }

// FlushSave runs a queued save. snapshot is only called for image saves
// and may be nil when no frame is available. Errors are logged; the
// returned result lists what was written.
func (s *Scene) FlushSave(ctx context.Context, snapshot func() image.Image) SaveResult {
	if s.pendingSave == nil {
		return SaveResult{}
	}
	withImage := *s.pendingSave
	s.pendingSave = nil
	var snap image.Image
	if withImage && snapshot != nil {
		snap = snapshot()
	}
	res, err := s.Save(ctx, withImage, snap)
	if err != nil {
		s.log.Error("Save failed.", "error", err)
	}
	return res
}

// Save writes the current scene immediately.
func (s *Scene) Save(ctx context.Context, withImage bool, snap image.Image) (SaveResult, error) {
	if s.mode == ModeAuto && s.auto == nil {
		return SaveResult{}, errors.New("moire: auto mode without an auto grid")
	}
	res, err := s.saver.Save(ctx, s.mode, s.Document(), withImage, snap)
	if err != nil {
		return res, fmt.Errorf("save %s scene: %w", s.mode, err)
	}
	return res, nil
}

// Load replaces the interactive instances with the grids of doc, scaled
// from doc's canvas to this scene's canvas. Loading switches to
// interactive mode.
func (s *Scene) Load(doc Document) error {
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("load: %w: canvas size %dx%d", ErrMalformedScene, doc.Width, doc.Height)
	}
	s.SetMode(ModeInteractive)
	s.grids.Clear()
	sx := s.width / float64(doc.Width)
	sy := s.height / float64(doc.Height)
	for _, rec := range doc.Grids {
		p := rec.Params()
		p.Origin = Vec2{p.Origin.X * sx, p.Origin.Y * sy}
		s.grids.Add(p.Kind).Apply(p)
	}
	s.log.Info("Scene loaded.", "grids", len(doc.Grids))
	return nil
}
