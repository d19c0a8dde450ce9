package moire

import (
	"context"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// ShowFPS prints the actual FPS and TPS in the top-right corner.
	ShowFPS bool
	// ExitWhenScriptDone ends the loop once an attached TestRunner has
	// finished and no save is pending.
	ExitWhenScriptDone bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	ctx    context.Context
	scene  *Scene
	hud    *HUD
	canvas EbitenCanvas
	cfg    RunConfig
	keys   []ebiten.Key
}

// Run opens a window sized to the scene's canvas and drives it until the
// window closes, ctx is cancelled, or a finished script ends it.
func Run(ctx context.Context, scene *Scene, cfg RunConfig) error {
	hud, err := NewHUD()
	if err != nil {
		return err
	}
	w, h := scene.Size()
	title := cfg.Title
	if title == "" {
		title = "moire"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	g := &game{ctx: ctx, scene: scene, hud: hud, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// pollInput feeds real mouse and keyboard state to the scene. Skipped
// while injected events are queued.
func (g *game) pollInput() {
	if g.scene.Injecting() {
		return
	}
	x, y := ebiten.CursorPosition()
	g.scene.processPointer(Vec2{float64(x), float64(y)}, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.scene.HandleKey(k)
	}
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	g.pollInput()
	g.scene.Update()
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil &&
		g.scene.testRunner.Done() && !g.scene.SavePending() && !g.scene.Injecting() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBlack.toNRGBA())
	g.scene.Draw(&g.canvas)
	g.canvas.Flush(screen)
	g.hud.Draw(screen, g.scene.HUDState())
	if g.scene.SavePending() {
		g.scene.FlushSave(g.ctx, func() image.Image { return Snapshot(screen) })
	}
	if g.cfg.ShowFPS {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, msg, screen.Bounds().Dx()-90, 0)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.scene.Size()
}
