package moire

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// HUD draws the on-screen overlay: the live instance count in the
// bottom-left corner and, on request, the nudge-step panel.
type HUD struct {
	countFace *text.GoTextFace
	panelFace *text.GoTextFace
}

// HUDState is what the overlay shows for one frame.
type HUDState struct {
	Count      int
	CountAlpha float64
	ShowSteps  bool
	Steps      [3]NudgeStep // drag point, extend scalar, rotation handle
}

// NewHUD loads the monospace face used by the overlay.
func NewHUD() (*HUD, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	return &HUD{
		countFace: &text.GoTextFace{Source: source, Size: 50},
		panelFace: &text.GoTextFace{Source: source, Size: 20},
	}, nil
}

// stepsText formats the nudge-step panel.
func stepsText(steps [3]NudgeStep) string {
	return fmt.Sprintf(
		"deltas:\nDragPoint: %.1f, changing by %.1f\nExtendScalar: %.1f, changing by %.1f\nRotationHandle: %.3f, changing by %.3f",
		steps[0].Delta, steps[0].DeltaDelta,
		steps[1].Delta, steps[1].DeltaDelta,
		steps[2].Delta, steps[2].DeltaDelta)
}

// Draw paints the overlay onto screen.
func (h *HUD) Draw(screen *ebiten.Image, st HUDState) {
	if st.ShowSteps {
		vector.DrawFilledRect(screen, 0, 0, 450, 130, color.Black, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, 10)
		op.LineSpacing = 26
		text.Draw(screen, stepsText(st.Steps), h.panelFace, op)
	}
	if st.CountAlpha > 0 {
		h.drawOutlined(screen, strconv.Itoa(st.Count), 20, float64(screen.Bounds().Dy())-100, st.CountAlpha)
	}
}

// drawOutlined stamps the text in black on a small orbit, then in white on
// top, giving an outline text/v2 does not offer directly.
func (h *HUD) drawOutlined(screen *ebiten.Image, s string, x, y, alpha float64) {
	for _, d := range outlineOffsets(5, 10) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+d.X, y+d.Y)
		op.ColorScale.ScaleWithColor(color.Black)
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(screen, s, h.countFace, op)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, s, h.countFace, op)
}
