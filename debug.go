package moire

import (
	"log/slog"
	"time"
)

// orDiscard returns l, or a logger that drops everything when l is nil.
func orDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// debugStats holds per-frame timing and primitive counts. Only populated
// when the scene is in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	primitives int
	widgets    int
	grids      int
}

// debugLog reports one frame's stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("Frame stats.",
		"mode", s.mode.String(),
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"primitives", stats.primitives,
		"widgets", stats.widgets,
		"grids", stats.grids,
	)
}

// debugCheckGap panics when a grid with a non-positive gap reaches the
// engine; its step loops would never terminate. Only called in debug mode.
func debugCheckGap(p GridParams) {
	if !(p.Gap > 0) {
		panic("moire debug: " + p.Kind.String() + " drawn with non-positive gap")
	}
}
