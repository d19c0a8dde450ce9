package moire

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// stampLayout is the timestamp part of saved file names.
const stampLayout = "2006_01_02_150405"

// SaveResult lists the files a save produced. Empty paths were skipped or
// failed.
type SaveResult struct {
	Text     string
	Snapshot string
	Vector   string // converter output (.ps)
	SVG      string
}

// Saver writes scenes to timestamped files. The scene text is always
// written first; if that fails nothing else is attempted. The snapshot,
// SVG and converter steps only run for image saves, and their failures are
// logged, never returned.
type Saver struct {
	cfg  OutputConfig
	conv *Converter
	log  *slog.Logger

	// Now is the clock used for file names.
	Now func() time.Time
}

// NewSaver returns a saver for cfg. A nil logger discards.
func NewSaver(cfg OutputConfig, logger *slog.Logger) *Saver {
	logger = orDiscard(logger)
	return &Saver{
		cfg:  cfg,
		conv: NewConverter(cfg.Converter, logger),
		log:  logger,
		Now:  time.Now,
	}
}

// Names returns the text, snapshot, PostScript and SVG paths for a save in
// mode at time t.
func (s *Saver) Names(mode Mode, t time.Time) (text, snapshot, ps, svg string) {
	textPrefix, imgPrefix := s.cfg.InteractiveText, s.cfg.InteractiveImage
	if mode == ModeAuto {
		textPrefix, imgPrefix = s.cfg.AutoText, s.cfg.AutoImage
	}
	stamp := t.Format(stampLayout)
	img := filepath.Join(s.cfg.Dir, imgPrefix+"_"+stamp)
	return filepath.Join(s.cfg.Dir, textPrefix+"_"+stamp+".txt"), img + ".tiff", img + ".ps", img + ".svg"
}

// Save writes doc, and for image saves the snapshot (when non-nil), the
// SVG export and the converter output.
func (s *Saver) Save(ctx context.Context, mode Mode, doc Document, withImage bool, snap image.Image) (SaveResult, error) {
	var res SaveResult
	textPath, snapPath, psPath, svgPath := s.Names(mode, s.Now())

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return res, fmt.Errorf("save: mkdir %s: %w", s.cfg.Dir, err)
	}
	var buf bytes.Buffer
	if err := WriteScene(&buf, doc); err != nil {
		return res, fmt.Errorf("save: %w", err)
	}
	if err := os.WriteFile(textPath, buf.Bytes(), 0o644); err != nil {
		return res, fmt.Errorf("save: %w", err)
	}
	res.Text = textPath
	s.log.Info("Saved scene.", "path", textPath, "mode", mode.String(), "grids", len(doc.Grids))

	if !withImage {
		return res, nil
	}

	if snap != nil {
		if err := writeTIFF(snapPath, snap); err != nil {
			s.log.Warn("Snapshot failed.", "path", snapPath, "error", err)
		} else {
			res.Snapshot = snapPath
		}
	}

	if s.cfg.SVG {
		if err := writeSVGFile(svgPath, doc); err != nil {
			s.log.Warn("SVG export failed.", "path", svgPath, "error", err)
		} else {
			res.SVG = svgPath
		}
	}

	if s.conv.Enabled() {
		if err := s.conv.Convert(ctx, mode, textPath, psPath); err != nil {
			s.log.Warn("Converter failed.", "path", psPath, "error", err)
		} else {
			res.Vector = psPath
		}
	}
	return res, nil
}
