package moire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ErrNoConverter is returned by Converter.Convert when no command is set.
var ErrNoConverter = errors.New("moire: no converter command configured")

// Converter runs the external scene-to-PostScript program. The program
// reads scene text on stdin and writes PostScript to stdout; it receives the
// per-mode flags followed by `-f <template>`.
type Converter struct {
	cfg ConverterConfig
	log *slog.Logger
}

// NewConverter returns a converter for cfg. A nil logger discards.
func NewConverter(cfg ConverterConfig, logger *slog.Logger) *Converter {
	return &Converter{cfg: cfg, log: orDiscard(logger)}
}

// Enabled reports whether a command is configured.
func (c *Converter) Enabled() bool { return strings.TrimSpace(c.cfg.Command) != "" }

// Args returns the argv for mode, without running anything.
func (c *Converter) Args(mode Mode) ([]string, error) {
	if !c.Enabled() {
		return nil, ErrNoConverter
	}
	args, err := shellwords.Parse(c.cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse converter command %q: %w", c.cfg.Command, err)
	}
	flags := c.cfg.InteractiveFlags
	if mode == ModeAuto {
		flags = c.cfg.AutoFlags
	}
	extra, err := shellwords.Parse(flags)
	if err != nil {
		return nil, fmt.Errorf("parse converter flags %q: %w", flags, err)
	}
	args = append(args, extra...)
	if c.cfg.Template != "" {
		args = append(args, "-f", c.cfg.Template)
	}
	return args, nil
}

// Convert feeds the scene file in to the command and writes its output to
// out. On failure the partial output file is removed.
func (c *Converter) Convert(ctx context.Context, mode Mode, in, out string) error {
	args, err := c.Args(mode)
	if err != nil {
		return err
	}

	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = src
	cmd.Stdout = dst
	cmd.Stderr = &stderr

	c.log.Debug("Running converter.", "argv", args, "in", in, "out", out)
	runErr := cmd.Run()
	closeErr := dst.Close()
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		c.log.Debug("Converter stderr.", "stderr", msg)
	}
	if runErr != nil {
		_ = os.Remove(out)
		return fmt.Errorf("run converter %s: %w", args[0], runErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", out, closeErr)
	}
	return nil
}
