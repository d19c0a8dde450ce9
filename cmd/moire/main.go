// Command moire opens the interactive moiré sketch, or renders saved scene
// files offline.
//
// Usage:
//
//	moire [options]
//	moire -render scene.txt -o scene.png [-caption text]
//	moire -svg scene.txt -o scene.svg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/phanxgames/moire"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.msg)
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath string
	width      int
	height     int
	seed       uint64
	logLevel   string
	logFormat  string
	script     string
	load       string
	render     string
	svg        string
	out        string
	caption    string
	debug      bool
	fps        bool
}

// parseFlags processes args. It returns shouldExit when help was printed.
func parseFlags(args []string, output io.Writer) (options, bool, error) {
	var o options
	fs := flag.NewFlagSet("moire", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
moire - interactive moiré grid sketch.

Usage:
  moire [options]
  moire -render SCENE.txt -o OUT.png
  moire -svg SCENE.txt -o OUT.svg

Options:
`)
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", "", "Path to an HCL config file overlaying the defaults.")
	fs.IntVar(&o.width, "width", 0, "Canvas width in pixels. 0 keeps the config value.")
	fs.IntVar(&o.height, "height", 0, "Canvas height in pixels. 0 keeps the config value.")
	fs.Uint64Var(&o.seed, "seed", 0, "Random seed for auto mode. 0 keeps the config value.")
	fs.StringVar(&o.logLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	fs.StringVar(&o.logFormat, "log-format", "text", "Log output format: 'text' or 'json'.")
	fs.StringVar(&o.script, "script", "", "JSON test script to run, exiting when it finishes.")
	fs.StringVar(&o.load, "load", "", "Scene text file to open in interactive mode.")
	fs.StringVar(&o.render, "render", "", "Render a scene text file to a PNG or TIFF image and exit.")
	fs.StringVar(&o.svg, "svg", "", "Render a scene text file to SVG and exit.")
	fs.StringVar(&o.out, "o", "", "Output path for -render and -svg.")
	fs.StringVar(&o.caption, "caption", "", "Caption drawn by -render.")
	fs.BoolVar(&o.debug, "debug", false, "Log per-frame stats and check grid preconditions.")
	fs.BoolVar(&o.fps, "fps", false, "Show FPS and TPS.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, true, nil
		}
		return o, false, &exitError{code: 2, msg: err.Error()}
	}
	if fs.NArg() > 0 {
		return o, false, &exitError{code: 2, msg: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}

	o.logFormat = strings.ToLower(o.logFormat)
	if o.logFormat != "text" && o.logFormat != "json" {
		return o, false, &exitError{code: 2, msg: "invalid log-format: must be 'text' or 'json'"}
	}
	o.logLevel = strings.ToLower(o.logLevel)
	switch o.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return o, false, &exitError{code: 2, msg: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if o.render != "" && o.svg != "" {
		return o, false, &exitError{code: 2, msg: "-render and -svg are mutually exclusive"}
	}
	if (o.render != "" || o.svg != "") && o.out == "" {
		return o, false, &exitError{code: 2, msg: "-o is required with -render and -svg"}
	}
	return o, false, nil
}

// newLogger builds a handler for the level and format flags.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// run holds the program logic so it can be tested without exiting.
func run(stdout, stderr io.Writer, args []string) error {
	o, shouldExit, err := parseFlags(args, stdout)
	if err != nil || shouldExit {
		return err
	}
	logger := newLogger(o.logLevel, o.logFormat, stderr)

	switch {
	case o.render != "":
		return renderImage(logger, o)
	case o.svg != "":
		return renderSVG(logger, o)
	}

	cfg := moire.DefaultConfig()
	if o.configPath != "" {
		if cfg, err = moire.LoadConfig(o.configPath); err != nil {
			return err
		}
	}
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	cfg.Debug = cfg.Debug || o.debug

	scene, err := moire.NewScene(cfg, logger)
	if err != nil {
		return err
	}
	if o.load != "" {
		doc, err := readScene(o.load)
		if err != nil {
			return err
		}
		if err := scene.Load(doc); err != nil {
			return err
		}
	}
	rc := moire.RunConfig{Title: "moire", ShowFPS: o.fps}
	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := moire.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
		rc.ExitWhenScriptDone = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return moire.Run(ctx, scene, rc)
}

func readScene(path string) (moire.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return moire.Document{}, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	doc, err := moire.ParseScene(f)
	if err != nil {
		return moire.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func renderImage(logger *slog.Logger, o options) error {
	doc, err := readScene(o.render)
	if err != nil {
		return err
	}
	img, err := moire.RenderImage(doc, moire.RenderOptions{Caption: o.caption})
	if err != nil {
		return err
	}
	if err := moire.WriteImage(o.out, img); err != nil {
		return err
	}
	logger.Info("Rendered scene.", "in", o.render, "out", o.out, "grids", len(doc.Grids))
	return nil
}

func renderSVG(logger *slog.Logger, o options) error {
	doc, err := readScene(o.svg)
	if err != nil {
		return err
	}
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	if err := moire.RenderSVG(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close svg: %w", err)
	}
	logger.Info("Rendered scene.", "in", o.svg, "out", o.out, "grids", len(doc.Grids))
	return nil
}
