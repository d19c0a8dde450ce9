package moire

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("moire: invalid config")

// Config holds every tunable of a scene. Start from DefaultConfig and
// override fields, or overlay an HCL file with LoadConfig.
type Config struct {
	Width, Height int
	// Seed seeds the auto-mode random source; 0 picks a random seed.
	Seed  uint64
	Debug bool

	Widgets     WidgetConfig
	Interactive InteractiveConfig
	Auto        AutoConfig
	Output      OutputConfig

	// HUDFade is the HUD fade duration in seconds.
	HUDFade float64
}

// InteractiveConfig bounds the gap and stroke scalars of a grid instance.
type InteractiveConfig struct {
	GapMin, GapMax       float64
	StrokeMin, StrokeMax float64
}

// AutoConfig holds the oscillator ranges of auto mode.
type AutoConfig struct {
	// Speed bounds the random oscillator speed, radians per tick.
	Speed float64

	// Colour oscillators sweep from a low end drawn from ColorLow to a high
	// end drawn from ColorHigh; hues wrap modulo 255.
	ColorLow, ColorHigh [2]float64

	// RotationMax bounds both ends of the rotation sweep (±).
	RotationMax float64

	// Stroke is the stationary grid's stroke; the moving grid sweeps within
	// StrokeJitter of it.
	Stroke       float64
	StrokeJitter float64

	// RadialMaxDist keeps radial kinds within this distance of the centre.
	RadialMaxDist float64
	// FactorMin and FactorMax bound, as canvas fractions, how far other
	// kinds wander.
	FactorMin, FactorMax float64

	RadialGap   float64
	TriangleGap float64
	UnitGap     float64
	GenericGap  float64
	GapJitter   float64
}

// OutputConfig controls where saves go and how they are named.
type OutputConfig struct {
	Dir string

	InteractiveText  string
	InteractiveImage string
	AutoText         string
	AutoImage        string

	// SVG writes a native vector export next to each image save.
	SVG bool

	Converter ConverterConfig
}

// ConverterConfig describes the external scene-to-PostScript command. An
// empty Command disables conversion.
type ConverterConfig struct {
	Command          string
	Template         string
	InteractiveFlags string
	AutoFlags        string
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Widgets: WidgetConfig{
			DragRadius:   10,
			ExtendRadius: 15,
			ExtendRange:  300,
			RotateLength: 100,
			RotateRadius: 15,
			ButtonRadius: 15,
			DragStep:     NudgeStep{Delta: 1, DeltaDelta: 0.1},
			ExtendStep:   NudgeStep{Delta: 1, DeltaDelta: 0.1},
			RotateStep:   NudgeStep{Delta: 2 * math.Pi / 360, DeltaDelta: 2 * math.Pi / 3600},
		},
		Interactive: InteractiveConfig{
			GapMin:    15,
			GapMax:    50,
			StrokeMin: 0.5,
			StrokeMax: 10,
		},
		Auto: AutoConfig{
			Speed:         0.01,
			ColorLow:      [2]float64{0, 255},
			ColorHigh:     [2]float64{255, 510},
			RotationMax:   2 * math.Pi / 50,
			Stroke:        5,
			StrokeJitter:  1,
			RadialMaxDist: 200,
			FactorMin:     0.5,
			FactorMax:     1,
			RadialGap:     38,
			TriangleGap:   42,
			UnitGap:       30,
			GenericGap:    17,
			GapJitter:     3,
		},
		Output: OutputConfig{
			Dir:              "data",
			InteractiveText:  "moire",
			InteractiveImage: "img",
			AutoText:         "auto",
			AutoImage:        "aimg",
			Converter: ConverterConfig{
				Command:          "python3 serial_conversion/convert.py",
				Template:         "serial_conversion/grid_template.ps",
				InteractiveFlags: "-bs",
				AutoFlags:        "-abs",
			},
		},
		HUDFade: 0.25,
	}
}

// Validate checks the preconditions the engine and widgets rely on.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Width > 0 && c.Height > 0, "canvas size %dx%d must be positive", c.Width, c.Height)

	w := c.Widgets
	check(w.DragRadius > 0, "widgets.drag_radius must be positive")
	check(w.ExtendRadius > 0, "widgets.extend_radius must be positive")
	check(w.ExtendRange > 1, "widgets.extend_range must exceed 1")
	check(w.RotateLength > 0, "widgets.rotate_length must be positive")
	check(w.RotateRadius > 0, "widgets.rotate_radius must be positive")
	check(w.ButtonRadius > 0, "widgets.button_radius must be positive")
	check(w.DragStep.Delta >= 0 && w.ExtendStep.Delta >= 0 && w.RotateStep.Delta >= 0,
		"nudge deltas must not be negative")

	in := c.Interactive
	check(in.GapMin > 0, "interactive.gap_min must be positive")
	check(in.GapMin <= in.GapMax, "interactive gap range [%g, %g] is empty", in.GapMin, in.GapMax)
	check(in.StrokeMin >= 0, "interactive.stroke_min must not be negative")
	check(in.StrokeMin <= in.StrokeMax && in.StrokeMax > 0,
		"interactive stroke range [%g, %g] is empty", in.StrokeMin, in.StrokeMax)

	a := c.Auto
	check(a.Speed >= 0, "auto.speed must not be negative")
	check(a.ColorLow[0] <= a.ColorLow[1] && a.ColorHigh[0] <= a.ColorHigh[1], "auto colour ranges are inverted")
	check(a.RotationMax >= 0, "auto.rotation_max must not be negative")
	check(a.StrokeJitter >= 0 && a.Stroke-a.StrokeJitter >= 0, "auto stroke range must not go negative")
	check(a.RadialMaxDist >= 0, "auto.radial_max_dist must not be negative")
	check(a.FactorMin <= a.FactorMax, "auto factor range [%g, %g] is empty", a.FactorMin, a.FactorMax)
	check(a.GapJitter >= 0, "auto.gap_jitter must not be negative")
	for _, g := range []struct {
		name string
		v    float64
	}{
		{"radial_gap", a.RadialGap},
		{"triangle_gap", a.TriangleGap},
		{"unit_gap", a.UnitGap},
		{"generic_gap", a.GenericGap},
	} {
		check(g.v-a.GapJitter > 0, "auto.%s must stay positive after jitter", g.name)
	}
	check(a.RadialGap >= 1, "auto.radial_gap must be at least 1")

	o := c.Output
	check(o.Dir != "", "output.dir must be set")
	check(o.InteractiveText != "" && o.InteractiveImage != "" && o.AutoText != "" && o.AutoImage != "",
		"output prefixes must be set")

	check(c.HUDFade >= 0, "hud_fade must not be negative")

	return errors.Join(errs...)
}

// --- HCL overlay ---

type fileRoot struct {
	Width   *int     `hcl:"width,optional"`
	Height  *int     `hcl:"height,optional"`
	Seed    *int64   `hcl:"seed,optional"`
	Debug   *bool    `hcl:"debug,optional"`
	HUDFade *float64 `hcl:"hud_fade,optional"`

	Widgets     *widgetsBlock     `hcl:"widgets,block"`
	Interactive *interactiveBlock `hcl:"interactive,block"`
	Auto        *autoBlock        `hcl:"auto,block"`
	Output      *outputBlock      `hcl:"output,block"`
}

type widgetsBlock struct {
	DragRadius   *float64 `hcl:"drag_radius,optional"`
	ExtendRadius *float64 `hcl:"extend_radius,optional"`
	ExtendRange  *float64 `hcl:"extend_range,optional"`
	RotateLength *float64 `hcl:"rotate_length,optional"`
	RotateRadius *float64 `hcl:"rotate_radius,optional"`
	ButtonRadius *float64 `hcl:"button_radius,optional"`

	DragDelta        *float64 `hcl:"drag_delta,optional"`
	DragDeltaDelta   *float64 `hcl:"drag_delta_delta,optional"`
	ExtendDelta      *float64 `hcl:"extend_delta,optional"`
	ExtendDeltaDelta *float64 `hcl:"extend_delta_delta,optional"`
	RotateDelta      *float64 `hcl:"rotate_delta,optional"`
	RotateDeltaDelta *float64 `hcl:"rotate_delta_delta,optional"`
}

type interactiveBlock struct {
	GapMin    *float64 `hcl:"gap_min,optional"`
	GapMax    *float64 `hcl:"gap_max,optional"`
	StrokeMin *float64 `hcl:"stroke_min,optional"`
	StrokeMax *float64 `hcl:"stroke_max,optional"`
}

type autoBlock struct {
	Speed         *float64  `hcl:"speed,optional"`
	ColorLow      []float64 `hcl:"color_low,optional"`
	ColorHigh     []float64 `hcl:"color_high,optional"`
	RotationMax   *float64  `hcl:"rotation_max,optional"`
	Stroke        *float64  `hcl:"stroke,optional"`
	StrokeJitter  *float64  `hcl:"stroke_jitter,optional"`
	RadialMaxDist *float64  `hcl:"radial_max_dist,optional"`
	FactorMin     *float64  `hcl:"factor_min,optional"`
	FactorMax     *float64  `hcl:"factor_max,optional"`
	RadialGap     *float64  `hcl:"radial_gap,optional"`
	TriangleGap   *float64  `hcl:"triangle_gap,optional"`
	UnitGap       *float64  `hcl:"unit_gap,optional"`
	GenericGap    *float64  `hcl:"generic_gap,optional"`
	GapJitter     *float64  `hcl:"gap_jitter,optional"`
}

type outputBlock struct {
	Dir              *string         `hcl:"dir,optional"`
	InteractiveText  *string         `hcl:"interactive_text,optional"`
	InteractiveImage *string         `hcl:"interactive_image,optional"`
	AutoText         *string         `hcl:"auto_text,optional"`
	AutoImage        *string         `hcl:"auto_image,optional"`
	SVG              *bool           `hcl:"svg,optional"`
	Converter        *converterBlock `hcl:"converter,block"`
}

type converterBlock struct {
	Command          *string `hcl:"command,optional"`
	Template         *string `hcl:"template,optional"`
	InteractiveFlags *string `hcl:"interactive_flags,optional"`
	AutoFlags        *string `hcl:"auto_flags,optional"`
}

// configEvalContext exposes pi and tau and a few numeric functions, so
// angles can be written as `rotate_delta = tau / 360`.
func configEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi":  cty.NumberFloatVal(math.Pi),
			"tau": cty.NumberFloatVal(2 * math.Pi),
		},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"abs":   stdlib.AbsoluteFunc,
			"floor": stdlib.FloorFunc,
			"ceil":  stdlib.CeilFunc,
		},
	}
}

// LoadConfig reads an HCL file and overlays it on DefaultConfig. The result
// is validated.
func LoadConfig(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(src, path)
}

// ParseConfig overlays HCL source on DefaultConfig. filename is used only
// in diagnostics.
func ParseConfig(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, configEvalContext(), &root)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg := DefaultConfig()
	if err := root.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setPair(dst *[2]float64, src []float64, name string) error {
	if src == nil {
		return nil
	}
	if len(src) != 2 {
		return fmt.Errorf("%w: %s needs exactly two numbers, got %d", ErrInvalidConfig, name, len(src))
	}
	*dst = [2]float64{src[0], src[1]}
	return nil
}

func (r *fileRoot) apply(c *Config) error {
	set(&c.Width, r.Width)
	set(&c.Height, r.Height)
	set(&c.Debug, r.Debug)
	set(&c.HUDFade, r.HUDFade)
	if r.Seed != nil {
		c.Seed = uint64(*r.Seed)
	}

	if w := r.Widgets; w != nil {
		set(&c.Widgets.DragRadius, w.DragRadius)
		set(&c.Widgets.ExtendRadius, w.ExtendRadius)
		set(&c.Widgets.ExtendRange, w.ExtendRange)
		set(&c.Widgets.RotateLength, w.RotateLength)
		set(&c.Widgets.RotateRadius, w.RotateRadius)
		set(&c.Widgets.ButtonRadius, w.ButtonRadius)
		set(&c.Widgets.DragStep.Delta, w.DragDelta)
		set(&c.Widgets.DragStep.DeltaDelta, w.DragDeltaDelta)
		set(&c.Widgets.ExtendStep.Delta, w.ExtendDelta)
		set(&c.Widgets.ExtendStep.DeltaDelta, w.ExtendDeltaDelta)
		set(&c.Widgets.RotateStep.Delta, w.RotateDelta)
		set(&c.Widgets.RotateStep.DeltaDelta, w.RotateDeltaDelta)
	}

	if in := r.Interactive; in != nil {
		set(&c.Interactive.GapMin, in.GapMin)
		set(&c.Interactive.GapMax, in.GapMax)
		set(&c.Interactive.StrokeMin, in.StrokeMin)
		set(&c.Interactive.StrokeMax, in.StrokeMax)
	}

	if a := r.Auto; a != nil {
		set(&c.Auto.Speed, a.Speed)
		if err := setPair(&c.Auto.ColorLow, a.ColorLow, "auto.color_low"); err != nil {
			return err
		}
		if err := setPair(&c.Auto.ColorHigh, a.ColorHigh, "auto.color_high"); err != nil {
			return err
		}
		set(&c.Auto.RotationMax, a.RotationMax)
		set(&c.Auto.Stroke, a.Stroke)
		set(&c.Auto.StrokeJitter, a.StrokeJitter)
		set(&c.Auto.RadialMaxDist, a.RadialMaxDist)
		set(&c.Auto.FactorMin, a.FactorMin)
		set(&c.Auto.FactorMax, a.FactorMax)
		set(&c.Auto.RadialGap, a.RadialGap)
		set(&c.Auto.TriangleGap, a.TriangleGap)
		set(&c.Auto.UnitGap, a.UnitGap)
		set(&c.Auto.GenericGap, a.GenericGap)
		set(&c.Auto.GapJitter, a.GapJitter)
	}

	if o := r.Output; o != nil {
		set(&c.Output.Dir, o.Dir)
		set(&c.Output.InteractiveText, o.InteractiveText)
		set(&c.Output.InteractiveImage, o.InteractiveImage)
		set(&c.Output.AutoText, o.AutoText)
		set(&c.Output.AutoImage, o.AutoImage)
		set(&c.Output.SVG, o.SVG)
		if cv := o.Converter; cv != nil {
			set(&c.Output.Converter.Command, cv.Command)
			set(&c.Output.Converter.Template, cv.Template)
			set(&c.Output.Converter.InteractiveFlags, cv.InteractiveFlags)
			set(&c.Output.Converter.AutoFlags, cv.AutoFlags)
		}
	}
	return nil
}
