package moire

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConverterArgs(t *testing.T) {
	tests := []struct {
		name string
		cfg  ConverterConfig
		mode Mode
		want []string
	}{
		{
			"interactive",
			DefaultConfig().Output.Converter,
			ModeInteractive,
			[]string{"python3", "serial_conversion/convert.py", "-bs", "-f", "serial_conversion/grid_template.ps"},
		},
		{
			"auto",
			DefaultConfig().Output.Converter,
			ModeAuto,
			[]string{"python3", "serial_conversion/convert.py", "-abs", "-f", "serial_conversion/grid_template.ps"},
		},
		{
			"quoted, no template",
			ConverterConfig{Command: `"my tool" --dpi 300`, InteractiveFlags: "-b -s"},
			ModeInteractive,
			[]string{"my tool", "--dpi", "300", "-b", "-s"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewConverter(tt.cfg, nil).Args(tt.mode)
			if err != nil {
				t.Fatalf("Args: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("argv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConverterArgsErrors(t *testing.T) {
	c := NewConverter(ConverterConfig{Command: "  "}, nil)
	if c.Enabled() {
		t.Error("blank command should disable the converter")
	}
	if _, err := c.Args(ModeInteractive); !errors.Is(err, ErrNoConverter) {
		t.Errorf("err = %v, want ErrNoConverter", err)
	}
	if _, err := NewConverter(ConverterConfig{Command: `"unterminated`}, nil).Args(ModeInteractive); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := NewConverter(ConverterConfig{Command: "cat", AutoFlags: `'oops`}, nil).Args(ModeAuto); err == nil {
		t.Error("expected a flags parse error")
	}
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestConverterConvert(t *testing.T) {
	requireTool(t, "cat")
	dir := t.TempDir()
	in := filepath.Join(dir, "scene.txt")
	out := filepath.Join(dir, "scene.ps")
	if err := os.WriteFile(in, []byte("screen_width 1\nscreen_height 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewConverter(ConverterConfig{Command: "cat"}, nil)
	if err := c.Convert(context.Background(), ModeInteractive, in, out); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "screen_width 1\nscreen_height 1\n" {
		t.Errorf("output = %q", got)
	}
}

func TestConverterFailureRemovesOutput(t *testing.T) {
	requireTool(t, "false")
	dir := t.TempDir()
	in := filepath.Join(dir, "scene.txt")
	out := filepath.Join(dir, "scene.ps")
	if err := os.WriteFile(in, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewConverter(ConverterConfig{Command: "false"}, nil)
	if err := c.Convert(context.Background(), ModeAuto, in, out); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("partial output left behind: %v", err)
	}
}

func TestConverterMissingInput(t *testing.T) {
	c := NewConverter(ConverterConfig{Command: "cat"}, nil)
	dir := t.TempDir()
	err := c.Convert(context.Background(), ModeInteractive, filepath.Join(dir, "none.txt"), filepath.Join(dir, "out.ps"))
	if err == nil {
		t.Error("expected error for a missing input")
	}
}
