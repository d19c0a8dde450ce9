package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testScene = `screen_width 200
screen_height 100

type SquareGrid
r 255.000000
g 255.000000
b 255.000000
x 100.000000
y 50.000000
rotation 0.000000
gap_size 20.000000
stroke_width 2.000000
radius 112.000000
`

func writeTestScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte(testScene), 0o600), "failed to set up scene file")
	return path
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	o, shouldExit, err := parseFlags(nil, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "info", o.logLevel)
	require.Equal(t, "text", o.logFormat)
	require.Zero(t, o.width)
	require.Zero(t, o.seed)
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--nope"}, "flag provided but not defined"},
		{"positional", []string{"scene.txt"}, "unexpected argument"},
		{"log format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"log level", []string{"-log-level", "loud"}, "invalid log-level"},
		{"render and svg", []string{"-render", "a", "-svg", "b", "-o", "c"}, "mutually exclusive"},
		{"render without output", []string{"-render", "a"}, "-o is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseFlags(tt.args, &bytes.Buffer{})

			var exitErr *exitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.code)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseFlags_NormalizesCase(t *testing.T) {
	t.Parallel()

	o, _, err := parseFlags([]string{"-log-level", "DEBUG", "-log-format", "JSON"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.Equal(t, "debug", o.logLevel)
	require.Equal(t, "json", o.logFormat)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when help is requested")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_RenderImage(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := writeTestScene(t)
	out := filepath.Join(t.TempDir(), "scene.png")
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(&bytes.Buffer{}, logs, []string{"-render", in, "-o", out, "-caption", "test"})

	// --- Assert ---
	require.NoError(t, err)
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err, "output should be a PNG")
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())
	require.Contains(t, logs.String(), "Rendered scene.")
}

func TestRun_RenderSVG(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := writeTestScene(t)
	out := filepath.Join(t.TempDir(), "scene.svg")

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-svg", in, "-o", out, "-log-format", "json"})

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "<svg"), "output should hold an svg document")
	require.Contains(t, string(data), "<path")
}

func TestRun_RenderMalformedScene(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(in, []byte("screen_width 10\n"), 0o600))

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-render", in, "-o", filepath.Join(t.TempDir(), "x.png")})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.txt")
}

func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", filepath.Join(t.TempDir(), "none.hcl")})

	require.Error(t, err, "a missing config file should fail before a window opens")
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := newLogger("warn", "json", buf)
	logger.Info("hidden")
	logger.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}
