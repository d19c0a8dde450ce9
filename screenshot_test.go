package moire

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func testPattern() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(3, 2, color.NRGBA{0, 0, 255, 128})
	return img
}

func TestWriteImageFormats(t *testing.T) {
	tests := []struct {
		name   string
		decode func(f *os.File) (image.Image, error)
	}{
		{"out.png", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{"out.tiff", func(f *os.File) (image.Image, error) { return tiff.Decode(f) }},
		{"OUT.TIF", func(f *os.File) (image.Image, error) { return tiff.Decode(f) }},
		{"noext", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			want := testPattern()
			if err := WriteImage(path, want); err != nil {
				t.Fatalf("WriteImage: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			got, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			for _, pt := range []image.Point{{0, 0}, {3, 2}, {1, 1}} {
				g := color.NRGBAModel.Convert(got.At(pt.X, pt.Y))
				if g != want.At(pt.X, pt.Y) {
					t.Errorf("pixel %v = %v, want %v", pt, g, want.At(pt.X, pt.Y))
				}
			}
		})
	}
}

func TestWriteImageBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := WriteImage(path, testPattern()); err == nil {
		t.Error("expected error for a missing directory")
	}
}
