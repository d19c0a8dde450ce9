package moire

import (
	"image/color"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets and directions throughout
// the API. Screen coordinates have their origin at the top-left with Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// FromAngle returns the unit vector pointing at angle th (radians).
func FromAngle(th float64) Vec2 {
	sin, cos := math.Sincos(th)
	return Vec2{cos, sin}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the magnitude of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Heading returns the angle of v in radians, in (-π, π].
func (v Vec2) Heading() float64 { return math.Atan2(v.Y, v.X) }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLen returns v rescaled to magnitude m, keeping its direction.
func (v Vec2) WithLen(m float64) Vec2 {
	return v.Normalize().Scale(m)
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stroke color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the canvas background.
var ColorBlack = Color{0, 0, 0, 1}

// RGB255 returns the color channels scaled to 0–255.
func (c Color) RGB255() (r, g, b float64) {
	return c.R * 255, c.G * 255, c.B * 255
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements color.Color with premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toNRGBA().RGBA()
}

func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// RGB255 returns a Color from 0–255 channels with the given 0–255 alpha.
func RGB255(r, g, b, a float64) Color {
	return Color{r / 255, g / 255, b / 255, a / 255}
}

// Direction is an arrow-key identity delivered to a selected widget.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Mode selects which composer drives the scene.
type Mode uint8

const (
	ModeInteractive Mode = iota // widget-driven grid instances
	ModeAuto                    // one oscillator-driven grid over a stationary twin
)

func (m Mode) String() string {
	if m == ModeAuto {
		return "auto"
	}
	return "interactive"
}

// --- scalar helpers ---

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

// mapRange linearly maps v from [a0, a1] onto [b0, b1] without clamping.
func mapRange(v, a0, a1, b0, b1 float64) float64 {
	return b0 + (b1-b0)*((v-a0)/(a1-a0))
}

// normalizeAngle wraps th into [0, 2π).
func normalizeAngle(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	if th >= 2*math.Pi {
		th = 0
	}
	return th
}
