package moire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedScene is wrapped by every ParseScene failure.
var ErrMalformedScene = errors.New("moire: malformed scene")

// ParseError locates a scene parse failure.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("moire: scene line %d: %s", e.Line, e.Msg)
}

// Unwrap lets errors.Is match ErrMalformedScene.
func (e *ParseError) Unwrap() error { return ErrMalformedScene }

// GridRecord is one serialized grid. Colour channels are 0–255; Radius is
// the flood radius for the canvas the scene was saved from.
type GridRecord struct {
	Kind     GridKind
	R, G, B  float64
	X, Y     float64
	Rotation float64
	Gap      float64
	Stroke   float64
	Radius   float64
}

// Record captures p for a width×height canvas. The radius is recomputed,
// never stored.
func Record(p GridParams, width, height int) GridRecord {
	r, g, b := p.Color.RGB255()
	return GridRecord{
		Kind:     p.Kind,
		R:        r,
		G:        g,
		B:        b,
		X:        p.Origin.X,
		Y:        p.Origin.Y,
		Rotation: p.Rotation,
		Gap:      p.Gap,
		Stroke:   p.Stroke,
		Radius:   FloodRadius(p.Origin, float64(width), float64(height)),
	}
}

// Params returns the drawable grid. The format carries no alpha, so the
// colour is opaque.
func (g GridRecord) Params() GridParams {
	return GridParams{
		Kind:     g.Kind,
		Origin:   Vec2{g.X, g.Y},
		Rotation: g.Rotation,
		Gap:      g.Gap,
		Stroke:   g.Stroke,
		Color:    RGB255(g.R, g.G, g.B, 255),
	}
}

// Document is a whole saved scene.
type Document struct {
	Width, Height int
	Grids         []GridRecord
}

// NewDocument records grids for a width×height canvas.
func NewDocument(width, height int, grids []GridParams) Document {
	d := Document{Width: width, Height: height, Grids: make([]GridRecord, 0, len(grids))}
	for _, p := range grids {
		d.Grids = append(d.Grids, Record(p, width, height))
	}
	return d
}

// gridFields is the fixed field order of a grid block.
var gridFields = [...]string{
	"type", "r", "g", "b", "x", "y", "rotation", "gap_size", "stroke_width", "radius",
}

// WriteScene writes d in the scene text format: a screen header, then one
// block per grid, each preceded by a blank line.
func WriteScene(w io.Writer, d Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "screen_width %d\nscreen_height %d\n", d.Width, d.Height)
	for _, g := range d.Grids {
		fmt.Fprintf(bw,
			"\ntype %s\nr %f\ng %f\nb %f\nx %f\ny %f\nrotation %f\ngap_size %f\nstroke_width %f\nradius %f\n",
			g.Kind, g.R, g.G, g.B, g.X, g.Y, g.Rotation, g.Gap, g.Stroke, g.Radius)
	}
	return bw.Flush()
}

// MarshalText implements encoding.TextMarshaler.
func (d Document) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := WriteScene(&sb, d); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Document) UnmarshalText(b []byte) error {
	doc, err := ParseScene(strings.NewReader(string(b)))
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// ParseScene reads the scene text format. Blank lines between blocks are
// free-form; inside a block every field must appear once, in order. Gap
// sizes must be positive and the canvas size must be positive.
func ParseScene(r io.Reader) (Document, error) {
	p := sceneParser{sc: bufio.NewScanner(r)}
	return p.parse()
}

type sceneParser struct {
	sc   *bufio.Scanner
	line int
}

func (p *sceneParser) fail(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// next returns the next non-blank line split into key and value.
func (p *sceneParser) next() (key, val string, ok bool, err error) {
	for p.sc.Scan() {
		p.line++
		text := strings.TrimSpace(p.sc.Text())
		if text == "" {
			continue
		}
		k, v, found := strings.Cut(text, " ")
		if !found {
			return "", "", false, p.fail("missing value for %q", text)
		}
		return k, strings.TrimSpace(v), true, nil
	}
	if err := p.sc.Err(); err != nil {
		return "", "", false, fmt.Errorf("read scene: %w", err)
	}
	return "", "", false, nil
}

func (p *sceneParser) expect(want string) (string, error) {
	k, v, ok, err := p.next()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", p.fail("unexpected end of input, want %q", want)
	}
	if k != want {
		return "", p.fail("got field %q, want %q", k, want)
	}
	return v, nil
}

func (p *sceneParser) expectInt(want string) (int, error) {
	v, err := p.expect(want)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, p.fail("%s: %q is not an integer", want, v)
	}
	return n, nil
}

func (p *sceneParser) parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, p.fail("%s: %q is not a number", key, v)
	}
	return f, nil
}

func (p *sceneParser) parse() (Document, error) {
	var d Document
	var err error
	if d.Width, err = p.expectInt("screen_width"); err != nil {
		return Document{}, err
	}
	if d.Height, err = p.expectInt("screen_height"); err != nil {
		return Document{}, err
	}
	if d.Width <= 0 || d.Height <= 0 {
		return Document{}, p.fail("canvas size %dx%d must be positive", d.Width, d.Height)
	}

	for {
		k, v, ok, err := p.next()
		if err != nil {
			return Document{}, err
		}
		if !ok {
			return d, nil
		}
		if k != "type" {
			return Document{}, p.fail("got field %q, want %q", k, "type")
		}
		g, err := p.parseBlock(v)
		if err != nil {
			return Document{}, err
		}
		d.Grids = append(d.Grids, g)
	}
}

func (p *sceneParser) parseBlock(kindName string) (GridRecord, error) {
	kind, err := ParseGridKind(kindName)
	if err != nil {
		return GridRecord{}, p.fail("unknown grid kind %q", kindName)
	}
	g := GridRecord{Kind: kind}
	dst := [...]*float64{&g.R, &g.G, &g.B, &g.X, &g.Y, &g.Rotation, &g.Gap, &g.Stroke, &g.Radius}
	for i, key := range gridFields[1:] {
		v, err := p.expect(key)
		if err != nil {
			return GridRecord{}, err
		}
		if *dst[i], err = p.parseFloat(key, v); err != nil {
			return GridRecord{}, err
		}
	}
	if g.Gap <= 0 {
		return GridRecord{}, p.fail("gap_size %f must be positive", g.Gap)
	}
	return g, nil
}
