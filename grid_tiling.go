package moire

import "math"

// tiling is a repeating motif: its cell size for a given gap and the unit
// drawn at every cell origin.
type tiling struct {
	steps func(gap float64) (xstep, ystep float64)
	unit  func(p *pen, gap float64)
}

// singleGrid tiles a motif outward from the origin. For each column x it
// bounds the rows by the circle (y = √(r²−x²)) and draws the unit in all
// four quadrants. The origin cell is always drawn, so r = 0 still yields
// one motif.
func singleGrid(t tiling) func(*pen, gridDraw) {
	return func(p *pen, g gridDraw) {
		xstep, ystep := t.steps(g.gap)
		tileQuadrants(p, t, g, xstep, ystep)
	}
}

// dualGrid overlays two single grids, the second shifted by half a cell in
// both axes. Both passes share the rotated frame set up by the caller.
func dualGrid(t tiling) func(*pen, gridDraw) {
	return func(p *pen, g gridDraw) {
		xstep, ystep := t.steps(g.gap)
		tileQuadrants(p, t, g, xstep, ystep)
		p.push()
		p.translate(xstep/2, ystep/2)
		tileQuadrants(p, t, g, xstep, ystep)
		p.pop()
	}
}

func tileQuadrants(p *pen, t tiling, g gridDraw, xstep, ystep float64) {
	rsq := g.r * g.r
	for xi := 0.0; xi == 0 || xi < g.r; xi += xstep {
		h := math.Sqrt(max(rsq-xi*xi, 0))
		for yi := 0.0; yi == 0 || yi < h; yi += ystep {
			unitAt(p, t, g.gap, xi, yi)
			unitAt(p, t, g.gap, -xi-xstep, yi)
			unitAt(p, t, g.gap, xi, -yi-ystep)
			unitAt(p, t, g.gap, -xi-xstep, -yi-ystep)
		}
	}
}

func unitAt(p *pen, t tiling, gap, x, y float64) {
	p.push()
	p.translate(x, y)
	t.unit(p, gap)
	p.pop()
}

// --- motifs ---

var hexTiling = tiling{
	steps: func(gap float64) (float64, float64) { return 3 * gap, 2 * triangleHeight * gap },
	unit: func(p *pen, gap float64) {
		p.line(-0.5*gap, triangleHeight*gap, 0, 0)
		p.line(0, 0, gap, 0)
		p.line(gap, 0, 1.5*gap, triangleHeight*gap)
	},
}

var starTiling = tiling{
	steps: func(gap float64) (float64, float64) { return 2 * gap, 4 * triangleHeight * gap },
	unit: func(p *pen, gap float64) {
		p.shape(true,
			0, 0,
			gap, 0,
			gap*1.5, gap*triangleHeight,
			gap, 2*gap*triangleHeight,
			0, 2*gap*triangleHeight,
			-0.5*gap, gap*triangleHeight,
		)
	},
}

var octTiling = tiling{
	steps: func(gap float64) (float64, float64) {
		s := gap * (1 + rootTwo)
		return s, s
	},
	unit: func(p *pen, gap float64) {
		h := rootTwo / 2
		p.shape(false,
			0, 0,
			-h*gap, h*gap,
			-h*gap, gap*(h+1),
			0, gap*(rootTwo+1),
			gap, gap*(rootTwo+1),
			gap*(1+h), gap*(1+h),
		)
		p.line(gap, 0, gap*(1+h), gap*h)
	},
}

var squareStarTiling = tiling{
	steps: func(gap float64) (float64, float64) { return gap * 1.5, gap * 1.5 },
	unit: func(p *pen, gap float64) {
		p.shape(true, 0, 0, 0, gap, gap, gap, gap, 0)
		p.line(gap, gap, 0, gap*1.5)
		p.line(gap, 0, gap*1.5, gap)
	},
}

var squareOffsetTiling = tiling{
	steps: func(gap float64) (float64, float64) { return gap, gap * 2 },
	unit: func(p *pen, gap float64) {
		p.line(gap, 0, 0, 0)
		p.line(0, 0, 0, gap)
	},
}

var crossTiling = tiling{
	steps: func(gap float64) (float64, float64) { return 3 * gap, 4 * gap },
	unit: func(p *pen, gap float64) {
		p.shape(false,
			gap*3, 0,
			gap*2, 0,
			gap*2, -gap,
			gap, -gap,
			gap, 0,
			0, 0,
			0, 2*gap,
			-gap, 2*gap,
			-gap, 3*gap,
			0, 3*gap,
			0, 4*gap,
		)
		p.shape(false,
			0, gap,
			gap, gap,
			gap, 2*gap,
			2*gap, 2*gap,
			2*gap, gap,
			3*gap, gap,
		)
	},
}

var circleTiling = tiling{
	steps: func(gap float64) (float64, float64) { return 2 * gap, 2 * gap },
	unit: func(p *pen, gap float64) {
		p.arc(0, 0, gap, 0, math.Pi)
	},
}

var circleStarTiling = tiling{
	steps: func(gap float64) (float64, float64) { return 2 * gap, 4 * triangleHeight * gap },
	unit: func(p *pen, gap float64) {
		p.arc(0, 0, gap, 0, 2*math.Pi)
	},
}
