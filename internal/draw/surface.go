// Package draw defines the drawing surface renderers target and the
// surfaces shipped with backdrop.
//
// Renderers only ever see [Surface]; concrete backends are:
//
//   - [Recorder]: captures commands for tests, metrics and SVG export
//   - [Canvas]: Braille sub-pixel canvas for terminal output
//   - [Raster]: anti-aliased RGBA image for PNG snapshots
//   - raylib and ebiten windows (see internal/gui)
package draw

import (
	"math"

	"github.com/san-kum/backdrop/internal/palette"
)

// Point is a surface coordinate in logical units.
type Point struct{ X, Y float64 }

// Stop is one color stop of a gradient.
type Stop struct {
	Offset float64
	Color  palette.Color
}

// RadialGradient interpolates between two circles, like a canvas
// createRadialGradient. Offsets run from the inner (R0) to outer (R1) circle.
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []Stop
}

// LinearGradient interpolates along the segment (X0,Y0)-(X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// Paint is what a shape is filled or stroked with. Gradients take
// precedence over Color; Alpha multiplies whatever is chosen, like a
// canvas globalAlpha.
type Paint struct {
	Color  palette.Color
	Alpha  float64
	Radial *RadialGradient
	Linear *LinearGradient
}

// Solid paints with a single color at the given global alpha.
func Solid(c palette.Color, alpha float64) Paint {
	return Paint{Color: c, Alpha: alpha}
}

// Radial paints with a radial gradient at full global alpha.
func Radial(g RadialGradient) Paint {
	return Paint{Radial: &g, Alpha: 1}
}

// Linear paints with a linear gradient at full global alpha.
func Linear(g LinearGradient) Paint {
	return Paint{Linear: &g, Alpha: 1}
}

// Surface is the drawing target of one frame.
type Surface interface {
	// Size returns the logical extent in the same units renderers simulate in.
	Size() (w, h float64)
	Clear()
	FillCircle(cx, cy, r float64, p Paint)
	StrokeCircle(cx, cy, r, width float64, p Paint)
	// FillPolygon fills a closed convex polygon.
	FillPolygon(pts []Point, p Paint)
	StrokePolygon(pts []Point, width float64, p Paint)
	// StrokePolyline strokes an open path.
	StrokePolyline(pts []Point, width float64, p Paint)
	Line(x0, y0, x1, y1, width float64, p Paint)
}

// ColorAt evaluates the paint at (x, y), including global alpha.
func (p Paint) ColorAt(x, y float64) palette.Color {
	var c palette.Color
	switch {
	case p.Radial != nil:
		c = p.Radial.At(x, y)
	case p.Linear != nil:
		c = p.Linear.At(x, y)
	default:
		c = p.Color
	}
	return c.Scale(p.Alpha)
}

// MaxAlpha is an upper bound of the paint's alpha anywhere.
func (p Paint) MaxAlpha() float64 {
	var stops []Stop
	switch {
	case p.Radial != nil:
		stops = p.Radial.Stops
	case p.Linear != nil:
		stops = p.Linear.Stops
	default:
		return p.Color.A * p.Alpha
	}
	m := 0.0
	for _, s := range stops {
		m = math.Max(m, s.Color.A)
	}
	return m * p.Alpha
}

// At evaluates the gradient at (x, y). Only concentric gradients are
// evaluated exactly, which is all the renderers produce.
func (g *RadialGradient) At(x, y float64) palette.Color {
	d := math.Hypot(x-g.X1, y-g.Y1)
	span := g.R1 - g.R0
	if span <= 0 {
		if d < g.R0 {
			return first(g.Stops)
		}
		return last(g.Stops)
	}
	return sample(g.Stops, (d-g.R0)/span)
}

// At evaluates the gradient at the projection of (x, y) on its axis.
func (g *LinearGradient) At(x, y float64) palette.Color {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return first(g.Stops)
	}
	return sample(g.Stops, ((x-g.X0)*dx+(y-g.Y0)*dy)/l2)
}

func sample(stops []Stop, t float64) palette.Color {
	if len(stops) == 0 {
		return palette.Color{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

func first(stops []Stop) palette.Color {
	if len(stops) == 0 {
		return palette.Color{}
	}
	return stops[0].Color
}

func last(stops []Stop) palette.Color {
	if len(stops) == 0 {
		return palette.Color{}
	}
	return stops[len(stops)-1].Color
}

// Rotate returns pts rotated by angle around (cx, cy) and translated there.
// Angles are normalised to [0, 2π) first so unbounded rotations stay precise.
func Rotate(pts []Point, cx, cy, angle float64) []Point {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	s, c := math.Sincos(angle)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: cx + p.X*c - p.Y*s, Y: cy + p.X*s + p.Y*c}
	}
	return out
}
