package draw

import "github.com/san-kum/backdrop/internal/palette"

// Band is one solid annulus of an approximated radial fill. Inner is zero
// for the central disc.
type Band struct {
	Inner, Outer float64
	Color        palette.Color
}

// Bands splits a circle fill into n solid annuli for backends without
// gradient support. Solid paints yield a single disc. Each band takes the
// paint's color at its mid radius.
func Bands(cx, cy, r float64, p Paint, n int) []Band {
	if r <= 0 {
		return nil
	}
	if p.Radial == nil && p.Linear == nil || n < 2 {
		return []Band{{Outer: r, Color: p.ColorAt(cx, cy)}}
	}
	out := make([]Band, n)
	step := r / float64(n)
	for i := range out {
		inner, outer := float64(i)*step, float64(i+1)*step
		mid := (inner + outer) / 2
		out[i] = Band{Inner: inner, Outer: outer, Color: p.ColorAt(cx+mid, cy)}
	}
	return out
}

// Centroid is the vertex average of pts.
func Centroid(pts []Point) Point {
	var c Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

// SegmentColor is the paint's color at the midpoint of a segment.
func (p Paint) SegmentColor(x0, y0, x1, y1 float64) palette.Color {
	return p.ColorAt((x0+x1)/2, (y0+y1)/2)
}
