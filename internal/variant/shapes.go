package variant

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/scene"
)

// outline returns the polygon of a square or triangle of size s around the
// origin, before rotation.
func outline(k scene.Kind, s float64) []draw.Point {
	h := s / 2
	switch k {
	case scene.Square:
		return []draw.Point{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	case scene.Triangle:
		return []draw.Point{{X: 0, Y: -h}, {X: -h, Y: h}, {X: h, Y: h}}
	}
	return nil
}

// drawShape fills e, or strokes it when width > 0. Circles use Size as radius.
func drawShape(s draw.Surface, e *scene.Element, width float64, p draw.Paint) {
	if e.Kind == scene.Circle {
		if width > 0 {
			s.StrokeCircle(e.X, e.Y, e.Size, width, p)
		} else {
			s.FillCircle(e.X, e.Y, e.Size, p)
		}
		return
	}
	pts := draw.Rotate(outline(e.Kind, e.Size), e.X, e.Y, e.Rotation)
	if width > 0 {
		s.StrokePolygon(pts, width, p)
	} else {
		s.FillPolygon(pts, p)
	}
}

// FloatingShapes draws filled, slowly drifting, pulsing shapes.
type FloatingShapes struct{}

func NewFloatingShapes() *FloatingShapes { return &FloatingShapes{} }

func (*FloatingShapes) Name() string         { return "floating-shapes" }
func (*FloatingShapes) Family() scene.Family { return scene.Shapes }

func (f *FloatingShapes) Render(s draw.Surface, st *scene.State, t time.Duration) {
	ts := seconds(t)
	st.Step(func(_ int, e *scene.Element) (float64, float64) {
		return math.Sin(ts+e.X*0.001) * 0.2, math.Cos(ts+e.Y*0.001) * 0.2
	}, scene.SizeMargin, true)

	for i := range st.Elements {
		e := &st.Elements[i]
		alpha := palette.Clamp01(e.Opacity + math.Sin(ts*2+e.X*0.01)*0.05)
		drawShape(s, e, 0, draw.Solid(e.Color, alpha))
	}
}

// Geometric draws rotating wireframes with no drift.
type Geometric struct{}

const (
	geometricMargin = 100
	geometricWidth  = 2
)

func NewGeometric() *Geometric { return &Geometric{} }

func (*Geometric) Name() string         { return "geometric" }
func (*Geometric) Family() scene.Family { return scene.Shapes }

func (g *Geometric) Render(s draw.Surface, st *scene.State, _ time.Duration) {
	st.Step(nil, scene.FixedMargin(geometricMargin), true)
	for i := range st.Elements {
		e := &st.Elements[i]
		drawShape(s, e, geometricWidth, draw.Solid(e.Color, e.Opacity))
	}
}
