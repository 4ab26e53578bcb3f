package draw

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"github.com/san-kum/backdrop/internal/palette"
	"golang.org/x/image/vector"
)

// Segments per full circle when a circle is flattened to a path.
const circleSegments = 64

// Raster is an anti-aliased RGBA surface. Gradients are evaluated per
// pixel, so it is the reference for what the recorded frames look like.
type Raster struct {
	img *image.RGBA
	bg  palette.Color
	z   *vector.Rasterizer
}

func NewRaster(w, h int, background palette.Color) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r := &Raster{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		bg:  background,
		z:   vector.NewRasterizer(w, h),
	}
	r.Clear()
	return r
}

// Image returns the backing image. It is overwritten by the next frame.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) Clear() {
	stddraw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg), image.Point{}, stddraw.Src)
}

func (r *Raster) FillCircle(cx, cy, rad float64, p Paint) {
	if rad <= 0 {
		return
	}
	r.begin()
	r.circle(cx, cy, rad, false)
	r.fill(p)
}

// StrokeCircle fills the ring between r-width/2 and r+width/2; the inner
// circle winds the other way and cancels.
func (r *Raster) StrokeCircle(cx, cy, rad, width float64, p Paint) {
	half := math.Max(width, 1) / 2
	r.begin()
	r.circle(cx, cy, rad+half, false)
	if inner := rad - half; inner > 0 {
		r.circle(cx, cy, inner, true)
	}
	r.fill(p)
}

func (r *Raster) FillPolygon(pts []Point, p Paint) {
	if len(pts) < 3 {
		return
	}
	r.begin()
	r.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		r.z.LineTo(float32(pt.X), float32(pt.Y))
	}
	r.z.ClosePath()
	r.fill(p)
}

func (r *Raster) StrokePolygon(pts []Point, width float64, p Paint) {
	if len(pts) < 2 {
		return
	}
	r.StrokePolyline(pts, width, p)
	a, b := pts[len(pts)-1], pts[0]
	r.Line(a.X, a.Y, b.X, b.Y, width, p)
}

func (r *Raster) StrokePolyline(pts []Point, width float64, p Paint) {
	for i := 1; i < len(pts); i++ {
		r.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, p)
	}
}

// Line fills the segment's rectangle. Hairlines are widened to one pixel.
func (r *Raster) Line(x0, y0, x1, y1, width float64, p Paint) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	half := math.Max(width, 1) / 2
	nx, ny := -dy/l*half, dx/l*half

	r.begin()
	r.z.MoveTo(float32(x0+nx), float32(y0+ny))
	r.z.LineTo(float32(x1+nx), float32(y1+ny))
	r.z.LineTo(float32(x1-nx), float32(y1-ny))
	r.z.LineTo(float32(x0-nx), float32(y0-ny))
	r.z.ClosePath()
	r.fill(p)
}

func (r *Raster) begin() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = stddraw.Over
}

func (r *Raster) circle(cx, cy, rad float64, reverse bool) {
	step := 2 * math.Pi / circleSegments
	if reverse {
		step = -step
	}
	r.z.MoveTo(float32(cx+rad), float32(cy))
	for i := 1; i < circleSegments; i++ {
		s, c := math.Sincos(float64(i) * step)
		r.z.LineTo(float32(cx+rad*c), float32(cy+rad*s))
	}
	r.z.ClosePath()
}

func (r *Raster) fill(p Paint) {
	var src image.Image
	if p.Radial == nil && p.Linear == nil {
		src = image.NewUniform(p.ColorAt(0, 0))
	} else {
		src = paintImage{p}
	}
	r.z.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

// paintImage exposes a gradient paint as an unbounded source image sampled
// at pixel centers.
type paintImage struct{ p Paint }

func (paintImage) ColorModel() color.Model { return color.RGBA64Model }

func (paintImage) Bounds() image.Rectangle {
	return image.Rect(-1e6, -1e6, 1e6, 1e6)
}

func (i paintImage) At(x, y int) color.Color {
	return i.p.ColorAt(float64(x)+0.5, float64(y)+0.5)
}
