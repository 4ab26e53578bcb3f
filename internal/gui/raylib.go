package gui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/control"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/palette"
)

var raylibKeys = map[int32]control.Command{
	rl.KeyV:      control.NextVariant,
	rl.KeyE:      control.NextEffect,
	rl.KeyI:      control.NextIntensity,
	rl.KeyT:      control.NextTheme,
	rl.KeyR:      control.Reseed,
	rl.KeySpace:  control.Toggle,
	rl.KeyQ:      control.Quit,
	rl.KeyEscape: control.Quit,
}

func toRL(c palette.Color) color.RGBA {
	return rl.NewColor(c.R, c.G, c.B, uint8(math.Round(palette.Clamp01(c.A)*255)))
}

func vec(x, y float64) rl.Vector2 { return rl.NewVector2(float32(x), float32(y)) }

// raylibSurface draws straight to the window between BeginDrawing and
// EndDrawing. Gradients are approximated with solid bands.
type raylibSurface struct {
	bg color.RGBA
}

func (s *raylibSurface) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (s *raylibSurface) Clear() { rl.ClearBackground(s.bg) }

func (s *raylibSurface) FillCircle(cx, cy, r float64, p draw.Paint) {
	for _, b := range draw.Bands(cx, cy, r, p, gradientBands) {
		if b.Inner == 0 {
			rl.DrawCircleV(vec(cx, cy), float32(b.Outer), toRL(b.Color))
			continue
		}
		rl.DrawRing(vec(cx, cy), float32(b.Inner), float32(b.Outer), 0, 360, 48, toRL(b.Color))
	}
}

func (s *raylibSurface) StrokeCircle(cx, cy, r, width float64, p draw.Paint) {
	inner := math.Max(r-width/2, 0)
	rl.DrawRing(vec(cx, cy), float32(inner), float32(r+width/2), 0, 360, 48, toRL(p.ColorAt(cx+r, cy)))
}

// FillPolygon fans the convex polygon into triangles. raylib culls
// triangles that are not counter-clockwise on screen.
func (s *raylibSurface) FillPolygon(pts []draw.Point, p draw.Paint) {
	if len(pts) < 3 {
		return
	}
	col := toRL(p.ColorAt(draw.Centroid(pts).X, draw.Centroid(pts).Y))
	a := pts[0]
	for i := 1; i+1 < len(pts); i++ {
		b, c := pts[i], pts[i+1]
		if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) > 0 {
			b, c = c, b
		}
		rl.DrawTriangle(vec(a.X, a.Y), vec(b.X, b.Y), vec(c.X, c.Y), col)
	}
}

func (s *raylibSurface) StrokePolygon(pts []draw.Point, width float64, p draw.Paint) {
	if len(pts) < 2 {
		return
	}
	s.StrokePolyline(pts, width, p)
	a, b := pts[len(pts)-1], pts[0]
	s.Line(a.X, a.Y, b.X, b.Y, width, p)
}

func (s *raylibSurface) StrokePolyline(pts []draw.Point, width float64, p draw.Paint) {
	for i := 1; i < len(pts); i++ {
		s.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, p)
	}
}

func (s *raylibSurface) Line(x0, y0, x1, y1, width float64, p draw.Paint) {
	rl.DrawLineEx(vec(x0, y0), vec(x1, y1), float32(width), toRL(p.SegmentColor(x0, y0, x1, y1)))
}

type raylibHost struct {
	host.Base
	surface *raylibSurface
}

func (h *raylibHost) Surface() (draw.Surface, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("%w: raylib window not ready", engine.ErrSurfaceUnavailable)
	}
	return h.surface, nil
}

func runRaylib(cfg config.Config, opts Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	h := &raylibHost{surface: &raylibSurface{}}
	s, err := control.NewSession(h, cfg, opts.Platform, opts.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	last := rl.GetMousePosition()
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			h.NotifyResize(h.surface.Size())
		}
		if p := rl.GetMousePosition(); p != last {
			last = p
			h.NotifyPointer(float64(p.X), float64(p.Y))
		}
		for key, cmd := range raylibKeys {
			if rl.IsKeyPressed(key) && s.Do(cmd) {
				return nil
			}
		}

		dark := s.IsDark()
		h.surface.bg = toRL(palette.Background(dark))
		rl.BeginDrawing()
		if h.Flush(time.Now()) == 0 {
			rl.ClearBackground(h.surface.bg)
		}
		drawTelemetry(s.Collector().History(), toRL(foreground(dark)))
		fg := toRL(foreground(dark))
		rl.DrawText(hud(s, float64(rl.GetFPS())), 20, 20, 16, fg)
		rl.DrawText(control.Help, 20, int32(rl.GetScreenHeight())-30, 14, fg)
		rl.EndDrawing()
	}
	return nil
}

// drawTelemetry plots render times as a line strip in the bottom-left corner.
func drawTelemetry(hist []float64, col color.RGBA) {
	if len(hist) < 2 {
		return
	}
	const width, height = 240, 40
	x0, y0 := float32(20), float32(rl.GetScreenHeight()-80)

	lo, hi := hist[0], hist[0]
	for _, v := range hist {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	points := make([]rl.Vector2, len(hist))
	for i, v := range hist {
		px := x0 + float32(i)/float32(len(hist)-1)*width
		py := y0 + height - float32((v-lo)/(hi-lo))*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, col)
}
