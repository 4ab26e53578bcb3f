package gui

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/control"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/palette"
)

var ebitenKeys = map[ebiten.Key]control.Command{
	ebiten.KeyV:      control.NextVariant,
	ebiten.KeyE:      control.NextEffect,
	ebiten.KeyI:      control.NextIntensity,
	ebiten.KeyT:      control.NextTheme,
	ebiten.KeyR:      control.Reseed,
	ebiten.KeySpace:  control.Toggle,
	ebiten.KeyQ:      control.Quit,
	ebiten.KeyEscape: control.Quit,
}

// ebitenSurface draws onto the screen image handed to Draw. Outside Draw
// it has no target and drawing is a no-op.
type ebitenSurface struct {
	dst   *ebiten.Image
	w, h  float64
	bg    palette.Color
	white *ebiten.Image
}

func (s *ebitenSurface) Size() (float64, float64) { return s.w, s.h }

func (s *ebitenSurface) Clear() {
	if s.dst != nil {
		s.dst.Fill(s.bg)
	}
}

func (s *ebitenSurface) FillCircle(cx, cy, r float64, p draw.Paint) {
	if s.dst == nil {
		return
	}
	for _, b := range draw.Bands(cx, cy, r, p, gradientBands) {
		if b.Inner == 0 {
			vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(b.Outer), b.Color, true)
			continue
		}
		mid, w := (b.Inner+b.Outer)/2, b.Outer-b.Inner
		vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(mid), float32(w), b.Color, true)
	}
}

func (s *ebitenSurface) StrokeCircle(cx, cy, r, width float64, p draw.Paint) {
	if s.dst == nil {
		return
	}
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), float32(width), p.ColorAt(cx+r, cy), true)
}

func (s *ebitenSurface) FillPolygon(pts []draw.Point, p draw.Paint) {
	if s.dst == nil || len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	c := draw.Centroid(pts)
	col := p.ColorAt(c.X, c.Y)
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(col.R) / 255
		vs[i].ColorG = float32(col.G) / 255
		vs[i].ColorB = float32(col.B) / 255
		vs[i].ColorA = float32(palette.Clamp01(col.A))
	}
	s.dst.DrawTriangles(vs, is, s.whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// whiteImage is the 1x1 source texture vertex colors tint.
func (s *ebitenSurface) whiteImage() *ebiten.Image {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.white
}

func (s *ebitenSurface) StrokePolygon(pts []draw.Point, width float64, p draw.Paint) {
	if len(pts) < 2 {
		return
	}
	s.StrokePolyline(pts, width, p)
	a, b := pts[len(pts)-1], pts[0]
	s.Line(a.X, a.Y, b.X, b.Y, width, p)
}

func (s *ebitenSurface) StrokePolyline(pts []draw.Point, width float64, p draw.Paint) {
	for i := 1; i < len(pts); i++ {
		s.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, p)
	}
}

func (s *ebitenSurface) Line(x0, y0, x1, y1, width float64, p draw.Paint) {
	if s.dst == nil {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), p.SegmentColor(x0, y0, x1, y1), true)
}

type ebitenHost struct {
	host.Base
	surface *ebitenSurface
}

func (h *ebitenHost) Surface() (draw.Surface, error) { return h.surface, nil }

type game struct {
	host    *ebitenHost
	session *control.Session
	mouseX  int
	mouseY  int
}

func (g *game) Update() error {
	for key, cmd := range ebitenKeys {
		if inpututil.IsKeyJustPressed(key) && g.session.Do(cmd) {
			return ebiten.Termination
		}
	}
	if x, y := ebiten.CursorPosition(); x != g.mouseX || y != g.mouseY {
		g.mouseX, g.mouseY = x, y
		g.host.NotifyPointer(float64(x), float64(y))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	dark := g.session.IsDark()
	s := g.host.surface
	s.dst, s.bg = screen, palette.Background(dark)
	if g.host.Flush(time.Now()) == 0 {
		screen.Fill(s.bg)
	}
	s.dst = nil

	ebitenutil.DebugPrintAt(screen, hud(g.session, ebiten.ActualFPS()), 20, 20)
	ebitenutil.DebugPrintAt(screen, control.Help, 20, screen.Bounds().Dy()-30)
}

// Layout keeps one logical unit per device-independent pixel and reports
// window size changes to the engine.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.host.surface
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != s.w || h != s.h {
		s.w, s.h = w, h
		g.host.NotifyResize(w, h)
	}
	return outsideWidth, outsideHeight
}

func runEbiten(cfg config.Config, opts Options) error {
	h := &ebitenHost{surface: &ebitenSurface{w: float64(opts.Width), h: float64(opts.Height)}}
	s, err := control.NewSession(h, cfg, opts.Platform, opts.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(&game{host: h, session: s}); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
