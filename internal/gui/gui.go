// Package gui runs a background in a desktop window. Two backends share
// the engine plumbing: raylib (OpenGL through cgo) and ebiten.
package gui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/control"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/theme"
)

const (
	Raylib = "raylib"
	Ebiten = "ebiten"

	title = "backdrop"
	// Annuli per radial gradient fill.
	gradientBands = 24
)

var ErrUnknownBackend = errors.New("gui: unknown backend")

// Backends lists the supported window backends.
func Backends() []string { return []string{Raylib, Ebiten} }

type Options struct {
	Width, Height int
	// Platform answers the system theme preference.
	Platform theme.Platform
	Logger   *slog.Logger
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Run opens a window on backend and blocks until it is closed.
func Run(backend string, cfg config.Config, opts Options) error {
	opts.defaults()
	switch backend {
	case Raylib:
		return runRaylib(cfg, opts)
	case Ebiten:
		return runEbiten(cfg, opts)
	}
	return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownBackend, backend, Backends())
}

func foreground(isDark bool) palette.Color {
	if isDark {
		return palette.RGBA(226, 232, 240, 0.8)
	}
	return palette.RGBA(15, 23, 42, 0.8)
}

// hud is the status text shared by both backends.
func hud(s *control.Session, fps float64) string {
	cfg := s.Config()
	v := s.Collector().Values()
	return fmt.Sprintf("%s :: %s  effect %s  %s  %s (%s)  %.0f fps  %.2f ms",
		title, cfg.Variant, control.EffectName(cfg.Effect), cfg.Intensity,
		s.Status(), s.Mode(), fps, v["frame_ms"])
}
