package engine

import (
	"log/slog"
	"math/rand"

	"github.com/san-kum/backdrop/internal/theme"
)

type Option func(*Handle)

// WithThemeSource replaces the resolver built from the configured mode.
func WithThemeSource(src theme.Source) Option {
	return func(h *Handle) { h.themes = src }
}

// WithPlatform resolves the system mode through p.
func WithPlatform(p theme.Platform) Option {
	return func(h *Handle) { h.platform = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handle) { h.log = l }
}

// WithRand seeds elements from rng. Handles must not share one.
func WithRand(rng *rand.Rand) Option {
	return func(h *Handle) { h.rng = rng }
}

func WithObserver(o FrameObserver) Option {
	return func(h *Handle) { h.observer = o }
}
