package control

import (
	"errors"
	"testing"
	"time"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/theme"
)

func newSession(t *testing.T) (*Session, *host.Manual) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	h := host.NewManual(draw.NewRecorder(800, 600), 16*time.Millisecond)
	s, err := NewSession(h, *cfg, theme.Fixed(true), nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s, h
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FPS = 0
	_, err := NewSession(host.NewManual(draw.NewRecorder(1, 1), time.Millisecond), *cfg, nil, nil)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestNextVariantRecreatesHandle(t *testing.T) {
	s, h := newSession(t)
	old := s.Handle()
	h.Run(3)

	if s.Do(NextVariant) {
		t.Fatal("next variant must not quit")
	}
	if s.Config().Variant != "geometric" {
		t.Errorf("expected geometric after floating-shapes, got %s", s.Config().Variant)
	}
	if old.Running() || s.Handle() == old || !s.Handle().Running() {
		t.Error("expected old handle destroyed and a fresh one running")
	}
	if got := s.Collector().History(); len(got) != 0 {
		t.Errorf("expected history reset, got %d samples", len(got))
	}
	if h.Pending() != 1 {
		t.Errorf("expected a single pending frame, got %d", h.Pending())
	}
}

func TestNextEffectCyclesThroughNone(t *testing.T) {
	s, _ := newSession(t)
	want := []string{"abstract", "liquid", "torch", ""}
	for _, w := range want {
		s.Do(NextEffect)
		if s.Config().Effect != w {
			t.Errorf("expected %q, got %q", w, s.Config().Effect)
		}
	}
	if EffectName(s.Config().Effect) != "none" {
		t.Errorf("expected display name none, got %s", EffectName(s.Config().Effect))
	}
}

func TestNextIntensityReseeds(t *testing.T) {
	s, _ := newSession(t)
	s.Do(NextIntensity)
	if s.Config().Intensity != config.Medium {
		t.Errorf("expected medium, got %s", s.Config().Intensity)
	}
	if n := len(s.Handle().Snapshot().Elements); n != 25 {
		t.Errorf("expected 25 elements, got %d", n)
	}
}

func TestNextThemeRecolorsInPlace(t *testing.T) {
	s, _ := newSession(t)
	handle := s.Handle()
	if !handle.IsDark() {
		t.Fatal("expected system mode on a dark platform")
	}
	s.Do(NextTheme)
	if s.Mode() != theme.Light || s.IsDark() {
		t.Errorf("expected light, got %s dark=%v", s.Mode(), s.IsDark())
	}
	if s.Handle() != handle || handle.IsDark() {
		t.Error("expected the same handle recolored to light")
	}
}

func TestToggleAndQuit(t *testing.T) {
	s, h := newSession(t)
	s.Do(Toggle)
	if s.Status() != "stopped" {
		t.Errorf("expected stopped, got %s", s.Status())
	}
	if h.Run(2) != 0 {
		t.Error("expected no frames while stopped")
	}
	s.Do(Toggle)
	if s.Status() != "running" {
		t.Errorf("expected running, got %s", s.Status())
	}
	if !s.Do(Quit) {
		t.Error("expected quit")
	}
	if s.Handle().Running() || h.Listeners() != 0 {
		t.Error("expected handle released on quit")
	}
}

func TestStatusInert(t *testing.T) {
	h := host.NewManual(nil, time.Millisecond)
	h.SurfaceErr = errors.New("no window")
	s, err := NewSession(h, *config.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Status() != "inert" {
		t.Errorf("expected inert, got %s", s.Status())
	}
}

func TestNext(t *testing.T) {
	names := []string{"a", "b", "c"}
	tests := []struct{ cur, want string }{
		{"a", "b"},
		{"c", "a"},
		{"zzz", "a"},
	}
	for _, tt := range tests {
		if got := next(names, tt.cur); got != tt.want {
			t.Errorf("next(%q) = %q, want %q", tt.cur, got, tt.want)
		}
	}
}
