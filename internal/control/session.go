package control

import (
	"log/slog"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/theme"
	"github.com/san-kum/backdrop/internal/variant"
)

// HistoryCapacity is how many render times the collector keeps.
const HistoryCapacity = 120

// Command is a front-end independent key command.
type Command string

const (
	NextVariant   Command = "v"
	NextEffect    Command = "e"
	NextIntensity Command = "i"
	NextTheme     Command = "t"
	Reseed        Command = "r"
	Toggle        Command = "space"
	Quit          Command = "q"
)

// Help is the one-line key legend.
const Help = "v variant  e effect  t theme  i intensity  r reseed  space stop  q quit"

type Session struct {
	cfg       config.Config
	host      engine.Host
	log       *slog.Logger
	resolver  *theme.Resolver
	collector *metrics.Collector
	handle    *engine.Handle
	err       error
}

// NewSession creates the first handle on host. platform answers the system
// theme preference and may be nil.
func NewSession(host engine.Host, cfg config.Config, platform theme.Platform, log *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		cfg:       cfg,
		host:      host,
		log:       log,
		resolver:  theme.NewResolver(cfg.Theme, platform),
		collector: metrics.NewCollector(HistoryCapacity, metrics.Default(FrameBudget(cfg.FPS))...),
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// FrameBudget is the frame period in milliseconds.
func FrameBudget(fps int) float64 {
	return 1000 / float64(fps)
}

// rebuild replaces the handle with one created from the current config.
func (s *Session) rebuild() error {
	if s.handle != nil {
		s.handle.Destroy()
		s.handle = nil
	}
	s.collector.Reset()
	h, err := engine.Create(s.host, s.cfg,
		engine.WithThemeSource(s.resolver),
		engine.WithLogger(s.log),
		engine.WithObserver(s.collector),
	)
	if err != nil {
		return err
	}
	s.handle = h
	s.log.Info("background created", "variant", s.cfg.Variant, "effect", EffectName(s.cfg.Effect), "intensity", s.cfg.Intensity)
	return nil
}

// Do applies cmd and reports whether the front-end should quit. Failures
// are logged and kept for Err; the session stays usable.
func (s *Session) Do(cmd Command) (quit bool) {
	switch cmd {
	case Quit:
		s.Close()
		return true
	case Toggle:
		if s.handle == nil {
			return false
		}
		if s.handle.Running() {
			s.handle.Stop()
		} else if err := s.handle.Start(); err != nil {
			s.fail(err)
		}
	case NextVariant:
		s.cfg.Variant = next(variant.Names(), s.cfg.Variant)
		s.apply()
	case NextEffect:
		s.cfg.Effect = next(append([]string{""}, pointer.Names()...), effectKey(s.cfg.Effect))
		s.apply()
	case NextIntensity:
		s.cfg.Intensity = s.cfg.Intensity.Next()
		s.apply()
	case Reseed:
		s.apply()
	case NextTheme:
		s.cfg.Theme = s.resolver.Mode().Next()
		s.resolver.SetMode(s.cfg.Theme)
		s.log.Debug("theme mode", "mode", s.cfg.Theme, "dark", s.resolver.IsDark())
	}
	return false
}

func (s *Session) apply() {
	if err := s.rebuild(); err != nil {
		s.fail(err)
		return
	}
	s.err = nil
}

func (s *Session) fail(err error) {
	s.err = err
	s.log.Error("background failed", "error", err)
}

// Close destroys the handle.
func (s *Session) Close() {
	if s.handle != nil {
		s.handle.Destroy()
	}
}

func (s *Session) Config() config.Config { return s.cfg }

// Handle returns the current handle; nil after a failed rebuild.
func (s *Session) Handle() *engine.Handle { return s.handle }

func (s *Session) Collector() *metrics.Collector { return s.collector }

func (s *Session) Mode() theme.Mode { return s.resolver.Mode() }

func (s *Session) IsDark() bool { return s.resolver.IsDark() }

func (s *Session) Err() error { return s.err }

// Status is one of running, stopped, inert or failed.
func (s *Session) Status() string {
	switch {
	case s.handle == nil:
		return "failed"
	case s.handle.Inert():
		return "inert"
	case !s.handle.Running():
		return "stopped"
	}
	return "running"
}

// EffectName returns the display name of an effect setting.
func EffectName(s string) string {
	if k := effectKey(s); k != "" {
		return k
	}
	return "none"
}

func effectKey(s string) string {
	if s == "none" {
		return ""
	}
	return s
}

// next returns the entry after cur, wrapping; unknown values restart.
func next(names []string, cur string) string {
	for i, n := range names {
		if n == cur {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
