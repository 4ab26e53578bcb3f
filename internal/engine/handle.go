package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/scene"
	"github.com/san-kum/backdrop/internal/theme"
	"github.com/san-kum/backdrop/internal/variant"
)

// Handle is one running background. All methods are safe for concurrent use.
type Handle struct {
	host     Host
	cfg      config.Config
	log      *slog.Logger
	rng      *rand.Rand
	themes   theme.Source
	platform theme.Platform
	observer FrameObserver
	renderer variant.Renderer
	effect   pointer.Effect
	tracker  *pointer.Tracker

	// alive is read first by every frame body, before taking mu.
	alive atomic.Bool

	mu        sync.Mutex
	surface   draw.Surface
	state     scene.State
	isDark    bool
	inert     bool
	destroyed bool
	pending   FrameID
	scheduled bool
	subs      []func()
	start     time.Time
	frames    uint64
	failures  uint64
	// gen changes on every Start and Stop; frames queued by an earlier run
	// see a stale value and return.
	gen uint64
}

// Create validates cfg, acquires the host surface and starts the loop.
// Configuration errors fail fast. A host without a surface yields an inert
// handle and a nil error.
func Create(host Host, cfg config.Config, opts ...Option) (*Handle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	r, err := variant.New(cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	h := &Handle{host: host, cfg: cfg, renderer: r}
	if cfg.Effect != "" && cfg.Effect != "none" {
		if h.effect, err = pointer.New(cfg.Effect); err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	h.log = h.log.With("variant", cfg.Variant)
	if h.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		h.rng = rand.New(rand.NewSource(seed))
	}
	if h.themes == nil {
		h.themes = theme.NewResolver(cfg.Theme, h.platform)
	}
	h.tracker = pointer.NewTracker(cfg.FPS, cfg.Spring.Frequency, cfg.Spring.Damping)

	surface, err := host.Surface()
	if err == nil && surface == nil {
		err = ErrSurfaceUnavailable
	}
	if err != nil {
		if !errors.Is(err, ErrSurfaceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
		}
		h.log.Warn("rendering disabled", "error", err)
		h.inert = true
		return h, nil
	}
	h.surface = surface

	if err := h.Start(); err != nil {
		return nil, err
	}
	return h, nil
}

// Start seeds the state, subscribes to host and theme events and requests
// the first frame. Starting a running or inert handle does nothing.
func (h *Handle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed {
		return ErrDestroyed
	}
	if h.inert || h.alive.Load() {
		return nil
	}

	h.isDark = h.themes.IsDark()
	w, ht := h.surface.Size()
	h.reseed(w, ht)

	h.subscribe("resize", func() (func(), error) { return h.host.OnResize(h.resized) })
	if h.effect != nil {
		h.subscribe("pointer", func() (func(), error) { return h.host.OnPointerMove(h.tracker.Move) })
	}
	h.subscribe("theme", func() (func(), error) { return h.themes.Subscribe(h.themeChanged) })

	h.start = time.Time{}
	h.gen++
	h.alive.Store(true)
	h.schedule()

	h.log.Debug("started", "elements", h.state.Len(), "dark", h.isDark)
	return nil
}

// subscribe registers one listener; failures only disable that feature.
func (h *Handle) subscribe(kind string, register func() (func(), error)) {
	teardown, err := register()
	if err != nil {
		h.log.Warn("listener unavailable", "kind", kind, "error", err)
		return
	}
	if teardown != nil {
		h.subs = append(h.subs, teardown)
	}
}

// Stop halts the loop. When it returns no frame body will draw again and
// every subscription has been released.
func (h *Handle) Stop() {
	h.mu.Lock()
	if !h.alive.Load() {
		h.mu.Unlock()
		return
	}
	h.alive.Store(false)
	h.gen++
	if h.scheduled {
		h.host.CancelFrame(h.pending)
		h.scheduled = false
	}
	subs := h.subs
	h.subs = nil
	h.mu.Unlock()

	// Released outside mu: a theme source may be delivering to us right now.
	for _, teardown := range subs {
		teardown()
	}
	h.log.Debug("stopped", "frames", h.Frames())
}

// Destroy stops the handle for good. It is safe to call repeatedly.
func (h *Handle) Destroy() {
	h.Stop()
	h.mu.Lock()
	h.destroyed = true
	h.mu.Unlock()
}

// schedule requests the next frame unless one is pending. Called with mu held.
func (h *Handle) schedule() {
	if h.scheduled {
		return
	}
	gen := h.gen
	h.pending = h.host.RequestFrame(func(now time.Time) { h.frame(gen, now) })
	h.scheduled = true
}

func (h *Handle) frame(gen uint64, now time.Time) {
	if !h.alive.Load() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	// Stop may have run between the check above and the lock, or a newer
	// Start may own the loop by now.
	if !h.alive.Load() || gen != h.gen {
		return
	}
	h.scheduled = false

	h.render(now)
	h.schedule()
}

// render draws one frame. Panics are logged and counted; the loop survives.
func (h *Handle) render(now time.Time) {
	if h.start.IsZero() {
		h.start = now
	}
	elapsed := now.Sub(h.start)
	began := time.Now()
	failed := false

	func() {
		defer func() {
			if r := recover(); r != nil {
				failed = true
				h.failures++
				err := &FrameError{Frame: h.frames, Elapsed: elapsed, Wrapped: panicError(r)}
				h.log.Error("frame failed", "error", err)
			}
		}()
		h.surface.Clear()
		h.renderer.Render(h.surface, &h.state, elapsed)
		if h.effect != nil {
			h.effect.Render(h.surface, h.tracker.Sample(), elapsed, h.isDark)
		}
	}()

	h.frames++
	if h.observer != nil {
		h.observer.ObserveFrame(FrameStats{
			Frame:    h.frames,
			Elapsed:  elapsed,
			Render:   time.Since(began),
			Elements: h.state.Len(),
			Failed:   failed,
		})
	}
}

func (h *Handle) reseed(w, ht float64) {
	n := 0
	if variant.UsesPool(h.renderer) {
		n = h.cfg.Intensity.Count(h.renderer.Family())
	}
	h.state.Seed(w, ht, n, h.renderer.Family(), h.isDark, h.rng)
}

func (h *Handle) resized(w, ht float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.alive.Load() {
		return
	}
	h.reseed(w, ht)
	h.log.Debug("resized", "width", w, "height", ht, "elements", h.state.Len())
}

func (h *Handle) themeChanged(isDark bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.alive.Load() || h.isDark == isDark {
		return
	}
	h.isDark = isDark
	h.state.Recolor(isDark)
	h.log.Debug("theme changed", "dark", isDark)
}

// Running reports whether the loop is active.
func (h *Handle) Running() bool { return h.alive.Load() }

// Inert reports whether the handle was created without a surface.
func (h *Handle) Inert() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inert
}

// Frames counts rendered frame bodies, failed ones included.
func (h *Handle) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Failures counts frame bodies that panicked.
func (h *Handle) Failures() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failures
}

// IsDark reports the theme branch currently used for colors.
func (h *Handle) IsDark() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.isDark
}

// Snapshot returns a copy of the simulation state.
func (h *Handle) Snapshot() scene.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := scene.State{Width: h.state.Width, Height: h.state.Height}
	out.Elements = append([]scene.Element(nil), h.state.Elements...)
	return out
}

// Config returns the configuration the handle was created with.
func (h *Handle) Config() config.Config { return h.cfg }

// Subscriptions returns the number of live subscriptions.
func (h *Handle) Subscriptions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
