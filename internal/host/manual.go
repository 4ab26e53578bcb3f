package host

import (
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
)

// Resizable is implemented by surfaces whose extent the host can change.
type Resizable interface {
	SetSize(w, h float64)
}

// Manual is a host driven step by step with a synthetic clock.
type Manual struct {
	Base
	surface draw.Surface
	now     time.Time
	step    time.Duration

	// Failures injected before Create.
	SurfaceErr error
	ResizeErr  error
	PointerErr error
}

// NewManual returns a host around surface whose clock starts at the Unix
// epoch and advances by step per frame.
func NewManual(surface draw.Surface, step time.Duration) *Manual {
	return &Manual{surface: surface, now: time.Unix(0, 0), step: step}
}

func (m *Manual) Surface() (draw.Surface, error) {
	if m.SurfaceErr != nil {
		return nil, m.SurfaceErr
	}
	return m.surface, nil
}

func (m *Manual) OnResize(fn func(w, h float64)) (func(), error) {
	if m.ResizeErr != nil {
		return nil, m.ResizeErr
	}
	return m.Base.OnResize(fn)
}

func (m *Manual) OnPointerMove(fn func(x, y float64)) (func(), error) {
	if m.PointerErr != nil {
		return nil, m.PointerErr
	}
	return m.Base.OnPointerMove(fn)
}

// Step advances the clock and fires the pending frames.
func (m *Manual) Step() int {
	m.now = m.now.Add(m.step)
	return m.Flush(m.now)
}

// Run steps n times and returns the number of callbacks fired.
func (m *Manual) Run(n int) int {
	fired := 0
	for i := 0; i < n; i++ {
		fired += m.Step()
	}
	return fired
}

// Resize changes the surface extent, when possible, and notifies listeners.
func (m *Manual) Resize(w, h float64) {
	if r, ok := m.surface.(Resizable); ok {
		r.SetSize(w, h)
	}
	m.NotifyResize(w, h)
}

// Move reports a pointer position.
func (m *Manual) Move(x, y float64) { m.NotifyPointer(x, y) }

// Now returns the synthetic clock.
func (m *Manual) Now() time.Time { return m.now }

var _ engine.Host = (*Manual)(nil)
