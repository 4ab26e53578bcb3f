package engine

import (
	"time"

	"github.com/san-kum/backdrop/internal/draw"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameFunc is called once for a requested frame with the host's clock.
type FrameFunc func(now time.Time)

// Host is the environment a handle renders in.
type Host interface {
	// RequestFrame schedules fn for the next frame.
	RequestFrame(fn FrameFunc) FrameID
	// CancelFrame drops a request that has not fired. Unknown ids are ignored.
	CancelFrame(id FrameID)
	Surface() (draw.Surface, error)
	// OnResize registers fn for surface size changes. The surface already
	// reports the new size when fn runs.
	OnResize(fn func(w, h float64)) (func(), error)
	// OnPointerMove registers fn for pointer positions relative to the surface.
	OnPointerMove(fn func(x, y float64)) (func(), error)
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame    uint64
	Elapsed  time.Duration
	Render   time.Duration
	Elements int
	Failed   bool
}

// FrameObserver receives stats after every frame body. It runs inside the
// frame and must not block.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// ObserverFunc adapts a function to FrameObserver.
type ObserverFunc func(FrameStats)

func (f ObserverFunc) ObserveFrame(s FrameStats) { f(s) }
