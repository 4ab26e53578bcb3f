package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSurfaceUnavailable indicates the host could not provide a surface.
	// Create degrades to an inert handle instead of returning it.
	ErrSurfaceUnavailable = errors.New("engine: surface unavailable")

	// ErrListenerUnavailable indicates the host cannot deliver an event kind.
	ErrListenerUnavailable = errors.New("engine: listener unavailable")

	// ErrDestroyed is returned by Start after Destroy.
	ErrDestroyed = errors.New("engine: handle destroyed")
)

// FrameError wraps a failure recovered from a frame body.
type FrameError struct {
	Frame   uint64
	Elapsed time.Duration
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d at %s: %v", e.Frame, e.Elapsed, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}

// panicError turns a recovered value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
