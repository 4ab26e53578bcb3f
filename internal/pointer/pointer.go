// Package pointer tracks the pointer position over a surface and renders
// the pointer-reactive effects drawn around it.
package pointer

import (
	"sync/atomic"

	"github.com/charmbracelet/harmonica"
)

// Point is a pointer position relative to the surface origin.
type Point struct{ X, Y float64 }

// State holds the last observed pointer position. Writers and readers never
// block each other. The zero value reads as the origin.
type State struct {
	p atomic.Pointer[Point]
}

func (s *State) Set(x, y float64) {
	s.p.Store(&Point{X: x, Y: y})
}

func (s *State) Get() Point {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return Point{}
}

// Moved reports whether any position was ever stored.
func (s *State) Moved() bool { return s.p.Load() != nil }

// Tracker is the pointer input of one handle. Move may be called from any
// goroutine; Sample belongs to the frame loop.
type Tracker struct {
	State
	spring  harmonica.Spring
	smooth  bool
	settled bool
	pos     [2]float64
	vel     [2]float64
}

// NewTracker returns a tracker that follows the raw position. With a
// positive frequency, Sample eases toward it through a damped spring
// stepped once per frame at fps.
func NewTracker(fps int, frequency, damping float64) *Tracker {
	t := &Tracker{}
	if fps > 0 && frequency > 0 {
		t.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
		t.smooth = true
	}
	return t
}

// Move records a pointer event.
func (t *Tracker) Move(x, y float64) { t.Set(x, y) }

// Sample returns the position to render this frame.
func (t *Tracker) Sample() Point {
	target := t.Get()
	if !t.smooth {
		return target
	}
	if !t.settled {
		t.pos = [2]float64{target.X, target.Y}
		t.settled = true
		return target
	}
	t.pos[0], t.vel[0] = t.spring.Update(t.pos[0], t.vel[0], target.X)
	t.pos[1], t.vel[1] = t.spring.Update(t.pos[1], t.vel[1], target.Y)
	return Point{X: t.pos[0], Y: t.pos[1]}
}

// Smoothing reports whether Sample goes through the spring.
func (t *Tracker) Smoothing() bool { return t.smooth }
