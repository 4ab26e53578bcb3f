// Package host provides the frame queue and listener plumbing shared by
// every engine host, plus a manual host for tests and headless runs.
package host

import (
	"sync"
	"time"

	"github.com/san-kum/backdrop/internal/engine"
)

type request struct {
	id engine.FrameID
	fn engine.FrameFunc
}

// Base implements the scheduling and subscription half of engine.Host.
// It never holds its lock while calling out, so callbacks may request
// frames or unsubscribe freely.
type Base struct {
	mu       sync.Mutex
	nextID   engine.FrameID
	queue    []request
	nextSub  int
	resize   map[int]func(w, h float64)
	pointer  map[int]func(x, y float64)
	requests int
}

func (b *Base) RequestFrame(fn engine.FrameFunc) engine.FrameID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.queue = append(b.queue, request{id: b.nextID, fn: fn})
	b.requests++
	return b.nextID
}

func (b *Base) CancelFrame(id engine.FrameID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.queue {
		if r.id == id {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			return
		}
	}
}

// Flush runs the callbacks queued before the call. Requests made while
// flushing wait for the next Flush. It returns how many callbacks ran.
func (b *Base) Flush(now time.Time) int {
	b.mu.Lock()
	batch := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, r := range batch {
		r.fn(now)
	}
	return len(batch)
}

// Take removes the queued callbacks without running them, as a host that
// already dequeued a frame would hold them.
func (b *Base) Take() []engine.FrameFunc {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]engine.FrameFunc, len(b.queue))
	for i, r := range b.queue {
		out[i] = r.fn
	}
	b.queue = nil
	return out
}

func (b *Base) OnResize(fn func(w, h float64)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resize == nil {
		b.resize = make(map[int]func(w, h float64))
	}
	id := b.nextSub
	b.nextSub++
	b.resize[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.resize, id)
		b.mu.Unlock()
	}, nil
}

func (b *Base) OnPointerMove(fn func(x, y float64)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pointer == nil {
		b.pointer = make(map[int]func(x, y float64))
	}
	id := b.nextSub
	b.nextSub++
	b.pointer[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.pointer, id)
		b.mu.Unlock()
	}, nil
}

// NotifyResize delivers a new surface size to every resize listener.
func (b *Base) NotifyResize(w, h float64) {
	b.mu.Lock()
	fns := make([]func(w, h float64), 0, len(b.resize))
	for _, fn := range b.resize {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(w, h)
	}
}

// NotifyPointer delivers a pointer position to every pointer listener.
func (b *Base) NotifyPointer(x, y float64) {
	b.mu.Lock()
	fns := make([]func(x, y float64), 0, len(b.pointer))
	for _, fn := range b.pointer {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(x, y)
	}
}

// Pending returns the number of queued frame requests.
func (b *Base) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Requests counts every RequestFrame call.
func (b *Base) Requests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

// Listeners returns the number of live resize and pointer listeners.
func (b *Base) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.resize) + len(b.pointer)
}
