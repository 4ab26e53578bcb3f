// Package theme resolves the light/dark branch used by the palette.
//
// A Resolver combines the user's preference (light, dark or system) with an
// injected Platform that reports the system preference, and fans
// changes out to subscribers.
package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode is the user-selected theme preference.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// ErrUnknownMode is returned when parsing an unrecognized mode.
var ErrUnknownMode = errors.New("theme: unknown mode")

// Modes lists the recognized modes in cycling order.
var Modes = []Mode{Light, Dark, System}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Light, Dark, System:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Next returns the mode after m in Modes.
func (m Mode) Next() Mode {
	for i, v := range Modes {
		if v == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Light
}

// Source is what the engine consumes: the resolved dark flag and its changes.
type Source interface {
	IsDark() bool
	// Subscribe registers fn for changes of the resolved flag and returns its teardown.
	Subscribe(fn func(isDark bool)) (func(), error)
}

// Platform reports the platform color-scheme preference, the equivalent of a
// prefers-color-scheme media query.
type Platform interface {
	PrefersDark() bool
	Watch(fn func(dark bool)) (func(), error)
}

// Resolver implements Source for a Mode backed by a Platform.
type Resolver struct {
	mu       sync.Mutex
	mode     Mode
	platform Platform
	dark     bool
	nextID   int
	subs     map[int]func(bool)
	unwatch  func()
}

// NewResolver builds a resolver. A nil platform behaves as a light platform.
func NewResolver(mode Mode, platform Platform) *Resolver {
	if platform == nil {
		platform = Fixed(false)
	}
	r := &Resolver{
		mode:     mode,
		platform: platform,
		subs:     make(map[int]func(bool)),
	}
	r.dark = r.resolve()
	return r
}

func (r *Resolver) resolve() bool {
	switch r.mode {
	case Dark:
		return true
	case System:
		return r.platform.PrefersDark()
	default:
		return false
	}
}

// Mode returns the current preference.
func (r *Resolver) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// IsDark reports the resolved flag.
func (r *Resolver) IsDark() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dark
}

// SetMode changes the preference and notifies subscribers when the resolved
// flag flips.
func (r *Resolver) SetMode(mode Mode) {
	r.mu.Lock()
	r.mode = mode
	r.update()
}

// update recomputes the flag; called with mu held, releases it before notifying.
func (r *Resolver) update() {
	dark := r.resolve()
	changed := dark != r.dark
	r.dark = dark
	var fns []func(bool)
	if changed {
		fns = make([]func(bool), 0, len(r.subs))
		for _, fn := range r.subs {
			fns = append(fns, fn)
		}
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// Subscribe implements Source. The platform watch is attached lazily with the
// first subscriber and detached with the last.
func (r *Resolver) Subscribe(fn func(isDark bool)) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.subs) == 0 {
		unwatch, err := r.platform.Watch(r.platformChanged)
		if err != nil {
			return nil, fmt.Errorf("theme: watch platform: %w", err)
		}
		r.unwatch = unwatch
	}

	id := r.nextID
	r.nextID++
	r.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { r.unsubscribe(id) })
	}, nil
}

func (r *Resolver) unsubscribe(id int) {
	r.mu.Lock()
	delete(r.subs, id)
	var unwatch func()
	if len(r.subs) == 0 {
		unwatch, r.unwatch = r.unwatch, nil
	}
	r.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
}

// Subscribers returns the number of live subscriptions.
func (r *Resolver) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func (r *Resolver) platformChanged(bool) {
	r.mu.Lock()
	if r.mode != System {
		r.mu.Unlock()
		return
	}
	r.update()
}
