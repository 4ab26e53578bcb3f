package theme

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Fixed is a Platform whose preference never changes.
type Fixed bool

func (f Fixed) PrefersDark() bool { return bool(f) }

func (f Fixed) Watch(func(bool)) (func(), error) { return func() {}, nil }

// Switchable is a Platform whose preference can be flipped at runtime, used
// by front-ends that learn the preference late and by tests.
type Switchable struct {
	mu       sync.Mutex
	dark     bool
	nextID   int
	watchers map[int]func(bool)
}

func NewSwitchable(dark bool) *Switchable {
	return &Switchable{dark: dark, watchers: make(map[int]func(bool))}
}

func (s *Switchable) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

func (s *Switchable) Watch(fn func(bool)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}, nil
}

// Set changes the preference and notifies watchers on change.
func (s *Switchable) Set(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	fns := make([]func(bool), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// Watchers returns the number of attached watchers.
func (s *Switchable) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

// DetectTerminal guesses the terminal background. BACKDROP_SYSTEM_THEME
// (light|dark) wins; otherwise COLORFGBG ("fg;bg") is consulted, where a
// background index below 7 (or 8) means a dark terminal.
func DetectTerminal(getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch strings.ToLower(getenv("BACKDROP_SYSTEM_THEME")) {
	case "dark":
		return true
	case "light":
		return false
	}
	parts := strings.Split(getenv("COLORFGBG"), ";")
	if len(parts) < 2 {
		return true
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return true
	}
	return bg < 7 || bg == 8
}
