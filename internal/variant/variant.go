// Package variant holds the per-frame background renderers. A renderer
// advances the elements it owns and draws them in the same pass.
package variant

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/scene"
)

// ErrUnknownVariant is returned for names missing from the registry.
var ErrUnknownVariant = errors.New("variant: unknown variant")

// Renderer draws one frame of a background style.
type Renderer interface {
	Name() string
	// Family selects the seeding ranges and the element count column.
	Family() scene.Family
	// Render advances st by one frame and draws it. t is the elapsed time
	// since the handle started.
	Render(s draw.Surface, st *scene.State, t time.Duration)
}

// Poolless is implemented by renderers that draw from elapsed time alone
// and never read the element pool.
type Poolless interface {
	Poolless()
}

// UsesPool reports whether r simulates elements. Handles seed an empty
// pool for renderers that do not.
func UsesPool(r Renderer) bool {
	_, ok := r.(Poolless)
	return !ok
}

var registry = map[string]func() Renderer{
	"floating-shapes": func() Renderer { return NewFloatingShapes() },
	"particles":       func() Renderer { return NewParticles() },
	"waves":           func() Renderer { return NewWaves() },
	"geometric":       func() Renderer { return NewGeometric() },
	"dots":            func() Renderer { return NewDots() },
}

// New returns a fresh renderer for name. Renderers keep per-instance
// scratch buffers, so each handle needs its own.
func New(name string) (Renderer, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownVariant, name, Names())
	}
	return fn(), nil
}

// Names lists registered variants in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func seconds(t time.Duration) float64 { return t.Seconds() }

func millis(t time.Duration) float64 { return float64(t) / float64(time.Millisecond) }
