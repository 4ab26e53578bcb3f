package pointer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/palette"
)

// ErrUnknownEffect is returned for names missing from the registry.
var ErrUnknownEffect = errors.New("pointer: unknown effect")

// Effect draws one frame around the pointer. Effects hold no state.
type Effect interface {
	Name() string
	Render(s draw.Surface, p Point, t time.Duration, isDark bool)
}

var effects = map[string]Effect{
	"liquid":   Liquid{},
	"abstract": Abstract{},
	"torch":    Torch{},
}

// New looks up an effect by name.
func New(name string) (Effect, error) {
	e, ok := effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownEffect, name, Names())
	}
	return e, nil
}

// Names lists registered effects in sorted order.
func Names() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	blue   = palette.RGB(59, 130, 246)
	purple = palette.RGB(147, 51, 234)
	white  = palette.RGB(255, 255, 255)
	black  = palette.RGB(0, 0, 0)
)

func stop(offset float64, c palette.Color, alpha float64) draw.Stop {
	return draw.Stop{Offset: offset, Color: c.WithAlpha(alpha)}
}

// radial builds a concentric gradient around (x, y).
func radial(x, y, r0, r1 float64, stops ...draw.Stop) draw.Paint {
	return draw.Radial(draw.RadialGradient{X0: x, Y0: y, R0: r0, X1: x, Y1: y, R1: r1, Stops: stops})
}

func seconds(t time.Duration) float64 { return t.Seconds() }

func millis(t time.Duration) float64 { return float64(t) / float64(time.Millisecond) }

// pick returns dark or light by theme.
func pick(isDark bool, dark, light float64) float64 {
	if isDark {
		return dark
	}
	return light
}
