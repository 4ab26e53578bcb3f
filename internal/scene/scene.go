// Package scene owns the simulated visual elements of one engine instance
// and their per-frame kinematics.
package scene

import (
	"math"
	"math/rand"

	"github.com/san-kum/backdrop/internal/palette"
)

// Kind selects the outline drawn by shape renderers.
type Kind int

const (
	Circle Kind = iota
	Square
	Triangle
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// Family groups renderers that share seeding ranges and the count table.
type Family int

const (
	Shapes Family = iota
	Particles
)

func (f Family) String() string {
	if f == Particles {
		return "particles"
	}
	return "shapes"
}

// Element is one simulated shape or particle. Particle renderers ignore
// Rotation and Kind.
type Element struct {
	X, Y          float64
	VX, VY        float64
	Size          float64
	Opacity       float64
	Color         palette.Color
	ColorSeed     float64
	Rotation      float64
	RotationSpeed float64
	Kind          Kind
}

// seedRange holds the randomization bounds of a family.
type seedRange struct {
	minSize, sizeSpan       float64
	speed                   float64
	minOpacity, opacitySpan float64
	spin                    float64
}

var ranges = map[Family]seedRange{
	Shapes:    {minSize: 10, sizeSpan: 20, speed: 0.3, minOpacity: 0.05, opacitySpan: 0.15, spin: 0.01},
	Particles: {minSize: 1, sizeSpan: 3, speed: 0.5, minOpacity: 0.1, opacitySpan: 0.5, spin: 0.02},
}

// State is the simulation state owned by one controller.
type State struct {
	Width, Height float64
	Elements      []Element
}

// Seed discards every element and creates n fresh ones inside w x h.
// Only the count is deterministic; placement comes from rng.
func (s *State) Seed(w, h float64, n int, f Family, isDark bool, rng *rand.Rand) {
	if n < 0 {
		n = 0
	}
	r := ranges[f]
	s.Width, s.Height = w, h
	s.Elements = make([]Element, n)
	for i := range s.Elements {
		seed := rng.Float64()
		s.Elements[i] = Element{
			X:             rng.Float64() * w,
			Y:             rng.Float64() * h,
			VX:            (rng.Float64() - 0.5) * r.speed,
			VY:            (rng.Float64() - 0.5) * r.speed,
			Size:          r.minSize + rng.Float64()*r.sizeSpan,
			Opacity:       r.minOpacity + rng.Float64()*r.opacitySpan,
			ColorSeed:     seed,
			Color:         palette.Generate(isDark, seed),
			Rotation:      rng.Float64() * 2 * math.Pi,
			RotationSpeed: (rng.Float64() - 0.5) * r.spin,
			Kind:          Kind(rng.Intn(3)),
		}
	}
}

// Recolor regenerates every color from its stored seed for the new theme.
func (s *State) Recolor(isDark bool) {
	for i := range s.Elements {
		s.Elements[i].Color = palette.Generate(isDark, s.Elements[i].ColorSeed)
	}
}

// Len returns the number of elements.
func (s *State) Len() int { return len(s.Elements) }
