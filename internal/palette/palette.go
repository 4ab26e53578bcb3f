// Package palette generates the theme-aware colors used by every renderer.
//
// Generation is pure: the same (isDark, seed) pair always yields the same
// color, so callers can keep the seed and regenerate after a theme switch.
package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Hue band shared by all generated colors (blue through violet).
const (
	HueBase  = 224.0
	HueSpan  = 56.0
	Saturate = 0.70

	darkLightness  = 0.60
	lightLightness = 0.40
	lightnessSpan  = 0.20
)

// Color is an sRGB color with a straight (non-premultiplied) alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1} }

// RGBA builds a color with alpha clamped to [0,1].
func RGBA(r, g, b uint8, a float64) Color { return Color{R: r, G: g, B: b, A: Clamp01(a)} }

// HSL converts hue in degrees and saturation/lightness in [0,1].
func HSL(h, s, l float64) Color {
	r, g, b := colorful.Hsl(math.Mod(h, 360), s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 1}
}

// Background is the color surfaces clear to under a theme branch.
func Background(isDark bool) Color {
	if isDark {
		return RGB(10, 10, 20)
	}
	return RGB(248, 250, 252)
}

// Generate returns the palette color for seed in [0,1). Hue spans the band
// linearly with seed; lightness is taken from a decorrelated fraction of the
// same seed so neighbouring hues do not share a lightness.
func Generate(isDark bool, seed float64) Color {
	seed = frac(seed)
	lo := lightLightness
	if isDark {
		lo = darkLightness
	}
	l := lo + frac(seed*61.803398875)*lightnessSpan
	return HSL(HueBase+seed*HueSpan, Saturate, l)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = Clamp01(a)
	return c
}

// Scale multiplies the alpha by k.
func (c Color) Scale(k float64) Color {
	return c.WithAlpha(c.A * k)
}

// Lerp interpolates channel-wise between c and d.
func (c Color) Lerp(d Color, t float64) Color {
	t = Clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{
		R: mix(c.R, d.R),
		G: mix(c.G, d.G),
		B: mix(c.B, d.B),
		A: c.A + (d.A-c.A)*t,
	}
}

// RGBA implements image/color.Color with premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	a16 := uint32(math.Round(Clamp01(c.A) * 0xffff))
	r = uint32(c.R) * 0x101 * a16 / 0xffff
	g = uint32(c.G) * 0x101 * a16 / 0xffff
	b = uint32(c.B) * 0x101 * a16 / 0xffff
	return r, g, b, a16
}

// Hex renders the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}
