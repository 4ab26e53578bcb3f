package pointer

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
)

const (
	torchAmbient = 300
	torchCore    = 80
	torchRays    = 8
)

// Torch lights the area around the pointer. It only draws on dark themes.
type Torch struct{}

func (Torch) Name() string { return "torch" }

// Flicker is the intensity multiplier of the torch core at t.
func Flicker(t time.Duration) float64 {
	tt := millis(t) * 0.01
	return 0.8 + math.Sin(tt)*0.2 + math.Sin(tt*2.5)*0.1
}

func (Torch) Render(s draw.Surface, p Point, t time.Duration, isDark bool) {
	if !isDark {
		return
	}

	s.FillCircle(p.X, p.Y, torchAmbient, radial(p.X, p.Y, 0, torchAmbient,
		stop(0, white, 0.1),
		stop(0.3, blue, 0.08),
		stop(0.6, purple, 0.05),
		stop(1, black, 0),
	))

	f := Flicker(t)
	s.FillCircle(p.X, p.Y, torchCore, radial(p.X, p.Y, 0, torchCore,
		stop(0, white, 0.15*f),
		stop(0.5, blue, 0.1*f),
		stop(1, blue, 0),
	))

	tt := millis(t) * 0.01
	for i := 0; i < torchRays; i++ {
		fi := float64(i)
		angle := fi/torchRays*2*math.Pi + tt*0.1
		length := 100 + math.Sin(tt+fi)*20
		cos, sin := math.Cos(angle), math.Sin(angle)
		x0, y0 := p.X+cos*20, p.Y+sin*20
		x1, y1 := p.X+cos*length, p.Y+sin*length

		s.Line(x0, y0, x1, y1, 2, draw.Linear(draw.LinearGradient{
			X0: x0, Y0: y0, X1: x1, Y1: y1,
			Stops: []draw.Stop{
				stop(0, white, 0.1*f),
				stop(0.5, blue, 0.05*f),
				stop(1, blue, 0),
			},
		}))
	}
}
