package pointer

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
)

const liquidRadius = 200

// Liquid is a soft glow under the pointer with three breathing ripples.
type Liquid struct{}

func (Liquid) Name() string { return "liquid" }

func (Liquid) Render(s draw.Surface, p Point, t time.Duration, isDark bool) {
	s.FillCircle(p.X, p.Y, liquidRadius, radial(p.X, p.Y, 0, liquidRadius,
		stop(0, blue, pick(isDark, 0.3, 0.1)),
		stop(0.5, purple, pick(isDark, 0.2, 0.05)),
		stop(1, purple, 0),
	))

	ms := millis(t)
	for i := 0; i < 3; i++ {
		fi := float64(i)
		inner, outer := 50+30*fi, 80+40*fi
		paint := radial(p.X, p.Y, inner, outer,
			stop(0, blue, 0),
			stop(0.5, purple, pick(isDark, 0.1-0.03*fi, 0.05-0.015*fi)),
			stop(1, purple, 0),
		)
		s.FillCircle(p.X, p.Y, outer+math.Sin(ms*0.003+fi)*10, paint)
	}
}
