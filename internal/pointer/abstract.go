package pointer

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/palette"
)

// Abstract orbits five gradient blobs around the pointer and sweeps three
// short strokes with them.
type Abstract struct{}

func (Abstract) Name() string { return "abstract" }

func (Abstract) Render(s draw.Surface, p Point, t time.Duration, isDark bool) {
	ts := seconds(t)
	for i := 0; i < 5; i++ {
		fi := float64(i)
		angle := (ts + fi) * 0.5
		dist := 30 + 20*fi
		x := p.X + math.Cos(angle)*dist
		y := p.Y + math.Sin(angle)*dist

		tint := palette.RGB(uint8(59+20*i), uint8(130+10*i), 246)
		s.FillCircle(x, y, 40-5*fi, radial(x, y, 0, 40,
			stop(0, tint, pick(isDark, 0.4-0.05*fi, 0.2-0.03*fi)),
			stop(1, purple, 0),
		))
	}

	line := draw.Solid(blue, pick(isDark, 0.3, 0.15))
	for i := 0; i < 3; i++ {
		a := ts + 2*float64(i)
		s.Line(
			p.X+math.Cos(a)*50, p.Y+math.Sin(a)*50,
			p.X+math.Cos(a+1)*100, p.Y+math.Sin(a+1)*100,
			2, line,
		)
	}
}
