package variant

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/scene"
)

const dotSpacing = 50

// Dots draws a fixed grid whose size, alpha and hue follow a diagonal wave.
// It ignores the element pool.
type Dots struct{}

func NewDots() *Dots { return &Dots{} }

func (*Dots) Name() string         { return "dots" }
func (*Dots) Family() scene.Family { return scene.Particles }
func (*Dots) Poolless()            {}

func (*Dots) Render(s draw.Surface, _ *scene.State, t time.Duration) {
	phase := millis(t) * 0.003
	width, height := s.Size()
	for x := 0.0; x < width; x += dotSpacing {
		for y := 0.0; y < height; y += dotSpacing {
			wave := math.Sin(phase+x*0.01+y*0.01)*0.5 + 0.5
			c := palette.HSL(palette.HueBase+wave*palette.HueSpan, palette.Saturate, 0.6)
			s.FillCircle(x, y, wave*3+1, draw.Solid(c, wave*0.3+0.1))
		}
	}
}
