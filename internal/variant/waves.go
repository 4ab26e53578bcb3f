package variant

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/scene"
)

const (
	waveLayers = 4
	waveStep   = 5
	waveWidth  = 2
)

// Waves draws two sets of layered sine curves. It ignores the element pool.
type Waves struct {
	pts []draw.Point
}

func NewWaves() *Waves { return &Waves{} }

func (*Waves) Name() string         { return "waves" }
func (*Waves) Family() scene.Family { return scene.Shapes }
func (*Waves) Poolless()            {}

func (w *Waves) Render(s draw.Surface, st *scene.State, t time.Duration) {
	ts := seconds(t)
	width, height := s.Size()

	for i := 0; i < waveLayers; i++ {
		fi := float64(i)
		p := draw.Solid(palette.HSL(palette.HueBase+15*fi, palette.Saturate, 0.6), 0.1-0.02*fi)

		w.trace(width, func(x float64) float64 {
			return height*0.3 +
				math.Sin((x+ts*80)*0.01+fi)*40 +
				math.Sin((x+ts*40)*0.02+fi)*20 +
				math.Sin((x+ts*120)*0.005+fi)*60
		})
		s.StrokePolyline(w.pts, waveWidth, p)

		w.trace(width, func(x float64) float64 {
			return height*0.7 +
				math.Sin((x+ts*60)*0.015+fi+math.Pi)*30 +
				math.Sin((x+ts*90)*0.008+fi+math.Pi)*45
		})
		s.StrokePolyline(w.pts, waveWidth, p)
	}
}

// trace samples y across [0, width] into the reusable point buffer.
func (w *Waves) trace(width float64, y func(x float64) float64) {
	w.pts = w.pts[:0]
	for x := 0.0; x <= width; x += waveStep {
		w.pts = append(w.pts, draw.Point{X: x, Y: y(x)})
	}
}
