package variant

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/proximity"
	"github.com/san-kum/backdrop/internal/scene"
)

const (
	LinkThreshold = 150
	LinkAlpha     = 0.1
	linkWidth     = 0.5
)

// Particles draws small pulsing dots joined by faint connectors.
type Particles struct {
	links []proximity.Link
}

func NewParticles() *Particles { return &Particles{} }

func (*Particles) Name() string         { return "particles" }
func (*Particles) Family() scene.Family { return scene.Particles }

// Render moves every particle before any link is computed, so connectors
// reflect this frame's positions.
func (p *Particles) Render(s draw.Surface, st *scene.State, t time.Duration) {
	ms, ts := millis(t), seconds(t)
	st.Step(func(i int, _ *scene.Element) (float64, float64) {
		fi := float64(i)
		return math.Sin(ms*0.002+fi) * 0.1, math.Cos(ms*0.002+fi*0.7) * 0.1
	}, scene.FixedMargin(0), false)

	for i := range st.Elements {
		e := &st.Elements[i]
		r := e.Size * (0.8 + 0.2*math.Sin(ts+float64(i)*0.1))
		s.FillCircle(e.X, e.Y, r, draw.Solid(e.Color, e.Opacity))
	}

	p.links = proximity.Links(st.Elements, LinkThreshold, LinkAlpha, p.links)
	for _, l := range p.links {
		a, b := &st.Elements[l.I], &st.Elements[l.J]
		s.Line(a.X, a.Y, b.X, b.Y, linkWidth, draw.Solid(a.Color, l.Alpha))
	}
}

// Links returns the connectors drawn in the last frame.
func (p *Particles) Links() []proximity.Link { return p.links }
