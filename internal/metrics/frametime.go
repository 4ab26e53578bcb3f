package metrics

import (
	"math"
	"time"

	"github.com/san-kum/backdrop/internal/engine"
)

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// FrameTime is the mean render time in milliseconds.
type FrameTime struct {
	name    string
	sum     float64
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{
		name: "frame_ms",
	}
}

func (f *FrameTime) Name() string {
	return f.name
}

func (f *FrameTime) Observe(s engine.FrameStats) {
	f.sum += ms(s.Render)
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.sum / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.sum = 0
	f.samples = 0
}

// MaxFrameTime is the slowest render in milliseconds.
type MaxFrameTime struct {
	name string
	max  float64
}

func NewMaxFrameTime() *MaxFrameTime {
	return &MaxFrameTime{name: "frame_max_ms"}
}

func (m *MaxFrameTime) Name() string { return m.name }

func (m *MaxFrameTime) Observe(s engine.FrameStats) {
	m.max = math.Max(m.max, ms(s.Render))
}

func (m *MaxFrameTime) Value() float64 { return m.max }

func (m *MaxFrameTime) Reset() { m.max = 0 }

// OverBudget is the fraction of frames slower than budget milliseconds.
type OverBudget struct {
	name    string
	budget  float64
	over    int
	samples int
}

func NewOverBudget(budget float64) *OverBudget {
	return &OverBudget{
		name:   "over_budget",
		budget: budget,
	}
}

func (o *OverBudget) Name() string { return o.name }

func (o *OverBudget) Observe(s engine.FrameStats) {
	o.samples++
	if ms(s.Render) > o.budget {
		o.over++
	}
}

func (o *OverBudget) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.over) / float64(o.samples)
}

func (o *OverBudget) Reset() {
	o.over = 0
	o.samples = 0
}
