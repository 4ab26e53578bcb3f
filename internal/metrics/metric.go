// Package metrics summarises engine frames.
package metrics

import (
	"sync"

	"github.com/san-kum/backdrop/internal/engine"
)

type Metric interface {
	Name() string
	Observe(s engine.FrameStats)
	Value() float64
	Reset()
}

// Collector fans frame stats out to a set of metrics and keeps a short
// history of render times. It implements engine.FrameObserver.
type Collector struct {
	mu      sync.Mutex
	metrics []Metric
	history []float64
	next    int
	full    bool
}

// NewCollector keeps the last capacity render times, in milliseconds.
func NewCollector(capacity int, ms ...Metric) *Collector {
	if capacity < 1 {
		capacity = 1
	}
	return &Collector{metrics: ms, history: make([]float64, capacity)}
}

// Default returns the metrics reported by bench and the stats panel.
func Default(budget float64) []Metric {
	return []Metric{
		NewFrameTime(),
		NewMaxFrameTime(),
		NewOverBudget(budget),
		NewStability(),
		NewElements(),
	}
}

func (c *Collector) ObserveFrame(s engine.FrameStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.metrics {
		m.Observe(s)
	}
	c.history[c.next] = ms(s.Render)
	c.next = (c.next + 1) % len(c.history)
	if c.next == 0 {
		c.full = true
	}
}

// History returns the recorded render times, oldest first.
func (c *Collector) History() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return append([]float64(nil), c.history[:c.next]...)
	}
	out := make([]float64, 0, len(c.history))
	out = append(out, c.history[c.next:]...)
	return append(out, c.history[:c.next]...)
}

// Values returns every metric keyed by name.
func (c *Collector) Values() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.metrics {
		m.Reset()
	}
	c.next, c.full = 0, false
}
