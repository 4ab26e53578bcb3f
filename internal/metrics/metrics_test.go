package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/backdrop/internal/engine"
)

func frame(render time.Duration, failed bool) engine.FrameStats {
	return engine.FrameStats{Render: render, Elements: 10, Failed: failed}
}

func TestFrameTime(t *testing.T) {
	m := NewFrameTime()
	m.Observe(frame(2*time.Millisecond, false))
	m.Observe(frame(4*time.Millisecond, false))

	if math.Abs(m.Value()-3) > 1e-9 {
		t.Errorf("expected 3ms, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestMaxFrameTime(t *testing.T) {
	m := NewMaxFrameTime()
	for _, d := range []time.Duration{time.Millisecond, 7 * time.Millisecond, 3 * time.Millisecond} {
		m.Observe(frame(d, false))
	}
	if m.Value() != 7 {
		t.Errorf("expected 7ms, got %f", m.Value())
	}
}

func TestOverBudget(t *testing.T) {
	m := NewOverBudget(16)
	m.Observe(frame(10*time.Millisecond, false))
	m.Observe(frame(20*time.Millisecond, false))
	m.Observe(frame(16*time.Millisecond, false))
	m.Observe(frame(30*time.Millisecond, false))

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		failed   []bool
		expected float64
	}{
		{nil, 1.0},
		{[]bool{false, false}, 1.0},
		{[]bool{false, true, false, true}, 0.5},
	}

	for _, tt := range tests {
		m := NewStability()
		for _, f := range tt.failed {
			m.Observe(frame(0, f))
		}
		if m.Value() != tt.expected {
			t.Errorf("%v: expected %f, got %f", tt.failed, tt.expected, m.Value())
		}
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(3, Default(16)...)
	for i := 1; i <= 5; i++ {
		c.ObserveFrame(frame(time.Duration(i)*time.Millisecond, false))
	}

	hist := c.History()
	if len(hist) != 3 || hist[0] != 3 || hist[2] != 5 {
		t.Errorf("expected [3 4 5], got %v", hist)
	}

	vals := c.Values()
	if vals["frame_ms"] != 3 || vals["frame_max_ms"] != 5 || vals["elements"] != 10 {
		t.Errorf("unexpected values %v", vals)
	}

	c.Reset()
	if len(c.History()) != 0 || c.Values()["frame_ms"] != 0 {
		t.Error("expected empty collector after reset")
	}
}

func TestCollectorPartialHistory(t *testing.T) {
	c := NewCollector(10)
	c.ObserveFrame(frame(time.Millisecond, false))
	c.ObserveFrame(frame(2*time.Millisecond, false))
	if hist := c.History(); len(hist) != 2 || hist[1] != 2 {
		t.Errorf("expected [1 2], got %v", hist)
	}
}
