package metrics

import "github.com/san-kum/backdrop/internal/engine"

// Stability is the fraction of frames that rendered without failing.
type Stability struct {
	name     string
	failures int
	samples  int
}

func NewStability() *Stability {
	return &Stability{
		name: "stability",
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f engine.FrameStats) {
	s.samples++
	if f.Failed {
		s.failures++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.failures)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.failures = 0
	s.samples = 0
}

// Elements is the mean number of simulated elements per frame.
type Elements struct {
	name    string
	sum     int
	samples int
}

func NewElements() *Elements {
	return &Elements{name: "elements"}
}

func (e *Elements) Name() string { return e.name }

func (e *Elements) Observe(f engine.FrameStats) {
	e.sum += f.Elements
	e.samples++
}

func (e *Elements) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.sum) / float64(e.samples)
}

func (e *Elements) Reset() {
	e.sum = 0
	e.samples = 0
}
