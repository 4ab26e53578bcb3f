package scene

// DriftFunc returns the extra displacement of element i for this frame.
// It sees the element after its base velocity has been applied.
type DriftFunc func(i int, e *Element) (dx, dy float64)

// MarginFunc returns the wrap margin of an element.
type MarginFunc func(e *Element) float64

// FixedMargin wraps every element with the same margin.
func FixedMargin(m float64) MarginFunc {
	return func(*Element) float64 { return m }
}

// SizeMargin wraps each element just outside its own size.
func SizeMargin(e *Element) float64 { return e.Size }

// Step advances every element by one frame: base velocity, then drift,
// then rotation when rotate is set, then wraparound. Velocity, size and
// opacity are never changed.
func (s *State) Step(drift DriftFunc, margin MarginFunc, rotate bool) {
	if margin == nil {
		margin = FixedMargin(0)
	}
	for i := range s.Elements {
		e := &s.Elements[i]
		e.X += e.VX
		e.Y += e.VY
		if drift != nil {
			dx, dy := drift(i, e)
			e.X += dx
			e.Y += dy
		}
		if rotate {
			e.Rotation += e.RotationSpeed
		}
		s.Wrap(e, margin(e))
	}
}

// Wrap applies the hard-reset wraparound rule: a coordinate past one
// extended bound jumps to the opposite bound, not to bound minus overshoot.
func (s *State) Wrap(e *Element, m float64) {
	e.X = wrapAxis(e.X, s.Width, m)
	e.Y = wrapAxis(e.Y, s.Height, m)
}

func wrapAxis(v, extent, m float64) float64 {
	if v < -m {
		return extent + m
	}
	if v > extent+m {
		return -m
	}
	return v
}

// InBounds reports whether e lies within [-m, extent+m] on both axes.
func (s *State) InBounds(e *Element, m float64) bool {
	return e.X >= -m && e.X <= s.Width+m && e.Y >= -m && e.Y <= s.Height+m
}
