package diagram

import "math"

// LinearScale maps a continuous domain onto a pixel range and back.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts a domain value to the range.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)*(s.R1-s.R0)/(s.D1-s.D0)
}

// Invert converts a range value back to the domain.
func (s LinearScale) Invert(px float64) float64 {
	if s.R1 == s.R0 {
		return s.D0
	}
	return s.D0 + (px-s.R0)*(s.D1-s.D0)/(s.R1-s.R0)
}

// Domain returns the ordered domain bounds.
func (s LinearScale) Domain() (float64, float64) {
	if s.D0 > s.D1 {
		return s.D1, s.D0
	}
	return s.D0, s.D1
}

// Clamp limits a domain value to the scale's domain.
func (s LinearScale) Clamp(v float64) float64 {
	lo, hi := s.Domain()
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
