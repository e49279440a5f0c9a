package phase

import (
	"math"
	"sort"
)

// Locator finds, on each curve, the sample whose value is closest to v.
// Ties resolve to the lowest composition.
type Locator interface {
	Locate(c Curve, v float64) Equilibrium
}

func equilibrium(c Curve, lower, upper int) Equilibrium {
	return Equilibrium{
		LowerComposition: c.samples[lower].Composition,
		UpperComposition: c.samples[upper].Composition,
		LowerValue:       c.samples[lower].Lower,
		UpperValue:       c.samples[upper].Upper,
	}
}

// LinearLocator scans every sample. O(n) per curve.
type LinearLocator struct{}

func (LinearLocator) Locate(c Curve, v float64) Equilibrium {
	if c.Len() == 0 {
		return Equilibrium{}
	}
	lower, upper := scanNearest(c, v)
	return equilibrium(c, lower, upper)
}

func scanNearest(c Curve, v float64) (int, int) {
	lower, upper := 0, 0
	minLower, minUpper := math.Inf(1), math.Inf(1)
	for i, s := range c.samples {
		if d := math.Abs(v - s.Lower); d < minLower {
			minLower, lower = d, i
		}
		if d := math.Abs(v - s.Upper); d < minUpper {
			minUpper, upper = d, i
		}
	}
	return lower, upper
}

func nearestOnSide(c Curve, side Side, v float64) int {
	best, minDiff := 0, math.Inf(1)
	for i, s := range c.samples {
		if d := math.Abs(v - s.Value(side)); d < minDiff {
			minDiff, best = d, i
		}
	}
	return best
}

// BisectLocator binary-searches each curve that is monotonic in composition
// and falls back to a linear scan for a curve that is not. Results match
// LinearLocator exactly, tie-break included.
type BisectLocator struct{}

func (BisectLocator) Locate(c Curve, v float64) Equilibrium {
	if c.Len() == 0 {
		return Equilibrium{}
	}
	return equilibrium(c, bisectNearest(c, Lower, v), bisectNearest(c, Upper, v))
}

type monotonicity int

const (
	nonMonotonic monotonicity = iota
	ascending
	descending
)

func direction(samples []Sample, side Side) monotonicity {
	asc, desc := true, true
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1].Value(side), samples[i].Value(side)
		if cur < prev {
			asc = false
		}
		if cur > prev {
			desc = false
		}
		if !asc && !desc {
			return nonMonotonic
		}
	}
	if asc {
		return ascending
	}
	return descending
}

func bisectNearest(c Curve, side Side, v float64) int {
	n := len(c.samples)
	val := func(i int) float64 { return c.samples[i].Value(side) }

	var before func(i int) bool // true while sample i sits strictly on the near side of v
	switch c.trend[side] {
	case ascending:
		before = func(i int) bool { return val(i) < v }
	case descending:
		before = func(i int) bool { return val(i) > v }
	default:
		return nearestOnSide(c, side, v)
	}

	// first sample at or past v
	hi := sort.Search(n, func(i int) bool { return !before(i) })
	if hi == 0 {
		return 0
	}
	if hi == n {
		return firstEqual(c, side, n-1)
	}
	lo := firstEqual(c, side, hi-1)
	if math.Abs(v-val(lo)) <= math.Abs(v-val(hi)) {
		return lo
	}
	return hi
}

// firstEqual walks back to the earliest sample sharing i's value.
func firstEqual(c Curve, side Side, i int) int {
	target := c.samples[i].Value(side)
	for i > 0 && c.samples[i-1].Value(side) == target {
		i--
	}
	return i
}
