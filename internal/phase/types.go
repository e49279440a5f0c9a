package phase

import "math"

// Sample is one point of both curves at a shared composition.
type Sample struct {
	Composition float64 `json:"composition"`
	Lower       float64 `json:"lower"`
	Upper       float64 `json:"upper"`
}

// Side selects one of the two curves.
type Side int

const (
	Lower Side = iota
	Upper
)

func (s Side) String() string {
	if s == Upper {
		return "upper"
	}
	return "lower"
}

// Value returns the sample's value on the given curve.
func (s Sample) Value(side Side) float64 {
	if side == Upper {
		return s.Upper
	}
	return s.Lower
}

// Curve is the ascending, immutable sample sequence shared by both curves.
type Curve struct {
	samples  []Sample
	step     float64
	min, max float64
	trend    [2]monotonicity
}

func buildCurve(samples []Sample, step float64) Curve {
	c := Curve{samples: samples, step: step, min: math.Inf(1), max: math.Inf(-1)}
	for _, s := range samples {
		c.min = math.Min(c.min, math.Min(s.Lower, s.Upper))
		c.max = math.Max(c.max, math.Max(s.Lower, s.Upper))
	}
	c.trend[Lower] = direction(samples, Lower)
	c.trend[Upper] = direction(samples, Upper)
	return c
}

func (c Curve) Len() int { return len(c.samples) }

func (c Curve) At(i int) Sample { return c.samples[i] }

// Step is the composition distance between neighbouring samples.
func (c Curve) Step() float64 { return c.step }

// Bounds returns the dependent-axis extent over both curves.
func (c Curve) Bounds() (float64, float64) { return c.min, c.max }

// Samples returns a copy of the sample sequence.
func (c Curve) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Values returns a copy of one curve's dependent values in sample order.
func (c Curve) Values(side Side) []float64 {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Value(side)
	}
	return out
}

// NearestIndex returns the index of the sample whose composition is closest
// to x, clamped into the sampled range.
func (c Curve) NearestIndex(x float64) int {
	n := len(c.samples)
	if n == 0 || c.step <= 0 {
		return 0
	}
	i := int(math.Round(x / c.step))
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}

// Nearest returns the sample whose composition is closest to x.
func (c Curve) Nearest(x float64) Sample {
	return c.samples[c.NearestIndex(x)]
}

// Probe is the transient point being dragged, in domain coordinates.
type Probe struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equilibrium holds the sample on each curve closest to a probe's y.
type Equilibrium struct {
	LowerComposition float64 `json:"lower_composition"`
	UpperComposition float64 `json:"upper_composition"`
	LowerValue       float64 `json:"lower_value"`
	UpperValue       float64 `json:"upper_value"`
}

// Width is the composition span of the two-phase envelope at this level.
func (e Equilibrium) Width() float64 {
	return e.LowerComposition - e.UpperComposition
}

// Fractions are lever-arm phase weights. Vapour belongs to the upper curve,
// liquid to the lower curve.
type Fractions struct {
	Vapour float64 `json:"vapour"`
	Liquid float64 `json:"liquid"`
}

// Sum is the total of both fractions.
func (f Fractions) Sum() float64 { return f.Vapour + f.Liquid }
