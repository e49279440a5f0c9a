package phase

import "math"

const (
	DefaultSamples       = 10000
	DefaultCoefficient   = 0.5
	DefaultOffset        = 0.25
	DefaultLowerExponent = 2.0
	DefaultUpperExponent = 0.5
)

// Axis is an optional affine map of normalized curve values onto a
// temperature-like interval [Base, Base+Range]. A zero Range leaves
// values untouched.
type Axis struct {
	Base  float64 `yaml:"base" json:"base"`
	Range float64 `yaml:"range" json:"range"`
	Unit  string  `yaml:"unit" json:"unit"`
}

// Scaled reports whether the axis maps onto a temperature interval.
func (a Axis) Scaled() bool { return a.Range != 0 }

// Apply maps a normalized value onto the axis.
func (a Axis) Apply(v float64) float64 {
	if !a.Scaled() {
		return v
	}
	return a.Base + a.Range*v
}

// Domain returns the dependent-axis interval probes are clamped into.
func (a Axis) Domain() (float64, float64) {
	if !a.Scaled() {
		return 0, 1
	}
	lo, hi := a.Base, a.Base+a.Range
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// Envelope describes the two power-law curves bounding the two-phase region.
type Envelope struct {
	Coefficient   float64 `yaml:"coefficient" json:"coefficient"`
	Offset        float64 `yaml:"offset" json:"offset"`
	LowerExponent float64 `yaml:"lower_exponent" json:"lower_exponent"`
	UpperExponent float64 `yaml:"upper_exponent" json:"upper_exponent"`
	Axis          Axis    `yaml:"axis" json:"axis"`
}

func DefaultEnvelope() Envelope {
	return Envelope{
		Coefficient:   DefaultCoefficient,
		Offset:        DefaultOffset,
		LowerExponent: DefaultLowerExponent,
		UpperExponent: DefaultUpperExponent,
	}
}

// Lower evaluates the lower curve at composition c.
func (e Envelope) Lower(c float64) float64 {
	return e.Axis.Apply(e.Coefficient*math.Pow(c, e.LowerExponent) + e.Offset)
}

// Upper evaluates the upper curve at composition c.
func (e Envelope) Upper(c float64) float64 {
	return e.Axis.Apply(e.Coefficient*math.Pow(c, e.UpperExponent) + e.Offset)
}

// NewCurve evaluates both curves at n evenly spaced compositions i/n, i in
// [0, n). Compositions are computed by division rather than accumulation so
// that i/n lands exactly on values like 0.5. Non-positive n uses
// DefaultSamples.
func NewCurve(env Envelope, n int) Curve {
	if n <= 0 {
		n = DefaultSamples
	}
	samples := make([]Sample, n)
	for i := range samples {
		c := float64(i) / float64(n)
		samples[i] = Sample{Composition: c, Lower: env.Lower(c), Upper: env.Upper(c)}
	}
	return buildCurve(samples, 1/float64(n))
}
