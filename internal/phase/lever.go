package phase

import "math"

// Policy turns a probe and its located equilibrium into phase fractions.
type Policy interface {
	Evaluate(c Curve, p Probe, eq Equilibrium) Fractions
}

// SimplePolicy applies the lever rule directly to the located compositions.
//
// The vapour fraction is fed by the distance from the probe to the
// lower-curve composition and the liquid fraction by the distance to the
// upper-curve composition. Each distance only counts when the probe lies on
// the inner side of that composition. A zero-width envelope yields (0, 0).
type SimplePolicy struct{}

func (SimplePolicy) Evaluate(_ Curve, p Probe, eq Equilibrium) Fractions {
	return leverArm(p.X, eq)
}

func leverArm(x float64, eq Equilibrium) Fractions {
	width := eq.Width()
	if width == 0 || math.IsNaN(width) {
		return Fractions{}
	}

	var vapourArm, liquidArm float64
	if eq.LowerComposition > x {
		vapourArm = eq.LowerComposition - x
	}
	if x > eq.UpperComposition {
		liquidArm = x - eq.UpperComposition
	}

	return Fractions{
		Vapour: clampUnit(vapourArm / width),
		Liquid: clampUnit(liquidArm / width),
	}
}

// WindowedPolicy first checks whether the probe sits inside the local
// two-phase window at its own composition. Above the window the mixture is
// all vapour, below it all liquid; inside it the lever rule applies.
type WindowedPolicy struct{}

func (WindowedPolicy) Evaluate(c Curve, p Probe, eq Equilibrium) Fractions {
	if c.Len() == 0 {
		return leverArm(p.X, eq)
	}
	lo, hi := Window(c, p.X)
	switch {
	case p.Y >= hi:
		return Fractions{Vapour: 1, Liquid: 0}
	case p.Y <= lo:
		return Fractions{Vapour: 0, Liquid: 1}
	}
	return leverArm(p.X, eq)
}

// Window returns the min and max curve value at the sample nearest x.
func Window(c Curve, x float64) (float64, float64) {
	s := c.Nearest(x)
	return math.Min(s.Lower, s.Upper), math.Max(s.Lower, s.Upper)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
