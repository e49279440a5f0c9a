package phase

// Reading is the full result of evaluating one probe.
type Reading struct {
	Probe       Probe       `json:"probe"`
	Equilibrium Equilibrium `json:"equilibrium"`
	Fractions   Fractions   `json:"fractions"`
}

// Evaluator runs a Locator then a Policy over a fixed Curve.
type Evaluator struct {
	Curve   Curve
	Locator Locator
	Policy  Policy
}

func NewEvaluator(c Curve, loc Locator, pol Policy) Evaluator {
	if loc == nil {
		loc = LinearLocator{}
	}
	if pol == nil {
		pol = SimplePolicy{}
	}
	return Evaluator{Curve: c, Locator: loc, Policy: pol}
}

func (e Evaluator) Evaluate(p Probe) Reading {
	eq := e.Locator.Locate(e.Curve, p.Y)
	return Reading{
		Probe:       p,
		Equilibrium: eq,
		Fractions:   e.Policy.Evaluate(e.Curve, p, eq),
	}
}
