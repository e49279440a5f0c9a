package phase

import "context"

// Path is a straight probe trajectory sampled at Steps evenly spaced points,
// endpoints included.
type Path struct {
	From  Probe `json:"from"`
	To    Probe `json:"to"`
	Steps int   `json:"steps"`
}

// Isotherm walks composition 0 -> 1 at a fixed dependent value.
func Isotherm(y float64, steps int) Path {
	return Path{From: Probe{X: 0, Y: y}, To: Probe{X: 1, Y: y}, Steps: steps}
}

// Isopleth walks the dependent axis lo -> hi at a fixed composition.
func Isopleth(x, lo, hi float64, steps int) Path {
	return Path{From: Probe{X: x, Y: lo}, To: Probe{X: x, Y: hi}, Steps: steps}
}

// At returns the i-th probe on the path.
func (p Path) At(i int) Probe {
	if p.Steps < 2 {
		return p.From
	}
	t := float64(i) / float64(p.Steps-1)
	return Probe{
		X: p.From.X + t*(p.To.X-p.From.X),
		Y: p.From.Y + t*(p.To.Y-p.From.Y),
	}
}

// Sweep evaluates every probe along path.
func Sweep(ctx context.Context, e Evaluator, path Path) ([]Reading, error) {
	if e.Curve.Len() == 0 {
		return nil, ErrEmptyCurve
	}
	if path.Steps < 2 {
		return nil, ErrInvalidPath
	}

	readings := make([]Reading, 0, path.Steps)
	for i := 0; i < path.Steps; i++ {
		probe := path.At(i)
		select {
		case <-ctx.Done():
			return readings, &SweepError{Step: i, Probe: probe, Wrapped: ErrSweepCanceled}
		default:
		}
		readings = append(readings, e.Evaluate(probe))
	}
	return readings, nil
}
