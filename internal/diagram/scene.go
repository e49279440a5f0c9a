package diagram

import (
	"fmt"

	"github.com/san-kum/phasediag/internal/phase"
)

const (
	SegmentVapourTie = "vapour-tie"
	SegmentLiquidTie = "liquid-tie"
	SegmentGuide     = "guide"
)

// Segment is a named line between two domain points.
type Segment struct {
	Name string      `json:"name"`
	From phase.Probe `json:"from"`
	To   phase.Probe `json:"to"`
}

// Scene is the retained set of feedback entities drawn over the curves.
// Each update rewrites endpoints in place; entities are never appended.
type Scene struct {
	Point     phase.Probe `json:"point"`
	Active    bool        `json:"active"`
	VapourTie Segment     `json:"vapour_tie"`
	LiquidTie Segment     `json:"liquid_tie"`
	Guide     Segment     `json:"guide"`
}

func NewScene(p phase.Probe) Scene {
	return Scene{
		Point:     p,
		VapourTie: Segment{Name: SegmentVapourTie, From: p, To: p},
		LiquidTie: Segment{Name: SegmentLiquidTie, From: p, To: p},
		Guide:     Segment{Name: SegmentGuide, From: p, To: p},
	}
}

// Update moves every entity to follow r. floor is the bottom of the
// dependent axis, where the guide ends.
func (s *Scene) Update(r phase.Reading, floor float64) {
	p := r.Probe
	s.Point = p
	s.VapourTie.From = p
	s.VapourTie.To = phase.Probe{X: r.Equilibrium.UpperComposition, Y: r.Equilibrium.UpperValue}
	s.LiquidTie.From = p
	s.LiquidTie.To = phase.Probe{X: r.Equilibrium.LowerComposition, Y: r.Equilibrium.LowerValue}
	s.Guide.From = p
	s.Guide.To = phase.Probe{X: p.X, Y: floor}
}

// Segments lists the entities in draw order.
func (s Scene) Segments() []Segment {
	return []Segment{s.VapourTie, s.LiquidTie, s.Guide}
}

func sceneFor(r phase.Reading, floor float64) Scene {
	s := NewScene(r.Probe)
	s.Update(r, floor)
	return s
}

// Feedback is everything the presentation layer shows after one move.
type Feedback struct {
	phase.Reading
	Scene Scene
	axis  phase.Axis
}

// FormatValue renders a dependent-axis value: whole degrees on a temperature
// axis, three decimals on the normalized one.
func FormatValue(axis phase.Axis, v float64) string {
	if axis.Scaled() {
		if axis.Unit != "" {
			return fmt.Sprintf("%.0f %s", v, axis.Unit)
		}
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3f", v)
}

func (f Feedback) CoordinatesText() string {
	return fmt.Sprintf("Point Co-ordinates: (%.3f, %s)", f.Probe.X, FormatValue(f.axis, f.Probe.Y))
}

func (f Feedback) FractionsText() string {
	return fmt.Sprintf("Vapour Fraction: %.3f. Liquid Fraction: %.3f", f.Fractions.Vapour, f.Fractions.Liquid)
}

func (f Feedback) EquilibriumText() string {
	eq := f.Equilibrium
	return fmt.Sprintf("Vapour: %.3f @ %s. Liquid: %.3f @ %s",
		eq.UpperComposition, FormatValue(f.axis, eq.UpperValue),
		eq.LowerComposition, FormatValue(f.axis, eq.LowerValue))
}
