package phase

import (
	"math"
	"testing"
)

func TestNewCurveDefaults(t *testing.T) {
	c := NewCurve(DefaultEnvelope(), 0)

	if c.Len() != DefaultSamples {
		t.Fatalf("expected %d samples, got %d", DefaultSamples, c.Len())
	}
	if c.At(0).Composition != 0 {
		t.Errorf("expected first composition 0, got %f", c.At(0).Composition)
	}
	last := c.At(c.Len() - 1).Composition
	if math.Abs(last-0.9999) > 1e-12 {
		t.Errorf("expected last composition 0.9999, got %.12f", last)
	}
	if math.Abs(c.Step()-0.0001) > 1e-15 {
		t.Errorf("expected step 0.0001, got %g", c.Step())
	}
}

func TestNewCurveAscending(t *testing.T) {
	c := NewCurve(DefaultEnvelope(), 1000)
	for i := 1; i < c.Len(); i++ {
		if c.At(i).Composition <= c.At(i-1).Composition {
			t.Fatalf("compositions not ascending at %d", i)
		}
	}
}

func TestNewCurveMidpoint(t *testing.T) {
	c := NewCurve(DefaultEnvelope(), DefaultSamples)
	mid := c.At(5000)

	if mid.Composition != 0.5 {
		t.Fatalf("expected composition 0.5, got %.17f", mid.Composition)
	}
	if math.Abs(mid.Lower-0.375) > 1e-12 {
		t.Errorf("expected lower 0.375, got %f", mid.Lower)
	}
	if math.Abs(mid.Upper-(0.5*math.Sqrt(0.5)+0.25)) > 1e-12 {
		t.Errorf("expected upper %.4f, got %f", 0.5*math.Sqrt(0.5)+0.25, mid.Upper)
	}
}

func TestEnvelopeAxis(t *testing.T) {
	env := DefaultEnvelope()
	env.Axis = Axis{Base: 350, Range: 50, Unit: "K"}

	if got := env.Lower(0.5); math.Abs(got-368.75) > 1e-9 {
		t.Errorf("expected 368.75, got %f", got)
	}
	lo, hi := env.Axis.Domain()
	if lo != 350 || hi != 400 {
		t.Errorf("expected domain [350, 400], got [%f, %f]", lo, hi)
	}

	var plain Axis
	if plain.Scaled() {
		t.Error("zero axis should not be scaled")
	}
	if lo, hi := plain.Domain(); lo != 0 || hi != 1 {
		t.Errorf("expected unit domain, got [%f, %f]", lo, hi)
	}
}

func TestCurveBoundsAndNearest(t *testing.T) {
	c := NewCurve(DefaultEnvelope(), DefaultSamples)
	lo, hi := c.Bounds()
	if lo != 0.25 {
		t.Errorf("expected min 0.25, got %f", lo)
	}
	if hi >= 0.75 || hi < 0.7499 {
		t.Errorf("expected max just under 0.75, got %f", hi)
	}

	tests := []struct {
		x    float64
		want int
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 5000},
		{0.50004, 5000},
		{0.50006, 5001},
		{1.0, DefaultSamples - 1},
		{3, DefaultSamples - 1},
	}
	for _, tt := range tests {
		if got := c.NearestIndex(tt.x); got != tt.want {
			t.Errorf("NearestIndex(%v): expected %d, got %d", tt.x, tt.want, got)
		}
	}
}
