package phase

import (
	"errors"
	"fmt"
)

// Domain errors for batch operations. The interactive path never fails:
// probes are clamped before they reach the locator.
var (
	// ErrEmptyCurve indicates a curve with no samples.
	ErrEmptyCurve = errors.New("phase: curve has no samples")

	// ErrInvalidPath indicates a sweep path with fewer than two steps.
	ErrInvalidPath = errors.New("phase: sweep path needs at least two steps")

	// ErrInvalidGrid indicates a region grid with a non-positive dimension.
	ErrInvalidGrid = errors.New("phase: grid dimensions must be positive")

	// ErrSweepCanceled indicates the sweep was interrupted by its context.
	ErrSweepCanceled = errors.New("phase: sweep canceled by context")
)

// SweepError wraps an error with the step it happened at.
type SweepError struct {
	Step    int
	Probe   Probe
	Wrapped error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("step %d (x=%.3f, y=%.3f): %v", e.Step, e.Probe.X, e.Probe.Y, e.Wrapped)
}

func (e *SweepError) Unwrap() error {
	return e.Wrapped
}
