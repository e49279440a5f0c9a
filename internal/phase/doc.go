// Package phase provides the numeric core of a binary phase diagram.
//
// The package covers three steps that run on every probe update:
//
//   - [NewCurve]: precompute a dense, ascending [Curve] of lower/upper
//     equilibrium values over composition [0, 1)
//   - [Locator]: find, for a dependent-axis value, the sample on each curve
//     whose value is closest ([LinearLocator], [BisectLocator])
//   - [Policy]: turn the probe and the located compositions into lever-arm
//     phase fractions ([SimplePolicy], [WindowedPolicy])
//
// # Example
//
//	curve := phase.NewCurve(phase.DefaultEnvelope(), phase.DefaultSamples)
//	eq := phase.LinearLocator{}.Locate(curve, 0.5)
//	fr := phase.SimplePolicy{}.Evaluate(curve, phase.Probe{X: 0.5, Y: 0.5}, eq)
//
// # Thread Safety
//
// A [Curve] is never mutated after [NewCurve] returns, so locators and
// policies may be called from any number of goroutines over the same curve.
package phase
