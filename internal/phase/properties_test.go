package phase_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phasediag/internal/phase"
)

var _ = Describe("lever-arm fractions", func() {
	var (
		unscaled    phase.Curve
		temperature phase.Curve
	)

	BeforeEach(func() {
		unscaled = phase.NewCurve(phase.DefaultEnvelope(), 2000)
		env := phase.DefaultEnvelope()
		env.Axis = phase.Axis{Base: 350, Range: 50, Unit: "K"}
		temperature = phase.NewCurve(env, 2000)
	})

	grid := func(c phase.Curve, each func(p phase.Probe)) {
		lo, hi := c.Bounds()
		for i := 0; i <= 40; i++ {
			for j := 0; j <= 40; j++ {
				each(phase.Probe{
					X: float64(i) / 40,
					Y: lo - 0.05*(hi-lo) + float64(j)*1.1*(hi-lo)/40,
				})
			}
		}
	}

	for _, name := range []string{"simple", "windowed"} {
		name := name

		Context("with the "+name+" policy", func() {
			var pol phase.Policy

			BeforeEach(func() {
				var err error
				pol, err = phase.NewRegistry().GetPolicy(name)
				Expect(err).NotTo(HaveOccurred())
			})

			It("keeps every fraction inside [0, 1]", func() {
				for _, c := range []phase.Curve{unscaled, temperature} {
					e := phase.NewEvaluator(c, phase.BisectLocator{}, pol)
					grid(c, func(p phase.Probe) {
						f := e.Evaluate(p).Fractions
						Expect(f.Vapour).To(BeNumerically(">=", 0))
						Expect(f.Vapour).To(BeNumerically("<=", 1))
						Expect(f.Liquid).To(BeNumerically(">=", 0))
						Expect(f.Liquid).To(BeNumerically("<=", 1))
					})
				}
			})

			It("sums to one strictly inside a nonzero envelope", func() {
				e := phase.NewEvaluator(unscaled, phase.LinearLocator{}, pol)
				grid(unscaled, func(p phase.Probe) {
					r := e.Evaluate(p)
					eq := r.Equilibrium
					inside := p.X > eq.UpperComposition && p.X < eq.LowerComposition
					if !inside || eq.Width() == 0 {
						return
					}
					lo, hi := phase.Window(unscaled, p.X)
					if name == "windowed" && (p.Y >= hi || p.Y <= lo) {
						return
					}
					Expect(r.Fractions.Sum()).To(BeNumerically("~", 1, 1e-9))
				})
			})
		})
	}

	It("resolves hard splits outside the local window", func() {
		e := phase.NewEvaluator(temperature, phase.LinearLocator{}, phase.WindowedPolicy{})
		lo, hi := phase.Window(temperature, 0.3)

		Expect(e.Evaluate(phase.Probe{X: 0.3, Y: hi + 1}).Fractions).To(Equal(phase.Fractions{Vapour: 1, Liquid: 0}))
		Expect(e.Evaluate(phase.Probe{X: 0.3, Y: lo - 1}).Fractions).To(Equal(phase.Fractions{Vapour: 0, Liquid: 1}))
	})
})

var _ = Describe("Sweep", func() {
	var e phase.Evaluator

	BeforeEach(func() {
		e = phase.NewEvaluator(phase.NewCurve(phase.DefaultEnvelope(), 1000), nil, nil)
	})

	It("visits every step of an isotherm", func() {
		readings, err := phase.Sweep(context.Background(), e, phase.Isotherm(0.5, 11))
		Expect(err).NotTo(HaveOccurred())
		Expect(readings).To(HaveLen(11))
		Expect(readings[0].Probe).To(Equal(phase.Probe{X: 0, Y: 0.5}))
		Expect(readings[10].Probe).To(Equal(phase.Probe{X: 1, Y: 0.5}))
		Expect(readings[0].Fractions.Vapour).To(Equal(1.0))
		Expect(readings[10].Fractions.Liquid).To(Equal(1.0))
	})

	It("rejects a degenerate path", func() {
		_, err := phase.Sweep(context.Background(), e, phase.Isotherm(0.5, 1))
		Expect(err).To(MatchError(phase.ErrInvalidPath))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		readings, err := phase.Sweep(ctx, e, phase.Isopleth(0.5, 0, 1, 5))
		Expect(readings).To(BeEmpty())
		Expect(errors.Is(err, phase.ErrSweepCanceled)).To(BeTrue())

		var sweepErr *phase.SweepError
		Expect(errors.As(err, &sweepErr)).To(BeTrue())
		Expect(sweepErr.Step).To(Equal(0))
	})
})

var _ = Describe("RegionGrid", func() {
	It("labels the corners of the unscaled diagram", func() {
		e := phase.NewEvaluator(phase.NewCurve(phase.DefaultEnvelope(), 1000), phase.BisectLocator{}, phase.SimplePolicy{})
		grid, err := phase.RegionGrid(e, 0.3, 0.7, 21, 9)
		Expect(err).NotTo(HaveOccurred())
		Expect(grid).To(HaveLen(9))
		Expect(grid[4]).To(HaveLen(21))

		// mid-height row: vapour at x=0, two-phase in between, liquid at x=1
		Expect(grid[4][0]).To(Equal(phase.RegionVapour))
		Expect(grid[4][10]).To(Equal(phase.RegionTwoPhase))
		Expect(grid[4][20]).To(Equal(phase.RegionLiquid))
	})

	It("rejects empty dimensions", func() {
		e := phase.NewEvaluator(phase.NewCurve(phase.DefaultEnvelope(), 10), nil, nil)
		_, err := phase.RegionGrid(e, 0, 1, 0, 3)
		Expect(err).To(MatchError(phase.ErrInvalidGrid))
	})
})
