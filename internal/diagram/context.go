package diagram

import "github.com/san-kum/phasediag/internal/phase"

// Context bundles everything a drag handler reads: the sampled curve, the
// envelope it came from, the locator and policy, and the coordinate scales.
// A Context is never mutated; viewport changes produce a new one sharing the
// same curve.
type Context struct {
	eval   phase.Evaluator
	env    phase.Envelope
	xScale LinearScale
	yScale LinearScale
}

// Options configures New.
type Options struct {
	Envelope phase.Envelope
	Samples  int
	Locator  phase.Locator
	Policy   phase.Policy
	Width    float64
	Height   float64
}

func New(opts Options) *Context {
	curve := phase.NewCurve(opts.Envelope, opts.Samples)
	c := &Context{
		eval: phase.NewEvaluator(curve, opts.Locator, opts.Policy),
		env:  opts.Envelope,
	}
	c.setViewport(opts.Width, opts.Height)
	return c
}

func (c *Context) setViewport(width, height float64) {
	lo, hi := c.env.Axis.Domain()
	c.xScale = NewLinearScale(0, 1, 0, width)
	// pixel rows grow downward
	c.yScale = NewLinearScale(lo, hi, height, 0)
}

// WithViewport returns a copy mapped onto a width x height pixel area.
func (c *Context) WithViewport(width, height float64) *Context {
	next := *c
	next.setViewport(width, height)
	return &next
}

// WithPolicy returns a copy that evaluates fractions with p.
func (c *Context) WithPolicy(p phase.Policy) *Context {
	next := *c
	next.eval = phase.NewEvaluator(c.eval.Curve, c.eval.Locator, p)
	return &next
}

// WithLocator returns a copy that finds equilibria with l.
func (c *Context) WithLocator(l phase.Locator) *Context {
	next := *c
	next.eval = phase.NewEvaluator(c.eval.Curve, l, c.eval.Policy)
	return &next
}

func (c *Context) Curve() phase.Curve { return c.eval.Curve }
func (c *Context) Envelope() phase.Envelope { return c.env }
func (c *Context) Evaluator() phase.Evaluator { return c.eval }
func (c *Context) Policy() phase.Policy { return c.eval.Policy }
func (c *Context) Locator() phase.Locator { return c.eval.Locator }
func (c *Context) XScale() LinearScale { return c.xScale }
func (c *Context) YScale() LinearScale { return c.yScale }
func (c *Context) Axis() phase.Axis { return c.env.Axis }
func (c *Context) Domain() (float64, float64) { return c.env.Axis.Domain() }

// Clamp pulls a domain point into composition [0,1] and the dependent axis.
func (c *Context) Clamp(x, y float64) phase.Probe {
	return phase.Probe{X: c.xScale.Clamp(x), Y: c.yScale.Clamp(y)}
}

// ProbeAt inverts pixel coordinates and clamps them into the domain.
func (c *Context) ProbeAt(px, py float64) phase.Probe {
	return c.Clamp(c.xScale.Invert(px), c.yScale.Invert(py))
}

// Pixel maps a domain point to pixel coordinates.
func (c *Context) Pixel(p phase.Probe) (float64, float64) {
	return c.xScale.Map(p.X), c.yScale.Map(p.Y)
}

// Evaluate runs the locator and policy for a clamped probe.
func (c *Context) Evaluate(p phase.Probe) Feedback {
	r := c.eval.Evaluate(p)
	lo, _ := c.Domain()
	return Feedback{Reading: r, Scene: sceneFor(r, lo), axis: c.env.Axis}
}
