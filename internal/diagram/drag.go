package diagram

import (
	"go.uber.org/zap"

	"github.com/san-kum/phasediag/internal/phase"
)

// DragState is the lifecycle of a draggable point.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Dragger drives one draggable point through Idle -> Dragging -> Idle and
// keeps the last rendered feedback. It reads the Context but never writes it.
type Dragger struct {
	ctx    *Context
	state  DragState
	scene  Scene
	last   Feedback
	logger *zap.Logger
}

func NewDragger(ctx *Context, start phase.Probe, logger *zap.Logger) *Dragger {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := ctx.Clamp(start.X, start.Y)
	d := &Dragger{ctx: ctx, scene: NewScene(p), logger: logger}
	d.render(ctx.Evaluate(p))
	return d
}

func (d *Dragger) State() DragState   { return d.state }
func (d *Dragger) Feedback() Feedback { return d.last }
func (d *Dragger) Context() *Context  { return d.ctx }

// SetContext swaps in a new context (viewport or policy change) and
// re-evaluates the current point against it.
func (d *Dragger) SetContext(ctx *Context) {
	d.ctx = ctx
	p := d.last.Probe
	d.render(ctx.Evaluate(ctx.Clamp(p.X, p.Y)))
}

// render updates the retained scene in place and stores the feedback.
func (d *Dragger) render(fb Feedback) Feedback {
	floor, _ := d.ctx.Domain()
	d.scene.Update(fb.Reading, floor)
	d.scene.Active = d.state == Dragging
	fb.Scene = d.scene
	d.last = fb
	return fb
}

// Start marks the point active. Pixel coordinates are accepted for symmetry
// with Move but do not move the point.
func (d *Dragger) Start(px, py float64) {
	d.state = Dragging
	d.scene.Active = true
	d.last.Scene.Active = true
	d.logger.Info("drag start", zap.Float64("px", px), zap.Float64("py", py))
}

// Move re-runs the full locate and evaluate pipeline for a pointer position.
// It is ignored while Idle.
func (d *Dragger) Move(px, py float64) (Feedback, bool) {
	if d.state != Dragging {
		return d.last, false
	}
	return d.MoveTo(d.ctx.ProbeAt(px, py)), true
}

// MoveTo evaluates a probe given in domain coordinates.
func (d *Dragger) MoveTo(p phase.Probe) Feedback {
	p = d.ctx.Clamp(p.X, p.Y)
	fb := d.render(d.ctx.Evaluate(p))
	d.logger.Debug("drag move",
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y),
		zap.Float64("vapour", fb.Fractions.Vapour),
		zap.Float64("liquid", fb.Fractions.Liquid),
	)
	return fb
}

// End clears the active state.
func (d *Dragger) End() {
	d.state = Idle
	d.scene.Active = false
	d.last.Scene.Active = false
	d.logger.Info("drag end",
		zap.Float64("x", d.last.Probe.X),
		zap.Float64("y", d.last.Probe.Y),
	)
}

// Nudge performs a full start/move/end cycle offset from the current point
// by (dx, dy) domain units.
func (d *Dragger) Nudge(dx, dy float64) Feedback {
	p := d.last.Probe
	px, py := d.ctx.Pixel(p)
	d.Start(px, py)
	d.MoveTo(phase.Probe{X: p.X + dx, Y: p.Y + dy})
	d.End()
	return d.last
}
