package diagram

import (
	"testing"

	"github.com/san-kum/phasediag/internal/phase"
)

func TestDraggerLifecycle(t *testing.T) {
	ctx := newTestContext(phase.Axis{}, phase.SimplePolicy{})
	d := NewDragger(ctx, phase.Probe{X: 0.5, Y: 0.5}, nil)

	if d.State() != Idle {
		t.Fatalf("expected idle, got %s", d.State())
	}

	if _, moved := d.Move(10, 10); moved {
		t.Error("move while idle should be ignored")
	}
	if d.Feedback().Probe != (phase.Probe{X: 0.5, Y: 0.5}) {
		t.Errorf("idle move changed the point: %+v", d.Feedback().Probe)
	}

	d.Start(365, 275)
	if d.State() != Dragging || !d.Feedback().Scene.Active {
		t.Fatal("expected active dragging state")
	}

	fb, moved := d.Move(73, 110)
	if !moved {
		t.Fatal("expected move while dragging")
	}
	if !fb.Scene.Active {
		t.Error("feedback should be active while dragging")
	}
	if fb.Probe.X < 0.09 || fb.Probe.X > 0.11 {
		t.Errorf("expected x ~0.1, got %f", fb.Probe.X)
	}

	d.End()
	if d.State() != Idle || d.Feedback().Scene.Active {
		t.Error("expected idle inactive state after end")
	}
	if d.Feedback().Probe != fb.Probe {
		t.Error("end should keep the last point")
	}
}

func TestDraggerClampsOffCanvas(t *testing.T) {
	ctx := newTestContext(phase.Axis{Base: 350, Range: 50}, phase.WindowedPolicy{})
	d := NewDragger(ctx, phase.Probe{X: 0.5, Y: 375}, nil)

	d.Start(0, 0)
	fb, _ := d.Move(-500, -500)
	if fb.Probe != (phase.Probe{X: 0, Y: 400}) {
		t.Errorf("expected (0, 400), got %+v", fb.Probe)
	}
	if fb.Fractions != (phase.Fractions{Vapour: 1, Liquid: 0}) {
		t.Errorf("expected all vapour above the window, got %+v", fb.Fractions)
	}

	fb, _ = d.Move(5000, 5000)
	if fb.Probe != (phase.Probe{X: 1, Y: 350}) {
		t.Errorf("expected (1, 350), got %+v", fb.Probe)
	}
	if fb.Fractions != (phase.Fractions{Vapour: 0, Liquid: 1}) {
		t.Errorf("expected all liquid below the window, got %+v", fb.Fractions)
	}
	d.End()
}

func TestDraggerSceneDoesNotAccumulate(t *testing.T) {
	ctx := newTestContext(phase.Axis{}, phase.SimplePolicy{})
	d := NewDragger(ctx, phase.Probe{X: 0.5, Y: 0.5}, nil)

	d.Start(0, 0)
	for i := 0; i < 50; i++ {
		d.Move(float64(i*10), float64(i*5))
	}
	d.End()

	s := d.Feedback().Scene
	if len(s.Segments()) != 3 {
		t.Errorf("expected 3 segments, got %d", len(s.Segments()))
	}
	if s.VapourTie.From != d.Feedback().Probe || s.Guide.From != d.Feedback().Probe {
		t.Error("segments should start at the last point")
	}
}

func TestDraggerNudge(t *testing.T) {
	ctx := newTestContext(phase.Axis{}, phase.SimplePolicy{})
	d := NewDragger(ctx, phase.Probe{X: 0.5, Y: 0.5}, nil)

	fb := d.Nudge(0.1, -0.1)
	if d.State() != Idle {
		t.Error("nudge should leave the point idle")
	}
	if diff := fb.Probe.X - 0.6; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("expected x 0.6, got %f", fb.Probe.X)
	}

	fb = d.Nudge(10, 10)
	if fb.Probe != (phase.Probe{X: 1, Y: 1}) {
		t.Errorf("expected clamp to (1, 1), got %+v", fb.Probe)
	}
}

func TestDraggerSetContextSwapsPolicy(t *testing.T) {
	ctx := newTestContext(phase.Axis{}, phase.SimplePolicy{})
	d := NewDragger(ctx, phase.Probe{X: 0.5, Y: 0.74}, nil)

	d.SetContext(ctx.WithPolicy(phase.WindowedPolicy{}))
	if phase.PolicyName(d.Context().Policy()) != "windowed" {
		t.Fatal("expected windowed policy")
	}
	if d.Feedback().Fractions != (phase.Fractions{Vapour: 1, Liquid: 0}) {
		t.Errorf("expected all vapour above the window, got %+v", d.Feedback().Fractions)
	}
}
