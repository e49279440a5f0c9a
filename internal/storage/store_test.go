package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/phasediag/internal/phase"
)

func sweepReadings(t *testing.T) []phase.Reading {
	t.Helper()
	curve := phase.NewCurve(phase.DefaultEnvelope(), 1000)
	e := phase.NewEvaluator(curve, phase.BisectLocator{}, phase.WindowedPolicy{})
	readings, err := phase.Sweep(context.Background(), e, phase.Isotherm(0.5, 11))
	if err != nil {
		t.Fatal(err)
	}
	return readings
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir(), nil)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	readings := sweepReadings(t)

	id, err := s.Save(RunMetadata{Preset: "ideal", Samples: 1000, Locator: "bisect", Policy: "windowed"}, readings)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(id, "ideal_") {
		t.Errorf("unexpected run id %q", id)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Steps != len(readings) || meta.Policy != "windowed" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	sum := meta.Summary
	if sum.Vapour+sum.Liquid+sum.TwoPhase != len(readings) {
		t.Errorf("summary does not cover all readings: %+v", sum)
	}
	if sum.TwoPhase == 0 {
		t.Error("isotherm through the envelope should cross the two-phase region")
	}

	loaded, err := s.LoadReadings(id)
	if err != nil {
		t.Fatalf("load readings failed: %v", err)
	}
	if len(loaded) != len(readings) {
		t.Fatalf("expected %d readings, got %d", len(readings), len(loaded))
	}
	for i := range readings {
		if math.Abs(loaded[i].Fractions.Vapour-readings[i].Fractions.Vapour) > 1e-6 {
			t.Errorf("reading %d: vapour %f != %f", i, loaded[i].Fractions.Vapour, readings[i].Fractions.Vapour)
		}
		if math.Abs(loaded[i].Equilibrium.LowerComposition-readings[i].Equilibrium.LowerComposition) > 1e-6 {
			t.Errorf("reading %d: lower composition mismatch", i)
		}
	}
}

func TestListEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"), nil)
	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListSkipsForeignDirs(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(RunMetadata{Preset: "wide"}, sweepReadings(t)); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Preset != "wide" {
		t.Errorf("expected one wide run, got %+v", runs)
	}
}

func TestLoadReadingsSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	runDir := filepath.Join(dir, "manual")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	csv := strings.Join(readingsHeader, ",") + "\n" +
		"0.5,0.5,0.7,0.25,0.5,0.5,0.45,0.55\n" +
		"bad,0.5,0.7,0.25,0.5,0.5,0.45,0.55\n" +
		"0.1,0.2\n"
	if err := os.WriteFile(filepath.Join(runDir, "readings.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	readings, err := New(dir, nil).LoadReadings("manual")
	if err != nil {
		t.Fatal(err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}
	if readings[0].Fractions != (phase.Fractions{Vapour: 0.45, Liquid: 0.55}) {
		t.Errorf("unexpected fractions %+v", readings[0].Fractions)
	}
}
