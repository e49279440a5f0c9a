package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/phasediag/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestProbeCommand(t *testing.T) {
	out, err := execute(t, "probe", "0.5", "0.5")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Point Co-ordinates: (0.500, 0.500)",
		"Vapour Fraction: 0.453. Liquid Fraction: 0.547",
		"Region: two-phase",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProbeCommandTemperaturePreset(t *testing.T) {
	out, err := execute(t, "--preset", "temperature", "probe", "0.5", "999")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Point Co-ordinates: (0.500, 400 K)") {
		t.Errorf("expected clamped temperature, got:\n%s", out)
	}
	if !strings.Contains(out, "Vapour Fraction: 1.000. Liquid Fraction: 0.000") {
		t.Errorf("expected all vapour above the window, got:\n%s", out)
	}
}

func TestProbeCommandErrors(t *testing.T) {
	if _, err := execute(t, "probe", "abc", "0.5"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := execute(t, "--preset", "nope", "probe", "0.5", "0.5"); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := execute(t, "--policy", "nope", "probe", "0.5", "0.5"); err == nil {
		t.Error("expected unknown policy error")
	}
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := config.GetPreset("temperature")
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "--policy", "simple", "probe", "0.5", "999")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Vapour Fraction: 1.000") {
		t.Errorf("simple policy should not force all vapour:\n%s", out)
	}
}

func TestSweepSaveListShowExport(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data", dir, "sweep", "--isotherm", "0.5", "--steps", "21", "--save")
	if err != nil {
		t.Fatal(err)
	}
	idx := strings.Index(out, "saved: ")
	if idx < 0 {
		t.Fatalf("expected saved run id:\n%s", out)
	}
	id := strings.TrimSpace(out[idx+len("saved: "):])

	out, err = execute(t, "--data", dir, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, id) {
		t.Errorf("list missing %s:\n%s", id, out)
	}

	out, err = execute(t, "--data", dir, "show", id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "readings: 21") {
		t.Errorf("unexpected show output:\n%s", out)
	}

	out, err = execute(t, "--data", dir, "export-csv", id)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(out, "\n"); lines != 22 {
		t.Errorf("expected header plus 21 rows, got %d lines", lines)
	}

	out, err = execute(t, "--data", dir, "export-json", id)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Run      struct{ ID string }
		Readings []json.RawMessage
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if doc.Run.ID != id || len(doc.Readings) != 21 {
		t.Errorf("unexpected json export: id=%s readings=%d", doc.Run.ID, len(doc.Readings))
	}
}

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "drag.yaml")
	if err := os.WriteFile(script, []byte(`
name: isotherm drag
gestures:
  - label: across
    from: {x: 0.1, y: 0.5}
    moves:
      - {x: 0.3, y: 0.5}
      - {x: 0.5, y: 0.5}
`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--data", dir, "replay", script, "--save")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"scenario: isotherm drag",
		"[across] 2 moves",
		"Vapour Fraction: 0.453. Liquid Fraction: 0.547",
		"saved: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "--data", dir, "list")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "no runs found") || !strings.Contains(out, "simple") {
		t.Errorf("replayed run not listed:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "--data", t.TempDir(), "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no runs found") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRegionsCommand(t *testing.T) {
	out, err := execute(t, "regions", "--cols", "10", "--rows", "4")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "|"); n != 4 {
		t.Errorf("expected 4 map rows, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "V vapour") {
		t.Errorf("missing legend:\n%s", out)
	}
}

func TestExportSVGCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if _, err := execute(t, "export-svg", "0.5", "0.5", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`class="vapour-tie"`)) {
		t.Error("svg missing tie line")
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %s", name)
		}
	}
}

func TestDownsample(t *testing.T) {
	vals := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	got := downsample(vals, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 4 || got[2] != 8 {
		t.Errorf("unexpected downsample %v", got)
	}
	if len(downsample(vals, 20)) != len(vals) {
		t.Error("short input should be returned unchanged")
	}
}
