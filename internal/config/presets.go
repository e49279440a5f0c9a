package config

import (
	"sort"

	"github.com/san-kum/phasediag/internal/phase"
)

var defaultEnvelope = EnvelopeConfig{
	Coefficient:   phase.DefaultCoefficient,
	Offset:        phase.DefaultOffset,
	LowerExponent: phase.DefaultLowerExponent,
	UpperExponent: phase.DefaultUpperExponent,
}

var Presets = map[string]*Config{
	"ideal": {
		Preset: "ideal", Samples: 10000, Policy: "simple", Locator: "bisect",
		Envelope: defaultEnvelope,
		Start:    StartConfig{X: 0.5, Y: 0.5},
	},
	"temperature": {
		Preset: "temperature", Samples: 10000, Policy: "windowed", Locator: "bisect",
		Envelope: defaultEnvelope,
		Axis:     phase.Axis{Base: 350, Range: 50, Unit: "K"},
		Start:    StartConfig{X: 0.5, Y: 375},
	},
	"benzene_toluene": {
		Preset: "benzene_toluene", Samples: 10000, Policy: "windowed", Locator: "bisect",
		Envelope: EnvelopeConfig{Coefficient: 0.5, Offset: 0.25, LowerExponent: 1.6, UpperExponent: 0.6},
		Axis:     phase.Axis{Base: 330, Range: 80, Unit: "K"},
		Start:    StartConfig{X: 0.4, Y: 370},
	},
	"wide": {
		Preset: "wide", Samples: 20000, Policy: "simple", Locator: "linear",
		Envelope: EnvelopeConfig{Coefficient: 0.6, Offset: 0.2, LowerExponent: 3, UpperExponent: 1.0 / 3},
		Start:    StartConfig{X: 0.5, Y: 0.5},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Theme = DefaultTheme
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
