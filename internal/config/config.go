package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasediag/internal/diagram"
	"github.com/san-kum/phasediag/internal/phase"
)

const (
	DefaultPreset  = "ideal"
	DefaultPolicy  = "simple"
	DefaultLocator = "bisect"
	DefaultTheme   = "ocean"
	DefaultStartX  = 0.5
	DefaultStartY  = 0.5
)

var (
	ErrUnknownPolicy  = errors.New("config: unknown lever-arm policy")
	ErrUnknownLocator = errors.New("config: unknown locator")
	ErrInvalidAxis    = errors.New("config: axis range must be positive")
	ErrInvalidSamples = errors.New("config: samples must be positive")
)

type Config struct {
	Preset   string         `yaml:"preset"`
	Samples  int            `yaml:"samples"`
	Policy   string         `yaml:"policy"`
	Locator  string         `yaml:"locator"`
	Envelope EnvelopeConfig `yaml:"envelope"`
	Axis     phase.Axis     `yaml:"axis"`
	Start    StartConfig    `yaml:"start"`
	Theme    string         `yaml:"theme"`
	LogFile  string         `yaml:"log_file"`
	Debug    bool           `yaml:"debug"`
}

type EnvelopeConfig struct {
	Coefficient   float64 `yaml:"coefficient"`
	Offset        float64 `yaml:"offset"`
	LowerExponent float64 `yaml:"lower_exponent"`
	UpperExponent float64 `yaml:"upper_exponent"`
}

type StartConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:  DefaultPreset,
		Samples: phase.DefaultSamples,
		Policy:  DefaultPolicy,
		Locator: DefaultLocator,
		Envelope: EnvelopeConfig{
			Coefficient:   phase.DefaultCoefficient,
			Offset:        phase.DefaultOffset,
			LowerExponent: phase.DefaultLowerExponent,
			UpperExponent: phase.DefaultUpperExponent,
		},
		Start: StartConfig{X: DefaultStartX, Y: DefaultStartY},
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, c.Samples)
	}
	if c.Axis.Range < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidAxis, c.Axis.Range)
	}
	reg := phase.NewRegistry()
	if _, err := reg.GetPolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownPolicy, c.Policy, reg.ListPolicies())
	}
	if _, err := reg.GetLocator(c.Locator); err != nil {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownLocator, c.Locator, reg.ListLocators())
	}
	return nil
}

func (c *Config) GetEnvelope() phase.Envelope {
	return phase.Envelope{
		Coefficient:   c.Envelope.Coefficient,
		Offset:        c.Envelope.Offset,
		LowerExponent: c.Envelope.LowerExponent,
		UpperExponent: c.Envelope.UpperExponent,
		Axis:          c.Axis,
	}
}

func (c *Config) GetStart() phase.Probe {
	return phase.Probe{X: c.Start.X, Y: c.Start.Y}
}

// Context builds the diagram context for a width x height pixel viewport.
func (c *Config) Context(width, height float64) (*diagram.Context, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	reg := phase.NewRegistry()
	pol, _ := reg.GetPolicy(c.Policy)
	loc, _ := reg.GetLocator(c.Locator)
	return diagram.New(diagram.Options{
		Envelope: c.GetEnvelope(),
		Samples:  c.Samples,
		Locator:  loc,
		Policy:   pol,
		Width:    width,
		Height:   height,
	}), nil
}
