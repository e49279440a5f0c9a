// Package automation replays scripted drag gestures through a
// diagram.Dragger without a terminal.
package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasediag/internal/diagram"
	"github.com/san-kum/phasediag/internal/phase"
)

// Scripted gestures run on a fixed pixel viewport.
const (
	ViewportWidth  = 730
	ViewportHeight = 550
)

// Scenario defines a scripted sequence of drags.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Gestures    []Gesture `yaml:"gestures"`
}

// Gesture is one press, any number of moves, and a release. Points are in
// domain coordinates. Policy and Locator, when set, switch the context
// before the press.
type Gesture struct {
	Label   string        `yaml:"label"`
	Policy  string        `yaml:"policy"`
	Locator string        `yaml:"locator"`
	From    phase.Probe   `yaml:"from"`
	Moves   []phase.Probe `yaml:"moves"`
}

// GestureResult holds every reading produced while the gesture was active
// and the feedback left after release.
type GestureResult struct {
	Label    string
	Readings []phase.Reading
	Final    diagram.Feedback
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario executes all gestures in order on one Dragger, so each gesture
// starts where the previous one left the point.
func RunScenario(ctx context.Context, dctx *diagram.Context, scenario *Scenario, logger *zap.Logger) ([]GestureResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := phase.NewRegistry()
	dctx = dctx.WithViewport(ViewportWidth, ViewportHeight)
	results := make([]GestureResult, 0, len(scenario.Gestures))

	var drag *diagram.Dragger
	for i, g := range scenario.Gestures {
		if g.Policy != "" {
			p, err := registry.GetPolicy(g.Policy)
			if err != nil {
				return results, fmt.Errorf("gesture %d: %w", i+1, err)
			}
			dctx = dctx.WithPolicy(p)
		}
		if g.Locator != "" {
			l, err := registry.GetLocator(g.Locator)
			if err != nil {
				return results, fmt.Errorf("gesture %d: %w", i+1, err)
			}
			dctx = dctx.WithLocator(l)
		}

		if drag == nil {
			drag = diagram.NewDragger(dctx, g.From, logger)
		} else {
			drag.SetContext(dctx)
		}

		// The press lands on the point itself, so jump there first.
		drag.MoveTo(g.From)
		drag.Start(dctx.Pixel(drag.Feedback().Probe))

		readings := make([]phase.Reading, 0, len(g.Moves))
		for j, p := range g.Moves {
			if err := ctx.Err(); err != nil {
				drag.End()
				return results, fmt.Errorf("gesture %d move %d: %w", i+1, j+1, err)
			}
			fb, _ := drag.Move(dctx.Pixel(p))
			readings = append(readings, fb.Reading)
		}
		drag.End()

		label := g.Label
		if label == "" {
			label = fmt.Sprintf("gesture %d", i+1)
		}
		logger.Info("gesture replayed",
			zap.String("label", label),
			zap.Int("moves", len(readings)),
		)
		results = append(results, GestureResult{Label: label, Readings: readings, Final: drag.Feedback()})
	}

	return results, nil
}
