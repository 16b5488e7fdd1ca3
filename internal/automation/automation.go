// Package automation runs scripted batches of circuit calculations.
package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/quansim/internal/config"
	"github.com/san-kum/quansim/internal/epr"
	"github.com/san-kum/quansim/internal/storage"
)

// Scenario is a named sequence of calculations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`

	dir string
}

// ScenarioStep selects a circuit by file or preset, with optional
// truncation overrides.
type ScenarioStep struct {
	Circuit string `yaml:"circuit"`
	Preset  string `yaml:"preset"`
	Fock    int    `yaml:"fock"`
	Cosine  int    `yaml:"cosine"`
	Save    bool   `yaml:"save"`
}

type StepResult struct {
	Circuit *config.Circuit
	Result  *epr.Result
	RunID   string
}

// LoadScenario loads a scenario from a YAML file. Relative circuit paths are
// resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	scenario.dir = filepath.Dir(path)

	return &scenario, nil
}

func (s *Scenario) resolve(step ScenarioStep) (*config.Circuit, error) {
	switch {
	case step.Circuit != "" && step.Preset != "":
		return nil, fmt.Errorf("step sets both circuit %q and preset %q", step.Circuit, step.Preset)
	case step.Circuit != "":
		path := step.Circuit
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		return config.Load(path)
	case step.Preset != "":
		c := config.GetPreset(step.Preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s", step.Preset)
		}
		return c, nil
	}
	return nil, fmt.Errorf("step sets neither circuit nor preset")
}

// RunScenario executes all steps in order. Steps with Save set are written to
// st, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, log zerolog.Logger) ([]StepResult, error) {
	log = log.With().Str("component", "automation").Str("scenario", scenario.Name).Logger()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		c, err := scenario.resolve(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Fock != 0 {
			c.Truncation.Fock = step.Fock
		}
		if step.Cosine != 0 {
			c.Truncation.Cosine = step.Cosine
		}
		log.Info().Int("step", i+1).Int("of", len(scenario.Steps)).Str("circuit", c.Name).Msg("running step")

		opts := c.Options()
		opts.Logger = log
		res, err := c.Calculate(opts)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := StepResult{Circuit: c, Result: res}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			out.RunID, err = st.Save(c.Name, c.Labels(), opts, res)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, out)
	}

	return results, nil
}
