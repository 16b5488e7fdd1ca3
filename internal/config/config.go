package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quansim/internal/epr"
	"github.com/san-kum/quansim/internal/quantum"
)

const (
	DefaultFock   = epr.DefaultFockTruncation
	DefaultCosine = epr.DefaultCosineTruncation
)

// Circuit is the on-disk description of a circuit: the linear modes, the
// junctions, and how each mode participates in each junction. Either ZPFs
// or Participation must be given, both M x J.
type Circuit struct {
	Name          string           `yaml:"name"`
	Modes         []ModeConfig     `yaml:"modes"`
	Junctions     []JunctionConfig `yaml:"junctions"`
	ZPFs          [][]float64      `yaml:"zpfs,omitempty"`
	Participation [][]float64      `yaml:"participation,omitempty"`
	Signs         [][]float64      `yaml:"signs,omitempty"`
	Truncation    TruncationConfig `yaml:"truncation"`
	MinOverlap    float64          `yaml:"min_overlap,omitempty"`
}

type ModeConfig struct {
	Label        string  `yaml:"label"`
	FrequencyGHz float64 `yaml:"frequency_ghz"`
}

type JunctionConfig struct {
	Name        string  `yaml:"name"`
	InductanceH float64 `yaml:"inductance_h"`
}

type TruncationConfig struct {
	Fock   int `yaml:"fock"`
	Cosine int `yaml:"cosine"`
}

func DefaultCircuit() *Circuit {
	return &Circuit{
		Name:       "transmon",
		Modes:      []ModeConfig{{Label: "qubit", FrequencyGHz: 5.0}},
		Junctions:  []JunctionConfig{{Name: "jj", InductanceH: 1e-8}},
		ZPFs:       [][]float64{{0.05}},
		Truncation: TruncationConfig{Fock: DefaultFock, Cosine: DefaultCosine},
	}
}

func Load(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultCircuit()
	c.ZPFs = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

func Save(path string, c *Circuit) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the structure of the description. Numerical validation of
// the values is left to the calculation itself.
func (c *Circuit) Validate() error {
	if len(c.Modes) == 0 {
		return fmt.Errorf("circuit %q has no modes: %w", c.Name, quantum.ErrEmptyComposite)
	}
	seen := make(map[string]bool, len(c.Modes))
	for i, m := range c.Modes {
		if m.Label == "" {
			return fmt.Errorf("mode %d has no label", i)
		}
		if seen[m.Label] {
			return fmt.Errorf("mode label %q: %w", m.Label, quantum.ErrDuplicateSpace)
		}
		seen[m.Label] = true
	}
	if (c.ZPFs == nil) == (c.Participation == nil) {
		return fmt.Errorf("circuit %q must set exactly one of zpfs or participation", c.Name)
	}
	if c.Truncation.Fock < 2 {
		return fmt.Errorf("fock truncation %d: %w", c.Truncation.Fock, quantum.ErrInvalidDimension)
	}
	if c.Truncation.Cosine < 1 {
		return fmt.Errorf("cosine truncation %d: %w", c.Truncation.Cosine, quantum.ErrInvalidTruncation)
	}
	return nil
}

func (c *Circuit) Labels() []string {
	out := make([]string, len(c.Modes))
	for i, m := range c.Modes {
		out[i] = m.Label
	}
	return out
}

func (c *Circuit) FrequenciesGHz() []float64 {
	out := make([]float64, len(c.Modes))
	for i, m := range c.Modes {
		out[i] = m.FrequencyGHz
	}
	return out
}

func (c *Circuit) InductancesH() []float64 {
	out := make([]float64, len(c.Junctions))
	for j, jj := range c.Junctions {
		out[j] = jj.InductanceH
	}
	return out
}

// ReducedZPFs returns the M x J reduced zero-point fluxes, converting from
// participation ratios when the circuit is described that way.
func (c *Circuit) ReducedZPFs() ([][]float64, error) {
	if c.ZPFs != nil {
		return c.ZPFs, nil
	}
	return epr.ZPFsFromParticipation(c.FrequenciesGHz(), c.InductancesH(), c.Participation, c.Signs)
}

// Options returns calculation options carrying the circuit's truncations.
func (c *Circuit) Options() epr.Options {
	opts := epr.DefaultOptions()
	opts.FockTruncation = c.Truncation.Fock
	opts.CosineTruncation = c.Truncation.Cosine
	opts.MinOverlap = c.MinOverlap
	return opts
}

// Calculate runs the calculation described by the circuit.
func (c *Circuit) Calculate(opts epr.Options) (*epr.Result, error) {
	zpfs, err := c.ReducedZPFs()
	if err != nil {
		return nil, err
	}
	return epr.CalculateQuantumParameters(c.FrequenciesGHz(), c.InductancesH(), zpfs, opts)
}

// Clone returns a deep copy.
func (c *Circuit) Clone() *Circuit {
	out := *c
	out.Modes = append([]ModeConfig(nil), c.Modes...)
	out.Junctions = append([]JunctionConfig(nil), c.Junctions...)
	out.ZPFs = cloneMatrix(c.ZPFs)
	out.Participation = cloneMatrix(c.Participation)
	out.Signs = cloneMatrix(c.Signs)
	return &out
}

func cloneMatrix(a [][]float64) [][]float64 {
	if a == nil {
		return nil
	}
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
