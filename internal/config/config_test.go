package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/quansim/internal/quantum"
)

func TestDefaultCircuit(t *testing.T) {
	c := DefaultCircuit()

	if c.Name != "transmon" {
		t.Errorf("expected name transmon, got %s", c.Name)
	}
	if c.Truncation.Fock != DefaultFock {
		t.Errorf("expected fock %d, got %d", DefaultFock, c.Truncation.Fock)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default circuit invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	c := GetPreset("transmon_readout")
	if c == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(c.Modes) != 2 {
		t.Errorf("expected 2 modes, got %d", len(c.Modes))
	}

	c.ZPFs[0][0] = 99
	if Presets["transmon_readout"].ZPFs[0][0] == 99 {
		t.Error("preset mutated through returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if c := GetPreset("nonexistent"); c != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Circuit)
		want   error
	}{
		{"no modes", func(c *Circuit) { c.Modes = nil }, quantum.ErrEmptyComposite},
		{"duplicate label", func(c *Circuit) {
			c.Modes = append(c.Modes, c.Modes[0])
		}, quantum.ErrDuplicateSpace},
		{"fock too small", func(c *Circuit) { c.Truncation.Fock = 1 }, quantum.ErrInvalidDimension},
		{"cosine zero", func(c *Circuit) { c.Truncation.Cosine = 0 }, quantum.ErrInvalidTruncation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCircuit()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_FluxSource(t *testing.T) {
	c := DefaultCircuit()
	c.Participation = [][]float64{{0.9}}
	if err := c.Validate(); err == nil {
		t.Error("expected error when both zpfs and participation are set")
	}

	c.ZPFs, c.Participation = nil, nil
	if err := c.Validate(); err == nil {
		t.Error("expected error when neither zpfs nor participation is set")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.yaml")
	orig := GetPreset("two_mode_cavity")

	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Name != orig.Name {
		t.Errorf("expected name %s, got %s", orig.Name, c.Name)
	}
	if c.ZPFs != nil {
		t.Error("expected zpfs to stay unset")
	}
	if len(c.Participation) != 3 || c.Participation[1][0] != 0.01 {
		t.Errorf("participation not preserved: %v", c.Participation)
	}
	if c.Signs[1][0] != -1 {
		t.Errorf("expected sign -1, got %f", c.Signs[1][0])
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReducedZPFs(t *testing.T) {
	c := GetPreset("two_mode_cavity")
	zpfs, err := c.ReducedZPFs()
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if len(zpfs) != 3 || len(zpfs[0]) != 1 {
		t.Fatalf("expected 3x1 zpfs, got %v", zpfs)
	}
	if zpfs[1][0] >= 0 {
		t.Errorf("expected negative zpf for cavity_a, got %g", zpfs[1][0])
	}
	if math.Abs(zpfs[0][0]) <= math.Abs(zpfs[1][0]) {
		t.Error("transmon zpf should dominate")
	}
}

func TestCalculate(t *testing.T) {
	c := DefaultCircuit()
	c.Truncation = TruncationConfig{Fock: 5, Cosine: 4}

	res, err := c.Calculate(c.Options())
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if res.Modes() != 1 {
		t.Fatalf("expected 1 mode, got %d", res.Modes())
	}
	if res.FrequenciesGHz[0] >= 5.0 {
		t.Errorf("expected dressed frequency below 5 GHz, got %f", res.FrequenciesGHz[0])
	}
	if res.ChiMHz[0][0] <= 0 {
		t.Errorf("expected positive reported anharmonicity, got %f", res.ChiMHz[0][0])
	}
}
