package config

import "sort"

var Presets = map[string]*Circuit{
	"transmon": DefaultCircuit(),
	"transmon_readout": {
		Name: "transmon_readout",
		Modes: []ModeConfig{
			{Label: "qubit", FrequencyGHz: 5.2},
			{Label: "readout", FrequencyGHz: 7.4},
		},
		Junctions:  []JunctionConfig{{Name: "jj", InductanceH: 1.2e-8}},
		ZPFs:       [][]float64{{0.3}, {0.02}},
		Truncation: TruncationConfig{Fock: 7, Cosine: 6},
	},
	"two_mode_cavity": {
		Name: "two_mode_cavity",
		Modes: []ModeConfig{
			{Label: "transmon", FrequencyGHz: 4.8},
			{Label: "cavity_a", FrequencyGHz: 6.1},
			{Label: "cavity_b", FrequencyGHz: 8.05},
		},
		Junctions:     []JunctionConfig{{Name: "jj", InductanceH: 1.5e-8}},
		Participation: [][]float64{{0.95}, {0.01}, {0.002}},
		Signs:         [][]float64{{1}, {-1}, {1}},
		Truncation:    TruncationConfig{Fock: 6, Cosine: 6},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Circuit {
	c, ok := Presets[name]
	if !ok {
		return nil
	}
	return c.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
