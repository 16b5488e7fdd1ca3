package epr

import (
	"fmt"

	"github.com/san-kum/quansim/internal/quantum"
)

func DispersiveKey(a, b string) string { return fmt.Sprintf("%s - %s Disp. (MHz)", a, b) }
func AnharmonicityKey(a string) string { return fmt.Sprintf("%s Anharm. (MHz)", a) }
func FrequencyKey(a string) string     { return fmt.Sprintf("%s Freq. (GHz)", a) }

// Flatten maps the result onto labelled scalar keys, one per unique chi
// pair, one anharmonicity per mode and one frequency per mode.
func (r *Result) Flatten(labels []string) (map[string]float64, error) {
	if len(labels) != r.Modes() {
		return nil, fmt.Errorf("%d labels for %d modes: %w", len(labels), r.Modes(), quantum.ErrShapeMismatch)
	}

	flat := make(map[string]float64, r.Modes()*(r.Modes()+3)/2)
	for i, a := range labels {
		for j := i + 1; j < len(labels); j++ {
			flat[DispersiveKey(a, labels[j])] = r.ChiMHz[i][j]
		}
	}
	for i, a := range labels {
		flat[AnharmonicityKey(a)] = r.ChiMHz[i][i]
		flat[FrequencyKey(a)] = r.FrequenciesGHz[i]
	}
	return flat, nil
}
