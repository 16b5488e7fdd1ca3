package epr

import (
	"fmt"
	"math"

	"github.com/san-kum/quansim/internal/quantum"
)

// ZPFsFromParticipation converts inductive energy participation ratios into
// reduced zero-point flux fluctuations:
//
//	phi[m][j] = sign[m][j] * sqrt(p[m][j] * f_m / (2 E_j))
//
// with f_m the mode frequency and E_j the Josephson frequency of junction j.
// participation and signs are M x J; signs may be nil for all positive.
func ZPFsFromParticipation(frequenciesGHz, inductancesH []float64, participation, signs [][]float64) ([][]float64, error) {
	if err := ValidateUnits(frequenciesGHz, inductancesH); err != nil {
		return nil, err
	}
	modes, junctions := len(frequenciesGHz), len(inductancesH)
	if len(participation) != modes {
		return nil, fmt.Errorf("%d participation rows for %d modes: %w", len(participation), modes, quantum.ErrShapeMismatch)
	}
	if signs != nil && len(signs) != modes {
		return nil, fmt.Errorf("%d sign rows for %d modes: %w", len(signs), modes, quantum.ErrShapeMismatch)
	}

	zpfs := make([][]float64, modes)
	for m, row := range participation {
		if len(row) != junctions || (signs != nil && len(signs[m]) != junctions) {
			return nil, fmt.Errorf("participation row %d does not have %d junctions: %w", m, junctions, quantum.ErrShapeMismatch)
		}
		zpfs[m] = make([]float64, junctions)
		f := frequenciesGHz[m] * quantum.Giga
		for j, p := range row {
			if math.IsNaN(p) {
				return nil, &quantum.InputError{Field: fmt.Sprintf("participation[%d]", m), Index: j, Value: p, Wrapped: quantum.ErrNaNInput}
			}
			if p < 0 {
				return nil, &quantum.InputError{Field: fmt.Sprintf("participation[%d]", m), Index: j, Value: p, Wrapped: quantum.ErrUnitValidation}
			}
			if inductancesH[j] <= 0 {
				return nil, &quantum.InputError{Field: "inductances", Index: j, Value: inductancesH[j], Wrapped: quantum.ErrUnitValidation}
			}
			phi := math.Sqrt(p * f / (2 * quantum.JosephsonFrequency(inductancesH[j])))
			if signs != nil && signs[m][j] < 0 {
				phi = -phi
			}
			zpfs[m][j] = phi
		}
	}
	return zpfs, nil
}
