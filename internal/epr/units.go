package epr

import (
	"math"

	"github.com/san-kum/quansim/internal/quantum"
)

// Sanity bounds catching inputs given in the wrong units.
const (
	MaxFrequencyGHz = 1e6
	MaxInductanceH  = 1e-3
)

// ValidateUnits rejects frequencies that are not plausibly in GHz and
// inductances that are not plausibly in henries.
func ValidateUnits(frequenciesGHz, inductancesH []float64) error {
	for i, f := range frequenciesGHz {
		if !(f < MaxFrequencyGHz) {
			return &quantum.InputError{Field: "frequencies (GHz expected, values < 1e6)", Index: i, Value: f, Wrapped: quantum.ErrUnitValidation}
		}
	}
	for j, l := range inductancesH {
		if !(l < MaxInductanceH) {
			return &quantum.InputError{Field: "inductances (H expected, values < 1e-3)", Index: j, Value: l, Wrapped: quantum.ErrUnitValidation}
		}
	}
	return nil
}

func checkFinite(field string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &quantum.InputError{Field: field, Index: i, Value: v, Wrapped: quantum.ErrNaNInput}
		}
	}
	return nil
}

func GHzToHz(ghz []float64) []float64 {
	out := make([]float64, len(ghz))
	for i, v := range ghz {
		out[i] = v * quantum.Giga
	}
	return out
}

func HzToGHz(hz []float64) []float64 {
	out := make([]float64, len(hz))
	for i, v := range hz {
		out[i] = v / quantum.Giga
	}
	return out
}

// chiToMHz converts a chi matrix from Hz to MHz with the sign flipped.
func chiToMHz(chiHz [][]float64) [][]float64 {
	out := make([][]float64, len(chiHz))
	for i, row := range chiHz {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = -v / quantum.Mega
			if out[i][j] == 0 {
				out[i][j] = 0 // drop the sign of -0
			}
		}
	}
	return out
}
