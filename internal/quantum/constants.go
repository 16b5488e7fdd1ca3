package quantum

import "math"

// CODATA 2018 exact SI values.
const (
	Planck           = 6.62607015e-34  // J s
	ElementaryCharge = 1.602176634e-19 // C

	ReducedPlanck = Planck / (2 * math.Pi)

	// ReducedFluxQuantum is phi_0 / 2pi in webers.
	ReducedFluxQuantum = ReducedPlanck / (2 * ElementaryCharge)
)

// Unit conversion factors.
const (
	Giga = 1e9
	Mega = 1e6
)

// JosephsonFrequency returns E_J / h in Hz for a junction of inductance l (henries).
func JosephsonFrequency(l float64) float64 {
	return ReducedFluxQuantum * ReducedFluxQuantum / l / Planck
}
