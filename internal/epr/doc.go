// Package epr computes quantum circuit parameters by numerical
// diagonalization of the energy-participation Hamiltonian.
//
// [CalculateQuantumParameters] is the entry point. It takes the outputs of a
// classical eigenmode simulation (linear mode frequencies in GHz, junction
// inductances in henries and the reduced zero-point flux of each mode in
// each junction), builds the Hamiltonian on a truncated Fock space, and
// reports dressed frequencies in GHz and the chi matrix in MHz.
//
// The chi matrix is reported with its sign flipped so that a dispersive
// down-shift is positive: anharmonicities of transmon-like modes come out as
// positive numbers.
//
// # Example
//
//	res, err := epr.CalculateQuantumParameters(
//	    []float64{5.0}, []float64{1e-8}, [][]float64{{0.05}}, epr.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.FrequenciesGHz[0], res.ChiMHz[0][0])
//
// Cost grows as fock^M: every call diagonalizes a dense fock^M x fock^M matrix.
package epr
