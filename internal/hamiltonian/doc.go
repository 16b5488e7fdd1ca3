// Package hamiltonian assembles the circuit Hamiltonian of weakly-coupled
// harmonic modes perturbed by Josephson junctions.
//
// In frequency units (h = 1) the Hamiltonian is
//
//	H = sum_m f_m a_m† a_m  -  sum_j E_j [cos(phi_j) - 1 + phi_j²/2]
//	phi_j = sum_m (Φ_mj / φ0) (a_m + a_m†)
//
// where f_m are the linear mode frequencies, E_j = φ0² / (L_j h) is the
// Josephson frequency of junction j, Φ_mj is the zero-point flux of mode m
// across junction j and φ0 is the reduced flux quantum. The constant and
// quadratic orders of the cosine are not part of the nonlinear term: the
// quadratic order is the junction's linear inductance and is already
// accounted for in f_m.
//
// [Build] returns a [Hamiltonian]: either [Combined] or [Separated] into the
// linear and nonlinear parts.
package hamiltonian
