// Package quantum holds the primitives shared by the diagonalization engine.
//
// It defines the physical constants used to turn junction inductances into
// energies and the error taxonomy every stage of the pipeline reports with:
//
//   - [ErrUnitValidation]: inputs outside the expected magnitude bounds
//   - [ErrShapeMismatch]: array lengths or participation shape disagree
//   - [ErrNaNInput]: NaN in any input array
//   - [ErrNonHermitian]: the Hamiltonian is not symmetric within tolerance
//   - [ErrNonRealChi]: a chi element is not a finite real number
//
// Errors carrying positional context are wrapped in [InputError], which
// unwraps to the sentinel so callers can use errors.Is.
package quantum
