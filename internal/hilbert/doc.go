// Package hilbert provides truncated harmonic-oscillator Hilbert spaces and
// their tensor products.
//
// A [Space] is a single Fock space of fixed dimension exposing the ladder,
// number and field operators as dense matrices. A [CompositeSpace] is an
// ordered tuple of named spaces. Its ordering is fixed at construction and is
// the single source of truth for tensor indexing: operators embedded with
// [CompositeSpace.ExpandOperator] and basis states built with
// [CompositeSpace.BasisState] always agree on which flat index belongs to
// which occupation tuple.
//
// # Example
//
//	a, _ := hilbert.NewSpace(9, "qubit")
//	b, _ := hilbert.NewSpace(9, "readout")
//	cs, _ := hilbert.NewCompositeSpace(a, b)
//	n, _ := cs.ExpandOperator("qubit", a.Number())
//	psi, _ := cs.BasisState(map[string]int{"qubit": 1})
package hilbert
