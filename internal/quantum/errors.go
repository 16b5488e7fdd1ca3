package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for quantum parameter extraction.
var (
	// ErrUnitValidation indicates inputs that look like they were given in the wrong units.
	ErrUnitValidation = errors.New("quantum: input outside expected unit bounds")

	// ErrShapeMismatch indicates inconsistent array lengths or matrix shapes.
	ErrShapeMismatch = errors.New("quantum: shape mismatch")

	// ErrNaNInput indicates a NaN in frequencies, inductances or participation.
	ErrNaNInput = errors.New("quantum: input contains NaN or Inf")

	// ErrNonHermitian indicates a Hamiltonian whose spectrum cannot be real.
	ErrNonHermitian = errors.New("quantum: operator is not hermitian")

	// ErrNonRealChi indicates a chi matrix element that is not a finite real value.
	ErrNonRealChi = errors.New("quantum: chi element is not real")

	// ErrInvalidDimension indicates a Hilbert space dimension below 2.
	ErrInvalidDimension = errors.New("quantum: space dimension must be at least 2")

	// ErrIndexRange indicates a basis index outside [0, dim).
	ErrIndexRange = errors.New("quantum: basis index out of range")

	// ErrUnknownSpace indicates a lookup of a space that is not in the composite.
	ErrUnknownSpace = errors.New("quantum: unknown space")

	// ErrDuplicateSpace indicates two spaces sharing a name in one composite.
	ErrDuplicateSpace = errors.New("quantum: duplicate space name")

	// ErrEmptyComposite indicates a composite space built from no spaces.
	ErrEmptyComposite = errors.New("quantum: composite space needs at least one space")

	// ErrInvalidTruncation indicates a truncation order below its minimum.
	ErrInvalidTruncation = errors.New("quantum: invalid truncation order")

	// ErrDiagonalization indicates the eigensolver failed to converge.
	ErrDiagonalization = errors.New("quantum: eigendecomposition failed")

	// ErrAmbiguousState indicates no eigenstate has a dominant overlap with a Fock state.
	ErrAmbiguousState = errors.New("quantum: no eigenstate with sufficient overlap")
)

// InputError wraps a validation error with the offending field and position.
type InputError struct {
	Field   string
	Index   int
	Value   float64
	Wrapped error
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Field, e.Wrapped)
	}
	return fmt.Sprintf("%s[%d]=%g: %v", e.Field, e.Index, e.Value, e.Wrapped)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
