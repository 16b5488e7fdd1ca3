package dispersive

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/operator"
	"github.com/san-kum/quansim/internal/quantum"
)

// Spectrum is an eigendecomposition with energies measured from the ground state.
type Spectrum struct {
	Energies []float64  // ascending, Energies[0] == 0
	Vectors  *mat.Dense // column k is the eigenvector of Energies[k]
	Ground   float64    // unshifted ground energy
}

// Diagonalize checks that h is Hermitian within the relative tolerance tol
// and returns its spectrum shifted so the ground energy is zero.
func Diagonalize(h mat.Matrix, tol float64) (*Spectrum, error) {
	r, c := h.Dims()
	if r != c {
		return nil, fmt.Errorf("hamiltonian is %dx%d: %w", r, c, quantum.ErrShapeMismatch)
	}
	if !operator.IsHermitian(h, tol) {
		return nil, fmt.Errorf("asymmetry %g exceeds tolerance %g: %w", operator.Asymmetry(h), tol, quantum.ErrNonHermitian)
	}

	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, (h.At(i, j)+h.At(j, i))/2)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, quantum.ErrDiagonalization
	}

	energies := eig.Values(nil)
	for k, e := range energies {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("eigenvalue %d is %v: %w", k, e, quantum.ErrNonHermitian)
		}
	}
	ground := energies[0]
	for k := range energies {
		energies[k] -= ground
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	return &Spectrum{Energies: energies, Vectors: &vecs, Ground: ground}, nil
}

// Closest returns the index of the eigenvector with the largest absolute
// overlap with target, and that overlap. Ties keep the lower index.
func (s *Spectrum) Closest(target mat.Vector) (int, float64) {
	best, bestOverlap := 0, -1.0
	for k := range s.Energies {
		o := math.Abs(mat.Dot(target, s.Vectors.ColView(k)))
		if o > bestOverlap {
			best, bestOverlap = k, o
		}
	}
	return best, bestOverlap
}
