package hilbert

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/quantum"
)

// Space is a truncated harmonic-oscillator Hilbert space. It is immutable.
type Space struct {
	name string
	size int
}

func NewSpace(size int, name string) (*Space, error) {
	if size < 2 {
		return nil, fmt.Errorf("space %q of size %d: %w", name, size, quantum.ErrInvalidDimension)
	}
	return &Space{name: name, size: size}, nil
}

func (s *Space) Name() string { return s.name }
func (s *Space) Size() int    { return s.size }

// Destroy returns the annihilation operator a with <n-1|a|n> = sqrt(n).
func (s *Space) Destroy() *mat.Dense {
	a := mat.NewDense(s.size, s.size, nil)
	for n := 1; n < s.size; n++ {
		a.Set(n-1, n, math.Sqrt(float64(n)))
	}
	return a
}

// Create returns the creation operator, the adjoint of Destroy.
func (s *Space) Create() *mat.Dense {
	c := mat.NewDense(s.size, s.size, nil)
	for n := 1; n < s.size; n++ {
		c.Set(n, n-1, math.Sqrt(float64(n)))
	}
	return c
}

// Number returns a†a. The diagonal is set directly so occupations are exact.
func (s *Space) Number() *mat.Dense {
	num := mat.NewDense(s.size, s.size, nil)
	for n := 0; n < s.size; n++ {
		num.Set(n, n, float64(n))
	}
	return num
}

// Field returns a + a†.
func (s *Space) Field() *mat.Dense {
	f := s.Create()
	f.Add(f, s.Destroy())
	return f
}

func (s *Space) Identity() *mat.Dense {
	id := mat.NewDense(s.size, s.size, nil)
	for n := 0; n < s.size; n++ {
		id.Set(n, n, 1)
	}
	return id
}

// Basis returns the Fock state |n> as a column vector.
func (s *Space) Basis(n int) (*mat.VecDense, error) {
	if n < 0 || n >= s.size {
		return nil, fmt.Errorf("basis %d in space %q of size %d: %w", n, s.name, s.size, quantum.ErrIndexRange)
	}
	v := mat.NewVecDense(s.size, nil)
	v.SetVec(n, 1)
	return v, nil
}

// Projector returns |n><n|.
func (s *Space) Projector(n int) (*mat.Dense, error) {
	if n < 0 || n >= s.size {
		return nil, fmt.Errorf("projector %d in space %q of size %d: %w", n, s.name, s.size, quantum.ErrIndexRange)
	}
	p := mat.NewDense(s.size, s.size, nil)
	p.Set(n, n, 1)
	return p, nil
}

// Coherent returns the coherent state |alpha> restricted to the truncated
// space and renormalized there.
func (s *Space) Coherent(alpha float64) *mat.VecDense {
	v := mat.NewVecDense(s.size, nil)
	amp := math.Exp(-alpha * alpha / 2)
	for n := 0; n < s.size; n++ {
		if n > 0 {
			amp *= alpha / math.Sqrt(float64(n))
		}
		v.SetVec(n, amp)
	}
	if norm := mat.Norm(v, 2); norm > 0 {
		v.ScaleVec(1/norm, v)
	}
	return v
}
