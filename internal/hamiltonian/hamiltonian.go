package hamiltonian

import "gonum.org/v1/gonum/mat"

// Hamiltonian is a Hermitian operator in Hz on a composite Fock space.
type Hamiltonian interface {
	Total() *mat.Dense
	Dim() int
}

// Combined holds the summed Hamiltonian.
type Combined struct {
	H *mat.Dense
}

func (c Combined) Total() *mat.Dense { return c.H }

func (c Combined) Dim() int {
	r, _ := c.H.Dims()
	return r
}

// Separated keeps the harmonic and junction contributions apart.
type Separated struct {
	Linear    *mat.Dense
	Nonlinear *mat.Dense
}

// Total returns a fresh Linear + Nonlinear.
func (s Separated) Total() *mat.Dense {
	var h mat.Dense
	h.Add(s.Linear, s.Nonlinear)
	return &h
}

func (s Separated) Dim() int {
	r, _ := s.Linear.Dims()
	return r
}
