package hilbert

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/quantum"
)

// CompositeSpace is the tensor product of an ordered set of named spaces.
// The order given to NewCompositeSpace is the tensor ordering; the first
// space is the most significant index of the flat basis.
type CompositeSpace struct {
	spaces []*Space
	index  map[string]int
	dim    int
}

func NewCompositeSpace(spaces ...*Space) (*CompositeSpace, error) {
	if len(spaces) == 0 {
		return nil, quantum.ErrEmptyComposite
	}

	c := &CompositeSpace{
		spaces: make([]*Space, 0, len(spaces)),
		index:  make(map[string]int, len(spaces)),
		dim:    1,
	}
	for _, s := range spaces {
		if s == nil {
			return nil, fmt.Errorf("nil space at position %d: %w", len(c.spaces), quantum.ErrInvalidDimension)
		}
		if _, dup := c.index[s.Name()]; dup {
			return nil, fmt.Errorf("space %q: %w", s.Name(), quantum.ErrDuplicateSpace)
		}
		c.index[s.Name()] = len(c.spaces)
		c.spaces = append(c.spaces, s)
		c.dim *= s.Size()
	}
	return c, nil
}

// Uniform builds n spaces of equal size named "0", "1", ... in index order.
func Uniform(n, size int) (*CompositeSpace, error) {
	if n < 1 {
		return nil, quantum.ErrEmptyComposite
	}
	spaces := make([]*Space, n)
	for i := range spaces {
		s, err := NewSpace(size, fmt.Sprint(i))
		if err != nil {
			return nil, err
		}
		spaces[i] = s
	}
	return NewCompositeSpace(spaces...)
}

// Spaces returns the spaces in tensor order.
func (c *CompositeSpace) Spaces() []*Space {
	out := make([]*Space, len(c.spaces))
	copy(out, c.spaces)
	return out
}

func (c *CompositeSpace) Len() int { return len(c.spaces) }

// Dim returns the total Hilbert space dimension, the product of all sizes.
func (c *CompositeSpace) Dim() int { return c.dim }

func (c *CompositeSpace) Index(name string) (int, error) {
	i, ok := c.index[name]
	if !ok {
		return -1, fmt.Errorf("space %q: %w", name, quantum.ErrUnknownSpace)
	}
	return i, nil
}

func (c *CompositeSpace) Space(name string) (*Space, error) {
	i, err := c.Index(name)
	if err != nil {
		return nil, err
	}
	return c.spaces[i], nil
}

// ExpandOperator embeds a local operator acting on the named space into the
// full space, padding every other position with the identity.
func (c *CompositeSpace) ExpandOperator(name string, op mat.Matrix) (*mat.Dense, error) {
	i, err := c.Index(name)
	if err != nil {
		return nil, err
	}
	return c.ExpandAt(i, op)
}

// ExpandAt is ExpandOperator addressed by tensor position.
func (c *CompositeSpace) ExpandAt(pos int, op mat.Matrix) (*mat.Dense, error) {
	if pos < 0 || pos >= len(c.spaces) {
		return nil, fmt.Errorf("position %d of %d: %w", pos, len(c.spaces), quantum.ErrUnknownSpace)
	}
	s := c.spaces[pos]
	if r, k := op.Dims(); r != s.Size() || k != s.Size() {
		return nil, fmt.Errorf("operator %dx%d for space %q of size %d: %w", r, k, s.Name(), s.Size(), quantum.ErrShapeMismatch)
	}

	factors := make([]mat.Matrix, len(c.spaces))
	for i, sp := range c.spaces {
		if i == pos {
			factors[i] = op
		} else {
			factors[i] = sp.Identity()
		}
	}
	return kron(factors), nil
}

// Tensor returns the tensor product, in space order, of one local factor per
// space. Factors may be operators or column vectors; every space must be
// given a factor.
func (c *CompositeSpace) Tensor(locals map[string]mat.Matrix) (*mat.Dense, error) {
	for name := range locals {
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("space %q: %w", name, quantum.ErrUnknownSpace)
		}
	}

	factors := make([]mat.Matrix, len(c.spaces))
	for i, s := range c.spaces {
		f, ok := locals[s.Name()]
		if !ok {
			return nil, fmt.Errorf("no factor for space %q: %w", s.Name(), quantum.ErrShapeMismatch)
		}
		if r, _ := f.Dims(); r != s.Size() {
			return nil, fmt.Errorf("factor with %d rows for space %q of size %d: %w", r, s.Name(), s.Size(), quantum.ErrShapeMismatch)
		}
		factors[i] = f
	}
	return kron(factors), nil
}

// BasisState returns the joint Fock state with the given occupation per
// space name. Spaces not named are in their ground state.
func (c *CompositeSpace) BasisState(occupations map[string]int) (*mat.VecDense, error) {
	locals := make(map[string]mat.Matrix, len(c.spaces))
	for name := range occupations {
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("space %q: %w", name, quantum.ErrUnknownSpace)
		}
	}
	for _, s := range c.spaces {
		v, err := s.Basis(occupations[s.Name()])
		if err != nil {
			return nil, err
		}
		locals[s.Name()] = v
	}

	t, err := c.Tensor(locals)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(c.dim, mat.Col(nil, 0, t)), nil
}

// FlatIndex maps an occupation tuple in tensor order to its basis index.
func (c *CompositeSpace) FlatIndex(occupations []int) (int, error) {
	if len(occupations) != len(c.spaces) {
		return -1, fmt.Errorf("%d occupations for %d spaces: %w", len(occupations), len(c.spaces), quantum.ErrShapeMismatch)
	}
	idx := 0
	for i, s := range c.spaces {
		n := occupations[i]
		if n < 0 || n >= s.Size() {
			return -1, fmt.Errorf("occupation %d in space %q of size %d: %w", n, s.Name(), s.Size(), quantum.ErrIndexRange)
		}
		idx = idx*s.Size() + n
	}
	return idx, nil
}

func kron(factors []mat.Matrix) *mat.Dense {
	acc := mat.DenseCopyOf(factors[0])
	for _, f := range factors[1:] {
		var next mat.Dense
		next.Kronecker(acc, f)
		acc = &next
	}
	return acc
}
