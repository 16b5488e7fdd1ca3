package hilbert

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/quantum"
)

func twoModes(t *testing.T) (*CompositeSpace, *Space, *Space) {
	t.Helper()
	a, _ := NewSpace(3, "a")
	b, _ := NewSpace(4, "b")
	cs, err := NewCompositeSpace(a, b)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	return cs, a, b
}

func TestNewCompositeSpace(t *testing.T) {
	cs, _, _ := twoModes(t)
	if cs.Dim() != 12 {
		t.Errorf("dim = %d, want 12", cs.Dim())
	}
	if cs.Len() != 2 {
		t.Errorf("len = %d, want 2", cs.Len())
	}
	if i, _ := cs.Index("b"); i != 1 {
		t.Errorf("index(b) = %d, want 1", i)
	}

	if _, err := NewCompositeSpace(); !errors.Is(err, quantum.ErrEmptyComposite) {
		t.Errorf("expected ErrEmptyComposite, got %v", err)
	}

	a1, _ := NewSpace(2, "a")
	a2, _ := NewSpace(3, "a")
	if _, err := NewCompositeSpace(a1, a2); !errors.Is(err, quantum.ErrDuplicateSpace) {
		t.Errorf("expected ErrDuplicateSpace, got %v", err)
	}
}

func TestUniform(t *testing.T) {
	cs, err := Uniform(3, 4)
	if err != nil {
		t.Fatalf("uniform failed: %v", err)
	}
	if cs.Dim() != 64 {
		t.Errorf("dim = %d, want 64", cs.Dim())
	}
	for i, s := range cs.Spaces() {
		if idx, _ := cs.Index(s.Name()); idx != i {
			t.Errorf("space %q at %d has index %d", s.Name(), i, idx)
		}
	}

	if _, err := Uniform(0, 4); !errors.Is(err, quantum.ErrEmptyComposite) {
		t.Errorf("expected ErrEmptyComposite, got %v", err)
	}
	if _, err := Uniform(2, 1); !errors.Is(err, quantum.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestExpandOperator(t *testing.T) {
	cs, a, b := twoModes(t)

	na, err := cs.ExpandOperator("a", a.Number())
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	nb, _ := cs.ExpandOperator("b", b.Number())

	for na1 := 0; na1 < 3; na1++ {
		for nb1 := 0; nb1 < 4; nb1++ {
			idx, _ := cs.FlatIndex([]int{na1, nb1})
			if got := na.At(idx, idx); got != float64(na1) {
				t.Errorf("n_a at |%d,%d> = %v", na1, nb1, got)
			}
			if got := nb.At(idx, idx); got != float64(nb1) {
				t.Errorf("n_b at |%d,%d> = %v", na1, nb1, got)
			}
		}
	}

	// operators on different spaces commute
	var ab, ba mat.Dense
	fa, _ := cs.ExpandOperator("a", a.Field())
	fb, _ := cs.ExpandOperator("b", b.Field())
	ab.Mul(fa, fb)
	ba.Mul(fb, fa)
	if !mat.EqualApprox(&ab, &ba, 1e-12) {
		t.Error("expanded operators on different spaces should commute")
	}
}

func TestExpandOperator_Errors(t *testing.T) {
	cs, a, _ := twoModes(t)

	if _, err := cs.ExpandOperator("c", a.Number()); !errors.Is(err, quantum.ErrUnknownSpace) {
		t.Errorf("expected ErrUnknownSpace, got %v", err)
	}
	if _, err := cs.ExpandOperator("b", a.Number()); !errors.Is(err, quantum.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if _, err := cs.ExpandAt(5, a.Number()); !errors.Is(err, quantum.ErrUnknownSpace) {
		t.Errorf("expected ErrUnknownSpace, got %v", err)
	}
}

func TestBasisState(t *testing.T) {
	cs, _, _ := twoModes(t)

	psi, err := cs.BasisState(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("basis state failed: %v", err)
	}
	idx, _ := cs.FlatIndex([]int{1, 2})
	if idx != 6 {
		t.Errorf("flat index = %d, want 6", idx)
	}
	for i := 0; i < cs.Dim(); i++ {
		expected := 0.0
		if i == idx {
			expected = 1
		}
		if psi.AtVec(i) != expected {
			t.Errorf("psi[%d] = %v", i, psi.AtVec(i))
		}
	}

	ground, _ := cs.BasisState(nil)
	if ground.AtVec(0) != 1 {
		t.Error("empty occupation should give the ground state")
	}

	if _, err := cs.BasisState(map[string]int{"a": 3}); !errors.Is(err, quantum.ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
	if _, err := cs.BasisState(map[string]int{"z": 0}); !errors.Is(err, quantum.ErrUnknownSpace) {
		t.Errorf("expected ErrUnknownSpace, got %v", err)
	}
}

func TestTensor(t *testing.T) {
	cs, a, b := twoModes(t)

	pa, _ := a.Projector(2)
	op, err := cs.Tensor(map[string]mat.Matrix{"a": pa, "b": b.Identity()})
	if err != nil {
		t.Fatalf("tensor failed: %v", err)
	}
	expanded, _ := cs.ExpandOperator("a", pa)
	if !mat.Equal(op, expanded) {
		t.Error("tensor with identity should match ExpandOperator")
	}

	if _, err := cs.Tensor(map[string]mat.Matrix{"a": pa}); !errors.Is(err, quantum.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch for missing factor, got %v", err)
	}
	if _, err := cs.FlatIndex([]int{0}); !errors.Is(err, quantum.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}
