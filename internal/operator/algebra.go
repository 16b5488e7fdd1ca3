// Package operator implements the dense operator algebra used to assemble
// Hamiltonians: weighted sums, matrix powers and truncated cosine series.
package operator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/quantum"
)

// DefaultHermitianTol is the relative asymmetry accepted by IsHermitian.
const DefaultHermitianTol = 1e-10

// DotProduct returns sum_i coeffs[i] * ops[i].
func DotProduct(coeffs []float64, ops []mat.Matrix) (*mat.Dense, error) {
	if len(coeffs) != len(ops) {
		return nil, fmt.Errorf("%d coefficients for %d operators: %w", len(coeffs), len(ops), quantum.ErrShapeMismatch)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("empty operator list: %w", quantum.ErrShapeMismatch)
	}

	r, c := ops[0].Dims()
	sum := mat.NewDense(r, c, nil)
	var term mat.Dense
	for i, op := range ops {
		if or, oc := op.Dims(); or != r || oc != c {
			return nil, fmt.Errorf("operator %d is %dx%d, want %dx%d: %w", i, or, oc, r, c, quantum.ErrShapeMismatch)
		}
		term.Scale(coeffs[i], op)
		sum.Add(sum, &term)
	}
	return sum, nil
}

// Power returns op^k for k >= 0.
func Power(op mat.Matrix, k int) (*mat.Dense, error) {
	if _, err := square(op); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("negative power %d: %w", k, quantum.ErrInvalidTruncation)
	}
	var p mat.Dense
	p.Pow(op, k)
	return &p, nil
}

// CosineTaylorSeries returns sum_{k=0}^{order} (-1)^k x^{2k} / (2k)!.
func CosineTaylorSeries(x mat.Matrix, order int) (*mat.Dense, error) {
	return cosineSeries(x, 0, order)
}

// NonlinearCosine returns the cosine series with the constant and quadratic
// orders removed: sum_{k=2}^{order} (-1)^k x^{2k} / (2k)!. This is
// cos(x) - 1 + x^2/2 truncated at x^{2 order}. order 1 yields zero.
func NonlinearCosine(x mat.Matrix, order int) (*mat.Dense, error) {
	return cosineSeries(x, 2, order)
}

func cosineSeries(x mat.Matrix, from, order int) (*mat.Dense, error) {
	n, err := square(x)
	if err != nil {
		return nil, err
	}
	if order < 1 {
		return nil, fmt.Errorf("cosine truncation %d: %w", order, quantum.ErrInvalidTruncation)
	}

	var sq mat.Dense
	sq.Mul(x, x)

	sum := mat.NewDense(n, n, nil)
	term := identity(n)
	var next mat.Dense
	for k := 0; k <= order; k++ {
		if k > 0 {
			// x^{2k}/(2k)! = x^{2(k-1)}/(2(k-1))! * x^2 / ((2k-1)(2k))
			next.Mul(term, &sq)
			term.Scale(-1/float64((2*k-1)*(2*k)), &next)
		}
		if k >= from {
			sum.Add(sum, term)
		}
	}
	return sum, nil
}

// IsHermitian reports whether a real operator is symmetric within tol,
// relative to its largest element.
func IsHermitian(op mat.Matrix, tol float64) bool {
	r, c := op.Dims()
	if r != c {
		return false
	}
	return Asymmetry(op) <= tol*math.Max(1, maxAbs(op))
}

// Asymmetry returns max |op_ij - op_ji|, or +Inf if any pair is NaN.
func Asymmetry(op mat.Matrix) float64 {
	r, _ := op.Dims()
	worst := 0.0
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			d := math.Abs(op.At(i, j) - op.At(j, i))
			if math.IsNaN(d) {
				return math.Inf(1)
			}
			worst = math.Max(worst, d)
		}
	}
	return worst
}

func maxAbs(op mat.Matrix) float64 {
	r, c := op.Dims()
	m := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m = math.Max(m, math.Abs(op.At(i, j)))
		}
	}
	return m
}

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

func square(op mat.Matrix) (int, error) {
	r, c := op.Dims()
	if r != c {
		return 0, fmt.Errorf("operator is %dx%d: %w", r, c, quantum.ErrShapeMismatch)
	}
	return r, nil
}
