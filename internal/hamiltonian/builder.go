package hamiltonian

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/hilbert"
	"github.com/san-kum/quansim/internal/operator"
	"github.com/san-kum/quansim/internal/quantum"
)

const (
	DefaultCosineTruncation = 5
	DefaultFockTruncation   = 8
)

// Input is the classical description of the circuit in SI units.
type Input struct {
	FrequenciesHz []float64   // per mode, length M
	InductancesH  []float64   // per junction, length J
	FluxZPFs      [][]float64 // M x J zero-point flux in webers
}

func (in Input) Modes() int     { return len(in.FrequenciesHz) }
func (in Input) Junctions() int { return len(in.InductancesH) }

type Options struct {
	CosineTruncation int
	FockTruncation   int
	Separate         bool
	Logger           zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		CosineTruncation: DefaultCosineTruncation,
		FockTruncation:   DefaultFockTruncation,
		Logger:           zerolog.Nop(),
	}
}

// Build validates the input, creates one Fock space per mode named by its
// index and assembles the Hamiltonian on it.
func Build(in Input, opts Options) (Hamiltonian, *hilbert.CompositeSpace, error) {
	if err := Validate(in); err != nil {
		return nil, nil, err
	}
	cs, err := hilbert.Uniform(in.Modes(), opts.FockTruncation)
	if err != nil {
		return nil, nil, err
	}
	b := NewBuilder(cs, opts.CosineTruncation, opts.Logger)
	h, err := b.Build(in, opts.Separate)
	if err != nil {
		return nil, nil, err
	}
	return h, cs, nil
}

// Builder assembles Hamiltonians on a fixed composite space whose spaces are
// the circuit modes in index order.
type Builder struct {
	space            *hilbert.CompositeSpace
	cosineTruncation int
	log              zerolog.Logger
}

func NewBuilder(cs *hilbert.CompositeSpace, cosineTruncation int, log zerolog.Logger) *Builder {
	return &Builder{
		space:            cs,
		cosineTruncation: cosineTruncation,
		log:              log.With().Str("component", "hamiltonian").Logger(),
	}
}

func (b *Builder) Space() *hilbert.CompositeSpace { return b.space }

func (b *Builder) Build(in Input, separate bool) (Hamiltonian, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	if in.Modes() != b.space.Len() {
		return nil, fmt.Errorf("%d modes on a composite of %d spaces: %w", in.Modes(), b.space.Len(), quantum.ErrShapeMismatch)
	}

	linear, err := b.Linear(in.FrequenciesHz)
	if err != nil {
		return nil, err
	}

	junctionHz := make([]float64, in.Junctions())
	for j, l := range in.InductancesH {
		junctionHz[j] = quantum.JosephsonFrequency(l)
	}
	nonlinear, err := b.Nonlinear(Transpose(in.FluxZPFs, in.Junctions()), junctionHz)
	if err != nil {
		return nil, err
	}

	b.log.Debug().
		Int("modes", in.Modes()).
		Int("junctions", in.Junctions()).
		Int("dim", b.space.Dim()).
		Int("cosine_truncation", b.cosineTruncation).
		Msg("hamiltonian assembled")

	if separate {
		return Separated{Linear: linear, Nonlinear: nonlinear}, nil
	}
	var h mat.Dense
	h.Add(linear, nonlinear)
	return Combined{H: &h}, nil
}

// Linear returns sum_m f_m n_m.
func (b *Builder) Linear(frequenciesHz []float64) (*mat.Dense, error) {
	if len(frequenciesHz) != b.space.Len() {
		return nil, fmt.Errorf("%d frequencies for %d modes: %w", len(frequenciesHz), b.space.Len(), quantum.ErrShapeMismatch)
	}
	ops := make([]mat.Matrix, len(frequenciesHz))
	for m, s := range b.space.Spaces() {
		n, err := b.space.ExpandAt(m, s.Number())
		if err != nil {
			return nil, err
		}
		ops[m] = n
	}
	return operator.DotProduct(frequenciesHz, ops)
}

// Nonlinear returns -sum_j E_j NonlinearCosine(phi_j) with zpfs given as a
// J x M matrix of full-flux zero-point fluctuations.
func (b *Builder) Nonlinear(zpfs [][]float64, junctionHz []float64) (*mat.Dense, error) {
	if len(zpfs) != len(junctionHz) {
		return nil, fmt.Errorf("%d zpf rows for %d junctions: %w", len(zpfs), len(junctionHz), quantum.ErrShapeMismatch)
	}
	if len(junctionHz) == 0 {
		return mat.NewDense(b.space.Dim(), b.space.Dim(), nil), nil
	}

	fields := make([]mat.Matrix, b.space.Len())
	for m, s := range b.space.Spaces() {
		f, err := b.space.ExpandAt(m, s.Field())
		if err != nil {
			return nil, err
		}
		fields[m] = f
	}

	terms := make([]mat.Matrix, len(zpfs))
	weights := make([]float64, len(zpfs))
	for j, row := range zpfs {
		reduced := make([]float64, len(row))
		for m, phi := range row {
			reduced[m] = phi / quantum.ReducedFluxQuantum
		}
		arg, err := operator.DotProduct(reduced, fields)
		if err != nil {
			return nil, fmt.Errorf("junction %d: %w", j, err)
		}
		cos, err := operator.NonlinearCosine(arg, b.cosineTruncation)
		if err != nil {
			return nil, fmt.Errorf("junction %d: %w", j, err)
		}
		terms[j] = cos
		weights[j] = -junctionHz[j]
	}
	return operator.DotProduct(weights, terms)
}

// Validate checks for non-finite values, non-positive inductances and an
// M x J participation shape.
func Validate(in Input) error {
	for m, row := range in.FluxZPFs {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &quantum.InputError{Field: fmt.Sprintf("flux_zpfs[%d]", m), Index: j, Value: v, Wrapped: quantum.ErrNaNInput}
			}
		}
	}
	for j, v := range in.InductancesH {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &quantum.InputError{Field: "inductances", Index: j, Value: v, Wrapped: quantum.ErrNaNInput}
		}
		if v <= 0 {
			return &quantum.InputError{Field: "inductances", Index: j, Value: v, Wrapped: quantum.ErrUnitValidation}
		}
	}
	for m, v := range in.FrequenciesHz {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &quantum.InputError{Field: "frequencies", Index: m, Value: v, Wrapped: quantum.ErrNaNInput}
		}
	}

	modes, junctions := in.Modes(), in.Junctions()
	if modes == 0 {
		return &quantum.InputError{Field: "frequencies", Index: -1, Wrapped: quantum.ErrEmptyComposite}
	}
	if len(in.FluxZPFs) != modes {
		return &quantum.InputError{
			Field:   fmt.Sprintf("flux_zpfs has %d rows, want %d", len(in.FluxZPFs), modes),
			Index:   -1,
			Wrapped: quantum.ErrShapeMismatch,
		}
	}
	for m, row := range in.FluxZPFs {
		if len(row) != junctions {
			return &quantum.InputError{
				Field:   fmt.Sprintf("flux_zpfs row %d has %d columns, want %d", m, len(row), junctions),
				Index:   -1,
				Wrapped: quantum.ErrShapeMismatch,
			}
		}
	}
	return nil
}

// Transpose turns an M x J matrix into J x M. cols is J, so an input with
// no rows still yields J empty rows.
func Transpose(a [][]float64, cols int) [][]float64 {
	out := make([][]float64, cols)
	for j := range out {
		out[j] = make([]float64, len(a))
		for m := range a {
			out[j][m] = a[m][j]
		}
	}
	return out
}
