// Package dispersive extracts dressed frequencies and the chi matrix from a
// circuit Hamiltonian.
//
// Eigenstates are labelled by maximum overlap with bare Fock states: the
// dressed frequency of mode i is the energy of the eigenstate closest to
// |1_i>, and chi[i][j] is E(|1_i 1_j>) - f_i - f_j, with |2_i> on the
// diagonal. All energies are in the units of the Hamiltonian.
package dispersive

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/quansim/internal/hamiltonian"
	"github.com/san-kum/quansim/internal/hilbert"
	"github.com/san-kum/quansim/internal/operator"
	"github.com/san-kum/quansim/internal/quantum"
)

// WeakOverlap is the squared overlap below which a state assignment is
// logged as hybridized.
const WeakOverlap = 0.5

type Options struct {
	// MinOverlap rejects assignments whose squared overlap is below it. Zero
	// accepts the best match unconditionally.
	MinOverlap float64
	// Workers bounds the goroutines used for chi elements. Zero uses GOMAXPROCS.
	Workers   int
	Tolerance float64
	Logger    zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Tolerance: operator.DefaultHermitianTol,
		Logger:    zerolog.Nop(),
	}
}

// Result holds the dispersive parameters in Hamiltonian units.
type Result struct {
	Frequencies []float64
	Chi         [][]float64
	// Overlaps[i][j] is the squared overlap of the state assigned to
	// |1_i 1_j>; the dressed states |1_i> are in SingleOverlaps.
	SingleOverlaps []float64
	Overlaps       [][]float64
	Spectrum       *Spectrum
}

type Analyzer struct {
	opts Options
	log  zerolog.Logger
}

func NewAnalyzer(opts Options) *Analyzer {
	if opts.Tolerance <= 0 {
		opts.Tolerance = operator.DefaultHermitianTol
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{
		opts: opts,
		log:  opts.Logger.With().Str("component", "dispersive").Logger(),
	}
}

// AnalyzeOperator analyzes h on fock^M dimensional space with uniformly
// truncated modes, inferring M from the dimension.
func (a *Analyzer) AnalyzeOperator(h mat.Matrix, fock int) (*Result, error) {
	dim, _ := h.Dims()
	modes, err := ModesFromDimension(dim, fock)
	if err != nil {
		return nil, err
	}
	cs, err := hilbert.Uniform(modes, fock)
	if err != nil {
		return nil, err
	}
	return a.analyze(cs, h)
}

func (a *Analyzer) Analyze(cs *hilbert.CompositeSpace, h hamiltonian.Hamiltonian) (*Result, error) {
	if h.Dim() != cs.Dim() {
		return nil, fmt.Errorf("hamiltonian dim %d on space of dim %d: %w", h.Dim(), cs.Dim(), quantum.ErrShapeMismatch)
	}
	return a.analyze(cs, h.Total())
}

func (a *Analyzer) analyze(cs *hilbert.CompositeSpace, h mat.Matrix) (*Result, error) {
	start := time.Now()
	sp, err := Diagonalize(h, a.opts.Tolerance)
	if err != nil {
		return nil, err
	}
	a.log.Debug().
		Int("dim", cs.Dim()).
		Dur("elapsed", time.Since(start)).
		Msg("hamiltonian diagonalized")

	spaces := cs.Spaces()
	modes := len(spaces)
	res := &Result{
		Frequencies:    make([]float64, modes),
		SingleOverlaps: make([]float64, modes),
		Chi:            make([][]float64, modes),
		Overlaps:       make([][]float64, modes),
		Spectrum:       sp,
	}
	for i := range res.Chi {
		res.Chi[i] = make([]float64, modes)
		res.Overlaps[i] = make([]float64, modes)
	}

	for i, s := range spaces {
		e, o, err := a.closest(cs, sp, map[string]int{s.Name(): 1})
		if err != nil {
			return nil, err
		}
		res.Frequencies[i] = e
		res.SingleOverlaps[i] = o
	}

	type pair struct{ i, j int }
	pairs := make([]pair, 0, modes*(modes+1)/2)
	for i := 0; i < modes; i++ {
		for j := i; j < modes; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	errs := make([]error, len(pairs))
	parallelFor(len(pairs), a.opts.Workers, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			p := pairs[k]
			occ := map[string]int{spaces[p.i].Name(): 1}
			occ[spaces[p.j].Name()]++

			e, o, err := a.closest(cs, sp, occ)
			if err != nil {
				errs[k] = err
				continue
			}
			chi := e - (res.Frequencies[p.i] + res.Frequencies[p.j])
			if math.IsNaN(chi) || math.IsInf(chi, 0) {
				errs[k] = fmt.Errorf("chi[%d][%d] = %v: %w", p.i, p.j, chi, quantum.ErrNonRealChi)
				continue
			}
			res.Chi[p.i][p.j], res.Chi[p.j][p.i] = chi, chi
			res.Overlaps[p.i][p.j], res.Overlaps[p.j][p.i] = o, o
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// closest finds the eigenstate assigned to the Fock state with the given
// occupations and returns its energy and squared overlap.
func (a *Analyzer) closest(cs *hilbert.CompositeSpace, sp *Spectrum, occ map[string]int) (float64, float64, error) {
	target, err := cs.BasisState(occ)
	if err != nil {
		return 0, 0, err
	}
	k, overlap := sp.Closest(target)
	p := overlap * overlap

	if p < a.opts.MinOverlap {
		return 0, 0, fmt.Errorf("state %v: best overlap %.3f below %.3f: %w", occ, p, a.opts.MinOverlap, quantum.ErrAmbiguousState)
	}
	if p < WeakOverlap {
		a.log.Warn().
			Interface("occupation", occ).
			Float64("overlap", p).
			Msg("fock state strongly hybridized")
	}
	return sp.Energies[k], p, nil
}

// ModesFromDimension returns M such that fock^M == dim.
func ModesFromDimension(dim, fock int) (int, error) {
	if fock < 2 {
		return 0, fmt.Errorf("fock truncation %d: %w", fock, quantum.ErrInvalidDimension)
	}
	modes, d := 0, 1
	for d < dim {
		d *= fock
		modes++
	}
	if d != dim || modes == 0 {
		return 0, fmt.Errorf("dimension %d is not a power of fock truncation %d: %w", dim, fock, quantum.ErrShapeMismatch)
	}
	return modes, nil
}
