package epr

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/quansim/internal/dispersive"
	"github.com/san-kum/quansim/internal/hamiltonian"
	"github.com/san-kum/quansim/internal/quantum"
)

const (
	DefaultCosineTruncation = 8
	DefaultFockTruncation   = 9
)

type Options struct {
	CosineTruncation  int
	FockTruncation    int
	ReturnHamiltonian bool
	MinOverlap        float64
	Workers           int
	Logger            zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		CosineTruncation: DefaultCosineTruncation,
		FockTruncation:   DefaultFockTruncation,
		Logger:           zerolog.Nop(),
	}
}

// Result holds the reported parameters. ChiMHz is symmetric; its diagonal
// holds anharmonicities and its off-diagonal entries cross-Kerr shifts.
type Result struct {
	FrequenciesGHz []float64
	ChiMHz         [][]float64
	// SingleOverlaps is the squared overlap of each dressed single-excitation
	// state with its bare Fock state.
	SingleOverlaps []float64
	// Hamiltonian is set only when Options.ReturnHamiltonian is true. It is
	// in Hz.
	Hamiltonian hamiltonian.Hamiltonian
}

func (r *Result) Modes() int { return len(r.FrequenciesGHz) }

// CalculateQuantumParameters diagonalizes the circuit Hamiltonian built from
// linear mode frequencies (GHz), junction inductances (H) and the M x J
// matrix of reduced zero-point flux fluctuations.
func CalculateQuantumParameters(frequenciesGHz, inductancesH []float64, reducedZPFs [][]float64, opts Options) (*Result, error) {
	log := opts.Logger.With().Str("component", "epr").Logger()

	if err := checkFinite("frequencies", frequenciesGHz); err != nil {
		return nil, err
	}
	if err := checkFinite("inductances", inductancesH); err != nil {
		return nil, err
	}
	if err := ValidateUnits(frequenciesGHz, inductancesH); err != nil {
		return nil, err
	}
	if opts.FockTruncation < 2 {
		return nil, fmt.Errorf("fock truncation %d: %w", opts.FockTruncation, quantum.ErrInvalidDimension)
	}
	if opts.CosineTruncation < 1 {
		return nil, fmt.Errorf("cosine truncation %d: %w", opts.CosineTruncation, quantum.ErrInvalidTruncation)
	}

	in := hamiltonian.Input{
		FrequenciesHz: GHzToHz(frequenciesGHz),
		InductancesH:  append([]float64(nil), inductancesH...),
		FluxZPFs:      make([][]float64, len(reducedZPFs)),
	}
	for m, row := range reducedZPFs {
		in.FluxZPFs[m] = make([]float64, len(row))
		for j, z := range row {
			in.FluxZPFs[m][j] = z * quantum.ReducedFluxQuantum
		}
	}

	start := time.Now()
	h, cs, err := hamiltonian.Build(in, hamiltonian.Options{
		CosineTruncation: opts.CosineTruncation,
		FockTruncation:   opts.FockTruncation,
		Separate:         opts.ReturnHamiltonian,
		Logger:           opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	analyzer := dispersive.NewAnalyzer(dispersive.Options{
		MinOverlap: opts.MinOverlap,
		Workers:    opts.Workers,
		Logger:     opts.Logger,
	})
	disp, err := analyzer.Analyze(cs, h)
	if err != nil {
		return nil, err
	}

	res := &Result{
		FrequenciesGHz: HzToGHz(disp.Frequencies),
		ChiMHz:         chiToMHz(disp.Chi),
		SingleOverlaps: disp.SingleOverlaps,
	}
	if opts.ReturnHamiltonian {
		res.Hamiltonian = h
	}

	log.Info().
		Int("modes", cs.Len()).
		Int("junctions", len(inductancesH)).
		Int("dim", cs.Dim()).
		Dur("elapsed", time.Since(start)).
		Msg("quantum parameters computed")

	return res, nil
}
