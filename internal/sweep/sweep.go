// Package sweep evaluates a circuit over a grid of truncations to show how
// the dressed frequencies and chi matrix converge.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/san-kum/quansim/internal/config"
	"github.com/san-kum/quansim/internal/epr"
	"github.com/san-kum/quansim/internal/quantum"
)

// Point is one evaluated truncation pair.
type Point struct {
	Fock   int
	Cosine int
	Result *epr.Result
	// MaxChange is the largest absolute change, in MHz, of any dressed
	// frequency or chi entry relative to the previous point. It is +Inf for
	// the first point.
	MaxChange float64
}

type Sweep struct {
	Circuit      *config.Circuit
	FockValues   []int
	CosineValues []int
	Logger       zerolog.Logger
}

// Convergence runs a sweep with logging disabled.
func Convergence(ctx context.Context, c *config.Circuit, fockValues, cosineValues []int) ([]Point, error) {
	s := &Sweep{Circuit: c, FockValues: fockValues, CosineValues: cosineValues, Logger: zerolog.Nop()}
	return s.Run(ctx)
}

// Run evaluates every (fock, cosine) pair, fock outermost. Cancellation is
// checked between points; the points computed so far are returned with the
// context error.
func (s *Sweep) Run(ctx context.Context) ([]Point, error) {
	if len(s.FockValues) == 0 || len(s.CosineValues) == 0 {
		return nil, errors.New("sweep: empty truncation grid")
	}
	log := s.Logger.With().Str("component", "sweep").Str("circuit", s.Circuit.Name).Logger()

	zpfs, err := s.Circuit.ReducedZPFs()
	if err != nil {
		return nil, err
	}
	freqs, inds := s.Circuit.FrequenciesGHz(), s.Circuit.InductancesH()

	points := make([]Point, 0, len(s.FockValues)*len(s.CosineValues))
	var prev *epr.Result
	for _, fock := range s.FockValues {
		for _, cosine := range s.CosineValues {
			if err := ctx.Err(); err != nil {
				return points, err
			}

			opts := s.Circuit.Options()
			opts.FockTruncation = fock
			opts.CosineTruncation = cosine
			opts.Logger = s.Logger

			res, err := epr.CalculateQuantumParameters(freqs, inds, zpfs, opts)
			if err != nil {
				return points, fmt.Errorf("fock=%d cosine=%d: %w", fock, cosine, err)
			}

			p := Point{Fock: fock, Cosine: cosine, Result: res, MaxChange: math.Inf(1)}
			if prev != nil {
				p.MaxChange = maxChange(prev, res)
			}
			log.Debug().Int("fock", fock).Int("cosine", cosine).Float64("max_change_mhz", p.MaxChange).Msg("point")

			points = append(points, p)
			prev = res
		}
	}
	return points, nil
}

func maxChange(a, b *epr.Result) float64 {
	var m float64
	for i := range a.FrequenciesGHz {
		m = math.Max(m, math.Abs(a.FrequenciesGHz[i]-b.FrequenciesGHz[i])*quantum.Giga/quantum.Mega)
		for j := range a.ChiMHz[i] {
			m = math.Max(m, math.Abs(a.ChiMHz[i][j]-b.ChiMHz[i][j]))
		}
	}
	return m
}

// Converged returns the index of the first point whose change from its
// predecessor is below tol MHz, or -1.
func Converged(points []Point, tol float64) int {
	for i, p := range points {
		if p.MaxChange < tol {
			return i
		}
	}
	return -1
}

// Series extracts one chi entry across the sweep, for plotting.
func Series(points []Point, i, j int) []float64 {
	out := make([]float64, len(points))
	for k, p := range points {
		out[k] = p.Result.ChiMHz[i][j]
	}
	return out
}
