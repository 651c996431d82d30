// Package lshparam chooses banded LSH parameters (b, r) that minimize a
// weighted false-positive/false-negative objective derived from the
// closed-form S-curve of banded MinHash (spec component G).
package lshparam

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
)

// quadraturePoints bounds the numerical integration grid. The integrand is
// smooth and monotone on [0,1], so a modest fixed-order Gauss-Legendre rule
// is more than sufficient.
const quadraturePoints = 64

// Params is a chosen or validated (b, r) band configuration.
type Params struct {
	Bands int
	Rows  int
}

// Weights is the (w_fp, w_fn) pair from spec §6's construction parameters.
// Must sum to 1 and both be non-negative.
type Weights struct {
	FalsePositive float64
	FalseNegative float64
}

func (w Weights) validate() error {
	if w.FalsePositive < 0 || w.FalseNegative < 0 {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh weights must be non-negative, got (%v, %v)",
			w.FalsePositive, w.FalseNegative)
	}
	if math.Abs(w.FalsePositive+w.FalseNegative-1) > 1e-9 {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh weights must sum to 1, got %v", w.FalsePositive+w.FalseNegative)
	}
	return nil
}

// Objective evaluates E(b, r) at threshold t for the given weights: the
// weighted sum of the false-positive mass below t and the false-negative
// mass above t under the banded-AND-OR S-curve.
func Objective(b, r int, threshold float64, w Weights) float64 {
	falsePositive := quad.Fixed(func(s float64) float64 {
		return 1 - math.Pow(1-math.Pow(s, float64(r)), float64(b))
	}, 0, threshold, quadraturePoints, nil, 0)

	falseNegative := quad.Fixed(func(s float64) float64 {
		return math.Pow(1-math.Pow(s, float64(r)), float64(b))
	}, threshold, 1, quadraturePoints, nil, 0)

	return w.FalsePositive*falsePositive + w.FalseNegative*falseNegative
}

// Optimize enumerates the feasible (b, r) grid with b*r <= n and returns
// the pair minimizing Objective, tie-breaking on the smaller b
// (equivalently the larger r).
func Optimize(n int, threshold float64, w Weights) (Params, error) {
	if n < 1 {
		return Params{}, lsherr.New(lsherr.InvalidConfiguration, "n_samples must be >= 1, got %d", n)
	}
	if threshold < 0 || threshold > 1 {
		return Params{}, lsherr.New(lsherr.InvalidConfiguration, "threshold must be in [0,1], got %v", threshold)
	}
	if err := w.validate(); err != nil {
		return Params{}, err
	}

	best := Params{Bands: 1, Rows: n}
	bestErr := math.Inf(1)

	for b := 1; b <= n; b++ {
		maxRows := n / b
		for r := 1; r <= maxRows; r++ {
			e := Objective(b, r, threshold, w)
			if e < bestErr-1e-12 {
				bestErr = e
				best = Params{Bands: b, Rows: r}
			} else if e < bestErr+1e-12 && b < best.Bands {
				best = Params{Bands: b, Rows: r}
			}
		}
	}
	return best, nil
}

// Validate checks a caller-supplied (b, r) pair against b*r <= n, skipping
// the optimizer entirely (spec §4.G, §6).
func Validate(b, r, n int) (Params, error) {
	if b < 1 || r < 1 {
		return Params{}, lsherr.New(lsherr.InvalidConfiguration, "bands and rows must be >= 1, got b=%d r=%d", b, r)
	}
	if b*r > n {
		return Params{}, lsherr.New(lsherr.InvalidConfiguration, "b*r (%d) exceeds n_samples (%d)", b*r, n)
	}
	return Params{Bands: b, Rows: r}, nil
}
