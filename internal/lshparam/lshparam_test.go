package lshparam

import (
	"testing"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
)

func TestOptimize_FeasibleAndMinimal(t *testing.T) {
	n := 128
	threshold := 0.9
	w := Weights{FalsePositive: 0.5, FalseNegative: 0.5}

	got, err := Optimize(n, threshold, w)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got.Bands*got.Rows > n {
		t.Fatalf("chosen (b=%d, r=%d) violates b*r <= n=%d", got.Bands, got.Rows, n)
	}

	gotErr := Objective(got.Bands, got.Rows, threshold, w)
	for b := 1; b <= n; b++ {
		for r := 1; r <= n/b; r++ {
			e := Objective(b, r, threshold, w)
			if e < gotErr-1e-6 {
				t.Fatalf("(b=%d, r=%d) has lower error %v than chosen (b=%d, r=%d) error %v",
					b, r, e, got.Bands, got.Rows, gotErr)
			}
		}
	}
}

func TestOptimize_InvalidWeights(t *testing.T) {
	_, err := Optimize(128, 0.5, Weights{FalsePositive: 0.6, FalseNegative: 0.6})
	if !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration for weights not summing to 1, got %v", err)
	}
}

func TestOptimize_InvalidThreshold(t *testing.T) {
	_, err := Optimize(128, 1.5, Weights{FalsePositive: 0.5, FalseNegative: 0.5})
	if !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration for threshold out of range, got %v", err)
	}
}

func TestValidate_RejectsOverBudget(t *testing.T) {
	_, err := Validate(20, 10, 128)
	if !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration for b*r > n, got %v", err)
	}
}

func TestValidate_AcceptsWithinBudget(t *testing.T) {
	p, err := Validate(16, 8, 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Bands != 16 || p.Rows != 8 {
		t.Errorf("expected (16,8), got (%d,%d)", p.Bands, p.Rows)
	}
}

// Increasing w_fn should never push the chosen r above the unweighted
// (0.5, 0.5) baseline's r -- higher false-negative weight favors looser,
// smaller-r bands (spec §8's monotonicity property).
func TestOptimize_MonotoneInFalseNegativeWeight(t *testing.T) {
	n := 64
	threshold := 0.8

	baseline, err := Optimize(n, threshold, Weights{FalsePositive: 0.5, FalseNegative: 0.5})
	if err != nil {
		t.Fatalf("Optimize baseline: %v", err)
	}
	fnHeavy, err := Optimize(n, threshold, Weights{FalsePositive: 0.1, FalseNegative: 0.9})
	if err != nil {
		t.Fatalf("Optimize fn-heavy: %v", err)
	}

	if fnHeavy.Rows > baseline.Rows {
		t.Errorf("higher false-negative weight should not increase r above baseline: baseline.r=%d fnHeavy.r=%d",
			baseline.Rows, fnHeavy.Rows)
	}
}
