// Package simstat provides the exact-similarity and retrieval-quality
// helpers that round out the estimate produced by sketches (spec §4.E):
// Jaccard over sets and weighted multisets, precision/recall/F-score, and
// thin wrappers over summary statistics.
package simstat

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Jaccard computes |A ∩ B| / |A ∪ B| over finite sets represented as
// distinct-key maps. Two empty sets are similarity 1.0 by convention.
func Jaccard[K comparable, V any](a, b map[K]V) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// GeneralizedJaccard computes Σ min(w_A, w_B) / Σ max(w_A, w_B) over the
// union of keys in two weighted multisets (spec §4.E, concrete scenario
// A={"a":3,"b":2,"c":1}, B={"a":2,"b":3,"d":1} -> 4/8 = 0.5).
func GeneralizedJaccard(a, b map[string]float64) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}

	var minSum, maxSum float64
	for k := range keys {
		wa, wb := a[k], b[k]
		if wa < wb {
			minSum += wa
			maxSum += wb
		} else {
			minSum += wb
			maxSum += wa
		}
	}
	if maxSum == 0 {
		return 1.0
	}
	return minSum / maxSum
}

// PrecisionRecall computes precision and recall of found against truth
// (label sets). When truth is empty, recall is 1.0. When both are empty,
// both are 1.0. When found is empty and truth is not, precision is 0 by
// convention (spec §4.E).
func PrecisionRecall(found, truth []types.Label) (precision, recall float64) {
	if len(found) == 0 && len(truth) == 0 {
		return 1.0, 1.0
	}
	if len(truth) == 0 {
		return boolToFloat(len(found) == 0), 1.0
	}

	truthSet := make(map[types.Label]struct{}, len(truth))
	for _, l := range truth {
		truthSet[l] = struct{}{}
	}

	if len(found) == 0 {
		return 0, 0
	}

	hits := 0
	for _, l := range found {
		if _, ok := truthSet[l]; ok {
			hits++
		}
	}
	precision = float64(hits) / float64(len(found))
	recall = float64(hits) / float64(len(truth))
	return precision, recall
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// FScore computes the harmonic mean of precision and recall, 0 when both
// are zero (spec §4.E).
func FScore(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// Mean is a thin wrapper over gonum's unweighted arithmetic mean.
func Mean(x []float64) float64 {
	return stat.Mean(x, nil)
}

// LaneAgreement estimates Jaccard similarity from two equal-length lane
// vectors as the fraction of lanes where they agree (spec §4.D's MinHash
// estimator), without requiring the owning sketch.Family. Lengths that
// differ return 0; callers that have the Sketch objects themselves should
// prefer sketch.Sketch.EstimateSimilarity, which also checks family
// compatibility.
func LaneAgreement(a, b []uint64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	agree := 0
	for i, v := range a {
		if v == b[i] {
			agree++
		}
	}
	return float64(agree) / float64(len(a))
}

// Quantile returns the p-quantile of x (p in [0,1]) with linear
// interpolation between ties, sorting a defensive copy since
// stat.Quantile requires ascending input.
func Quantile(p float64, x []float64) float64 {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}
