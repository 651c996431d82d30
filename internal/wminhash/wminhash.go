// Package wminhash implements Weighted MinHash via Improved Consistent
// Weighted Sampling (spec component F): each sample draws the universe
// position that minimizes a per-position, per-sample log-quantity, using a
// lazily materialized random-parameter matrix so memory stays proportional
// to positions actually seen rather than the full universe.
package wminhash

import (
	"math"
	"sync"

	"github.com/fluxfuzzer/lshkit/internal/hashutil"
	"github.com/fluxfuzzer/lshkit/internal/lsherr"

	"gonum.org/v1/gonum/stat/distuv"

	mrand "math/rand"
)

// row holds one universe position's N-sample CWS parameters:
// r, c ~ Gamma(2,1) i.i.d., beta ~ Uniform(0,1). ln_c is stored directly
// since every use of c is as ln(c).
type row struct {
	r, lnC, beta []float64
}

// Family owns the append-only universe-position-to-row map shared by every
// Sketch built from it. Rows are derived deterministically from (seed,
// position), not from discovery order, so two families with the same
// (seed, N) produce identical rows regardless of which sketch sees a given
// position first (spec §3's "identical across all sketches that share the
// same (seed, N, universe size)" invariant).
type Family struct {
	Seed int64
	N    int
	Cap  int // ResourceExhausted ceiling on distinct rows; 0 = unbounded

	mu       sync.Mutex
	rowIndex map[uint64]int
	rows     []row
}

// NewFamily constructs a Weighted MinHash family for (seed, N), optionally
// capping the number of distinct universe positions it will materialize
// rows for (0 means unbounded).
func NewFamily(seed int64, n int, cap int) (*Family, error) {
	if n < 1 {
		return nil, lsherr.New(lsherr.InvalidConfiguration, "n_samples must be >= 1, got %d", n)
	}
	return &Family{
		Seed:     seed,
		N:        n,
		Cap:      cap,
		rowIndex: make(map[uint64]int),
	}, nil
}

func sameFamily(a, b *Family) bool {
	return a.Seed == b.Seed && a.N == b.N
}

// rowFor returns the row for a universe position, materializing it on
// first sight. Concurrent first-writes for the same position serialize on
// the family mutex (spec §5); whichever goroutine wins the lock assigns
// the row index, the other observes it already present.
func (f *Family) rowFor(pos uint64) (*row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if idx, ok := f.rowIndex[pos]; ok {
		return &f.rows[idx], nil
	}
	if f.Cap > 0 && len(f.rows) >= f.Cap {
		return nil, lsherr.New(lsherr.ResourceExhausted,
			"weighted minhash universe exceeds configured cap of %d rows", f.Cap)
	}

	rw := f.generateRow(pos)
	f.rows = append(f.rows, rw)
	f.rowIndex[pos] = len(f.rows) - 1
	return &f.rows[len(f.rows)-1], nil
}

// generateRow draws N (r, ln_c, beta) triples for pos from a PRNG seeded
// purely as a function of (f.Seed, pos), so the row is independent of
// insertion order.
func (f *Family) generateRow(pos uint64) row {
	combined := hashutil.LaneSlice([]uint64{uint64(f.Seed), pos})
	src := mrand.New(mrand.NewSource(int64(combined)))

	gamma := distuv.Gamma{Alpha: 2, Beta: 1, Src: src}
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	rw := row{
		r:    make([]float64, f.N),
		lnC:  make([]float64, f.N),
		beta: make([]float64, f.N),
	}
	for i := 0; i < f.N; i++ {
		rw.r[i] = gamma.Rand()
		rw.lnC[i] = math.Log(gamma.Rand())
		rw.beta[i] = uniform.Rand()
	}
	return rw
}

// Sample is one (k*, t*) pair: the argmin universe position and its CWS
// quantized exponent for a single sketch lane.
type Sample struct {
	K     uint64
	T     int64
	touch bool
}

// Sketch is N independent CWS samples over a weighted multiset (spec §3's
// "weighted sketch sample").
type Sketch struct {
	family  *Family
	samples []Sample
	lnA     []float64
}

// NewSketch returns a freshly initialized, empty sketch belonging to f.
func (f *Family) NewSketch() *Sketch {
	return &Sketch{
		family:  f,
		samples: make([]Sample, f.N),
		lnA:     make([]float64, f.N),
	}
}

// Family returns the owning family.
func (s *Sketch) Family() *Family { return s.family }

// Samples exposes the sketch's (k*, t*) pairs. Callers must not mutate.
func (s *Sketch) Samples() []Sample { return s.samples }

// Update runs ICWS over a weighted multiset keyed by arbitrary token bytes.
// Zero and negative weights are excluded from sampling; an all-zero weight
// vector is an EmptyInput error (spec §4.F, §7).
func (s *Sketch) Update(weights map[string]float64) error {
	positioned := make(map[uint64]float64, len(weights))
	for token, w := range weights {
		if w <= 0 {
			continue
		}
		positioned[hashutil.Bytes([]byte(token))] = w
	}
	return s.updatePositions(positioned)
}

// UpdateDNA runs ICWS over a weighted multiset of packed DNA k-mers, where
// the packed integer is already the element's unique universe position.
func (s *Sketch) UpdateDNA(weights map[uint64]int) error {
	positioned := make(map[uint64]float64, len(weights))
	for pos, w := range weights {
		if w <= 0 {
			continue
		}
		positioned[pos] = float64(w)
	}
	return s.updatePositions(positioned)
}

func (s *Sketch) updatePositions(positioned map[uint64]float64) error {
	if len(positioned) == 0 {
		return lsherr.New(lsherr.EmptyInput, "weighted minhash update requires at least one positive weight")
	}

	for pos, w := range positioned {
		rw, err := s.family.rowFor(pos)
		if err != nil {
			return err
		}
		lnW := math.Log(w)
		for i := 0; i < s.family.N; i++ {
			t := math.Floor(lnW/rw.r[i] + rw.beta[i])
			lnY := (t - rw.beta[i]) * rw.r[i]
			lnA := rw.lnC[i] - lnY - rw.r[i]

			if !s.samples[i].touch || lnA < s.lnA[i] {
				s.lnA[i] = lnA
				s.samples[i] = Sample{K: pos, T: int64(t), touch: true}
			}
		}
	}
	return nil
}

// EstimateSimilarity returns the fraction of samples where s and other
// agree on (k*, t*), the CWS estimator of generalized Jaccard similarity
// (spec §4.F). Returns FamilyMismatch if the two sketches are not from the
// same (seed, N) family.
func (s *Sketch) EstimateSimilarity(other *Sketch) (float64, error) {
	if !sameFamily(s.family, other.family) {
		return 0, lsherr.New(lsherr.FamilyMismatch,
			"weighted minhash sketches from incompatible families: (%d,%d) vs (%d,%d)",
			s.family.Seed, s.family.N, other.family.Seed, other.family.N)
	}

	agree := 0
	for i, a := range s.samples {
		b := other.samples[i]
		if a.touch && b.touch && a.K == b.K && a.T == b.T {
			agree++
		}
	}
	return float64(agree) / float64(len(s.samples)), nil
}

// Lanes returns a banded-LSH-ready lane vector, one per sample: each lane
// combines a sample's (k*, t*) pair into a single uint64 so that two
// sketches agree on a lane exactly when EstimateSimilarity would count
// that sample as agreeing, letting internal/lshindex band weighted
// sketches the same way it bands plain MinHash sketches. An untouched
// sample (no weights ever updated) lanes to 0.
func (s *Sketch) Lanes() []uint64 {
	lanes := make([]uint64, len(s.samples))
	for i, sample := range s.samples {
		if !sample.touch {
			continue
		}
		lanes[i] = hashutil.LaneSlice([]uint64{sample.K, uint64(sample.T)})
	}
	return lanes
}

// RowCount reports the family's materialized universe size (diagnostics/tests only).
func (f *Family) RowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}
