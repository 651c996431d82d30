// Package permute builds and holds the MinHash permutation table (spec
// component C): N parallel (a, b) pairs sampled once from a seeded PRNG and
// never mutated afterward.
package permute

import (
	"gonum.org/v1/gonum/mathext/prng"

	"github.com/fluxfuzzer/lshkit/internal/hashutil"
)

// Table holds N immutable (a, b) pairs over the 61-bit Mersenne field
// internal/hashutil.Prime61. Every sketch built from one sketch.Family
// shares that family's Table; tables built from the same (seed, N) are
// identical.
type Table struct {
	Seed int64
	N    int
	A    []uint64
	B    []uint64
}

// New seeds a 64-bit Mersenne-Twister-class PRNG and draws a[i] in
// [1, p-1], b[i] in [0, p-1] for i in [0, N). The PRNG itself is
// instantiated, used, and discarded entirely within this constructor (spec
// §5's "scoped resource discipline" -- seeds are values, not handles).
func New(seed int64, n int) *Table {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))

	p := hashutil.Prime61
	a := make([]uint64, n)
	b := make([]uint64, n)
	for i := 0; i < n; i++ {
		a[i] = uniform(mt, 1, p-1)
		b[i] = uniform(mt, 0, p-1)
	}

	return &Table{Seed: seed, N: n, A: a, B: b}
}

// uniform draws a value uniformly from [lo, hi] inclusive via rejection
// sampling against the generator's native 64-bit range, avoiding the
// modulo bias a plain "% span" would introduce.
func uniform(mt *prng.MT19937, lo, hi uint64) uint64 {
	span := hi - lo + 1
	if span == 0 {
		// span overflowed to 0 only when [lo, hi] covers the entire
		// uint64 range; any draw is uniform.
		return mt.Uint64()
	}
	limit := (^uint64(0) / span) * span
	for {
		v := mt.Uint64()
		if v < limit {
			return lo + v%span
		}
	}
}

// Apply computes ((a[i]*h + b[i]) mod p) for lane i given element digest h.
// Callers mask the result to the sketch's declared output width.
func (t *Table) Apply(i int, h uint64) uint64 {
	p := hashutil.Prime61
	// a[i], b[i] < p < 2^61 and h is reduced mod p by the caller, but the
	// product a*h can still exceed 64 bits, so mulMod reduces it step by
	// step without overflow.
	return addMod(mulMod(t.A[i], h, p), t.B[i], p)
}

// mulMod computes (a*b) mod m for a, b < 2^61 without overflowing 64 bits,
// using the standard double-and-add (Russian peasant) modular multiply.
func mulMod(a, b, m uint64) uint64 {
	var result uint64
	a %= m
	for b > 0 {
		if b&1 == 1 {
			result = addMod(result, a, m)
		}
		a = addMod(a, a, m)
		b >>= 1
	}
	return result
}

func addMod(a, b, m uint64) uint64 {
	a %= m
	b %= m
	if a >= m-b {
		return a - (m - b)
	}
	return a + b
}
