// Package sketch implements the MinHash sketch and its per-family cache
// (spec components D and E): a fixed-length vector of minima maintained
// under a shared permutation table, amortized across repeated elements via
// a bounded LRU.
package sketch

import (
	"github.com/fluxfuzzer/lshkit/internal/hashutil"
	"github.com/fluxfuzzer/lshkit/internal/lsherr"
	"github.com/fluxfuzzer/lshkit/internal/permute"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Family owns one permutation table and one element-vector cache, shared
// by every Sketch constructed from it. Two sketches are comparable only if
// their families have the same (seed, N, width) (spec §9's "owning family
// object" design note).
type Family struct {
	Seed  int64
	N     int
	Width types.Width

	table *permute.Table
	cache *lruCache
}

// DefaultCacheCapacity is the LRU size spec §4.D recommends.
const DefaultCacheCapacity = 10000

// NewFamily constructs a sketch family for (seed, N, width), with a cache
// of the given capacity (DefaultCacheCapacity if <= 0).
func NewFamily(seed int64, n int, width types.Width, cacheCapacity int) (*Family, error) {
	if n < 1 {
		return nil, lsherr.New(lsherr.InvalidConfiguration, "n_samples must be >= 1, got %d", n)
	}
	if width != types.B32 && width != types.B64 {
		return nil, lsherr.New(lsherr.InvalidConfiguration, "minhash_bits must be 32 or 64")
	}
	return &Family{
		Seed:  seed,
		N:     n,
		Width: width,
		table: permute.New(seed, n),
		cache: newLRUCache(cacheCapacity),
	}, nil
}

// sameFamily reports whether two families are the (seed, N, width) triple
// that makes their sketches comparable.
func sameFamily(a, b *Family) bool {
	return a.Seed == b.Seed && a.N == b.N && a.Width == b.Width
}

// vectorFor returns the cached permutation-applied vector for an element
// digest, computing and publishing it to the cache on a miss.
func (f *Family) vectorFor(h uint64) []uint64 {
	digest := hashutil.Digest61(h)
	if v, ok := f.cache.get(digest); ok {
		return v
	}

	mask := f.Width.Mask()
	v := make([]uint64, f.N)
	for i := 0; i < f.N; i++ {
		v[i] = f.table.Apply(i, digest) & mask
	}
	f.cache.put(digest, v)
	return v
}

// Sketch is a length-N vector of minima under Family's permutation table.
// Every lane starts at Width's mask and only ever decreases (spec §3's
// monotone invariant).
type Sketch struct {
	family *Family
	lanes  []uint64
}

// NewSketch returns a freshly initialized, empty sketch belonging to f.
func (f *Family) NewSketch() *Sketch {
	mask := f.Width.Mask()
	lanes := make([]uint64, f.N)
	for i := range lanes {
		lanes[i] = mask
	}
	return &Sketch{family: f, lanes: lanes}
}

// Lanes exposes the sketch's minima for serialization/band-key hashing.
// Callers must not mutate the returned slice.
func (s *Sketch) Lanes() []uint64 { return s.lanes }

// Family returns the owning family.
func (s *Sketch) Family() *Family { return s.family }

// Update folds one token's digest into every lane via the cache-backed
// permutation vector, taking the element-wise minimum (spec §4.D).
func (s *Sketch) Update(token []byte) {
	s.mergeDigest(hashutil.Bytes(token))
}

// UpdateDigest folds a pre-computed element digest, used by DNA shingling
// where the packed k-mer already is its own unique hash.
func (s *Sketch) UpdateDigest(h uint64) {
	s.mergeDigest(h)
}

func (s *Sketch) mergeDigest(h uint64) {
	vec := s.family.vectorFor(h)
	for i, v := range vec {
		if v < s.lanes[i] {
			s.lanes[i] = v
		}
	}
}

// UpdateMultiset applies Update to each distinct token once; per-token
// weights are ignored (spec §4.D's "update(multiset)").
func (s *Sketch) UpdateMultiset(set map[string]int) {
	for token := range set {
		s.Update([]byte(token))
	}
}

// UpdateDNASet applies UpdateDigest to each distinct DNA k-mer once, since
// the packed integer already is the element's digest.
func (s *Sketch) UpdateDNASet(set map[uint64]int) {
	for digest := range set {
		s.UpdateDigest(digest)
	}
}

// EstimateSimilarity returns the fraction of lanes where s and other agree,
// the MinHash estimator of Jaccard similarity (spec §4.D, §4.E). Returns a
// FamilyMismatch error if the two sketches were not built from the same
// (seed, N, width) family.
func (s *Sketch) EstimateSimilarity(other *Sketch) (float64, error) {
	if !sameFamily(s.family, other.family) {
		return 0, lsherr.New(lsherr.FamilyMismatch,
			"sketches from incompatible families: (%d,%d,%s) vs (%d,%d,%s)",
			s.family.Seed, s.family.N, s.family.Width,
			other.family.Seed, other.family.N, other.family.Width)
	}

	agree := 0
	for i, v := range s.lanes {
		if v == other.lanes[i] {
			agree++
		}
	}
	return float64(agree) / float64(len(s.lanes)), nil
}

// CacheLen reports the family's cache occupancy (diagnostics/tests only).
func (f *Family) CacheLen() int { return f.cache.len() }
