// Package hashutil provides the stable, non-cryptographic byte-hash
// primitives every other lshkit component builds on (spec component A).
package hashutil

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Prime61 is the Mersenne prime 2^61 - 1 that the MinHash universal hash
// family and the sketch cache operate over.
const Prime61 uint64 = (1 << 61) - 1

// Prime31 is the 2^31 - 1 Mersenne prime used for the 32-bit digest form.
const Prime31 uint64 = (1 << 31) - 1

// Bytes maps an arbitrary byte slice to a 64-bit digest. xxhash has no
// per-process salt, so the digest is stable across runs and processes,
// which band keys in internal/lshindex require.
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// String is the string-keyed counterpart of Bytes, avoiding a copy.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Uint64 hashes the little-endian byte representation of an integer, per
// spec §4.A ("For integer inputs, hash the raw little-endian bytes").
func Uint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// Digest31 folds a 64-bit digest into the 31-bit Mersenne field.
func Digest31(h uint64) uint64 {
	return h % Prime31
}

// Digest61 folds a 64-bit digest into the 61-bit Mersenne field used by the
// MinHash universal hash family.
func Digest61(h uint64) uint64 {
	return h % Prime61
}

// Digester accumulates a sequence of 64-bit lanes (e.g. a band's row slice)
// into one digest, used by internal/lshindex for band keys.
type Digester struct {
	d *xxhash.Digest
}

// NewDigester returns a fresh, empty Digester.
func NewDigester() *Digester {
	return &Digester{d: xxhash.New()}
}

// WriteUint64 appends a lane to the digest in little-endian order.
func (g *Digester) WriteUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = g.d.Write(buf[:])
}

// Sum64 returns the accumulated digest.
func (g *Digester) Sum64() uint64 {
	return g.d.Sum64()
}

// Reset clears the digester for reuse.
func (g *Digester) Reset() {
	g.d.Reset()
}

// LaneSlice hashes a contiguous slice of sketch lanes into one 64-bit band
// key in a single call, used by internal/lshindex.
func LaneSlice(lanes []uint64) uint64 {
	d := NewDigester()
	for _, v := range lanes {
		d.WriteUint64(v)
	}
	return d.Sum64()
}
