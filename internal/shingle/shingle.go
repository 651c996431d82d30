// Package shingle tokenizes a sequence into the multiset a sketch consumes
// (spec component B): ordinary k-shingles for text, 2-bit-packed k-mers for
// DNA.
package shingle

import (
	"github.com/fluxfuzzer/lshkit/internal/lsherr"
)

// MaxDNAK is the largest DNA shingle length whose 2-bit packing still fits
// in a uint64 (spec §3: "For k <= 32, the packed value fits in 64 bits").
const MaxDNAK = 32

// Text produces the multiset of distinct contiguous length-k byte
// sub-slices of s, mapped to their occurrence count. When k >= len(s) the
// result is {string(s): 1}. Sub-slices are converted to string map keys (a
// copy per distinct shingle, not per occurrence) rather than kept as
// borrowed []byte views, since Go map keys must be comparable values.
func Text(s []byte, k int) (map[string]int, error) {
	if k < 1 {
		return nil, lsherr.New(lsherr.InvalidConfiguration, "shingle length must be >= 1, got %d", k)
	}
	out := make(map[string]int)
	if len(s) == 0 {
		return out, nil
	}
	if k >= len(s) {
		out[string(s)] = 1
		return out, nil
	}
	for i := 0; i+k <= len(s); i++ {
		out[string(s[i:i+k])]++
	}
	return out, nil
}

// base maps an ASCII nucleotide byte to its 2-bit code, or -1 if it is not
// one of A, T, C, G.
func base(c byte) int {
	switch c {
	case 'A', 'a':
		return 0b00
	case 'T', 't':
		return 0b01
	case 'C', 'c':
		return 0b10
	case 'G', 'g':
		return 0b11
	default:
		return -1
	}
}

var baseChar = [4]byte{'A', 'T', 'C', 'G'}

// EncodeDNA packs a length-k (k <= MaxDNAK) nucleotide string into a single
// 2*k-bit integer, high bit first: the first base occupies the most
// significant pair of bits. Returns a MalformedInput error if s contains a
// non-ATCG character.
func EncodeDNA(s []byte) (uint64, error) {
	if len(s) > MaxDNAK {
		return 0, lsherr.New(lsherr.InvalidConfiguration, "DNA shingle length %d exceeds max %d", len(s), MaxDNAK)
	}
	var v uint64
	for _, c := range s {
		b := base(c)
		if b < 0 {
			return 0, lsherr.New(lsherr.MalformedInput, "non-ATCG character %q in strict DNA shingle", c)
		}
		v = (v << 2) | uint64(b)
	}
	return v, nil
}

// DecodeDNA unpacks a k-length encoded value back into its nucleotide
// string. The round-trip decode(encode(s)) == s holds for strings of
// length exactly k (spec §8); behavior for encodings produced from shorter
// strings is implementation-defined, per the open question in spec §9 --
// here a short input is treated as having been left-padded with zero bits
// (i.e. leading 'A's), since the packed value alone does not record length.
func DecodeDNA(v uint64, k int) []byte {
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = baseChar[v&0b11]
		v >>= 2
	}
	return out
}

// DNAShingleSet is the multiset output of DNA shingling: encoded k-mer to
// occurrence count.
type DNAShingleSet map[uint64]int

// DNA produces the multiset of length-k DNA shingles of s, encoded per
// EncodeDNA. When strict is true, a non-ATCG character anywhere in s
// returns a MalformedInput error; when false, any window containing a
// non-ATCG character is silently skipped without advancing past it (spec
// §4.B, §9 open question on strictness).
func DNA(s []byte, k int, strict bool) (DNAShingleSet, error) {
	if k < 1 || k > MaxDNAK {
		return nil, lsherr.New(lsherr.InvalidConfiguration, "DNA shingle length must be in [1, %d], got %d", MaxDNAK, k)
	}
	out := make(DNAShingleSet)
	if len(s) < k {
		return out, nil
	}
	for i := 0; i+k <= len(s); i++ {
		window := s[i : i+k]
		v, err := EncodeDNA(window)
		if err != nil {
			if strict {
				return nil, err
			}
			continue
		}
		out[v]++
	}
	return out, nil
}

// Weighted returns the set as a shingle-to-occurrence-count map, counts
// kept -- the input of the weighted MinHash path used for Absent weighting
// (pkg/types.Weighting).
func (d DNAShingleSet) Weighted() map[uint64]int {
	return map[uint64]int(d)
}

// Keys returns the distinct encoded shingles, ignoring multiplicity.
func (d DNAShingleSet) Keys() []uint64 {
	keys := make([]uint64, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return keys
}
