// TLSH (Trend Micro Locality Sensitive Hash) integration: a second,
// independent fuzzy-hash pre-filter alongside SimHash, better suited to
// longer documents since its similarity digest is built from a sliding
// window over the whole byte stream rather than word n-grams.
package analyzer

import (
	"errors"

	"github.com/glaslos/tlsh"
)

// minTLSHDataSize is the minimum content size TLSH needs for a meaningful
// digest.
const minTLSHDataSize = 50

// maxTLSHDistance is the rough ceiling of a raw TLSH distance, used to
// normalize it to a 0-100 similarity percentage.
const maxTLSHDistance = 300.0

// TLSHHash is a TLSH fuzzy-hash digest over a document's byte stream.
type TLSHHash struct {
	hash *tlsh.TLSH
	raw  string
}

// ComputeTLSH computes the TLSH hash for content, erroring if content is
// too small for a meaningful digest.
func ComputeTLSH(content []byte) (*TLSHHash, error) {
	if len(content) < minTLSHDataSize {
		return nil, errors.New("content too small for TLSH computation")
	}

	hash, err := tlsh.HashBytes(content)
	if err != nil {
		return nil, err
	}
	return &TLSHHash{hash: hash, raw: hash.String()}, nil
}

// String returns the hash's string representation.
func (h *TLSHHash) String() string {
	if h == nil || h.hash == nil {
		return ""
	}
	return h.raw
}

// Distance returns the TLSH distance between two hashes (0 = identical,
// higher = more different). Returns -1 if either hash is nil.
func (h *TLSHHash) Distance(other *TLSHHash) int {
	if h == nil || other == nil || h.hash == nil || other.hash == nil {
		return -1
	}
	return h.hash.Diff(other.hash)
}

// Similarity returns the similarity percentage between two hashes (100 =
// identical, 0 = completely different), normalizing TLSH's distance
// (typically 0-300+) to a percentage.
func (h *TLSHHash) Similarity(other *TLSHHash) float64 {
	distance := h.Distance(other)
	if distance < 0 {
		return 0
	}
	similarity := (1.0 - float64(distance)/maxTLSHDistance) * 100.0
	if similarity < 0 {
		return 0
	}
	return similarity
}
