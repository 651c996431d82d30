// Package analyzer provides fast fuzzy-hash pre-filters (SimHash, TLSH)
// for triaging candidate near-duplicate document pairs before the heavier
// MinHash/Weighted-MinHash estimate in internal/sketch runs over them.
// Neither hash here replaces estimate_jaccard; both are cheap, lossy
// screens a pipeline can use to skip obviously unrelated pairs.
package analyzer

import (
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"
)

// SimHashBits is the number of bits in the SimHash.
const SimHashBits = 64

// SimHash is a locality-sensitive fingerprint over a document's token
// n-grams; near-duplicate documents land within a small Hamming distance.
type SimHash uint64

// SimHasher computes SimHash values for document comparison.
type SimHasher struct {
	nGramSize      int
	caseSensitive  bool
	stripMarkup    bool
	ignoreNumbers  bool
	ignorePatterns []*regexp.Regexp
}

// SimHasherOption is a functional option for SimHasher configuration.
type SimHasherOption func(*SimHasher)

// WithNGramSize sets the n-gram size for tokenization.
func WithNGramSize(n int) SimHasherOption {
	return func(s *SimHasher) {
		if n > 0 {
			s.nGramSize = n
		}
	}
}

// WithCaseSensitive enables case-sensitive comparison.
func WithCaseSensitive(enabled bool) SimHasherOption {
	return func(s *SimHasher) {
		s.caseSensitive = enabled
	}
}

// WithStripMarkup strips HTML/XML tags before tokenizing, for corpora
// mixing scraped web pages in with plain text.
func WithStripMarkup(enabled bool) SimHasherOption {
	return func(s *SimHasher) {
		s.stripMarkup = enabled
	}
}

// WithIgnoreNumbers enables ignoring numeric values.
func WithIgnoreNumbers(enabled bool) SimHasherOption {
	return func(s *SimHasher) {
		s.ignoreNumbers = enabled
	}
}

// WithIgnorePatterns adds regex patterns to ignore during comparison.
func WithIgnorePatterns(patterns []string) SimHasherOption {
	return func(s *SimHasher) {
		for _, p := range patterns {
			if re, err := regexp.Compile(p); err == nil {
				s.ignorePatterns = append(s.ignorePatterns, re)
			}
		}
	}
}

// NewSimHasher creates a new SimHasher with the given options.
func NewSimHasher(opts ...SimHasherOption) *SimHasher {
	s := &SimHasher{
		nGramSize:     3,
		caseSensitive: false,
	}

	// Dates and content hashes are boilerplate that shouldn't count
	// toward document identity.
	defaultPatterns := []string{
		`\d{4}-\d{2}-\d{2}`,
		`\d{2}:\d{2}:\d{2}`,
		`[a-f0-9]{32}`,
		`[a-f0-9]{40}`,
		`[a-f0-9]{64}`,
	}
	for _, p := range defaultPatterns {
		if re, err := regexp.Compile(p); err == nil {
			s.ignorePatterns = append(s.ignorePatterns, re)
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Compute calculates the SimHash of the given document content.
func (s *SimHasher) Compute(content string) SimHash {
	processed := s.preprocess(content)
	features := s.extractFeatures(processed)
	if len(features) == 0 {
		return 0
	}
	return computeSimHash(features)
}

func (s *SimHasher) preprocess(content string) string {
	result := content

	if s.stripMarkup {
		result = stripMarkupTags(result)
	}
	for _, re := range s.ignorePatterns {
		result = re.ReplaceAllString(result, " ")
	}
	result = normalizeWhitespace(result)
	if !s.caseSensitive {
		result = strings.ToLower(result)
	}
	if s.ignoreNumbers {
		result = removeNumbers(result)
	}
	return result
}

// extractFeatures extracts n-gram features from the content.
func (s *SimHasher) extractFeatures(content string) []string {
	words := strings.Fields(content)
	if len(words) == 0 {
		return nil
	}
	if len(words) < s.nGramSize {
		return words
	}

	features := make([]string, 0, len(words)-s.nGramSize+1)
	for i := 0; i <= len(words)-s.nGramSize; i++ {
		features = append(features, strings.Join(words[i:i+s.nGramSize], " "))
	}
	return features
}

// computeSimHash computes the SimHash from a list of features.
func computeSimHash(features []string) SimHash {
	var vector [SimHashBits]int

	for _, feature := range features {
		hash := hashFeature(feature)
		for i := 0; i < SimHashBits; i++ {
			if hash&(1<<i) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var simhash SimHash
	for i := 0; i < SimHashBits; i++ {
		if vector[i] > 0 {
			simhash |= 1 << i
		}
	}
	return simhash
}

func hashFeature(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Distance calculates the Hamming distance between two SimHash values.
// The result ranges from 0 (identical) to 64 (completely different).
func (h SimHash) Distance(other SimHash) int {
	diff := h ^ other
	count := 0
	for diff != 0 {
		count++
		diff &= diff - 1
	}
	return count
}

// Similarity returns the similarity percentage (0-100).
func (h SimHash) Similarity(other SimHash) float64 {
	distance := h.Distance(other)
	return (1.0 - float64(distance)/float64(SimHashBits)) * 100.0
}

// IsSimilar reports whether two SimHash values are within threshold bits
// of each other. A typical threshold is 3-10.
func (h SimHash) IsSimilar(other SimHash, threshold int) bool {
	return h.Distance(other) <= threshold
}

func stripMarkupTags(content string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	return re.ReplaceAllString(content, " ")
}

func normalizeWhitespace(content string) string {
	re := regexp.MustCompile(`\s+`)
	return strings.TrimSpace(re.ReplaceAllString(content, " "))
}

func removeNumbers(content string) string {
	var result strings.Builder
	result.Grow(len(content))
	for _, r := range content {
		if !unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// CompareContent compares two document contents and returns their SimHash
// Hamming distance (0 = identical under the n-gram featurization).
func CompareContent(content1, content2 string) int {
	hasher := NewSimHasher()
	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)
	return hash1.Distance(hash2)
}
