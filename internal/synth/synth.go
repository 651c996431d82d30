// Package synth generates synthetic near-duplicates of a document: point
// substitutions and single-character indels at a configurable rate, used
// by tests and by the bench CLI to produce known-similar pairs for
// measuring precision/recall against ground truth.
package synth

import "math/rand"

// Strategy selects which mutation operators Generate applies.
type Strategy int

const (
	// Substitute replaces characters in place.
	Substitute Strategy = iota
	// Indel inserts or deletes single characters.
	Indel
	// Both applies substitutions and indels in the same pass.
	Both
)

// Generator produces near-duplicate variants of a document at a fixed
// mutation rate and alphabet.
type Generator struct {
	rate     float64
	strategy Strategy
	alphabet []byte
	rng      *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithStrategy selects which operators Generate applies.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) { g.strategy = s }
}

// WithAlphabet restricts substitutions/insertions to the given byte set,
// e.g. []byte("ATCG") for DNA corpora.
func WithAlphabet(alphabet []byte) Option {
	return func(g *Generator) {
		if len(alphabet) > 0 {
			g.alphabet = alphabet
		}
	}
}

// defaultAlphabet covers ASCII letters, digits and space for plain-text
// corpora.
var defaultAlphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 ")

// New constructs a Generator with the given per-character mutation rate
// (0..1) and seed.
func New(seed int64, rate float64, opts ...Option) *Generator {
	g := &Generator{
		rate:     rate,
		strategy: Both,
		alphabet: defaultAlphabet,
		rng:      rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a mutated copy of content. The original is never
// modified.
func (g *Generator) Generate(content []byte) []byte {
	out := make([]byte, 0, len(content))

	for _, b := range content {
		if g.rng.Float64() >= g.rate {
			out = append(out, b)
			continue
		}

		switch g.strategy {
		case Substitute:
			out = append(out, g.randomByte())
		case Indel:
			out = append(out, g.indel(b)...)
		case Both:
			if g.rng.Intn(2) == 0 {
				out = append(out, g.randomByte())
			} else {
				out = append(out, g.indel(b)...)
			}
		}
	}
	return out
}

// indel either drops b (deletion) or keeps b and inserts a random
// character after it (insertion), chosen with equal probability.
func (g *Generator) indel(b byte) []byte {
	if g.rng.Intn(2) == 0 {
		return nil
	}
	return []byte{b, g.randomByte()}
}

func (g *Generator) randomByte() byte {
	return g.alphabet[g.rng.Intn(len(g.alphabet))]
}

// GeneratePairs returns n mutated variants of content, each independently
// drawn from the Generator's mutation process. No labels are attached;
// callers assign their own.
func (g *Generator) GeneratePairs(content []byte, n int) [][]byte {
	pairs := make([][]byte, n)
	for i := 0; i < n; i++ {
		pairs[i] = g.Generate(content)
	}
	return pairs
}
