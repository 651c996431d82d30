package synth

import (
	"bytes"
	"testing"
)

func TestGenerate_ZeroRatePreservesContent(t *testing.T) {
	g := New(1, 0)
	content := []byte("the quick brown fox")
	out := g.Generate(content)
	if !bytes.Equal(out, content) {
		t.Errorf("zero mutation rate should preserve content: got %q, want %q", out, content)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	content := []byte("ACGTACGTACGTACGTACGT")
	g1 := New(7, 0.3, WithAlphabet([]byte("ATCG")))
	g2 := New(7, 0.3, WithAlphabet([]byte("ATCG")))

	out1 := g1.Generate(content)
	out2 := g2.Generate(content)
	if !bytes.Equal(out1, out2) {
		t.Errorf("same seed should produce identical mutations: %q != %q", out1, out2)
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	content := []byte("original content")
	original := append([]byte(nil), content...)

	g := New(3, 0.5)
	g.Generate(content)

	if !bytes.Equal(content, original) {
		t.Errorf("Generate must not mutate its input: %q != %q", content, original)
	}
}

func TestGeneratePairs_Count(t *testing.T) {
	g := New(5, 0.1)
	pairs := g.GeneratePairs([]byte("some sequence of tokens"), 5)
	if len(pairs) != 5 {
		t.Errorf("expected 5 pairs, got %d", len(pairs))
	}
}

func TestGenerate_SubstituteOnlyPreservesLength(t *testing.T) {
	g := New(1, 1.0, WithStrategy(Substitute))
	content := []byte("ACGTACGT")
	out := g.Generate(content)
	if len(out) != len(content) {
		t.Errorf("substitute-only strategy should preserve length: got %d, want %d", len(out), len(content))
	}
}
