package sketch

import (
	"testing"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

func mustFamily(t *testing.T, seed int64, n int) *Family {
	t.Helper()
	f, err := NewFamily(seed, n, types.B64, 0)
	if err != nil {
		t.Fatalf("NewFamily: %v", err)
	}
	return f
}

func TestSketch_DeterministicForSameSeed(t *testing.T) {
	f1 := mustFamily(t, 1, 128)
	f2 := mustFamily(t, 1, 128)

	s1 := f1.NewSketch()
	s2 := f2.NewSketch()

	for _, tok := range []string{"alpha", "beta", "gamma"} {
		s1.Update([]byte(tok))
		s2.Update([]byte(tok))
	}

	for i := range s1.Lanes() {
		if s1.Lanes()[i] != s2.Lanes()[i] {
			t.Fatalf("lane %d diverged between identical (seed, N) families: %d != %d",
				i, s1.Lanes()[i], s2.Lanes()[i])
		}
	}
}

func TestSketch_CommutativeAndIdempotent(t *testing.T) {
	f := mustFamily(t, 3, 64)

	tokens := []string{"read1", "read2", "read3", "read1"}
	reordered := []string{"read3", "read1", "read2", "read1", "read1"}

	s1 := f.NewSketch()
	for _, tok := range tokens {
		s1.Update([]byte(tok))
	}

	s2 := f.NewSketch()
	for _, tok := range reordered {
		s2.Update([]byte(tok))
	}

	sim, err := s1.EstimateSimilarity(s2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 1.0 {
		t.Errorf("expected identical sketches from reordered/duplicated tokens, similarity=%v", sim)
	}
}

func TestSketch_EstimateSimilarity_FamilyMismatch(t *testing.T) {
	f1 := mustFamily(t, 1, 128)
	f2 := mustFamily(t, 2, 128)

	s1 := f1.NewSketch()
	s2 := f2.NewSketch()

	_, err := s1.EstimateSimilarity(s2)
	if !lsherr.Of(err, lsherr.FamilyMismatch) {
		t.Errorf("expected FamilyMismatch, got %v", err)
	}
}

func TestSketch_IdenticalSetsEstimateOne(t *testing.T) {
	f := mustFamily(t, 42, 256)

	s1 := f.NewSketch()
	s2 := f.NewSketch()

	set := map[string]int{"x": 1, "y": 2, "z": 1}
	s1.UpdateMultiset(set)
	s2.UpdateMultiset(set)

	sim, err := s1.EstimateSimilarity(s2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 1.0 {
		t.Errorf("identical multisets should estimate similarity 1.0, got %v", sim)
	}
}

func TestSketch_ConvergesToJaccard(t *testing.T) {
	f := mustFamily(t, 7, 256)

	a := map[string]int{}
	b := map[string]int{}
	for i := 0; i < 80; i++ {
		key := string(rune('a' + i%26))
		a[key+string(rune(i))] = 1
		if i < 40 {
			b[key+string(rune(i))] = 1
		}
	}
	// shared set: first 40 of a's 80 elements also appear in b => jaccard = 40/80 = 0.5
	sa := f.NewSketch()
	sb := f.NewSketch()
	sa.UpdateMultiset(a)
	sb.UpdateMultiset(b)

	sim, err := sa.EstimateSimilarity(sb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim < 0.3 || sim > 0.7 {
		t.Errorf("estimate_jaccard should approximate true jaccard 0.5, got %v", sim)
	}
}

func TestFamily_InvalidConfiguration(t *testing.T) {
	if _, err := NewFamily(1, 0, types.B64, 0); !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration for n=0, got %v", err)
	}
}

func TestFamily_CachePopulatesOnUse(t *testing.T) {
	f := mustFamily(t, 9, 32)
	s := f.NewSketch()
	s.Update([]byte("only-element"))
	if f.CacheLen() != 1 {
		t.Errorf("expected 1 cache entry after one distinct update, got %d", f.CacheLen())
	}
	s.Update([]byte("only-element"))
	if f.CacheLen() != 1 {
		t.Errorf("repeated update of the same element should not grow the cache, got %d", f.CacheLen())
	}
}
