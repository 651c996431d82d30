package analyzer

import (
	"strings"
	"testing"
)

func TestComputeTLSH(t *testing.T) {
	content := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5))

	hash, err := ComputeTLSH(content)
	if err != nil {
		t.Fatalf("ComputeTLSH failed: %v", err)
	}
	if hash == nil || hash.String() == "" {
		t.Error("expected non-empty hash")
	}
}

func TestComputeTLSH_TooSmall(t *testing.T) {
	if _, err := ComputeTLSH([]byte("too small")); err == nil {
		t.Error("expected error for content under minTLSHDataSize")
	}
}

func TestTLSHHash_IdenticalContent(t *testing.T) {
	content := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10))

	hash1, err := ComputeTLSH(content)
	if err != nil {
		t.Fatalf("ComputeTLSH hash1: %v", err)
	}
	hash2, err := ComputeTLSH(content)
	if err != nil {
		t.Fatalf("ComputeTLSH hash2: %v", err)
	}

	if d := hash1.Distance(hash2); d != 0 {
		t.Errorf("expected distance 0 for identical content, got %d", d)
	}
	if s := hash1.Similarity(hash2); s != 100.0 {
		t.Errorf("expected 100%% similarity, got %.2f%%", s)
	}
}

func TestTLSHHash_SimilarContent(t *testing.T) {
	content1 := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10))
	content2 := []byte(strings.Repeat("The quick brown cat jumps over the lazy dog. ", 10))

	hash1, err := ComputeTLSH(content1)
	if err != nil {
		t.Fatalf("ComputeTLSH hash1: %v", err)
	}
	hash2, err := ComputeTLSH(content2)
	if err != nil {
		t.Fatalf("ComputeTLSH hash2: %v", err)
	}

	distance := hash1.Distance(hash2)
	t.Logf("distance: %d, similarity: %.2f%%", distance, hash1.Similarity(hash2))
	if distance > 100 {
		t.Errorf("expected low distance for similar content, got %d", distance)
	}
}

func TestTLSHHash_DifferentContent(t *testing.T) {
	content1 := []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10))
	content2 := []byte(strings.Repeat("Lorem ipsum dolor sit amet consectetur adipiscing elit. ", 10))

	hash1, err := ComputeTLSH(content1)
	if err != nil {
		t.Fatalf("ComputeTLSH hash1: %v", err)
	}
	hash2, err := ComputeTLSH(content2)
	if err != nil {
		t.Fatalf("ComputeTLSH hash2: %v", err)
	}

	if distance := hash1.Distance(hash2); distance < 50 {
		t.Errorf("expected high distance for different content, got %d", distance)
	}
}

func TestTLSHHash_NilHandling(t *testing.T) {
	var nilHash *TLSHHash
	if nilHash.String() != "" {
		t.Error("expected empty string for nil hash")
	}

	content := []byte(strings.Repeat("Test content. ", 10))
	hash, err := ComputeTLSH(content)
	if err != nil {
		t.Fatalf("ComputeTLSH: %v", err)
	}

	if d := hash.Distance(nilHash); d != -1 {
		t.Errorf("expected -1 for nil comparison, got %d", d)
	}
	if s := hash.Similarity(nilHash); s != 0 {
		t.Errorf("expected 0%% similarity for nil, got %.2f%%", s)
	}
}

func BenchmarkComputeTLSH(b *testing.B) {
	content := []byte(strings.Repeat("Benchmark content for TLSH hash computation. ", 100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ComputeTLSH(content)
	}
}

func BenchmarkTLSHHash_Similarity(b *testing.B) {
	content1 := []byte(strings.Repeat("First content for comparison. ", 50))
	content2 := []byte(strings.Repeat("Second content for comparison. ", 50))

	hash1, _ := ComputeTLSH(content1)
	hash2, _ := ComputeTLSH(content2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hash1.Similarity(hash2)
	}
}
