package analyzer

import (
	"strings"
	"testing"
)

func TestSimHasher_Compute(t *testing.T) {
	hasher := NewSimHasher()

	content1 := "The quick brown fox jumps over the lazy dog"
	content2 := "The quick brown fox jumps over the lazy dog"

	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)

	if hash1 != hash2 {
		t.Errorf("Identical content should produce identical hash: %v != %v", hash1, hash2)
	}
}

func TestSimHasher_SimilarContent(t *testing.T) {
	hasher := NewSimHasher()

	content1 := "The quick brown fox jumps over the lazy dog"
	content2 := "The quick brown fox leaps over the lazy dog"

	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)

	distance := hash1.Distance(hash2)
	if distance > 20 {
		t.Errorf("Similar content should have low distance, got %d", distance)
	}
}

func TestSimHasher_DifferentContent(t *testing.T) {
	hasher := NewSimHasher()

	content1 := "The quick brown fox jumps over the lazy dog"
	content2 := "Lorem ipsum dolor sit amet consectetur adipiscing elit"

	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)

	distance := hash1.Distance(hash2)
	if distance < 10 {
		t.Errorf("Different content should have high distance, got %d", distance)
	}
}

func TestSimHash_Distance(t *testing.T) {
	tests := []struct {
		name     string
		hash1    SimHash
		hash2    SimHash
		expected int
	}{
		{"identical", 0xFFFF, 0xFFFF, 0},
		{"one bit", 0xFFFE, 0xFFFF, 1},
		{"four bits", 0xFFF0, 0xFFFF, 4},
		{"all different", 0x0000, 0xFFFF, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance := tt.hash1.Distance(tt.hash2)
			if distance != tt.expected {
				t.Errorf("Expected distance %d, got %d", tt.expected, distance)
			}
		})
	}
}

func TestSimHash_Similarity(t *testing.T) {
	var hash1 SimHash = 0xFFFFFFFFFFFFFFFF
	var hash2 SimHash = 0xFFFFFFFFFFFFFFFF

	similarity := hash1.Similarity(hash2)
	if similarity != 100.0 {
		t.Errorf("Expected 100%% similarity, got %.2f%%", similarity)
	}

	hash3 := SimHash(0)
	similarity = hash1.Similarity(hash3)
	if similarity != 0.0 {
		t.Errorf("Expected 0%% similarity, got %.2f%%", similarity)
	}
}

func TestSimHash_IsSimilar(t *testing.T) {
	var hash1 SimHash = 0xFFFFFFFFFFFFFFFF
	var hash2 SimHash = 0xFFFFFFFFFFFFFFF0 // 4 bits different

	if !hash1.IsSimilar(hash2, 5) {
		t.Error("Expected hashes to be similar with threshold 5")
	}
	if hash1.IsSimilar(hash2, 3) {
		t.Error("Expected hashes to NOT be similar with threshold 3")
	}
}

func TestSimHasher_StripMarkup(t *testing.T) {
	hasher := NewSimHasher(WithStripMarkup(true))

	content1 := "<p>Hello World</p>"
	content2 := "Hello World"

	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)

	if hash1 != hash2 {
		t.Errorf("Markup-stripped content should match its plain-text equivalent: distance=%d", hash1.Distance(hash2))
	}
}

func TestSimHasher_IgnorePatterns(t *testing.T) {
	hasher := NewSimHasher()

	content1 := "Document captured at 2024-01-30 12:34:56"
	content2 := "Document captured at 2024-02-15 09:00:00"

	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)

	distance := hash1.Distance(hash2)
	if distance > 10 {
		t.Errorf("Content with only timestamp difference should be similar, distance=%d", distance)
	}
}

func TestSimHasher_Options(t *testing.T) {
	hasher := NewSimHasher(WithCaseSensitive(true))

	content1 := "Hello World"
	content2 := "hello world"

	hash1 := hasher.Compute(content1)
	hash2 := hasher.Compute(content2)

	if hash1 == hash2 {
		t.Error("Case sensitive hasher should produce different hashes for different cases")
	}

	hasher2 := NewSimHasher(WithCaseSensitive(false))
	hash3 := hasher2.Compute(content1)
	hash4 := hasher2.Compute(content2)

	if hash3 != hash4 {
		t.Error("Case insensitive hasher should produce same hash for different cases")
	}
}

func TestSimHasher_NGramSize(t *testing.T) {
	hasher1 := NewSimHasher(WithNGramSize(2))
	hasher2 := NewSimHasher(WithNGramSize(5))

	content := "the quick brown fox jumps over the lazy dog"

	hash1 := hasher1.Compute(content)
	hash2 := hasher2.Compute(content)

	if hash1 == hash2 {
		t.Error("Different n-gram sizes should produce different hashes")
	}
}

func BenchmarkSimHasher_Compute(b *testing.B) {
	hasher := NewSimHasher()
	content := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hasher.Compute(content)
	}
}

func BenchmarkSimHash_Distance(b *testing.B) {
	var hash1 SimHash = 0xABCDEF0123456789
	var hash2 SimHash = 0x123456789ABCDEF0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hash1.Distance(hash2)
	}
}
