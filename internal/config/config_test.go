package config

import (
	"path/filepath"
	"testing"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidate_RejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LSH.WeightFalsePos = 0.6
	cfg.LSH.WeightFalseNeg = 0.6
	if err := cfg.Validate(); !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration, got %v", err)
	}
}

func TestValidate_RejectsDNAKOver32(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sketch.DNA = true
	cfg.Sketch.K = 40
	if err := cfg.Validate(); !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration for dna k > 32, got %v", err)
	}
}

func TestValidate_RejectsBandsOverBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sketch.NSamples = 32
	cfg.LSH.Bands = 8
	cfg.LSH.Rows = 8
	if err := cfg.Validate(); !lsherr.Of(err, lsherr.InvalidConfiguration) {
		t.Errorf("expected InvalidConfiguration for bands*rows > n_samples, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sketch.Seed = 42
	cfg.Sketch.K = 16

	path := filepath.Join(t.TempDir(), "lshkit.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Sketch.Seed != 42 || loaded.Sketch.K != 16 {
		t.Errorf("round-tripped config mismatch: %+v", loaded.Sketch)
	}
}
