// Package config handles configuration loading and management for lshkit.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Config is the global configuration for an lshkit run: sketch
// construction parameters, the LSH band search, corpus ingestion, and
// output shaping (spec §6's "construction parameters for the user-facing
// pipeline").
type Config struct {
	Sketch  SketchConfig  `yaml:"sketch"`
	LSH     LSHConfig     `yaml:"lsh"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Analyze AnalyzeConfig `yaml:"analyze"`
	Output  OutputConfig  `yaml:"output"`
}

// SketchConfig controls shingling and MinHash/Weighted-MinHash construction.
type SketchConfig struct {
	K           int    `yaml:"k"`             // shingle length
	NSamples    int    `yaml:"n_samples"`     // sketch width N
	MinHashBits int    `yaml:"minhash_bits"`  // 32 or 64
	Seed        int64  `yaml:"seed"`          // permutation/WMH parameter seed
	Weighting   string `yaml:"weighting"`     // "present" or "absent"
	DNA         bool   `yaml:"dna"`           // DNA 2-bit shingling vs text
	Strict      bool   `yaml:"strict"`        // fail on non-ATCG vs skip
	CacheSize   int    `yaml:"cache_size"`    // internal/sketch: soft, evicting LRU capacity
	WMHRowCap   int    `yaml:"wmh_row_cap"`   // internal/wminhash: hard cap on distinct universe positions, 0 = unbounded
}

// LSHConfig controls the banded index and its parameter search.
type LSHConfig struct {
	Threshold         float64 `yaml:"threshold"`
	WeightFalsePos    float64 `yaml:"weight_false_positive"`
	WeightFalseNeg    float64 `yaml:"weight_false_negative"`
	Bands             int     `yaml:"bands"` // 0 means "optimize"
	Rows              int     `yaml:"rows"`  // 0 means "optimize"
	Dedup             bool    `yaml:"dedup"`
}

// CorpusConfig controls corpus ingestion.
type CorpusConfig struct {
	Paths        []string `yaml:"paths"`
	Format       string   `yaml:"format"` // text, fasta, fastq
	RatePerSec   float64  `yaml:"rate_per_sec"`
	Workers      int      `yaml:"workers"`
}

// AnalyzeConfig toggles the cheap fuzzy-hash pre-filters.
type AnalyzeConfig struct {
	EnableSimHash bool `yaml:"enable_simhash"`
	EnableTLSH    bool `yaml:"enable_tlsh"`
}

// OutputConfig controls result materialization.
type OutputConfig struct {
	Format     string `yaml:"format"` // json, html, bin
	OutputFile string `yaml:"output_file"`
	Verbose    bool   `yaml:"verbose"`
	EnableTUI  bool   `yaml:"enable_tui"`
	QuietMode  bool   `yaml:"quiet_mode"`
}

// WeightingMode parses SketchConfig.Weighting into the pkg/types enum that
// internal/pipeline uses to pick between internal/sketch (Present) and
// internal/wminhash (Absent). Validate rejects any other string, so this
// assumes a validated Config.
func (s SketchConfig) WeightingMode() types.Weighting {
	if s.Weighting == "absent" {
		return types.Absent
	}
	return types.Present
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sketch: SketchConfig{
			K:           12,
			NSamples:    128,
			MinHashBits: 64,
			Seed:        1,
			Weighting:   "present",
			CacheSize:   10000,
			WMHRowCap:   0, // unbounded (spec §7.5: cap is optional)
		},
		LSH: LSHConfig{
			Threshold:      0.7,
			WeightFalsePos: 0.5,
			WeightFalseNeg: 0.5,
			Dedup:          true,
		},
		Corpus: CorpusConfig{
			Format:     "text",
			RatePerSec: 0,
			Workers:    8,
		},
		Analyze: AnalyzeConfig{
			EnableSimHash: true,
			EnableTLSH:    false,
		},
		Output: OutputConfig{
			Format:    "json",
			EnableTUI: true,
		},
	}
}

// Load reads and parses a YAML configuration file, filling in defaults
// for anything the file doesn't set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the construction parameters against spec §7's
// InvalidConfiguration conditions.
func (c *Config) Validate() error {
	if c.Sketch.K < 1 {
		return lsherr.New(lsherr.InvalidConfiguration, "sketch.k must be >= 1, got %d", c.Sketch.K)
	}
	if c.Sketch.DNA && c.Sketch.K > 32 {
		return lsherr.New(lsherr.InvalidConfiguration, "dna shingle length must be <= 32, got %d", c.Sketch.K)
	}
	if c.Sketch.NSamples < 1 {
		return lsherr.New(lsherr.InvalidConfiguration, "sketch.n_samples must be >= 1, got %d", c.Sketch.NSamples)
	}
	if c.Sketch.MinHashBits != 32 && c.Sketch.MinHashBits != 64 {
		return lsherr.New(lsherr.InvalidConfiguration, "sketch.minhash_bits must be 32 or 64, got %d", c.Sketch.MinHashBits)
	}
	if c.Sketch.Weighting != "present" && c.Sketch.Weighting != "absent" {
		return lsherr.New(lsherr.InvalidConfiguration, "sketch.weighting must be \"present\" or \"absent\", got %q", c.Sketch.Weighting)
	}
	if c.Sketch.WMHRowCap < 0 {
		return lsherr.New(lsherr.InvalidConfiguration, "sketch.wmh_row_cap must be >= 0, got %d", c.Sketch.WMHRowCap)
	}
	if c.LSH.Threshold < 0 || c.LSH.Threshold > 1 {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh.threshold must be in [0,1], got %v", c.LSH.Threshold)
	}
	if c.LSH.WeightFalsePos < 0 || c.LSH.WeightFalseNeg < 0 {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh weights must be non-negative")
	}
	sum := c.LSH.WeightFalsePos + c.LSH.WeightFalseNeg
	if sum < 0.999999 || sum > 1.000001 {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh weights must sum to 1, got %v", sum)
	}
	if (c.LSH.Bands == 0) != (c.LSH.Rows == 0) {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh.bands and lsh.rows must both be set or both left at 0 (auto-optimize)")
	}
	if c.LSH.Bands > 0 && c.LSH.Bands*c.LSH.Rows > c.Sketch.NSamples {
		return lsherr.New(lsherr.InvalidConfiguration, "lsh.bands * lsh.rows (%d) exceeds sketch.n_samples (%d)",
			c.LSH.Bands*c.LSH.Rows, c.Sketch.NSamples)
	}
	return nil
}
