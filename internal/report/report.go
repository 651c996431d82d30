// Package report generates human- and machine-readable summaries of a
// similarity search run: the neighbor pairs an index query surfaced, the
// precision/recall estimate against any ground truth, and the LSH
// parameters the run used.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Confidence buckets a NeighborPair by its estimated similarity, the way a
// caller might want to triage a long result list.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// bucket assigns a Confidence from an estimated Jaccard similarity.
func bucket(similarity float64) Confidence {
	switch {
	case similarity >= 0.8:
		return ConfidenceHigh
	case similarity >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// NeighborPair is one candidate pair surfaced by an LSH query and confirmed
// (or not) by the component I similarity estimate.
type NeighborPair struct {
	Query      types.Label `json:"query"`
	Neighbor   types.Label `json:"neighbor"`
	Similarity float64     `json:"similarity"`
	Confidence Confidence  `json:"confidence"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Statistics summarizes one indexing-and-query run.
type Statistics struct {
	DocumentsIndexed int64         `json:"documents_indexed"`
	QueriesRun       int64         `json:"queries_run"`
	PairsFound       int64         `json:"pairs_found"`
	Duplicates       int64         `json:"duplicates"`
	Duration         time.Duration `json:"duration"`
	DocsPerSec       float64       `json:"docs_per_sec"`
	Precision        float64       `json:"precision,omitempty"`
	Recall           float64       `json:"recall,omitempty"`
}

// MarshalJSON renders Duration in its Go string form instead of nanoseconds.
func (s Statistics) MarshalJSON() ([]byte, error) {
	type Alias Statistics
	return json.Marshal(&struct {
		Alias
		Duration string `json:"duration"`
	}{
		Alias:    Alias(s),
		Duration: s.Duration.String(),
	})
}

// Report is a complete similarity search run: its parameters, its
// statistics, and every neighbor pair it found.
type Report struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`

	Bands     int     `json:"bands"`
	Rows      int     `json:"rows"`
	Threshold float64 `json:"threshold"`

	Statistics Statistics `json:"statistics"`

	Pairs []NeighborPair `json:"pairs"`

	ConfidenceCounts map[Confidence]int `json:"confidence_counts"`
}

// NewReport creates an empty report for an index configured with the given
// band/row/threshold parameters.
func NewReport(title string, bands, rows int, threshold float64) *Report {
	return &Report{
		Title:            title,
		Version:          "1.0",
		GeneratedAt:      time.Now(),
		Bands:            bands,
		Rows:             rows,
		Threshold:        threshold,
		Pairs:            make([]NeighborPair, 0),
		ConfidenceCounts: make(map[Confidence]int),
	}
}

// AddPair records a neighbor pair at the given similarity, classifying it
// into a confidence bucket.
func (r *Report) AddPair(query, neighbor types.Label, similarity float64) {
	p := NeighborPair{
		Query:      query,
		Neighbor:   neighbor,
		Similarity: similarity,
		Confidence: bucket(similarity),
		Timestamp:  time.Now(),
	}
	r.Pairs = append(r.Pairs, p)
	r.ConfidenceCounts[p.Confidence]++
	r.Statistics.PairsFound++
}

// SetStatistics overwrites the report's statistics, keeping PairsFound in
// sync with the pairs already recorded.
func (r *Report) SetStatistics(stats Statistics) {
	stats.PairsFound = int64(len(r.Pairs))
	r.Statistics = stats
}

// HighConfidenceCount returns the count of pairs bucketed ConfidenceHigh.
func (r *Report) HighConfidenceCount() int {
	return r.ConfidenceCounts[ConfidenceHigh]
}

// FilterByConfidence returns pairs with the given confidence bucket.
func (r *Report) FilterByConfidence(c Confidence) []NeighborPair {
	var filtered []NeighborPair
	for _, p := range r.Pairs {
		if p.Confidence == c {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterByQuery returns pairs whose Query label matches q.
func (r *Report) FilterByQuery(q types.Label) []NeighborPair {
	var filtered []NeighborPair
	for _, p := range r.Pairs {
		if p.Query == q {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Generator is the interface for report generators.
type Generator interface {
	Generate(report *Report, w io.Writer) error
	Extension() string
}

// Manager manages report generation across registered formats.
type Manager struct {
	generators map[string]Generator
	outputDir  string
}

// NewManager creates a new report manager rooted at outputDir.
func NewManager(outputDir string) *Manager {
	m := &Manager{
		generators: make(map[string]Generator),
		outputDir:  outputDir,
	}

	m.RegisterGenerator("json", &JSONGenerator{Indent: true})
	m.RegisterGenerator("html", NewHTMLGenerator())
	m.RegisterGenerator("bin", WireGenerator{})

	return m
}

// RegisterGenerator registers a generator under the given format name.
func (m *Manager) RegisterGenerator(format string, gen Generator) {
	m.generators[format] = gen
}

// GetGenerator returns a generator by format.
func (m *Manager) GetGenerator(format string) (Generator, bool) {
	gen, ok := m.generators[format]
	return gen, ok
}

// Generate writes a report in the given format to a timestamped file under
// the manager's output directory and returns its path.
func (m *Manager) Generate(report *Report, format string) (string, error) {
	gen, ok := m.generators[format]
	if !ok {
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("report_%s.%s", timestamp, gen.Extension())
	path := filepath.Join(m.outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := gen.Generate(report, f); err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	return path, nil
}

// GenerateAll generates reports in every registered format.
func (m *Manager) GenerateAll(report *Report) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for format, gen := range m.generators {
		ext := gen.Extension()
		if seen[ext] {
			continue
		}
		seen[ext] = true

		path, err := m.Generate(report, format)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// WriteToWriter generates a report in the given format directly to w.
func (m *Manager) WriteToWriter(report *Report, format string, w io.Writer) error {
	gen, ok := m.generators[format]
	if !ok {
		return fmt.Errorf("unknown report format: %s", format)
	}

	return gen.Generate(report, w)
}
