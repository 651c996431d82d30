package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Stats holds running counters for one indexing-and-query session.
type Stats struct {
	mu sync.RWMutex

	DocumentsSketched int64
	InsertCount       int64
	QueryCount        int64

	StartTime    time.Time
	LastDocTime  time.Time
	SketchTotal  time.Duration
	SketchMin    time.Duration
	SketchMax    time.Duration

	PairsFound       int64
	HighConfidence   int64
	MediumConfidence int64
	LowConfidence    int64

	CurrentProgress  float64
	TotalDocuments   int64
	CompletedDocs    int64
}

// NewStats creates a new Stats instance.
func NewStats() *Stats {
	return &Stats{
		StartTime: time.Now(),
		SketchMin: time.Hour,
	}
}

// RecordSketch records one document's sketch-build time.
func (s *Stats) RecordSketch(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DocumentsSketched++
	s.LastDocTime = time.Now()
	s.SketchTotal += d

	if d < s.SketchMin {
		s.SketchMin = d
	}
	if d > s.SketchMax {
		s.SketchMax = d
	}
}

// RecordInsert records a successful index insert.
func (s *Stats) RecordInsert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertCount++
}

// RecordQuery records a completed index query.
func (s *Stats) RecordQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueryCount++
}

// RecordPair records a discovered neighbor pair at the given confidence.
func (s *Stats) RecordPair(confidence string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.PairsFound++

	switch strings.ToLower(confidence) {
	case "high":
		s.HighConfidence++
	case "medium":
		s.MediumConfidence++
	case "low":
		s.LowConfidence++
	}
}

// UpdateProgress updates the completed/total document counts.
func (s *Stats) UpdateProgress(completed, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CompletedDocs = completed
	s.TotalDocuments = total

	if total > 0 {
		s.CurrentProgress = float64(completed) / float64(total)
	}
}

// GetDocsPerSec returns documents sketched per second since start.
func (s *Stats) GetDocsPerSec() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed < 1 {
		return 0
	}
	return float64(s.DocumentsSketched) / elapsed
}

// GetAverageSketchTime returns the average per-document sketch time.
func (s *Stats) GetAverageSketchTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.DocumentsSketched == 0 {
		return 0
	}
	return s.SketchTotal / time.Duration(s.DocumentsSketched)
}

// GetElapsedTime returns the elapsed time since start.
func (s *Stats) GetElapsedTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.StartTime)
}

// GetETA returns the estimated time remaining to finish indexing.
func (s *Stats) GetETA() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.CompletedDocs == 0 || s.TotalDocuments == 0 {
		return 0
	}

	elapsed := time.Since(s.StartTime)
	remaining := s.TotalDocuments - s.CompletedDocs
	rate := float64(s.CompletedDocs) / elapsed.Seconds()

	if rate <= 0 {
		return 0
	}

	return time.Duration(float64(remaining)/rate) * time.Second
}

// Snapshot returns an immutable copy of the current stats.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StatsSnapshot{
		DocumentsSketched: s.DocumentsSketched,
		InsertCount:       s.InsertCount,
		QueryCount:        s.QueryCount,
		PairsFound:        s.PairsFound,
		HighConfidence:    s.HighConfidence,
		MediumConfidence:  s.MediumConfidence,
		LowConfidence:     s.LowConfidence,
		CurrentProgress:   s.CurrentProgress,
		TotalDocuments:    s.TotalDocuments,
		CompletedDocs:     s.CompletedDocs,
		ElapsedTime:       time.Since(s.StartTime),
		AverageSketch:     s.GetAverageSketchTime(),
		DocsPerSec:        s.GetDocsPerSec(),
		ETA:               s.GetETA(),
	}
}

// StatsSnapshot is an immutable snapshot of Stats.
type StatsSnapshot struct {
	DocumentsSketched int64
	InsertCount       int64
	QueryCount        int64
	PairsFound        int64
	HighConfidence    int64
	MediumConfidence  int64
	LowConfidence     int64
	CurrentProgress   float64
	TotalDocuments    int64
	CompletedDocs     int64
	ElapsedTime       time.Duration
	AverageSketch     time.Duration
	DocsPerSec        float64
	ETA               time.Duration
}

// StatsView renders the statistics panel.
type StatsView struct {
	width  int
	height int
}

// NewStatsView creates a new stats view.
func NewStatsView(width, height int) *StatsView {
	return &StatsView{width: width, height: height}
}

// SetSize updates the view size.
func (v *StatsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Render renders the stats view.
func (v *StatsView) Render(snap StatsSnapshot) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("📊 Indexing"))
	b.WriteString("\n\n")

	b.WriteString(RenderLabelValue("Sketched", formatNumber(snap.DocumentsSketched)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Inserted", formatNumber(snap.InsertCount)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Queries", formatNumber(snap.QueryCount)))
	b.WriteString("\n\n")

	b.WriteString(HeaderStyle.Render("⚡ Performance"))
	b.WriteString("\n\n")

	b.WriteString(RenderLabelValue("Docs/sec", fmt.Sprintf("%.1f", snap.DocsPerSec)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Avg sketch", formatDuration(snap.AverageSketch)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Elapsed", formatDuration(snap.ElapsedTime)))
	b.WriteString("\n\n")

	b.WriteString(HeaderStyle.Render("🔍 Neighbor pairs"))
	b.WriteString("\n\n")

	b.WriteString(RenderLabelValue("Total found", formatNumber(snap.PairsFound)))
	b.WriteString("\n")

	if snap.PairsFound > 0 {
		b.WriteString("  ")
		b.WriteString(ConfidenceHighStyle.Render(fmt.Sprintf("High: %d", snap.HighConfidence)))
		b.WriteString(" | ")
		b.WriteString(ConfidenceMediumStyle.Render(fmt.Sprintf("Med: %d", snap.MediumConfidence)))
		b.WriteString(" | ")
		b.WriteString(ConfidenceLowStyle.Render(fmt.Sprintf("Low: %d", snap.LowConfidence)))
		b.WriteString("\n")
	}

	return StatsPanelStyle.Width(v.width).Render(b.String())
}

func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
