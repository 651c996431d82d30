package tui

import (
	"testing"
	"time"
)

func TestNewDashboard(t *testing.T) {
	d := NewDashboard()

	if d.status != StatusIdle {
		t.Errorf("expected StatusIdle, got %v", d.status)
	}
	if d.stats == nil {
		t.Error("stats should not be nil")
	}
}

func TestDashboard_StatusTransitions(t *testing.T) {
	d := NewDashboard()

	d.StartIndexing()
	if d.status != StatusIndexing {
		t.Errorf("expected StatusIndexing after StartIndexing, got %v", d.status)
	}

	d.Pause()
	if d.status != StatusPaused {
		t.Errorf("expected StatusPaused after Pause, got %v", d.status)
	}

	d.Resume()
	if d.status != StatusIndexing {
		t.Errorf("expected StatusIndexing after Resume, got %v", d.status)
	}

	d.Stop()
	if d.status != StatusStopped {
		t.Errorf("expected StatusStopped after Stop, got %v", d.status)
	}
}

func TestDashboard_AddLog(t *testing.T) {
	d := NewDashboard()

	d.AddLog("INFO", "test message 1")
	d.AddLog("ERROR", "test message 2")

	if len(d.logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(d.logs))
	}
	if d.logs[0].Level != "INFO" {
		t.Errorf("expected first log level INFO, got %s", d.logs[0].Level)
	}
	if d.logs[1].Message != "test message 2" {
		t.Errorf("expected second log message 'test message 2', got %s", d.logs[1].Message)
	}
}

func TestDashboard_LogTrimming(t *testing.T) {
	d := NewDashboard()
	d.maxLogs = 5

	for i := 0; i < 10; i++ {
		d.AddLog("INFO", "message")
	}

	if len(d.logs) != 5 {
		t.Errorf("expected %d logs after trimming, got %d", d.maxLogs, len(d.logs))
	}
}

func TestStats_RecordSketch(t *testing.T) {
	s := NewStats()

	s.RecordSketch(100 * time.Millisecond)
	s.RecordSketch(200 * time.Millisecond)
	s.RecordInsert()
	s.RecordQuery()

	if s.DocumentsSketched != 2 {
		t.Errorf("expected 2 documents sketched, got %d", s.DocumentsSketched)
	}
	if s.InsertCount != 1 {
		t.Errorf("expected 1 insert, got %d", s.InsertCount)
	}
	if s.QueryCount != 1 {
		t.Errorf("expected 1 query, got %d", s.QueryCount)
	}
}

func TestStats_RecordPair(t *testing.T) {
	s := NewStats()

	s.RecordPair("high")
	s.RecordPair("high")
	s.RecordPair("medium")
	s.RecordPair("low")

	if s.PairsFound != 4 {
		t.Errorf("expected 4 pairs, got %d", s.PairsFound)
	}
	if s.HighConfidence != 2 {
		t.Errorf("expected 2 high confidence, got %d", s.HighConfidence)
	}
	if s.MediumConfidence != 1 {
		t.Errorf("expected 1 medium confidence, got %d", s.MediumConfidence)
	}
	if s.LowConfidence != 1 {
		t.Errorf("expected 1 low confidence, got %d", s.LowConfidence)
	}
}

func TestStats_UpdateProgress(t *testing.T) {
	s := NewStats()

	s.UpdateProgress(50, 100)

	if s.CurrentProgress != 0.5 {
		t.Errorf("expected progress 0.5, got %f", s.CurrentProgress)
	}
	if s.CompletedDocs != 50 {
		t.Errorf("expected 50 completed, got %d", s.CompletedDocs)
	}
	if s.TotalDocuments != 100 {
		t.Errorf("expected 100 total, got %d", s.TotalDocuments)
	}
}

func TestStats_Snapshot(t *testing.T) {
	s := NewStats()

	s.RecordSketch(100 * time.Millisecond)
	s.UpdateProgress(10, 100)
	s.RecordPair("high")

	snap := s.Snapshot()

	if snap.DocumentsSketched != 1 {
		t.Errorf("snapshot DocumentsSketched: expected 1, got %d", snap.DocumentsSketched)
	}
	if snap.CurrentProgress != 0.1 {
		t.Errorf("snapshot CurrentProgress: expected 0.1, got %f", snap.CurrentProgress)
	}
	if snap.PairsFound != 1 {
		t.Errorf("snapshot PairsFound: expected 1, got %d", snap.PairsFound)
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(50)

	p.SetProgress(0.5)
	p.SetETA("5m30s")

	rendered := p.Render()
	if rendered == "" {
		t.Error("ProgressBar Render returned empty string")
	}
	if len(rendered) < 10 {
		t.Error("ProgressBar Render output too short")
	}
}

func TestProgressBar_Bounds(t *testing.T) {
	p := NewProgressBar(50)

	p.SetProgress(-0.5)
	if p.percentage != 0 {
		t.Errorf("expected percentage clamped to 0, got %f", p.percentage)
	}

	p.SetProgress(1.5)
	if p.percentage != 1 {
		t.Errorf("expected percentage clamped to 1, got %f", p.percentage)
	}
}

func TestSpinnerProgress(t *testing.T) {
	s := NewSpinnerProgress()

	s.SetText("loading data...")

	if !s.running {
		t.Error("spinner should be running by default")
	}

	initialFrame := s.frame
	s.Tick()
	s.Tick()

	if s.frame == initialFrame {
		t.Error("spinner frame should change after Tick")
	}

	s.Stop()
	if s.running {
		t.Error("spinner should not be running after Stop")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusIdle, "Idle"},
		{StatusIndexing, "Indexing"},
		{StatusQuerying, "Querying"},
		{StatusPaused, "Paused"},
		{StatusStopped, "Stopped"},
		{StatusCompleted, "Completed"},
	}

	for _, tt := range tests {
		if tt.status.String() != tt.expected {
			t.Errorf("Status.String(): expected %s, got %s", tt.expected, tt.status.String())
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1000000, "1.0M"},
		{1500000, "1.5M"},
	}

	for _, tt := range tests {
		result := formatNumber(tt.input)
		if result != tt.expected {
			t.Errorf("formatNumber(%d): expected %s, got %s", tt.input, tt.expected, result)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{500 * time.Microsecond, "500µs"},
		{50 * time.Millisecond, "50ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
		{90 * time.Minute, "1h30m"},
	}

	for _, tt := range tests {
		result := formatDuration(tt.input)
		if result != tt.expected {
			t.Errorf("formatDuration(%v): expected %s, got %s", tt.input, tt.expected, result)
		}
	}
}

func BenchmarkStats_RecordSketch(b *testing.B) {
	s := NewStats()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.RecordSketch(100 * time.Millisecond)
	}
}

func BenchmarkStats_Snapshot(b *testing.B) {
	s := NewStats()

	for i := 0; i < 1000; i++ {
		s.RecordSketch(100 * time.Millisecond)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Snapshot()
	}
}

func BenchmarkDashboard_View(b *testing.B) {
	d := NewDashboard()
	d.width = 120
	d.height = 40
	d.StartIndexing()

	for i := 0; i < 20; i++ {
		d.AddLog("INFO", "test message")
	}

	for i := 0; i < 100; i++ {
		d.stats.RecordSketch(100 * time.Millisecond)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.View()
	}
}
