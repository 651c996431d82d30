package parallel

import (
	"testing"
	"time"
)

func TestBackpressureController(t *testing.T) {
	config := &BackpressureConfig{
		Strategy:      StrategyAdaptive,
		MaxQueueSize:  100,
		HighWatermark: 0.8,
		LowWatermark:  0.2,
		MinRate:       1 * time.Millisecond,
		MaxRate:       10 * time.Millisecond,
	}

	bc := NewBackpressureController(config)

	// Low pressure
	canProceed := bc.CheckPressure(10, 100) // 10%
	if !canProceed {
		t.Error("Should proceed at low pressure")
	}
	if bc.IsPressured() {
		t.Error("Should not be pressured at 10%")
	}

	// High pressure
	canProceed = bc.CheckPressure(90, 100) // 90%
	if !canProceed {
		t.Error("Adaptive strategy should allow proceeding")
	}
	if !bc.IsPressured() {
		t.Error("Should be pressured at 90%")
	}

	stats := bc.GetStats()
	if stats.PressureEvents != 1 {
		t.Errorf("Expected 1 pressure event, got %d", stats.PressureEvents)
	}
}

func TestBackpressureControllerRecordProcessed(t *testing.T) {
	bc := NewBackpressureController(nil)
	bc.RecordProcessed()
	bc.RecordProcessed()

	stats := bc.GetStats()
	if stats.ItemsProcessed != 2 {
		t.Errorf("Expected 2 items processed, got %d", stats.ItemsProcessed)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10*time.Millisecond, 3)

	// Burst should allow 3 immediate requests
	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Errorf("Request %d should be allowed (burst)", i)
		}
	}

	// 4th request should be denied
	if rl.Allow() {
		t.Error("4th request should be denied")
	}

	// Wait and try again
	time.Sleep(15 * time.Millisecond)
	if !rl.Allow() {
		t.Error("Request after wait should be allowed")
	}
}

func TestThrottle(t *testing.T) {
	throttle := NewThrottle(50 * time.Millisecond)

	// First call should be allowed
	if !throttle.Allow() {
		t.Error("First call should be allowed")
	}

	// Immediate second call should be denied
	if throttle.Allow() {
		t.Error("Immediate second call should be denied")
	}

	// Wait and try again
	time.Sleep(60 * time.Millisecond)
	if !throttle.Allow() {
		t.Error("Call after wait should be allowed")
	}
}
