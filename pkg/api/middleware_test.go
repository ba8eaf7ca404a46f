package api

import (
	"testing"
	"time"
)

func TestRateLimiter_WindowRollover(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(time.Minute, 2)
	limiter.now = func() time.Time { return now }

	if !limiter.allow("10.0.0.1") || !limiter.allow("10.0.0.1") {
		t.Fatal("Expected first two requests to pass")
	}
	if limiter.allow("10.0.0.1") {
		t.Error("Expected third request in window to be rejected")
	}

	// Other clients have their own budget
	if !limiter.allow("10.0.0.2") {
		t.Error("Expected a different client to be unaffected")
	}

	// Counts reset once the window rolls over
	now = now.Add(time.Minute + time.Second)
	if !limiter.allow("10.0.0.1") {
		t.Error("Expected budget to reset after window rollover")
	}
}

func TestIsHealthPath(t *testing.T) {
	if !isHealthPath("/api/health") {
		t.Error("Expected /api/health to be a health path")
	}
	if isHealthPath("/api/quests") {
		t.Error("Expected /api/quests not to be a health path")
	}
}
