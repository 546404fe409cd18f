package detect

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestResultReplayDetected(t *testing.T) {
	clock := newFakeClock()
	guard := NewReplayGuard(clock)

	result := &Result{Frequency: 441, Amplitude: 52.3, ConfidenceScore: 0.9}
	if guard.IsReplay(result) {
		t.Fatalf("fresh result flagged as replay")
	}

	guard.Record(result)
	if !guard.IsReplay(result) {
		t.Fatalf("identical result not flagged as replay")
	}

	different := &Result{Frequency: 441, Amplitude: 52.3, ConfidenceScore: 0.91}
	if guard.IsReplay(different) {
		t.Fatalf("result differing in confidence flagged as replay")
	}
}

func TestResultRetentionBoundary(t *testing.T) {
	clock := newFakeClock()
	guard := NewReplayGuard(clock)

	result := &Result{Frequency: 441, Amplitude: 52.3, ConfidenceScore: 0.9}
	guard.Record(result)

	// A record exactly at the retention boundary is still held
	clock.Advance(resultRetention)
	if !guard.IsReplay(result) {
		t.Fatalf("record dropped exactly at the retention boundary")
	}

	clock.Advance(time.Nanosecond)
	if guard.IsReplay(result) {
		t.Fatalf("record survived past the retention window")
	}
}

func TestSequenceReplayDetected(t *testing.T) {
	clock := newFakeClock()
	guard := NewReplayGuard(clock)
	sequence := []float64{441, 438, 444, 441}

	if guard.CheckAndRecordSequence("challenge-1", sequence) {
		t.Fatalf("first submission flagged as replay")
	}
	if !guard.CheckAndRecordSequence("challenge-1", sequence) {
		t.Fatalf("identical resubmission not flagged as replay")
	}

	// Sequences are scoped per challenge
	if guard.CheckAndRecordSequence("challenge-2", sequence) {
		t.Fatalf("submission for a different challenge flagged as replay")
	}

	// A single differing value is a different submission
	changed := []float64{441, 438, 444, 442}
	if guard.CheckAndRecordSequence("challenge-1", changed) {
		t.Fatalf("differing sequence flagged as replay")
	}
}

func TestSequenceRetentionExpiry(t *testing.T) {
	clock := newFakeClock()
	guard := NewReplayGuard(clock)
	sequence := []float64{441, 438, 444}

	guard.CheckAndRecordSequence("challenge-1", sequence)

	clock.Advance(sequenceRetention + time.Nanosecond)
	if guard.CheckAndRecordSequence("challenge-1", sequence) {
		t.Fatalf("expired submission still flagged as replay")
	}
}

func TestEndChallengeDiscardsSubmissions(t *testing.T) {
	clock := newFakeClock()
	guard := NewReplayGuard(clock)
	sequence := []float64{441, 438, 444}

	guard.CheckAndRecordSequence("challenge-1", sequence)
	guard.EndChallenge("challenge-1")

	if guard.CheckAndRecordSequence("challenge-1", sequence) {
		t.Fatalf("submission survived EndChallenge")
	}
}

func TestRateLimiterSpacing(t *testing.T) {
	clock := newFakeClock()
	limiter := NewRateLimiter(50 * time.Millisecond)

	if !limiter.ShouldProcess(clock.Now()) {
		t.Fatalf("first frame must always be processed")
	}

	clock.Advance(10 * time.Millisecond)
	if limiter.ShouldProcess(clock.Now()) {
		t.Fatalf("frame inside the minimum interval was accepted")
	}

	clock.Advance(40 * time.Millisecond)
	if !limiter.ShouldProcess(clock.Now()) {
		t.Fatalf("frame exactly at the minimum interval was rejected")
	}

	limiter.Reset()
	clock.Advance(time.Millisecond)
	if !limiter.ShouldProcess(clock.Now()) {
		t.Fatalf("frame after Reset was rejected")
	}
}
