package detect

import (
	"time"

	"github.com/vozlabs/tonegate/logging"
)

// Retention windows for replay records. Pruning is lazy: expired records
// are dropped the next time the guard is consulted.
const (
	resultRetention   = 10 * time.Minute
	sequenceRetention = 5 * time.Minute
)

type resultRecord struct {
	frequency  float64
	amplitude  float64
	confidence float64
	at         time.Time
}

type sequenceRecord struct {
	values []float64
	at     time.Time
}

// ReplayGuard detects literal repeats of earlier detection results and of
// whole submitted frequency sequences. Identical numbers resubmitted within
// the retention window mean recorded or synthesized audio, not a live
// voice: real signal chains never reproduce float-exact values twice.
//
// Only bot-flagged results are recorded for the per-result check, which
// keeps the store small without weakening the check.
type ReplayGuard struct {
	clock     Clock
	results   []resultRecord
	sequences map[string][]sequenceRecord
	logger    logging.Logger
}

// NewReplayGuard creates a replay guard using the given clock
func NewReplayGuard(clock Clock) *ReplayGuard {
	return &ReplayGuard{
		clock:     clock,
		sequences: make(map[string][]sequenceRecord),
		logger: logging.WithFields(logging.Fields{
			"component": "replay_guard",
		}),
	}
}

// IsReplay reports whether an identical (frequency, amplitude, confidence)
// result was recorded inside the retention window
func (g *ReplayGuard) IsReplay(result *Result) bool {
	g.Prune(g.clock.Now())

	for _, record := range g.results {
		if record.frequency == result.Frequency &&
			record.amplitude == result.Amplitude &&
			record.confidence == result.ConfidenceScore {
			return true
		}
	}
	return false
}

// Record retains a result for future replay checks
func (g *ReplayGuard) Record(result *Result) {
	g.results = append(g.results, resultRecord{
		frequency:  result.Frequency,
		amplitude:  result.Amplitude,
		confidence: result.ConfidenceScore,
		at:         g.clock.Now(),
	})
}

// CheckAndRecordSequence reports whether an identical frequency sequence
// was already submitted for the challenge inside the retention window, and
// records the current submission either way. A replayed sequence rejects
// the verification outright, regardless of frequency correctness.
func (g *ReplayGuard) CheckAndRecordSequence(challengeID string, sequence []float64) bool {
	now := g.clock.Now()
	g.Prune(now)

	replay := false
	for _, record := range g.sequences[challengeID] {
		if equalSequence(record.values, sequence) {
			replay = true
			break
		}
	}

	stored := make([]float64, len(sequence))
	copy(stored, sequence)
	g.sequences[challengeID] = append(g.sequences[challengeID], sequenceRecord{values: stored, at: now})

	if replay {
		g.logger.Info("replayed submission rejected", logging.Fields{
			"challenge_id": challengeID,
			"length":       len(sequence),
		})
	}
	return replay
}

// Prune drops records older than their retention window
func (g *ReplayGuard) Prune(now time.Time) {
	kept := g.results[:0]
	for _, record := range g.results {
		if now.Sub(record.at) <= resultRetention {
			kept = append(kept, record)
		}
	}
	g.results = kept

	for challengeID, records := range g.sequences {
		keptSeq := records[:0]
		for _, record := range records {
			if now.Sub(record.at) <= sequenceRetention {
				keptSeq = append(keptSeq, record)
			}
		}
		if len(keptSeq) == 0 {
			delete(g.sequences, challengeID)
		} else {
			g.sequences[challengeID] = keptSeq
		}
	}
}

// EndChallenge discards stored submissions for a challenge
func (g *ReplayGuard) EndChallenge(challengeID string) {
	delete(g.sequences, challengeID)
}

func equalSequence(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
