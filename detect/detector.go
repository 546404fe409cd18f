// Package detect is the entry point of the voice-verification detection
// core. A Detector turns raw audio frames into per-frame detection results
// (frequency, amplitude, confidence, bot-likelihood) and scores completed
// recordings against a challenge target tone.
//
// The detector performs no I/O and owns no timers; the caller drives it
// from its own sampling loop and supplies an opaque session id per
// challenge. All per-session state is keyed by that id, so one detector
// instance serves many sessions. The detector is not safe for concurrent
// use; callers running sessions on multiple goroutines must serialize
// calls.
package detect

import (
	"fmt"

	"github.com/vozlabs/tonegate/algorithms/common"
	"github.com/vozlabs/tonegate/algorithms/liveness"
	"github.com/vozlabs/tonegate/algorithms/match"
	"github.com/vozlabs/tonegate/algorithms/pitch"
	"github.com/vozlabs/tonegate/algorithms/spectral"
	"github.com/vozlabs/tonegate/logging"
)

// Detector is the detection core facade. Construct with NewDetector; the
// zero value is not usable.
type Detector struct {
	config *Config
	clock  Clock

	estimator *pitch.Estimator
	evaluator *match.Evaluator
	monitor   *liveness.Monitor
	flatness  *spectral.Flatness
	guard     *ReplayGuard
	sessions  *SessionStore

	logger logging.Logger
}

// NewDetector creates a detector with the given configuration, or the
// default configuration when config is nil. The only fatal error class in
// the core is construction-time misconfiguration.
func NewDetector(config *Config) (*Detector, error) {
	return NewDetectorWithClock(config, SystemClock())
}

// NewDetectorWithClock creates a detector with an injected clock. Tests use
// this to drive retention windows and rate limits deterministically.
func NewDetectorWithClock(config *Config, clock Clock) (*Detector, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}

	pitchParams := pitch.DefaultParams()
	pitchParams.MinFrequency = config.MinFrequency
	pitchParams.MaxFrequency = config.MaxFrequency

	matchParams := match.DefaultParams()
	matchParams.MinFrequency = config.MinFrequency
	matchParams.Tolerance = config.Tolerance

	return &Detector{
		config:    config,
		clock:     clock,
		estimator: pitch.NewEstimatorWithParams(pitchParams),
		evaluator: match.NewEvaluatorWithParams(matchParams),
		monitor:   liveness.NewMonitor(),
		flatness:  spectral.NewFlatness(),
		guard:     NewReplayGuard(clock),
		sessions:  NewSessionStore(config.SmoothingHistory, config.RateLimitInterval),
		logger: logging.WithFields(logging.Fields{
			"component": "detector",
		}),
	}, nil
}

// ProcessFrame analyzes one frame of audio for a session and returns the
// detection result. sampleRate 0 falls back to the configured default.
//
// Frames arriving faster than the rate-limit interval are not analyzed:
// the last known frequency and amplitude are repeated with the confidence
// forced to 0, and no session state is mutated. ProcessFrame never fails;
// malformed input degrades to a zero-frequency result.
func (d *Detector) ProcessFrame(sessionID string, frame []float64, sampleRate int) *Result {
	if sampleRate <= 0 {
		sampleRate = d.config.SampleRate
	}

	now := d.clock.Now()
	state := d.sessions.Get(sessionID)

	if !state.limiter.ShouldProcess(now) {
		throttled := &Result{Time: now}
		if state.lastResult != nil {
			throttled.Frequency = state.lastResult.Frequency
			throttled.Amplitude = state.lastResult.Amplitude
			throttled.IsBotLike = state.lastResult.IsBotLike
			throttled.BotLikeReason = state.lastResult.BotLikeReason
		}
		return throttled
	}

	reading := d.estimator.Estimate(frame, sampleRate)
	smoothed := state.smoother.Smooth(reading.Frequency)
	if smoothed > 0 {
		// Quantization can snap a value just inside the band to a grid
		// point just outside it
		smoothed = common.Clamp(smoothed, d.config.MinFrequency, d.config.MaxFrequency)
	}

	result := &Result{
		Frequency:       smoothed,
		Amplitude:       reading.Amplitude,
		ConfidenceScore: detectionConfidence(reading, smoothed),
		Time:            now,
	}

	if d.config.EnableBotDetection {
		if smoothed > 0 {
			d.monitor.ObserveFlatness(sessionID, d.flatness.Compute(frame))
		}
		d.monitor.Update(sessionID, smoothed, reading.Amplitude)

		if verdict := d.monitor.Verdict(sessionID); verdict.IsBotLike {
			result.IsBotLike = true
			result.BotLikeReason = verdict.Reason
			if d.guard.IsReplay(result) {
				result.BotLikeReason = ReasonReplayedSubmission
			} else {
				d.guard.Record(result)
			}
		}
	}

	state.lastResult = result
	return result
}

// detectionConfidence fuses the per-method confidences of a voiced reading.
// Unvoiced readings score 0.
func detectionConfidence(reading pitch.Reading, smoothed float64) float64 {
	if smoothed <= 0 || len(reading.Candidates) == 0 {
		return 0.0
	}

	confidences := make([]float64, len(reading.Candidates))
	weights := make([]float64, len(reading.Candidates))
	for i, c := range reading.Candidates {
		confidences[i] = c.Confidence
		weights[i] = c.Weight
	}

	return common.Clamp01(common.WeightedMean(confidences, weights))
}

// IsMatch reports whether a sung frequency matches the target tone under
// the configured octave-aware tolerance
func (d *Detector) IsMatch(user, target float64) bool {
	return d.evaluator.IsMatch(user, target)
}

// MatchConfidence scores a sung frequency against the target tone
func (d *Detector) MatchConfidence(user, target float64) float64 {
	return d.evaluator.Confidence(user, target)
}

// FinalizeRecording scores a completed recording against the challenge
// target. Frequencies below the configured minimum are discarded as
// unvoiced; the remainder is averaged and matched octave-aware. An exact
// resubmission of an earlier sequence for the same challenge is rejected
// as a replay regardless of frequency correctness, and a recording with no
// usable frequency reports "no signal" rather than a false mismatch.
func (d *Detector) FinalizeRecording(challengeID string, frequencies []float64, target float64) *RecordingDecision {
	if d.guard.CheckAndRecordSequence(challengeID, frequencies) {
		return &RecordingDecision{Reason: ReasonReplayedSubmission}
	}

	voiced := make([]float64, 0, len(frequencies))
	for _, f := range frequencies {
		if f >= d.config.MinFrequency {
			voiced = append(voiced, f)
		}
	}

	decision := &RecordingDecision{}
	if len(frequencies) > 0 {
		decision.VoicedRatio = float64(len(voiced)) / float64(len(frequencies))
	}

	if len(voiced) == 0 {
		decision.Reason = ReasonNoSignal
		return decision
	}

	decision.MeanFrequency = common.Mean(voiced)
	decision.Matched = d.evaluator.IsMatch(decision.MeanFrequency, target)
	decision.Confidence = d.evaluator.Confidence(decision.MeanFrequency, target)

	d.logger.Debug("recording finalized", logging.Fields{
		"challenge_id":   challengeID,
		"mean_frequency": decision.MeanFrequency,
		"matched":        decision.Matched,
		"confidence":     decision.Confidence,
	})
	return decision
}

// LivenessVerdict returns the current bot-likelihood classification for a
// session. Sessions with fewer than the minimum voiced samples report an
// insufficient-data verdict.
func (d *Detector) LivenessVerdict(sessionID string) liveness.Verdict {
	return d.monitor.Verdict(sessionID)
}

// SessionStats returns the rolling liveness statistics for a session
func (d *Detector) SessionStats(sessionID string) (liveness.Stats, bool) {
	return d.monitor.StatsFor(sessionID)
}

// EndSession discards all state held for a session and its challenge
// submissions. The caller owns session lifecycle; the core never expires
// sessions on its own.
func (d *Detector) EndSession(sessionID string) {
	d.sessions.Evict(sessionID)
	d.monitor.EndSession(sessionID)
	d.guard.EndChallenge(sessionID)
}

// ActiveSessions returns the number of sessions currently tracked
func (d *Detector) ActiveSessions() int {
	return d.sessions.ActiveSessions()
}

// Config returns the detector configuration
func (d *Detector) Config() Config {
	return *d.config
}
