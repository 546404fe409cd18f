// Package liveness scores how human-like a stream of pitch readings is.
//
// A live voice is never perfectly steady: fundamental frequency and
// amplitude both wander, and consecutive frames jitter against each other.
// Synthesized tones and looped replays are too clean. The monitor keeps a
// rolling window of readings per session and turns the window's variance
// profile into a bot-likelihood verdict.
package liveness

import (
	"github.com/vozlabs/tonegate/algorithms/common"
	"github.com/vozlabs/tonegate/logging"
)

// Verdict reasons, in selection priority order
const (
	ReasonFrequencyStability = "unnaturally stable frequency"
	ReasonAmplitudeStability = "unnaturally stable amplitude"
	ReasonJitterStability    = "unnaturally flat pitch contour"
	ReasonSyntheticPattern   = "synthetic pattern detected"
	ReasonPureTone           = "synthetic pattern detected: sustained pure tone"
	ReasonInsufficientData   = "insufficient data"
)

// Params contains parameters for liveness monitoring
type Params struct {
	HistoryLen           int     `json:"history_len"`             // Ring capacity per session
	MinSamplesForStats   int     `json:"min_samples_for_stats"`   // Valid samples before any variance statistic
	MinSamplesForVerdict int     `json:"min_samples_for_verdict"` // Valid samples before a naturalness verdict
	BotThreshold         float64 `json:"bot_threshold"`           // Bot probability above which the verdict flips

	// Fast-path coefficient-of-variation short circuits
	FreqStabilityCV   float64 `json:"freq_stability_cv"`    // CV below this flags frequency stability
	FreqStabilityMean float64 `json:"freq_stability_mean"`  // Minimum mean frequency for the freq CV flag
	AmpStabilityCV    float64 `json:"amp_stability_cv"`     // CV below this flags amplitude stability
	PureToneFlatness  float64 `json:"pure_tone_flatness"`   // Mean spectral flatness below this marks a pure tone
}

// DefaultParams returns the canonical monitoring parameters
func DefaultParams() Params {
	return Params{
		HistoryLen:           16,
		MinSamplesForStats:   5,
		MinSamplesForVerdict: 8,
		BotThreshold:         0.8,
		FreqStabilityCV:      0.001,
		FreqStabilityMean:    125.0,
		AmpStabilityCV:       0.01,
		PureToneFlatness:     0.02,
	}
}

// Naturalness weighting: frequency spread matters most, amplitude spread
// and frame-to-frame jitter share the rest. Scales convert the raw
// statistics into unit terms.
const (
	freqVarianceWeight = 0.4
	ampVarianceWeight  = 0.3
	jitterWeight       = 0.3

	freqVarianceScale = 10.0
	ampVarianceScale  = 30.0
	jitterScale       = 5.0
)

// Stats is the rolling statistical profile of one session
type Stats struct {
	FreqStdDev     float64 `json:"freq_std_dev"`    // Population stddev of buffered frequencies
	AmpStdDev      float64 `json:"amp_std_dev"`     // Population stddev of buffered amplitudes
	Jitter         float64 `json:"jitter"`          // Mean |Δfrequency| across the buffer
	Naturalness    float64 `json:"naturalness"`     // Weighted naturalness score (0-1)
	BotProbability float64 `json:"bot_probability"` // 1 - naturalness
	MeanFlatness   float64 `json:"mean_flatness"`   // Rolling mean spectral flatness
	ValidSamples   int     `json:"valid_samples"`   // Voiced readings currently buffered
	TotalFrames    int     `json:"total_frames"`    // All frames seen, voiced or not
}

// Verdict is the bot-likelihood classification for one session
type Verdict struct {
	IsBotLike  bool    `json:"is_bot_like"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

type sessionState struct {
	frequencies *common.Ring
	amplitudes  *common.Ring
	flatness    *common.Ring
	totalFrames int
}

// Monitor accumulates per-session reading histories and classifies them.
// It is an explicit session store: state is keyed by the caller-supplied
// session id and lives until EndSession. Not safe for concurrent use.
type Monitor struct {
	params   Params
	sessions map[string]*sessionState
	logger   logging.Logger
}

// NewMonitor creates a liveness monitor with default parameters
func NewMonitor() *Monitor {
	return NewMonitorWithParams(DefaultParams())
}

// NewMonitorWithParams creates a liveness monitor with custom parameters
func NewMonitorWithParams(params Params) *Monitor {
	return &Monitor{
		params:   params,
		sessions: make(map[string]*sessionState),
		logger: logging.WithFields(logging.Fields{
			"component": "liveness_monitor",
		}),
	}
}

func (m *Monitor) session(sessionID string) *sessionState {
	state, ok := m.sessions[sessionID]
	if !ok {
		state = &sessionState{
			frequencies: common.NewRing(m.params.HistoryLen),
			amplitudes:  common.NewRing(m.params.HistoryLen),
			flatness:    common.NewRing(m.params.HistoryLen),
		}
		m.sessions[sessionID] = state
		m.logger.Debug("session created", logging.Fields{"session_id": sessionID})
	}
	return state
}

// Update folds one reading into the session history and returns the
// refreshed statistics. Unvoiced readings (frequency 0) count toward
// TotalFrames but are excluded from the rolling buffers: silence carries
// no liveness information.
func (m *Monitor) Update(sessionID string, frequency, amplitude float64) Stats {
	state := m.session(sessionID)
	state.totalFrames++

	if frequency > 0 {
		state.frequencies.Push(frequency)
		state.amplitudes.Push(amplitude)
	}

	return m.stats(state)
}

// ObserveFlatness records a spectral flatness measurement for the session.
// Reported separately from Update because flatness is only meaningful for
// voiced frames and the caller may not compute it at all.
func (m *Monitor) ObserveFlatness(sessionID string, flatness float64) {
	m.session(sessionID).flatness.Push(flatness)
}

func (m *Monitor) stats(state *sessionState) Stats {
	stats := Stats{
		ValidSamples: state.frequencies.Len(),
		TotalFrames:  state.totalFrames,
		MeanFlatness: common.Mean(state.flatness.Values()),
	}

	if stats.ValidSamples < m.params.MinSamplesForStats {
		return stats
	}

	freqs := state.frequencies.Values()
	amps := state.amplitudes.Values()

	stats.FreqStdDev = common.PopStdDev(freqs)
	stats.AmpStdDev = common.PopStdDev(amps)
	stats.Jitter = common.MeanAbsDiff(freqs)

	stats.Naturalness = freqVarianceWeight*common.Clamp01(stats.FreqStdDev/freqVarianceScale) +
		ampVarianceWeight*common.Clamp01(stats.AmpStdDev/ampVarianceScale) +
		jitterWeight*common.Clamp01(stats.Jitter/jitterScale)
	stats.BotProbability = 1.0 - stats.Naturalness

	return stats
}

// Verdict classifies the session. The cheap coefficient-of-variation
// short circuits run first and may flag a bot before the naturalness
// window fills; the weighted naturalness score is authoritative once
// enough voiced samples are buffered.
func (m *Monitor) Verdict(sessionID string) Verdict {
	state, ok := m.sessions[sessionID]
	if !ok {
		return Verdict{Reason: ReasonInsufficientData}
	}

	freqs := state.frequencies.Values()
	amps := state.amplitudes.Values()

	if len(freqs) >= m.params.MinSamplesForStats {
		freqMean := common.Mean(freqs)
		if freqMean > m.params.FreqStabilityMean &&
			common.CoefficientOfVariation(freqs) < m.params.FreqStabilityCV {
			return Verdict{IsBotLike: true, Confidence: 0.95, Reason: ReasonFrequencyStability}
		}
		if common.Mean(amps) > 0 &&
			common.CoefficientOfVariation(amps) < m.params.AmpStabilityCV {
			return Verdict{IsBotLike: true, Confidence: 0.9, Reason: ReasonAmplitudeStability}
		}
	}

	if len(freqs) < m.params.MinSamplesForVerdict {
		return Verdict{Reason: ReasonInsufficientData}
	}

	stats := m.stats(state)
	if stats.BotProbability <= m.params.BotThreshold {
		return Verdict{Confidence: stats.BotProbability}
	}

	verdict := Verdict{
		IsBotLike:  true,
		Confidence: stats.BotProbability,
		Reason:     m.selectReason(stats, state),
	}
	m.logger.Info("bot-like session flagged", logging.Fields{
		"session_id":      sessionID,
		"reason":          verdict.Reason,
		"bot_probability": stats.BotProbability,
	})
	return verdict
}

// selectReason picks the dominant cue for a bot verdict. A sustained pure
// tone in the spectrum outranks the variance cues; after that the stability
// terms are checked in priority order: frequency, amplitude, jitter.
func (m *Monitor) selectReason(stats Stats, state *sessionState) string {
	const stableTerm = 0.2 // Unit-scaled term below this reads as "stable"

	if state.flatness.Len() >= m.params.MinSamplesForStats &&
		stats.MeanFlatness > 0 && stats.MeanFlatness < m.params.PureToneFlatness {
		return ReasonPureTone
	}

	switch {
	case common.Clamp01(stats.FreqStdDev/freqVarianceScale) < stableTerm:
		return ReasonFrequencyStability
	case common.Clamp01(stats.AmpStdDev/ampVarianceScale) < stableTerm:
		return ReasonAmplitudeStability
	case common.Clamp01(stats.Jitter/jitterScale) < stableTerm:
		return ReasonJitterStability
	}

	return ReasonSyntheticPattern
}

// StatsFor returns the current statistics for a session without mutating it
func (m *Monitor) StatsFor(sessionID string) (Stats, bool) {
	state, ok := m.sessions[sessionID]
	if !ok {
		return Stats{}, false
	}
	return m.stats(state), true
}

// EndSession discards all state held for a session
func (m *Monitor) EndSession(sessionID string) {
	delete(m.sessions, sessionID)
}

// ActiveSessions returns the number of sessions currently tracked
func (m *Monitor) ActiveSessions() int {
	return len(m.sessions)
}
