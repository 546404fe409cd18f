package detect

import "time"

// Result is the per-frame output of the detector. Immutable once returned.
type Result struct {
	Frequency       float64   `json:"frequency"`                 // Smoothed estimate (Hz, 0 = no pitch)
	Amplitude       float64   `json:"amplitude"`                 // Display-scaled loudness (0-100)
	ConfidenceScore float64   `json:"confidence_score"`          // Detection confidence (0-1)
	IsBotLike       bool      `json:"is_bot_like"`               // Liveness verdict for the session so far
	BotLikeReason   string    `json:"bot_like_reason,omitempty"` // Set only when IsBotLike
	Time            time.Time `json:"time"`                      // When the frame was processed
}

// Recording decision reasons
const (
	ReasonNoSignal           = "no signal"
	ReasonReplayedSubmission = "replayed submission"
)

// RecordingDecision is the final match decision over a completed recording
type RecordingDecision struct {
	Matched       bool    `json:"matched"`
	Confidence    float64 `json:"confidence"`       // Match confidence against the target (0-1)
	MeanFrequency float64 `json:"mean_frequency"`   // Mean of the voiced per-frame frequencies
	VoicedRatio   float64 `json:"voiced_ratio"`     // Share of frames with a usable frequency
	Reason        string  `json:"reason,omitempty"` // Populated on rejection
}
