package detect

import (
	"fmt"
	"time"
)

// Config configures a Detector. It is immutable after construction;
// NewDetector rejects invalid values.
type Config struct {
	MinFrequency float64 `json:"min_frequency"` // Hz, readings below are treated as unvoiced
	MaxFrequency float64 `json:"max_frequency"` // Hz, readings above are treated as unvoiced
	Tolerance    float64 `json:"tolerance"`     // Fractional match tolerance (0.1 = ±10%)

	SampleRate int `json:"sample_rate"` // Assumed rate when the caller supplies none
	BufferSize int `json:"buffer_size"` // Recommended capture frame size (hint only)

	EnableBotDetection bool          `json:"enable_bot_detection"`
	RateLimitInterval  time.Duration `json:"rate_limit_interval"` // Minimum spacing between processed frames

	SmoothingHistory int `json:"smoothing_history"` // Non-zero readings kept for temporal smoothing
}

// DefaultConfig returns the canonical detector configuration
func DefaultConfig() *Config {
	return &Config{
		MinFrequency:       85.0,
		MaxFrequency:       1000.0,
		Tolerance:          0.1,
		SampleRate:         44100,
		BufferSize:         2048,
		EnableBotDetection: true,
		RateLimitInterval:  50 * time.Millisecond,
		SmoothingHistory:   10,
	}
}

// Validate checks the configuration for contract violations. An invalid
// config is the only fatal error class in the detection core.
func (c *Config) Validate() error {
	if c.MinFrequency <= 0 {
		return fmt.Errorf("min frequency must be positive, got %v", c.MinFrequency)
	}
	if c.MaxFrequency < c.MinFrequency {
		return fmt.Errorf("max frequency (%v) below min frequency (%v)", c.MaxFrequency, c.MinFrequency)
	}
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in (0, 1), got %v", c.Tolerance)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufferSize)
	}
	if c.RateLimitInterval <= 0 {
		return fmt.Errorf("rate limit interval must be positive, got %v", c.RateLimitInterval)
	}
	if c.SmoothingHistory < 1 {
		return fmt.Errorf("smoothing history must be at least 1, got %d", c.SmoothingHistory)
	}
	return nil
}

// Difficulty selects how forgiving tone matching is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyStrict Difficulty = "strict"
)

// ConfigForDifficulty returns a config tuned for the given difficulty tier.
// Tiers only widen the match tolerance; detection and liveness behavior is
// identical across tiers.
func ConfigForDifficulty(difficulty Difficulty) *Config {
	config := DefaultConfig()

	switch difficulty {
	case DifficultyEasy:
		config.Tolerance = 0.25
	case DifficultyMedium:
		config.Tolerance = 0.2
	case DifficultyHard:
		config.Tolerance = 0.15
	case DifficultyStrict:
		config.Tolerance = 0.1
	}

	return config
}
