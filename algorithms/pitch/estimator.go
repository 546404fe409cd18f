package pitch

import (
	"github.com/vozlabs/tonegate/algorithms/common"
	"github.com/vozlabs/tonegate/algorithms/filters"
	"github.com/vozlabs/tonegate/logging"
)

// Method weights for estimator fusion. YIN is the most trustworthy of the
// three, the raw crossing rate the least.
const (
	weightZeroCrossing    = 1.0
	weightAutocorrelation = 2.0
	weightYIN             = 3.0
)

// Params contains parameters for pitch estimation
type Params struct {
	MinFrequency   float64 `json:"min_frequency"`    // Hz, estimates below are zeroed
	MaxFrequency   float64 `json:"max_frequency"`    // Hz, estimates above are zeroed
	NoiseFloor     float64 `json:"noise_floor"`      // RMS below which analysis is skipped
	MinFrameLength int     `json:"min_frame_length"` // Shorter frames degrade to no detection
}

// DefaultParams returns the canonical estimation parameters
func DefaultParams() Params {
	return Params{
		MinFrequency:   85.0,
		MaxFrequency:   1000.0,
		NoiseFloor:     0.005,
		MinFrameLength: 512,
	}
}

// Candidate is a single method's estimate before fusion
type Candidate struct {
	Frequency  float64 `json:"frequency"`  // Frequency in Hz
	Confidence float64 `json:"confidence"` // Method-reported confidence (0-1)
	Weight     float64 `json:"weight"`     // Fusion weight of the method
	Method     string  `json:"method"`     // Method name
}

// Reading is the fused per-frame estimate. A Frequency of 0 means no pitch
// was detected; Amplitude is always populated.
type Reading struct {
	Frequency  float64     `json:"frequency"`  // Fused frequency estimate (Hz, 0 = unvoiced)
	Amplitude  float64     `json:"amplitude"`  // Display-scaled loudness (0-100)
	RMS        float64     `json:"rms"`        // Raw RMS of the frame
	Candidates []Candidate `json:"candidates"` // Per-method estimates that entered the fusion
}

// Estimator fuses three independent pitch estimators into a single
// frequency and amplitude reading per frame.
//
// The estimators run in ascending order of cost and reliability:
// zero-crossing rate, lag-normalized autocorrelation, and YIN. Non-zero
// results are combined by a weighted average; the fused value is then
// clamped to the configured frequency range.
//
// Estimation never fails. Silence, short frames, and degenerate arithmetic
// all degrade to a Reading with Frequency 0.
type Estimator struct {
	params Params

	dcRemoval    *filters.DCRemoval
	zeroCrossing *ZeroCrossing
	autocorr     *Autocorrelation
	yin          *YIN

	logger logging.Logger
}

// NewEstimator creates a pitch estimator with default parameters
func NewEstimator() *Estimator {
	return NewEstimatorWithParams(DefaultParams())
}

// NewEstimatorWithParams creates a pitch estimator with custom parameters
func NewEstimatorWithParams(params Params) *Estimator {
	return &Estimator{
		params:       params,
		dcRemoval:    filters.NewDCRemoval(),
		zeroCrossing: NewZeroCrossing(),
		autocorr:     NewAutocorrelation(),
		yin:          NewYIN(),
		logger: logging.WithFields(logging.Fields{
			"component": "pitch_estimator",
		}),
	}
}

// Estimate analyzes one frame of samples at the given sample rate.
//
// Frames below the noise floor skip the estimators entirely, except for a
// faint-signal sub-path: when some signal is present the frame is
// peak-normalized and analyzed once more, and the reported amplitude is
// boosted so downstream level meters still move.
func (e *Estimator) Estimate(frame []float64, sampleRate int) Reading {
	rms := common.RMS(frame)
	peak := common.Peak(frame)
	reading := Reading{
		Amplitude: displayAmplitude(rms, peak),
		RMS:       rms,
	}

	if len(frame) < e.params.MinFrameLength || sampleRate <= 0 {
		return reading
	}

	if rms < e.params.NoiseFloor {
		// Faint but non-silent: normalize to full scale and retry once
		if peak > 0 && rms >= e.params.NoiseFloor/4 {
			normalized := common.PeakNormalize(frame)
			if freq, candidates := e.analyze(normalized, sampleRate); freq > 0 {
				reading.Frequency = freq
				reading.Candidates = candidates
				reading.Amplitude = common.Clamp(reading.Amplitude*faintBoost, 0, 100)
			}
		}
		return reading
	}

	reading.Frequency, reading.Candidates = e.analyze(frame, sampleRate)
	return reading
}

// faintBoost amplifies the reported amplitude on the faint-signal sub-path
// so UI level feedback remains visible
const faintBoost = 2.5

// analyze runs the three estimators over the DC-blocked frame and fuses the
// non-zero results
func (e *Estimator) analyze(frame []float64, sampleRate int) (float64, []Candidate) {
	frame = e.dcRemoval.Apply(frame)

	zcFreq, zcConf := e.zeroCrossing.Estimate(frame, sampleRate)
	acFreq, acConf := e.autocorr.Estimate(frame, sampleRate)
	yinFreq, yinConf := e.yin.Estimate(frame, sampleRate)

	candidates := make([]Candidate, 0, 3)
	if zcFreq > 0 {
		candidates = append(candidates, Candidate{zcFreq, zcConf, weightZeroCrossing, "zero_crossing"})
	}
	if acFreq > 0 {
		candidates = append(candidates, Candidate{acFreq, acConf, weightAutocorrelation, "autocorrelation"})
	}
	if yinFreq > 0 {
		candidates = append(candidates, Candidate{yinFreq, yinConf, weightYIN, "yin"})
	}

	if len(candidates) == 0 {
		return 0.0, nil
	}

	// Confidence-weighted fusion: each method contributes its fixed weight
	// scaled by how sure it is of this particular frame
	freqs := make([]float64, len(candidates))
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		freqs[i] = c.Frequency
		weights[i] = c.Weight * c.Confidence
	}

	fused := common.WeightedMean(freqs, weights)
	if fused < e.params.MinFrequency || fused > e.params.MaxFrequency {
		e.logger.Debug("fused estimate outside frequency range", logging.Fields{
			"frequency": fused,
		})
		return 0.0, candidates
	}

	return fused, candidates
}

// displayAmplitude blends RMS and peak magnitude into a bounded loudness
// value. The scale is monotonic in true loudness and clamped to [0, 100].
func displayAmplitude(rms, peak float64) float64 {
	return common.Clamp((2.4*rms+0.4*peak)*100.0, 0.0, 100.0)
}

// GetParams returns the current parameters
func (e *Estimator) GetParams() Params {
	return e.params
}
