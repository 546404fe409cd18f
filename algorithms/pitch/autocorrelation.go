package pitch

import (
	"math"
)

// Autocorrelation estimates pitch from the strongest local maximum of the
// lag-normalized autocorrelation function inside the voice band.
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
type Autocorrelation struct {
	peakThreshold float64
	maxLagCap     int
	minFreq       float64 // Lower edge of the searched voice band (Hz)
	maxFreq       float64 // Upper edge of the searched voice band (Hz)
}

// NewAutocorrelation creates an autocorrelation estimator with the default
// peak threshold, lag ceiling, and 75-1000 Hz search band
func NewAutocorrelation() *Autocorrelation {
	return &Autocorrelation{
		peakThreshold: 0.2,
		maxLagCap:     1024,
		minFreq:       75.0,
		maxFreq:       1000.0,
	}
}

// Estimate returns the detected frequency and the normalized correlation of
// the winning peak as confidence, or (0, 0) when no peak clears the
// threshold. The first ~1 ms of lags is skipped to reject low-frequency
// noise and the trivial lag-0 peak. Near-equal peaks resolve toward the
// shorter lag: for periodic input every period multiple correlates almost
// perfectly, and preferring the shortest avoids subharmonic errors.
func (ac *Autocorrelation) Estimate(frame []float64, sampleRate int) (frequency, confidence float64) {
	n := len(frame)
	maxLag := ac.maxLagCap
	if n < maxLag {
		maxLag = n
	}
	if bandLimit := int(float64(sampleRate) / ac.minFreq); bandLimit < maxLag {
		maxLag = bandLimit
	}

	minLag := sampleRate / 1000
	if bandLag := int(float64(sampleRate) / ac.maxFreq); bandLag > minLag {
		minLag = bandLag
	}
	if minLag < 2 {
		minLag = 2
	}
	if maxLag <= minLag+1 {
		return 0.0, 0.0
	}

	acf := make([]float64, maxLag)
	for lag := minLag; lag < maxLag; lag++ {
		var cross, energyA, energyB float64
		for i := 0; i+lag < n; i++ {
			cross += frame[i] * frame[i+lag]
			energyA += frame[i] * frame[i]
			energyB += frame[i+lag] * frame[i+lag]
		}

		norm := math.Sqrt(energyA * energyB)
		if norm == 0 {
			continue
		}
		acf[lag] = cross / norm
	}

	// Peak displacement margin: a longer lag only wins when it is clearly
	// stronger, not merely numerically ahead
	const displaceMargin = 0.01

	bestLag := -1
	bestCorr := 0.0
	for lag := minLag + 1; lag < maxLag-1; lag++ {
		if acf[lag] > acf[lag-1] && acf[lag] >= acf[lag+1] && acf[lag] > ac.peakThreshold {
			if bestLag < 0 || acf[lag] > bestCorr+displaceMargin {
				bestCorr = acf[lag]
				bestLag = lag
			}
		}
	}

	if bestLag < 0 {
		return 0.0, 0.0
	}

	return float64(sampleRate) / float64(bestLag), bestCorr
}
