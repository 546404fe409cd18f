package pitch

import (
	"math"
)

// YIN implements the YIN fundamental frequency estimator.
//
// References:
// - de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental frequency estimator for speech and music"
//
// The difference function is cumulative-mean-normalized and scanned for the
// first dip below the threshold that is also a local minimum; the dip
// location is refined with parabolic interpolation. Results outside the
// human-voice band are rejected.
type YIN struct {
	threshold float64
	minFreq   float64 // Lower edge of the accepted voice band (Hz)
	maxFreq   float64 // Upper edge of the accepted voice band (Hz)
}

// NewYIN creates a YIN estimator with the canonical threshold and the
// 75-1000 Hz human-voice acceptance band
func NewYIN() *YIN {
	return &YIN{
		threshold: 0.15,
		minFreq:   75.0,
		maxFreq:   1000.0,
	}
}

// Estimate returns the detected fundamental frequency and a confidence in
// [0, 1], or (0, 0) when no acceptable period is found. It never fails:
// degenerate input degrades to no detection.
func (y *YIN) Estimate(frame []float64, sampleRate int) (frequency, confidence float64) {
	n := len(frame)
	maxPeriod := n / 2
	if limit := int(float64(sampleRate) / y.minFreq); limit < maxPeriod {
		maxPeriod = limit
	}
	minPeriod := int(float64(sampleRate) / y.maxFreq)
	if minPeriod < 2 {
		minPeriod = 2
	}
	if maxPeriod <= minPeriod {
		return 0.0, 0.0
	}

	// Difference function d(tau)
	diff := make([]float64, maxPeriod)
	for tau := 1; tau < maxPeriod; tau++ {
		sum := 0.0
		for j := 0; j+tau < n; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference function
	cmndf := make([]float64, maxPeriod)
	cmndf[0] = 1.0

	runningSum := 0.0
	for tau := 1; tau < maxPeriod; tau++ {
		runningSum += diff[tau]
		if runningSum == 0 {
			cmndf[tau] = 1.0
			continue
		}
		cmndf[tau] = diff[tau] * float64(tau) / runningSum
	}

	// First local minimum below threshold, else the global minimum
	bestTau := -1
	for tau := minPeriod; tau < maxPeriod-1; tau++ {
		if cmndf[tau] < y.threshold && cmndf[tau] <= cmndf[tau+1] {
			bestTau = tau
			break
		}
	}
	if bestTau < 0 {
		globalMin := math.Inf(1)
		for tau := minPeriod; tau < maxPeriod; tau++ {
			if cmndf[tau] < globalMin {
				globalMin = cmndf[tau]
				bestTau = tau
			}
		}
		if bestTau < 0 {
			return 0.0, 0.0
		}
	}

	period := parabolicInterpolation(cmndf, bestTau)
	if period <= 0 {
		return 0.0, 0.0
	}

	frequency = float64(sampleRate) / period
	if frequency < y.minFreq || frequency > y.maxFreq {
		return 0.0, 0.0
	}

	// The global-minimum fallback can land on a shallow dip in aperiodic
	// input; a non-positive normalized confidence means no real period
	confidence = 1.0 - cmndf[bestTau]
	if confidence <= 0 {
		return 0.0, 0.0
	}

	return frequency, confidence
}

// parabolicInterpolation refines a dip/peak location by fitting a parabola
// through the point and its two neighbors
func parabolicInterpolation(data []float64, idx int) float64 {
	if idx <= 0 || idx >= len(data)-1 {
		return float64(idx)
	}

	y1 := data[idx-1]
	y2 := data[idx]
	y3 := data[idx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a == 0 {
		return float64(idx)
	}

	return float64(idx) - b/(2*a)
}
