// Package filters contains the time-domain filters applied to frames before
// pitch analysis.
package filters

import (
	"math"
)

// DCRemoval is a first-order DC blocking filter.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
//
// Implements y[n] = x[n] - x[n-1] + R*y[n-1]. A DC offset from a cheap
// capture chain shifts every zero crossing and biases the crossing-rate
// pitch estimate; blocking it costs three operations per sample. The filter
// runs per frame from zeroed state, so it holds no state between frames.
type DCRemoval struct {
	poleLocation float64 // R parameter (0 < R < 1)
}

// NewDCRemoval creates a DC removal filter with the standard audio pole
// location of 0.995 (cutoff near 35 Hz at 44.1 kHz)
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{poleLocation: 0.995}
}

// NewDCRemovalWithPole creates a DC removal filter with an explicit pole
// location. Closer to 1 means a lower cutoff and stronger DC blocking.
// Out-of-range values fall back to the default.
func NewDCRemovalWithPole(poleLocation float64) *DCRemoval {
	if poleLocation <= 0 || poleLocation >= 1 {
		return NewDCRemoval()
	}
	return &DCRemoval{poleLocation: poleLocation}
}

// Apply runs the filter over one frame and returns the filtered samples.
// The input slice is not modified.
func (dc *DCRemoval) Apply(frame []float64) []float64 {
	filtered := make([]float64, len(frame))

	var x1, y1 float64
	for i, x := range frame {
		y := x - x1 + dc.poleLocation*y1
		filtered[i] = y
		x1, y1 = x, y
	}
	return filtered
}

// CutoffFrequency returns the approximate -3dB cutoff in Hz for the given
// sample rate, from fc = (1-R)*fs/(2*pi)
func (dc *DCRemoval) CutoffFrequency(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0.0
	}
	return (1.0 - dc.poleLocation) * float64(sampleRate) / (2.0 * math.Pi)
}
