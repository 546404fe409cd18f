package spectral

import (
	"math"
)

// Flatness computes spectral flatness (Wiener entropy), the ratio of the
// geometric to the arithmetic mean of the magnitude spectrum.
//
// Live voices spread energy over harmonics and noise; a synthesized or
// replayed pure tone concentrates it in one bin. Very low flatness held
// perfectly steady over many frames is therefore a synthetic-audio cue.
type Flatness struct {
	fft          *FFT
	window       *Hann   // Rebuilt lazily when the frame size changes
	minThreshold float64 // Floor to avoid log(0)
}

// NewFlatness creates a spectral flatness calculator
func NewFlatness() *Flatness {
	return &Flatness{
		fft:          NewFFT(),
		minThreshold: 1e-10,
	}
}

// Compute calculates flatness in [0, 1] for one frame of samples.
// 0 means a single spectral line, 1 means white noise. Empty or silent
// frames return 0. The frame is Hann-windowed before the transform.
func (fl *Flatness) Compute(frame []float64) float64 {
	if len(frame) == 0 {
		return 0.0
	}

	if fl.window == nil || fl.window.Size() != len(frame) {
		fl.window = NewHann(len(frame))
	}
	return fl.ComputeSpectrum(fl.fft.Magnitudes(fl.window.Apply(frame)))
}

// ComputeSpectrum calculates flatness from a precomputed magnitude spectrum
func (fl *Flatness) ComputeSpectrum(magnitudes []float64) float64 {
	if len(magnitudes) == 0 {
		return 0.0
	}

	// Geometric mean in the log domain; near-zero bins are clamped to the
	// floor rather than dropped so a single spectral line still drives the
	// mean toward zero
	logSum := 0.0
	for _, magnitude := range magnitudes {
		if magnitude < fl.minThreshold {
			magnitude = fl.minThreshold
		}
		logSum += math.Log(magnitude)
	}
	geometricMean := math.Exp(logSum / float64(len(magnitudes)))

	arithmeticMean := 0.0
	for _, magnitude := range magnitudes {
		arithmeticMean += magnitude
	}
	arithmeticMean /= float64(len(magnitudes))

	if arithmeticMean <= fl.minThreshold {
		return 0.0
	}

	flatness := geometricMean / arithmeticMean
	if flatness > 1.0 {
		flatness = 1.0
	}

	return flatness
}
