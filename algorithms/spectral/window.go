package spectral

import (
	"math"
)

// Hann is a periodic Hann window with precomputed coefficients. Windowing a
// frame before the FFT confines spectral leakage, which keeps the flatness
// of an off-bin pure tone near zero instead of smearing it across the
// spectrum.
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a Hann window for the given frame size
func NewHann(size int) *Hann {
	h := &Hann{size: size, coefficients: make([]float64, size)}
	for i := 0; i < size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return h
}

// Apply returns the windowed signal. Signals of a different length than the
// window return nil.
func (h *Hann) Apply(signal []float64) []float64 {
	if len(signal) != h.size {
		return nil
	}

	windowed := make([]float64, h.size)
	for i, v := range signal {
		windowed[i] = v * h.coefficients[i]
	}
	return windowed
}

// Size returns the frame size the window was built for
func (h *Hann) Size() int {
	return h.size
}
