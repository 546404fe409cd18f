package pitch

// ZeroCrossing estimates pitch from the sign-change rate of the frame. It is
// the cheapest and least reliable of the estimators and carries the lowest
// fusion weight; its value is robustness on clean periodic input.
type ZeroCrossing struct{}

// NewZeroCrossing creates a zero-crossing estimator
func NewZeroCrossing() *ZeroCrossing {
	return &ZeroCrossing{}
}

// Estimate returns the crossing-rate frequency estimate. The 0.9 factor
// compensates for spurious crossings contributed by noise. Confidence is a
// fixed low value; the method cannot judge its own reliability.
func (zc *ZeroCrossing) Estimate(frame []float64, sampleRate int) (frequency, confidence float64) {
	if len(frame) < 2 {
		return 0.0, 0.0
	}

	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i] > 0 && frame[i-1] <= 0) || (frame[i] <= 0 && frame[i-1] > 0) {
			crossings++
		}
	}

	if crossings == 0 {
		return 0.0, 0.0
	}

	frequency = float64(crossings) * float64(sampleRate) * 0.9 / (2.0 * float64(len(frame)))
	return frequency, 0.3
}
