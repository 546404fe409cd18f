package common

// PeakNormalize scales the signal so its largest absolute sample becomes 1.
// Silent input is returned unchanged. The input slice is not modified.
func PeakNormalize(signal []float64) []float64 {
	peak := Peak(signal)
	if peak < 1e-10 {
		return signal
	}

	normalized := make([]float64, len(signal))
	for i, v := range signal {
		normalized[i] = v / peak
	}
	return normalized
}
