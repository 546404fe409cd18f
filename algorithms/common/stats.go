package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across algorithms, backed by gonum
// where it provides an implementation.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopStdDev calculates the population standard deviation (divisor n).
// Rolling liveness statistics describe the buffered window itself rather
// than a sample from a larger population, so the population form is used.
func PopStdDev(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(n))
}

// CoefficientOfVariation returns stddev/|mean|, or 0 for a zero mean
func CoefficientOfVariation(data []float64) float64 {
	mean := Mean(data)
	if mean == 0 {
		return 0.0
	}
	return PopStdDev(data) / math.Abs(mean)
}

// MeanAbsDiff calculates the mean absolute difference between consecutive
// values; used as the frame-to-frame jitter measure
func MeanAbsDiff(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}

	sum := 0.0
	for i := 1; i < len(data); i++ {
		sum += math.Abs(data[i] - data[i-1])
	}

	return sum / float64(len(data)-1)
}

// RMS calculates root mean square via the L2 norm
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 2) / math.Sqrt(float64(len(data)))
}

// Peak returns the largest absolute sample value
func Peak(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Clamp limits v to the range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the unit interval
func Clamp01(v float64) float64 {
	return Clamp(v, 0.0, 1.0)
}

// WeightedMean computes the weighted arithmetic mean of values.
// Returns 0 when the weights sum to 0.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0.0
	}
	if floats.Sum(weights) == 0 {
		return 0.0
	}
	return stat.Mean(values, weights)
}
