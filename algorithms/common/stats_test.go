package common

import (
	"math"
	"testing"
)

func TestPopStdDev(t *testing.T) {
	// Population stddev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := PopStdDev(data); math.Abs(got-2.0) > 1e-12 {
		t.Fatalf("expected population stddev 2, got %v", got)
	}
	if got := PopStdDev([]float64{3, 3, 3}); got != 0 {
		t.Fatalf("expected 0 stddev for constant data, got %v", got)
	}
	if got := PopStdDev(nil); got != 0 {
		t.Fatalf("expected 0 stddev for empty data, got %v", got)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if got := CoefficientOfVariation([]float64{100, 100, 100}); got != 0 {
		t.Fatalf("expected 0 CV for constant data, got %v", got)
	}
	data := []float64{90, 100, 110}
	want := PopStdDev(data) / 100.0
	if got := CoefficientOfVariation(data); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected CV %v, got %v", want, got)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	if got := MeanAbsDiff([]float64{100, 110, 90}); math.Abs(got-15.0) > 1e-12 {
		t.Fatalf("expected jitter 15, got %v", got)
	}
	if got := MeanAbsDiff([]float64{42}); got != 0 {
		t.Fatalf("expected 0 jitter for a single value, got %v", got)
	}
}

func TestRMSOfSine(t *testing.T) {
	const amplitude = 0.5
	data := make([]float64, 4410)
	for i := range data {
		data[i] = amplitude * math.Sin(2*math.Pi*float64(i)/100.0)
	}

	want := amplitude / math.Sqrt2
	if got := RMS(data); math.Abs(got-want) > 0.01 {
		t.Fatalf("expected RMS near %v, got %v", want, got)
	}
}

func TestWeightedMeanFavorsRecent(t *testing.T) {
	values := []float64{100, 200}
	weights := []float64{1, 3}
	if got := WeightedMean(values, weights); math.Abs(got-175.0) > 1e-12 {
		t.Fatalf("expected weighted mean 175, got %v", got)
	}
	if got := WeightedMean(values, []float64{0, 0}); got != 0 {
		t.Fatalf("expected 0 for zero weights, got %v", got)
	}
}

func TestRingEvictsOldest(t *testing.T) {
	ring := NewRing(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		ring.Push(v)
	}

	if ring.Len() != 3 {
		t.Fatalf("expected ring length 3, got %d", ring.Len())
	}
	values := ring.Values()
	want := []float64{3, 4, 5}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("unexpected ring contents: %v", values)
		}
	}
	if ring.Last() != 5 {
		t.Fatalf("expected last value 5, got %v", ring.Last())
	}
}

func TestRingNeverExceedsCapacity(t *testing.T) {
	ring := NewRing(16)
	for i := 0; i < 100; i++ {
		ring.Push(float64(i))
		if ring.Len() > 16 {
			t.Fatalf("ring exceeded capacity at push %d: len %d", i, ring.Len())
		}
	}
}
