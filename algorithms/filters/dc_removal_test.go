package filters

import (
	"math"
	"testing"
)

func TestDCRemovalBlocksOffset(t *testing.T) {
	dc := NewDCRemoval()

	input := make([]float64, 2048)
	for i := range input {
		input[i] = 0.5
	}

	filtered := dc.Apply(input)
	sum := 0.0
	for _, v := range filtered {
		sum += v
	}
	if mean := sum / float64(len(filtered)); math.Abs(mean) > 0.06 {
		t.Fatalf("DC offset survived the filter: mean %v", mean)
	}
	if len(filtered) != len(input) {
		t.Fatalf("filter changed the frame length")
	}
}

func TestDCRemovalPassesVoiceBand(t *testing.T) {
	dc := NewDCRemoval()

	input := make([]float64, 2048)
	for i := range input {
		input[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}

	filtered := dc.Apply(input)
	var inEnergy, outEnergy float64
	for i := range input {
		inEnergy += input[i] * input[i]
		outEnergy += filtered[i] * filtered[i]
	}
	if ratio := outEnergy / inEnergy; ratio < 0.95 || ratio > 1.05 {
		t.Fatalf("440 Hz content attenuated by the DC blocker: energy ratio %v", ratio)
	}
}

func TestDCRemovalPoleFallback(t *testing.T) {
	if got := NewDCRemovalWithPole(1.5).CutoffFrequency(44100); math.Abs(got-NewDCRemoval().CutoffFrequency(44100)) > 1e-9 {
		t.Fatalf("invalid pole did not fall back to the default: cutoff %v", got)
	}
	if got := NewDCRemovalWithPole(0.99).CutoffFrequency(44100); got <= NewDCRemoval().CutoffFrequency(44100) {
		t.Fatalf("smaller pole must raise the cutoff, got %v", got)
	}
}
