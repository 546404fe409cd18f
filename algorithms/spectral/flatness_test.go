package spectral

import (
	"math"
	"math/rand"
	"testing"
)

func TestFlatnessOfPureTone(t *testing.T) {
	flatness := NewFlatness()

	// Bin-aligned sine: 20 * 44100 / 2048 Hz over exactly 20 cycles, so all
	// energy lands in one spectral line
	const frequency = 20.0 * 44100.0 / 2048.0
	frame := make([]float64, 2048)
	for i := range frame {
		frame[i] = 0.5 * math.Sin(2*math.Pi*frequency*float64(i)/44100.0)
	}

	if got := flatness.Compute(frame); got > 0.02 {
		t.Fatalf("expected near-zero flatness for a pure tone, got %v", got)
	}
}

func TestFlatnessOfNoise(t *testing.T) {
	flatness := NewFlatness()

	rng := rand.New(rand.NewSource(42))
	frame := make([]float64, 2048)
	for i := range frame {
		frame[i] = rng.Float64()*2 - 1
	}

	got := flatness.Compute(frame)
	if got < 0.3 {
		t.Fatalf("expected high flatness for white noise, got %v", got)
	}
	if got > 1.0 {
		t.Fatalf("flatness must stay within [0, 1], got %v", got)
	}
}

func TestFlatnessOfSilence(t *testing.T) {
	flatness := NewFlatness()

	if got := flatness.Compute(make([]float64, 2048)); got != 0 {
		t.Fatalf("expected 0 flatness for silence, got %v", got)
	}
	if got := flatness.Compute(nil); got != 0 {
		t.Fatalf("expected 0 flatness for an empty frame, got %v", got)
	}
}

func TestMagnitudesOneSided(t *testing.T) {
	fft := NewFFT()

	magnitudes := fft.Magnitudes(make([]float64, 1024))
	if len(magnitudes) != 512 {
		t.Fatalf("expected one-sided spectrum of 512 bins, got %d", len(magnitudes))
	}
	if got := fft.Magnitudes(nil); len(got) != 0 {
		t.Fatalf("expected empty spectrum for empty input, got %d bins", len(got))
	}
}
