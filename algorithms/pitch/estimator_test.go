package pitch

import (
	"math"
	"testing"
)

func sineFrame(frequency, amplitude float64, length, sampleRate int) []float64 {
	frame := make([]float64, length)
	for i := range frame {
		frame[i] = amplitude * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
	}
	return frame
}

func TestSine440WithinOnePercent(t *testing.T) {
	estimator := NewEstimator()
	frame := sineFrame(440, 0.5, 2048, 44100)

	reading := estimator.Estimate(frame, 44100)
	if reading.Frequency == 0 {
		t.Fatalf("expected a pitch for a clean 440 Hz sine")
	}
	if deviation := math.Abs(reading.Frequency-440) / 440; deviation > 0.01 {
		t.Fatalf("440 Hz sine estimated as %v Hz (%.2f%% off)", reading.Frequency, deviation*100)
	}
	if len(reading.Candidates) == 0 {
		t.Fatalf("expected fusion candidates for a voiced frame")
	}
}

func TestAllSilence(t *testing.T) {
	estimator := NewEstimator()
	reading := estimator.Estimate(make([]float64, 2048), 44100)

	if reading.Frequency != 0 {
		t.Fatalf("expected no pitch for silence, got %v Hz", reading.Frequency)
	}
	if reading.Amplitude != 0 {
		t.Fatalf("expected 0 amplitude for silence, got %v", reading.Amplitude)
	}
}

func TestShortFrameDegrades(t *testing.T) {
	estimator := NewEstimator()
	reading := estimator.Estimate(sineFrame(440, 0.5, 100, 44100), 44100)

	if reading.Frequency != 0 {
		t.Fatalf("expected degraded result for a short frame, got %v Hz", reading.Frequency)
	}
	if reading.Amplitude <= 0 {
		t.Fatalf("short frames still report amplitude, got %v", reading.Amplitude)
	}
}

func TestEmptyFrameDoesNotPanic(t *testing.T) {
	estimator := NewEstimator()
	reading := estimator.Estimate(nil, 44100)
	if reading.Frequency != 0 || reading.Amplitude != 0 {
		t.Fatalf("expected zero reading for empty frame, got %+v", reading)
	}
}

func TestOutOfRangeFrequencyZeroed(t *testing.T) {
	estimator := NewEstimator()
	// 50 Hz sits below the voice band: the crossing rate lands near 39 Hz
	// and neither periodicity estimator finds an acceptable period, so the
	// fused result must be forced to 0
	reading := estimator.Estimate(sineFrame(50, 0.5, 2048, 44100), 44100)
	if reading.Frequency != 0 {
		t.Fatalf("expected 0 for out-of-range pitch, got %v Hz", reading.Frequency)
	}
}

func TestDCOffsetDoesNotBiasPitch(t *testing.T) {
	estimator := NewEstimator()

	// A capture-chain DC offset shifts every zero crossing; the DC blocker
	// in front of the estimators must absorb it
	frame := sineFrame(440, 0.5, 2048, 44100)
	for i := range frame {
		frame[i] += 0.3
	}

	reading := estimator.Estimate(frame, 44100)
	if reading.Frequency == 0 {
		t.Fatalf("expected a pitch for an offset 440 Hz sine")
	}
	if deviation := math.Abs(reading.Frequency-440) / 440; deviation > 0.01 {
		t.Fatalf("offset 440 Hz sine estimated as %v Hz", reading.Frequency)
	}
}

func TestFaintSignalReanalysis(t *testing.T) {
	estimator := NewEstimator()
	// Below the noise floor (RMS ~0.0014) but loud enough for the
	// normalized retry path
	faint := sineFrame(440, 0.002, 2048, 44100)
	loud := sineFrame(440, 0.002*faintBoost*2, 2048, 44100)

	reading := estimator.Estimate(faint, 44100)
	if reading.Frequency == 0 {
		t.Fatalf("expected the faint-signal path to recover the pitch")
	}
	if deviation := math.Abs(reading.Frequency-440) / 440; deviation > 0.01 {
		t.Fatalf("faint 440 Hz sine estimated as %v Hz", reading.Frequency)
	}
	// Boosted amplitude still respects monotonicity against a louder frame
	if louder := estimator.Estimate(loud, 44100); reading.Amplitude > louder.Amplitude {
		t.Fatalf("boosted faint amplitude %v exceeds louder frame amplitude %v",
			reading.Amplitude, louder.Amplitude)
	}
}

func TestDeepSilenceSkipsReanalysis(t *testing.T) {
	estimator := NewEstimator()
	reading := estimator.Estimate(sineFrame(440, 0.0005, 2048, 44100), 44100)
	if reading.Frequency != 0 {
		t.Fatalf("expected no pitch below the deep-silence floor, got %v Hz", reading.Frequency)
	}
}

func TestSmootherQuantizesToThreeHertz(t *testing.T) {
	smoother := NewSmoother(10)
	smoothed := smoother.Smooth(440.9)
	if math.Mod(smoothed, 3.0) != 0 {
		t.Fatalf("expected a multiple of 3 Hz, got %v", smoothed)
	}
	if math.Abs(smoothed-441) > 1e-9 {
		t.Fatalf("expected 440.9 to quantize to 441, got %v", smoothed)
	}
}

func TestSmootherDampensOutlier(t *testing.T) {
	smoother := NewSmoother(10)
	for n := 0; n < 5; n++ {
		smoother.Smooth(440)
	}

	smoothed := smoother.Smooth(800)
	if smoothed >= 800 {
		t.Fatalf("outlier passed through unsmoothed: %v", smoothed)
	}
	if smoothed <= 440 {
		t.Fatalf("smoothed value should move toward the outlier, got %v", smoothed)
	}
	// The jump is a fraction of the raw 360 Hz step
	if smoothed-440 > 180 {
		t.Fatalf("outlier produced too large a jump: %v", smoothed)
	}
}

func TestSmootherIgnoresUnvoiced(t *testing.T) {
	smoother := NewSmoother(10)
	smoother.Smooth(440)

	if got := smoother.Smooth(0); got != 0 {
		t.Fatalf("unvoiced reading must smooth to 0, got %v", got)
	}
	// The unvoiced reading did not disturb the history
	if got := smoother.Smooth(440); math.Abs(got-440) > 1.5 {
		t.Fatalf("history disturbed by unvoiced reading: %v", got)
	}
}
