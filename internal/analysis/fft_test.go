package analysis

import (
	"math"
	"testing"
)

func TestFFTRejectsOddLength(t *testing.T) {
	if _, err := FFT(make([]float64, 6)); err == nil {
		t.Fatal("FFT accepted non-power-of-2 length")
	}
}

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{2, 2, 2, 2}
	fft, err := FFT(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := real(fft[0]); math.Abs(got-8) > 1e-12 {
		t.Errorf("DC component = %g, want 8", got)
	}
	for i := 1; i < len(fft); i++ {
		if mag := math.Hypot(real(fft[i]), imag(fft[i])); mag > 1e-12 {
			t.Errorf("bin %d has magnitude %g, want 0", i, mag)
		}
	}
}

func TestPowerSpectrumPadsInput(t *testing.T) {
	// 100 samples pad to 128; the spectrum has 64 bins.
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 64 {
		t.Errorf("spectrum has %d bins, want 64", len(ps))
	}
	if PowerSpectrum(nil) != nil {
		t.Error("empty input should yield nil")
	}
}

func TestDominantFrequency(t *testing.T) {
	// A pure 5 Hz tone sampled at 128 Hz for 2 s: 256 samples, no
	// padding, so the peak lands exactly on bin 10.
	const (
		freq     = 5.0
		sampleDt = 1.0 / 128.0
		n        = 256
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * freq * float64(i) * sampleDt)
	}
	got := DominantFrequency(data, sampleDt)
	if math.Abs(got-freq) > 0.5 {
		t.Errorf("DominantFrequency = %g Hz, want %g", got, freq)
	}

	if got := DominantFrequency([]float64{1, 1}, sampleDt); got != 0 {
		t.Errorf("short series frequency = %g, want 0", got)
	}
	if got := DominantFrequency(make([]float64, 64), sampleDt); got != 0 {
		t.Errorf("flat series frequency = %g, want 0", got)
	}
}
