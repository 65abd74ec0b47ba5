// Package analysis post-processes sampled run observables: spectral
// analysis of energy and temperature series to find oscillation
// frequencies.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2
// decimation-in-time. The input length must be a power of two; use
// PowerSpectrum for arbitrary lengths.
func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n&(n-1) != 0 {
		return nil, fmt.Errorf("fft length %d is not a power of 2", n)
	}
	result := make([]complex128, n)
	for i, v := range data {
		result[i] = complex(v, 0)
	}
	fftInPlace(result)
	return result, nil
}

func fftInPlace(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}
	fftInPlace(even)
	fftInPlace(odd)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		x[k] = even[k] + w*odd[k]
		x[k+n/2] = even[k] - w*odd[k]
	}
}

// PowerSpectrum returns the magnitude of the positive-frequency half of
// the transform, zero-padding the input to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	fft, _ := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC spectral peak of a
// series sampled every sampleDt seconds. Returns 0 when the series is
// too short or flat.
func DominantFrequency(data []float64, sampleDt float64) float64 {
	if len(data) < 4 || sampleDt <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	// bin width = sampling rate / padded length; ps covers half the bins.
	return float64(maxIdx) / (float64(2*len(ps)) * sampleDt)
}
