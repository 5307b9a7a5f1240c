package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooShort    = errors.New("analysis: trace too short")
	ErrBadInterval = errors.New("analysis: sample interval must be positive")
	ErrNoSignal    = errors.New("analysis: trace has no oscillating component")
	ErrLength      = errors.New("analysis: trace lengths differ")
)

// Spectrum is the one-sided magnitude spectrum of a real trace.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum removes the mean from data and returns the magnitudes of
// the non-negative frequency bins. dt is the sample interval in seconds.
func PowerSpectrum(data []float64, dt float64) (Spectrum, error) {
	n := len(data)
	if n < 4 {
		return Spectrum{}, ErrTooShort
	}
	if !(dt > 0) {
		return Spectrum{}, ErrBadInterval
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	half := n/2 + 1
	s := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	df := 1 / (float64(n) * dt)
	for k := 0; k < half; k++ {
		s.Freqs[k] = float64(k) * df
		s.Power[k] = cmplx.Abs(coeffs[k])
	}
	return s, nil
}

// DominantFrequency returns the frequency in Hz of the strongest bin,
// refined by parabolic interpolation over its neighbours.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	s, err := PowerSpectrum(data, dt)
	if err != nil {
		return 0, err
	}

	peak := 1
	for k := 2; k < len(s.Power); k++ {
		if s.Power[k] > s.Power[peak] {
			peak = k
		}
	}
	if s.Power[peak] <= 1e-12*float64(len(data)) {
		return 0, ErrNoSignal
	}

	offset := 0.0
	if peak+1 < len(s.Power) {
		a, b, c := s.Power[peak-1], s.Power[peak], s.Power[peak+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	df := s.Freqs[1]
	return math.Max(0, (float64(peak)+offset)*df), nil
}
