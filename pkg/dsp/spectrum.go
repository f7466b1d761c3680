package dsp

import (
	"math"
	"math/cmplx"
	"time"
)

// Display conventions inherited from the analog front end: the ADC is
// 12-bit and biased near mid-scale, so a full-scale sine swings 2048
// counts around the mean.
const (
	// HalfScale is half the ADC full range, the amplitude of a
	// full-scale sine after DC removal.
	HalfScale = 2048.0
	// DisplayFloorDBFS and DisplayCeilDBFS bound the practical display
	// window for log-magnitude rendering.
	DisplayFloorDBFS = -60.0
	DisplayCeilDBFS  = 0.0
)

// Spectrum is one FFT frame: the N/2+1 non-redundant complex bins of a
// real-input transform, plus the capture context a consumer needs to map
// bins to frequencies and detect staleness.
type Spectrum struct {
	// Bins holds complex amplitudes for bins 0..FFTSize/2 inclusive.
	Bins []complex128
	// SampleRate is the fixed device sample rate in Hz.
	SampleRate float64
	// FFTSize is the number of real input samples the transform consumed.
	FFTSize int
	// Sequence increments once per published frame.
	Sequence uint64
	// CapturedAt is the host-side completion time of the transform.
	CapturedAt time.Time
}

// Frequency returns the center frequency of bin i in Hz.
func (s *Spectrum) Frequency(i int) float64 {
	return float64(i) * s.SampleRate / float64(s.FFTSize)
}

// Magnitude returns the complex magnitude of bin i.
func (s *Spectrum) Magnitude(i int) float64 {
	return cmplx.Abs(s.Bins[i])
}

// DBFS converts every bin to decibels relative to full scale, where the
// reference is the transform magnitude of a bin-centered full-scale sine
// driven to the amplitude normalization 2048*N. Values are not clamped;
// clamping is a rendering decision.
func (s *Spectrum) DBFS() []float64 {
	ref := HalfScale * float64(s.FFTSize)
	out := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = 20 * math.Log10(cmplx.Abs(b)/ref)
	}
	return out
}

// Peak returns the index of the bin with the largest magnitude.
func (s *Spectrum) Peak() int {
	peak := 0
	max := 0.0
	for i, b := range s.Bins {
		if m := cmplx.Abs(b); m > max {
			max = m
			peak = i
		}
	}
	return peak
}

// ClampDBFS clips a level into the practical display window.
func ClampDBFS(db float64) float64 {
	return math.Min(DisplayCeilDBFS, math.Max(DisplayFloorDBFS, db))
}
