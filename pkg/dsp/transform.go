package dsp

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// DefaultFFTSize and DefaultSampleRate match the reference device: one
// frame is 8192 samples captured at 96 kHz.
const (
	DefaultFFTSize    = 8192
	DefaultSampleRate = 96000.0
)

// SizeError reports a frame whose sample count does not match the
// transform size. The device protocol has no length field, so this is the
// only guard between a truncated frame and out-of-range indexing.
type SizeError struct {
	Got  int
	Want int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("frame has %d samples, transform requires exactly %d", e.Got, e.Want)
}

// Transformer converts raw unsigned ADC frames into real FFT spectra.
type Transformer struct {
	size       int
	sampleRate float64
	window     Window
}

// NewTransformer creates a transformer for frames of exactly size samples.
// The window may be nil for a rectangular (unshaped) analysis.
func NewTransformer(size int, sampleRate float64, win Window) (*Transformer, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft size must be a positive power of two, got %d", size)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %v", sampleRate)
	}
	return &Transformer{size: size, sampleRate: sampleRate, window: win}, nil
}

// Size returns the number of input samples one transform consumes.
func (t *Transformer) Size() int {
	return t.size
}

// Bins returns the number of output bins (size/2 + 1).
func (t *Transformer) Bins() int {
	return t.size/2 + 1
}

// Transform removes DC bias from the samples and computes the forward
// real-input FFT, returning the non-redundant half spectrum.
//
// The ADC input is single-ended and biased near mid-scale, so the raw
// frame carries a large constant offset. Subtracting the arithmetic mean
// keeps the zero-frequency bin from dwarfing real spectral content.
func (t *Transformer) Transform(samples []uint16) (*Spectrum, error) {
	if len(samples) != t.size {
		return nil, &SizeError{Got: len(samples), Want: t.size}
	}

	// Sum in an integer accumulator: 8192 samples of at most 4095 stay
	// well inside uint64 and avoid float rounding drift.
	var sum uint64
	for _, s := range samples {
		sum += uint64(s)
	}
	mean := float64(sum) / float64(len(samples))

	buf := make([]float64, t.size)
	for i, s := range samples {
		buf[i] = float64(s) - mean
	}
	if t.window != nil {
		t.window(buf)
	}

	bins := fft.FFTReal(buf)
	return &Spectrum{
		Bins:       bins[:t.size/2+1],
		SampleRate: t.sampleRate,
		FFTSize:    t.size,
	}, nil
}
