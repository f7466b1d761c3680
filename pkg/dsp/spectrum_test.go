package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectrumFrequencyMapping(t *testing.T) {
	s := &Spectrum{
		Bins:       make([]complex128, 4097),
		SampleRate: 96000,
		FFTSize:    8192,
	}

	assert.Equal(t, 0.0, s.Frequency(0))
	assert.InDelta(t, 11.71875, s.Frequency(1), 1e-9)
	assert.Equal(t, 48000.0, s.Frequency(4096), "last bin sits at Nyquist")
}

func TestSpectrumDBFS(t *testing.T) {
	const n = 8192
	ref := HalfScale * float64(n)

	s := &Spectrum{
		Bins:       []complex128{complex(ref, 0), complex(ref/2, 0), complex(ref/1000, 0)},
		SampleRate: 96000,
		FFTSize:    n,
	}

	levels := s.DBFS()
	require.Len(t, levels, 3)
	assert.InDelta(t, 0.0, levels[0], 1e-9)
	assert.InDelta(t, -6.0206, levels[1], 1e-3)
	assert.InDelta(t, -60.0, levels[2], 1e-3)
}

func TestSpectrumPeak(t *testing.T) {
	s := &Spectrum{
		Bins:    []complex128{complex(1, 0), complex(0, 9), complex(3, 4)},
		FFTSize: 4,
	}
	assert.Equal(t, 1, s.Peak())
}

func TestClampDBFS(t *testing.T) {
	assert.Equal(t, DisplayFloorDBFS, ClampDBFS(-120))
	assert.Equal(t, DisplayCeilDBFS, ClampDBFS(12))
	assert.Equal(t, -30.0, ClampDBFS(-30))
}
