package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigscope/sigscope/pkg/dsp"
)

func testSpectrum() *dsp.Spectrum {
	const n = 8
	ref := dsp.HalfScale * float64(n)
	return &dsp.Spectrum{
		// One dominant tone at bin 2, everything else far below the
		// display floor.
		Bins: []complex128{
			complex(0, 0),
			complex(ref/1e6, 0),
			complex(ref/2, 0),
			complex(ref/1e6, 0),
			complex(0, 0),
		},
		SampleRate: 8000,
		FFTSize:    n,
		Sequence:   3,
		CapturedAt: time.Now(),
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(testSpectrum())

	assert.Equal(t, uint64(3), summary.Sequence)
	assert.Equal(t, 5, summary.Bins)
	assert.Equal(t, 2, summary.PeakBin)
	assert.Equal(t, 2000.0, summary.PeakFrequencyHz)
	assert.InDelta(t, -6.0206, summary.PeakDBFS, 1e-3)

	// All but the peak sit below the display floor, so the median floor
	// clamps there.
	assert.Equal(t, dsp.DisplayFloorDBFS, summary.NoiseFloorDBFS)

	require.Len(t, summary.Levels, 5)
	for _, level := range summary.Levels {
		assert.GreaterOrEqual(t, level, dsp.DisplayFloorDBFS)
		assert.LessOrEqual(t, level, dsp.DisplayCeilDBFS)
	}
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, false, 0)

	require.NoError(t, sink.Publish(Summarize(testSpectrum())))
	line := buf.String()
	assert.Contains(t, line, "#3")
	assert.Contains(t, line, "2000.0 Hz")
	assert.Contains(t, line, "dBFS")
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestConsoleSinkGraph(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, true, 5)

	require.NoError(t, sink.Publish(Summarize(testSpectrum())))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "readout line plus graph line")
	assert.NotEmpty(t, lines[1])
}
