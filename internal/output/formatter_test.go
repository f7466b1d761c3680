package output

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigscope/sigscope/pkg/dsp"
)

func testSnapshot() *Snapshot {
	s := &dsp.Spectrum{
		Bins:       []complex128{complex(0, 0), complex(1000, 0), complex(0, 500)},
		SampleRate: 8000,
		FFTSize:    4,
		Sequence:   7,
		CapturedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	return BuildSnapshot(s)
}

func TestBuildSnapshot(t *testing.T) {
	snap := testSnapshot()

	require.Len(t, snap.Bins, 3)
	assert.Equal(t, uint64(7), snap.Sequence)
	assert.Equal(t, 4, snap.FFTSize)
	assert.Equal(t, 0.0, snap.Bins[0].FrequencyHz)
	assert.Equal(t, 2000.0, snap.Bins[1].FrequencyHz)
	assert.Equal(t, 4000.0, snap.Bins[2].FrequencyHz)
	assert.InDelta(t, 1000.0, snap.Bins[1].Magnitude, 1e-9)
	assert.InDelta(t, 500.0, snap.Bins[2].Magnitude, 1e-9)
}

func TestBuildSnapshotClampsLevels(t *testing.T) {
	s := &dsp.Spectrum{
		// Zero bin (-Inf raw dBFS) and an over-reference bin (+dB).
		Bins:       []complex128{complex(0, 0), complex(1e9, 0)},
		SampleRate: 8000,
		FFTSize:    4,
	}
	snap := BuildSnapshot(s)

	require.Len(t, snap.Bins, 2)
	assert.Equal(t, dsp.DisplayFloorDBFS, snap.Bins[0].DBFS)
	assert.Equal(t, dsp.DisplayCeilDBFS, snap.Bins[1].DBFS)
	for _, row := range snap.Bins {
		assert.False(t, math.IsInf(row.DBFS, 0), "bin %d", row.Bin)
	}
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"json", "yaml", "csv", "table"} {
		f, err := NewFormatter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f, format)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	data, err := (&JSONFormatter{}).Format(testSnapshot())
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, uint64(7), decoded.Sequence)
	assert.Len(t, decoded.Bins, 3)
	assert.Equal(t, dsp.DisplayFloorDBFS, decoded.Bins[0].DBFS, "silent bin survives JSON")
}

func TestCSVFormatter(t *testing.T) {
	data, err := (&CSVFormatter{}).Format(testSnapshot())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4, "header plus one row per bin")
	assert.Equal(t, "bin,frequency_hz,magnitude,dbfs", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "1,2000.000"))
}

func TestYAMLFormatter(t *testing.T) {
	data, err := (&YAMLFormatter{}).Format(testSnapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), "sequence: 7")
	assert.Contains(t, string(data), "fft_size: 4")
}

func TestTableFormatter(t *testing.T) {
	data, err := (&TableFormatter{}).Format(testSnapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), "FREQUENCY (Hz)")
	assert.Contains(t, string(data), "Spectrum #7")
}
