package sink

import (
	"sort"
	"time"

	"github.com/sigscope/sigscope/pkg/dsp"
)

// Summary is the compact per-frame view handed to sinks: enough for a
// one-line console readout or a telemetry message without shipping every
// bin.
type Summary struct {
	Sequence        uint64    `json:"sequence"`
	CapturedAt      time.Time `json:"captured_at"`
	Bins            int       `json:"bins"`
	SampleRate      float64   `json:"sample_rate"`
	PeakBin         int       `json:"peak_bin"`
	PeakFrequencyHz float64   `json:"peak_frequency_hz"`
	PeakDBFS        float64   `json:"peak_dbfs"`
	NoiseFloorDBFS  float64   `json:"noise_floor_dbfs"`

	// Levels holds the clamped per-bin dBFS values for sinks that render
	// the full spectrum shape.
	Levels []float64 `json:"-"`
}

// Sink receives rendered spectrum summaries at the consumer's cadence.
type Sink interface {
	Publish(s *Summary) error
	Close() error
}

// Summarize reduces a spectrum to its display summary.
func Summarize(s *dsp.Spectrum) *Summary {
	levels := s.DBFS()
	peak := s.Peak()

	clamped := make([]float64, len(levels))
	for i, db := range levels {
		clamped[i] = dsp.ClampDBFS(db)
	}

	return &Summary{
		Sequence:        s.Sequence,
		CapturedAt:      s.CapturedAt,
		Bins:            len(s.Bins),
		SampleRate:      s.SampleRate,
		PeakBin:         peak,
		PeakFrequencyHz: s.Frequency(peak),
		PeakDBFS:        dsp.ClampDBFS(levels[peak]),
		NoiseFloorDBFS:  noiseFloor(clamped),
		Levels:          clamped,
	}
}

// noiseFloor estimates the broadband floor as the median bin level.
func noiseFloor(levels []float64) float64 {
	if len(levels) == 0 {
		return dsp.DisplayFloorDBFS
	}
	sorted := make([]float64, len(levels))
	copy(sorted, levels)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
