package output

import (
	"time"

	"github.com/sigscope/sigscope/pkg/dsp"
)

// Snapshot is a display-ready dump of one spectrum: per-bin frequency,
// linear magnitude, and dBFS level alongside the capture context.
type Snapshot struct {
	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
	Sequence   uint64    `json:"sequence" yaml:"sequence"`
	SampleRate float64   `json:"sample_rate" yaml:"sample_rate"`
	FFTSize    int       `json:"fft_size" yaml:"fft_size"`
	Bins       []BinRow  `json:"bins" yaml:"bins"`
}

// BinRow is one frequency bin of a snapshot.
type BinRow struct {
	Bin         int     `json:"bin" yaml:"bin"`
	FrequencyHz float64 `json:"frequency_hz" yaml:"frequency_hz"`
	Magnitude   float64 `json:"magnitude" yaml:"magnitude"`
	DBFS        float64 `json:"dbfs" yaml:"dbfs"`
}

// BuildSnapshot flattens a spectrum into rows a formatter can serialize.
// Levels are clamped into the display window: a zero-magnitude bin is
// -Inf in raw dBFS, which encoding/json cannot represent.
func BuildSnapshot(s *dsp.Spectrum) *Snapshot {
	levels := s.DBFS()
	rows := make([]BinRow, len(s.Bins))
	for i := range s.Bins {
		rows[i] = BinRow{
			Bin:         i,
			FrequencyHz: s.Frequency(i),
			Magnitude:   s.Magnitude(i),
			DBFS:        dsp.ClampDBFS(levels[i]),
		}
	}
	return &Snapshot{
		CapturedAt: s.CapturedAt,
		Sequence:   s.Sequence,
		SampleRate: s.SampleRate,
		FFTSize:    s.FFTSize,
		Bins:       rows,
	}
}
