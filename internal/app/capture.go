package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/internal/output"
	"github.com/sigscope/sigscope/pkg/acquisition"
	"github.com/sigscope/sigscope/pkg/dsp"
)

// CaptureSnapshot acquires frames synchronously and returns the snapshot
// of the last one. Used by the one-shot spectrum command; the preceding
// frames let the analog front end settle after priming.
func (a *App) CaptureSnapshot(ctx context.Context, frames int) (*output.Snapshot, error) {
	if frames < 1 {
		return nil, fmt.Errorf("frame count must be at least 1, got %d", frames)
	}

	pipe, err := a.openPipeline()
	if err != nil {
		return nil, err
	}
	defer pipe.Close()

	if err := pipe.framer.Prime(); err != nil {
		return nil, err
	}

	var last *dsp.Spectrum
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := pipe.framer.Next()
		if err != nil {
			return nil, err
		}
		samples, err := acquisition.ParseSamples(payload)
		if err != nil {
			return nil, err
		}
		spectrum, err := pipe.transformer.Transform(samples)
		if err != nil {
			return nil, err
		}
		spectrum.Sequence = uint64(i + 1)
		spectrum.CapturedAt = time.Now()
		last = spectrum
	}

	a.logger.Info("capture complete", logging.Fields{
		"frames": frames,
		"bins":   len(last.Bins),
	})
	return output.BuildSnapshot(last), nil
}

// FrameReport describes one raw frame for protocol diagnostics.
type FrameReport struct {
	Index        int     `json:"index"`
	PayloadBytes int     `json:"payload_bytes"`
	Samples      int     `json:"samples"`
	Min          uint16  `json:"min"`
	Max          uint16  `json:"max"`
	Mean         float64 `json:"mean"`
	ParseError   string  `json:"parse_error,omitempty"`
}

// InspectFrames reads raw frames and reports payload and parse statistics
// without running the transform. Parse failures are recorded per frame
// rather than aborting, since the whole point is diagnosing a misbehaving
// device.
func (a *App) InspectFrames(ctx context.Context, frames int) ([]FrameReport, error) {
	if frames < 1 {
		return nil, fmt.Errorf("frame count must be at least 1, got %d", frames)
	}

	pipe, err := a.openPipeline()
	if err != nil {
		return nil, err
	}
	defer pipe.Close()

	if err := pipe.framer.Prime(); err != nil {
		return nil, err
	}

	reports := make([]FrameReport, 0, frames)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		payload, err := pipe.framer.Next()
		if err != nil {
			return reports, err
		}

		report := FrameReport{Index: i, PayloadBytes: len(payload)}
		samples, err := acquisition.ParseSamples(payload)
		if err != nil {
			report.ParseError = err.Error()
		} else {
			report.Samples = len(samples)
			report.Min, report.Max, report.Mean = sampleStats(samples)
		}
		reports = append(reports, report)

		a.logger.Debug("frame inspected", logging.Fields{
			"index":         i,
			"payload_bytes": report.PayloadBytes,
			"samples":       report.Samples,
		})
	}
	return reports, nil
}

func sampleStats(samples []uint16) (min, max uint16, mean float64) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	min, max = samples[0], samples[0]
	var sum uint64
	for _, s := range samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		sum += uint64(s)
	}
	return min, max, float64(sum) / float64(len(samples))
}
