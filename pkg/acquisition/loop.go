package acquisition

import (
	"context"
	"time"

	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/pkg/dsp"
)

// Loop drives the continuous acquire -> parse -> transform -> publish
// cycle. It owns the serial transport exclusively and publishes finished
// spectra into a most-recent-value handoff slot; a slower consumer sees
// only the freshest spectrum and never applies backpressure here.
//
// Every stage failure is fatal: the loop returns and makes no attempt to
// resynchronize with the device. This tool is an attended diagnostic
// instrument, so the operator restarts it after fixing the connection.
type Loop struct {
	framer      *Framer
	transformer *dsp.Transformer
	out         *Handoff[*dsp.Spectrum]
	logger      logging.Logger
	seq         uint64
}

// NewLoop creates an acquisition loop publishing into out.
func NewLoop(framer *Framer, transformer *dsp.Transformer, out *Handoff[*dsp.Spectrum], logger logging.Logger) *Loop {
	return &Loop{
		framer:      framer,
		transformer: transformer,
		out:         out,
		logger:      logger,
	}
}

// Run primes the device and cycles until a fatal pipeline error or until
// ctx is cancelled. Cancellation is observed between iterations; a read
// already in flight finishes (or times out) first.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.framer.Prime(); err != nil {
		return err
	}
	l.logger.Info("acquisition started", logging.Fields{
		"fft_size": l.transformer.Size(),
	})

	for {
		if err := ctx.Err(); err != nil {
			l.logger.Info("acquisition stopped", logging.Fields{
				"frames": l.seq,
			})
			return err
		}

		payload, err := l.framer.Next()
		if err != nil {
			return err
		}

		samples, err := ParseSamples(payload)
		if err != nil {
			return err
		}

		spectrum, err := l.transformer.Transform(samples)
		if err != nil {
			return err
		}

		l.seq++
		spectrum.Sequence = l.seq
		spectrum.CapturedAt = time.Now()
		l.out.Publish(spectrum)

		l.logger.Debug("spectrum published", logging.Fields{
			"sequence": l.seq,
			"bins":     len(spectrum.Bins),
		})
	}
}

// Frames returns the number of frames processed so far. Only meaningful
// after Run has returned.
func (l *Loop) Frames() uint64 {
	return l.seq
}
