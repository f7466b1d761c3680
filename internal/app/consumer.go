package app

import (
	"context"
	"time"

	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/internal/sink"
	"github.com/sigscope/sigscope/pkg/acquisition"
	"github.com/sigscope/sigscope/pkg/dsp"
)

// consumer drains the handoff slot at its own display cadence and fans
// each fresh spectrum out to the configured sinks. It never blocks on the
// acquisition side: polls that find nothing new simply skip the tick.
type consumer struct {
	in      *acquisition.Handoff[*dsp.Spectrum]
	sinks   []sink.Sink
	refresh time.Duration
	logger  logging.Logger
}

func (c *consumer) run(ctx context.Context) error {
	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			spectrum, ok := c.in.Poll()
			if !ok {
				continue
			}
			summary := sink.Summarize(spectrum)
			for _, s := range c.sinks {
				// Sink failures are consumer-side problems; acquisition
				// keeps running.
				if err := s.Publish(summary); err != nil {
					c.logger.Error(err, "sink publish failed", logging.Fields{
						"sequence": summary.Sequence,
					})
				}
			}
		}
	}
}
