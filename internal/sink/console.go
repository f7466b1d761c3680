package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/sigscope/sigscope/pkg/dsp"
)

// ConsoleSink renders spectrum summaries to a writer, optionally with a
// coarse ASCII spectrum below the one-line readout.
type ConsoleSink struct {
	w         io.Writer
	showGraph bool
	width     int
}

// NewConsoleSink creates a console sink writing to w. When showGraph is
// set, each summary is followed by an ASCII rendering of width columns.
func NewConsoleSink(w io.Writer, showGraph bool, width int) *ConsoleSink {
	if width <= 0 {
		width = 64
	}
	return &ConsoleSink{w: w, showGraph: showGraph, width: width}
}

func (c *ConsoleSink) Publish(s *Summary) error {
	_, err := fmt.Fprintf(c.w, "#%-6d peak %8.1f Hz @ %6.1f dBFS  floor %6.1f dBFS\n",
		s.Sequence, s.PeakFrequencyHz, s.PeakDBFS, s.NoiseFloorDBFS)
	if err != nil {
		return err
	}
	if c.showGraph {
		return c.renderGraph(s)
	}
	return nil
}

// renderGraph draws one vertical-bar column per group of bins, scaled from
// the display floor to the display ceiling.
func (c *ConsoleSink) renderGraph(s *Summary) error {
	if len(s.Levels) == 0 {
		return nil
	}
	const rows = 8
	bars := "▁▂▃▄▅▆▇█"

	perColumn := len(s.Levels) / c.width
	if perColumn < 1 {
		perColumn = 1
	}

	var sb strings.Builder
	span := dsp.DisplayCeilDBFS - dsp.DisplayFloorDBFS
	for col := 0; col < c.width && col*perColumn < len(s.Levels); col++ {
		// Each column shows the loudest bin it covers.
		max := dsp.DisplayFloorDBFS
		for i := col * perColumn; i < (col+1)*perColumn && i < len(s.Levels); i++ {
			if s.Levels[i] > max {
				max = s.Levels[i]
			}
		}
		idx := int((max - dsp.DisplayFloorDBFS) / span * float64(rows-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= rows {
			idx = rows - 1
		}
		sb.WriteRune([]rune(bars)[idx])
	}
	_, err := fmt.Fprintln(c.w, sb.String())
	return err
}

func (c *ConsoleSink) Close() error {
	return nil
}
