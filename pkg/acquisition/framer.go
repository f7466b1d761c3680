package acquisition

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/pkg/serialio"
)

// Wire protocol constants. The host requests one frame of samples with a
// single trigger byte; the device answers with newline-separated ASCII
// decimal samples terminated by the frame delimiter.
const (
	// FrameDelimiter marks the device-to-host end of a frame. The protocol
	// assumes it never appears inside payload text.
	FrameDelimiter byte = 0xff
	// TriggerByte is the host-to-device capture request.
	TriggerByte byte = 'p'
)

// Framer splits the raw serial byte stream into discrete device frames and
// keeps the device primed with the next capture request.
type Framer struct {
	transport serialio.Transport
	reader    *bufio.Reader
	delimiter byte
	trigger   byte
	logger    logging.Logger
}

// NewFramer creates a Framer over the given transport using the default
// wire protocol bytes.
func NewFramer(transport serialio.Transport, logger logging.Logger) *Framer {
	return &Framer{
		transport: transport,
		reader:    bufio.NewReader(transport),
		delimiter: FrameDelimiter,
		trigger:   TriggerByte,
		logger:    logger,
	}
}

// Prime discards any stale bytes buffered from prior device activity and
// issues the initial capture trigger. Call once before the first Next.
func (f *Framer) Prime() error {
	if err := f.transport.Flush(); err != nil {
		return NewError(StageTransport, ErrCodeConnection, "failed to clear serial buffers", err)
	}
	return f.writeTrigger()
}

// Next blocks until a full frame has arrived, strips the delimiter, and
// returns the payload bytes. Before returning it issues the next capture
// trigger so device-side acquisition overlaps with host-side processing of
// the frame just received.
func (f *Framer) Next() ([]byte, error) {
	raw, err := f.reader.ReadBytes(f.delimiter)
	if err != nil {
		if errors.Is(err, serialio.ErrReadTimeout) {
			return nil, NewError(StageFraming, ErrCodeTimeout,
				fmt.Sprintf("no frame delimiter within read timeout (%d bytes buffered)", len(raw)), err)
		}
		return nil, NewError(StageTransport, ErrCodeConnection, "serial read failed", err)
	}
	payload := raw[:len(raw)-1]

	if err := f.writeTrigger(); err != nil {
		return nil, err
	}

	f.logger.Debug("frame received", logging.Fields{
		"payload_bytes": len(payload),
	})
	return payload, nil
}

func (f *Framer) writeTrigger() error {
	if _, err := f.transport.Write([]byte{f.trigger}); err != nil {
		return NewError(StageTransport, ErrCodeConnection, "failed to write capture trigger", err)
	}
	return nil
}
