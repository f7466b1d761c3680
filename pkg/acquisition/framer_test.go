package acquisition

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/pkg/serialio"
)

// fakeTransport is an in-memory serialio.Transport. Reads drain the
// preloaded input; an exhausted input behaves like an elapsed read timeout.
type fakeTransport struct {
	in      bytes.Buffer
	writes  []byte
	flushes int
	readErr error
}

func (t *fakeTransport) Read(b []byte) (int, error) {
	if t.in.Len() == 0 {
		if t.readErr != nil {
			return 0, t.readErr
		}
		return 0, serialio.ErrReadTimeout
	}
	return t.in.Read(b)
}

func (t *fakeTransport) Write(b []byte) (int, error) {
	t.writes = append(t.writes, b...)
	return len(b), nil
}

func (t *fakeTransport) Flush() error {
	t.flushes++
	return nil
}

func (t *fakeTransport) Close() error {
	return nil
}

func TestFramerRoundTrip(t *testing.T) {
	transport := &fakeTransport{}
	transport.in.WriteString("100\n200\n")
	transport.in.WriteByte(FrameDelimiter)
	transport.in.WriteString("300\n400\n")
	transport.in.WriteByte(FrameDelimiter)

	framer := NewFramer(transport, logging.NewNopLogger())

	first, err := framer.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("100\n200\n"), first)

	// The bytes after the first delimiter stay available for the next call.
	second, err := framer.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("300\n400\n"), second)
}

func TestFramerPrimeClearsAndTriggers(t *testing.T) {
	transport := &fakeTransport{}
	framer := NewFramer(transport, logging.NewNopLogger())

	require.NoError(t, framer.Prime())
	assert.Equal(t, 1, transport.flushes)
	assert.Equal(t, []byte{TriggerByte}, transport.writes)
}

func TestFramerTriggersAfterEachFrame(t *testing.T) {
	transport := &fakeTransport{}
	transport.in.WriteString("1\n")
	transport.in.WriteByte(FrameDelimiter)
	transport.in.WriteString("2\n")
	transport.in.WriteByte(FrameDelimiter)

	framer := NewFramer(transport, logging.NewNopLogger())
	require.NoError(t, framer.Prime())

	_, err := framer.Next()
	require.NoError(t, err)
	_, err = framer.Next()
	require.NoError(t, err)

	// One trigger from Prime plus one re-arm per extracted frame.
	assert.Equal(t, []byte{TriggerByte, TriggerByte, TriggerByte}, transport.writes)
}

func TestFramerEmptyFrame(t *testing.T) {
	transport := &fakeTransport{}
	transport.in.WriteByte(FrameDelimiter)

	framer := NewFramer(transport, logging.NewNopLogger())
	payload, err := framer.Next()
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestFramerTimeout(t *testing.T) {
	transport := &fakeTransport{}
	transport.in.WriteString("partial frame without delimiter")

	framer := NewFramer(transport, logging.NewNopLogger())
	_, err := framer.Next()
	require.Error(t, err)

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, StageFraming, acqErr.Stage)
	assert.Equal(t, ErrCodeTimeout, acqErr.Code)
	assert.ErrorIs(t, err, serialio.ErrReadTimeout)
}

func TestFramerTransportFailure(t *testing.T) {
	transport := &fakeTransport{readErr: io.ErrClosedPipe}

	framer := NewFramer(transport, logging.NewNopLogger())
	_, err := framer.Next()
	require.Error(t, err)

	var acqErr *Error
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, StageTransport, acqErr.Stage)
	assert.Equal(t, ErrCodeConnection, acqErr.Code)
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
}
