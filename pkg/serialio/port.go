package serialio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// ErrReadTimeout is returned when the configured read timeout elapses
// before any byte arrives.
var ErrReadTimeout = errors.New("serial read timed out")

// Transport is the minimal surface the acquisition pipeline needs from a
// serial connection: byte reads and writes, discarding buffered input, and
// teardown. Keeping it narrow lets tests substitute in-memory transports.
type Transport interface {
	io.Reader
	io.Writer

	// Flush discards any bytes buffered by the OS so a fresh session
	// starts frame-aligned.
	Flush() error

	Close() error
}

// PortConfig describes how to open a serial device.
type PortConfig struct {
	// Path is the device path, e.g. /dev/ttyACM0.
	Path string
	// BaudRate is nominal for USB CDC devices but must still be set.
	BaudRate int
	// ReadTimeout bounds a single blocking read. The wire protocol has no
	// keepalive, so this is normally set very high.
	ReadTimeout time.Duration
}

// Port is a Transport backed by a physical serial device.
type Port struct {
	inner   *serial.Port
	path    string
	timeout time.Duration
}

// Open opens the serial device described by cfg.
func Open(cfg PortConfig) (*Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Path,
		Baud:        cfg.BaudRate,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Path, err)
	}
	return &Port{inner: p, path: cfg.Path, timeout: cfg.ReadTimeout}, nil
}

// Read reads from the device. The underlying driver signals an elapsed
// wait as a zero-byte read, reported as (0, io.EOF) on POSIX, and it caps
// a single wait at 25.5s regardless of the configured ReadTimeout. Zero
// progress is therefore retried until ReadTimeout has elapsed in total,
// then surfaced as ErrReadTimeout so callers can tell a dead transport
// from a short read.
func (p *Port) Read(b []byte) (int, error) {
	return readWithTimeout(p.inner, b, p.timeout)
}

func readWithTimeout(r io.Reader, b []byte, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	for {
		n, err := r.Read(b)
		if n > 0 {
			return n, nil
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		if !time.Now().Before(deadline) {
			return 0, ErrReadTimeout
		}
	}
}

func (p *Port) Write(b []byte) (int, error) {
	return p.inner.Write(b)
}

func (p *Port) Flush() error {
	return p.inner.Flush()
}

func (p *Port) Close() error {
	return p.inner.Close()
}

// Path returns the device path the port was opened with.
func (p *Port) Path() string {
	return p.path
}
