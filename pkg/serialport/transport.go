// Package serialport wraps go.bug.st/serial with the scoped-lifetime,
// timeout-bounded transport the radio drivers need: read_exact/read_until
// with a hard deadline, explicit flush/clear operations, DTR/RTS control,
// and a mid-session baud switch. One Transport is used by exactly one
// in-flight download or upload; it is never shared across concurrent
// operations, matching the cooperative single-threaded model the drivers
// assume.
package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/kb9vty/cloneforge/pkg/cloneerr"
)

// Parity mirrors go.bug.st/serial's parity enumeration so callers of this
// package never need to import go.bug.st/serial directly.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// FlowControl enumerates the two flow-control modes these radios' cables
// ever use.
type FlowControl int

const (
	FlowNone FlowControl = iota
	FlowHardware
)

// Config is the exact enumeration spec.md §4.3 allows: baud, data bits
// (5-8), parity, stop bits (1/2), flow control, and a per-operation
// timeout.
type Config struct {
	Baud        int
	DataBits    int // 5-8
	Parity      Parity
	StopBits    int // 1 or 2
	Flow        FlowControl
	Timeout     time.Duration
}

func (c Config) toMode() (*serial.Mode, error) {
	mode := &serial.Mode{BaudRate: c.Baud}

	switch c.DataBits {
	case 5, 6, 7, 8:
		mode.DataBits = c.DataBits
	default:
		return nil, fmt.Errorf("serialport: invalid data bits %d", c.DataBits)
	}

	switch c.Parity {
	case ParityNone:
		mode.Parity = serial.NoParity
	case ParityEven:
		mode.Parity = serial.EvenParity
	case ParityOdd:
		mode.Parity = serial.OddParity
	default:
		return nil, fmt.Errorf("serialport: invalid parity %d", c.Parity)
	}

	switch c.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("serialport: invalid stop bits %d", c.StopBits)
	}

	return mode, nil
}

// Transport is a scope-acquired serial port: callers open it, run exactly
// one download or upload against it, and close it. Close is safe to call
// more than once and is expected to run on every exit path (success,
// error, or cancellation) via defer.
type Transport struct {
	port     serial.Port
	portName string
	cfg      Config
	pending  []byte // bytes read from the wire but not yet consumed by a caller
}

// Open acquires the named serial port under the given configuration.
func Open(portName string, cfg Config) (*Transport, error) {
	mode, err := cfg.toMode()
	if err != nil {
		return nil, &cloneerr.TransportError{Op: "open", Err: err}
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, &cloneerr.TransportError{Op: "open " + portName, Err: err}
	}

	if cfg.Timeout > 0 {
		if err := port.SetReadTimeout(50 * time.Millisecond); err != nil {
			port.Close()
			return nil, &cloneerr.TransportError{Op: "set poll interval", Err: err}
		}
	}

	return &Transport{port: port, portName: portName, cfg: cfg}, nil
}

// Close releases the underlying OS handle. Safe to call multiple times.
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return &cloneerr.TransportError{Op: "close " + t.portName, Err: err}
	}
	return nil
}

// fillPending reads whatever is currently available from the port into
// the pending buffer without blocking longer than one poll tick. Returns
// the number of bytes newly read.
func (t *Transport) fillPending() (int, error) {
	scratch := make([]byte, 4096)
	n, err := t.port.Read(scratch)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		t.pending = append(t.pending, scratch[:n]...)
	}
	return n, nil
}

// ReadExact suspends until exactly n bytes are available or the
// configured timeout elapses, in which case it fails with a
// cloneerr.TimeoutError.
func (t *Transport) ReadExact(n int) ([]byte, error) {
	deadline := time.Now().Add(t.cfg.Timeout)
	for len(t.pending) < n {
		if _, err := t.fillPending(); err != nil {
			return nil, &cloneerr.TransportError{Op: "read", Err: err}
		}
		if len(t.pending) >= n {
			break
		}
		if time.Now().After(deadline) {
			return nil, &cloneerr.TimeoutError{Op: "read_exact", Waiting: n, Got: len(t.pending)}
		}
	}
	out := make([]byte, n)
	copy(out, t.pending[:n])
	t.pending = t.pending[n:]
	return out, nil
}

// ReadUntil suspends until delim is seen in the stream or max bytes have
// accumulated, whichever comes first, else fails with
// cloneerr.TimeoutError. The returned slice includes the delimiter byte.
func (t *Transport) ReadUntil(delim byte, max int) ([]byte, error) {
	deadline := time.Now().Add(t.cfg.Timeout)
	for {
		for i, b := range t.pending {
			if b == delim {
				out := make([]byte, i+1)
				copy(out, t.pending[:i+1])
				t.pending = t.pending[i+1:]
				return out, nil
			}
		}
		if len(t.pending) >= max {
			out := make([]byte, max)
			copy(out, t.pending[:max])
			t.pending = t.pending[max:]
			return out, nil
		}
		if _, err := t.fillPending(); err != nil {
			return nil, &cloneerr.TransportError{Op: "read", Err: err}
		}
		if time.Now().After(deadline) {
			return nil, &cloneerr.TimeoutError{Op: "read_until", Waiting: max, Got: len(t.pending)}
		}
	}
}

// WriteAll writes every byte of data to the port.
func (t *Transport) WriteAll(data []byte) error {
	off := 0
	for off < len(data) {
		n, err := t.port.Write(data[off:])
		if err != nil {
			return &cloneerr.TransportError{Op: "write", Err: err}
		}
		off += n
	}
	return nil
}

// Flush drains any buffered output so it has physically left the host.
func (t *Transport) Flush() error {
	if err := t.port.Drain(); err != nil {
		return &cloneerr.TransportError{Op: "flush", Err: err}
	}
	return nil
}

// ClearInput discards the pending-read buffer and the OS input queue.
func (t *Transport) ClearInput() error {
	t.pending = nil
	if err := t.port.ResetInputBuffer(); err != nil {
		return &cloneerr.TransportError{Op: "clear_input", Err: err}
	}
	return nil
}

// ClearOutput discards the OS output queue.
func (t *Transport) ClearOutput() error {
	if err := t.port.ResetOutputBuffer(); err != nil {
		return &cloneerr.TransportError{Op: "clear_output", Err: err}
	}
	return nil
}

// BytesAvailable returns the number of bytes already read off the wire
// and buffered locally, plus whatever can be drained from the OS queue
// without blocking.
func (t *Transport) BytesAvailable() int {
	t.fillPending() //nolint:errcheck // best-effort topping-up; absence of new data is not an error
	return len(t.pending)
}

// SetDTR sets the DTR control line.
func (t *Transport) SetDTR(on bool) error {
	if err := t.port.SetDTR(on); err != nil {
		return &cloneerr.TransportError{Op: "set_dtr", Err: err}
	}
	return nil
}

// SetRTS sets the RTS control line.
func (t *Transport) SetRTS(on bool) error {
	if err := t.port.SetRTS(on); err != nil {
		return &cloneerr.TransportError{Op: "set_rts", Err: err}
	}
	return nil
}

// SetBaud flushes pending output, then changes the line rate. The radio
// may now be speaking at a different rate; callers must coordinate this
// with the protocol's own baud-switch point (see pkg/radiok's handshake).
func (t *Transport) SetBaud(baud int) error {
	if err := t.Flush(); err != nil {
		return err
	}
	t.cfg.Baud = baud
	mode, err := t.cfg.toMode()
	if err != nil {
		return &cloneerr.TransportError{Op: "set_baud", Err: err}
	}
	if err := t.port.SetMode(mode); err != nil {
		return &cloneerr.TransportError{Op: "set_baud", Err: err}
	}
	return nil
}

// Baud returns the transport's current configured baud rate.
func (t *Transport) Baud() int { return t.cfg.Baud }
