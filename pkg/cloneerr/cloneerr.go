// Package cloneerr defines the error taxonomy shared by every driver and
// by the Orchestrator: transport failures, protocol violations, failed
// handshakes, invalid BCD, out-of-bounds addressing, and per-channel
// validation errors. Each kind is its own type so callers can use
// errors.As to branch on failure class.
package cloneerr

import "fmt"

// TransportError wraps a failure from the serial transport layer: a
// failed open, a broken write, or a read that never completed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError is a TransportError specialization for the read_exact /
// read_until timeout case; kept distinct so callers can detect a timeout
// with errors.As without string matching. Neither the Orchestrator nor
// the drivers retry a block read that times out; the error is returned.
type TimeoutError struct {
	Op      string
	Waiting int // bytes expected
	Got     int // bytes actually read before the timeout fired
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: %s: waiting for %d bytes, got %d", e.Op, e.Waiting, e.Got)
}

// ProtocolError reports an unexpected byte, a bad ACK, or a length echo
// that didn't match what was sent. Never retried; carries both the
// expected and observed bytes for diagnostics.
type ProtocolError struct {
	Context  string
	Expected []byte
	Observed []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error (%s): expected % X, got % X", e.Context, e.Expected, e.Observed)
}

// HandshakeFailed reports that every known handshake variant was tried
// and none of them produced a valid session. Variants is the list of
// variant names attempted, in order.
type HandshakeFailed struct {
	Radio    string
	Variants []string
	Last     error
}

func (e *HandshakeFailed) Error() string {
	return fmt.Sprintf("handshake failed for %s after trying variants %v: %v", e.Radio, e.Variants, e.Last)
}

func (e *HandshakeFailed) Unwrap() error { return e.Last }

// InvalidBCD reports a BCD nibble outside 0-9. Decode-side callers treat
// the affected channel as empty rather than propagating this; channel
// encoders report a frequency that cannot be BCD-encoded as a
// ValidationError instead.
type InvalidBCD struct {
	Byte  byte
	Index int
}

func (e *InvalidBCD) Error() string {
	return fmt.Sprintf("invalid BCD byte 0x%02X at index %d", e.Byte, e.Index)
}

// OutOfRange reports address arithmetic that falls outside an image's
// declared bounds. Always fatal to the operation in progress.
type OutOfRange struct {
	Addr, Len, Size int
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("out of range: addr=0x%X len=%d exceeds image size 0x%X", e.Addr, e.Len, e.Size)
}

// ValidationError reports that a single Channel could not be encoded:
// an unknown mode, tone, power level, or duplex for the target radio, or
// a channel number outside the radio's channel count. Non-fatal to a
// batch of edits; the caller accumulates these per channel.
type ValidationError struct {
	ChannelNumber int
	Field         string
	Reason        string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("channel %d: invalid %s: %s", e.ChannelNumber, e.Field, e.Reason)
}

// CancelRequested is returned when an in-flight Orchestrator operation
// is aborted by the caller's cancellation signal.
type CancelRequested struct {
	Stage string
}

func (e *CancelRequested) Error() string {
	return fmt.Sprintf("cancelled during %s", e.Stage)
}
