package cloneerr

import (
	"errors"
	"testing"
)

func TestTransportErrorUnwrap(t *testing.T) {
	inner := errors.New("device disconnected")
	err := &TransportError{Op: "write", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should see through TransportError.Unwrap")
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestHandshakeFailedUnwrap(t *testing.T) {
	last := &TimeoutError{Op: "read_exact", Waiting: 1, Got: 0}
	err := &HandshakeFailed{Radio: "radio-b", Variants: []string{"A", "B"}, Last: last}
	if !errors.Is(err, last) {
		t.Error("errors.Is should see through HandshakeFailed.Unwrap")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{ChannelNumber: 5, Field: "power", Reason: "not one of [1 4]"}
	want := "channel 5: invalid power: not one of [1 4]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestOutOfRangeMessage(t *testing.T) {
	err := &OutOfRange{Addr: 0x100, Len: 16, Size: 0x100}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestCancelRequestedMessage(t *testing.T) {
	err := &CancelRequested{Stage: "download"}
	want := "cancelled during download"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestProtocolErrorMessage(t *testing.T) {
	err := &ProtocolError{Context: "block ack", Expected: []byte{0x06}, Observed: []byte{0x15}}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestInvalidBCDMessage(t *testing.T) {
	err := &InvalidBCD{Byte: 0xAB, Index: 3}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
