package radiob

import (
	"testing"

	"github.com/kb9vty/cloneforge/pkg/serialport"
)

var testIdent = []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}

// newHandshakeResponder simulates a radio that only accepts the given
// magic sequence, replying with an 8-byte identity frame and the usual
// ack dance once it sees the full sequence written byte by byte.
func newHandshakeResponder(accept []byte, ident []byte) func([]byte) []byte {
	var seen []byte
	stage := 0 // 0=matching magic, 1=sent magic ack, 2=sent ident, 3=done
	return func(written []byte) []byte {
		b := written[0]
		switch stage {
		case 0:
			idx := len(seen)
			if idx < len(accept) && b == accept[idx] {
				seen = append(seen, b)
				if len(seen) == len(accept) {
					stage = 1
					return []byte{ackByte}
				}
				return nil
			}
			seen = nil
			if b == accept[0] {
				seen = append(seen, b)
			}
			return nil
		case 1:
			if b == 0x02 {
				stage = 2
				out := append(append([]byte{}, ident...), endIdentByte)
				return out
			}
			return nil
		case 2:
			if b == ackByte {
				stage = 3
				return []byte{ackByte}
			}
			return nil
		default:
			return nil
		}
	}
}

func TestHandshakeAcceptsVariantA(t *testing.T) {
	m := serialport.NewMock(handshakeBaud)
	m.Responder = newHandshakeResponder(magicVariantA, testIdent)

	ident, err := handshake(m)
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if string(ident) != string(testIdent) {
		t.Errorf("ident = %X, want %X", ident, testIdent)
	}
}

func TestHandshakeFallsBackToVariantB(t *testing.T) {
	m := serialport.NewMock(handshakeBaud)
	// The radio only answers variant B; A must fail cleanly before B is tried.
	m.Responder = newHandshakeResponder(magicVariantB, testIdent)

	ident, err := handshake(m)
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if string(ident) != string(testIdent) {
		t.Errorf("ident = %X, want %X", ident, testIdent)
	}
}

func TestHandshakeFailsAfterBothVariantsRejected(t *testing.T) {
	m := serialport.NewMock(handshakeBaud)
	m.Responder = func(written []byte) []byte { return nil }

	if _, err := handshake(m); err == nil {
		t.Fatal("expected HandshakeFailed when both variants are rejected")
	}
}

func TestWriteBlockRetriesOnceThenFails(t *testing.T) {
	m := serialport.NewMock(handshakeBaud)
	m.Responder = func(written []byte) []byte { return nil }

	err := writeBlock(m, 0x0100, make([]byte, uploadBlockSize))
	if err == nil {
		t.Fatal("expected error after two failed attempts")
	}
	// One request per attempt, two attempts.
	if len(m.Writes) != 2 {
		t.Errorf("writes = %d, want 2 (one per attempt)", len(m.Writes))
	}
}

func TestWriteBlockSucceedsOnRetry(t *testing.T) {
	m := serialport.NewMock(handshakeBaud)
	attempts := 0
	m.Responder = func(written []byte) []byte {
		attempts++
		if attempts == 1 {
			return nil
		}
		return []byte{ackByte}
	}

	if err := writeBlock(m, 0x0100, make([]byte, uploadBlockSize)); err != nil {
		t.Fatalf("writeBlock: %v", err)
	}
}

func TestReadBlockValidatesEcho(t *testing.T) {
	m := serialport.NewMock(handshakeBaud)
	block := make([]byte, downloadBlockSize)
	for i := range block {
		block[i] = byte(i)
	}
	m.Responder = func(written []byte) []byte {
		if len(written) < 4 {
			return nil
		}
		resp := []byte{writeOpcode, written[1], written[2], written[3]}
		return append(resp, block...)
	}

	got, err := readBlock(m, 0x0040, downloadBlockSize)
	if err != nil {
		t.Fatalf("readBlock: %v", err)
	}
	for i := range block {
		if got[i] != block[i] {
			t.Fatalf("byte %d = %02X, want %02X", i, got[i], block[i])
		}
	}
}
