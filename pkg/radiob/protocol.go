package radiob

import (
	"time"

	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

// DefaultConfig returns the serial configuration Radio-B expects: fixed
// 9600 8N1 for the whole session, no flow control. Unlike Radio-K,
// Radio-B never renegotiates its baud mid-session.
func DefaultConfig() serialport.Config {
	return serialport.Config{
		Baud:     handshakeBaud,
		DataBits: 8,
		Parity:   serialport.ParityNone,
		StopBits: 1,
		Flow:     serialport.FlowNone,
		Timeout:  2 * time.Second,
	}
}

// Wire-level literals, spec.md §6: bit-exact for Radio-B.
var (
	magicVariantA = []byte{0x50, 0xBB, 0xFF, 0x20, 0x12, 0x07, 0x25}
	// magicVariantB is an alternate 7-byte sequence tried when variant A
	// is rejected; this implementation's concrete fallback choice.
	magicVariantB = []byte{0x50, 0xBB, 0xFF, 0x20, 0x12, 0x07, 0x26}

	ackByte      = byte(0x06)
	endIdentByte = byte(0xDD)
)

const (
	handshakeBaud    = 9600
	interByteDelay   = 10 * time.Millisecond
	maxIdentFrameLen = 12
	minIdentFrameLen = 8

	readOpcode  = byte('S')
	writeOpcode = byte('X')
)

// handshake opens program mode using magic variant A, falling back to
// variant B on failure. Returns the 8-12 byte identity frame (without
// its 0xDD terminator) on success, or HandshakeFailed after both
// variants fail.
func handshake(t serialport.Port) ([]byte, error) {
	if err := t.SetDTR(false); err != nil {
		return nil, err
	}
	if err := t.SetRTS(false); err != nil {
		return nil, err
	}

	ident, errA := tryMagic(t, magicVariantA)
	if errA == nil {
		return ident, nil
	}
	ident, errB := tryMagic(t, magicVariantB)
	if errB == nil {
		return ident, nil
	}
	return nil, &cloneerr.HandshakeFailed{Radio: "radio-b", Variants: []string{"magic-a", "magic-b"}, Last: errB}
}

func tryMagic(t serialport.Port, magic []byte) ([]byte, error) {
	for _, b := range magic {
		if err := t.WriteAll([]byte{b}); err != nil {
			return nil, err
		}
		time.Sleep(interByteDelay)
	}

	ack, err := t.ReadExact(1)
	if err != nil || ack[0] != ackByte {
		return nil, &cloneerr.ProtocolError{Context: "handshake ack", Expected: []byte{ackByte}, Observed: ack}
	}

	if err := t.WriteAll([]byte{0x02}); err != nil {
		return nil, err
	}

	ident, err := t.ReadUntil(endIdentByte, maxIdentFrameLen+1)
	if err != nil {
		return nil, err
	}
	ident = trimTerminator(ident, endIdentByte)
	if len(ident) < minIdentFrameLen {
		return nil, &cloneerr.ProtocolError{Context: "handshake ident frame", Expected: nil, Observed: ident}
	}

	if err := t.WriteAll([]byte{ackByte}); err != nil {
		return nil, err
	}
	final, err := t.ReadExact(1)
	if err != nil || final[0] != ackByte {
		return nil, &cloneerr.ProtocolError{Context: "handshake final ack", Expected: []byte{ackByte}, Observed: final}
	}

	return ident, nil
}

func trimTerminator(buf []byte, term byte) []byte {
	if n := len(buf); n > 0 && buf[n-1] == term {
		return buf[:n-1]
	}
	return buf
}

// readBlock issues one 64-byte block read at the given radio address.
func readBlock(t serialport.Port, radioAddr, length int) ([]byte, error) {
	req := make([]byte, 0, 4)
	req = append(req, readOpcode)
	req = append(req, byte(radioAddr>>8), byte(radioAddr&0xFF))
	req = append(req, byte(length))
	if err := t.WriteAll(req); err != nil {
		return nil, err
	}

	header, err := t.ReadExact(4)
	if err != nil {
		return nil, err
	}
	if header[0] != writeOpcode {
		return nil, &cloneerr.ProtocolError{Context: "block read header", Expected: []byte{writeOpcode}, Observed: header[:1]}
	}
	respAddr := int(header[1])<<8 | int(header[2])
	respLen := int(header[3])
	if respAddr != radioAddr || respLen != length {
		return nil, &cloneerr.ProtocolError{Context: "block read echo", Expected: req[1:], Observed: header[1:]}
	}

	data, err := t.ReadExact(length)
	if err != nil {
		return nil, err
	}
	if err := t.WriteAll([]byte{ackByte}); err != nil {
		return nil, err
	}
	return data, nil
}

// writeBlock writes one 16-byte block at the given radio address,
// retrying exactly once on a missed ACK.
func writeBlock(t serialport.Port, radioAddr int, data []byte) error {
	attempt := func() error {
		req := make([]byte, 0, 4+len(data))
		req = append(req, writeOpcode)
		req = append(req, byte(radioAddr>>8), byte(radioAddr&0xFF))
		req = append(req, byte(len(data)))
		req = append(req, data...)
		if err := t.WriteAll(req); err != nil {
			return err
		}
		ack, err := t.ReadExact(1)
		if err != nil {
			return err
		}
		if ack[0] != ackByte {
			return &cloneerr.ProtocolError{Context: "block write ack", Expected: []byte{ackByte}, Observed: ack}
		}
		return nil
	}

	if err := attempt(); err != nil {
		if err := attempt(); err != nil {
			return &cloneerr.ProtocolError{Context: "block write ack (after retry)", Expected: []byte{ackByte}, Observed: nil}
		}
	}
	return nil
}
