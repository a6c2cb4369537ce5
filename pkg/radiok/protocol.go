package radiok

import (
	"time"

	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

// DefaultConfig returns the serial configuration Radio-K expects before
// the handshake raises the baud: 9600 8N1, no flow control.
func DefaultConfig() serialport.Config {
	return serialport.Config{
		Baud:     initialBaud,
		DataBits: 8,
		Parity:   serialport.ParityNone,
		StopBits: 1,
		Flow:     serialport.FlowNone,
		Timeout:  2 * time.Second,
	}
}

// Wire-level literals, spec.md §6. Radio-K's are not pinned bit-exact by
// spec.md the way Radio-B's magic bytes are; these are this
// implementation's concrete choice of printable command strings.
var (
	cmdEnterProgram = []byte("2PROGRAM\r")
	cmdRaiseBaud    = []byte("2BAUD57600\r")
	endSessionByte  = byte(0x45) // 'E'
	ackByte         = byte(0x06)
)

const (
	initialBaud  = 9600
	sessionBaud  = 57600
	downloadBlockSize = 256
)

// handshake enters program mode and negotiates the session baud switch.
// Returns the transport ready to run the block protocol at sessionBaud.
func handshake(t serialport.Port) error {
	if err := t.SetDTR(true); err != nil {
		return err
	}
	if err := t.SetRTS(false); err != nil {
		return err
	}
	if err := t.WriteAll(cmdEnterProgram); err != nil {
		return err
	}
	ack, err := t.ReadExact(1)
	if err != nil || ack[0] != ackByte {
		return &cloneerr.HandshakeFailed{Radio: "radio-k", Variants: []string{"enter-program"}, Last: err}
	}

	if err := t.WriteAll(cmdRaiseBaud); err != nil {
		return err
	}
	ack2, err := t.ReadExact(1)
	if err != nil || ack2[0] != ackByte {
		return &cloneerr.HandshakeFailed{Radio: "radio-k", Variants: []string{"raise-baud"}, Last: err}
	}

	return t.SetBaud(sessionBaud)
}

// endSession writes the end-of-session byte and restores the transport
// to its pre-session baud. Best-effort: called on every exit path.
func endSession(t serialport.Port) {
	_ = t.WriteAll([]byte{endSessionByte})
	_ = t.SetBaud(initialBaud)
}
