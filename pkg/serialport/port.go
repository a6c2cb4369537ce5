package serialport

// Port is the interface drivers program against. Transport is the real
// go.bug.st/serial-backed implementation; Mock stands in for it in tests
// so a driver's handshake/block-protocol logic can be exercised without a
// physical radio attached.
type Port interface {
	ReadExact(n int) ([]byte, error)
	ReadUntil(delim byte, max int) ([]byte, error)
	WriteAll(data []byte) error
	Flush() error
	ClearInput() error
	ClearOutput() error
	BytesAvailable() int
	SetDTR(on bool) error
	SetRTS(on bool) error
	SetBaud(baud int) error
	Baud() int
	Close() error
}

var _ Port = (*Transport)(nil)
