package serialport

import (
	"github.com/kb9vty/cloneforge/pkg/cloneerr"
)

// Mock is an in-memory Port used to test driver handshake and block
// protocol logic without a physical radio. Each WriteAll invokes
// Responder (if set) with the bytes written; whatever Responder returns
// is appended to the read queue that subsequent ReadExact/ReadUntil
// calls drain from. A nil Responder with an empty queue simulates a
// radio that never answers, for exercising timeout behavior.
type Mock struct {
	Responder func(written []byte) []byte

	Writes [][]byte
	queue  []byte

	baud     int
	dtr, rts bool
	closed   bool
}

// NewMock creates a Mock at the given initial baud rate.
func NewMock(baud int) *Mock {
	return &Mock{baud: baud}
}

// Feed appends bytes directly to the read queue, for tests that want to
// prime a response before the driver writes anything (e.g. an initial
// unsolicited byte some radios send on power-up).
func (m *Mock) Feed(data []byte) {
	m.queue = append(m.queue, data...)
}

func (m *Mock) ReadExact(n int) ([]byte, error) {
	if len(m.queue) < n {
		return nil, &cloneerr.TimeoutError{Op: "read_exact", Waiting: n, Got: len(m.queue)}
	}
	out := make([]byte, n)
	copy(out, m.queue[:n])
	m.queue = m.queue[n:]
	return out, nil
}

func (m *Mock) ReadUntil(delim byte, max int) ([]byte, error) {
	for i, b := range m.queue {
		if b == delim {
			out := make([]byte, i+1)
			copy(out, m.queue[:i+1])
			m.queue = m.queue[i+1:]
			return out, nil
		}
		if i+1 >= max {
			out := make([]byte, max)
			copy(out, m.queue[:max])
			m.queue = m.queue[max:]
			return out, nil
		}
	}
	return nil, &cloneerr.TimeoutError{Op: "read_until", Waiting: max, Got: len(m.queue)}
}

func (m *Mock) WriteAll(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Writes = append(m.Writes, cp)
	if m.Responder != nil {
		m.queue = append(m.queue, m.Responder(cp)...)
	}
	return nil
}

func (m *Mock) Flush() error        { return nil }
func (m *Mock) ClearInput() error   { m.queue = nil; return nil }
func (m *Mock) ClearOutput() error  { return nil }
func (m *Mock) BytesAvailable() int { return len(m.queue) }
func (m *Mock) SetDTR(on bool) error { m.dtr = on; return nil }
func (m *Mock) SetRTS(on bool) error { m.rts = on; return nil }
func (m *Mock) SetBaud(baud int) error {
	m.baud = baud
	return nil
}
func (m *Mock) Baud() int { return m.baud }
func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called, for asserting that a
// driver releases its port on every exit path.
func (m *Mock) Closed() bool { return m.closed }
