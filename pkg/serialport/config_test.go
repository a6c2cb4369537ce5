package serialport

import "testing"

func TestToModeRejectsInvalidDataBits(t *testing.T) {
	cfg := Config{Baud: 9600, DataBits: 3, Parity: ParityNone, StopBits: 1}
	if _, err := cfg.toMode(); err == nil {
		t.Fatal("expected error for data bits outside 5-8")
	}
}

func TestToModeRejectsInvalidStopBits(t *testing.T) {
	cfg := Config{Baud: 9600, DataBits: 8, Parity: ParityNone, StopBits: 3}
	if _, err := cfg.toMode(); err == nil {
		t.Fatal("expected error for stop bits outside 1-2")
	}
}

func TestToModeAcceptsValidConfig(t *testing.T) {
	cfg := Config{Baud: 19200, DataBits: 8, Parity: ParityEven, StopBits: 2}
	mode, err := cfg.toMode()
	if err != nil {
		t.Fatalf("toMode: %v", err)
	}
	if mode.BaudRate != 19200 {
		t.Errorf("BaudRate = %d, want 19200", mode.BaudRate)
	}
}

func TestMockReadExactTimesOutOnShortQueue(t *testing.T) {
	m := NewMock(9600)
	m.Feed([]byte{0x01, 0x02})
	if _, err := m.ReadExact(5); err == nil {
		t.Fatal("expected timeout error reading past the queued bytes")
	}
}

func TestMockReadUntilStopsAtDelimiter(t *testing.T) {
	m := NewMock(9600)
	m.Feed([]byte{0x01, 0x02, 0x06, 0x03})
	got, err := m.ReadUntil(0x06, 16)
	if err != nil {
		t.Fatalf("ReadUntil: %v", err)
	}
	want := []byte{0x01, 0x02, 0x06}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMockWriteAllInvokesResponder(t *testing.T) {
	m := NewMock(9600)
	m.Responder = func(written []byte) []byte {
		if written[0] == 0x01 {
			return []byte{0x06}
		}
		return nil
	}
	if err := m.WriteAll([]byte{0x01}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := m.ReadExact(1)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if got[0] != 0x06 {
		t.Errorf("got %02X, want 0x06", got[0])
	}
}

func TestMockCloseIsObservable(t *testing.T) {
	m := NewMock(9600)
	if m.Closed() {
		t.Fatal("Mock should not start closed")
	}
	m.Close()
	if !m.Closed() {
		t.Fatal("Closed() should report true after Close")
	}
}
