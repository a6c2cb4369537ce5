package memimage

import "testing"

func TestNewFillsErasedState(t *testing.T) {
	img := New(16, OriginRadioB)
	for i, b := range img.Bytes() {
		if b != 0xFF {
			t.Fatalf("byte %d = %02X, want 0xFF", i, b)
		}
	}
	if img.Len() != 16 {
		t.Errorf("Len() = %d, want 16", img.Len())
	}
	if img.Origin() != OriginRadioB {
		t.Errorf("Origin() = %s, want %s", img.Origin(), OriginRadioB)
	}
}

func TestLoadFromSliceCopies(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	img := LoadFromSlice(data, OriginRadioK)
	data[0] = 0xFF
	if img.Bytes()[0] != 0x01 {
		t.Error("LoadFromSlice must copy its input, not alias it")
	}
}

func TestGetPutRoundTrip(t *testing.T) {
	img := New(32, OriginRadioK)
	if err := img.Put(4, []byte{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := img.Get(4, 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %02X, want %02X", i, got[i], want[i])
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	img := New(16, OriginRadioK)
	if _, err := img.Get(10, 10); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := img.Get(-1, 4); err == nil {
		t.Fatal("expected out-of-range error for negative address")
	}
}

func TestPutOutOfRange(t *testing.T) {
	img := New(16, OriginRadioK)
	if err := img.Put(14, []byte{1, 2, 3, 4}); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestHexDump(t *testing.T) {
	img := New(20, OriginRadioK)
	img.Put(0, []byte("HELLO"))
	dump, err := img.HexDump(0, 20)
	if err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	if len(dump) == 0 {
		t.Error("HexDump returned an empty string")
	}
}
