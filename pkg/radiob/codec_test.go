package radiob

import (
	"testing"

	"github.com/kb9vty/cloneforge/pkg/binprim"
	"github.com/kb9vty/cloneforge/pkg/channel"
)

func TestDecodeChannelSimplexCTCSS(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)

	freqBCD, err := binprim.IntToBCD(45212500, 4, true) // 452.125 MHz / 10
	if err != nil {
		t.Fatalf("IntToBCD: %v", err)
	}
	copy(rec[offRxFreq:offRxFreq+4], freqBCD)
	copy(rec[offTxFreq:offTxFreq+4], freqBCD)
	copy(rec[offTxTone:offTxTone+2], binprim.WriteUint(693, 2, true))
	copy(rec[offRxTone:offRxTone+2], binprim.WriteUint(693, 2, true))
	rec[offPower] = 0 // high power, wide

	copy(name, padName("REPEAT1", nameWidth))

	ch := decodeChannel(1, rec, name)

	if ch.RxFreqHz != 452_125_000 {
		t.Errorf("RxFreqHz = %d, want 452125000", ch.RxFreqHz)
	}
	if ch.Duplex != channel.DuplexSimplex {
		t.Errorf("Duplex = %s, want simplex", ch.Duplex)
	}
	if ch.ToneMode != channel.ToneModeTSQL {
		t.Errorf("ToneMode = %s, want tsql", ch.ToneMode)
	}
	if ch.TxToneHz != 69.3 {
		t.Errorf("TxToneHz = %v, want 69.3", ch.TxToneHz)
	}
	if ch.Mode != channel.ModeFM {
		t.Errorf("Mode = %s, want FM", ch.Mode)
	}
	if ch.Name != "REPEAT1" {
		t.Errorf("Name = %q, want REPEAT1", ch.Name)
	}
}

func TestDecodeChannelEmptyOnInvalidBCD(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)
	for i := range rec {
		rec[i] = 0xFF
	}
	ch := decodeChannel(3, rec, name)
	if !ch.IsEmpty() {
		t.Errorf("expected empty channel from all-0xFF record, got %+v", ch)
	}
}

func TestEncodeChannelPlusOffsetLowPower(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)
	rec[offBits] = 0x05  // bits 0-2 set, must survive isuhf-only rewrite
	rec[offFlags1] = 0xAB
	rec[offFlags2] = 0xCD

	ch := channel.Channel{
		Number:   5,
		RxFreqHz: 146_520_000,
		Mode:     channel.ModeFM,
		Duplex:   channel.DuplexPlus,
		OffsetHz: 600_000,
		ToneMode: channel.ToneModeNone,
		Power:    1,
		Name:     "SIMPLEX",
	}

	if err := encodeChannel(ch, rec, name); err != nil {
		t.Fatalf("encodeChannel: %v", err)
	}

	if rec[offBits]&0b0000_0111 != 0b0000_0101 {
		t.Errorf("byte12 low 3 bits changed: got %08b, want unchanged 101", rec[offBits])
	}
	if rec[offFlags1] != 0xAB {
		t.Errorf("byte13 (flags1) modified: got %02X, want untouched 0xAB", rec[offFlags1])
	}
	if rec[offFlags2] != 0xCD {
		t.Errorf("byte15 (flags2) modified: got %02X, want untouched 0xCD", rec[offFlags2])
	}
	if rec[offPower]&0b0000_0011 != 1 {
		t.Errorf("lowpower bits = %02b, want 01", rec[offPower]&0b11)
	}

	back := decodeChannel(5, rec, name)
	if back.TxFreqHz != 147_120_000 {
		t.Errorf("round-tripped TxFreqHz = %d, want 147120000", back.TxFreqHz)
	}
	if back.Duplex != channel.DuplexPlus || back.OffsetHz != 600_000 {
		t.Errorf("round-tripped duplex/offset = %s/%d, want plus/600000", back.Duplex, back.OffsetHz)
	}
	if back.Power != 1 {
		t.Errorf("round-tripped Power = %d, want 1", back.Power)
	}
}

func TestEncodeChannelRejectsInvalidPower(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)
	ch := channel.Channel{
		Number:   0,
		RxFreqHz: 146_000_000,
		Mode:     channel.ModeFM,
		Duplex:   channel.DuplexSimplex,
		Power:    50,
	}
	if err := encodeChannel(ch, rec, name); err == nil {
		t.Fatal("expected validation error for out-of-range power")
	}
}

func TestEncodeChannelClearsSlotOnEmpty(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)
	if err := encodeChannel(channel.Channel{Number: 2}, rec, name); err != nil {
		t.Fatalf("encodeChannel: %v", err)
	}
	for i, b := range rec {
		if b != 0xFF {
			t.Fatalf("rec[%d] = %02X, want 0xFF for empty slot", i, b)
		}
	}
}

func TestEncodeChannelSplitRoundTrip(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)

	ch := channel.Channel{
		Number:   6,
		RxFreqHz: 146_520_000,
		Mode:     channel.ModeFM,
		Duplex:   channel.DuplexSplit,
		OffsetHz: 446_000_000, // arbitrary tx freq, not a repeater offset
		ToneMode: channel.ToneModeNone,
		Power:    4,
		Name:     "SPLIT",
	}

	if err := encodeChannel(ch, rec, name); err != nil {
		t.Fatalf("encodeChannel: %v", err)
	}

	back := decodeChannel(6, rec, name)
	if back.Duplex != channel.DuplexSplit {
		t.Errorf("Duplex = %s, want split", back.Duplex)
	}
	if back.TxFreqHz != 446_000_000 {
		t.Errorf("TxFreqHz = %d, want 446000000", back.TxFreqHz)
	}
	if back.OffsetHz != 446_000_000 {
		t.Errorf("OffsetHz = %d, want 446000000 (explicit tx freq)", back.OffsetHz)
	}
}

func TestEncodeChannelTXInhibitedRoundTrip(t *testing.T) {
	rec := make([]byte, ChannelWidth)
	name := make([]byte, nameWidth)

	ch := channel.Channel{
		Number:   7,
		RxFreqHz: 146_520_000,
		Mode:     channel.ModeFM,
		Duplex:   channel.DuplexOff,
		ToneMode: channel.ToneModeNone,
		Power:    4,
		Name:     "RXONLY",
	}

	if err := encodeChannel(ch, rec, name); err != nil {
		t.Fatalf("encodeChannel: %v", err)
	}
	got, err := binprim.ReadUint(rec[offTxFreq:offTxFreq+4], 4, true)
	if err != nil {
		t.Fatalf("ReadUint: %v", err)
	}
	if got != txInhibitedSentinel {
		t.Errorf("tx freq word = 0x%08X, want 0x%08X", got, txInhibitedSentinel)
	}

	back := decodeChannel(7, rec, name)
	if back.Duplex != channel.DuplexOff {
		t.Errorf("Duplex = %s, want off", back.Duplex)
	}
	if back.TxFreqHz != 0 {
		t.Errorf("TxFreqHz = %d, want 0", back.TxFreqHz)
	}
	if !back.IsEmpty() && back.RxFreqHz != 146_520_000 {
		t.Errorf("RxFreqHz = %d, want 146520000", back.RxFreqHz)
	}
}

func TestDTCSToneRoundTrip(t *testing.T) {
	raw := encodeDTCS(23, channel.DTCSNormal)
	isDTCS, _, code, pol := decodeTone(raw)
	if !isDTCS || code != 23 || pol != channel.DTCSNormal {
		t.Errorf("decodeTone(encodeDTCS(23, normal)) = (%v, %d, %s)", isDTCS, code, pol)
	}

	raw = encodeDTCS(754, channel.DTCSReverse)
	isDTCS, _, code, pol = decodeTone(raw)
	if !isDTCS || code != 754 || pol != channel.DTCSReverse {
		t.Errorf("decodeTone(encodeDTCS(754, reverse)) = (%v, %d, %s)", isDTCS, code, pol)
	}
}
