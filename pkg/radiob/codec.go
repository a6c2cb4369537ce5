package radiob

import (
	"strings"

	"github.com/kb9vty/cloneforge/pkg/binprim"
	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/memimage"
)

// Byte offsets within a 16-byte channel record, spec.md §4.6.
const (
	offRxFreq = 0
	offTxFreq = 4
	offTxTone = 8
	offRxTone = 10
	offBits   = 12 // isuhf/scode; bits 0-2 unused, must not be disturbed
	offFlags1 = 13 // opaque per-bit settings; preserved, not interpreted
	offPower  = 14 // lowpower bits 0-1, narrow bit 2
	offFlags2 = 15 // bcl/pttid/etc; preserved, not interpreted
)

const noTone = 0xFFFF

// txInhibitedSentinel is the raw little-endian tx-frequency word a
// Radio-B uses to mark a channel as receive-only (TX inhibited),
// rather than storing any BCD frequency there.
const txInhibitedSentinel = 0xFFFFFFFF

// splitThresholdHz is how far apart rx/tx have to be before the gap is
// treated as an arbitrary split pair rather than a repeater offset.
const splitThresholdHz = 70_000_000

// decodeChannel translates a 16-byte record and its paired 7-byte name
// slot into a normalized Channel. Never returns an error: a garbage BCD
// nibble (including an all-0xFF empty slot) decodes to an empty Channel,
// per spec.md's "treat invalid rx BCD as empty" rule.
func decodeChannel(n int, rec, name []byte) channel.Channel {
	ch := channel.Channel{Number: n}

	rxRaw, err := binprim.BCDToInt(rec[offRxFreq:offRxFreq+4], true)
	if err != nil || rxRaw == 0 {
		return ch
	}
	ch.RxFreqHz = uint32(rxRaw) * 10

	txFreqRaw, _ := binprim.ReadUint(rec[offTxFreq:offTxFreq+4], 4, true)

	switch {
	case txFreqRaw == txInhibitedSentinel:
		ch.Duplex = channel.DuplexOff
		ch.TxFreqHz = 0
		ch.OffsetHz = 0
	default:
		txRaw, err := binprim.BCDToInt(rec[offTxFreq:offTxFreq+4], true)
		if err != nil {
			ch.TxFreqHz = ch.RxFreqHz
		} else {
			ch.TxFreqHz = uint32(txRaw) * 10
		}

		switch diff := int64(ch.TxFreqHz) - int64(ch.RxFreqHz); {
		case ch.TxFreqHz == ch.RxFreqHz:
			ch.Duplex = channel.DuplexSimplex
			ch.OffsetHz = 0
		case diff > splitThresholdHz || diff < -splitThresholdHz:
			ch.Duplex = channel.DuplexSplit
			ch.OffsetHz = ch.TxFreqHz
		case ch.TxFreqHz > ch.RxFreqHz:
			ch.Duplex = channel.DuplexPlus
			ch.OffsetHz = ch.TxFreqHz - ch.RxFreqHz
		default:
			ch.Duplex = channel.DuplexMinus
			ch.OffsetHz = ch.RxFreqHz - ch.TxFreqHz
		}
	}

	txToneU32, _ := binprim.ReadUint(rec[offTxTone:offTxTone+2], 2, true)
	rxToneU32, _ := binprim.ReadUint(rec[offRxTone:offRxTone+2], 2, true)
	txRawTone := uint16(txToneU32)
	rxRawTone := uint16(rxToneU32)
	txIsDTCS, txHz, txCode, txPol := decodeTone(txRawTone)
	rxIsDTCS, rxHz, rxCode, rxPol := decodeTone(rxRawTone)

	switch {
	case txRawTone == noTone && rxRawTone == noTone:
		ch.ToneMode = channel.ToneModeNone
	case !txIsDTCS && txRawTone != noTone && !rxIsDTCS && rxRawTone != noTone:
		if txHz == rxHz {
			ch.ToneMode = channel.ToneModeTSQL
		} else {
			ch.ToneMode = channel.ToneModeCross
		}
		ch.TxToneHz = txHz
		ch.RxToneHz = rxHz
	case !txIsDTCS && txRawTone != noTone && rxRawTone == noTone:
		ch.ToneMode = channel.ToneModeTone
		ch.TxToneHz = txHz
	case txIsDTCS && rxIsDTCS && txCode == rxCode && txPol == rxPol:
		ch.ToneMode = channel.ToneModeDTCS
		ch.DTCSCode = txCode
		ch.DTCSPolarity = txPol
	default:
		ch.ToneMode = channel.ToneModeCross
		ch.TxToneHz = txHz
		ch.RxToneHz = rxHz
		if txIsDTCS {
			ch.DTCSCode = txCode
			ch.DTCSPolarity = txPol
		} else if rxIsDTCS {
			ch.DTCSCode = rxCode
			ch.DTCSPolarity = rxPol
		}
	}

	// Radio-B has no per-channel tuning-step byte; ch.TuningStepHz is
	// left at its zero value.

	lowpower := binprim.ExtractBits(rec[offPower], 0, 2)
	if lowpower == 0 {
		ch.Power = 4
	} else {
		ch.Power = 1 // 1 and the reserved tri-power value 2 both decode to Low
	}
	if binprim.ExtractBits(rec[offPower], 2, 1) == 1 {
		ch.Mode = channel.ModeNFM
	} else {
		ch.Mode = channel.ModeFM
	}

	ch.Name = strings.TrimRight(string(name), " \x00")

	return ch
}

// encodeChannel writes ch into rec/name in place. For a non-empty ch,
// byte 12's bits 0-2, byte 13, and byte 15 are never touched: this codec
// does not model them and must not corrupt values it cannot interpret.
// An empty ch instead resets the whole record and name to 0xFF.
func encodeChannel(ch channel.Channel, rec, name []byte) error {
	desc := Descriptor()

	if ch.Number < 0 || ch.Number >= desc.ChannelCount {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "number", Reason: "out of range"}
	}

	if ch.IsEmpty() {
		for i := range rec {
			rec[i] = 0xFF
		}
		for i := range name {
			name[i] = 0xFF
		}
		return nil
	}

	validMode := false
	for _, m := range desc.ValidModes {
		if m == ch.Mode {
			validMode = true
			break
		}
	}
	if !validMode {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "mode", Reason: string(ch.Mode) + " not valid for Radio-B"}
	}

	powerOK := false
	for _, p := range desc.PowerLevels {
		if p == ch.Power {
			powerOK = true
		}
	}
	if !powerOK {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "power", Reason: "not a valid power level for Radio-B"}
	}

	rxBCD, err := binprim.IntToBCD(int64(ch.RxFreqHz/10), 4, true)
	if err != nil {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "rx_freq_hz", Reason: err.Error()}
	}
	copy(rec[offRxFreq:offRxFreq+4], rxBCD)

	if ch.Duplex == channel.DuplexOff {
		copy(rec[offTxFreq:offTxFreq+4], binprim.WriteUint(txInhibitedSentinel, 4, true))
	} else {
		var txFreq uint32
		switch ch.Duplex {
		case channel.DuplexSimplex:
			txFreq = ch.RxFreqHz
		case channel.DuplexPlus:
			txFreq = ch.RxFreqHz + ch.OffsetHz
		case channel.DuplexMinus:
			txFreq = ch.RxFreqHz - ch.OffsetHz
		case channel.DuplexSplit:
			txFreq = ch.OffsetHz // spec.md: offset_hz holds the tx frequency for split
		default:
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "duplex", Reason: "unknown duplex"}
		}

		txBCD, err := binprim.IntToBCD(int64(txFreq/10), 4, true)
		if err != nil {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tx_freq_hz", Reason: err.Error()}
		}
		copy(rec[offTxFreq:offTxFreq+4], txBCD)
	}

	var txToneRaw, rxToneRaw uint16
	switch ch.ToneMode {
	case channel.ToneModeNone:
		txToneRaw, rxToneRaw = noTone, noTone
	case channel.ToneModeTone:
		if channel.CTCSSIndex(ch.TxToneHz) < 0 {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tx_tone_hz", Reason: "not a standard CTCSS tone"}
		}
		txToneRaw = encodeCTCSS(ch.TxToneHz)
		rxToneRaw = noTone
	case channel.ToneModeTSQL:
		if channel.CTCSSIndex(ch.TxToneHz) < 0 {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tx_tone_hz", Reason: "not a standard CTCSS tone"}
		}
		txToneRaw = encodeCTCSS(ch.TxToneHz)
		rxToneRaw = encodeCTCSS(ch.TxToneHz)
	case channel.ToneModeDTCS:
		if channel.DTCSIndex(ch.DTCSCode) < 0 {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "dtcs_code", Reason: "not a standard DTCS code"}
		}
		txToneRaw = encodeDTCS(ch.DTCSCode, ch.DTCSPolarity)
		rxToneRaw = txToneRaw
	case channel.ToneModeCross:
		if ch.DTCSCode != 0 {
			txToneRaw = encodeDTCS(ch.DTCSCode, ch.DTCSPolarity)
		} else {
			txToneRaw = encodeCTCSS(ch.TxToneHz)
		}
		if ch.RxToneHz != 0 {
			rxToneRaw = encodeCTCSS(ch.RxToneHz)
		} else {
			rxToneRaw = encodeDTCS(ch.DTCSCode, ch.DTCSPolarity)
		}
	default:
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tone_mode", Reason: "unknown tone mode"}
	}
	copy(rec[offTxTone:offTxTone+2], binprim.WriteUint(uint32(txToneRaw), 2, true))
	copy(rec[offRxTone:offRxTone+2], binprim.WriteUint(uint32(rxToneRaw), 2, true))

	rec[offBits] = binprim.InsertBits(rec[offBits], 3, 1, isUHF(ch.RxFreqHz))

	var narrow byte
	if ch.Mode == channel.ModeNFM {
		narrow = 1
	}
	rec[offPower] = binprim.InsertBits(rec[offPower], 2, 1, narrow)

	var lowpower byte
	if ch.Power == 1 {
		lowpower = 1
	}
	rec[offPower] = binprim.InsertBits(rec[offPower], 0, 2, lowpower)

	copy(name, padName(ch.Name, len(name)))

	return nil
}

func isUHF(rxFreqHz uint32) byte {
	if rxFreqHz >= 300_000_000 {
		return 1
	}
	return 0
}

func encodeCTCSS(hz float64) uint16 {
	return uint16(hz*10 + 0.5)
}

func encodeDTCS(code int, polarity channel.DTCSPolarity) uint16 {
	v := uint16(code) & 0x0FFF
	if polarity == channel.DTCSReverse {
		return 0xC000 | v
	}
	return 0x8000 | v
}

// decodeTone splits a raw tx/rx tone u16 into its CTCSS-or-DTCS parts.
func decodeTone(raw uint16) (isDTCS bool, hz float64, code int, polarity channel.DTCSPolarity) {
	if raw == noTone {
		return false, 0, 0, channel.DTCSNormal
	}
	if raw&0xC000 == 0x8000 {
		return true, 0, int(raw & 0x0FFF), channel.DTCSNormal
	}
	if raw&0xC000 == 0xC000 {
		return true, 0, int(raw & 0x0FFF), channel.DTCSReverse
	}
	return false, float64(raw) / 10.0, 0, channel.DTCSNormal
}

func padName(s string, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		out[i] = ' '
	}
	copy(out, s)
	return out
}

// decodeAllChannels decodes every channel in a file-envelope image.
func decodeAllChannels(image *memimage.Image) ([]channel.Channel, error) {
	out := make([]channel.Channel, 0, ChannelCount)
	for n := 0; n < ChannelCount; n++ {
		rec, err := image.Get(channelFileOffset(n), ChannelWidth)
		if err != nil {
			return nil, err
		}
		name, err := image.Get(nameFileOffset(n), nameWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, decodeChannel(n, rec, name))
	}
	return out, nil
}

// encodeOneChannel mutates a file-envelope image in place for one edit.
func encodeOneChannel(image *memimage.Image, ch channel.Channel) error {
	if ch.Number < 0 || ch.Number >= ChannelCount {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "number", Reason: "out of range"}
	}
	rec, err := image.Get(channelFileOffset(ch.Number), ChannelWidth)
	if err != nil {
		return err
	}
	name, err := image.Get(nameFileOffset(ch.Number), nameWidth)
	if err != nil {
		return err
	}
	// Encode into copies so a validation failure leaves image unchanged.
	newRec := append([]byte(nil), rec...)
	newName := append([]byte(nil), name...)
	if err := encodeChannel(ch, newRec, newName); err != nil {
		return err
	}
	copy(rec, newRec)
	copy(name, newName)
	return nil
}
