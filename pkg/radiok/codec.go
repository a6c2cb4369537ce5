package radiok

import (
	"strings"

	"github.com/kb9vty/cloneforge/pkg/binprim"
	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/memimage"
)

// Byte offsets within a 40-byte channel record, spec.md §4.5.
const (
	offRxFreq  = 0
	offOffset  = 4
	offStep    = 8
	offMode    = 9
	offToneDup = 10
	offTxTone  = 11
	offRxTone  = 12
	offDTCS    = 13
	offDSQ     = 14 // digital squelch code, bits 0-1; not modeled, preserved verbatim
	offURCall  = 15
	offRPT1    = 23
	offRPT2    = 31
	offDVCode  = 39
)

// decodeChannel translates the 40-byte record, 4-byte flag entry, and
// 16-byte name entry for channel n into a normalized Channel. Never
// returns an error: unreadable bit patterns simply decode to a
// conservative default within an otherwise-empty channel, matching the
// "decode-time errors localize to a channel" propagation rule.
func decodeChannel(n int, rec, flag, name []byte) channel.Channel {
	ch := channel.Channel{Number: n}

	if flag[0] == 0xFF {
		return ch // empty: flag table marks this slot unused
	}

	rxFreq, _ := binprim.ReadUint(rec[offRxFreq:offRxFreq+4], 4, true)
	if rxFreq == 0xFFFFFFFF || rxFreq == 0 {
		return ch
	}
	ch.RxFreqHz = rxFreq

	offsetHz, _ := binprim.ReadUint(rec[offOffset:offOffset+4], 4, true)
	ch.OffsetHz = offsetHz

	stepIdx := int(binprim.ExtractBits(rec[offStep], 0, 4))
	if stepIdx < len(channel.TuningSteps) {
		ch.TuningStepHz = channel.TuningSteps[stepIdx]
	}

	dv := binprim.ExtractBits(rec[offMode], 4, 1) == 1
	narrow := binprim.ExtractBits(rec[offMode], 3, 1) == 1
	baseMode := binprim.ExtractBits(rec[offMode], 1, 2)
	switch {
	case dv:
		ch.Mode = channel.ModeDV
	case baseMode == 1:
		ch.Mode = channel.ModeAM
	case narrow:
		ch.Mode = channel.ModeNFM
	default:
		ch.Mode = channel.ModeFM
	}

	duplexBits := binprim.ExtractBits(rec[offToneDup], 0, 2)
	switch duplexBits {
	case 0:
		ch.Duplex = channel.DuplexSimplex
	case 1:
		ch.Duplex = channel.DuplexPlus
	case 2:
		ch.Duplex = channel.DuplexMinus
	case 3:
		ch.Duplex = channel.DuplexSplit
	}

	tsql := binprim.ExtractBits(rec[offToneDup], 7, 1) == 1
	tone := binprim.ExtractBits(rec[offToneDup], 6, 1) == 1
	dtcs := binprim.ExtractBits(rec[offToneDup], 2, 1) == 1
	cross := binprim.ExtractBits(rec[offToneDup], 3, 1) == 1
	switch {
	case tsql:
		ch.ToneMode = channel.ToneModeTSQL
	case tone:
		ch.ToneMode = channel.ToneModeTone
	case dtcs:
		ch.ToneMode = channel.ToneModeDTCS
	case cross:
		ch.ToneMode = channel.ToneModeCross
	default:
		ch.ToneMode = channel.ToneModeNone
	}

	txToneIdx := int(rec[offTxTone])
	if txToneIdx < len(channel.CTCSSTones) {
		ch.TxToneHz = channel.CTCSSTones[txToneIdx]
	}
	rxToneIdx := int(binprim.ExtractBits(rec[offRxTone], 0, 6))
	if rxToneIdx < len(channel.CTCSSTones) {
		ch.RxToneHz = channel.CTCSSTones[rxToneIdx]
	}
	if ch.ToneMode == channel.ToneModeTSQL {
		ch.TxToneHz = ch.RxToneHz
	}

	dtcsIdx := int(binprim.ExtractBits(rec[offDTCS], 0, 7))
	if dtcsIdx < len(channel.DTCSCodes) {
		ch.DTCSCode = channel.DTCSCodes[dtcsIdx]
	}
	// Byte 14 (offDSQ) is the digital squelch code, unrelated to DTCS
	// polarity; Radio-K's own driver never decodes it into a channel
	// record either, so it is left untouched here and preserved
	// verbatim on encode.
	ch.DTCSPolarity = channel.DTCSNormal

	ch.URCall = trimCall(rec[offURCall : offURCall+8])
	ch.RPT1Call = trimCall(rec[offRPT1 : offRPT1+8])
	ch.RPT2Call = trimCall(rec[offRPT2 : offRPT2+8])
	ch.DVCode = int(binprim.ExtractBits(rec[offDVCode], 0, 7))

	ch.Skip = binprim.ExtractBits(flag[1], 7, 1) == 1
	ch.Bank = int(flag[2])

	ch.Name = trimCall(name)
	ch.Power = Descriptor().PowerLevels[0]

	return ch
}

// encodeChannel writes ch into rec/flag/name in place, preserving the
// bytes this codec does not own: byte 8's high nibble (split tuning
// step, spec.md's open question — preserved, not interpreted), byte 14
// (digital squelch code), and the flag entry's reserved byte 3. An empty
// ch instead resets the whole record, all four flag bytes and the name
// to 0xFF.
func encodeChannel(ch channel.Channel, rec, flag, name []byte) error {
	desc := Descriptor()

	if ch.Number < 0 || ch.Number >= desc.ChannelCount {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "number", Reason: "out of range"}
	}

	if ch.IsEmpty() {
		for i := range rec {
			rec[i] = 0xFF
		}
		flag[0] = 0xFF
		flag[1] = 0xFF
		flag[2] = 0xFF
		flag[3] = 0xFF
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
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "mode", Reason: string(ch.Mode) + " not valid for Radio-K"}
	}

	powerOK := false
	for _, p := range desc.PowerLevels {
		if p == ch.Power {
			powerOK = true
		}
	}
	if !powerOK {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "power", Reason: "not a valid power level for Radio-K"}
	}

	copy(rec[offRxFreq:offRxFreq+4], binprim.WriteUint(ch.RxFreqHz, 4, true))
	copy(rec[offOffset:offOffset+4], binprim.WriteUint(ch.OffsetHz, 4, true))

	stepIdx := channel.TuningStepIndex(ch.TuningStepHz)
	if stepIdx < 0 {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tuning_step_hz", Reason: "not a standard tuning step"}
	}
	rec[offStep] = binprim.InsertBits(rec[offStep], 0, 4, byte(stepIdx))

	var modeByte byte
	switch ch.Mode {
	case channel.ModeDV:
		modeByte = binprim.InsertBits(modeByte, 4, 1, 1)
	case channel.ModeAM:
		modeByte = binprim.InsertBits(modeByte, 1, 2, 1)
	case channel.ModeNFM:
		modeByte = binprim.InsertBits(modeByte, 3, 1, 1)
	case channel.ModeFM:
		// base mode 0, narrow bit clear
	default:
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "mode", Reason: "unreachable"}
	}
	rec[offMode] = modeByte

	var duplexBits byte
	switch ch.Duplex {
	case channel.DuplexSimplex:
		duplexBits = 0
	case channel.DuplexPlus:
		duplexBits = 1
	case channel.DuplexMinus:
		duplexBits = 2
	case channel.DuplexSplit:
		duplexBits = 3
	default:
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "duplex", Reason: "unknown duplex"}
	}

	var toneDup byte
	toneDup = binprim.InsertBits(toneDup, 0, 2, duplexBits)
	switch ch.ToneMode {
	case channel.ToneModeNone:
	case channel.ToneModeTone:
		toneDup = binprim.InsertBits(toneDup, 6, 1, 1)
	case channel.ToneModeTSQL:
		toneDup = binprim.InsertBits(toneDup, 7, 1, 1)
	case channel.ToneModeDTCS:
		toneDup = binprim.InsertBits(toneDup, 2, 1, 1)
	case channel.ToneModeCross:
		toneDup = binprim.InsertBits(toneDup, 3, 1, 1)
	default:
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tone_mode", Reason: "unknown tone mode"}
	}
	rec[offToneDup] = toneDup

	txIdx := channel.CTCSSIndex(ch.TxToneHz)
	rxIdx := channel.CTCSSIndex(ch.RxToneHz)
	if ch.ToneMode == channel.ToneModeTone || ch.ToneMode == channel.ToneModeTSQL || ch.ToneMode == channel.ToneModeCross {
		if txIdx < 0 {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "tx_tone_hz", Reason: "not a standard CTCSS tone"}
		}
	}
	if txIdx < 0 {
		txIdx = 0
	}
	if rxIdx < 0 {
		rxIdx = 0
	}
	rec[offTxTone] = byte(txIdx)
	rec[offRxTone] = binprim.InsertBits(rec[offRxTone], 0, 6, byte(rxIdx))

	if ch.ToneMode == channel.ToneModeDTCS || ch.ToneMode == channel.ToneModeCross {
		dtcsIdx := channel.DTCSIndex(ch.DTCSCode)
		if dtcsIdx < 0 {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "dtcs_code", Reason: "not a standard DTCS code"}
		}
		rec[offDTCS] = binprim.InsertBits(rec[offDTCS], 0, 7, byte(dtcsIdx))
		if ch.DTCSPolarity == channel.DTCSReverse {
			return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "dtcs_polarity", Reason: "Radio-K has no reverse DTCS polarity"}
		}
	}
	// Byte 14 (offDSQ, digital squelch code) is not modeled by this
	// codec and is left as whatever the caller's read-modify-write
	// buffer already contains.

	copy(rec[offURCall:offURCall+8], padCall(ch.URCall))
	copy(rec[offRPT1:offRPT1+8], padCall(ch.RPT1Call))
	copy(rec[offRPT2:offRPT2+8], padCall(ch.RPT2Call))
	rec[offDVCode] = binprim.InsertBits(rec[offDVCode], 0, 7, byte(ch.DVCode))

	if ch.Skip {
		flag[1] = binprim.InsertBits(flag[1], 7, 1, 1)
	} else {
		flag[1] = binprim.InsertBits(flag[1], 7, 1, 0)
	}
	if ch.Bank < 0 || ch.Bank >= desc.BankCount {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "bank", Reason: "out of range"}
	}
	flag[2] = byte(ch.Bank)
	flag[0] = bandTagFor(ch.RxFreqHz)

	copy(name, padName(ch.Name, len(name)))

	return nil
}

func bandTagFor(rxFreqHz uint32) byte {
	switch {
	case rxFreqHz < 200_000_000:
		return 0x00 // VHF
	case rxFreqHz < 300_000_000:
		return 0x01 // 1.25 m
	default:
		return 0x02 // UHF
	}
}

func trimCall(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

func padCall(s string) []byte {
	out := make([]byte, 8)
	for i := range out {
		out[i] = ' '
	}
	copy(out, s)
	return out
}

func padName(s string, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		out[i] = ' '
	}
	copy(out, s)
	return out
}

// decodeAllChannels decodes every channel in image.
func decodeAllChannels(image *memimage.Image) ([]channel.Channel, error) {
	desc := Descriptor()
	out := make([]channel.Channel, 0, desc.ChannelCount)
	for n := 0; n < desc.ChannelCount; n++ {
		rec, err := image.Get(channelOffset(n), ChannelWidth)
		if err != nil {
			return nil, err
		}
		flag, err := image.Get(flagOffset(n), flagEntryWidth)
		if err != nil {
			return nil, err
		}
		name, err := image.Get(nameOffset(n), nameEntryWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, decodeChannel(n, rec, flag, name))
	}
	return out, nil
}

// encodeOneChannel mutates image in place for a single channel edit.
func encodeOneChannel(image *memimage.Image, ch channel.Channel) error {
	desc := Descriptor()
	if ch.Number < 0 || ch.Number >= desc.ChannelCount {
		return &cloneerr.ValidationError{ChannelNumber: ch.Number, Field: "number", Reason: "out of range"}
	}

	rec, err := image.Get(channelOffset(ch.Number), ChannelWidth)
	if err != nil {
		return err
	}
	flag, err := image.Get(flagOffset(ch.Number), flagEntryWidth)
	if err != nil {
		return err
	}
	name, err := image.Get(nameOffset(ch.Number), nameEntryWidth)
	if err != nil {
		return err
	}

	// Encode into copies so a validation failure leaves image unchanged.
	newRec := append([]byte(nil), rec...)
	newFlag := append([]byte(nil), flag...)
	newName := append([]byte(nil), name...)
	if err := encodeChannel(ch, newRec, newFlag, newName); err != nil {
		return err
	}
	copy(rec, newRec)
	copy(flag, newFlag)
	copy(name, newName)
	return nil
}
