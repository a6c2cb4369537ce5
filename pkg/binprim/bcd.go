// Package binprim centralizes the byte-level primitives every radio codec
// leans on: BCD, fixed-width integer read/write in either endianness, and
// bit-field extraction/insertion. Every subtle bug in this corpus's
// history has been in a bit-field position or a BCD nibble, so these
// helpers live in one place where tests can enumerate them exhaustively
// instead of being reimplemented ad hoc per driver.
package binprim

import (
	"fmt"

	"github.com/kb9vty/cloneforge/pkg/cloneerr"
)

// BCDToInt decodes a BCD-encoded byte slice to an integer. Each byte
// holds two decimal digits, high nibble more significant within the
// byte. littleEndian controls whether buf[0] is the most or least
// significant byte of the overall value. Any nibble above 9 fails with
// cloneerr.InvalidBCD.
func BCDToInt(buf []byte, littleEndian bool) (int64, error) {
	var val int64
	order := make([]byte, len(buf))
	copy(order, buf)
	if littleEndian {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	for idx, b := range order {
		hi := b >> 4
		lo := b & 0x0F
		if hi > 9 {
			return 0, &cloneerr.InvalidBCD{Byte: b, Index: idx}
		}
		if lo > 9 {
			return 0, &cloneerr.InvalidBCD{Byte: b, Index: idx}
		}
		val = val*100 + int64(hi)*10 + int64(lo)
	}
	return val, nil
}

// IntToBCD encodes value into nbytes of BCD. Fails if value has more
// decimal digits than 2*nbytes can hold.
func IntToBCD(value int64, nbytes int, littleEndian bool) ([]byte, error) {
	if value < 0 {
		return nil, fmt.Errorf("binprim: IntToBCD: negative value %d", value)
	}
	maxDigits := nbytes * 2
	maxVal := int64(1)
	for i := 0; i < maxDigits; i++ {
		maxVal *= 10
	}
	if value >= maxVal {
		return nil, fmt.Errorf("binprim: IntToBCD: value %d has more than %d decimal digits", value, maxDigits)
	}

	out := make([]byte, nbytes)
	v := value
	for i := nbytes - 1; i >= 0; i-- {
		lo := byte(v % 10)
		v /= 10
		hi := byte(v % 10)
		v /= 10
		out[i] = hi<<4 | lo
	}
	if littleEndian {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
