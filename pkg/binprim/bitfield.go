package binprim

import "fmt"

// ExtractBits returns the width-bit field of b starting at inclusive bit
// position lowBit (0 = LSB).
func ExtractBits(b byte, lowBit, width int) byte {
	mask := byte((1 << uint(width)) - 1)
	return (b >> uint(lowBit)) & mask
}

// InsertBits returns b with its [lowBit, lowBit+width) field replaced by
// the low `width` bits of value. The destination bits are cleared before
// the new value is OR'ed in, so the helper is safe to call even when the
// invariant documented below does not hold; callers that want to assert
// the stronger invariant should call AssertBitsClear first.
func InsertBits(b byte, lowBit, width int, value byte) byte {
	mask := byte((1 << uint(width)) - 1)
	cleared := b &^ (mask << uint(lowBit))
	return cleared | ((value & mask) << uint(lowBit))
}

// AssertBitsClear reports an error if the [lowBit, lowBit+width) field of
// b is not already zero. Every insertion site in this codebase documents
// which bits it must not disturb; this lets a test assert that invariant
// directly instead of re-deriving the mask by hand.
func AssertBitsClear(b byte, lowBit, width int) error {
	if ExtractBits(b, lowBit, width) != 0 {
		return fmt.Errorf("binprim: bits [%d,%d) of 0x%02X are not clear", lowBit, lowBit+width, b)
	}
	return nil
}
