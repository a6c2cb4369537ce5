// Package memimage provides the byte-addressable container used to hold a
// radio's full clone-mode memory image. The image is treated as mostly
// opaque: only the regions a driver's codec understands are interpreted,
// everything else is carried through byte-exact so read-modify-write never
// clobbers global settings the core does not model.
package memimage

import (
	"fmt"
	"strings"

	"github.com/kb9vty/cloneforge/pkg/cloneerr"
)

// Origin names which radio family produced an Image, for diagnostics and
// for the CLI's file-size auto-detect fallback.
type Origin string

const (
	OriginUnknown Origin = ""
	OriginRadioK  Origin = "radio-k"
	OriginRadioB  Origin = "radio-b"
)

// Image is a fixed-size, bounds-checked byte buffer plus an origin tag.
// It supports no concurrent mutation; callers (the Orchestrator) hold
// exclusive use of an Image for the duration of a read-modify-write cycle.
type Image struct {
	buf    []byte
	origin Origin
}

// New allocates an Image of the given size filled with 0xFF, the erased
// state of the flash these radios carry.
func New(size int, origin Origin) *Image {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0xFF
	}
	return &Image{buf: buf, origin: origin}
}

// LoadFromSlice wraps an existing byte slice as an Image. The slice is
// copied so later mutation of the Image cannot alias caller-owned memory.
func LoadFromSlice(data []byte, origin Origin) *Image {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Image{buf: buf, origin: origin}
}

// Len returns the image size in bytes.
func (img *Image) Len() int { return len(img.buf) }

// Origin returns the radio family that produced this image.
func (img *Image) Origin() Origin { return img.origin }

// Bytes returns the full underlying buffer. Callers must not retain or
// mutate the returned slice past the Image's lifetime without copying it.
func (img *Image) Bytes() []byte { return img.buf }

// Get returns a borrowed slice [addr, addr+n) of the image. Fails with
// cloneerr.OutOfRange if the range does not fit within the image.
func (img *Image) Get(addr, n int) ([]byte, error) {
	if addr < 0 || n < 0 || addr+n > len(img.buf) {
		return nil, &cloneerr.OutOfRange{Addr: addr, Len: n, Size: len(img.buf)}
	}
	return img.buf[addr : addr+n], nil
}

// Put overwrites [addr, addr+len(data)) with data. Fails with
// cloneerr.OutOfRange if the range does not fit within the image.
func (img *Image) Put(addr int, data []byte) error {
	if addr < 0 || addr+len(data) > len(img.buf) {
		return &cloneerr.OutOfRange{Addr: addr, Len: len(data), Size: len(img.buf)}
	}
	copy(img.buf[addr:addr+len(data)], data)
	return nil
}

// HexDump renders [addr, addr+n) as the conventional 16-bytes-per-row
// offset/hex/ASCII debug format.
func (img *Image) HexDump(addr, n int) (string, error) {
	data, err := img.Get(addr, n)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(&b, "%08X  ", addr+off)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%02X ", row[i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for _, c := range row {
			if c >= 0x20 && c < 0x7F {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String(), nil
}
