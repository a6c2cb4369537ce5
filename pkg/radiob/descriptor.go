// Package radiob implements the Radio-B driver: a Baofeng-style handheld
// with a small 0x1800-byte radio address space, a two-variant magic-byte
// handshake, and a file envelope that carries an 8-byte identity header
// ahead of the raw image.
package radiob

import (
	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/driver"
)

const (
	// RadioImageLen is the size of the raw radio address space, with no
	// identity header.
	RadioImageLen = 0x1800

	// IdentHeaderLen is the width of the identity header this driver
	// prepends to form the file-envelope buffer.
	IdentHeaderLen = 8

	// FileImageLen is RadioImageLen plus the prepended identity header;
	// this is the length of Images this driver produces from Download
	// and expects from Upload.
	FileImageLen = RadioImageLen + IdentHeaderLen

	ChannelCount = 128
	ChannelWidth = 16

	nameWidth = 7

	downloadBlockSize = 64
	uploadBlockSize   = 16
)

// skipRange is a half-open [Start, End) range of file-envelope addresses
// that must never be written back to the radio (calibration regions).
type skipRange struct{ Start, End int }

var skipRanges = []skipRange{
	{0x0CF8, 0x0D08},
	{0x0DF8, 0x0E08},
}

func inSkipRange(fileAddr int) bool {
	for _, r := range skipRanges {
		if fileAddr >= r.Start && fileAddr < r.End {
			return true
		}
	}
	return false
}

// Descriptor returns Radio-B's static metadata.
func Descriptor() driver.Descriptor {
	return driver.Descriptor{
		ID:               driver.RadioB,
		Vendor:           "Baofeng-style",
		Model:            "Radio-B",
		ImageLen:         FileImageLen,
		ChannelCount:     ChannelCount,
		ChannelWidth:     ChannelWidth,
		ValidModes:       []channel.Mode{channel.ModeFM, channel.ModeNFM},
		PowerLevels:      []int{1, 4},
		HasVariablePower: true,
		HasBanks:         false,
		BankCount:        0,
	}
}
