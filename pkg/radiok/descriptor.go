// Package radiok implements the Radio-K driver: a Kenwood-style,
// D-STAR-capable handheld with a ~500 KB image, 1200 channels, and a
// two-stage clone handshake that negotiates an in-session baud switch.
package radiok

import (
	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/driver"
)

const (
	// ImageLen is the full clone-mode image size. There is no file-level
	// header for Radio-K: the saved envelope's raw bytes are the radio
	// address space verbatim.
	ImageLen = 512 * 1024

	ChannelCount = 1200
	ChannelWidth = 40
	BankCount    = 10

	// Memory map bases, spec.md §4.5.
	flagTableBase    = 0x2000
	flagEntryWidth   = 4
	channelBase      = 0x4000
	groupSize        = 6
	groupPaddingLen  = 16
	nameTableBase    = 0x10000
	nameEntryWidth   = 16
)

// Descriptor returns Radio-K's static metadata.
func Descriptor() driver.Descriptor {
	return driver.Descriptor{
		ID:           driver.RadioK,
		Vendor:       "Kenwood-style",
		Model:        "Radio-K",
		ImageLen:     ImageLen,
		ChannelCount: ChannelCount,
		ChannelWidth: ChannelWidth,
		ValidModes:   []channel.Mode{channel.ModeFM, channel.ModeNFM, channel.ModeAM, channel.ModeDV},
		// Radio-K has no per-channel power field in its 40-byte record;
		// every channel transmits at the radio's single fixed level.
		PowerLevels:      []int{5},
		HasVariablePower: false,
		HasBanks:         true,
		BankCount:        BankCount,
	}
}
