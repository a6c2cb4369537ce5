// Package driver defines the closed sum type of supported radios: the
// RadioID enumeration, the per-radio Descriptor metadata, and the Driver
// interface every concrete radio package (radiok, radiob) implements.
// Dispatch on RadioID happens in package radios, which is the only code
// allowed to import both this package and the concrete drivers — that
// keeps the dependency graph acyclic while still making every driver's
// contract explicit instead of routing through an untyped registry.
package driver

import (
	"context"

	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/memimage"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

// RadioID names one of the two supported radio families.
type RadioID string

const (
	RadioK RadioID = "radio-k"
	RadioB RadioID = "radio-b"
)

// Descriptor is static, immutable per-radio metadata identical across
// runs: vendor/model strings, image geometry, and the valid mode/power
// enumerations a driver's encoder will accept.
type Descriptor struct {
	ID       RadioID
	Vendor   string
	Model    string

	ImageLen     int // bytes, file-envelope length
	ChannelCount int
	ChannelWidth int // bytes per channel record

	ValidModes  []channel.Mode
	PowerLevels []int // watts

	HasVariablePower bool
	HasBanks         bool
	BankCount        int
}

// ProgressFunc is invoked at block boundaries during Download/Upload.
type ProgressFunc func(done, total int, msg string)

// Driver is the per-radio contract: handshake + block protocol in
// Download/Upload, and the normalized Channel <-> image codec in
// DecodeChannels/EncodeChannel.
type Driver interface {
	Descriptor() Descriptor

	// Download performs the handshake, downloads the full image, and
	// restores the transport to its pre-session baud before returning,
	// on every exit path including error or ctx cancellation.
	Download(ctx context.Context, port serialport.Port, progress ProgressFunc) (*memimage.Image, error)

	// Upload performs the handshake and uploads image. Callers MUST
	// have obtained image via a prior Download of the same radio; this
	// method does not enforce that itself (the Orchestrator does).
	Upload(ctx context.Context, port serialport.Port, image *memimage.Image, progress ProgressFunc) error

	// DecodeChannels translates every channel region of image into
	// normalized Channels. A channel whose bytes fail to decode (bad
	// BCD, etc.) is emitted as an empty Channel rather than aborting
	// the batch.
	DecodeChannels(image *memimage.Image) ([]channel.Channel, error)

	// EncodeChannel mutates image in place to reflect ch. Returns a
	// cloneerr.ValidationError (and leaves image unchanged for this
	// channel) if ch is not valid for this radio.
	EncodeChannel(image *memimage.Image, ch channel.Channel) error
}
