// Package orchestrator implements the read-modify-write discipline that
// sits between the CLI/TUI collaborators and a concrete radio driver:
// download the current image before ever uploading, apply channel
// edits against that image, and keep file envelopes radio-aware.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/memimage"
	"github.com/kb9vty/cloneforge/pkg/radios"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

// Download opens portName with the target radio's expected serial
// configuration, runs its handshake and block download, and returns the
// resulting image. The transport is always closed before returning,
// success or failure.
func Download(ctx context.Context, radioID driver.RadioID, portName string, progress driver.ProgressFunc) (*memimage.Image, error) {
	drv, err := radios.Select(radioID)
	if err != nil {
		return nil, err
	}
	cfg, err := radios.DefaultConfig(radioID)
	if err != nil {
		return nil, err
	}

	port, err := serialport.Open(portName, cfg)
	if err != nil {
		return nil, &cloneerr.TransportError{Op: "open " + portName, Err: err}
	}
	defer port.Close()

	return drv.Download(ctx, port, progress)
}

// EditResult pairs a submitted Channel with the error (if any) that
// occurred while applying it, so a batch of edits can report
// per-channel failures without aborting the rest of the batch.
type EditResult struct {
	Channel channel.Channel
	Err     error
}

// ApplyEdits calls the radio's EncodeChannel for every channel in edits,
// mutating image in place. A channel that fails validation is recorded
// in the returned slice and does not prevent the remaining edits from
// being attempted.
func ApplyEdits(radioID driver.RadioID, image *memimage.Image, edits []channel.Channel) ([]EditResult, error) {
	drv, err := radios.Select(radioID)
	if err != nil {
		return nil, err
	}

	results := make([]EditResult, 0, len(edits))
	for _, ch := range edits {
		err := drv.EncodeChannel(image, ch)
		results = append(results, EditResult{Channel: ch, Err: err})
	}
	return results, nil
}

// Upload performs the mandatory read-modify-write cycle: download the
// radio's current image, apply edits to it, then upload the result.
// Uploading a freshly-created empty image instead would overwrite every
// global setting the driver's codec does not model.
func Upload(ctx context.Context, radioID driver.RadioID, portName string, edits []channel.Channel, progress driver.ProgressFunc) error {
	drv, err := radios.Select(radioID)
	if err != nil {
		return err
	}
	cfg, err := radios.DefaultConfig(radioID)
	if err != nil {
		return err
	}

	port, err := serialport.Open(portName, cfg)
	if err != nil {
		return &cloneerr.TransportError{Op: "open " + portName, Err: err}
	}
	defer port.Close()

	image, err := drv.Download(ctx, port, progress)
	if err != nil {
		return fmt.Errorf("orchestrator: read-modify-write download: %w", err)
	}

	var editErrs []error
	for _, ch := range edits {
		if err := drv.EncodeChannel(image, ch); err != nil {
			editErrs = append(editErrs, fmt.Errorf("applying edit to channel %d: %w", ch.Number, err))
		}
	}

	if err := drv.Upload(ctx, port, image, progress); err != nil {
		return errors.Join(append(editErrs, fmt.Errorf("orchestrator: upload: %w", err))...)
	}
	if len(editErrs) > 0 {
		return fmt.Errorf("orchestrator: %d of %d edits failed validation: %w", len(editErrs), len(edits), errors.Join(editErrs...))
	}

	return nil
}

// LoadFile reads a saved envelope from path and returns its image and
// originating radio's descriptor.
func LoadFile(path string) (*memimage.Image, driver.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, driver.Descriptor{}, fmt.Errorf("orchestrator: load %s: %w", path, err)
	}

	radioID := radios.DetectFromSize(len(data))
	origin := memimage.OriginRadioK
	if radioID == driver.RadioB {
		origin = memimage.OriginRadioB
	}

	image, meta, err := driver.DecodeEnvelope(data, origin)
	if err != nil {
		return nil, driver.Descriptor{}, fmt.Errorf("orchestrator: decode envelope %s: %w", path, err)
	}

	drv, err := radios.Select(radioID)
	if err != nil {
		return nil, driver.Descriptor{}, err
	}
	desc := drv.Descriptor()
	desc.Vendor = firstNonEmpty(meta.Vendor, desc.Vendor)
	desc.Model = firstNonEmpty(meta.Model, desc.Model)

	return image, desc, nil
}

// SaveFile writes image to path as a File Envelope tagged for radioID.
func SaveFile(path string, image *memimage.Image, radioID driver.RadioID) error {
	drv, err := radios.Select(radioID)
	if err != nil {
		return err
	}
	desc := drv.Descriptor()

	meta := driver.Metadata{
		Vendor:  desc.Vendor,
		Model:   desc.Model,
		Variant: string(radioID),
		Version: "1",
	}

	data, err := driver.EncodeEnvelope(image, meta)
	if err != nil {
		return fmt.Errorf("orchestrator: encode envelope: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("orchestrator: save %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
