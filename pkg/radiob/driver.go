package radiob

import (
	"context"

	"github.com/kb9vty/cloneforge/pkg/blockproto"
	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/memimage"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

type radioB struct{}

// New returns the Radio-B Driver.
func New() driver.Driver { return radioB{} }

func (radioB) Descriptor() driver.Descriptor { return Descriptor() }

func (radioB) Download(ctx context.Context, port serialport.Port, progress driver.ProgressFunc) (*memimage.Image, error) {
	if err := checkCancel(ctx, "handshake"); err != nil {
		return nil, err
	}
	ident, err := handshake(port)
	if err != nil {
		return nil, err
	}

	body, err := blockproto.Download(downloadBlockSize, RadioImageLen, func(i int) ([]byte, error) {
		if err := checkCancel(ctx, "download"); err != nil {
			return nil, err
		}
		return readBlock(port, i*downloadBlockSize, downloadBlockSize)
	}, func(done, total int, msg string) {
		if progress != nil {
			progress(done, total, msg)
		}
	})
	if err != nil {
		return nil, err
	}

	full := make([]byte, 0, FileImageLen)
	full = append(full, padIdent(ident)...)
	full = append(full, body...)

	return memimage.LoadFromSlice(full, memimage.OriginRadioB), nil
}

// padIdent pads or truncates the handshake's identity frame to the
// 8-byte header width the file envelope carries.
func padIdent(ident []byte) []byte {
	out := make([]byte, IdentHeaderLen)
	copy(out, ident)
	return out
}

func (radioB) Upload(ctx context.Context, port serialport.Port, image *memimage.Image, progress driver.ProgressFunc) error {
	if err := checkCancel(ctx, "handshake"); err != nil {
		return err
	}
	if _, err := handshake(port); err != nil {
		return err
	}

	fileBytes := image.Bytes()

	addrs := make([]int, 0, RadioImageLen/uploadBlockSize)
	for fileAddr := IdentHeaderLen; fileAddr < FileImageLen; fileAddr += uploadBlockSize {
		if inSkipRange(fileAddr) {
			continue
		}
		addrs = append(addrs, fileAddr)
	}

	total := len(addrs)
	for done, fileAddr := range addrs {
		if err := checkCancel(ctx, "upload"); err != nil {
			return err
		}
		block := fileBytes[fileAddr : fileAddr+uploadBlockSize]
		if err := writeBlock(port, fileToRadio(fileAddr), block); err != nil {
			return err
		}
		if progress != nil {
			progress(done+1, total, "uploading")
		}
	}
	return nil
}

func checkCancel(ctx context.Context, stage string) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return &cloneerr.CancelRequested{Stage: stage}
	default:
		return nil
	}
}

func (radioB) DecodeChannels(image *memimage.Image) ([]channel.Channel, error) {
	return decodeAllChannels(image)
}

func (radioB) EncodeChannel(image *memimage.Image, ch channel.Channel) error {
	return encodeOneChannel(image, ch)
}
