package radiok

import (
	"context"

	"github.com/kb9vty/cloneforge/pkg/blockproto"
	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/cloneerr"
	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/memimage"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

type radioK struct{}

// New returns the Radio-K Driver.
func New() driver.Driver { return radioK{} }

func (radioK) Descriptor() driver.Descriptor { return Descriptor() }

func (radioK) Download(ctx context.Context, port serialport.Port, progress driver.ProgressFunc) (*memimage.Image, error) {
	defer endSession(port)

	if err := checkCancel(ctx, "handshake"); err != nil {
		return nil, err
	}
	if err := handshake(port); err != nil {
		return nil, err
	}

	seq := 0
	data, err := blockproto.Download(downloadBlockSize, ImageLen, func(i int) ([]byte, error) {
		if err := checkCancel(ctx, "download"); err != nil {
			return nil, err
		}
		req := []byte{'R', byte(seq >> 8), byte(seq & 0xFF)}
		if err := port.WriteAll(req); err != nil {
			return nil, err
		}
		block, err := port.ReadExact(downloadBlockSize)
		if err != nil {
			return nil, err
		}
		if err := port.WriteAll([]byte{ackByte}); err != nil {
			return nil, err
		}
		seq++
		return block, nil
	}, func(done, total int, msg string) {
		if progress != nil {
			progress(done, total, msg)
		}
	})
	if err != nil {
		return nil, err
	}

	return memimage.LoadFromSlice(data, memimage.OriginRadioK), nil
}

func (radioK) Upload(ctx context.Context, port serialport.Port, image *memimage.Image, progress driver.ProgressFunc) error {
	defer endSession(port)

	if err := checkCancel(ctx, "handshake"); err != nil {
		return err
	}
	if err := handshake(port); err != nil {
		return err
	}

	// The last two blocks hold factory calibration data; withhold them
	// from the upload the same way the handheld's own service software
	// does, rather than writing over them with the file image's copy.
	writable := image.Bytes()[:ImageLen-2*downloadBlockSize]

	return blockproto.Upload(downloadBlockSize, writable, func(i int, block []byte) error {
		if err := checkCancel(ctx, "upload"); err != nil {
			return err
		}
		return writeBlockWithRetry(port, i, block)
	}, func(done, total int, msg string) {
		if progress != nil {
			progress(done, total, msg)
		}
	})
}

// writeBlockWithRetry sends one upload block and waits for its ACK,
// retrying exactly once on a missed ACK before surfacing a fatal
// cloneerr.ProtocolError, per spec.md §4.5.
func writeBlockWithRetry(port serialport.Port, seq int, block []byte) error {
	header := []byte{'W', byte(seq >> 8), byte(seq & 0xFF)}

	attempt := func() error {
		if err := port.WriteAll(header); err != nil {
			return err
		}
		if err := port.WriteAll(block); err != nil {
			return err
		}
		ack, err := port.ReadExact(1)
		if err != nil {
			return err
		}
		if ack[0] != ackByte {
			return &cloneerr.ProtocolError{Context: "upload block ack", Expected: []byte{ackByte}, Observed: ack}
		}
		return nil
	}

	if err := attempt(); err != nil {
		if err := attempt(); err != nil {
			return &cloneerr.ProtocolError{Context: "upload block ack (after retry)", Expected: []byte{ackByte}, Observed: nil}
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

func (radioK) DecodeChannels(image *memimage.Image) ([]channel.Channel, error) {
	return decodeAllChannels(image)
}

func (radioK) EncodeChannel(image *memimage.Image, ch channel.Channel) error {
	return encodeOneChannel(image, ch)
}
