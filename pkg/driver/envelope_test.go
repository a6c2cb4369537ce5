package driver

import (
	"reflect"
	"testing"

	"github.com/kb9vty/cloneforge/pkg/memimage"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	img := memimage.LoadFromSlice(data, memimage.OriginRadioK)

	meta := Metadata{Vendor: "Kenwood-style", Model: "Radio-K", Variant: "radio-k", Version: "1"}

	encoded, err := EncodeEnvelope(img, meta)
	if err != nil {
		t.Fatalf("EncodeEnvelope: %v", err)
	}

	decodedImg, decodedMeta, err := DecodeEnvelope(encoded, memimage.OriginRadioK)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}

	if decodedImg.Len() != img.Len() {
		t.Fatalf("decoded image len = %d, want %d", decodedImg.Len(), img.Len())
	}
	for i, b := range decodedImg.Bytes() {
		if b != data[i] {
			t.Fatalf("byte %d = %02X, want %02X", i, b, data[i])
		}
	}
	if !reflect.DeepEqual(decodedMeta, meta) {
		t.Errorf("decoded metadata = %+v, want %+v", decodedMeta, meta)
	}
}

func TestDecodeEnvelopeMissingMagic(t *testing.T) {
	if _, _, err := DecodeEnvelope([]byte{1, 2, 3}, memimage.OriginRadioK); err == nil {
		t.Fatal("expected error when the envelope separator is absent")
	}
}

func TestEnvelopeSurvivesImageBytesResemblingMagic(t *testing.T) {
	// The image bytes are entirely 0x0A and 0x2D (a subset of the magic
	// separator's own bytes) to make sure the split point is found by
	// the actual separator sequence and not a partial false match.
	data := make([]byte, 40)
	for i := range data {
		if i%2 == 0 {
			data[i] = '\n'
		} else {
			data[i] = '-'
		}
	}
	img := memimage.LoadFromSlice(data, memimage.OriginRadioB)
	encoded, err := EncodeEnvelope(img, Metadata{Vendor: "Baofeng-style", Model: "Radio-B", Version: "1"})
	if err != nil {
		t.Fatalf("EncodeEnvelope: %v", err)
	}
	decodedImg, _, err := DecodeEnvelope(encoded, memimage.OriginRadioB)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if decodedImg.Len() != len(data) {
		t.Fatalf("decoded image len = %d, want %d", decodedImg.Len(), len(data))
	}
}
