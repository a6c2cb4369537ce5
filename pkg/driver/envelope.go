package driver

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/kb9vty/cloneforge/pkg/memimage"
)

// envelopeMagic separates the raw image bytes from the trailing
// base64-encoded JSON metadata blob. It is not radio data and never
// appears inside a valid image, since both radios' images are bounded
// and their lengths are declared in the Descriptor.
var envelopeMagic = []byte("\n--cloneforge-envelope--\n")

// Metadata is the JSON blob every saved file carries: vendor/model/
// variant/version plus a free-form extras map for forward compatibility.
type Metadata struct {
	Vendor  string         `json:"vendor"`
	Model   string         `json:"model"`
	Variant string         `json:"variant,omitempty"`
	Version string         `json:"version"`
	Extras  map[string]any `json:"extras,omitempty"`
}

// EncodeEnvelope serializes image's raw bytes followed by the magic
// separator and the base64 JSON metadata blob. This is byte-for-byte
// what spec.md §6 calls the File Envelope format: raw bytes are never
// reinterpreted, so Save followed by Load is lossless by construction.
func EncodeEnvelope(image *memimage.Image, meta Metadata) ([]byte, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("driver: encode envelope metadata: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(metaJSON)

	out := make([]byte, 0, image.Len()+len(envelopeMagic)+len(encoded))
	out = append(out, image.Bytes()...)
	out = append(out, envelopeMagic...)
	out = append(out, []byte(encoded)...)
	return out, nil
}

// DecodeEnvelope splits a saved file back into its raw image bytes and
// metadata. origin is the caller's choice of memimage.Origin tag; this
// package has no opinion on which radio produced the file (that
// judgment belongs to the loader, which auto-detects or is told
// explicitly per spec.md §6).
func DecodeEnvelope(data []byte, origin memimage.Origin) (*memimage.Image, Metadata, error) {
	idx := bytes.Index(data, envelopeMagic)
	if idx < 0 {
		return nil, Metadata{}, fmt.Errorf("driver: envelope magic separator not found")
	}

	rawLen := idx
	encoded := data[idx+len(envelopeMagic):]

	metaJSON, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("driver: decode envelope metadata base64: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, Metadata{}, fmt.Errorf("driver: decode envelope metadata json: %w", err)
	}

	img := memimage.LoadFromSlice(data[:rawLen], origin)
	return img, meta, nil
}
