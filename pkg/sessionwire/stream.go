package sessionwire

import (
	"io"

	"github.com/kb9vty/cloneforge/pkg/fusain"
)

// Reader decodes one Fusain-framed event at a time from an underlying
// byte stream, using pkg/fusain's byte-at-a-time state machine so a
// partial read never has to be buffered and re-scanned by hand.
type Reader struct {
	r io.Reader
	d *fusain.Decoder
	b [1]byte
}

// NewReader wraps r for frame-at-a-time reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, d: fusain.NewDecoder()}
}

// ReadEvent blocks until one full frame has been read, then decodes it.
func (r *Reader) ReadEvent() (EventKind, interface{}, error) {
	for {
		if _, err := io.ReadFull(r.r, r.b[:]); err != nil {
			return 0, nil, err
		}
		p, err := r.d.DecodeByte(r.b[0])
		if err != nil {
			return 0, nil, err
		}
		if p != nil {
			return decodePayload(p)
		}
	}
}

// Writer serializes events as framed bytes onto w.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for event writing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteProgress frames and writes a ProgressEvent.
func (wr *Writer) WriteProgress(ev ProgressEvent) error {
	frame, err := EncodeProgress(ev)
	if err != nil {
		return err
	}
	_, err = wr.w.Write(frame)
	return err
}

// WriteLog frames and writes a LogEvent.
func (wr *Writer) WriteLog(ev LogEvent) error {
	frame, err := EncodeLog(ev)
	if err != nil {
		return err
	}
	_, err = wr.w.Write(frame)
	return err
}
