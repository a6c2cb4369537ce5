// Package sessionwire frames session event records (download/upload
// progress and log lines) for transmission over a byte stream. It is a
// thin domain adapter over pkg/fusain: the same length-prefixed,
// byte-stuffed, CRC-16-CCITT wire format the appliance protocol uses,
// with an events-specific CBOR payload schema instead of Fusain's
// configuration/telemetry message types. Session events never share a
// wire with an actual Fusain device; the address field is always zero.
package sessionwire

import (
	"fmt"

	"github.com/kb9vty/cloneforge/pkg/fusain"
)

// EventKind discriminates the two record shapes carried on the wire.
// pkg/fusain defines no message types of its own; these values belong to
// this package alone.
type EventKind uint8

const (
	EventProgress EventKind = 0xE0
	EventLog      EventKind = 0xE1
)

// Payload map keys, scoped to this package's two event shapes.
const (
	keyRadioID = 1
	keyDone    = 2
	keyTotal   = 3
	keyMessage = 4
	keyLevel   = 1
)

// ProgressEvent reports one block-boundary tick of a download or upload.
type ProgressEvent struct {
	RadioID string
	Done    int
	Total   int
	Message string
}

// LogLevel mirrors the handful of severities the CLI's log package uses.
type LogLevel string

const (
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// LogEvent carries one log line to subscribers of the session feed.
type LogEvent struct {
	Level   LogLevel
	Message string
}

// sessionAddress is the Fusain packet address session events are always
// sent under; there is no real device on the other end to distinguish.
const sessionAddress = 0

// EncodeProgress frames a ProgressEvent as a Fusain packet.
func EncodeProgress(ev ProgressEvent) ([]byte, error) {
	payload := map[int]interface{}{
		keyRadioID: ev.RadioID,
		keyDone:    uint64(ev.Done),
		keyTotal:   uint64(ev.Total),
		keyMessage: ev.Message,
	}
	return fusain.EncodePacketFromValues(sessionAddress, uint8(EventProgress), payload)
}

// EncodeLog frames a LogEvent as a Fusain packet.
func EncodeLog(ev LogEvent) ([]byte, error) {
	payload := map[int]interface{}{
		keyLevel:   string(ev.Level),
		keyMessage: ev.Message,
	}
	return fusain.EncodePacketFromValues(sessionAddress, uint8(EventLog), payload)
}

// decodePayload turns a completed Fusain packet back into the event kind
// and typed value this package's producers encoded.
func decodePayload(p *fusain.Packet) (EventKind, interface{}, error) {
	m := p.PayloadMap()
	switch EventKind(p.Type()) {
	case EventProgress:
		radioID, _ := m[keyRadioID].(string)
		message, _ := m[keyMessage].(string)
		done, _ := fusain.GetMapUint(m, keyDone)
		total, _ := fusain.GetMapUint(m, keyTotal)
		return EventProgress, &ProgressEvent{
			RadioID: radioID,
			Done:    int(done),
			Total:   int(total),
			Message: message,
		}, nil
	case EventLog:
		level, _ := m[keyLevel].(string)
		message, _ := m[keyMessage].(string)
		return EventLog, &LogEvent{Level: LogLevel(level), Message: message}, nil
	default:
		return 0, nil, fmt.Errorf("sessionwire: unknown event kind 0x%02X", p.Type())
	}
}

// Decode unframes and decodes a single complete wire frame (as produced
// by EncodeProgress/EncodeLog, including its Start/End delimiters),
// returning the kind tag and one of *ProgressEvent or *LogEvent.
func Decode(raw []byte) (EventKind, interface{}, error) {
	d := fusain.NewDecoder()
	var packet *fusain.Packet
	for _, b := range raw {
		p, err := d.DecodeByte(b)
		if err != nil {
			return 0, nil, fmt.Errorf("sessionwire: %w", err)
		}
		if p != nil {
			packet = p
		}
	}
	if packet == nil {
		return 0, nil, fmt.Errorf("sessionwire: incomplete frame")
	}
	return decodePayload(packet)
}
