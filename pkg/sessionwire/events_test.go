package sessionwire

import (
	"bytes"
	"testing"
)

func TestProgressEventRoundTrip(t *testing.T) {
	ev := ProgressEvent{RadioID: "radio-k", Done: 12, Total: 200, Message: "downloading"}

	frame, err := EncodeProgress(ev)
	if err != nil {
		t.Fatalf("EncodeProgress: %v", err)
	}

	kind, val, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if kind != EventProgress {
		t.Fatalf("kind = 0x%02X, want EventProgress", kind)
	}
	got, ok := val.(*ProgressEvent)
	if !ok {
		t.Fatalf("val is %T, want *ProgressEvent", val)
	}
	if *got != ev {
		t.Errorf("decoded = %+v, want %+v", *got, ev)
	}
}

func TestLogEventRoundTrip(t *testing.T) {
	ev := LogEvent{Level: LogWarn, Message: "retrying block 4"}

	frame, err := EncodeLog(ev)
	if err != nil {
		t.Fatalf("EncodeLog: %v", err)
	}

	kind, val, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if kind != EventLog {
		t.Fatalf("kind = 0x%02X, want EventLog", kind)
	}
	got, ok := val.(*LogEvent)
	if !ok {
		t.Fatalf("val is %T, want *LogEvent", val)
	}
	if *got != ev {
		t.Errorf("decoded = %+v, want %+v", *got, ev)
	}
}

func TestDecodeIncompleteFrame(t *testing.T) {
	frame, err := EncodeProgress(ProgressEvent{RadioID: "radio-b"})
	if err != nil {
		t.Fatalf("EncodeProgress: %v", err)
	}
	if _, _, err := Decode(frame[:len(frame)-2]); err == nil {
		t.Fatal("expected error decoding a truncated frame")
	}
}

func TestReaderWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	progress := ProgressEvent{RadioID: "radio-k", Done: 1, Total: 4, Message: "handshake"}
	logLine := LogEvent{Level: LogError, Message: "block 2 failed twice"}

	if err := w.WriteProgress(progress); err != nil {
		t.Fatalf("WriteProgress: %v", err)
	}
	if err := w.WriteLog(logLine); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}

	r := NewReader(&buf)

	kind, val, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent (progress): %v", err)
	}
	if kind != EventProgress || *val.(*ProgressEvent) != progress {
		t.Errorf("first event = (%v, %+v), want (%v, %+v)", kind, val, EventProgress, progress)
	}

	kind, val, err = r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent (log): %v", err)
	}
	if kind != EventLog || *val.(*LogEvent) != logLine {
		t.Errorf("second event = (%v, %+v), want (%v, %+v)", kind, val, EventLog, logLine)
	}
}
