package channel

import "testing"

func TestIsEmpty(t *testing.T) {
	if !(Channel{}).IsEmpty() {
		t.Error("zero-value Channel should be empty")
	}
	ch := Channel{RxFreqHz: 146_520_000}
	if ch.IsEmpty() {
		t.Error("Channel with a nonzero RxFreqHz should not be empty")
	}
}

func TestCTCSSIndex(t *testing.T) {
	if idx := CTCSSIndex(69.3); idx != 1 {
		t.Errorf("CTCSSIndex(69.3) = %d, want 1", idx)
	}
	if idx := CTCSSIndex(69.29); idx != 1 {
		t.Errorf("CTCSSIndex(69.29) = %d, want 1 (within tolerance)", idx)
	}
	if idx := CTCSSIndex(12.3); idx != -1 {
		t.Errorf("CTCSSIndex(12.3) = %d, want -1", idx)
	}
}

func TestDTCSIndex(t *testing.T) {
	if idx := DTCSIndex(754); idx != len(DTCSCodes)-1 {
		t.Errorf("DTCSIndex(754) = %d, want %d", idx, len(DTCSCodes)-1)
	}
	if idx := DTCSIndex(999); idx != -1 {
		t.Errorf("DTCSIndex(999) = %d, want -1", idx)
	}
}

func TestTuningStepIndex(t *testing.T) {
	if idx := TuningStepIndex(12500); idx != 3 {
		t.Errorf("TuningStepIndex(12500) = %d, want 3", idx)
	}
	if idx := TuningStepIndex(1); idx != -1 {
		t.Errorf("TuningStepIndex(1) = %d, want -1", idx)
	}
}
