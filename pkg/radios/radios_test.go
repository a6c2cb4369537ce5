package radios

import (
	"testing"

	"github.com/kb9vty/cloneforge/pkg/driver"
)

func TestSelectReturnsConcreteDrivers(t *testing.T) {
	for _, id := range []driver.RadioID{driver.RadioK, driver.RadioB} {
		drv, err := Select(id)
		if err != nil {
			t.Fatalf("Select(%s): %v", id, err)
		}
		if drv.Descriptor().ID != id {
			t.Errorf("Select(%s).Descriptor().ID = %s, want %s", id, drv.Descriptor().ID, id)
		}
	}
}

func TestSelectUnknownRadio(t *testing.T) {
	if _, err := Select(driver.RadioID("radio-z")); err == nil {
		t.Fatal("expected error for unknown radio id")
	}
}

func TestListReturnsBothDescriptors(t *testing.T) {
	descs := List()
	if len(descs) != 2 {
		t.Fatalf("List() returned %d descriptors, want 2", len(descs))
	}
	seen := map[driver.RadioID]bool{}
	for _, d := range descs {
		seen[d.ID] = true
	}
	if !seen[driver.RadioK] || !seen[driver.RadioB] {
		t.Errorf("List() missing an expected radio id: %v", descs)
	}
}

func TestDefaultConfigUnknownRadio(t *testing.T) {
	if _, err := DefaultConfig(driver.RadioID("radio-z")); err == nil {
		t.Fatal("expected error for unknown radio id")
	}
}

func TestDetectFromSize(t *testing.T) {
	tests := []struct {
		fileLen int
		want    driver.RadioID
	}{
		{0x1800 + 8, driver.RadioB},
		{0x2000, driver.RadioB},
		{0x2001, driver.RadioK},
		{512 * 1024, driver.RadioK},
	}
	for _, tt := range tests {
		if got := DetectFromSize(tt.fileLen); got != tt.want {
			t.Errorf("DetectFromSize(%d) = %s, want %s", tt.fileLen, got, tt.want)
		}
	}
}
