// Package radios is the closed dispatch point over driver.RadioID: the
// only package permitted to import both pkg/driver and the concrete
// radiok/radiob packages, so the driver interface itself stays free of
// any dependency on its implementations.
package radios

import (
	"fmt"

	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/radiob"
	"github.com/kb9vty/cloneforge/pkg/radiok"
	"github.com/kb9vty/cloneforge/pkg/serialport"
)

// Select returns the Driver for id, or an error if id names no
// supported radio.
func Select(id driver.RadioID) (driver.Driver, error) {
	switch id {
	case driver.RadioK:
		return radiok.New(), nil
	case driver.RadioB:
		return radiob.New(), nil
	default:
		return nil, fmt.Errorf("radios: unsupported radio id %q", id)
	}
}

// List returns the static descriptor for every supported radio, in a
// stable order.
func List() []driver.Descriptor {
	return []driver.Descriptor{
		radiok.Descriptor(),
		radiob.Descriptor(),
	}
}

// DefaultConfig returns the serial configuration a driver expects its
// transport opened with, before any handshake-driven baud switch.
func DefaultConfig(id driver.RadioID) (serialport.Config, error) {
	switch id {
	case driver.RadioK:
		return radiok.DefaultConfig(), nil
	case driver.RadioB:
		return radiob.DefaultConfig(), nil
	default:
		return serialport.Config{}, fmt.Errorf("radios: unsupported radio id %q", id)
	}
}

// DetectFromSize guesses a radio family from a saved file's byte length,
// per spec.md §6: files no larger than 0x2000 bytes are Radio-B, larger
// files are Radio-K.
func DetectFromSize(fileLen int) driver.RadioID {
	const radioBCeiling = 0x2000
	if fileLen <= radioBCeiling {
		return driver.RadioB
	}
	return driver.RadioK
}
