// Package io provides devices attachable to the IO ports of the 8080
// emulator. A device receives the byte of each OUT to its port, and
// supplies the byte of each IN from it.
//
// Devices include a console byte stream (Tape), a read only data source
// (Rom) and a bounded FIFO (Temporary).
package io

// Port defines the interface for all IO port devices.
type Port interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// In reads the next byte from the device.
	In() (value byte, err error)
	// Out writes a byte to the device.
	Out(value byte) error
}
