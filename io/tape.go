package io

import (
	"errors"
	"io"
)

// Tape provides sequential byte IO, for use as a console.
// Input is read one byte per IN, and reads zero once exhausted.
// Each OUT writes one byte to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	eof bool
}

var _ Port = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// In reads the next byte of the input stream.
func (tc *Tape) In() (value byte, err error) {
	if tc.Input == nil || tc.eof {
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if errors.Is(err, io.EOF) {
		tc.eof = true
		err = nil
		return
	}
	if err != nil {
		return
	}

	value = one[0]
	return
}

// Out writes a byte to the output stream.
// Output is discarded when no writer is set.
func (tc *Tape) Out(value byte) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = tc.Output.Write([]byte{value})
	return
}
