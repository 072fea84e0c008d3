package emulator

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	ErrLimit   = errors.New(f("cycle limit reached"))
	errStopped = errors.New(f("stopped"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
