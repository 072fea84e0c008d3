package cpu

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	ErrInterruptPending = errors.New(f("interrupt already pending"))
	ErrInterruptVector  = errors.New(f("interrupt vector out of range"))
)

// ErrOpcodeUndefined is raised when fetching a byte that encodes no instruction.
type ErrOpcodeUndefined byte

func (eo ErrOpcodeUndefined) Error() string {
	return f("undefined instruction %02XH", byte(eo))
}

func (eo ErrOpcodeUndefined) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcodeUndefined)
	return
}

// ErrPort wraps the failure of a device attached to an IO port.
type ErrPort struct {
	Port byte
	Err  error
}

func (err ErrPort) Error() string {
	return f("port %02XH %v", err.Port, err.Err)
}

func (err ErrPort) Unwrap() error {
	return err.Err
}
