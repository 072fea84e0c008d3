package script

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	ErrPokeArguments = errors.New(f("poke takes an address and byte values"))
)

// ErrRegister is raised for an unknown register name.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("unknown register %v", string(err))
}

func (err ErrRegister) Is(target error) (ok bool) {
	_, ok = target.(ErrRegister)
	return
}

// ErrFlag is raised for an unknown flag name.
type ErrFlag string

func (err ErrFlag) Error() string {
	return f("unknown flag %v", string(err))
}

func (err ErrFlag) Is(target error) (ok bool) {
	_, ok = target.(ErrFlag)
	return
}

// ErrSymbol is raised for a name the loaded program does not define.
type ErrSymbol string

func (err ErrSymbol) Error() string {
	return f("can not find %v symbol", string(err))
}

func (err ErrSymbol) Is(target error) (ok bool) {
	_, ok = target.(ErrSymbol)
	return
}

// ErrRange is raised for a value that does not fit its destination.
type ErrRange struct {
	Max   int
	Value int
}

func (err ErrRange) Error() string {
	return f("max value %d, got %d", err.Max, err.Value)
}

func (err ErrRange) Is(target error) (ok bool) {
	_, ok = target.(ErrRange)
	return
}
