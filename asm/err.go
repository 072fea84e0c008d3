package asm

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Syntax errors
	ErrUnexpectedSymbol = errors.New(f("unexpected symbol"))

	// Macro errors
	ErrMacroName       = errors.New(f("macro MUST have only one name"))
	ErrMacroNesting    = errors.New(f("macro in macro prohibited"))
	ErrMacroLonely     = errors.New(f("macro without endm"))
	ErrMacroLonelyEndm = errors.New(f("endm without macro"))

	// Evaluation errors
	ErrCharLength = errors.New(f("char length MUST be one"))
	ErrCharSymbol = errors.New(f("unexisting symbol"))

	// Code generation errors
	ErrLabelDuplicate       = errors.New(f("label duplicated"))
	ErrRedefined            = errors.New(f("symbol can not be redefined"))
	ErrInstructionUndefined = errors.New(f("undefined instruction"))
	ErrAddressOverflow      = errors.New(f("not enough memory for insert"))
	ErrByteOverflow         = errors.New(f("too big for 8-bit number"))
)

// ErrValue is raised for a token that is neither a known symbol nor a number.
type ErrValue string

func (ev ErrValue) Error() string {
	return f("can't find %v value", string(ev))
}

// ErrLabelUnresolved names a label referenced but never defined.
type ErrLabelUnresolved string

func (el ErrLabelUnresolved) Error() string {
	return f("can not find %v label", string(el))
}

// ErrRange is raised for a value too wide for its field.
type ErrRange struct {
	Max   int
	Value int
}

func (er ErrRange) Error() string {
	return f("max value %d, got %d", er.Max, er.Value)
}

func (er ErrRange) Is(err error) (ok bool) {
	_, ok = err.(ErrRange)
	return
}

// ErrArguments is raised for an operand count mismatch.
type ErrArguments struct {
	Mnemonic string
	Required int
	Got      int
	Operands string
}

func (ea ErrArguments) Error() string {
	return f("%v inst required %d arguments, got %d: %v", ea.Mnemonic, ea.Required, ea.Got, ea.Operands)
}

func (ea ErrArguments) Is(err error) (ok bool) {
	_, ok = err.(ErrArguments)
	return
}

// ErrAssembler binds an error to the source position of a token.
// Line and Start are zero based, End is exclusive.
type ErrAssembler struct {
	Lexeme string
	Line   int
	Start  int
	End    int
	Err    error
}

func (err ErrAssembler) Error() string {
	return f("line %d:%d-%d '%v' %v", err.Line+1, err.Start, err.End, err.Lexeme, err.Err)
}

func (err ErrAssembler) Unwrap() error {
	return err.Err
}

// Message is the error text without the position.
func (err ErrAssembler) Message() string {
	return err.Err.Error()
}

func errToken(token Token, err error) error {
	return ErrAssembler{
		Lexeme: token.Lexeme,
		Line:   token.Line,
		Start:  token.Start,
		End:    token.End,
		Err:    err,
	}
}
