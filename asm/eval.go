package asm

import (
	"errors"
	"log"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ezrec/i8080/codepage"
)

// Registers are the predefined symbols of every assembly.
var Registers = map[string]int{
	"B":   0b000,
	"C":   0b001,
	"D":   0b010,
	"E":   0b011,
	"H":   0b100,
	"L":   0b101,
	"M":   0b110,
	"A":   0b111,
	"PSW": 0b111,
	"SP":  0b111,
}

// Fixup is a deferred reference to a label, patched at the end of assembly.
// Base is the address of the opcode byte preceding the 16-bit address.
type Fixup struct {
	Token Token
	Base  int
}

// Context is the mutable state of a single assembly.
type Context struct {
	Verbose    bool
	Counter    int            // Current write address.
	Values     map[string]int // EQU and SET symbols, and the registers.
	Addrs      map[string]int // Label addresses.
	Unresolved []Fixup
}

// NewContext returns a context with the register symbols defined.
func NewContext() *Context {
	return &Context{
		Values: maps.Clone(Registers),
		Addrs:  map[string]int{},
	}
}

// isString checks for a quoted literal.
func isString(lexeme string) bool {
	return len(lexeme) >= 2 && strings.HasPrefix(lexeme, "'") && strings.HasSuffix(lexeme, "'")
}

// isName checks for a lexeme that could be a symbol: anything not
// starting with a digit.
func isName(lexeme string) bool {
	r, _ := utf8.DecodeRuneInString(lexeme)
	return r != utf8.RuneError && !unicode.IsDigit(r)
}

// char returns the code page index of a character.
func char(token Token, r rune) (index int, err error) {
	index, ok := codepage.Lookup(r)
	if !ok {
		err = errToken(token, ErrCharSymbol)
		return
	}
	return
}

// Evaluate resolves a token to a number.
// Resolution order is the current address '$', a quoted character,
// a symbol from Values then Addrs, and finally a number literal.
// When deferred is set an unknown symbol is recorded as a fixup at
// the current address and evaluates to zero.
func (ctx *Context) Evaluate(token Token, deferred bool) (value int, err error) {
	lexeme := token.Lexeme

	if lexeme == "$" {
		value = ctx.Counter
		return
	}

	if isString(lexeme) {
		text := []rune(lexeme[1 : len(lexeme)-1])
		if len(text) != 1 {
			err = errToken(token, ErrCharLength)
			return
		}
		return char(token, text[0])
	}

	if isName(lexeme) {
		var ok bool
		if value, ok = ctx.Values[lexeme]; ok {
			return
		}
		if value, ok = ctx.Addrs[lexeme]; ok {
			return
		}
		if deferred {
			if ctx.Verbose {
				log.Printf("asm: defer %v at %04x", lexeme, ctx.Counter)
			}
			ctx.Unresolved = append(ctx.Unresolved, Fixup{Token: token, Base: ctx.Counter})
			value = 0
			return
		}
	}

	value, err = codepage.Scan(lexeme)
	if err != nil {
		err = errToken(token, errors.Join(ErrValue(lexeme), err))
		return
	}

	return
}

// DB evaluates a DB operand: the code page indices of a quoted string, or
// a single byte value.
func (ctx *Context) DB(token Token) (bytes []int, err error) {
	if isString(token.Lexeme) {
		for _, r := range token.Lexeme[1 : len(token.Lexeme)-1] {
			var index int
			index, err = char(token, r)
			if err != nil {
				return
			}
			bytes = append(bytes, index)
		}
		if bytes == nil {
			bytes = []int{}
		}
		return
	}

	v, err := ctx.Evaluate(token, false)
	if err != nil {
		return
	}

	if v > 1<<8 {
		err = errToken(token, ErrRange{Max: 1 << 8, Value: v})
		return
	}

	bytes = []int{v}
	return
}

// DW evaluates a DW operand to a little-endian word.
func (ctx *Context) DW(token Token) (bytes []int, err error) {
	v, err := ctx.Evaluate(token, false)
	if err != nil {
		return
	}

	if v > 1<<16 {
		err = errToken(token, ErrRange{Max: 1 << 16, Value: v})
		return
	}

	bytes = []int{v & 0xff, v >> 8}
	return
}

// DS evaluates a DS operand to a zero filled block.
func (ctx *Context) DS(token Token) (bytes []int, err error) {
	v, err := ctx.Evaluate(token, false)
	if err != nil {
		return
	}

	if v > 1<<16 || v < 0 {
		err = errToken(token, ErrRange{Max: 1 << 16, Value: v})
		return
	}

	bytes = make([]int, v)
	return
}

// fix maps a register code (B=0, D=2, H=4, SP=7) to its register pair code.
func fix(v int) int {
	return v >> 1
}
