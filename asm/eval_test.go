package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/i8080/codepage"
)

func id(lexeme string) Token {
	return Token{Rule: RULE_ID, Lexeme: lexeme, End: len(lexeme)}
}

func str(lexeme string) Token {
	return Token{Rule: RULE_STRING, Lexeme: lexeme, End: len(lexeme)}
}

func TestIsString(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		ok   bool
	}{
		{"''", true},
		{"' '", true},
		{"'text'", true},
		{"'Hello, world'", true},
		{"'", false},
		{"\"", false},
		{" ", false},
		{"Hello, World", false},
		{"'Hello, World", false},
		{"Hello, world'", false},
	}

	for _, entry := range table {
		assert.Equal(entry.ok, isString(entry.text), entry.text)
	}
}

func TestEvaluateNumbers(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text  string
		value int
	}{
		{"1", 1},
		{"0", 0},
		{"-1", -1},
		{"-1000", -1000},
		{"10H", 0x10},
		{"10O", 0o10},
		{"11B", 0b11},
		{"FFFFH", 0xffff},
		{"0ffh", 0xff},
	}

	for _, entry := range table {
		value, err := NewContext().Evaluate(id(entry.text), false)
		assert.NoError(err, entry.text)
		assert.Equal(entry.value, value, entry.text)
	}
}

func TestEvaluateChars(t *testing.T) {
	assert := assert.New(t)

	ctx := NewContext()

	value, err := ctx.Evaluate(str("'A'"), false)
	assert.NoError(err)
	assert.Equal(65, value)

	value, err = ctx.Evaluate(str("'я'"), false)
	assert.NoError(err)
	assert.Equal(255, value)

	_, err = ctx.Evaluate(str("'ab'"), false)
	assert.ErrorIs(err, ErrCharLength)

	_, err = ctx.Evaluate(str("''"), false)
	assert.ErrorIs(err, ErrCharLength)

	_, err = ctx.Evaluate(str("'π'"), false)
	assert.ErrorIs(err, ErrCharSymbol)
}

func TestEvaluateSymbols(t *testing.T) {
	assert := assert.New(t)

	ctx := NewContext()
	ctx.Counter = 0xbeef

	value, err := ctx.Evaluate(id("$"), false)
	assert.NoError(err)
	assert.Equal(0xbeef, value)

	for name, code := range Registers {
		value, err = ctx.Evaluate(id(name), false)
		assert.NoError(err)
		assert.Equal(code, value, name)
	}

	ctx.Values["NEWEQU"] = 0x10
	value, err = ctx.Evaluate(id("NEWEQU"), false)
	assert.NoError(err)
	assert.Equal(0x10, value)

	// A name that looks like a number is still a symbol.
	ctx.Values["FFFFH"] = 1
	value, err = ctx.Evaluate(id("FFFFH"), false)
	assert.NoError(err)
	assert.Equal(1, value)

	// Values take precedence over addresses.
	ctx.Addrs["LOOP"] = 0x100
	value, err = ctx.Evaluate(id("LOOP"), false)
	assert.NoError(err)
	assert.Equal(0x100, value)

	ctx.Values["LOOP"] = 7
	value, err = ctx.Evaluate(id("LOOP"), false)
	assert.NoError(err)
	assert.Equal(7, value)
}

func TestEvaluateDeferred(t *testing.T) {
	assert := assert.New(t)

	ctx := NewContext()
	ctx.Counter = 0x20

	value, err := ctx.Evaluate(id("LATER"), true)
	assert.NoError(err)
	assert.Equal(0, value)
	assert.Equal([]Fixup{{Token: id("LATER"), Base: 0x20}}, ctx.Unresolved)

	_, err = ctx.Evaluate(id("LATER"), false)
	var ev ErrValue
	assert.True(errors.As(err, &ev))
	assert.Equal(ErrValue("LATER"), ev)
	assert.ErrorIs(err, codepage.ErrNumber)
	assert.ErrorContains(err, "can't find LATER value")
}

func TestDB(t *testing.T) {
	assert := assert.New(t)

	ctx := NewContext()

	bytes, err := ctx.DB(id("1"))
	assert.NoError(err)
	assert.Equal([]int{1}, bytes)

	bytes, err = ctx.DB(str("'ABC'"))
	assert.NoError(err)
	assert.Equal([]int{65, 66, 67}, bytes)

	bytes, err = ctx.DB(str("''"))
	assert.NoError(err)
	assert.Equal([]int{}, bytes)

	_, err = ctx.DB(str("'aπ'"))
	assert.ErrorIs(err, ErrCharSymbol)

	_, err = ctx.DB(id("257"))
	assert.ErrorIs(err, ErrRange{})
	var ea ErrAssembler
	if assert.True(errors.As(err, &ea)) {
		assert.Equal("257", ea.Lexeme)
	}
}

func TestDW(t *testing.T) {
	assert := assert.New(t)

	ctx := NewContext()

	bytes, err := ctx.DW(id("3C00H"))
	assert.NoError(err)
	assert.Equal([]int{0x00, 0x3c}, bytes)

	bytes, err = ctx.DW(id("0FFFFH"))
	assert.NoError(err)
	assert.Equal([]int{0xff, 0xff}, bytes)

	_, err = ctx.DW(id("65537"))
	assert.ErrorIs(err, ErrRange{})
	assert.ErrorContains(err, "65537")
}

func TestDS(t *testing.T) {
	assert := assert.New(t)

	ctx := NewContext()

	bytes, err := ctx.DS(id("10"))
	assert.NoError(err)
	assert.Equal(make([]int, 10), bytes)

	bytes, err = ctx.DS(id("0"))
	assert.NoError(err)
	assert.Equal([]int{}, bytes)

	_, err = ctx.DS(id("65537"))
	assert.ErrorIs(err, ErrRange{})

	_, err = ctx.DS(id("-1"))
	assert.ErrorIs(err, ErrRange{})
}

func TestFix(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, fix(Registers["B"]))
	assert.Equal(1, fix(Registers["D"]))
	assert.Equal(2, fix(Registers["H"]))
	assert.Equal(3, fix(Registers["SP"]))
	assert.Equal(3, fix(Registers["PSW"]))
}
