package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func expandText(text string) (insts []Instruction, err error) {
	for inst, e := range Expand(Parse(Scan(text, Rules))) {
		if e != nil {
			err = e
			return
		}
		insts = append(insts, inst)
	}
	return
}

func mnemonics(insts []Instruction) (out []string) {
	for _, inst := range insts {
		out = append(out, inst.Mnemonic.Lexeme)
	}
	return
}

func TestExpand(t *testing.T) {
	assert := assert.New(t)

	program := `
SWAP:   MACRO
        XCHG
        XTHL
        ENDM

        NOP
        SWAP
        SWAP
        HLT
`

	insts, err := expandText(program)
	assert.NoError(err)
	assert.Equal([]string{"NOP", "XCHG", "XTHL", "XCHG", "XTHL", "HLT"}, mnemonics(insts))
}

func TestExpandCase(t *testing.T) {
	assert := assert.New(t)

	insts, err := expandText("TWICE: macro X, Y\n NOP\n NOP\n endm\n TWICE\n")
	assert.NoError(err)
	assert.Equal([]string{"NOP", "NOP"}, mnemonics(insts))
}

func TestExpandLabels(t *testing.T) {
	assert := assert.New(t)

	insts, err := expandText("ONE: MACRO\nINNER: NOP\n ENDM\nHERE: ONE\n")
	assert.NoError(err)
	if assert.Len(insts, 1) {
		assert.Equal([]string{"HERE:", "INNER:"}, lexemes(insts[0].Labels))
	}

	insts, err = expandText("EMPTY: MACRO\n ENDM\nHERE: EMPTY\n")
	assert.NoError(err)
	if assert.Len(insts, 1) {
		assert.Equal("", insts[0].Mnemonic.Lexeme)
		assert.Equal([]string{"HERE:"}, lexemes(insts[0].Labels))
	}

	// The definition is not modified by an invocation with labels.
	insts, err = expandText("ONE: MACRO\n NOP\n ENDM\nA1: ONE\n ONE\n")
	assert.NoError(err)
	if assert.Len(insts, 2) {
		assert.Equal([]string{"A1:"}, lexemes(insts[0].Labels))
		assert.Nil(insts[1].Labels)
	}
}

func TestExpandErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		err  error
	}{
		{" MACRO\n ENDM\n", ErrMacroName},
		{"A: B: MACRO\n ENDM\n", ErrMacroName},
		{"A: MACRO\nB: MACRO\n ENDM\n ENDM\n", ErrMacroNesting},
		{" NOP\n ENDM\n", ErrMacroLonelyEndm},
		{"A: MACRO\n NOP\n", ErrMacroLonely},
		{"A: MACRO\n ENDM\nA: MACRO\n ENDM\n", ErrMacroDuplicate},
		{"A: MACRO\n DB 1,,\n ENDM\n", ErrUnexpectedSymbol},
	}

	for _, entry := range table {
		_, err := expandText(entry.text)
		assert.ErrorIs(err, entry.err, entry.text)
	}
}
