package asm

import (
	"errors"
	"iter"
	"slices"
	"strings"
)

var ErrMacroDuplicate = errors.New(f("macro duplicated"))

// Macro is a named block of instructions inlined at every invocation.
// Parameters are recorded but not substituted.
type Macro struct {
	Name   Token
	Params []string
	Body   []Instruction
}

// labelName strips the colon from a label lexeme.
func labelName(label Token) string {
	return strings.TrimSuffix(label.Lexeme, ":")
}

// Expand replaces macro invocations by the bodies of their definitions.
//
//	SWAP:   MACRO
//	        XCHG
//	        ENDM
//	        SWAP
//
// assembles as a single XCHG. Labels at the invocation site are attached
// to the first instruction of the body. Labels inside a body are not
// renamed, so a body with labels may only be expanded once.
func Expand(insts iter.Seq2[Instruction, error]) iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		macros := map[string]*Macro{}
		var recording *Macro

		for inst, err := range insts {
			if err != nil {
				yield(inst, err)
				return
			}

			mnemonic := inst.Mnemonic.Lexeme

			switch {
			case strings.EqualFold(mnemonic, "MACRO"):
				if recording != nil {
					yield(inst, errToken(inst.Mnemonic, ErrMacroNesting))
					return
				}
				if len(inst.Labels) != 1 {
					yield(inst, errToken(inst.Mnemonic, ErrMacroName))
					return
				}
				name := inst.Labels[0]
				if _, ok := macros[labelName(name)]; ok {
					yield(inst, errToken(name, ErrMacroDuplicate))
					return
				}
				recording = &Macro{Name: name}
				for _, param := range inst.Operands {
					recording.Params = append(recording.Params, param.Lexeme)
				}
				continue
			case strings.EqualFold(mnemonic, "ENDM"):
				if recording == nil {
					yield(inst, errToken(inst.Mnemonic, ErrMacroLonelyEndm))
					return
				}
				if len(inst.Labels) != 0 {
					recording.Body = append(recording.Body, Instruction{Labels: inst.Labels})
				}
				macros[labelName(recording.Name)] = recording
				recording = nil
				continue
			}

			if recording != nil {
				recording.Body = append(recording.Body, inst)
				continue
			}

			macro, ok := macros[mnemonic]
			if !ok {
				if !yield(inst, nil) {
					return
				}
				continue
			}

			body := macro.Body
			if len(body) == 0 {
				if len(inst.Labels) == 0 {
					continue
				}
				body = []Instruction{{}}
			}

			for n, expanded := range body {
				if n == 0 && len(inst.Labels) != 0 {
					expanded.Labels = append(slices.Clone(inst.Labels), expanded.Labels...)
				}
				if !yield(expanded, nil) {
					return
				}
			}
		}

		if recording != nil {
			yield(Instruction{}, errToken(recording.Name, ErrMacroLonely))
		}
	}
}
