// Package asm implements the assembler for the Intel 8080 microprocessor.
//
// Source text passes through four stages: a regular expression lexer (Scan),
// a state machine parser grouping tokens into instructions (Parse), a macro
// expander (Expand), and the code generator (Assemble) that evaluates
// operands, encodes instructions and patches forward label references.
//
// The assembler supports the DB, DW, DS, ORG, EQU, SET, END, IF and ENDIF
// pseudo operations, and MACRO/ENDM blocks without parameter substitution.
package asm
