package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/i8080/codepage"
)

// Kind is the operation performed by an instruction.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_NOP       = Kind(0)  // nop
	KIND_MOVE      = Kind(1)  // move
	KIND_LOAD      = Kind(2)  // load
	KIND_STORE     = Kind(3)  // store
	KIND_LOAD_HL   = Kind(4)  // load_hl
	KIND_STORE_HL  = Kind(5)  // store_hl
	KIND_LOAD_PAIR = Kind(6)  // load_pair
	KIND_EXCHANGE  = Kind(7)  // exchange
	KIND_ALU       = Kind(8)  // alu
	KIND_INCREMENT = Kind(9)  // increment
	KIND_DECREMENT = Kind(10) // decrement
	KIND_INX       = Kind(11) // inx
	KIND_DCX       = Kind(12) // dcx
	KIND_DAD       = Kind(13) // dad
	KIND_DAA       = Kind(14) // daa
	KIND_ROTATE    = Kind(15) // rotate
	KIND_CMA       = Kind(16) // cma
	KIND_CARRY     = Kind(17) // carry
	KIND_JUMP      = Kind(18) // jump
	KIND_CALL      = Kind(19) // call
	KIND_RETURN    = Kind(20) // return
	KIND_RESTART   = Kind(21) // restart
	KIND_PCHL      = Kind(22) // pchl
	KIND_PUSH      = Kind(23) // push
	KIND_POP       = Kind(24) // pop
	KIND_XTHL      = Kind(25) // xthl
	KIND_SPHL      = Kind(26) // sphl
	KIND_IN        = Kind(27) // in
	KIND_OUT       = Kind(28) // out
	KIND_INTERRUPT = Kind(29) // interrupt
	KIND_HALT      = Kind(30) // halt
	kindCount      = 31
)

// Mode is the addressing mode of an instruction, and fixes its length.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMPLIED   = Mode(0) // implied
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_EXTENDED  = Mode(2) // extended
)

// AluOp is an accumulator operation, encoded in bits 5-3 of the opcode.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // ADD
	ALU_OP_ADC = AluOp(1) // ADC
	ALU_OP_SUB = AluOp(2) // SUB
	ALU_OP_SBB = AluOp(3) // SBB
	ALU_OP_ANA = AluOp(4) // ANA
	ALU_OP_XRA = AluOp(5) // XRA
	ALU_OP_ORA = AluOp(6) // ORA
	ALU_OP_CMP = AluOp(7) // CMP
)

// Cond is a branch condition, encoded in bits 5-3 of the opcode.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_NZ = Cond(0) // NZ
	COND_Z  = Cond(1) // Z
	COND_NC = Cond(2) // NC
	COND_C  = Cond(3) // C
	COND_PO = Cond(4) // PO
	COND_PE = Cond(5) // PE
	COND_P  = Cond(6) // P
	COND_M  = Cond(7) // M

	COND_ALWAYS = Cond(8) // always
)

// Register codes of the ddd and sss fields.
const (
	REG_B = byte(0)
	REG_C = byte(1)
	REG_D = byte(2)
	REG_E = byte(3)
	REG_H = byte(4)
	REG_L = byte(5)
	REG_M = byte(6)
	REG_A = byte(7)
)

// Register pair codes of the rp field.
const (
	PAIR_BC  = byte(0)
	PAIR_DE  = byte(1)
	PAIR_HL  = byte(2)
	PAIR_SP  = byte(3) // PSW for PUSH and POP.
	PAIR_PSW = byte(3)
)

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

var pairNames = [4]string{"B", "D", "H", "SP"}

var immediateNames = [8]string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}

// Instruction describes the execution of an opcode.
type Instruction struct {
	Opcode byte
	Name   string // Mnemonic with its register operands.
	Kind   Kind
	Mode   Mode
	Dst    byte  // Destination register, or rotation.
	Src    byte  // Source register.
	Pair   byte  // Register pair.
	Alu    AluOp // Accumulator operation.
	Cond   Cond  // Branch condition.
	Cycles int   // Clock states.
	Branch int   // Additional clock states of a taken conditional call or return.
}

// Length is the encoded size of the instruction in bytes.
func (inst *Instruction) Length() uint16 {
	return uint16(inst.Mode) + 1
}

// Instructions is indexed by opcode. Unused opcodes are nil.
var Instructions [256]*Instruction

func define(inst Instruction) {
	if Instructions[inst.Opcode] != nil {
		panic(fmt.Sprintf("opcode %02x defined twice", inst.Opcode))
	}
	if inst.Kind != KIND_JUMP && inst.Kind != KIND_CALL && inst.Kind != KIND_RETURN {
		inst.Cond = COND_ALWAYS
	}
	Instructions[inst.Opcode] = &inst
}

func init() {
	define(Instruction{Opcode: 0x00, Name: "NOP", Kind: KIND_NOP, Cycles: 4})

	for rp := range byte(4) {
		op := rp << 4
		pair := pairNames[rp]
		define(Instruction{Opcode: 0x01 | op, Name: "LXI " + pair, Kind: KIND_LOAD_PAIR, Mode: MODE_EXTENDED, Pair: rp, Cycles: 10})
		define(Instruction{Opcode: 0x03 | op, Name: "INX " + pair, Kind: KIND_INX, Pair: rp, Cycles: 5})
		define(Instruction{Opcode: 0x09 | op, Name: "DAD " + pair, Kind: KIND_DAD, Pair: rp, Cycles: 10})
		define(Instruction{Opcode: 0x0b | op, Name: "DCX " + pair, Kind: KIND_DCX, Pair: rp, Cycles: 5})

		stack := pair
		if rp == PAIR_PSW {
			stack = "PSW"
		}
		define(Instruction{Opcode: 0xc1 | op, Name: "POP " + stack, Kind: KIND_POP, Pair: rp, Cycles: 10})
		define(Instruction{Opcode: 0xc5 | op, Name: "PUSH " + stack, Kind: KIND_PUSH, Pair: rp, Cycles: 11})
	}

	// LDAX and STAX through BC and DE.
	for rp := range byte(2) {
		op := rp << 4
		pair := pairNames[rp]
		define(Instruction{Opcode: 0x02 | op, Name: "STAX " + pair, Kind: KIND_STORE, Pair: rp, Cycles: 7})
		define(Instruction{Opcode: 0x0a | op, Name: "LDAX " + pair, Kind: KIND_LOAD, Pair: rp, Cycles: 7})
	}

	define(Instruction{Opcode: 0x22, Name: "SHLD", Kind: KIND_STORE_HL, Mode: MODE_EXTENDED, Cycles: 16})
	define(Instruction{Opcode: 0x2a, Name: "LHLD", Kind: KIND_LOAD_HL, Mode: MODE_EXTENDED, Cycles: 16})
	define(Instruction{Opcode: 0x32, Name: "STA", Kind: KIND_STORE, Mode: MODE_EXTENDED, Cycles: 13})
	define(Instruction{Opcode: 0x3a, Name: "LDA", Kind: KIND_LOAD, Mode: MODE_EXTENDED, Cycles: 13})

	for ddd := range byte(8) {
		op := ddd << 3
		reg := regNames[ddd]
		step, move := 5, 7
		if ddd == REG_M {
			step, move = 10, 10
		}
		define(Instruction{Opcode: 0x04 | op, Name: "INR " + reg, Kind: KIND_INCREMENT, Dst: ddd, Cycles: step})
		define(Instruction{Opcode: 0x05 | op, Name: "DCR " + reg, Kind: KIND_DECREMENT, Dst: ddd, Cycles: step})
		define(Instruction{Opcode: 0x06 | op, Name: "MVI " + reg, Kind: KIND_MOVE, Mode: MODE_IMMEDIATE, Dst: ddd, Cycles: move})
	}

	for n, name := range []string{"RLC", "RRC", "RAL", "RAR"} {
		define(Instruction{Opcode: 0x07 | byte(n)<<3, Name: name, Kind: KIND_ROTATE, Dst: byte(n), Cycles: 4})
	}
	define(Instruction{Opcode: 0x27, Name: "DAA", Kind: KIND_DAA, Cycles: 4})
	define(Instruction{Opcode: 0x2f, Name: "CMA", Kind: KIND_CMA, Cycles: 4})
	define(Instruction{Opcode: 0x37, Name: "STC", Kind: KIND_CARRY, Dst: 1, Cycles: 4})
	define(Instruction{Opcode: 0x3f, Name: "CMC", Kind: KIND_CARRY, Dst: 0, Cycles: 4})

	for ddd := range byte(8) {
		for sss := range byte(8) {
			if ddd == REG_M && sss == REG_M {
				define(Instruction{Opcode: 0x76, Name: "HLT", Kind: KIND_HALT, Cycles: 7})
				continue
			}
			cycles := 5
			if ddd == REG_M || sss == REG_M {
				cycles = 7
			}
			define(Instruction{
				Opcode: 0x40 | ddd<<3 | sss,
				Name:   "MOV " + regNames[ddd] + "," + regNames[sss],
				Kind:   KIND_MOVE,
				Dst:    ddd,
				Src:    sss,
				Cycles: cycles,
			})
		}
	}

	for alu := range AluOp(8) {
		for sss := range byte(8) {
			cycles := 4
			if sss == REG_M {
				cycles = 7
			}
			define(Instruction{
				Opcode: 0x80 | byte(alu)<<3 | sss,
				Name:   alu.String() + " " + regNames[sss],
				Kind:   KIND_ALU,
				Alu:    alu,
				Src:    sss,
				Cycles: cycles,
			})
		}
		define(Instruction{
			Opcode: 0xc6 | byte(alu)<<3,
			Name:   immediateNames[alu],
			Kind:   KIND_ALU,
			Mode:   MODE_IMMEDIATE,
			Alu:    alu,
			Cycles: 7,
		})
	}

	for cond := range Cond(8) {
		op := byte(cond) << 3
		define(Instruction{Opcode: 0xc0 | op, Name: "R" + cond.String(), Kind: KIND_RETURN, Cond: cond, Cycles: 5, Branch: 6})
		define(Instruction{Opcode: 0xc2 | op, Name: "J" + cond.String(), Kind: KIND_JUMP, Mode: MODE_EXTENDED, Cond: cond, Cycles: 10})
		define(Instruction{Opcode: 0xc4 | op, Name: "C" + cond.String(), Kind: KIND_CALL, Mode: MODE_EXTENDED, Cond: cond, Cycles: 11, Branch: 6})
		define(Instruction{Opcode: 0xc7 | op, Name: fmt.Sprintf("RST %d", int(cond)), Kind: KIND_RESTART, Dst: byte(cond), Cycles: 11})
	}

	define(Instruction{Opcode: 0xc3, Name: "JMP", Kind: KIND_JUMP, Mode: MODE_EXTENDED, Cond: COND_ALWAYS, Cycles: 10})
	define(Instruction{Opcode: 0xc9, Name: "RET", Kind: KIND_RETURN, Cond: COND_ALWAYS, Cycles: 10})
	define(Instruction{Opcode: 0xcd, Name: "CALL", Kind: KIND_CALL, Mode: MODE_EXTENDED, Cond: COND_ALWAYS, Cycles: 17})
	define(Instruction{Opcode: 0xd3, Name: "OUT", Kind: KIND_OUT, Mode: MODE_IMMEDIATE, Cycles: 10})
	define(Instruction{Opcode: 0xdb, Name: "IN", Kind: KIND_IN, Mode: MODE_IMMEDIATE, Cycles: 10})
	define(Instruction{Opcode: 0xe3, Name: "XTHL", Kind: KIND_XTHL, Cycles: 18})
	define(Instruction{Opcode: 0xe9, Name: "PCHL", Kind: KIND_PCHL, Cycles: 5})
	define(Instruction{Opcode: 0xeb, Name: "XCHG", Kind: KIND_EXCHANGE, Cycles: 4})
	define(Instruction{Opcode: 0xf3, Name: "DI", Kind: KIND_INTERRUPT, Dst: 0, Cycles: 4})
	define(Instruction{Opcode: 0xf9, Name: "SPHL", Kind: KIND_SPHL, Cycles: 5})
	define(Instruction{Opcode: 0xfb, Name: "EI", Kind: KIND_INTERRUPT, Dst: 1, Cycles: 4})
}

// hexadecimal renders a value as an assembler literal.
func hexadecimal(value int, width int) (text string) {
	text, _ = codepage.Format(value, codepage.Hex, width)
	if text[0] > '9' {
		text = "0" + text
	}
	return
}

// Disassemble the instruction at pc.
// Unused opcodes disassemble as a DB of a single byte.
func Disassemble(memory []byte, pc uint16) (text string, length uint16) {
	at := func(offset uint16) int {
		addr := int(pc + offset)
		if addr >= len(memory) {
			return 0
		}
		return int(memory[addr])
	}

	opcode := byte(at(0))
	inst := Instructions[opcode]
	if inst == nil {
		text = "DB " + hexadecimal(int(opcode), 2)
		length = 1
		return
	}

	var operand string
	switch inst.Mode {
	case MODE_IMMEDIATE:
		operand = hexadecimal(at(1), 2)
	case MODE_EXTENDED:
		operand = hexadecimal(at(1)|at(2)<<8, 4)
	}

	text = inst.Name
	if operand != "" {
		if strings.Contains(text, " ") {
			text += ","
		} else {
			text += " "
		}
		text += operand
	}

	length = inst.Length()
	return
}
