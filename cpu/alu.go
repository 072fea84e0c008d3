package cpu

import (
	"math/bits"
)

// Flag is a bit of the flags register.
type Flag byte

const (
	FLAG_CARRY  = Flag(1 << 0)
	FLAG_ONE    = Flag(1 << 1) // Always set.
	FLAG_PARITY = Flag(1 << 2)
	FLAG_AUX    = Flag(1 << 4)
	FLAG_ZERO   = Flag(1 << 6)
	FLAG_SIGN   = Flag(1 << 7)
)

// FLAGS_RESET is the flags register after reset.
const FLAGS_RESET = byte(FLAG_ONE)

// parityTable is set for every byte value with an even number of set bits.
var parityTable [256]bool

// Auxiliary carry by bit 3 of the operands and result, as indexed by auxIndex.
var (
	halfCarryTable    = [8]bool{false, false, true, false, true, false, true, true}
	subHalfCarryTable = [8]bool{false, true, true, true, false, false, false, true}
)

func init() {
	for n := range 256 {
		parityTable[n] = bits.OnesCount8(uint8(n))%2 == 0
	}
}

func setFlag(flags byte, flag Flag, value bool) byte {
	if value {
		return flags | byte(flag)
	}
	return flags &^ byte(flag)
}

// upZSPC updates the zero, sign and parity flags from the low byte of a
// result, and the carry flag from bit 8 when the operation affects it.
func upZSPC(flags byte, value int, carry bool) byte {
	flags = setFlag(flags, FLAG_ZERO, value&0xff == 0)
	flags = setFlag(flags, FLAG_SIGN, value&0x80 != 0)
	flags = setFlag(flags, FLAG_PARITY, parityTable[value&0xff])
	if carry {
		flags = setFlag(flags, FLAG_CARRY, value&0x100 != 0)
	}
	return flags
}

// auxIndex packs bit 3 of both operands and the result.
func auxIndex(a, b, result int) int {
	return (((a & 0x88) >> 1) | ((b & 0x88) >> 2) | ((result & 0x88) >> 3)) & 0x7
}

func (cpu *Cpu) flag(flag Flag) bool {
	return cpu.Flags&byte(flag) != 0
}

func (cpu *Cpu) carry() int {
	if cpu.flag(FLAG_CARRY) {
		return 1
	}
	return 0
}

// add returns a + b + carry, updating all flags.
func (cpu *Cpu) add(a, b byte, carry int) byte {
	result := int(a) + int(b) + carry
	cpu.Flags = upZSPC(cpu.Flags, result, true)
	cpu.Flags = setFlag(cpu.Flags, FLAG_AUX, halfCarryTable[auxIndex(int(a), int(b), result)])
	return byte(result)
}

// sub returns a - b - borrow, updating all flags.
func (cpu *Cpu) sub(a, b byte, borrow int) byte {
	result := (int(a) - int(b) - borrow) & 0xffff
	cpu.Flags = upZSPC(cpu.Flags, result, true)
	cpu.Flags = setFlag(cpu.Flags, FLAG_AUX, !subHalfCarryTable[auxIndex(int(a), int(b), result)])
	return byte(result)
}

// increment returns v + 1. Carry is not affected.
func (cpu *Cpu) increment(v byte) byte {
	result := int(v) + 1
	cpu.Flags = upZSPC(cpu.Flags, result, false)
	cpu.Flags = setFlag(cpu.Flags, FLAG_AUX, halfCarryTable[auxIndex(int(v), 1, result)])
	return byte(result)
}

// decrement returns v - 1. Carry is not affected.
func (cpu *Cpu) decrement(v byte) byte {
	result := (int(v) - 1) & 0xffff
	cpu.Flags = upZSPC(cpu.Flags, result, false)
	cpu.Flags = setFlag(cpu.Flags, FLAG_AUX, !subHalfCarryTable[auxIndex(int(v), 1, result)])
	return byte(result)
}

// logic sets the flags of a logical operation result.
// Carry is always cleared.
func (cpu *Cpu) logic(result byte, aux bool) byte {
	cpu.Flags = upZSPC(cpu.Flags, int(result), true)
	cpu.Flags = setFlag(cpu.Flags, FLAG_AUX, aux)
	return result
}

// alu applies an accumulator operation with operand v.
func (cpu *Cpu) alu(op AluOp, v byte) {
	switch op {
	case ALU_OP_ADD:
		cpu.A = cpu.add(cpu.A, v, 0)
	case ALU_OP_ADC:
		cpu.A = cpu.add(cpu.A, v, cpu.carry())
	case ALU_OP_SUB:
		cpu.A = cpu.sub(cpu.A, v, 0)
	case ALU_OP_SBB:
		cpu.A = cpu.sub(cpu.A, v, cpu.carry())
	case ALU_OP_ANA:
		cpu.A = cpu.logic(cpu.A&v, (cpu.A|v)&0x08 != 0)
	case ALU_OP_XRA:
		cpu.A = cpu.logic(cpu.A^v, false)
	case ALU_OP_ORA:
		cpu.A = cpu.logic(cpu.A|v, false)
	case ALU_OP_CMP:
		cpu.sub(cpu.A, v, 0)
	}
}

// daa adjusts the accumulator to two binary coded decimal digits.
func (cpu *Cpu) daa() {
	var correction byte
	carry := cpu.flag(FLAG_CARRY)

	lsb := cpu.A & 0x0f
	msb := cpu.A >> 4

	if cpu.flag(FLAG_AUX) || lsb > 9 {
		correction += 0x06
	}
	if carry || msb > 9 || (msb >= 9 && lsb > 9) {
		correction += 0x60
		carry = true
	}

	cpu.A = cpu.add(cpu.A, correction, 0)
	cpu.Flags = setFlag(cpu.Flags, FLAG_CARRY, carry)
}

// rotate the accumulator: RLC, RRC, RAL or RAR.
func (cpu *Cpu) rotate(n byte) {
	a := cpu.A
	var out bool

	switch n {
	case 0: // RLC
		out = a&0x80 != 0
		a = a<<1 | a>>7
	case 1: // RRC
		out = a&0x01 != 0
		a = a>>1 | a<<7
	case 2: // RAL
		out = a&0x80 != 0
		a = a<<1 | byte(cpu.carry())
	case 3: // RAR
		out = a&0x01 != 0
		a = a>>1 | byte(cpu.carry())<<7
	}

	cpu.A = a
	cpu.Flags = setFlag(cpu.Flags, FLAG_CARRY, out)
}

// dad adds a register pair to HL. Only carry is affected.
func (cpu *Cpu) dad(v uint16) {
	result := uint32(cpu.HL()) + uint32(v)
	cpu.Flags = setFlag(cpu.Flags, FLAG_CARRY, result > 0xffff)
	cpu.SetHL(uint16(result))
}

// condition tests a branch condition against the flags.
func (cpu *Cpu) condition(cond Cond) bool {
	switch cond {
	case COND_NZ:
		return !cpu.flag(FLAG_ZERO)
	case COND_Z:
		return cpu.flag(FLAG_ZERO)
	case COND_NC:
		return !cpu.flag(FLAG_CARRY)
	case COND_C:
		return cpu.flag(FLAG_CARRY)
	case COND_PO:
		return !cpu.flag(FLAG_PARITY)
	case COND_PE:
		return cpu.flag(FLAG_PARITY)
	case COND_P:
		return !cpu.flag(FLAG_SIGN)
	case COND_M:
		return cpu.flag(FLAG_SIGN)
	}
	return true
}
