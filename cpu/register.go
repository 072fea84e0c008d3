package cpu

// Reg reads a register by its ddd or sss code. REG_M reads memory at HL.
func (cpu *Cpu) Reg(code byte) (value byte) {
	switch code & 7 {
	case REG_B:
		value = cpu.B
	case REG_C:
		value = cpu.C
	case REG_D:
		value = cpu.D
	case REG_E:
		value = cpu.E
	case REG_H:
		value = cpu.H
	case REG_L:
		value = cpu.L
	case REG_M:
		value = cpu.Memory[cpu.HL()]
	case REG_A:
		value = cpu.A
	}
	return
}

// SetReg writes a register by its ddd code. REG_M writes memory at HL.
func (cpu *Cpu) SetReg(code byte, value byte) {
	switch code & 7 {
	case REG_B:
		cpu.B = value
	case REG_C:
		cpu.C = value
	case REG_D:
		cpu.D = value
	case REG_E:
		cpu.E = value
	case REG_H:
		cpu.H = value
	case REG_L:
		cpu.L = value
	case REG_M:
		cpu.Memory[cpu.HL()] = value
	case REG_A:
		cpu.A = value
	}
}

// Pair reads a register pair by its rp code, with PAIR_SP as the stack pointer.
func (cpu *Cpu) Pair(rp byte) (value uint16) {
	switch rp & 3 {
	case PAIR_BC:
		value = cpu.BC()
	case PAIR_DE:
		value = cpu.DE()
	case PAIR_HL:
		value = cpu.HL()
	case PAIR_SP:
		value = cpu.SP
	}
	return
}

// SetPair writes a register pair by its rp code, with PAIR_SP as the stack pointer.
func (cpu *Cpu) SetPair(rp byte, value uint16) {
	hi, lo := byte(value>>8), byte(value)
	switch rp & 3 {
	case PAIR_BC:
		cpu.B, cpu.C = hi, lo
	case PAIR_DE:
		cpu.D, cpu.E = hi, lo
	case PAIR_HL:
		cpu.H, cpu.L = hi, lo
	case PAIR_SP:
		cpu.SP = value
	}
}

func (cpu *Cpu) BC() uint16 {
	return uint16(cpu.B)<<8 | uint16(cpu.C)
}

func (cpu *Cpu) DE() uint16 {
	return uint16(cpu.D)<<8 | uint16(cpu.E)
}

func (cpu *Cpu) HL() uint16 {
	return uint16(cpu.H)<<8 | uint16(cpu.L)
}

func (cpu *Cpu) SetHL(value uint16) {
	cpu.SetPair(PAIR_HL, value)
}
