package cpu

// Push a word onto the memory stack.
// The high byte is stored at SP-1 and the low byte at SP-2.
func (cpu *Cpu) Push(value uint16) {
	cpu.SP--
	cpu.Memory[cpu.SP] = byte(value >> 8)
	cpu.SP--
	cpu.Memory[cpu.SP] = byte(value)
}

// Pop a word from the memory stack.
func (cpu *Cpu) Pop() (value uint16) {
	value = cpu.Peek()
	cpu.SP += 2
	return
}

// Peek at the word on top of the memory stack.
func (cpu *Cpu) Peek() (value uint16) {
	value = uint16(cpu.Memory[cpu.SP]) | uint16(cpu.Memory[cpu.SP+1])<<8
	return
}
