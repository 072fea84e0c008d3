package cpu

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/i8080/io"
)

// MEMORY_SIZE is the size of the address space.
const MEMORY_SIZE = 1 << 16

// PORT_COUNT is the number of IO ports.
const PORT_COUNT = 256

// State of the processor.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RESET   = State(0) // reset
	STATE_RUNNING = State(1) // running
	STATE_HALTED  = State(2) // halted
	STATE_STOPPED = State(3) // stopped
)

// Cpu is the state of an 8080 processor, its memory and IO ports.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A, B, C, D, E, H, L byte // Registers.

	Flags byte   // Flags register.
	PC    uint16 // Program counter.
	SP    uint16 // Stack pointer.

	State  State
	Cycles int // Clock states executed since reset.

	// InterruptEnabled is set by EI and cleared by DI.
	// Interrupt delivery does not consult it.
	InterruptEnabled bool

	Memory [MEMORY_SIZE]byte
	Ports  [PORT_COUNT]byte

	// Lines maps addresses to source lines, zero for none.
	Lines [MEMORY_SIZE]int
	// Breakpoints is the set of source lines that stop execution.
	Breakpoints map[int]bool

	pending bool // An interrupt waits for delivery.
	vector  int  // Pending interrupt number.

	device [PORT_COUNT]io.Port
}

// NewCpu creates a processor in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Breakpoints: map[int]bool{},
	}
	cpu.Reset()
	return
}

// Reset the processor.
// - Clears the registers, PC, SP and cycle counter.
// - Sets the flags register to its reset value.
// - Drops any pending interrupt.
// - Rewinds all attached devices.
// Memory and ports are not modified.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L = 0, 0, 0, 0, 0, 0, 0
	cpu.Flags = FLAGS_RESET
	cpu.PC = 0
	cpu.SP = 0
	cpu.Cycles = 0
	cpu.State = STATE_RESET
	cpu.InterruptEnabled = true
	cpu.pending = false
	cpu.vector = 0

	for _, device := range cpu.device {
		if device != nil {
			device.Rewind()
		}
	}
}

// Load replaces memory and the line table.
// Addresses past the end of the inputs are zeroed.
func (cpu *Cpu) Load(memory []byte, lines []int) {
	clear(cpu.Memory[:])
	copy(cpu.Memory[:], memory)

	clear(cpu.Lines[:])
	copy(cpu.Lines[:], lines)
}

// Attach a device to an IO port. A nil device detaches the port.
func (cpu *Cpu) Attach(port byte, device io.Port) {
	cpu.device[port] = device
}

// Device attached to an IO port, or nil.
func (cpu *Cpu) Device(port byte) io.Port {
	return cpu.device[port]
}

// ToggleBreakpoint adds or removes a source line from the breakpoint set.
// Returns whether the line is now a breakpoint.
func (cpu *Cpu) ToggleBreakpoint(line int) (set bool) {
	if cpu.Breakpoints == nil {
		cpu.Breakpoints = map[int]bool{}
	}

	set = !cpu.Breakpoints[line]
	if set {
		cpu.Breakpoints[line] = true
	} else {
		delete(cpu.Breakpoints, line)
	}
	return
}

// Line is the source line of the instruction at PC.
func (cpu *Cpu) Line() int {
	return cpu.Lines[cpu.PC]
}

// Flag reports a bit of the flags register.
func (cpu *Cpu) Flag(flag Flag) bool {
	return cpu.flag(flag)
}

// Interrupt requests a restart to vector 8*n.
// A halted processor takes it immediately and stops, otherwise it is
// delivered before the next instruction. Only one interrupt may be pending.
func (cpu *Cpu) Interrupt(n int) (err error) {
	if n < 0 || n > 7 {
		err = ErrInterruptVector
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: interrupt %d", n)
	}

	if cpu.State == STATE_HALTED {
		cpu.Push(cpu.PC + 1)
		cpu.PC = uint16(8 * n)
		cpu.State = STATE_STOPPED
		return
	}

	if cpu.pending {
		err = ErrInterruptPending
		return
	}

	cpu.pending = true
	cpu.vector = n
	return
}

// Pending reports the interrupt waiting for delivery.
func (cpu *Cpu) Pending() (n int, ok bool) {
	return cpu.vector, cpu.pending
}

// Step executes one instruction.
// A pending interrupt is delivered first. Reaching an address whose
// source line is a breakpoint stops the processor, even after HLT.
// An instruction that fails leaves PC on itself and adds no cycles.
func (cpu *Cpu) Step() (err error) {
	if cpu.pending {
		if cpu.Verbose {
			log.Printf("cpu: deliver interrupt %d at %04x", cpu.vector, cpu.PC)
		}
		cpu.Push(cpu.PC)
		cpu.PC = uint16(8 * cpu.vector)
		cpu.pending = false
	}

	pc := cpu.PC
	opcode := cpu.Memory[pc]
	inst := Instructions[opcode]
	if inst == nil {
		err = ErrOpcodeUndefined(opcode)
		return
	}

	if cpu.Verbose {
		text, _ := Disassemble(cpu.Memory[:], pc)
		log.Printf("cpu: %04x %v", pc, text)
	}

	cpu.PC = pc + inst.Length()

	taken, err := handlers[inst.Kind](cpu, inst, pc)
	if err != nil {
		cpu.PC = pc
		return
	}

	cpu.Cycles += inst.Cycles
	if taken {
		cpu.Cycles += inst.Branch
	}

	if line := cpu.Lines[cpu.PC]; line != 0 && cpu.Breakpoints[line] {
		if cpu.Verbose {
			log.Printf("cpu: breakpoint at line %d", line)
		}
		cpu.State = STATE_STOPPED
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	flags := []struct {
		name string
		flag Flag
	}{
		{"S", FLAG_SIGN},
		{"Z", FLAG_ZERO},
		{"AC", FLAG_AUX},
		{"P", FLAG_PARITY},
		{"CY", FLAG_CARRY},
	}

	fmt.Fprintf(&sb, "%5s: %02X  %5s: %02X\n", "A", cpu.A, "F", cpu.Flags)
	fmt.Fprintf(&sb, "%5s: %02X  %5s: %02X\n", "B", cpu.B, "C", cpu.C)
	fmt.Fprintf(&sb, "%5s: %02X  %5s: %02X\n", "D", cpu.D, "E", cpu.E)
	fmt.Fprintf(&sb, "%5s: %02X  %5s: %02X\n", "H", cpu.H, "L", cpu.L)
	fmt.Fprintf(&sb, "%5s: %04X\n", "PC", cpu.PC)
	fmt.Fprintf(&sb, "%5s: %04X\n", "SP", cpu.SP)

	var set []string
	for _, f := range flags {
		if cpu.flag(f.flag) {
			set = append(set, f.name)
		}
	}
	fmt.Fprintf(&sb, "%5s: %v\n", "flags", strings.Join(set, " "))
	fmt.Fprintf(&sb, "%5s: %v\n", "state", cpu.State)
	fmt.Fprintf(&sb, "%5s: %d\n", "ticks", cpu.Cycles)

	text = sb.String()
	return
}
