package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/ezrec/i8080/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// load assembles a program into a new processor.
func load(t *testing.T, program ...string) (cpu *Cpu) {
	exe, err := asm.Assemble(strings.Join(program, "\n"))
	require.NoError(t, err)

	cpu = NewCpu()
	cpu.Load(exe.Binary[:], exe.Lines[:])
	return
}

// run steps until the processor halts.
func run(t *testing.T, cpu *Cpu) {
	for range 10000 {
		require.NoError(t, cpu.Step())
		if cpu.State == STATE_HALTED {
			return
		}
	}
	require.Fail(t, "program did not halt")
}

type latch struct {
	value  byte
	err    error
	rewind int
}

func (l *latch) Rewind() {
	l.rewind++
}

func (l *latch) In() (byte, error) {
	return l.value, l.err
}

func (l *latch) Out(value byte) error {
	l.value = value
	return l.err
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(STATE_RESET, cpu.State)
	assert.Equal(FLAGS_RESET, cpu.Flags)
	assert.True(cpu.InterruptEnabled)

	cpu.A, cpu.H, cpu.PC, cpu.SP = 1, 2, 3, 4
	cpu.Cycles = 100
	cpu.Memory[10] = 0xaa
	cpu.Ports[1] = 0xbb
	assert.NoError(cpu.Interrupt(1))

	dev := &latch{}
	cpu.Attach(2, dev)
	cpu.Reset()

	assert.Equal(byte(0), cpu.A)
	assert.Equal(byte(0), cpu.H)
	assert.Equal(uint16(0), cpu.PC)
	assert.Equal(uint16(0), cpu.SP)
	assert.Equal(0, cpu.Cycles)
	assert.Equal(byte(0xaa), cpu.Memory[10])
	assert.Equal(byte(0xbb), cpu.Ports[1])
	assert.Equal(1, dev.rewind)

	_, pending := cpu.Pending()
	assert.False(pending)
}

func TestCpuHalt(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"MVI A, 5",
		"HLT",
	)
	run(t, cpu)

	assert.Equal(byte(5), cpu.A)
	assert.Equal(uint16(2), cpu.PC)
	assert.Equal(14, cpu.Cycles)

	// Halted processors stay on the HLT.
	assert.NoError(cpu.Step())
	assert.Equal(uint16(2), cpu.PC)
	assert.Equal(STATE_HALTED, cpu.State)
}

func TestCpuInterruptHalted(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"LXI SP, 100H",
		"HLT",
	)
	run(t, cpu)
	assert.Equal(uint16(3), cpu.PC)

	assert.NoError(cpu.Interrupt(2))
	assert.Equal(STATE_STOPPED, cpu.State)
	assert.Equal(uint16(16), cpu.PC)
	assert.Equal(uint16(0xfe), cpu.SP)
	assert.Equal(uint16(4), cpu.Peek())
}

func TestCpuInterruptPending(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.ErrorIs(cpu.Interrupt(8), ErrInterruptVector)
	assert.ErrorIs(cpu.Interrupt(-1), ErrInterruptVector)

	assert.NoError(cpu.Interrupt(3))
	assert.ErrorIs(cpu.Interrupt(4), ErrInterruptPending)

	n, ok := cpu.Pending()
	assert.True(ok)
	assert.Equal(3, n)

	// Delivered before the NOP at the vector.
	assert.NoError(cpu.Step())
	assert.Equal(uint16(25), cpu.PC)
	assert.Equal(uint16(0xfffe), cpu.SP)
	assert.Equal(uint16(0), cpu.Peek())

	_, ok = cpu.Pending()
	assert.False(ok)
	assert.NoError(cpu.Interrupt(4))
}

func TestCpuArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name    string
		program []string
		a       byte
		flags   byte
	}{
		{"add_carry", []string{"MVI A, 0FFH", "ADI 1"}, 0x00, 0x57},
		{"sub_borrow", []string{"MVI A, 1", "SUI 2"}, 0xff, 0x87},
		{"adc", []string{"STC", "MVI A, 1", "ACI 1"}, 0x03, 0x06},
		{"sbb", []string{"STC", "MVI A, 5", "SBI 1"}, 0x03, 0x16},
		{"daa_low", []string{"MVI A, 9", "ADI 1", "DAA"}, 0x10, 0x12},
		{"daa_carry", []string{"MVI A, 99H", "ADI 1", "DAA"}, 0x00, 0x57},
		{"ana", []string{"MVI A, 0F0H", "ANI 0FH"}, 0x00, 0x56},
		{"xra", []string{"STC", "MVI A, 5", "XRA A"}, 0x00, 0x46},
		{"ora", []string{"MVI A, 80H", "MVI B, 1", "ORA B"}, 0x81, 0x86},
		{"cmp_equal", []string{"MVI A, 5", "CPI 5"}, 0x05, 0x56},
		{"cmp_less", []string{"MVI A, 5", "MVI C, 6", "CMP C"}, 0x05, 0x87},
		{"rlc", []string{"MVI A, 81H", "RLC"}, 0x03, 0x03},
		{"rrc", []string{"MVI A, 81H", "RRC"}, 0xc0, 0x03},
		{"ral", []string{"MVI A, 81H", "RAL"}, 0x02, 0x03},
		{"rar", []string{"STC", "MVI A, 1", "RAR"}, 0x80, 0x03},
		{"inr", []string{"MVI A, 0FFH", "STC", "INR A"}, 0x00, 0x57},
		{"dcr", []string{"MVI A, 1", "DCR A"}, 0x00, 0x56},
		{"cma", []string{"MVI A, 0F0H", "CMA"}, 0x0f, 0x02},
		{"cmc", []string{"STC", "CMC"}, 0x00, 0x02},
	}

	for _, entry := range table {
		cpu := load(t, append(entry.program, "HLT")...)
		run(t, cpu)

		assert.Equal(entry.a, cpu.A, entry.name)
		assert.Equal(entry.flags, cpu.Flags, entry.name)
	}
}

func TestCpuDad(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"LXI H, 0FFFFH",
		"LXI B, 2",
		"DAD B",
		"HLT",
	)
	run(t, cpu)

	assert.Equal(uint16(1), cpu.HL())
	assert.True(cpu.Flag(FLAG_CARRY))
	assert.False(cpu.Flag(FLAG_ZERO))
}

func TestCpuMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"        JMP START",
		"SRC:    DB 1, 2, 3",
		"DST:    DS 3",
		"SAVE:   DS 2",
		"LAST:   DS 1",
		"START:  LXI H, SRC",
		"        LXI D, DST",
		"        MVI B, 3",
		"LOOP:   MOV A, M",
		"        STAX D",
		"        INX H",
		"        INX D",
		"        DCR B",
		"        JNZ LOOP",
		"        LHLD DST",
		"        SHLD SAVE",
		"        DCX D",
		"        LDAX D",
		"        STA LAST",
		"        HLT",
	)
	run(t, cpu)

	assert.Equal([]byte{1, 2, 3}, cpu.Memory[3:6])
	assert.Equal([]byte{1, 2, 3}, cpu.Memory[6:9])
	assert.Equal([]byte{1, 2, 3}, cpu.Memory[9:12])
	assert.Equal(uint16(0x0201), cpu.HL())
	assert.Equal(uint16(8), cpu.DE())
	assert.Equal(byte(3), cpu.A)
}

func TestCpuExchange(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"LXI SP, 100H",
		"LXI B, 1234H",
		"PUSH B",
		"LXI H, 5678H",
		"XTHL",
		"LXI D, 9ABCH",
		"XCHG",
		"HLT",
	)
	run(t, cpu)

	assert.Equal(uint16(0x9abc), cpu.HL())
	assert.Equal(uint16(0x1234), cpu.DE())
	assert.Equal(uint16(0x5678), cpu.Peek())
	assert.Equal(uint16(0xfe), cpu.SP)
}

func TestCpuStack(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"LXI SP, 100H",
		"LXI B, 1234H",
		"PUSH B",
		"POP D",
		"HLT",
	)
	run(t, cpu)

	assert.Equal(uint16(0x1234), cpu.DE())
	assert.Equal(uint16(0x100), cpu.SP)
	assert.Equal(byte(0x12), cpu.Memory[0xff])
	assert.Equal(byte(0x34), cpu.Memory[0xfe])

	cpu = load(t,
		"LXI SP, 100H",
		"LXI H, 0FFFFH",
		"PUSH H",
		"POP PSW",
		"PUSH PSW",
		"POP B",
		"HLT",
	)
	run(t, cpu)

	assert.Equal(byte(0xff), cpu.A)
	assert.Equal(byte(0xd7), cpu.Flags)
	assert.Equal(uint16(0xffd7), cpu.BC())
}

func TestCpuBranch(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name    string
		program []string
		b       byte
		cycles  int
	}{
		{"call", []string{
			"     LXI SP, 100H",
			"     CALL SUB",
			"     HLT",
			"SUB: MVI B, 42",
			"     RET",
		}, 42, 10 + 17 + 7 + 10 + 7},
		{"jump_taken", []string{
			"       XRA A",
			"       JZ SKIP",
			"       MVI B, 1",
			"SKIP:  HLT",
		}, 0, 4 + 10 + 7},
		{"jump_not_taken", []string{
			"       XRA A",
			"       JNZ SKIP",
			"       MVI B, 1",
			"SKIP:  HLT",
		}, 1, 4 + 10 + 7 + 7},
		{"call_not_taken", []string{
			"XRA A",
			"CNZ 0",
			"HLT",
		}, 0, 4 + 11 + 7},
		{"call_taken", []string{
			"      LXI SP, 100H",
			"      XRA A",
			"      CZ  SUB",
			"      HLT",
			"SUB:  MVI B, 7",
			"      RZ",
		}, 7, 10 + 4 + 17 + 7 + 11 + 7},
		{"return_not_taken", []string{
			"      LXI SP, 100H",
			"      CALL SUB",
			"      HLT",
			"SUB:  XRA A",
			"      RNZ",
			"      MVI B, 3",
			"      RET",
		}, 3, 10 + 17 + 4 + 5 + 7 + 10 + 7},
		{"restart", []string{
			"      JMP START",
			"      DS 5",
			"      MVI B, 9",
			"      RET",
			"START: LXI SP, 100H",
			"      RST 1",
			"      HLT",
		}, 9, 10 + 10 + 11 + 7 + 10 + 7},
		{"pchl", []string{
			"       JMP START",
			"DONE:  HLT",
			"START: LXI H, DONE",
			"       PCHL",
			"       MVI B, 1",
		}, 0, 10 + 10 + 5 + 7},
	}

	for _, entry := range table {
		cpu := load(t, entry.program...)
		run(t, cpu)

		assert.Equal(entry.b, cpu.B, entry.name)
		assert.Equal(entry.cycles, cpu.Cycles, entry.name)
	}
}

func TestCpuPorts(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"MVI A, 7",
		"OUT 5",
		"MVI A, 0",
		"IN 5",
		"HLT",
	)
	run(t, cpu)
	assert.Equal(byte(7), cpu.A)
	assert.Equal(byte(7), cpu.Ports[5])

	dev := &latch{value: 0x55}
	cpu = load(t,
		"IN 1",
		"INR A",
		"OUT 1",
		"HLT",
	)
	cpu.Attach(1, dev)
	assert.Equal(dev, cpu.Device(1))
	run(t, cpu)
	assert.Equal(byte(0x56), dev.value)
	assert.Equal(byte(0x56), cpu.Ports[1])

	dev.err = errors.New("broken")
	cpu.Reset()
	err := cpu.Step()
	var ep ErrPort
	assert.ErrorAs(err, &ep)
	assert.Equal(byte(1), ep.Port)
	assert.ErrorIs(err, dev.err)
	assert.Equal(uint16(0), cpu.PC)
	assert.Equal(0, cpu.Cycles)

	dev.err = nil
	assert.NoError(cpu.Step())
	assert.Equal(uint16(2), cpu.PC)
	assert.Equal(10, cpu.Cycles)
}

func TestCpuInterruptEnable(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"DI",
		"HLT",
	)
	run(t, cpu)
	assert.False(cpu.InterruptEnabled)

	cpu = load(t,
		"DI",
		"EI",
		"HLT",
	)
	run(t, cpu)
	assert.True(cpu.InterruptEnabled)
}

func TestCpuUndefined(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[0] = 0x08

	err := cpu.Step()
	assert.ErrorIs(err, ErrOpcodeUndefined(0))
	assert.Equal(ErrOpcodeUndefined(0x08), err)
	assert.Equal("undefined instruction 08H", err.Error())
}

func TestCpuBreakpoint(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"NOP",
		"NOP",
		"NOP",
		"HLT",
	)

	assert.True(cpu.ToggleBreakpoint(3))

	assert.NoError(cpu.Step())
	assert.Equal(STATE_RESET, cpu.State)
	assert.Equal(2, cpu.Line())

	assert.NoError(cpu.Step())
	assert.Equal(STATE_STOPPED, cpu.State)
	assert.Equal(3, cpu.Line())

	assert.False(cpu.ToggleBreakpoint(3))
	assert.Empty(cpu.Breakpoints)
}

func TestCpuBreakpointHalt(t *testing.T) {
	assert := assert.New(t)

	cpu := load(t,
		"NOP",
		"HLT",
	)
	cpu.ToggleBreakpoint(2)

	assert.NoError(cpu.Step())
	assert.Equal(STATE_STOPPED, cpu.State)

	assert.NoError(cpu.Step())
	assert.Equal(STATE_STOPPED, cpu.State)
	assert.Equal(uint16(1), cpu.PC)

	// A stopped processor queues the interrupt.
	assert.NoError(cpu.Interrupt(2))
	n, ok := cpu.Pending()
	assert.True(ok)
	assert.Equal(2, n)

	assert.NoError(cpu.Step())
	assert.Equal(uint16(0x11), cpu.PC)
	assert.Equal(uint16(1), cpu.Peek())
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.A = 0x12
	cpu.PC = 0xbeef
	cpu.Flags |= byte(FLAG_ZERO | FLAG_CARRY)

	text := cpu.String()
	assert.Contains(text, "A: 12")
	assert.Contains(text, "PC: BEEF")
	assert.Contains(text, "flags: Z CY")
	assert.Contains(text, "state: reset")
}
