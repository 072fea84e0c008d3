// Package script drives emulator sessions from Starlark programs.
//
// A script assembles source, steps or runs the processor, and inspects or
// alters its registers, memory and ports through a set of builtins:
//
//	assemble(source)        assemble and load a program
//	step(count=1)           execute instructions then stop, returns the state
//	run(frequency=0)        run until halt, breakpoint or error, returns the state
//	reset()                 reset the processor and devices
//	state()                 processor state name
//	cycles()                clock states since reset
//	reg(name)               read A, B, C, D, E, H, L, M, F, BC, DE, HL, SP or PC
//	set_reg(name, value)    write a register
//	regs()                  all registers as a struct
//	flag(name)              read flag S, Z, AC, P or CY
//	mem(addr, count=None)   read a byte, or a list of count bytes
//	poke(addr, *values)     write bytes
//	port(n, value=None)     read, or write, an IO port latch
//	rom(data)               fill the ROM port device from a string or list of bytes
//	interrupt(n)            send interrupt n
//	breakpoint(line)        toggle a breakpoint, returns whether it is set
//	symbol(name)            address of a label, or value of an EQU or SET
//	disassemble(addr)       instruction text and length at addr
package script

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/ezrec/i8080/asm"
	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/emulator"
)

var regCodes = map[string]byte{
	"B": cpu.REG_B,
	"C": cpu.REG_C,
	"D": cpu.REG_D,
	"E": cpu.REG_E,
	"H": cpu.REG_H,
	"L": cpu.REG_L,
	"M": cpu.REG_M,
	"A": cpu.REG_A,
}

var pairCodes = map[string]byte{
	"BC": cpu.PAIR_BC,
	"DE": cpu.PAIR_DE,
	"HL": cpu.PAIR_HL,
	"SP": cpu.PAIR_SP,
}

var flagBits = map[string]cpu.Flag{
	"S":  cpu.FLAG_SIGN,
	"Z":  cpu.FLAG_ZERO,
	"AC": cpu.FLAG_AUX,
	"P":  cpu.FLAG_PARITY,
	"CY": cpu.FLAG_CARRY,
}

// Session runs scripts against an emulator.
type Session struct {
	Verbose  bool               // If set, logs each builtin call.
	Emulator *emulator.Emulator // Emulator the builtins act on.
	Output   io.Writer          // Destination of print(), stdout if nil.
	Context  context.Context    // Context of run(), background if nil.
}

// NewSession creates a session on emu.
func NewSession(emu *emulator.Emulator) (s *Session) {
	s = &Session{
		Emulator: emu,
	}
	return
}

// Exec runs a script. src is a filename, string, []byte or io.Reader, as
// for starlark.ExecFile. Returns the globals the script defined.
func (s *Session) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	output := s.Output
	if output == nil {
		output = os.Stdout
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(output, msg)
		},
	}

	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, s.builtins())
	return
}

type builtin func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func (s *Session) builtins() (dict starlark.StringDict) {
	table := map[string]builtin{
		"assemble":    s.assemble,
		"step":        s.step,
		"run":         s.run,
		"reset":       s.reset,
		"state":       s.state,
		"cycles":      s.cycles,
		"reg":         s.reg,
		"set_reg":     s.setReg,
		"regs":        s.regs,
		"flag":        s.flag,
		"mem":         s.mem,
		"poke":        s.poke,
		"port":        s.port,
		"rom":         s.rom,
		"interrupt":   s.interrupt,
		"breakpoint":  s.breakpoint,
		"symbol":      s.symbol,
		"disassemble": s.disassemble,
	}

	dict = starlark.StringDict{}
	for name, fn := range table {
		dict[name] = starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if s.Verbose {
				log.Printf("script: %v%v", name, args)
			}
			return fn(args, kwargs)
		})
	}

	return
}

func (s *Session) cpu() *cpu.Cpu {
	return s.Emulator.Cpu
}

func checkAddress(addr int) (err error) {
	if addr < 0 || addr >= cpu.MEMORY_SIZE {
		err = ErrRange{Max: cpu.MEMORY_SIZE - 1, Value: addr}
	}
	return
}

func checkByte(value int) (err error) {
	if value < 0 || value > 0xff {
		err = ErrRange{Max: 0xff, Value: value}
	}
	return
}

func (s *Session) assemble(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var source string
	err = starlark.UnpackArgs("assemble", args, kwargs, "source", &source)
	if err != nil {
		return
	}

	assembler := &asm.Assembler{Verbose: s.Verbose}
	exe, err := assembler.Assemble(source)
	if err != nil {
		return
	}

	s.Emulator.Load(exe)

	value = starlark.MakeInt(exe.Length)
	return
}

func (s *Session) step(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	count := 1
	err = starlark.UnpackArgs("step", args, kwargs, "count?", &count)
	if err != nil {
		return
	}

	c := s.cpu()
	c.State = cpu.STATE_RUNNING
	for range count {
		err = s.Emulator.Step()
		if err != nil {
			return
		}
		if c.State != cpu.STATE_RUNNING {
			break
		}
	}
	if c.State == cpu.STATE_RUNNING {
		c.State = cpu.STATE_STOPPED
	}

	value = starlark.String(s.cpu().State.String())
	return
}

func (s *Session) run(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	frequency := 0
	err = starlark.UnpackArgs("run", args, kwargs, "frequency?", &frequency)
	if err != nil {
		return
	}

	ctx := s.Context
	if ctx == nil {
		ctx = context.Background()
	}

	err = s.Emulator.Run(ctx, frequency)
	if err != nil {
		return
	}

	value = starlark.String(s.cpu().State.String())
	return
}

func (s *Session) reset(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs("reset", args, kwargs)
	if err != nil {
		return
	}

	s.Emulator.Reset()

	value = starlark.None
	return
}

func (s *Session) state(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs("state", args, kwargs)
	if err != nil {
		return
	}

	value = starlark.String(s.cpu().State.String())
	return
}

func (s *Session) cycles(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs("cycles", args, kwargs)
	if err != nil {
		return
	}

	value = starlark.MakeInt(s.Emulator.Ticks())
	return
}

// register reads a register by name.
func (s *Session) register(name string) (value int, err error) {
	c := s.cpu()
	name = strings.ToUpper(name)

	if code, ok := regCodes[name]; ok {
		value = int(c.Reg(code))
		return
	}
	if rp, ok := pairCodes[name]; ok {
		value = int(c.Pair(rp))
		return
	}

	switch name {
	case "F":
		value = int(c.Flags)
	case "PC":
		value = int(c.PC)
	default:
		err = ErrRegister(name)
	}
	return
}

func (s *Session) reg(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs("reg", args, kwargs, "name", &name)
	if err != nil {
		return
	}

	v, err := s.register(name)
	if err != nil {
		return
	}

	value = starlark.MakeInt(v)
	return
}

func (s *Session) setReg(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	var v int
	err = starlark.UnpackArgs("set_reg", args, kwargs, "name", &name, "value", &v)
	if err != nil {
		return
	}

	c := s.cpu()
	name = strings.ToUpper(name)

	if code, ok := regCodes[name]; ok {
		if err = checkByte(v); err != nil {
			return
		}
		c.SetReg(code, byte(v))
	} else if rp, ok := pairCodes[name]; ok {
		if err = checkAddress(v); err != nil {
			return
		}
		c.SetPair(rp, uint16(v))
	} else {
		switch name {
		case "F":
			if err = checkByte(v); err != nil {
				return
			}
			c.Flags = byte(v)&0xd7 | cpu.FLAGS_RESET
		case "PC":
			if err = checkAddress(v); err != nil {
				return
			}
			c.PC = uint16(v)
		default:
			err = ErrRegister(name)
			return
		}
	}

	value = starlark.None
	return
}

func (s *Session) regs(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs("regs", args, kwargs)
	if err != nil {
		return
	}

	c := s.cpu()
	value = starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"a":      starlark.MakeInt(int(c.A)),
		"b":      starlark.MakeInt(int(c.B)),
		"c":      starlark.MakeInt(int(c.C)),
		"d":      starlark.MakeInt(int(c.D)),
		"e":      starlark.MakeInt(int(c.E)),
		"h":      starlark.MakeInt(int(c.H)),
		"l":      starlark.MakeInt(int(c.L)),
		"flags":  starlark.MakeInt(int(c.Flags)),
		"pc":     starlark.MakeInt(int(c.PC)),
		"sp":     starlark.MakeInt(int(c.SP)),
		"cycles": starlark.MakeInt(c.Cycles),
		"state":  starlark.String(c.State.String()),
	})
	return
}

func (s *Session) flag(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs("flag", args, kwargs, "name", &name)
	if err != nil {
		return
	}

	bit, ok := flagBits[strings.ToUpper(name)]
	if !ok {
		err = ErrFlag(name)
		return
	}

	value = starlark.Bool(s.cpu().Flag(bit))
	return
}

func (s *Session) mem(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr int
	count := -1
	err = starlark.UnpackArgs("mem", args, kwargs, "addr", &addr, "count?", &count)
	if err != nil {
		return
	}

	if err = checkAddress(addr); err != nil {
		return
	}

	memory := s.cpu().Memory[:]
	if count < 0 {
		value = starlark.MakeInt(int(memory[addr]))
		return
	}

	if count > 0 {
		if err = checkAddress(addr + count - 1); err != nil {
			return
		}
	}

	list := make([]starlark.Value, count)
	for n := range count {
		list[n] = starlark.MakeInt(int(memory[addr+n]))
	}

	value = starlark.NewList(list)
	return
}

func (s *Session) poke(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if len(kwargs) != 0 || len(args) == 0 {
		err = ErrPokeArguments
		return
	}

	addr, err := starlark.AsInt32(args[0])
	if err != nil {
		return
	}

	for n, arg := range args[1:] {
		var v int
		v, err = starlark.AsInt32(arg)
		if err != nil {
			return
		}
		if err = checkAddress(addr + n); err != nil {
			return
		}
		if err = checkByte(v); err != nil {
			return
		}
		s.cpu().Memory[addr+n] = byte(v)
	}

	value = starlark.None
	return
}

func (s *Session) port(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var n int
	var v starlark.Value = starlark.None
	err = starlark.UnpackArgs("port", args, kwargs, "n", &n, "value?", &v)
	if err != nil {
		return
	}

	if err = checkByte(n); err != nil {
		return
	}

	c := s.cpu()
	if v == starlark.None {
		value = starlark.MakeInt(int(c.Ports[n]))
		return
	}

	data, err := starlark.AsInt32(v)
	if err != nil {
		return
	}
	if err = checkByte(data); err != nil {
		return
	}

	c.Ports[n] = byte(data)
	value = starlark.None
	return
}

func (s *Session) rom(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var v starlark.Value
	err = starlark.UnpackArgs("rom", args, kwargs, "data", &v)
	if err != nil {
		return
	}

	var data []byte
	switch v := v.(type) {
	case starlark.String:
		data = []byte(v)
	case starlark.Bytes:
		data = []byte(v)
	case starlark.Iterable:
		iter := v.Iterate()
		defer iter.Done()
		var item starlark.Value
		for iter.Next(&item) {
			var b int
			b, err = starlark.AsInt32(item)
			if err != nil {
				return
			}
			if err = checkByte(b); err != nil {
				return
			}
			data = append(data, byte(b))
		}
	default:
		err = fmt.Errorf("rom: got %s, want string or iterable", v.Type())
		return
	}

	s.Emulator.LoadRom(data)

	value = starlark.MakeInt(len(data))
	return
}

func (s *Session) interrupt(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var n int
	err = starlark.UnpackArgs("interrupt", args, kwargs, "n", &n)
	if err != nil {
		return
	}

	err = s.Emulator.Int(n)
	if err != nil {
		return
	}

	value = starlark.String(s.cpu().State.String())
	return
}

func (s *Session) breakpoint(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var line int
	err = starlark.UnpackArgs("breakpoint", args, kwargs, "line", &line)
	if err != nil {
		return
	}

	value = starlark.Bool(s.Emulator.ToggleBreakpoint(line))
	return
}

func (s *Session) symbol(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	err = starlark.UnpackArgs("symbol", args, kwargs, "name", &name)
	if err != nil {
		return
	}

	for symbol, v := range s.Emulator.Symbols() {
		if symbol == name {
			value = starlark.MakeInt(v)
			return
		}
	}

	err = ErrSymbol(name)
	return
}

func (s *Session) disassemble(args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr int
	err = starlark.UnpackArgs("disassemble", args, kwargs, "addr", &addr)
	if err != nil {
		return
	}

	if err = checkAddress(addr); err != nil {
		return
	}

	text, length := cpu.Disassemble(s.cpu().Memory[:], uint16(addr))
	value = starlark.Tuple{starlark.String(text), starlark.MakeInt(int(length))}
	return
}
