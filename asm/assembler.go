package asm

import (
	"io"
	"log"
	"maps"
	"strings"
)

// MEMORY_SIZE is the size of the 8080 address space.
const MEMORY_SIZE = 1 << 16

// Executable is the result of an assembly.
type Executable struct {
	Binary [MEMORY_SIZE]byte
	// Lines maps the address of the first byte of each instruction to its
	// one based source line. Zero marks an address with no instruction.
	Lines   [MEMORY_SIZE]int
	Symbols map[string]int // Label addresses.
	Values  map[string]int // EQU and SET symbols.
	Length  int            // One past the highest written address.
}

// Assembler translates 8080 assembly source to an Executable.
type Assembler struct {
	Verbose bool
}

// Parse assembles source read from r.
func (asm *Assembler) Parse(r io.Reader) (exe *Executable, err error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return
	}

	exe, err = asm.Assemble(string(text))
	return
}

// Assemble source text.
//
// The source passes through Scan, Parse and Expand, then each instruction
// is encoded at the current address. References to labels not yet
// defined are patched once the whole source has been seen.
func (asm *Assembler) Assemble(text string) (exe *Executable, err error) {
	gen := &generator{
		verbose: asm.Verbose,
		ctx:     NewContext(),
		exe:     &Executable{},
		equates: map[string]bool{},
	}
	gen.ctx.Verbose = asm.Verbose

	for name := range Registers {
		gen.equates[name] = true
	}

	for inst, err := range Expand(Parse(Scan(text, Rules))) {
		if err != nil {
			return nil, err
		}

		var done bool
		done, err = gen.instruction(inst)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	err = gen.resolve()
	if err != nil {
		return nil, err
	}

	exe = gen.exe
	exe.Symbols = maps.Clone(gen.ctx.Addrs)
	exe.Values = maps.Clone(gen.ctx.Values)
	return
}

// Assemble source text with a default assembler.
func Assemble(text string) (exe *Executable, err error) {
	asm := &Assembler{}
	return asm.Assemble(text)
}

type generator struct {
	verbose  bool
	ctx      *Context
	exe      *Executable
	disabled bool
	equates  map[string]bool
}

func formatArgs(tokens []Token) string {
	args := make([]string, len(tokens))
	for n, token := range tokens {
		args[n] = token.Lexeme
	}
	return strings.Join(args, ", ")
}

// instruction assembles one instruction, and reports an END.
func (gen *generator) instruction(inst Instruction) (done bool, err error) {
	mnemonic := strings.ToUpper(inst.Mnemonic.Lexeme)

	if mnemonic != "EQU" && mnemonic != "SET" {
		for _, label := range inst.Labels {
			name := labelName(label)
			if _, ok := gen.ctx.Addrs[name]; ok {
				err = errToken(label, ErrLabelDuplicate)
				return
			}
			gen.ctx.Addrs[name] = gen.ctx.Counter
		}
	}

	if mnemonic == "" {
		return
	}

	if gen.disabled && mnemonic != "IF" && mnemonic != "ENDIF" {
		return
	}

	op := Lookup(mnemonic)
	if op.Args != ArgsAny && len(inst.Operands) != op.Args {
		err = errToken(inst.Mnemonic, ErrArguments{
			Mnemonic: mnemonic,
			Required: op.Args,
			Got:      len(inst.Operands),
			Operands: formatArgs(inst.Operands),
		})
		return
	}

	if gen.verbose {
		log.Printf("asm: %04x %v %v", gen.ctx.Counter, mnemonic, formatArgs(inst.Operands))
	}

	if mnemonic == "END" {
		done = true
		return
	}

	encode, ok := encoders[mnemonic]
	if !ok {
		err = errToken(inst.Mnemonic, ErrInstructionUndefined)
		return
	}

	err = encode(gen, op, inst)
	return
}

// check bounds a value to an unsigned field of the given width.
func check(token Token, value int, bits int) (int, error) {
	limit := 1<<bits - 1
	if value < 0 || value > limit {
		return 0, errToken(token, ErrRange{Max: limit, Value: value})
	}
	return value, nil
}

// field evaluates a token bounded to the given width.
func (gen *generator) field(token Token, bits int, deferred bool) (value int, err error) {
	value, err = gen.ctx.Evaluate(token, deferred)
	if err != nil {
		return
	}
	return check(token, value, bits)
}

// pair evaluates a register pair token.
func (gen *generator) pair(token Token) (value int, err error) {
	value, err = gen.ctx.Evaluate(token, false)
	if err != nil {
		return
	}
	return check(token, fix(value), 2)
}

// insert writes bytes at the current address.
func (gen *generator) insert(token Token, bytes ...int) (err error) {
	counter := gen.ctx.Counter
	if counter+len(bytes) > MEMORY_SIZE {
		err = errToken(token, ErrAddressOverflow)
		return
	}

	for n, b := range bytes {
		if b < 0 || b > 0xff {
			err = errToken(token, ErrByteOverflow)
			return
		}
		gen.exe.Binary[counter+n] = byte(b)
	}

	gen.ctx.Counter += len(bytes)
	gen.exe.Length = max(gen.exe.Length, gen.ctx.Counter)
	return
}

// construct writes an instruction, recording its source line.
func (gen *generator) construct(inst Instruction, bytes ...int) (err error) {
	if len(bytes) != 0 && gen.ctx.Counter < MEMORY_SIZE {
		gen.exe.Lines[gen.ctx.Counter] = inst.Line() + 1
	}
	return gen.insert(inst.Mnemonic, bytes...)
}

// resolve patches every deferred label reference.
func (gen *generator) resolve() (err error) {
	for _, fixup := range gen.ctx.Unresolved {
		name := fixup.Token.Lexeme
		addr, ok := gen.ctx.Addrs[name]
		if !ok {
			err = errToken(fixup.Token, ErrLabelUnresolved(name))
			return
		}

		if gen.verbose {
			log.Printf("asm: resolve %v at %04x to %04x", name, fixup.Base, addr)
		}

		gen.exe.Binary[fixup.Base+1] = byte(addr)
		gen.exe.Binary[fixup.Base+2] = byte(addr >> 8)
	}
	return
}
