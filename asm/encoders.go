package asm

import (
	"log"
)

// encoder emits the bytes of one instruction.
type encoder func(gen *generator, op Opcode, inst Instruction) error

// word splits a 16-bit value into its little-endian bytes.
func word(v int) []int {
	return []int{v & 0xff, v >> 8}
}

func encodeDB(gen *generator, op Opcode, inst Instruction) (err error) {
	for _, token := range inst.Operands {
		var bytes []int
		bytes, err = gen.ctx.DB(token)
		if err != nil {
			return
		}
		err = gen.insert(token, bytes...)
		if err != nil {
			return
		}
	}
	return
}

func encodeDW(gen *generator, op Opcode, inst Instruction) (err error) {
	for _, token := range inst.Operands {
		var bytes []int
		bytes, err = gen.ctx.DW(token)
		if err != nil {
			return
		}
		err = gen.insert(token, bytes...)
		if err != nil {
			return
		}
	}
	return
}

func encodeDS(gen *generator, op Opcode, inst Instruction) (err error) {
	token := inst.Operands[0]
	bytes, err := gen.ctx.DS(token)
	if err != nil {
		return
	}
	return gen.insert(token, bytes...)
}

func encodeORG(gen *generator, op Opcode, inst Instruction) (err error) {
	addr, err := gen.field(inst.Operands[0], 16, false)
	if err != nil {
		return
	}
	gen.ctx.Counter = addr
	return
}

func encodeEQU(gen *generator, op Opcode, inst Instruction) (err error) {
	value, err := gen.ctx.Evaluate(inst.Operands[0], false)
	if err != nil {
		return
	}

	for _, label := range inst.Labels {
		name := labelName(label)
		if _, ok := gen.ctx.Values[name]; ok {
			err = errToken(label, ErrRedefined)
			return
		}
		gen.ctx.Values[name] = value
		gen.equates[name] = true
	}
	return
}

func encodeSET(gen *generator, op Opcode, inst Instruction) (err error) {
	value, err := gen.ctx.Evaluate(inst.Operands[0], false)
	if err != nil {
		return
	}

	for _, label := range inst.Labels {
		name := labelName(label)
		if gen.equates[name] {
			err = errToken(label, ErrRedefined)
			return
		}
		gen.ctx.Values[name] = value
	}
	return
}

func encodeIF(gen *generator, op Opcode, inst Instruction) (err error) {
	value, err := gen.ctx.Evaluate(inst.Operands[0], false)
	if err != nil {
		return
	}
	gen.disabled = value == 0
	if gen.verbose && gen.disabled {
		log.Printf("asm: disabled at line %d", inst.Line()+1)
	}
	return
}

func encodeENDIF(gen *generator, op Opcode, inst Instruction) (err error) {
	gen.disabled = false
	return
}

// MOV ddd, sss
func encodeMove(gen *generator, op Opcode, inst Instruction) (err error) {
	dst, err := gen.field(inst.Operands[0], 3, false)
	if err != nil {
		return
	}
	src, err := gen.field(inst.Operands[1], 3, false)
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code)|dst<<3|src)
}

// MVI ddd, data8
func encodeMoveImmediate(gen *generator, op Opcode, inst Instruction) (err error) {
	dst, err := gen.field(inst.Operands[0], 3, false)
	if err != nil {
		return
	}
	data, err := gen.field(inst.Operands[1], 8, false)
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code)|dst<<3, data)
}

// LXI rp, data16
func encodeLoadPair(gen *generator, op Opcode, inst Instruction) (err error) {
	rp, err := gen.pair(inst.Operands[0])
	if err != nil {
		return
	}
	data, err := gen.field(inst.Operands[1], 16, false)
	if err != nil {
		return
	}
	return gen.construct(inst, append([]int{int(op.Code) | rp<<4}, word(data)...)...)
}

// ALU sss
func encodeSource(gen *generator, op Opcode, inst Instruction) (err error) {
	src, err := gen.field(inst.Operands[0], 3, false)
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code)|src)
}

// INR ddd, DCR ddd
func encodeDestination(gen *generator, op Opcode, inst Instruction) (err error) {
	dst, err := gen.field(inst.Operands[0], 3, false)
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code)|dst<<3)
}

// ALU data8, IN port, OUT port
func encodeImmediate(gen *generator, op Opcode, inst Instruction) (err error) {
	data, err := gen.field(inst.Operands[0], 8, false)
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code), data)
}

// RST n
func encodeRestart(gen *generator, op Opcode, inst Instruction) (err error) {
	n, err := gen.field(inst.Operands[0], 3, false)
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code)|n<<3)
}

// INX rp, PUSH rp, ...
func encodePair(gen *generator, op Opcode, inst Instruction) (err error) {
	rp, err := gen.pair(inst.Operands[0])
	if err != nil {
		return
	}
	return gen.construct(inst, int(op.Code)|rp<<4)
}

// LDA addr, ...
func encodeAddress(gen *generator, op Opcode, inst Instruction) (err error) {
	addr, err := gen.field(inst.Operands[0], 16, false)
	if err != nil {
		return
	}
	return gen.construct(inst, append([]int{int(op.Code)}, word(addr)...)...)
}

// JMP label, CALL label, ...
func encodeBranch(gen *generator, op Opcode, inst Instruction) (err error) {
	addr, err := gen.field(inst.Operands[0], 16, true)
	if err != nil {
		return
	}
	return gen.construct(inst, append([]int{int(op.Code)}, word(addr)...)...)
}

func encodeImplied(gen *generator, op Opcode, inst Instruction) (err error) {
	return gen.construct(inst, int(op.Code))
}

var encoders = map[string]encoder{}

func init() {
	groups := []struct {
		encode    encoder
		mnemonics []string
	}{
		{encodeDB, []string{"DB"}},
		{encodeDW, []string{"DW"}},
		{encodeDS, []string{"DS"}},
		{encodeORG, []string{"ORG"}},
		{encodeEQU, []string{"EQU"}},
		{encodeSET, []string{"SET"}},
		{encodeIF, []string{"IF"}},
		{encodeENDIF, []string{"ENDIF"}},
		{encodeMove, []string{"MOV"}},
		{encodeMoveImmediate, []string{"MVI"}},
		{encodeLoadPair, []string{"LXI"}},
		{encodeSource, []string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}},
		{encodeDestination, []string{"INR", "DCR"}},
		{encodeImmediate, []string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI", "IN", "OUT"}},
		{encodeRestart, []string{"RST"}},
		{encodePair, []string{"LDAX", "STAX", "INX", "DCX", "DAD", "PUSH", "POP"}},
		{encodeAddress, []string{"LDA", "STA", "LHLD", "SHLD"}},
		{encodeBranch, []string{
			"JMP", "JNZ", "JZ", "JNC", "JC", "JPO", "JPE", "JP", "JM",
			"CALL", "CNZ", "CZ", "CNC", "CC", "CPO", "CPE", "CP", "CM",
		}},
		{encodeImplied, []string{
			"DAA", "XCHG", "RLC", "RRC", "RAL", "RAR", "CMA", "CMC", "STC",
			"RET", "RNZ", "RZ", "RNC", "RC", "RPO", "RPE", "RP", "RM",
			"PCHL", "XTHL", "SPHL", "EI", "DI", "HLT", "NOP",
		}},
	}

	for _, group := range groups {
		for _, mnemonic := range group.mnemonics {
			encoders[mnemonic] = group.encode
		}
	}
}
