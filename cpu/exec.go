package cpu

import (
	"log"
)

// handler executes a decoded instruction fetched at pc.
// PC already addresses the following instruction.
type handler func(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error)

var handlers [kindCount]handler

func init() {
	handlers = [kindCount]handler{
		KIND_NOP:       execNop,
		KIND_MOVE:      execMove,
		KIND_LOAD:      execLoad,
		KIND_STORE:     execStore,
		KIND_LOAD_HL:   execLoadHL,
		KIND_STORE_HL:  execStoreHL,
		KIND_LOAD_PAIR: execLoadPair,
		KIND_EXCHANGE:  execExchange,
		KIND_ALU:       execAlu,
		KIND_INCREMENT: execIncrement,
		KIND_DECREMENT: execDecrement,
		KIND_INX:       execInx,
		KIND_DCX:       execDcx,
		KIND_DAD:       execDad,
		KIND_DAA:       execDaa,
		KIND_ROTATE:    execRotate,
		KIND_CMA:       execCma,
		KIND_CARRY:     execCarry,
		KIND_JUMP:      execJump,
		KIND_CALL:      execCall,
		KIND_RETURN:    execReturn,
		KIND_RESTART:   execRestart,
		KIND_PCHL:      execPchl,
		KIND_PUSH:      execPush,
		KIND_POP:       execPop,
		KIND_XTHL:      execXthl,
		KIND_SPHL:      execSphl,
		KIND_IN:        execIn,
		KIND_OUT:       execOut,
		KIND_INTERRUPT: execInterrupt,
		KIND_HALT:      execHalt,
	}
}

func (cpu *Cpu) immediate(pc uint16) byte {
	return cpu.Memory[pc+1]
}

func (cpu *Cpu) extended(pc uint16) uint16 {
	return uint16(cpu.Memory[pc+1]) | uint16(cpu.Memory[pc+2])<<8
}

func execNop(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	return
}

func execMove(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	if inst.Mode == MODE_IMMEDIATE {
		cpu.SetReg(inst.Dst, cpu.immediate(pc))
	} else {
		cpu.SetReg(inst.Dst, cpu.Reg(inst.Src))
	}
	return
}

func execLoad(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	addr := cpu.Pair(inst.Pair)
	if inst.Mode == MODE_EXTENDED {
		addr = cpu.extended(pc)
	}
	cpu.A = cpu.Memory[addr]
	return
}

func execStore(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	addr := cpu.Pair(inst.Pair)
	if inst.Mode == MODE_EXTENDED {
		addr = cpu.extended(pc)
	}
	cpu.Memory[addr] = cpu.A
	return
}

func execLoadHL(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	addr := cpu.extended(pc)
	cpu.L = cpu.Memory[addr]
	cpu.H = cpu.Memory[addr+1]
	return
}

func execStoreHL(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	addr := cpu.extended(pc)
	cpu.Memory[addr] = cpu.L
	cpu.Memory[addr+1] = cpu.H
	return
}

func execLoadPair(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.SetPair(inst.Pair, cpu.extended(pc))
	return
}

func execExchange(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.D, cpu.H = cpu.H, cpu.D
	cpu.E, cpu.L = cpu.L, cpu.E
	return
}

func execAlu(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	if inst.Mode == MODE_IMMEDIATE {
		cpu.alu(inst.Alu, cpu.immediate(pc))
	} else {
		cpu.alu(inst.Alu, cpu.Reg(inst.Src))
	}
	return
}

func execIncrement(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.SetReg(inst.Dst, cpu.increment(cpu.Reg(inst.Dst)))
	return
}

func execDecrement(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.SetReg(inst.Dst, cpu.decrement(cpu.Reg(inst.Dst)))
	return
}

func execInx(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.SetPair(inst.Pair, cpu.Pair(inst.Pair)+1)
	return
}

func execDcx(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.SetPair(inst.Pair, cpu.Pair(inst.Pair)-1)
	return
}

func execDad(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.dad(cpu.Pair(inst.Pair))
	return
}

func execDaa(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.daa()
	return
}

func execRotate(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.rotate(inst.Dst)
	return
}

func execCma(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.A = ^cpu.A
	return
}

func execCarry(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	carry := !cpu.flag(FLAG_CARRY)
	if inst.Dst == 1 {
		carry = true
	}
	cpu.Flags = setFlag(cpu.Flags, FLAG_CARRY, carry)
	return
}

func execJump(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	taken = cpu.condition(inst.Cond)
	if taken {
		cpu.PC = cpu.extended(pc)
	}
	return
}

func execCall(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	taken = cpu.condition(inst.Cond)
	if taken {
		cpu.Push(cpu.PC)
		cpu.PC = cpu.extended(pc)
	}
	return
}

func execReturn(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	taken = cpu.condition(inst.Cond)
	if taken {
		cpu.PC = cpu.Pop()
	}
	return
}

func execRestart(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.Push(cpu.PC)
	cpu.PC = uint16(inst.Dst) << 3
	return
}

func execPchl(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.PC = cpu.HL()
	return
}

func execPush(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	if inst.Pair == PAIR_PSW {
		cpu.Push(uint16(cpu.A)<<8 | uint16(cpu.Flags))
	} else {
		cpu.Push(cpu.Pair(inst.Pair))
	}
	return
}

func execPop(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	value := cpu.Pop()
	if inst.Pair == PAIR_PSW {
		cpu.A = byte(value >> 8)
		cpu.Flags = byte(value)&0xd7 | FLAGS_RESET
	} else {
		cpu.SetPair(inst.Pair, value)
	}
	return
}

func execXthl(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	value := cpu.Peek()
	cpu.Memory[cpu.SP] = cpu.L
	cpu.Memory[cpu.SP+1] = cpu.H
	cpu.SetHL(value)
	return
}

func execSphl(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.SP = cpu.HL()
	return
}

func execIn(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	port := cpu.immediate(pc)
	if device := cpu.device[port]; device != nil {
		var value byte
		value, err = device.In()
		if err != nil {
			err = ErrPort{Port: port, Err: err}
			return
		}
		cpu.Ports[port] = value
	}
	cpu.A = cpu.Ports[port]
	return
}

func execOut(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	port := cpu.immediate(pc)
	cpu.Ports[port] = cpu.A
	if device := cpu.device[port]; device != nil {
		err = device.Out(cpu.A)
		if err != nil {
			err = ErrPort{Port: port, Err: err}
			return
		}
	}
	return
}

func execInterrupt(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	cpu.InterruptEnabled = inst.Dst == 1
	return
}

func execHalt(cpu *Cpu, inst *Instruction, pc uint16) (taken bool, err error) {
	if cpu.Verbose {
		log.Printf("cpu: halt at %04x", pc)
	}
	cpu.PC = pc
	cpu.State = STATE_HALTED
	return
}
