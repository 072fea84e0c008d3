// Package cpu emulates the Intel 8080 microprocessor.
//
// Every opcode is described by an Instruction in a table indexed by the
// opcode byte. Execution dispatches on the instruction Kind, and the
// Instruction fields select registers, pairs, conditions and ALU operations.
//
// Flags follow the 8080: sign, zero, auxiliary carry, parity and carry, with
// bit 1 always set. Cycle counts are clock states.
//
// IO ports are plain bytes unless a device from package io is attached, in
// which case IN and OUT are routed to the device.
package cpu
