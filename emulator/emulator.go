// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"iter"
	"log"
	"maps"
	"sync"
	"time"

	"github.com/ezrec/i8080/asm"
	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/internal"
	"github.com/ezrec/i8080/io"
)

const (
	TAPE_PORT     = 1   // Console tape port.
	TEMP_PORT     = 2   // Temporary FIFO port.
	ROM_PORT      = 3   // ROM data port.
	TEMP_CAPACITY = 256 // Temporary FIFO size in bytes.
)

// Emulator state. CPU + IO devices + the loaded program.
type Emulator struct {
	Verbose    bool            // If set, enables verbose logging.
	*cpu.Cpu                   // Reference to the CPU simulation.
	Executable *asm.Executable // Currently loaded program.

	Temporary io.Temporary // Temporary FIFO device.
	Tape      io.Tape      // Console tape device.
	Rom       io.Rom       // ROM data device.

	Limit int // Maximum clock states of a Run, zero for no limit.

	mutex  sync.Mutex
	cancel context.CancelCauseFunc
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Temporary.Capacity = TEMP_CAPACITY

	emu.Cpu.Attach(TAPE_PORT, &emu.Tape)
	emu.Cpu.Attach(TEMP_PORT, &emu.Temporary)
	emu.Cpu.Attach(ROM_PORT, &emu.Rom)

	emu.Cpu.Reset()

	return
}

// Load a program into memory and reset the processor.
func (emu *Emulator) Load(exe *asm.Executable) {
	if emu.Verbose {
		log.Printf("emulator: load %d bytes", exe.Length)
	}

	emu.Executable = exe
	emu.Cpu.Load(exe.Binary[:], exe.Lines[:])
	emu.Reset()
}

// LoadRom replaces the contents of the ROM port device and rewinds it.
func (emu *Emulator) LoadRom(data []byte) {
	if emu.Verbose {
		log.Printf("emulator: rom %d bytes", len(data))
	}

	emu.Rom.Data = data
	emu.Rom.Rewind()
}

// Reset the processor and devices. Memory and breakpoints are kept.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Ticks returns the total clock states since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Cycles
}

// LineNo returns the source line number of the instruction at PC.
func (emu *Emulator) LineNo() int {
	return emu.Cpu.Line()
}

// Int sends interrupt n to the processor.
func (emu *Emulator) Int(n int) (err error) {
	err = emu.Cpu.Interrupt(n)
	if err != nil {
		emu.Cpu.State = cpu.STATE_STOPPED
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
	}
	return
}

// Symbols returns an iterator over the labels, then the EQU and SET
// values, of the loaded program. Each group is ordered by name.
func (emu *Emulator) Symbols() iter.Seq2[string, int] {
	if emu.Executable == nil {
		return maps.All(map[string]int{})
	}

	values := maps.Clone(emu.Executable.Values)
	for name := range asm.Registers {
		delete(values, name)
	}

	return internal.IterSeq2Concat(
		internal.IterSeq2Sorted(emu.Executable.Symbols),
		internal.IterSeq2Sorted(values),
	)
}

// Step performs a single instruction of the emulator.
// A failing instruction stops the processor.
func (emu *Emulator) Step() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			emu.Cpu.State = cpu.STATE_STOPPED
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	return
}

// Run the processor until it halts, stops on a breakpoint, fails, or is
// stopped by Stop or ctx.
//
// At a frequency above zero, one instruction is executed per period,
// otherwise instructions are executed as fast as possible. Frequencies
// past the clock resolution run unthrottled.
func (emu *Emulator) Run(ctx context.Context, frequency int) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	emu.mutex.Lock()
	emu.cancel = cancel
	emu.mutex.Unlock()

	defer func() {
		emu.mutex.Lock()
		emu.cancel = nil
		emu.mutex.Unlock()
	}()

	if emu.Verbose {
		log.Printf("emulator: run at %d Hz", frequency)
	}

	var period time.Duration
	if frequency > 0 {
		period = time.Second / time.Duration(frequency)
	}

	var tick <-chan time.Time
	if period > 0 {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := emu.Cpu.Cycles
	emu.Cpu.State = cpu.STATE_RUNNING

	for emu.Cpu.State == cpu.STATE_RUNNING {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}

		if ctx.Err() != nil {
			emu.Cpu.State = cpu.STATE_STOPPED
			if cause := context.Cause(ctx); !errors.Is(cause, errStopped) {
				err = cause
			}
			return
		}

		err = emu.Step()
		if err != nil {
			return
		}

		if emu.Limit > 0 && emu.Cpu.Cycles-start >= emu.Limit {
			emu.Cpu.State = cpu.STATE_STOPPED
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrLimit}
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: %v at line %d", emu.Cpu.State, emu.LineNo())
	}

	return
}

// Stop a Run in progress, after its current instruction.
// Safe to call from any goroutine.
func (emu *Emulator) Stop() {
	emu.mutex.Lock()
	defer emu.mutex.Unlock()

	if emu.cancel != nil {
		emu.cancel(errStopped)
	}
}
