// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/ezrec/i8080/asm"
	"github.com/ezrec/i8080/codepage"
	"github.com/ezrec/i8080/emulator"
	"github.com/ezrec/i8080/script"
	"github.com/ezrec/i8080/translate"
)

// lineList collects repeated -b options.
type lineList []int

func (ll *lineList) String() string {
	var text []string
	for _, line := range *ll {
		text = append(text, strconv.Itoa(line))
	}
	return strings.Join(text, ",")
}

func (ll *lineList) Set(value string) (err error) {
	for _, item := range strings.Split(value, ",") {
		var line int
		line, err = strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return
		}
		*ll = append(*ll, line)
	}
	return
}

func main() {
	var compile string
	var output string
	var execute bool
	var frequency int
	var limit int
	var breakpoints lineList
	var port int
	var rom string
	var scriptFile string
	var listing bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&output, "o", "", "Binary image output")
	flag.BoolVar(&execute, "x", false, "Execute the program")
	flag.IntVar(&frequency, "f", 0, "Execution frequency in Hz, 0 for unthrottled")
	flag.IntVar(&limit, "n", 0, "Maximum clock states to execute, 0 for no limit")
	flag.Var(&breakpoints, "b", "Breakpoint source lines (repeatable, comma separated)")
	flag.IntVar(&port, "p", emulator.TAPE_PORT, "Console tape IO port")
	flag.StringVar(&rom, "r", "", "ROM image for the ROM data port")
	flag.StringVar(&scriptFile, "s", "", ".star script to run")
	flag.BoolVar(&listing, "l", false, "List symbols")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if port < 0 || port > 255 {
		log.Fatalf("%v: -p %v: port out of range", os.Args[0], port)
	}

	if verbose {
		log.Printf("i8080: messages in %v", translate.Language())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Limit = limit

	if len(rom) != 0 {
		data, err := os.ReadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		emu.LoadRom(data)
	}

	// Compile a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		exe, err := assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		emu.Load(exe)

		if len(output) != 0 {
			err = os.WriteFile(output, exe.Binary[:exe.Length], 0o644)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
	}

	if listing {
		for name, value := range emu.Symbols() {
			text, _ := codepage.Format(value, codepage.Hex, 4)
			fmt.Printf("%-16s %v\n", name, text)
		}
	}

	if port != emulator.TAPE_PORT {
		emu.Attach(emulator.TAPE_PORT, nil)
		emu.Attach(byte(port), &emu.Tape)
	}
	emu.Tape.Input = os.Stdin
	emu.Tape.Output = os.Stdout

	for _, line := range breakpoints {
		emu.ToggleBreakpoint(line)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(scriptFile) != 0 {
		session := script.NewSession(emu)
		session.Verbose = verbose
		session.Context = ctx

		_, err := session.Exec(scriptFile, nil)
		if err != nil {
			log.Fatalf("%v: %v", scriptFile, err)
		}
	}

	if execute {
		err := emu.Run(ctx, frequency)
		if verbose {
			fmt.Fprint(os.Stderr, emu.Cpu.String())
		}
		if err != nil {
			log.Fatal(err)
		}
	}
}
