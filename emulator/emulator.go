// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"

	"github.com/ezrec/uvm/cpu"
)

// Emulator state. CPU + binary image + optional program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded image, if known.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
	}

	return
}

// Load encodes a program listing, and loads it for execution.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	image, err := prog.Binary()
	if err != nil {
		return
	}

	emu.LoadImage(image)
	emu.Program = prog

	return
}

// LoadImage loads a binary image with no program listing.
func (emu *Emulator) LoadImage(image []byte) {
	emu.Cpu.Image = image
	emu.Program = &cpu.Program{}
	emu.Reset()
}

// Reset the emulator state.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	code, _, err := emu.Cpu.FetchCode()
	if err != nil {
		return cpu.Code{}
	}

	return code
}

// LineNo returns the current line number for the executing instruction,
// or 0 if there is no listing for it.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the instruction pointer reaches the end of the image.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Offset: ip, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the end of the image, or a fault.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks\n%v", emu.Ticks(), emu.Cpu.String())
	}

	return
}

// Snapshot returns the memory values over the inclusive range [start, end].
func (emu *Emulator) Snapshot(start, end int) (snap cpu.Snapshot, err error) {
	return emu.Cpu.Memory.Snapshot(start, end)
}

// Execute runs a binary image on a fresh emulator, and returns the memory
// values over the inclusive range [start, end].
func Execute(image []byte, start, end int) (snap cpu.Snapshot, err error) {
	emu := NewEmulator()
	emu.LoadImage(image)

	err = emu.Run()
	if err != nil {
		return
	}

	snap, err = emu.Snapshot(start, end)

	return
}
