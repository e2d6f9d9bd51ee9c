// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/uvm/internal"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":  fmt.Sprintf("%v", MEMORY_SIZE),
	"REFLECT_MASK": fmt.Sprintf("0x%x", REFLECT_MASK),
}

// Defines returns the machine constants, including the operand limit of
// each opcode as <MNEMONIC>_LIMIT.
func Defines() iter.Seq2[string, string] {
	var limits iter.Seq2[string, string] = func(yield func(string, string) bool) {
		for _, op := range Opcodes {
			if !yield(op.String()+"_LIMIT", fmt.Sprintf("0x%x", op.Limit())) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(maps.All(_cpu_defines), limits)
}

// Cpu is the execution context for one run of a binary image.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Image []byte // Binary image being executed.

	Ip          int    // Byte offset of the next instruction in Image.
	Accumulator uint32 // Working register.
	Memory      Memory // Data memory.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU for a binary image.
func NewCpu(image []byte) (cpu *Cpu) {
	cpu = &Cpu{
		Image: image,
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X/%04X\n", "ip", cpu.Ip, len(cpu.Image))
	text += fmt.Sprintf("% 5s: %04X_%04X\n", "acc", cpu.Accumulator>>16, cpu.Accumulator&0xffff)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}

// Reset the CPU state.
// - Clears the accumulator and memory.
// - Zeros the tick counter.
// - Sets IP to the start of the image.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ip = 0
	cpu.Accumulator = 0
	cpu.Memory.Reset()
	cpu.Ticks = 0
}

// FetchCode decodes the instruction at IP.
// Returns ErrIpEmpty once IP is at the end of the image.
func (cpu *Cpu) FetchCode() (code Code, width int, err error) {
	if cpu.Ip == len(cpu.Image) {
		err = ErrIpEmpty
		return
	}

	if cpu.Ip < 0 || cpu.Ip > len(cpu.Image) {
		log.Printf("Ip 0x%x > image len 0x%x", cpu.Ip, len(cpu.Image))
		err = ErrIpEmpty
		return
	}

	code, width, err = Decode(cpu.Image[cpu.Ip:])

	return
}

// Tick fetches, executes and steps past a single instruction.
func (cpu *Cpu) Tick() (err error) {
	code, width, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ip += width
	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction.
// A failing instruction leaves the CPU state untouched.
func (cpu *Cpu) Execute(code Code) (err error) {
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Ip, code)
	}

	mem := &cpu.Memory
	b := int64(code.B)

	switch code.Op {
	case OP_LOAD:
		cpu.Accumulator = code.B
	case OP_READ:
		err = mem.Check(b, ACCESS_READ_SOURCE)
		if err != nil {
			return
		}
		addr := int64(cpu.Accumulator) + b
		err = mem.Check(addr, ACCESS_READ_COMPUTED)
		if err != nil {
			return
		}
		cpu.Accumulator = mem[addr]
	case OP_WRITE:
		err = mem.Check(b, ACCESS_WRITE)
		if err != nil {
			return
		}
		mem[b] = cpu.Accumulator
	case OP_REFLECT:
		err = mem.Check(b, ACCESS_REFLECT)
		if err != nil {
			return
		}
		mem[b] = cpu.Accumulator ^ REFLECT_MASK
	default:
		err = ErrOpcode(code.Op)
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: acc=0x%x", cpu.Ip, cpu.Accumulator)
	}

	return
}
