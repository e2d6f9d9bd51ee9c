package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Line represents a line of assembled code with its source location and
// generated instruction.
type Line struct {
	LineNo int      // Source line number.
	Ip     int      // Byte offset of the instruction in the binary image.
	Words  []string // Source words, after comment removal.
	Args   []int64  // Integer operands, including the unencoded first operand.
	Code   Code     // Generated instruction.
}

// Log maps a mnemonic to its assembled lines, in source order.
type Log map[string][]string

// Entry returns the execution log text for the line.
func (line *Line) Entry() string {
	args := make([]string, len(line.Args))
	for n, arg := range line.Args {
		args[n] = fmt.Sprintf("%d", arg)
	}
	return fmt.Sprintf("%v [%v]", line.Code.Op.String(), strings.Join(args, ", "))
}

type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
}

// Debug finds the source line of the instruction at byte offset ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= line.Ip && ip < line.Ip+line.Code.Width() {
			dbg = Debug{
				Line: &prog.Lines[n],
			}
			break
		}
	}

	return
}

// Binary encodes the program into a binary image.
func (prog *Program) Binary() (image []byte, err error) {
	for _, code := range prog.Codes() {
		image, err = code.AppendEncode(image)
		if err != nil {
			image = nil
			return
		}
	}

	return
}

// Log returns the execution log of the program.
func (prog *Program) Log() (log Log) {
	log = Log{}
	for n := range prog.Lines {
		line := &prog.Lines[n]
		key := line.Code.Op.String()
		log[key] = append(log[key], line.Entry())
	}

	return
}

// Codes iterates over the byte offset and instruction of each line.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Ip, line.Code) {
				return
			}
		}
	}
}
