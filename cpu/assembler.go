// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/uvm/internal"
)

const (
	COMMENT = "#" // Comment marker, to end of line.
	ARITY   = 2   // Operands per instruction.
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// mnemonicMap maps upper-case mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{
	"LOAD":    OP_LOAD,
	"READ":    OP_READ,
	"WRITE":   OP_WRITE,
	"REFLECT": OP_REFLECT,
	"REV":     OP_REFLECT,
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for the uvm system.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine splits a line into words, and handles equates and expressions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// currentIp gets the byte offset of the next instruction.
func (asm *Assembler) currentIp() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Ip + last.Code.Width()
}

// Parse parses an input stream into a Program.
// Any error aborts the whole parse, and no Program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Collect(internal.IterSeq2Concat(
		maps.All(sysEquate),
		Defines(),
		maps.All(asm.predefine),
	))

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, COMMENT)
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// Assemble parses an input stream, returning the binary image and
// execution log.
func (asm *Assembler) Assemble(input io.Reader) (image []byte, log Log, err error) {
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	image, err = prog.Binary()
	if err != nil {
		return
	}

	log = prog.Log()

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	mnemonic := strings.ToUpper(words[0])
	op, ok := mnemonicMap[mnemonic]
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	if len(words)-1 != ARITY {
		err = &ErrArity{Mnemonic: mnemonic, Want: ARITY, Got: len(words) - 1}
		return
	}

	args := make([]int64, ARITY)
	for n, word := range words[1:] {
		args[n], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}

	b := args[ARITY-1]
	if b < 0 || b >= int64(op.Limit()) {
		err = &ErrOperand{Op: op, Value: b}
		return
	}

	code := Code{Op: op, B: uint32(b)}
	asm.Lines = append(asm.Lines, Line{
		LineNo: lineno,
		Ip:     asm.currentIp(),
		Words:  words,
		Args:   args,
		Code:   code,
	})

	if asm.Verbose {
		log.Printf("%04x: %v", asm.currentIp()-code.Width(), code)
	}

	return
}
