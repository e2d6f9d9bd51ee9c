package cpu

import (
	"errors"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty            = errors.New(f("ip empty"))
	ErrAddressOutOfBounds = errors.New(f("address out of bounds"))

	// Instruction encode and decode errors
	ErrUnknownOpcode        = errors.New(f("unknown opcode"))
	ErrTruncatedInstruction = errors.New(f("truncated instruction"))
	ErrOperandOutOfRange    = errors.New(f("operand out of range"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrUnknownInstruction = errors.New(f("unknown instruction"))
	ErrArityMismatch      = errors.New(f("arity mismatch"))
)

// ErrOpcode is an unknown opcode, holding the first byte of the instruction.
type ErrOpcode byte

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x (tag 0x%x)", byte(eo), byte(eo)&OPCODE_MASK)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrUnknownOpcode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrTruncated is an instruction that extends past the end of the image.
type ErrTruncated struct {
	Op   Opcode
	Need int
	Have int
}

func (err *ErrTruncated) Error() string {
	return f("%v needs %d bytes, %d remain", err.Op, err.Need, err.Have)
}

func (err *ErrTruncated) Unwrap() error {
	return ErrTruncatedInstruction
}

// ErrOperand is an operand outside of its opcode's domain.
type ErrOperand struct {
	Op    Opcode
	Value int64
}

func (err *ErrOperand) Error() string {
	return f("%v operand %d outside of [0, %d)", err.Op, err.Value, err.Op.Limit())
}

func (err *ErrOperand) Unwrap() error {
	return ErrOperandOutOfRange
}

// ErrAddress is a memory access outside of memory.
type ErrAddress struct {
	Operation string
	Address   int64
}

func (err *ErrAddress) Error() string {
	return f("address %d out of bounds during %v", err.Address, err.Operation)
}

func (err *ErrAddress) Unwrap() error {
	return ErrAddressOutOfBounds
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("'%v' is not an instruction", string(err))
}

func (err ErrMnemonic) Unwrap() error {
	return ErrUnknownInstruction
}

type ErrArity struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err *ErrArity) Error() string {
	return f("%v expects %d operands, got %d", err.Mnemonic, err.Want, err.Got)
}

func (err *ErrArity) Unwrap() error {
	return ErrArityMismatch
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
