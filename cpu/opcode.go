// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Opcode is the 4-bit instruction tag, stored in the low nibble of the first
// byte of an encoded instruction.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_WRITE   = Opcode(0x0) // WRITE
	OP_READ    = Opcode(0x3) // READ
	OP_LOAD    = Opcode(0x6) // LOAD
	OP_REFLECT = Opcode(0xd) // REFLECT
)

const (
	OPCODE_MASK = 0xf // Mask of the opcode tag in the first byte.
	WIDTH_MAX   = 4   // Widest encoded instruction, in bytes.
)

// opcodeShape is the encoding shape of an opcode.
type opcodeShape struct {
	width int  // Encoded width, in bytes.
	bits  uint // Operand domain width, in bits.
}

var opcodeShapes = map[Opcode]opcodeShape{
	OP_LOAD:    {width: 3, bits: 19},
	OP_READ:    {width: 3, bits: 15},
	OP_WRITE:   {width: 4, bits: 24},
	OP_REFLECT: {width: 4, bits: 24},
}

// Opcodes lists the opcodes in tag order.
var Opcodes = []Opcode{OP_WRITE, OP_READ, OP_LOAD, OP_REFLECT}

// Valid returns true if the opcode is one of the four known tags.
func (op Opcode) Valid() bool {
	_, ok := opcodeShapes[op]
	return ok
}

// Width returns the encoded width in bytes, or 0 for an unknown opcode.
func (op Opcode) Width() int {
	return opcodeShapes[op].width
}

// Limit returns the exclusive upper bound of the operand domain.
func (op Opcode) Limit() uint32 {
	shape, ok := opcodeShapes[op]
	if !ok {
		return 0
	}
	return 1 << shape.bits
}

// Code is a single decoded instruction.
type Code struct {
	Op Opcode // Instruction tag.
	B  uint32 // Operand.
}

// MakeCodeLoad creates an accumulator load of an immediate value.
func MakeCodeLoad(b uint32) Code {
	return Code{Op: OP_LOAD, B: b}
}

// MakeCodeRead creates an accumulator-relative memory read.
func MakeCodeRead(b uint32) Code {
	return Code{Op: OP_READ, B: b}
}

// MakeCodeWrite creates a memory write of the accumulator.
func MakeCodeWrite(b uint32) Code {
	return Code{Op: OP_WRITE, B: b}
}

// MakeCodeReflect creates a memory write of the complemented accumulator.
func MakeCodeReflect(b uint32) Code {
	return Code{Op: OP_REFLECT, B: b}
}

// Width returns the encoded width of the instruction in bytes.
func (code Code) Width() int {
	return code.Op.Width()
}

// Check verifies the opcode is known, and the operand is inside its domain.
func (code Code) Check() (err error) {
	if !code.Op.Valid() {
		err = ErrOpcode(code.Op)
		return
	}

	if code.B >= code.Op.Limit() {
		err = &ErrOperand{Op: code.Op, Value: int64(code.B)}
		return
	}

	return
}

// AppendEncode appends the encoded instruction to buf.
//
// Byte layout, for operand B:
//
//	byte 0: B[3:0] << 4 | tag
//	byte 1: B[11:4]
//	byte 2: B[19:12]
//	byte 3: B[23:20]   (4 byte opcodes only)
func (code Code) AppendEncode(buf []byte) (out []byte, err error) {
	err = code.Check()
	if err != nil {
		out = buf
		return
	}

	b := code.B
	out = append(buf,
		byte((b&0xf)<<4)|byte(code.Op),
		byte((b>>4)&0xff),
		byte((b>>12)&0xff),
	)
	if code.Width() == 4 {
		out = append(out, byte((b>>20)&0xff))
	}

	return
}

// Encode returns the encoded instruction.
func (code Code) Encode() (data []byte, err error) {
	data, err = code.AppendEncode(make([]byte, 0, WIDTH_MAX))
	if err != nil {
		data = nil
	}
	return
}

// Decode decodes the instruction at the start of data, returning the
// instruction and the number of bytes it occupies.
func Decode(data []byte) (code Code, width int, err error) {
	if len(data) == 0 {
		err = ErrTruncatedInstruction
		return
	}

	op := Opcode(data[0] & OPCODE_MASK)
	width = op.Width()
	if width == 0 {
		err = ErrOpcode(data[0])
		return
	}

	if len(data) < width {
		err = &ErrTruncated{Op: op, Need: width, Have: len(data)}
		width = 0
		return
	}

	b := uint32(data[0]>>4) |
		(uint32(data[1]) << 4) |
		(uint32(data[2]) << 12)
	if width == 4 {
		b |= uint32(data[3]) << 20
	}

	code = Code{Op: op, B: b & (op.Limit() - 1)}

	return
}

// DecodeAll decodes an entire binary image into its instructions.
// The last instruction must end exactly at the end of the image.
func DecodeAll(image []byte) (codes []Code, err error) {
	for ip := 0; ip < len(image); {
		var code Code
		var width int
		code, width, err = Decode(image[ip:])
		if err != nil {
			codes = nil
			return
		}
		codes = append(codes, code)
		ip += width
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	return fmt.Sprintf("%v %v", code.Op.String(), code.B)
}
