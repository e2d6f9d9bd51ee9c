// Package cpu implements the accumulator machine and assembler for the uvm system.
//
// The machine has a single 32-bit accumulator, a byte-offset instruction
// pointer (IP) into a flat binary image, and a 2048 cell memory. There are
// four instructions: LOAD, READ, WRITE and REFLECT. Each instruction carries
// one unsigned operand and encodes into three or four bytes, with the opcode
// tag in the low nibble of the first byte.
//
// The assembler translates a line oriented mnemonic language into a Program
// listing, which encodes into a binary image and an execution log.
// It supports equates and compile-time expression evaluation.
package cpu
