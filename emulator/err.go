package emulator

import (
	"github.com/ezrec/uvm/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Offset int // Byte offset of the faulting instruction.
	LineNo int // Source line, when a program listing is loaded.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d offset 0x%04x %v", err.LineNo, err.Offset, err.Err)
	}
	return f("offset 0x%04x %v", err.Offset, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
