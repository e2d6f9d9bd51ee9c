package io

import (
	"errors"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	// Record errors
	ErrRecordSyntax = errors.New(f("record syntax"))
	ErrOutputNone   = errors.New(f("no output path"))
)

// ErrRecord is a malformed record file.
type ErrRecord struct {
	Kind string
	Err  error
}

func (err *ErrRecord) Error() string {
	return f("%v record: %v", err.Kind, err.Err)
}

func (err *ErrRecord) Unwrap() []error {
	return []error{ErrRecordSyntax, err.Err}
}
