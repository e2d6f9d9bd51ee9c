package io

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/uvm/cpu"
)

const (
	RECORD_INDENT = 2 // YAML indent width.
)

// encodeRecord writes a value as a YAML document.
// Mapping keys are emitted in sorted order, so output is deterministic.
func encodeRecord(w io.Writer, value any) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(RECORD_INDENT)

	err = enc.Encode(value)
	err = errors.Join(err, enc.Close())

	return
}

// decodeRecord reads a single YAML document into value.
// An empty stream decodes as an empty record.
func decodeRecord(r io.Reader, kind string, value any) (err error) {
	err = yaml.NewDecoder(r).Decode(value)
	if errors.Is(err, io.EOF) {
		err = nil
		return
	}
	if err != nil {
		err = &ErrRecord{Kind: kind, Err: err}
	}

	return
}

// EncodeLog writes an execution log, one key per mnemonic.
func EncodeLog(w io.Writer, log cpu.Log) (err error) {
	if log == nil {
		log = cpu.Log{}
	}
	return encodeRecord(w, log)
}

// DecodeLog reads an execution log.
func DecodeLog(r io.Reader) (log cpu.Log, err error) {
	log = cpu.Log{}
	err = decodeRecord(r, "log", &log)
	if err != nil {
		log = nil
	}
	return
}

// LogOutput returns an Output generator for an execution log.
func LogOutput(log cpu.Log) func(w io.Writer) error {
	return func(w io.Writer) error {
		return EncodeLog(w, log)
	}
}

// SaveLog atomically writes an execution log file.
func SaveLog(path string, log cpu.Log) (err error) {
	return WriteFile(path, LogOutput(log))
}

// EncodeSnapshot writes a result snapshot, in ascending address order.
func EncodeSnapshot(w io.Writer, snap cpu.Snapshot) (err error) {
	if snap == nil {
		snap = cpu.Snapshot{}
	}
	return encodeRecord(w, snap)
}

// DecodeSnapshot reads a result snapshot.
func DecodeSnapshot(r io.Reader) (snap cpu.Snapshot, err error) {
	snap = cpu.Snapshot{}
	err = decodeRecord(r, "snapshot", &snap)
	if err != nil {
		snap = nil
	}
	return
}

// SnapshotOutput returns an Output generator for a result snapshot.
func SnapshotOutput(snap cpu.Snapshot) func(w io.Writer) error {
	return func(w io.Writer) error {
		return EncodeSnapshot(w, snap)
	}
}

// SaveSnapshot atomically writes a result snapshot file.
func SaveSnapshot(path string, snap cpu.Snapshot) (err error) {
	return WriteFile(path, SnapshotOutput(snap))
}
