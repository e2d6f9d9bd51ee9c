package io

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/uvm/cpu"
)

func dirEntries(t *testing.T, dir string) (names []string) {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return
}

func TestWriteFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := WriteFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	})
	assert.NoError(err)

	data, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal("first", string(data))

	// A failing writer leaves the previous content alone.
	boom := errors.New("boom")
	err = WriteFile(path, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	assert.True(errors.Is(err, boom))

	data, err = os.ReadFile(path)
	assert.NoError(err)
	assert.Equal("first", string(data))
	assert.Equal([]string{"out.txt"}, dirEntries(t, dir))
}

func TestWriteFiles(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	image := filepath.Join(dir, "prog.bin")
	log := filepath.Join(dir, "prog.yaml")

	boom := errors.New("boom")
	err := WriteFiles(
		Output{Path: image, Write: ImageOutput([]byte{0x46, 0x01, 0x00})},
		Output{Path: log, Write: func(w io.Writer) error { return boom }},
	)
	assert.True(errors.Is(err, boom))
	assert.Empty(dirEntries(t, dir))

	err = WriteFiles(
		Output{Path: image, Write: ImageOutput([]byte{0x46, 0x01, 0x00})},
		Output{Path: log, Write: LogOutput(cpu.Log{"LOAD": {"LOAD [6, 20]"}})},
	)
	assert.NoError(err)
	assert.Equal([]string{"prog.bin", "prog.yaml"}, dirEntries(t, dir))

	err = WriteFiles(Output{Write: ImageOutput(nil)})
	assert.True(errors.Is(err, ErrOutputNone))

	err = WriteFile(filepath.Join(dir, "missing", "x.bin"), ImageOutput(nil))
	assert.Error(err)
}

func TestImageFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.bin")
	image := []byte{0xa0, 0x06, 0x00, 0x00, 0x6d, 0x14, 0x00, 0x00}

	assert.NoError(SaveImage(path, image))

	again, err := LoadImage(path)
	assert.NoError(err)
	assert.Equal(image, again)

	inf, err := os.Open(path)
	require.NoError(t, err)
	defer inf.Close()
	again, err = ReadImage(inf)
	assert.NoError(err)
	assert.Equal(image, again)

	_, err = LoadImage(path + ".missing")
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestRecordFiles(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	snap := cpu.Snapshot{5: 20}
	assert.NoError(SaveSnapshot(filepath.Join(dir, "result.yaml"), snap))
	data, err := os.ReadFile(filepath.Join(dir, "result.yaml"))
	assert.NoError(err)
	assert.Equal("5: 20\n", string(data))

	log := cpu.Log{"LOAD": {"LOAD [6, 20]"}}
	assert.NoError(SaveLog(filepath.Join(dir, "log.yaml"), log))
	inf, err := os.Open(filepath.Join(dir, "log.yaml"))
	require.NoError(t, err)
	defer inf.Close()
	again, err := DecodeLog(inf)
	assert.NoError(err)
	assert.Equal(log, again)
}
