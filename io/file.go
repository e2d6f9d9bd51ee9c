// Package io provides the persistence seams of the uvm toolchain: binary
// images, YAML execution logs and YAML result snapshots. Output files are
// replaced atomically, so a failed write never leaves a partial file behind.
package io

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Output is a file to be written by WriteFiles.
type Output struct {
	Path  string                   // Destination path.
	Write func(w io.Writer) error // Generates the file content.
}

// WriteFile atomically replaces the file at path with the content
// generated by write.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
	return WriteFiles(Output{Path: path, Write: write})
}

// WriteFiles generates every output into a temporary sibling file, and
// only once all have succeeded renames them into place.
func WriteFiles(outputs ...Output) (err error) {
	temps := make([]string, 0, len(outputs))
	defer func() {
		if err != nil {
			for _, temp := range temps {
				os.Remove(temp)
			}
		}
	}()

	for _, output := range outputs {
		if len(output.Path) == 0 {
			err = ErrOutputNone
			return
		}

		var temp string
		temp, err = writeTemp(output)
		if len(temp) != 0 {
			temps = append(temps, temp)
		}
		if err != nil {
			return
		}
	}

	for n, output := range outputs {
		err = os.Rename(temps[n], output.Path)
		if err != nil {
			return
		}
	}

	return
}

// writeTemp writes an output to a temporary file in the destination directory.
func writeTemp(output Output) (temp string, err error) {
	dir, base := filepath.Split(output.Path)
	if len(dir) == 0 {
		dir = "."
	}

	file, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return
	}
	temp = file.Name()

	err = output.Write(file)
	err = errors.Join(err, file.Close())

	return
}
