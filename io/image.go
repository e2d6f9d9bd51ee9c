package io

import (
	"io"
	"os"
)

// WriteImage writes a binary image. Images are a flat byte stream, with no
// header.
func WriteImage(w io.Writer, image []byte) (err error) {
	_, err = w.Write(image)
	return
}

// ReadImage reads a binary image to the end of the stream.
func ReadImage(r io.Reader) (image []byte, err error) {
	return io.ReadAll(r)
}

// SaveImage atomically writes a binary image file.
func SaveImage(path string, image []byte) (err error) {
	return WriteFile(path, ImageOutput(image))
}

// ImageOutput returns an Output generator for a binary image.
func ImageOutput(image []byte) func(w io.Writer) error {
	return func(w io.Writer) error {
		return WriteImage(w, image)
	}
}

// LoadImage reads a binary image file.
func LoadImage(path string) (image []byte, err error) {
	return os.ReadFile(path)
}
