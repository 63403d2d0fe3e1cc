package x3ftiff

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/foveontools/x3ftiff/internal/x3f"
)

// IsX3F performs a streaming container check without loading the file.
// Inputs shorter than the magic are reported as non-X3F, not as errors.
func IsX3F(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(x3f.MagicSize)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return x3f.HasMagic(head), nil
}

// IsX3FFile reports whether the file at path is an X3F container.
func IsX3FFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return IsX3F(f)
}
