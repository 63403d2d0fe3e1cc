package x3ftiff

import (
	"errors"
	"fmt"
)

// ErrDependencyMissing reports that the raw-decoding capability is absent
// from this build. It is fatal to the request, never to the process, and is
// raised before any filesystem write.
var ErrDependencyMissing = errors.New("raw decode capability missing")

// DecodeError reports an unreadable, corrupt, or unsupported input file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports a destination that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a format selector with no writer behind it.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (only tiff is implemented)", e.Format)
}
