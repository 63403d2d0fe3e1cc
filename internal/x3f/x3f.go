// Package x3f reads the header of Sigma/Foveon X3F raw containers.
//
// Only the fixed-size file header is parsed here; section directories and
// image payloads are left to the raw decoder. The header is enough to
// identify a file, report its geometry, and label it in diagnostics.
package x3f

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Magic is the little-endian file identifier "FOVb".
const Magic uint32 = 0x62564f46

// MagicSize is the number of leading bytes needed to identify a container.
const MagicSize = 4

// Container versions (major<<16 | minor).
const (
	Version20 uint32 = 2 << 16
	Version21 uint32 = 2<<16 | 1
	Version23 uint32 = 2<<16 | 3
	Version30 uint32 = 3 << 16
)

const (
	labelFieldSize = 32
	uniqueIDSize   = 16
)

var (
	// ErrNotX3F reports that the input does not begin with the FOVb magic.
	ErrNotX3F = errors.New("not an X3F container")

	errTruncated = errors.New("truncated X3F header")
)

// Header is the fixed file header at the start of every X3F container.
// WhiteBalance is present from version 2.1, ColorMode from 2.3; both are
// empty strings when the container predates them.
type Header struct {
	Version      uint32
	UniqueID     [uniqueIDSize]byte
	MarkBits     uint32
	Columns      uint32
	Rows         uint32
	Rotation     uint32
	WhiteBalance string
	ColorMode    string
}

// VersionString renders the packed version as "major.minor".
func (h *Header) VersionString() string {
	return fmt.Sprintf("%d.%d", h.Version>>16, h.Version&0xffff)
}

// HasMagic reports whether b starts with the FOVb identifier.
func HasMagic(b []byte) bool {
	if len(b) < MagicSize {
		return false
	}
	return binary.LittleEndian.Uint32(b) == Magic
}

// ParseHeader reads the fixed header from the start of r.
// It consumes at most the header bytes for the reported version.
func ParseHeader(r io.Reader) (*Header, error) {
	var fixed struct {
		Identifier uint32
		Version    uint32
		UniqueID   [uniqueIDSize]byte
		MarkBits   uint32
		Columns    uint32
		Rows       uint32
		Rotation   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &fixed); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errTruncated
		}
		return nil, err
	}
	if fixed.Identifier != Magic {
		return nil, ErrNotX3F
	}

	h := &Header{
		Version:  fixed.Version,
		UniqueID: fixed.UniqueID,
		MarkBits: fixed.MarkBits,
		Columns:  fixed.Columns,
		Rows:     fixed.Rows,
		Rotation: fixed.Rotation,
	}
	if fixed.Version >= Version21 {
		wb, err := readLabel(r)
		if err != nil {
			return nil, err
		}
		h.WhiteBalance = wb
	}
	if fixed.Version >= Version23 {
		cm, err := readLabel(r)
		if err != nil {
			return nil, err
		}
		h.ColorMode = cm
	}
	return h, nil
}

// ParseFile opens path and parses its header.
func ParseFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseHeader(f)
}

// readLabel reads a fixed-size NUL-padded ASCII field.
func readLabel(r io.Reader) (string, error) {
	var buf [labelFieldSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", errTruncated
		}
		return "", err
	}
	return cstring(buf[:]), nil
}

// cstring trims a NUL-padded byte field to its string value.
func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
