// Package libraw is a minimal cgo binding over the LibRaw C library,
// exposing just enough surface to open a raw file, run the dcraw-style
// processing pipeline, and copy the rendered bitmap into Go memory.
//
// Builds without cgo (or with the nolibraw tag) compile a stub that
// reports the capability as absent and fails every decode.
package libraw

import "errors"

// ErrUnavailable reports that LibRaw support is not compiled into this
// binary. Callers should treat it as a missing dependency, not as a
// property of the input file.
var ErrUnavailable = errors.New("libraw support not compiled in")

// Params mirrors the subset of LibRaw output parameters this binding sets.
// Zero values leave LibRaw defaults in place, except Gamma: a zero power
// keeps the library's curve untouched.
type Params struct {
	UseCameraWB   bool       // white balance from camera metadata
	NoAutoBright  bool       // disable automatic brightening
	AutoBrightThr float64    // portion of clipped pixels allowed by auto-brightening
	OutputBPS     int        // 8 or 16 bits per sample
	DemosaicQual  int        // dcraw user_qual (3 = AHD)
	Gamma         [2]float64 // (power, slope); the inverse power is what LibRaw stores
	OutputColor   int        // 1 = sRGB
	Highlight     int        // 0 = clip
}

// Image is one rendered frame, channels interleaved per pixel.
// Exactly one of PixU8/PixU16 is populated, matching Bits.
type Image struct {
	Width    int
	Height   int
	Channels int
	Bits     int
	PixU8    []uint8
	PixU16   []uint16
}

// Capability describes whether decoding is usable in this build.
type Capability struct {
	Available bool
	Version   string // LibRaw version string when available
	Detail    string // human-readable reason when unavailable
}
