package x3ftiff

import (
	"fmt"
	"math"
)

// Normalize16 converts a decoded frame into 16-bit samples in [0, 65535].
//
// Already-16-bit input passes through unchanged. 8-bit input scales by 257,
// the exact 65535/255, so 255 maps to 65535. Float input scales by its
// observed range: a maximum at or below 1.0 scales by 65535, a maximum at
// or below 255 scales by 257, and anything beyond that is clamped per
// sample. Fractions truncate; negative float samples clamp to zero and NaN
// samples write as zero.
func Normalize16(raw *RawImage) (*Image16, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil frame")
	}
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, fmt.Errorf("invalid frame geometry %dx%d", raw.Width, raw.Height)
	}
	if raw.Channels != samplesPerPixel {
		return nil, fmt.Errorf("expected %d channels, got %d", samplesPerPixel, raw.Channels)
	}
	n := raw.Width * raw.Height * raw.Channels
	out := &Image16{Width: raw.Width, Height: raw.Height}

	switch raw.Format {
	case SampleU16:
		if len(raw.U16) != n {
			return nil, fmt.Errorf("sample count %d does not match %dx%dx%d", len(raw.U16), raw.Width, raw.Height, raw.Channels)
		}
		out.Pix = raw.U16
	case SampleU8:
		if len(raw.U8) != n {
			return nil, fmt.Errorf("sample count %d does not match %dx%dx%d", len(raw.U8), raw.Width, raw.Height, raw.Channels)
		}
		out.Pix = make([]uint16, n)
		for i, v := range raw.U8 {
			out.Pix[i] = uint16(v) * 257
		}
	case SampleF32:
		if len(raw.F32) != n {
			return nil, fmt.Errorf("sample count %d does not match %dx%dx%d", len(raw.F32), raw.Width, raw.Height, raw.Channels)
		}
		out.Pix = make([]uint16, n)
		scaleFloats(out.Pix, raw.F32)
	default:
		return nil, fmt.Errorf("unknown sample format %d", raw.Format)
	}
	return out, nil
}

// scaleFloats picks the scale factor from the observed maximum and fills
// dst with clamped, truncated 16-bit samples.
func scaleFloats(dst []uint16, src []float32) {
	m := sliceMax(src)
	var factor float32
	switch {
	case m <= 1.0:
		factor = 65535
	case m <= 255:
		factor = 257
	default:
		factor = 1
	}
	for i, v := range src {
		// NaN compares false against both clamp bounds and converting it
		// to uint16 is implementation-defined.
		if math.IsNaN(float64(v)) {
			dst[i] = 0
			continue
		}
		dst[i] = uint16(clamp(v*factor, 0, 65535))
	}
}
