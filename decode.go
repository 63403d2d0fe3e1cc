package x3ftiff

import (
	"errors"
	"fmt"

	"github.com/foveontools/x3ftiff/internal/libraw"
)

// Decoder produces raw frames from camera files. The pipeline calls it
// strictly sequentially; implementations need not be safe for concurrent
// use.
type Decoder interface {
	// Decode reads and renders one raw file.
	Decode(path string) (*RawImage, error)
	// Probe reports whether decoding is usable, without touching any file.
	Probe() Capability
}

// fixedParams is the processing recipe applied to every decode. It is
// deliberately not configurable: the converter targets one sensor family
// and one rendering intent.
var fixedParams = libraw.Params{
	UseCameraWB:   true,
	NoAutoBright:  false,
	AutoBrightThr: autoBrightThr,
	OutputBPS:     outputDepthBPS,
	DemosaicQual:  demosaicAHD,
	Gamma:         [2]float64{gammaPower, gammaSlope},
	OutputColor:   colorSpaceSRGB,
	Highlight:     highlightClip,
}

// LibRawDecoder is the production Decoder backed by the LibRaw binding.
// The zero value is ready to use.
type LibRawDecoder struct{}

// NewLibRawDecoder returns the production decoder.
func NewLibRawDecoder() *LibRawDecoder { return &LibRawDecoder{} }

// Probe reports the binding's availability for this build.
func (d *LibRawDecoder) Probe() Capability {
	c := libraw.Probe()
	return Capability{Available: c.Available, Version: c.Version, Detail: c.Detail}
}

// Decode renders path with the fixed recipe.
func (d *LibRawDecoder) Decode(path string) (*RawImage, error) {
	img, err := libraw.Decode(path, fixedParams)
	if err != nil {
		if errors.Is(err, libraw.ErrUnavailable) {
			return nil, ErrDependencyMissing
		}
		return nil, err
	}
	out := &RawImage{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
	}
	switch {
	case img.PixU16 != nil:
		out.Format = SampleU16
		out.U16 = img.PixU16
	case img.PixU8 != nil:
		out.Format = SampleU8
		out.U8 = img.PixU8
	default:
		return nil, fmt.Errorf("decoder returned no pixel data")
	}
	return out, nil
}
