package x3ftiff

import "time"

// Identity strings stamped into every output file.
const (
	softwareName = "X3F Converter for Photoshop"
	cameraMake   = "SIGMA"
	cameraModel  = "DP2 Merrill"
)

// dateTimeLayout is the TIFF/Exif timestamp form, rendered in local time.
const dateTimeLayout = "2006:01:02 15:04:05"

// TagSet is the fixed metadata block embedded alongside the pixel data.
// Every field except DateTime is a literal constant.
type TagSet struct {
	Software        string
	Make            string
	Model           string
	DateTime        string    // "YYYY:MM:DD HH:MM:SS"
	Orientation     uint16    // 1 = top-left
	XResolution     [2]uint32 // rational, pixels per unit
	YResolution     [2]uint32
	ResolutionUnit  uint16 // 2 = inch
	ColorSpace      uint16 // Exif: 1 = sRGB
	Compression     uint16 // 1 = none
	Photometric     uint16 // 2 = RGB
	SamplesPerPixel uint16
	BitsPerSample   [3]uint16
	PlanarConfig    uint16 // 1 = chunky
}

// BuildTagSet returns the fixed tag block with DateTime rendered from now.
// It is a pure function of its argument and never fails.
func BuildTagSet(now time.Time) TagSet {
	return TagSet{
		Software:        softwareName,
		Make:            cameraMake,
		Model:           cameraModel,
		DateTime:        now.Format(dateTimeLayout),
		Orientation:     1,
		XResolution:     [2]uint32{resolutionDPI, 1},
		YResolution:     [2]uint32{resolutionDPI, 1},
		ResolutionUnit:  2,
		ColorSpace:      1,
		Compression:     1,
		Photometric:     2,
		SamplesPerPixel: samplesPerPixel,
		BitsPerSample:   [3]uint16{16, 16, 16},
		PlanarConfig:    1,
	}
}
