package x3ftiff

import "time"

// Convert16 normalizes a decoded frame and assembles the output file bytes
// in one call, for callers that bring their own decoder output.
func Convert16(raw *RawImage, now time.Time) ([]byte, error) {
	img, err := Normalize16(raw)
	if err != nil {
		return nil, err
	}
	return EncodeTIFF(img, BuildTagSet(now))
}

// OutputPathFor returns the destination ConvertFile would write for input
// under the given options.
func OutputPathFor(input string, optFns ...func(*Options)) string {
	opt := applyOptions(optFns)
	return opt.outputPath(input)
}
