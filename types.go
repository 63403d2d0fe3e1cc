package x3ftiff

// SampleFormat identifies the native sample encoding of a decoded frame.
type SampleFormat int

const (
	SampleU8 SampleFormat = iota
	SampleU16
	SampleF32
)

// String returns a short label for diagnostics.
func (f SampleFormat) String() string {
	switch f {
	case SampleU8:
		return "uint8"
	case SampleU16:
		return "uint16"
	case SampleF32:
		return "float32"
	default:
		return "unknown"
	}
}

// RawImage stores a decoded frame before bit-depth normalization.
// Channels are interleaved per pixel; exactly one of U8/U16/F32 is
// populated, matching Format. The buffer belongs to the conversion that
// produced it and is discarded once the output file is written.
type RawImage struct {
	Width    int
	Height   int
	Channels int
	Format   SampleFormat
	U8       []uint8
	U16      []uint16
	F32      []float32
}

// Image16 is a normalized output frame: three interleaved uint16 samples
// per pixel, values always in [0, 65535].
type Image16 struct {
	Width  int
	Height int
	Pix    []uint16
}

// Capability reports whether the raw-decoding dependency is usable.
// It is computed once per decoder and never changes within a process.
type Capability struct {
	Available bool
	Version   string // decoder library version when available
	Detail    string // human-readable reason when unavailable
}

// OutputFormat selects the container written for a converted frame.
type OutputFormat string

const (
	// FormatTIFF is the only format with a writer behind it.
	FormatTIFF OutputFormat = "tiff"
	// FormatPSD is recognized in the selector grammar but has no writer;
	// requesting it is an explicit error rather than a silent fallback.
	FormatPSD OutputFormat = "psd"
)

// Stage identifies how far a conversion progressed.
type Stage int

const (
	StagePending Stage = iota
	StageDecoding
	StageNormalizing
	StageWriting
	StageVerifying
	StageSucceeded
	StageFailed
)

// String returns the stage name used in logs and results.
func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageDecoding:
		return "decoding"
	case StageNormalizing:
		return "normalizing"
	case StageWriting:
		return "writing"
	case StageVerifying:
		return "verifying"
	case StageSucceeded:
		return "succeeded"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes the outcome of converting one input file.
type Result struct {
	InputPath   string
	OutputPath  string // set once the destination is known
	OutputBytes int64  // size of the written file on success
	Verified    bool   // post-write readback matched
	VerifyNote  string // diagnostic when Verified is false
	PreviewPath string // set when a preview was written
	Skipped     bool   // output already existed and skipping was requested
	Stage       Stage  // terminal stage, or the stage reached at failure
	Err         error  // the failure, nil on success
}

// Success reports whether the conversion produced an output file.
// A failed verification does not revoke success.
func (r *Result) Success() bool {
	return r.Stage == StageSucceeded
}
