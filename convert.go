package x3ftiff

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/foveontools/x3ftiff/internal/x3f"
)

// Options control conversion behavior around the fixed processing recipe.
type Options struct {
	// OutputDir receives converted files; empty writes next to each input.
	OutputDir string
	// Format selects the output container; empty means FormatTIFF.
	Format OutputFormat
	// Decoder overrides the LibRaw-backed default.
	Decoder Decoder
	// Now supplies the clock for the DateTime tag; nil means time.Now.
	Now func() time.Time
	// SkipExisting skips inputs whose output file already exists.
	SkipExisting bool
	// Preview writes a quick-look JPEG alongside each output.
	Preview bool
	// OnResult fires after each file in a batch run.
	OnResult func(*Result)
}

func applyOptions(optFns []func(*Options)) Options {
	opt := Options{}
	for _, fn := range optFns {
		fn(&opt)
	}
	if opt.Format == "" {
		opt.Format = FormatTIFF
	}
	if opt.Decoder == nil {
		opt.Decoder = NewLibRawDecoder()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return opt
}

// outputPath is the destination a conversion of input writes to.
func (o *Options) outputPath(input string) string {
	dir := o.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, stem+outputExt)
}

// ConvertFile runs the full pipeline for one input file: capability check,
// decode with the fixed recipe, bit-depth normalization, tagged TIFF write,
// post-write verification. The returned Result always describes how far
// processing got; the error mirrors Result.Err for convenience.
func ConvertFile(path string, optFns ...func(*Options)) (*Result, error) {
	opt := applyOptions(optFns)
	return convertOne(path, &opt)
}

func convertOne(path string, opt *Options) (*Result, error) {
	res := &Result{InputPath: path, Stage: StagePending}
	fail := func(err error) (*Result, error) {
		res.Stage = StageFailed
		res.Err = err
		return res, err
	}

	if opt.Format != FormatTIFF {
		return fail(&UnsupportedFormatError{Format: string(opt.Format)})
	}

	capability := opt.Decoder.Probe()
	if !capability.Available {
		return fail(fmt.Errorf("%w: %s", ErrDependencyMissing, capability.Detail))
	}

	outPath := opt.outputPath(path)
	res.OutputPath = outPath

	if opt.SkipExisting {
		if _, err := os.Stat(outPath); err == nil {
			res.Skipped = true
			log.Infof("skipping %s: output exists", filepath.Base(path))
			return res, nil
		}
	}

	log.Infof("Converting %s for Photoshop...", filepath.Base(path))

	res.Stage = StageDecoding
	ok, err := IsX3FFile(path)
	if err != nil {
		return fail(&DecodeError{Path: path, Err: err})
	}
	if !ok {
		return fail(&DecodeError{Path: path, Err: x3f.ErrNotX3F})
	}
	raw, err := opt.Decoder.Decode(path)
	if err != nil {
		if errors.Is(err, ErrDependencyMissing) {
			return fail(err)
		}
		return fail(&DecodeError{Path: path, Err: err})
	}
	log.Debugf("decoded %s: %dx%d %s", filepath.Base(path), raw.Width, raw.Height, raw.Format)

	res.Stage = StageNormalizing
	img, err := Normalize16(raw)
	if err != nil {
		return fail(&DecodeError{Path: path, Err: err})
	}

	res.Stage = StageWriting
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(&WriteError{Path: outPath, Err: err})
		}
	}
	size, err := WriteTIFFFile(outPath, img, BuildTagSet(opt.Now()))
	if err != nil {
		return fail(err)
	}
	res.OutputBytes = size
	log.Infof("✓ Created: %s (%d bytes)", filepath.Base(outPath), size)

	res.Stage = StageVerifying
	vr := VerifyTIFF(outPath, img)
	res.Verified = vr.Passed
	if !vr.Passed {
		res.VerifyNote = vr.Note
		log.Warnf("verification failed for %s: %s", filepath.Base(outPath), vr.Note)
	} else {
		log.Debugf("verified %s: %dx%d", filepath.Base(outPath), vr.Width, vr.Height)
	}

	if opt.Preview {
		pv := strings.TrimSuffix(outPath, outputExt) + "_preview.jpg"
		if err := WritePreview(img, pv); err != nil {
			log.Warnf("preview for %s: %v", filepath.Base(path), err)
		} else {
			res.PreviewPath = pv
		}
	}

	res.Stage = StageSucceeded
	return res, nil
}
