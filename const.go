package x3ftiff

// Fixed raw-processing choices applied to every decode. These mirror the
// dcraw-style option values and are never configurable at call time.
const (
	demosaicAHD    = 3     // adaptive homogeneity-directed interpolation
	autoBrightThr  = 0.01  // clipped-pixel allowance for auto brightening
	outputDepthBPS = 16    // bits per sample requested from the decoder
	colorSpaceSRGB = 1     // dcraw output_color code for sRGB
	highlightClip  = 0     // hard-clip blown highlights
	gammaPower     = 2.222 // sRGB-like tone curve power
	gammaSlope     = 4.5   // linear toe slope of the curve
)

// Output raster geometry.
const (
	resolutionDPI   = 300
	samplesPerPixel = 3
	stripRows       = 128 // rows per strip in the written file
)

// Quick-look preview output.
const (
	previewMaxDim  = 1200
	previewQuality = 85
)

const outputExt = ".tif"
