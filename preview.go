package x3ftiff

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// WritePreview renders a quick-look JPEG of a normalized frame: longest
// side capped at previewMaxDim, Lanczos resampling, quality 85. The preview
// is a convenience artifact; callers treat failures as warnings.
func WritePreview(img *Image16, path string) error {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid frame")
	}
	if len(img.Pix) != img.Width*img.Height*samplesPerPixel {
		return fmt.Errorf("sample count does not match geometry")
	}
	thumb := resize.Thumbnail(previewMaxDim, previewMaxDim, toNRGBA(img), resize.Lanczos3)
	if err := imaging.Save(thumb, path, imaging.JPEGQuality(previewQuality)); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

// toNRGBA folds the 16-bit samples down to 8 bits for preview rendering.
func toNRGBA(img *Image16) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		src := img.Pix[y*img.Width*samplesPerPixel : (y+1)*img.Width*samplesPerPixel]
		dst := out.Pix[y*out.Stride : y*out.Stride+img.Width*4]
		for x := 0; x < img.Width; x++ {
			dst[x*4] = uint8(src[x*3] >> 8)
			dst[x*4+1] = uint8(src[x*3+1] >> 8)
			dst[x*4+2] = uint8(src[x*3+2] >> 8)
			dst[x*4+3] = 0xFF
		}
	}
	return out
}
