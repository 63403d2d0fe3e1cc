package x3ftiff

import (
	"fmt"
	"image"
	"os"

	_ "golang.org/x/image/tiff"
)

// VerifyResult is the outcome of the post-write readback check.
// A failed check is diagnostic only; it never revokes a successful write.
type VerifyResult struct {
	Passed bool
	Note   string // reason when Passed is false
	Width  int
	Height int
}

// VerifyTIFF re-opens a written file, decodes it through the standard image
// registry, and checks geometry, sample depth, and a handful of pixels
// against the frame that produced it.
func VerifyTIFF(path string, want *Image16) VerifyResult {
	f, err := os.Open(path)
	if err != nil {
		return VerifyResult{Note: fmt.Sprintf("reopen: %v", err)}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return VerifyResult{Note: fmt.Sprintf("decode: %v", err)}
	}
	if format != "tiff" {
		return VerifyResult{Note: fmt.Sprintf("decoded as %s, not tiff", format)}
	}
	b := img.Bounds()
	res := VerifyResult{Width: b.Dx(), Height: b.Dy()}
	if res.Width != want.Width || res.Height != want.Height {
		res.Note = fmt.Sprintf("geometry %dx%d, want %dx%d", res.Width, res.Height, want.Width, want.Height)
		return res
	}
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64:
	default:
		res.Note = fmt.Sprintf("decoded into %T, not a 16-bit model", img)
		return res
	}
	for _, p := range spotPoints(want.Width, want.Height) {
		r, g, bl, _ := img.At(b.Min.X+p[0], b.Min.Y+p[1]).RGBA()
		i := (p[1]*want.Width + p[0]) * samplesPerPixel
		if uint16(r) != want.Pix[i] || uint16(g) != want.Pix[i+1] || uint16(bl) != want.Pix[i+2] {
			res.Note = fmt.Sprintf("pixel (%d,%d) mismatch after readback", p[0], p[1])
			return res
		}
	}
	res.Passed = true
	return res
}

// spotPoints picks the corners and center for the readback pixel check.
func spotPoints(w, h int) [][2]int {
	return [][2]int{
		{0, 0},
		{w - 1, 0},
		{0, h - 1},
		{w - 1, h - 1},
		{w / 2, h / 2},
	}
}
