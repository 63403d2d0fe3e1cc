package x3ftiff

import (
	"bytes"
	"encoding/binary"
	"image"
	"testing"
	"time"
)

var testClock = time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)

func gradientImage16(w, h int) *Image16 {
	img := &Image16{Width: w, Height: h, Pix: make([]uint16, w*h*3)}
	for i := range img.Pix {
		img.Pix[i] = uint16((i * 4099) % 65536)
	}
	return img
}

// ifdField is one directory record as read back from encoded bytes.
type ifdField struct {
	typ   uint16
	count uint32
	raw   [4]byte
}

func parseIFD(t *testing.T, data []byte, pos uint32) map[uint16]ifdField {
	t.Helper()
	n := binary.LittleEndian.Uint16(data[pos:])
	fields := make(map[uint16]ifdField, n)
	prev := -1
	for i := 0; i < int(n); i++ {
		off := pos + 2 + uint32(i)*12
		tag := binary.LittleEndian.Uint16(data[off:])
		if int(tag) <= prev {
			t.Fatalf("tag %d breaks ascending order", tag)
		}
		prev = int(tag)
		f := ifdField{
			typ:   binary.LittleEndian.Uint16(data[off+2:]),
			count: binary.LittleEndian.Uint32(data[off+4:]),
		}
		copy(f.raw[:], data[off+8:off+12])
		fields[tag] = f
	}
	return fields
}

func fieldShort(f ifdField) uint16 { return binary.LittleEndian.Uint16(f.raw[:]) }
func fieldLong(f ifdField) uint32  { return binary.LittleEndian.Uint32(f.raw[:]) }

func fieldASCII(data []byte, f ifdField) string {
	var b []byte
	if f.count > 4 {
		off := binary.LittleEndian.Uint32(f.raw[:])
		b = data[off : off+f.count]
	} else {
		b = f.raw[:f.count]
	}
	return string(b[:len(b)-1])
}

func TestEncodeTIFFStructure(t *testing.T) {
	img := gradientImage16(4, 4)
	data, err := EncodeTIFF(img, BuildTagSet(testClock))
	if err != nil {
		t.Fatal(err)
	}

	if string(data[:2]) != "II" || binary.LittleEndian.Uint16(data[2:]) != 42 {
		t.Fatalf("bad file header % x", data[:4])
	}
	ifd0Pos := binary.LittleEndian.Uint32(data[4:])
	if ifd0Pos != 8 {
		t.Fatalf("ifd0 at %d, want 8", ifd0Pos)
	}

	fields := parseIFD(t, data, ifd0Pos)
	if len(fields) != 19 {
		t.Fatalf("ifd0 has %d entries, want 19", len(fields))
	}

	shorts := map[uint16]uint16{
		tagCompression:     1,
		tagPhotometric:     2,
		tagOrientation:     1,
		tagSamplesPerPixel: 3,
		tagPlanarConfig:    1,
		tagResolutionUnit:  2,
	}
	for tag, want := range shorts {
		if got := fieldShort(fields[tag]); got != want {
			t.Errorf("tag %d = %d, want %d", tag, got, want)
		}
	}
	if got := fieldLong(fields[tagImageWidth]); got != 4 {
		t.Errorf("width = %d, want 4", got)
	}
	if got := fieldLong(fields[tagImageLength]); got != 4 {
		t.Errorf("length = %d, want 4", got)
	}
	if got := fieldLong(fields[tagRowsPerStrip]); got != stripRows {
		t.Errorf("rows per strip = %d, want %d", got, stripRows)
	}

	bits := fields[tagBitsPerSample]
	if bits.count != 3 {
		t.Fatalf("bits per sample count %d, want 3", bits.count)
	}
	bitsPos := binary.LittleEndian.Uint32(bits.raw[:])
	for i := uint32(0); i < 3; i++ {
		if v := binary.LittleEndian.Uint16(data[bitsPos+i*2:]); v != 16 {
			t.Fatalf("bits[%d] = %d, want 16", i, v)
		}
	}

	texts := map[uint16]string{
		tagMake:     "SIGMA",
		tagModel:    "DP2 Merrill",
		tagSoftware: "X3F Converter for Photoshop",
		tagDateTime: "2024:03:09 10:30:00",
	}
	for tag, want := range texts {
		if got := fieldASCII(data, fields[tag]); got != want {
			t.Errorf("tag %d = %q, want %q", tag, got, want)
		}
	}

	for _, tag := range []uint16{tagXResolution, tagYResolution} {
		pos := fieldLong(fields[tag])
		num := binary.LittleEndian.Uint32(data[pos:])
		den := binary.LittleEndian.Uint32(data[pos+4:])
		if num != resolutionDPI || den != 1 {
			t.Errorf("tag %d = %d/%d, want %d/1", tag, num, den, resolutionDPI)
		}
	}

	exif := parseIFD(t, data, fieldLong(fields[tagExifIFD]))
	if len(exif) != 1 {
		t.Fatalf("exif ifd has %d entries, want 1", len(exif))
	}
	if got := fieldShort(exif[tagColorSpace]); got != 1 {
		t.Errorf("color space = %d, want 1 (sRGB)", got)
	}

	soff := fieldLong(fields[tagStripOffsets])
	scnt := fieldLong(fields[tagStripByteCounts])
	if scnt != 4*4*3*2 {
		t.Fatalf("strip byte count %d, want %d", scnt, 4*4*3*2)
	}
	if soff+scnt != uint32(len(data)) {
		t.Fatalf("strip ends at %d, file has %d bytes", soff+scnt, len(data))
	}
	if got := binary.LittleEndian.Uint16(data[soff:]); got != img.Pix[0] {
		t.Fatalf("first sample %d, want %d", got, img.Pix[0])
	}
}

func TestEncodeTIFFMultiStrip(t *testing.T) {
	img := gradientImage16(2, 300)
	data, err := EncodeTIFF(img, BuildTagSet(testClock))
	if err != nil {
		t.Fatal(err)
	}
	fields := parseIFD(t, data, 8)

	so, sc := fields[tagStripOffsets], fields[tagStripByteCounts]
	if so.count != 3 || sc.count != 3 {
		t.Fatalf("strip arrays %d/%d entries, want 3", so.count, sc.count)
	}
	soPos := binary.LittleEndian.Uint32(so.raw[:])
	scPos := binary.LittleEndian.Uint32(sc.raw[:])

	rowBytes := uint32(2 * 3 * 2)
	wantCounts := []uint32{128 * rowBytes, 128 * rowBytes, 44 * rowBytes}
	next := binary.LittleEndian.Uint32(data[soPos:])
	for i, want := range wantCounts {
		off := binary.LittleEndian.Uint32(data[soPos+uint32(i)*4:])
		cnt := binary.LittleEndian.Uint32(data[scPos+uint32(i)*4:])
		if cnt != want {
			t.Errorf("strip %d byte count %d, want %d", i, cnt, want)
		}
		if off != next {
			t.Errorf("strip %d at %d, want contiguous %d", i, off, next)
		}
		next = off + cnt
	}
	if next != uint32(len(data)) {
		t.Fatalf("strips end at %d, file has %d bytes", next, len(data))
	}
}

func TestEncodeTIFFReadback(t *testing.T) {
	img := gradientImage16(33, 20)
	data, err := EncodeTIFF(img, BuildTagSet(testClock))
	if err != nil {
		t.Fatal(err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "tiff" {
		t.Fatalf("decoded as %q, want tiff", format)
	}
	b := decoded.Bounds()
	if b.Dx() != 33 || b.Dy() != 20 {
		t.Fatalf("geometry %dx%d, want 33x20", b.Dx(), b.Dy())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 33; x++ {
			r, g, bl, _ := decoded.At(x, y).RGBA()
			i := (y*33 + x) * 3
			if uint16(r) != img.Pix[i] || uint16(g) != img.Pix[i+1] || uint16(bl) != img.Pix[i+2] {
				t.Fatalf("pixel (%d,%d) = %d/%d/%d, want %d/%d/%d",
					x, y, r, g, bl, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			}
		}
	}
}

func TestEncodeTIFFDeterministic(t *testing.T) {
	img := gradientImage16(16, 16)
	ts := BuildTagSet(testClock)
	first, err := EncodeTIFF(img, ts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := EncodeTIFF(img, ts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected byte-identical output for identical input")
	}
}

func TestEncodeTIFFRejects(t *testing.T) {
	ts := BuildTagSet(testClock)
	if _, err := EncodeTIFF(nil, ts); err == nil {
		t.Fatal("expected error for nil frame")
	}
	if _, err := EncodeTIFF(&Image16{Width: 0, Height: 5}, ts); err == nil {
		t.Fatal("expected error for empty geometry")
	}
	if _, err := EncodeTIFF(&Image16{Width: 2, Height: 2, Pix: make([]uint16, 5)}, ts); err == nil {
		t.Fatal("expected error for short sample buffer")
	}
}
