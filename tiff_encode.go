package x3ftiff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Baseline TIFF tag and field-type codes used by the writer.
const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagPhotometric     = 262
	tagMake            = 271
	tagModel           = 272
	tagStripOffsets    = 273
	tagOrientation     = 274
	tagSamplesPerPixel = 277
	tagRowsPerStrip    = 278
	tagStripByteCounts = 279
	tagXResolution     = 282
	tagYResolution     = 283
	tagPlanarConfig    = 284
	tagResolutionUnit  = 296
	tagSoftware        = 305
	tagDateTime        = 306
	tagExifIFD         = 34665
	tagColorSpace      = 40961
)

const (
	typeASCII    = 2
	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

const (
	tiffHeaderSize = 8
	ifdEntrySize   = 12
	ifd0Entries    = 19
	exifEntries    = 1
)

// ifdEntry is one serialized directory record. The value field holds either
// the payload (when it fits in 4 bytes) or an absolute file offset.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value [4]byte
}

// valueBlock accumulates out-of-line field payloads, each padded to a word
// boundary, and hands out absolute offsets.
type valueBlock struct {
	base uint32
	buf  bytes.Buffer
}

func (vb *valueBlock) append(b []byte) uint32 {
	off := vb.base + uint32(vb.buf.Len())
	vb.buf.Write(b)
	if len(b)%2 != 0 {
		vb.buf.WriteByte(0)
	}
	return off
}

func (vb *valueBlock) end() uint32 { return vb.base + uint32(vb.buf.Len()) }

func shortEntry(tag, v uint16) ifdEntry {
	e := ifdEntry{tag: tag, typ: typeShort, count: 1}
	binary.LittleEndian.PutUint16(e.value[:2], v)
	return e
}

func longEntry(tag uint16, v uint32) ifdEntry {
	e := ifdEntry{tag: tag, typ: typeLong, count: 1}
	binary.LittleEndian.PutUint32(e.value[:], v)
	return e
}

func asciiEntry(vb *valueBlock, tag uint16, s string) ifdEntry {
	b := append([]byte(s), 0)
	e := ifdEntry{tag: tag, typ: typeASCII, count: uint32(len(b))}
	if len(b) <= 4 {
		copy(e.value[:], b)
		return e
	}
	binary.LittleEndian.PutUint32(e.value[:], vb.append(b))
	return e
}

func shortsEntry(vb *valueBlock, tag uint16, vals []uint16) ifdEntry {
	e := ifdEntry{tag: tag, typ: typeShort, count: uint32(len(vals))}
	if len(vals) <= 2 {
		for i, v := range vals {
			binary.LittleEndian.PutUint16(e.value[i*2:i*2+2], v)
		}
		return e
	}
	b := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	binary.LittleEndian.PutUint32(e.value[:], vb.append(b))
	return e
}

func longsEntry(vb *valueBlock, tag uint16, vals []uint32) ifdEntry {
	e := ifdEntry{tag: tag, typ: typeLong, count: uint32(len(vals))}
	if len(vals) == 1 {
		binary.LittleEndian.PutUint32(e.value[:], vals[0])
		return e
	}
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	binary.LittleEndian.PutUint32(e.value[:], vb.append(b))
	return e
}

func rationalEntry(vb *valueBlock, tag uint16, r [2]uint32) ifdEntry {
	e := ifdEntry{tag: tag, typ: typeRational, count: 1}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b, r[0])
	binary.LittleEndian.PutUint32(b[4:], r[1])
	binary.LittleEndian.PutUint32(e.value[:], vb.append(b))
	return e
}

func ifdSize(entries int) uint32 {
	return 2 + uint32(entries)*ifdEntrySize + 4
}

// EncodeTIFF assembles an uncompressed little-endian baseline TIFF from a
// normalized frame: chunky RGB, 16 bits per sample, strip layout, the full
// tag block in IFD0, and the color-space code in an Exif sub-IFD.
func EncodeTIFF(img *Image16, ts TagSet) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("nil frame")
	}
	w, h := img.Width, img.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid frame geometry %dx%d", w, h)
	}
	if len(img.Pix) != w*h*samplesPerPixel {
		return nil, fmt.Errorf("sample count %d does not match %dx%dx%d", len(img.Pix), w, h, samplesPerPixel)
	}

	bytesPerRow := w * samplesPerPixel * 2
	numStrips := (h + stripRows - 1) / stripRows
	counts := make([]uint32, numStrips)
	for i := range counts {
		rows := stripRows
		if i == numStrips-1 {
			rows = h - i*stripRows
		}
		counts[i] = uint32(rows * bytesPerRow)
	}

	ifd0Pos := uint32(tiffHeaderSize)
	exifPos := ifd0Pos + ifdSize(ifd0Entries)
	vb := &valueBlock{base: exifPos + ifdSize(exifEntries)}

	entries := []ifdEntry{
		longEntry(tagImageWidth, uint32(w)),
		longEntry(tagImageLength, uint32(h)),
		shortsEntry(vb, tagBitsPerSample, ts.BitsPerSample[:]),
		shortEntry(tagCompression, ts.Compression),
		shortEntry(tagPhotometric, ts.Photometric),
		asciiEntry(vb, tagMake, ts.Make),
		asciiEntry(vb, tagModel, ts.Model),
		shortEntry(tagOrientation, ts.Orientation),
		shortEntry(tagSamplesPerPixel, ts.SamplesPerPixel),
		longEntry(tagRowsPerStrip, stripRows),
		rationalEntry(vb, tagXResolution, ts.XResolution),
		rationalEntry(vb, tagYResolution, ts.YResolution),
		shortEntry(tagPlanarConfig, ts.PlanarConfig),
		shortEntry(tagResolutionUnit, ts.ResolutionUnit),
		asciiEntry(vb, tagSoftware, ts.Software),
		asciiEntry(vb, tagDateTime, ts.DateTime),
		longEntry(tagExifIFD, exifPos),
	}

	// The strip arrays land at the tail of the value block, so the pixel
	// data offset is known before their entries are built.
	stripArrayBytes := uint32(0)
	if numStrips > 1 {
		stripArrayBytes = 2 * 4 * uint32(numStrips)
	}
	dataPos := vb.end() + stripArrayBytes
	if dataPos%2 != 0 {
		dataPos++
	}
	offsets := make([]uint32, numStrips)
	pos := dataPos
	for i := range offsets {
		offsets[i] = pos
		pos += counts[i]
	}
	entries = append(entries,
		longsEntry(vb, tagStripOffsets, offsets),
		longsEntry(vb, tagStripByteCounts, counts),
	)
	if len(entries) != ifd0Entries {
		return nil, fmt.Errorf("ifd entry count %d, expected %d", len(entries), ifd0Entries)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	exif := []ifdEntry{shortEntry(tagColorSpace, ts.ColorSpace)}

	out := bytes.NewBuffer(make([]byte, 0, int(dataPos)+len(img.Pix)*2))
	out.WriteString("II")
	writeU16(out, 42)
	writeU32(out, ifd0Pos)
	writeIFD(out, entries)
	writeIFD(out, exif)
	out.Write(vb.buf.Bytes())
	for uint32(out.Len()) < dataPos {
		out.WriteByte(0)
	}
	if uint32(out.Len()) != dataPos {
		return nil, fmt.Errorf("ifd layout overran pixel offset")
	}

	row := make([]byte, bytesPerRow)
	for y := 0; y < h; y++ {
		line := img.Pix[y*w*samplesPerPixel : (y+1)*w*samplesPerPixel]
		for i, v := range line {
			binary.LittleEndian.PutUint16(row[i*2:], v)
		}
		out.Write(row)
	}
	return out.Bytes(), nil
}

// WriteTIFFFile encodes img and writes it to path, mapping filesystem
// failures to WriteError.
func WriteTIFFFile(path string, img *Image16, ts TagSet) (int64, error) {
	data, err := EncodeTIFF(img, ts)
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	return int64(len(data)), nil
}

func writeIFD(out *bytes.Buffer, entries []ifdEntry) {
	writeU16(out, uint16(len(entries)))
	for _, e := range entries {
		writeU16(out, e.tag)
		writeU16(out, e.typ)
		writeU32(out, e.count)
		out.Write(e.value[:])
	}
	writeU32(out, 0) // no next IFD
}

func writeU16(out *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	out.Write(b[:])
}

func writeU32(out *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	out.Write(b[:])
}
