//go:build cgo && !nolibraw

package libraw

/*
#cgo LDFLAGS: -lraw
#include <stdlib.h>
#include "libraw/libraw.h"
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Probe reports the linked LibRaw version. With cgo enabled the library is
// resolved at link time, so availability is a property of the build.
func Probe() Capability {
	return Capability{
		Available: true,
		Version:   C.GoString(C.libraw_version()),
	}
}

// Decode opens path, unpacks the raw sensor data, runs the dcraw-style
// processing pipeline with p applied, and copies the rendered bitmap out
// of C memory.
func Decode(path string, p Params) (*Image, error) {
	proc := C.libraw_init(0)
	if proc == nil {
		return nil, fmt.Errorf("libraw init failed")
	}
	// libraw_close frees the handle; libraw_recycle only resets it for reuse.
	defer C.libraw_close(proc)

	applyParams(proc, p)

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	if err := status(C.libraw_open_file(proc, cpath)); err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := status(C.libraw_unpack(proc)); err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}
	if err := status(C.libraw_dcraw_process(proc)); err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	var code C.int
	img := C.libraw_dcraw_make_mem_image(proc, &code)
	if err := status(code); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("render: no bitmap produced")
	}
	defer C.libraw_dcraw_clear_mem(img)

	if img._type != C.LIBRAW_IMAGE_BITMAP {
		return nil, fmt.Errorf("render: unexpected output format %d", int(img._type))
	}

	out := &Image{
		Width:    int(img.width),
		Height:   int(img.height),
		Channels: int(img.colors),
		Bits:     int(img.bits),
	}
	switch out.Bits {
	case 16:
		n := int(img.data_size) / 2
		src := unsafe.Slice((*uint16)(unsafe.Pointer(&img.data[0])), n)
		out.PixU16 = make([]uint16, n)
		copy(out.PixU16, src)
	case 8:
		out.PixU8 = C.GoBytes(unsafe.Pointer(&img.data[0]), C.int(img.data_size))
	default:
		return nil, fmt.Errorf("render: unsupported bit depth %d", out.Bits)
	}
	return out, nil
}

// applyParams copies p into the processor's output parameter block.
func applyParams(proc *C.libraw_data_t, p Params) {
	op := &proc.params
	if p.UseCameraWB {
		op.use_camera_wb = 1
	}
	if p.NoAutoBright {
		op.no_auto_bright = 1
	} else {
		op.no_auto_bright = 0
	}
	if p.AutoBrightThr > 0 {
		op.auto_bright_thr = C.float(p.AutoBrightThr)
	}
	if p.OutputBPS != 0 {
		op.output_bps = C.int(p.OutputBPS)
	}
	if p.DemosaicQual != 0 {
		op.user_qual = C.int(p.DemosaicQual)
	}
	op.output_color = C.int(p.OutputColor)
	op.highlight = C.int(p.Highlight)
	if p.Gamma[0] != 0 {
		op.gamm[0] = C.double(1.0 / p.Gamma[0])
		op.gamm[1] = C.double(p.Gamma[1])
	}
}

// status converts a LibRaw return code into an error.
func status(code C.int) error {
	if code == 0 {
		return nil
	}
	return fmt.Errorf("libraw: %s", C.GoString(C.libraw_strerror(code)))
}
