package x3ftiff

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTIFFFileAndVerify(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage16(20, 10)
	path := filepath.Join(dir, "out.tif")

	size, err := WriteTIFFFile(path, img, BuildTagSet(testClock))
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != size {
		t.Fatalf("reported %d bytes, file has %d", size, info.Size())
	}

	vr := VerifyTIFF(path, img)
	if !vr.Passed {
		t.Fatalf("verification failed: %s", vr.Note)
	}
	if vr.Width != 20 || vr.Height != 10 {
		t.Fatalf("verified geometry %dx%d, want 20x10", vr.Width, vr.Height)
	}
}

func TestWriteTIFFFileBadDestination(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage16(4, 4)
	path := filepath.Join(dir, "missing", "out.tif")

	_, err := WriteTIFFFile(path, img, BuildTagSet(testClock))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("got %T, want *WriteError", err)
	}
	if we.Path != path {
		t.Fatalf("error path %q, want %q", we.Path, path)
	}
}

func TestVerifyTIFFGeometryMismatch(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage16(8, 8)
	path := filepath.Join(dir, "out.tif")
	if _, err := WriteTIFFFile(path, img, BuildTagSet(testClock)); err != nil {
		t.Fatal(err)
	}

	vr := VerifyTIFF(path, gradientImage16(8, 9))
	if vr.Passed {
		t.Fatal("expected geometry mismatch")
	}
	if !strings.Contains(vr.Note, "geometry") {
		t.Fatalf("note %q does not mention geometry", vr.Note)
	}
}

func TestVerifyTIFFPixelMismatch(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage16(8, 8)
	path := filepath.Join(dir, "out.tif")
	if _, err := WriteTIFFFile(path, img, BuildTagSet(testClock)); err != nil {
		t.Fatal(err)
	}

	other := gradientImage16(8, 8)
	other.Pix[0] ^= 0x0FF0

	vr := VerifyTIFF(path, other)
	if vr.Passed {
		t.Fatal("expected pixel mismatch")
	}
	if !strings.Contains(vr.Note, "mismatch") {
		t.Fatalf("note %q does not mention a mismatch", vr.Note)
	}
}

func TestVerifyTIFFUnreadable(t *testing.T) {
	dir := t.TempDir()
	img := gradientImage16(4, 4)

	vr := VerifyTIFF(filepath.Join(dir, "absent.tif"), img)
	if vr.Passed {
		t.Fatal("expected failure for missing file")
	}

	garbage := filepath.Join(dir, "garbage.tif")
	if err := os.WriteFile(garbage, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	vr = VerifyTIFF(garbage, img)
	if vr.Passed {
		t.Fatal("expected failure for undecodable file")
	}
	if !strings.Contains(vr.Note, "decode") {
		t.Fatalf("note %q does not mention decoding", vr.Note)
	}
}
