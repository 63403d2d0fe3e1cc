package x3ftiff

import (
	"testing"
	"time"
)

func TestBuildTagSet(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	ts := BuildTagSet(now)

	want := TagSet{
		Software:        "X3F Converter for Photoshop",
		Make:            "SIGMA",
		Model:           "DP2 Merrill",
		DateTime:        "2024:06:01 15:04:05",
		Orientation:     1,
		XResolution:     [2]uint32{300, 1},
		YResolution:     [2]uint32{300, 1},
		ResolutionUnit:  2,
		ColorSpace:      1,
		Compression:     1,
		Photometric:     2,
		SamplesPerPixel: 3,
		BitsPerSample:   [3]uint16{16, 16, 16},
		PlanarConfig:    1,
	}
	if ts != want {
		t.Fatalf("tag set\n got %+v\nwant %+v", ts, want)
	}
}

func TestBuildTagSetOnlyDateTimeVaries(t *testing.T) {
	a := BuildTagSet(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := BuildTagSet(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))
	if a.DateTime == b.DateTime {
		t.Fatal("expected distinct timestamps")
	}
	a.DateTime = ""
	b.DateTime = ""
	if a != b {
		t.Fatalf("non-clock fields differ:\n%+v\n%+v", a, b)
	}
}
