//go:build !cgo || nolibraw

package libraw

// Probe reports that decoding is unavailable in this build.
func Probe() Capability {
	return Capability{
		Available: false,
		Detail:    "binary built without LibRaw (cgo disabled or nolibraw tag set)",
	}
}

// Decode always fails in a stub build.
func Decode(path string, p Params) (*Image, error) {
	return nil, ErrUnavailable
}
