package x3ftiff

import "golang.org/x/exp/constraints"

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sliceMax returns the largest element, or the zero value for an empty slice.
func sliceMax[T constraints.Ordered](s []T) T {
	var m T
	for i, v := range s {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
