package utils

import "math"

// Returns the absolute value of n
func Abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Clamps n into the closed range [lo, hi]
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	} else if n > hi {
		return hi
	}
	return n
}

// Clips v to [0, 255] and truncates it towards zero
func SaturateByte(v float64) byte {
	return byte(math.Min(math.Max(v, 0), 255))
}
