package vmath

import "math"

// Lerp interpolates between a and b
// Weighted form keeps both endpoints exact: t=0 yields a, t=1 yields b
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp01 clamps v to [0,1], NaN maps to 0
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Clamp restricts v to [lo,hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round returns the nearest integer, halves away from zero
func Round(v float64) int {
	return int(math.Round(v))
}
