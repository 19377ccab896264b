package vmath

import (
	"github.com/chewxy/math32"
)

// --- Scalar helpers (float32, shader semantics) ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates a toward b, t is not clamped
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Fract returns the fractional part of v, always in [0, 1)
func Fract(v float32) float32 {
	f := v - math32.Floor(v)
	// Tiny negatives round up to exactly 1 in float32
	if f >= 1 {
		return 0
	}
	return f
}

// Smoothstep is the Hermite step between edge0 and edge1
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Hash11 maps a seed to a pseudo-random value in [0, 1)
// Same construction as the classic fract(sin(x)*43758.5453) shader hash, deterministic per input
func Hash11(x float32) float32 {
	return Fract(math32.Sin(x*12.9898+78.233) * 43758.5453)
}

// HashN derives the n-th independent pseudo-random channel from one seed
func HashN(seed float32, n int) float32 {
	return Hash11(seed*(float32(n)+1)*1.618034 + float32(n)*0.7071)
}
