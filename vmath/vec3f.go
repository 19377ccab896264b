package vmath

import (
	"github.com/chewxy/math32"
)

// Vec3F is a float32 3D vector, the same layout as a GPU vec3 attribute
type Vec3F struct {
	X, Y, Z float32
}

func V3F(x, y, z float32) Vec3F {
	return Vec3F{x, y, z}
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float32) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float32 {
	return math32.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates a toward b, t is not clamped
func V3FLerp(a, b Vec3F, t float32) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FBasis returns two unit vectors orthogonal to axis and to each other
// axis must be normalized
func V3FBasis(axis Vec3F) (u, v Vec3F) {
	// Pick the world axis least aligned with the input to avoid a degenerate cross product
	ref := Vec3F{0, 1, 0}
	if math32.Abs(axis.Y) > 0.9 {
		ref = Vec3F{1, 0, 0}
	}
	u = V3FNormalize(V3FCross(ref, axis))
	v = V3FCross(axis, u)
	return u, v
}

// V3FArray returns the components as a fixed array, matching a packed attribute stride of 3
func V3FArray(v Vec3F) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
