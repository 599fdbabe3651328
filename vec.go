package textmesh

import "math"

// Vec2 is a 2D vector in text-local units (one unit = one glyph cell).
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Approx reports whether both components are within epsilon of w.
func (v Vec2) Approx(w Vec2, epsilon float32) bool {
	return abs32(v.X-w.X) <= epsilon && abs32(v.Y-w.Y) <= epsilon
}

// Vec3 is a 3D vector used for entity position and scale.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// One is the unit scale.
var One = Vec3{X: 1, Y: 1, Z: 1}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Approx reports whether all components are within epsilon of w.
func (v Vec3) Approx(w Vec3, epsilon float32) bool {
	return abs32(v.X-w.X) <= epsilon && abs32(v.Y-w.Y) <= epsilon && abs32(v.Z-w.Z) <= epsilon
}

// Quat is a rotation quaternion. The zero value is not a valid rotation;
// use IdentityQuat.
type Quat struct {
	X, Y, Z, W float32
}

// IdentityQuat returns the rotation that leaves vectors unchanged.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns a rotation of angle radians around axis.
// A zero axis yields the identity rotation.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	l := math.Sqrt(float64(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z))
	if l == 0 {
		return IdentityQuat()
	}
	s := math.Sin(angle/2) / l
	return Quat{
		X: float32(float64(axis.X) * s),
		Y: float32(float64(axis.Y) * s),
		Z: float32(float64(axis.Z) * s),
		W: float32(math.Cos(angle / 2)),
	}
}

// Normalize returns q scaled to unit length.
// The zero quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if l == 0 {
		return IdentityQuat()
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
