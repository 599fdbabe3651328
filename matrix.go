package textmesh

// Mat4 is a 4x4 transform stored column-major, the layout WGSL's
// mat4x4<f32> reads from a uniform buffer.
//
//	| M[0] M[4] M[8]  M[12] |
//	| M[1] M[5] M[9]  M[13] |
//	| M[2] M[6] M[10] M[14] |
//	| M[3] M[7] M[11] M[15] |
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ModelMatrix composes translation * rotation * scale.
func ModelMatrix(pos Vec3, rot Quat, scale Vec3) Mat4 {
	q := rot.Normalize()
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return Mat4{
		(1 - 2*(yy+zz)) * scale.X, 2 * (xy + wz) * scale.X, 2 * (xz - wy) * scale.X, 0,
		2 * (xy - wz) * scale.Y, (1 - 2*(xx+zz)) * scale.Y, 2 * (yz + wx) * scale.Y, 0,
		2 * (xz + wy) * scale.Z, 2 * (yz - wx) * scale.Z, (1 - 2*(xx+yy)) * scale.Z, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// TransformPoint applies m to p (w = 1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity4()
}
