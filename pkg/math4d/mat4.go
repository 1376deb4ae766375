package math4d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, acting as a linear map
// on Vec4 (there is no homogeneous coordinate: W is a real fourth axis).
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotatePlane creates a rotation by angle in the plane spanned by axes a and b.
// The a axis turns toward b:
//
//	a' = a·cos - b·sin
//	b' = a·sin + b·cos
//
// Rotating a plane onto itself (a == b) yields the identity.
func RotatePlane(a, b Axis, angle float64) Mat4 {
	m := Identity()
	if a == b {
		return m
	}
	c, s := math.Cos(angle), math.Sin(angle)
	m.Set(int(a), int(a), c)
	m.Set(int(a), int(b), -s)
	m.Set(int(b), int(a), s)
	m.Set(int(b), int(b), c)
	return m
}

// RotateXW creates a rotation in the (x, w) plane.
func RotateXW(angle float64) Mat4 {
	return RotatePlane(AxisX, AxisW, angle)
}

// RotateXZ creates a rotation in the (x, z) plane.
func RotateXZ(angle float64) Mat4 {
	return RotatePlane(AxisX, AxisZ, angle)
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
