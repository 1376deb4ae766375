// Package math4d provides the vector and matrix primitives used by the
// hypercube projector.
package math4d

import "math"

// Axis names one coordinate of a Vec4.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisW
)

// Vec4 represents a point in 4D space.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Component returns the coordinate along axis a.
func (v Vec4) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.W
	}
}

// WithComponent returns a copy of v with the coordinate along axis a replaced.
func (v Vec4) WithComponent(a Axis, val float64) Vec4 {
	switch a {
	case AxisX:
		v.X = val
	case AxisY:
		v.Y = val
	case AxisZ:
		v.Z = val
	default:
		v.W = val
	}
	return v
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Len returns the length.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)
}
