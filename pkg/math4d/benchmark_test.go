package math4d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := RotateXW(0.5)
	m2 := RotateXZ(0.25)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := RotateXW(0.5).Mul(RotateXZ(0.25))
	v := V4(0.5, -0.5, 0.5, -0.5)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkRotatePlane(b *testing.B) {
	for b.Loop() {
		_ = RotatePlane(AxisY, AxisW, 1.1)
	}
}
