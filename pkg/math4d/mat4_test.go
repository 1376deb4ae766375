package math4d

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecApprox(a, b Vec4) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z) && approx(a.W, b.W)
}

func TestRotateXWMatchesPlanarFormula(t *testing.T) {
	angles := []float64{0, 0.3, math.Pi / 2, math.Pi, -1.1, 5}
	v := V4(0.5, -0.5, 0.5, -0.5)

	for _, a := range angles {
		got := RotateXW(a).MulVec4(v)
		want := Vec4{
			X: v.X*math.Cos(a) - v.W*math.Sin(a),
			Y: v.Y,
			Z: v.Z,
			W: v.X*math.Sin(a) + v.W*math.Cos(a),
		}
		if !vecApprox(got, want) {
			t.Errorf("RotateXW(%v) * %v = %v, want %v", a, v, got, want)
		}
	}
}

func TestRotateXZMatchesPlanarFormula(t *testing.T) {
	a := 0.7
	v := V4(1, 2, 3, 4)
	got := RotateXZ(a).MulVec4(v)
	want := Vec4{
		X: v.X*math.Cos(a) - v.Z*math.Sin(a),
		Y: 2,
		Z: v.X*math.Sin(a) + v.Z*math.Cos(a),
		W: 4,
	}
	if !vecApprox(got, want) {
		t.Errorf("RotateXZ = %v, want %v", got, want)
	}
}

func TestRotatePlanePreservesLength(t *testing.T) {
	v := V4(0.5, 0.5, -0.5, 0.5)
	for a := Axis(0); a < 4; a++ {
		for b := Axis(0); b < 4; b++ {
			got := RotatePlane(a, b, 1.234).MulVec4(v)
			if !approx(got.Len(), v.Len()) {
				t.Errorf("plane (%d,%d): length %v, want %v", a, b, got.Len(), v.Len())
			}
		}
	}
}

func TestRotatePlaneSameAxisIsIdentity(t *testing.T) {
	if RotatePlane(AxisY, AxisY, 2) != Identity() {
		t.Error("RotatePlane(y, y) should be identity")
	}
}

func TestMulComposesInOrder(t *testing.T) {
	v := V4(1, 0, 0, 0)
	// Rotate x toward w by a quarter turn, then w stays put under XZ.
	got := RotateXZ(math.Pi / 2).Mul(RotateXW(math.Pi / 2)).MulVec4(v)
	if !vecApprox(got, V4(0, 0, 0, 1)) {
		t.Errorf("composed rotation = %v, want (0,0,0,1)", got)
	}
}

func TestVec4Components(t *testing.T) {
	v := V4(1, 2, 3, 4)
	for a, want := range []float64{1, 2, 3, 4} {
		if got := v.Component(Axis(a)); got != want {
			t.Errorf("Component(%d) = %v, want %v", a, got, want)
		}
	}
	if got := v.WithComponent(AxisW, -1); got != V4(1, 2, 3, -1) {
		t.Errorf("WithComponent = %v", got)
	}
	if v != V4(1, 2, 3, 4) {
		t.Error("WithComponent mutated receiver")
	}
}
