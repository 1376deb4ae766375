package main

import (
	"math"
	"testing"

	"github.com/taigrr/tesseract/pkg/math4d"
)

func TestMotionSettlesOnTarget(t *testing.T) {
	m := NewMotion(60, math4d.Vec4{}, false)
	m.Nudge(math4d.AxisZ, 0.25)
	m.Nudge(math4d.AxisZ, 0.25)
	m.Nudge(math4d.AxisW, -0.25)

	if m.Target() != math4d.V4(0, 0, 0.5, -0.25) {
		t.Fatalf("Target = %v", m.Target())
	}

	first, _ := m.Update()
	if first.Z <= 0 || first.Z >= 0.5 {
		t.Errorf("first step z = %v, want strictly between start and target", first.Z)
	}

	var got math4d.Vec4
	for range 300 {
		got, _ = m.Update()
	}
	if got.Sub(m.Target()).Len() > 1e-3 {
		t.Errorf("offset %v did not settle on %v", got, m.Target())
	}
}

func TestMotionSpeedEasesInAndOut(t *testing.T) {
	m := NewMotion(60, math4d.Vec4{}, false)
	if _, speed := m.Update(); speed != 0 {
		t.Fatalf("paused speed = %v, want 0", speed)
	}

	m.SetRotating(true)
	_, speed := m.Update()
	if speed <= 0 || speed >= 1 {
		t.Errorf("speed after one frame = %v, want easing between 0 and 1", speed)
	}
	for range 300 {
		_, speed = m.Update()
	}
	if math.Abs(speed-1) > 1e-3 {
		t.Errorf("speed = %v, want 1", speed)
	}

	m.SetRotating(false)
	for range 300 {
		_, speed = m.Update()
		if speed < 0 || speed > 1 {
			t.Fatalf("speed %v left [0, 1]", speed)
		}
	}
	if speed > 1e-3 {
		t.Errorf("speed = %v, want 0", speed)
	}
}

func TestMotionStartsRotating(t *testing.T) {
	m := NewMotion(60, math4d.V4(1, 2, 3, 4), true)
	offset, speed := m.Update()
	if speed != 1 {
		t.Errorf("speed = %v, want 1", speed)
	}
	if offset != math4d.V4(1, 2, 3, 4) {
		t.Errorf("offset at rest moved to %v", offset)
	}
}

func TestMotionReachesTargetExactly(t *testing.T) {
	m := NewMotion(60, math4d.V4(0, 0, 2.25, 0), false)
	m.Nudge(math4d.AxisZ, 0.25)
	m.SetRotating(true)

	var offset math4d.Vec4
	var speed float64
	for range 600 {
		offset, speed = m.Update()
	}
	if offset != math4d.V4(0, 0, 2.5, 0) {
		t.Errorf("offset = %v (z short by %g), want exactly (0,0,2.5,0)", offset, 2.5-offset.Z)
	}
	if speed != 1 {
		t.Errorf("speed = %v, want exactly 1", speed)
	}

	// Once settled the offset stays put.
	if again, _ := m.Update(); again != offset {
		t.Errorf("settled offset drifted to %v", again)
	}
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name             string
		pos, vel, tgt    float64
		wantPos, wantVel float64
	}{
		{"far", 1, 0.5, 2, 1, 0.5},
		{"just outside", 2 - 2e-9, 1e-8, 2, 2 - 2e-9, 1e-8},
		{"stalled below", 2.5 - 1.7763568394002505e-15, 1e-14, 2.5, 2.5, 0},
		{"stalled above", 1e-12, -1e-12, 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, vel := settle(tc.pos, tc.vel, tc.tgt)
			if pos != tc.wantPos || vel != tc.wantVel {
				t.Errorf("settle(%v, %v, %v) = %v, %v; want %v, %v", tc.pos, tc.vel, tc.tgt, pos, vel, tc.wantPos, tc.wantVel)
			}
		})
	}
}
