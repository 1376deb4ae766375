package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/tesseract/pkg/math4d"
)

// settleEpsilon is how close a spring must come to its target before it is
// snapped onto it. Left alone, a critically damped spring can stall a few ulps
// short of the target forever.
const settleEpsilon = 1e-9

// Motion eases the viewer offset and the rotation speed toward the values the
// keys set, so moves and pauses glide instead of jumping.
type Motion struct {
	target math4d.Vec4
	pos    math4d.Vec4
	vel    math4d.Vec4
	offset harmonica.Spring

	speed       float64 // 0 = paused, 1 = full TurnRate
	speedVel    float64
	speedTarget float64
	spin        harmonica.Spring
}

// NewMotion creates a motion starting at rest at offset, with the rotation
// already at full speed when rotating is set.
func NewMotion(fps int, offset math4d.Vec4, rotating bool) *Motion {
	m := &Motion{
		target: offset,
		pos:    offset,
		// Frequency 6.0 with critical damping settles in about half a second.
		offset: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		spin:   harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
	if rotating {
		m.speed, m.speedTarget = 1, 1
	}
	return m
}

// Nudge moves the target offset along one axis.
func (m *Motion) Nudge(axis math4d.Axis, delta float64) {
	m.target = m.target.WithComponent(axis, m.target.Component(axis)+delta)
}

// Target returns the offset the motion is heading toward.
func (m *Motion) Target() math4d.Vec4 {
	return m.target
}

// SetRotating sets whether the rotation speed eases toward full or zero.
func (m *Motion) SetRotating(on bool) {
	if on {
		m.speedTarget = 1
	} else {
		m.speedTarget = 0
	}
}

// Update steps both springs by one frame and returns the eased offset and
// rotation speed factor.
func (m *Motion) Update() (math4d.Vec4, float64) {
	for _, axis := range []math4d.Axis{math4d.AxisX, math4d.AxisY, math4d.AxisZ, math4d.AxisW} {
		target := m.target.Component(axis)
		p, v := m.offset.Update(m.pos.Component(axis), m.vel.Component(axis), target)
		p, v = settle(p, v, target)
		m.pos = m.pos.WithComponent(axis, p)
		m.vel = m.vel.WithComponent(axis, v)
	}
	m.speed, m.speedVel = m.spin.Update(m.speed, m.speedVel, m.speedTarget)
	m.speed, m.speedVel = settle(m.speed, m.speedVel, m.speedTarget)
	m.speed = min(max(m.speed, 0), 1)
	return m.pos, m.speed
}

// settle snaps a spring onto its target once it is within settleEpsilon.
func settle(pos, vel, target float64) (float64, float64) {
	if math.Abs(pos-target) < settleEpsilon {
		return target, 0
	}
	return pos, vel
}
