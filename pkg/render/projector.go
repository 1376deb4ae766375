package render

import (
	"math"

	"github.com/taigrr/tesseract/pkg/math4d"
)

// screenLimit bounds pixel coordinates. A vertex just in front of the camera
// plane projects arbitrarily far off the grid.
const screenLimit = 1 << 28

// ProjectedPoint is a vertex in normalized device coordinates (roughly
// [-1, 1], y down) plus the depth of the final perspective divide.
type ProjectedPoint struct {
	X, Y float64
	D    float64
}

// ScreenPoint is a projected vertex snapped to the pixel grid.
type ScreenPoint struct {
	X, Y int
	D    float64
}

// Visible reports whether the point is in front of the camera.
func (p ScreenPoint) Visible() bool {
	return p.D > 0
}

// projector caches the per-frame rotation so each vertex costs two
// matrix-vector products and two divides.
type projector struct {
	rot4   math4d.Mat4
	rot3   math4d.Mat4
	dual   bool
	offset math4d.Vec4
	f      float64
}

func newProjector(s *State) projector {
	return projector{
		rot4:   math4d.RotateXW(s.AngleXW),
		rot3:   math4d.RotateXZ(s.AngleXZ),
		dual:   s.Rotation == RotationDual,
		offset: s.Offset,
		f:      s.FocalLength,
	}
}

// stage3 rotates a vertex in 4D, moves it into view space and divides by its
// w depth, returning the 3D point.
func (p projector) stage3(v math4d.Vec4) math4d.Vec3 {
	r := p.rot4.MulVec4(v).Sub(p.offset)
	if p.dual {
		// (x, z) turns in view space, before the w divide
		r = p.rot3.MulVec4(r)
	}
	d := r.W + p.f
	return math4d.V3(r.X*p.f/d, r.Y*p.f/d, r.Z*p.f/d)
}

// stage2 divides a 3D point by its z depth.
func (p projector) stage2(q math4d.Vec3) ProjectedPoint {
	d := q.Z + p.f
	return ProjectedPoint{
		X: q.X * p.f / d,
		Y: -(q.Y * p.f) / d,
		D: d,
	}
}

// ProjectVertex maps one 4D vertex through rotation, translation and both
// perspective divides.
func ProjectVertex(s *State, v math4d.Vec4) ProjectedPoint {
	p := newProjector(s)
	return p.stage2(p.stage3(v))
}

// ProjectStage3 returns every vertex of the state's shape after the 4D
// divide, in vertex order.
func ProjectStage3(s *State) []math4d.Vec3 {
	p := newProjector(s)
	out := make([]math4d.Vec3, len(s.Shape.Vertices))
	for i, v := range s.Shape.Vertices {
		out[i] = p.stage3(v)
	}
	return out
}

// ToScreen maps normalized coordinates into a width×height pixel grid. The
// smaller dimension spans [-1, 1] and the projection is centered along the
// larger one, so non-square grids are not distorted. Coordinates are clamped
// to ±2^28; NaN maps to the positive limit.
func ToScreen(p ProjectedPoint, width, height int) ScreenPoint {
	side := float64(min(width, height))
	padX := float64(max(0, width-height)) / 2
	padY := float64(max(0, height-width)) / 2
	return ScreenPoint{
		X: toPixel(side*(p.X*0.5+0.5) + padX),
		Y: toPixel(side*(p.Y*0.5+0.5) + padY),
		D: p.D,
	}
}

func toPixel(v float64) int {
	switch {
	case math.IsNaN(v) || v > screenLimit:
		return screenLimit
	case v < -screenLimit:
		return -screenLimit
	}
	return int(v)
}

// Project maps every vertex of the state's shape to the pixel grid, in
// vertex order.
func Project(s *State, width, height int) []ScreenPoint {
	p := newProjector(s)
	out := make([]ScreenPoint, len(s.Shape.Vertices))
	for i, v := range s.Shape.Vertices {
		out[i] = ToScreen(p.stage2(p.stage3(v)), width, height)
	}
	return out
}
