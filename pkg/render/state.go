// Package render projects a 4D wireframe to a 2D intensity grid and encodes
// the grid for the terminal or an animated GIF.
package render

import (
	"fmt"
	"math"

	"github.com/taigrr/tesseract/pkg/math4d"
	"github.com/taigrr/tesseract/pkg/models"
)

const (
	// DefaultFocalLength is the projection strength used when no field of
	// view is given.
	DefaultFocalLength = 2.5

	// DefaultFOV is the field of view (degrees) used by the live viewer.
	DefaultFOV = 70.0

	// TurnRate is the rotation speed in radians per second (a quarter turn).
	TurnRate = math.Pi / 2

	// OffsetStep is how far one key press moves the viewer along an axis.
	OffsetStep = 0.25
)

// RotationMode selects which planes rotate.
type RotationMode int

const (
	RotationSingle RotationMode = iota // (x, w) plane only
	RotationDual                       // (x, w) plane, then (x, z) after the 4D divide
)

// String returns the mode name used in configs and the HUD.
func (m RotationMode) String() string {
	switch m {
	case RotationDual:
		return "dual"
	default:
		return "single"
	}
}

// ParseRotationMode maps a config name to a mode. Unknown names select
// RotationSingle.
func ParseRotationMode(s string) RotationMode {
	if s == "dual" {
		return RotationDual
	}
	return RotationSingle
}

// State is everything the projector needs for one frame. It persists across
// frames; the driver mutates it only between frames.
type State struct {
	Shape       *models.Polytope
	FocalLength float64
	Offset      math4d.Vec4 // viewer translation, subtracted from every vertex
	AngleXW     float64     // θ4, radians
	AngleXZ     float64     // θ3, radians (RotationDual only)
	Rotation    RotationMode
	Rotating    bool // whether the driver advances the angles
}

// NewState returns the default state: the unit tesseract, unrotated, at the
// default focal length.
func NewState() *State {
	return &State{
		Shape:       models.NewTesseract(),
		FocalLength: DefaultFocalLength,
		Rotation:    RotationSingle,
	}
}

// SetShape replaces the rendered wireframe. The shape must pass
// models.Polytope.Validate; on error the current shape is kept.
func (s *State) SetShape(p *models.Polytope) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("shape %q: %w", p.Name, err)
	}
	s.Shape = p
	return nil
}

// FOVToFocalLength converts a field of view in degrees to a focal length,
// fl = 1 / tan(fov/2). It diverges as fov approaches 0 and reaches 0 at 180.
func FOVToFocalLength(fovDegrees float64) float64 {
	return 1 / math.Tan(fovDegrees*math.Pi/180/2)
}

// Advance turns the active planes by TurnRate·dt.
func (s *State) Advance(dt float64) {
	d := TurnRate * dt
	s.AngleXW += d
	if s.Rotation == RotationDual {
		s.AngleXZ += d
	}
}

// Translate moves the viewer along one axis.
func (s *State) Translate(axis math4d.Axis, delta float64) {
	s.Offset = s.Offset.WithComponent(axis, s.Offset.Component(axis)+delta)
}

// ToggleRotation flips between single- and dual-plane rotation.
func (s *State) ToggleRotation() {
	if s.Rotation == RotationDual {
		s.Rotation = RotationSingle
	} else {
		s.Rotation = RotationDual
	}
}
