package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/taigrr/tesseract/pkg/math4d"
	"github.com/taigrr/tesseract/pkg/models"
	"github.com/taigrr/tesseract/pkg/render"
)

// Defaults for GIF output.
const (
	DefaultFrames = 160
	DefaultFPS    = 20
	DefaultSize   = 1080
)

// Config is the JSON view file. Zero values mean "use the default", so a
// file only needs the keys it changes. Angles are in degrees.
type Config struct {
	FocalLength float64    `json:"focalLength,omitempty"`
	FOV         float64    `json:"fov,omitempty"` // degrees; takes precedence over focalLength
	Offset      [4]float64 `json:"offset"`
	XWDeg       float64    `json:"xwDeg"`
	XZDeg       float64    `json:"xzDeg"`
	Rotation    string     `json:"rotation,omitempty"` // "single" or "dual"
	Rotating    bool       `json:"rotating,omitempty"`
	Shape       *Shape     `json:"shape,omitempty"` // nil renders the tesseract

	Frames  int    `json:"frames,omitempty"`
	FPS     int    `json:"fps,omitempty"`
	Size    int    `json:"size,omitempty"`
	Caption bool   `json:"caption,omitempty"`
	Font    string `json:"font,omitempty"`
}

// Shape is a wireframe given in place of the tesseract. Every edge must join
// two vertices that differ in exactly one coordinate.
type Shape struct {
	Name     string       `json:"name,omitempty"`
	Vertices [][4]float64 `json:"vertices"`
	Edges    [][2]int     `json:"edges"`
}

// Polytope converts the shape for the projector.
func (sh *Shape) Polytope() *models.Polytope {
	p := &models.Polytope{
		Name:     sh.Name,
		Vertices: make([]math4d.Vec4, len(sh.Vertices)),
		Edges:    make([]models.Edge, len(sh.Edges)),
	}
	for i, v := range sh.Vertices {
		p.Vertices[i] = math4d.V4(v[0], v[1], v[2], v[3])
	}
	for i, e := range sh.Edges {
		p.Edges[i] = models.Edge{A: e[0], B: e[1]}
	}
	return p
}

// DefaultConfig returns a config with every frame setting filled in.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

// LoadConfig reads a JSON config file and fills in the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.Rotation == "" {
		c.Rotation = render.RotationSingle.String()
	}
}

// Validate rejects values the projector cannot use.
func (c *Config) Validate() error {
	if c.FOV < 0 || c.FOV >= 180 {
		return fmt.Errorf("fov %v out of range (0, 180)", c.FOV)
	}
	if c.FocalLength < 0 {
		return fmt.Errorf("focal length %v must be positive", c.FocalLength)
	}
	switch c.Rotation {
	case "", "single", "dual":
	default:
		return fmt.Errorf("unknown rotation %q (want single or dual)", c.Rotation)
	}
	return nil
}

// State builds the initial render state. defaultFOV is used when the config
// sets neither a field of view nor a focal length; 0 selects
// render.DefaultFocalLength.
func (c *Config) State(defaultFOV float64) (*render.State, error) {
	s := render.NewState()
	if c.Shape != nil {
		if err := s.SetShape(c.Shape.Polytope()); err != nil {
			return nil, err
		}
	}
	switch {
	case c.FOV > 0:
		s.FocalLength = render.FOVToFocalLength(c.FOV)
	case c.FocalLength > 0:
		s.FocalLength = c.FocalLength
	case defaultFOV > 0:
		s.FocalLength = render.FOVToFocalLength(defaultFOV)
	}
	s.Offset = math4d.V4(c.Offset[0], c.Offset[1], c.Offset[2], c.Offset[3])
	s.AngleXW = c.XWDeg * math.Pi / 180
	s.AngleXZ = c.XZDeg * math.Pi / 180
	s.Rotation = render.ParseRotationMode(c.Rotation)
	s.Rotating = c.Rotating
	return s, nil
}

// Capture returns a copy of c describing the current view of s. The focal
// length is stored directly so the copy reproduces s exactly.
func (c *Config) Capture(s *render.State) *Config {
	out := *c
	out.FOV = 0
	out.FocalLength = s.FocalLength
	out.Offset = [4]float64{s.Offset.X, s.Offset.Y, s.Offset.Z, s.Offset.W}
	out.XWDeg = degrees(s.AngleXW)
	out.XZDeg = degrees(s.AngleXZ)
	out.Rotation = s.Rotation.String()
	out.Rotating = s.Rotating
	return &out
}

// JSON encodes the config in the same layout LoadConfig reads.
func (c *Config) JSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

// Save writes the config as JSON.
func (c *Config) Save(path string) error {
	data, err := c.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data+"\n"), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
