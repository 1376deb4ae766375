package render

import (
	"math"
	"sort"

	"github.com/taigrr/tesseract/pkg/models"
)

// RasterConfig holds the visual tuning of the line rasterizer.
type RasterConfig struct {
	// DepthFalloff is the depth at which a line would fade to black; the
	// fade is linear in depth.
	DepthFalloff float64
	// MaxFade caps how much of the brightness depth may remove, so distant
	// edges stay visible.
	MaxFade float64
	// PenDivisor sets pen width to min(width, height)/PenDivisor pixels.
	PenDivisor float64
}

// DefaultRasterConfig returns the standard tuning: fade over 10 units of
// depth, never below half brightness, pen 1% of the short side.
func DefaultRasterConfig() RasterConfig {
	return RasterConfig{
		DepthFalloff: 10,
		MaxFade:      0.5,
		PenDivisor:   100,
	}
}

// Rasterizer draws depth-shaded wireframes into intensity grids.
type Rasterizer struct {
	cfg RasterConfig
}

// NewRasterizer creates a rasterizer with the given tuning.
func NewRasterizer(cfg RasterConfig) *Rasterizer {
	return &Rasterizer{cfg: cfg}
}

// Config returns the rasterizer's tuning.
func (r *Rasterizer) Config() RasterConfig {
	return r.cfg
}

// Render projects the state's shape and draws it into a fresh width×height
// grid.
func (r *Rasterizer) Render(s *State, width, height int) *Grid {
	g := NewGrid(width, height)
	r.DrawEdges(g, s.Shape.Edges, Project(s, width, height))
	return g
}

// DrawEdges draws each edge between its projected endpoints. An edge with an
// endpoint behind the camera is skipped whole.
func (r *Rasterizer) DrawEdges(g *Grid, edges []models.Edge, points []ScreenPoint) {
	for _, e := range edges {
		a, b := points[e.A], points[e.B]
		if !a.Visible() || !b.Visible() {
			continue
		}
		r.DrawLine(g, a, b)
	}
}

// Intensity returns the brightness of a line point at the given depth:
// closer is brighter, and the fade is capped at MaxFade.
func (r *Rasterizer) Intensity(depth float64) uint8 {
	fade := math.Min(depth/r.cfg.DepthFalloff, r.cfg.MaxFade)
	return uint8(math.Round(255 * (1 - fade)))
}

// PenSize returns the side of the square pen for a width×height grid.
func (r *Rasterizer) PenSize(width, height int) int {
	return max(1, int(math.Round(float64(min(width, height))/r.cfg.PenDivisor)))
}

// DrawLine draws from a to b inclusive with Bresenham's algorithm, shading
// each step by the depth interpolated along the longer axis. Only the steps
// whose pen reaches the grid are walked, so an endpoint far off screen costs
// nothing extra. Coordinates must lie within ±2^28, as ToScreen guarantees.
func (r *Rasterizer) DrawLine(g *Grid, a, b ScreenPoint) {
	pen := r.PenSize(g.Width, g.Height)

	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)

	// Iterate along the longer axis
	l := bresenham{
		x0: a.X, y0: a.Y,
		sx: sign(b.X - a.X), sy: sign(b.Y - a.Y),
		major: dx, minor: dy,
	}
	if dy > dx {
		l.steep = true
		l.major, l.minor = dy, dx
	}

	if l.major == 0 {
		r.stamp(g, a.X, a.Y, pen, r.Intensity(a.D))
		return
	}

	// A stamp centered on c covers [c-pen/2, c-pen/2+pen-1].
	lo := pen/2 - pen + 1
	xFirst, xLast := stepSpan(l.major, l.sx, lo, g.Width-1+pen/2, func(i int) int {
		x, _ := l.at(i)
		return x
	})
	yFirst, yLast := stepSpan(l.major, l.sy, lo, g.Height-1+pen/2, func(i int) int {
		_, y := l.at(i)
		return y
	})

	for i := max(xFirst, yFirst); i <= min(xLast, yLast); i++ {
		x, y := l.at(i)
		t := float64(i) / float64(l.major)
		depth := a.D*(1-t) + b.D*t
		r.stamp(g, x, y, pen, r.Intensity(depth))
	}
}

// bresenham is a line stepped one pixel at a time along its major axis.
// Starting from e = 2·minor - major, the incremental walk takes a minor step
// exactly when round-half-up(i·minor/major) increases, so step i can be
// computed directly.
type bresenham struct {
	x0, y0       int
	sx, sy       int
	major, minor int
	steep        bool
}

func (l bresenham) at(i int) (x, y int) {
	m := int((2*int64(i)*int64(l.minor) + int64(l.major)) / (2 * int64(l.major)))
	if l.steep {
		return l.x0 + l.sx*m, l.y0 + l.sy*i
	}
	return l.x0 + l.sx*i, l.y0 + l.sy*m
}

// stepSpan returns the steps [first, last] of 0..n whose coordinate lies in
// [lo, hi]. coord must move monotonically in direction dir. The span is
// empty when first > last.
func stepSpan(n, dir, lo, hi int, coord func(i int) int) (first, last int) {
	switch {
	case dir > 0:
		first = sort.Search(n+1, func(i int) bool { return coord(i) >= lo })
		last = sort.Search(n+1, func(i int) bool { return coord(i) > hi }) - 1
	case dir < 0:
		first = sort.Search(n+1, func(i int) bool { return coord(i) <= hi })
		last = sort.Search(n+1, func(i int) bool { return coord(i) < lo }) - 1
	default:
		if c := coord(0); c < lo || c > hi {
			return 0, -1
		}
		return 0, n
	}
	return first, last
}

// stamp brightens a pen×pen square centered on (x, y).
func (r *Rasterizer) stamp(g *Grid, x, y, pen int, v uint8) {
	x0 := x - pen/2
	y0 := y - pen/2
	for py := y0; py < y0+pen; py++ {
		for px := x0; px < x0+pen; px++ {
			g.Brighten(px, py, v)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
