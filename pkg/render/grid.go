package render

import (
	"image"
	"image/color"
)

// GreyPalette maps index i to grey level i, so a grid's bytes can be used as
// palette indices directly.
var GreyPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// Grid is a frame of 8-bit intensities, row-major, 0 = black.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrid creates a black grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Clear sets every cell back to black.
func (g *Grid) Clear() {
	clear(g.Pix)
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the intensity at (x, y), or 0 when out of bounds.
func (g *Grid) At(x, y int) uint8 {
	if !g.In(x, y) {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// Set overwrites the intensity at (x, y). Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, v uint8) {
	if !g.In(x, y) {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Brighten raises the intensity at (x, y) to v if v is brighter. Cells never
// get darker. Out-of-bounds writes are dropped.
func (g *Grid) Brighten(x, y int, v uint8) {
	if !g.In(x, y) {
		return
	}
	i := y*g.Width + x
	if g.Pix[i] < v {
		g.Pix[i] = v
	}
}

// Row returns row y as a slice of the grid's storage.
func (g *Grid) Row(y int) []uint8 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Paletted converts the grid to a paletted image over GreyPalette. The pixel
// bytes are copied.
func (g *Grid) Paletted() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.Width, g.Height), GreyPalette)
	copy(img.Pix, g.Pix)
	return img
}
