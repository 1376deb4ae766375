package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Animation collects grids as frames of a looping greyscale GIF.
type Animation struct {
	Width  int
	Height int
	Delay  int        // per frame, in 100ths of a second
	Labels *Captioner // optional; nil draws no captions

	frames []*image.Paletted
}

// NewAnimation creates an empty animation. delay is in 100ths of a second
// (5 => 20 fps).
func NewAnimation(width, height, delay int) *Animation {
	return &Animation{
		Width:  width,
		Height: height,
		Delay:  delay,
	}
}

// DelayForFPS converts a frame rate to a GIF delay, never below 1.
func DelayForFPS(fps int) int {
	if fps <= 0 {
		return 1
	}
	return max(1, 100/fps)
}

// AddFrame appends a grid. The caption is drawn only when Labels is set and
// caption is not empty.
func (a *Animation) AddFrame(g *Grid, caption string) error {
	if g.Width != a.Width || g.Height != a.Height {
		return fmt.Errorf("frame %d is %dx%d, animation is %dx%d",
			len(a.frames), g.Width, g.Height, a.Width, a.Height)
	}
	img := g.Paletted()
	if a.Labels != nil && caption != "" {
		a.Labels.Draw(img, caption)
	}
	a.frames = append(a.frames, img)
	return nil
}

// Len returns the number of frames added so far.
func (a *Animation) Len() int {
	return len(a.frames)
}

// Encode writes the animation with a single global grey palette, looping
// forever.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return fmt.Errorf("encode gif: no frames")
	}
	delays := make([]int, len(a.frames))
	for i := range delays {
		delays[i] = a.Delay
	}
	out := &gif.GIF{
		Image:     a.frames,
		Delay:     delays,
		LoopCount: 0,
		Config: image.Config{
			ColorModel: GreyPalette,
			Width:      a.Width,
			Height:     a.Height,
		},
	}
	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// Save encodes the animation to a file.
func (a *Animation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := a.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Captioner stamps a line of text into the bottom-left corner of a frame.
type Captioner struct {
	face   font.Face
	margin float64
}

// NewCaptioner creates a captioner drawing with face.
func NewCaptioner(face font.Face, margin float64) *Captioner {
	return &Captioner{face: face, margin: margin}
}

// LoadFace parses a TrueType font at the given point size. An empty path
// selects the built-in Go Mono face.
func LoadFace(path string, points float64) (font.Face, error) {
	data := gomono.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Draw renders text onto img in white. Anti-aliased edges land on grey
// palette entries, so the frame stays greyscale.
func (c *Captioner) Draw(img *image.Paletted, text string) {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(c.face)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(text, c.margin, float64(img.Bounds().Dy())-c.margin, 0, 0)
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
}
