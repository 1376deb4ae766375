package main

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/tesseract/pkg/render"
)

var (
	barStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("252"))
	fpsStyle  = barStyle.Copy().Foreground(lipgloss.Color("82")).Bold(true)
	dimStyle  = barStyle.Copy().Foreground(lipgloss.Color("242"))
	modeStyle = barStyle.Copy().Foreground(lipgloss.Color("86"))
	noteStyle = barStyle.Copy().Foreground(lipgloss.Color("220")).Bold(true)
)

// HUD tracks frame timing and draws the two status rows under the picture.
type HUD struct {
	Visible bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time

	renderTime time.Duration
	stats      render.FrameStats

	note      string
	noteUntil time.Time
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// Record stores one frame's render time and compression result and updates
// the FPS counter.
func (h *HUD) Record(renderTime time.Duration, stats render.FrameStats) {
	h.renderTime = renderTime
	h.stats = stats
	h.fpsFrames++
	if elapsed := time.Since(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Notify shows a short message on the status row for a few seconds, even
// when the HUD is hidden.
func (h *HUD) Notify(msg string) {
	h.note = msg
	h.noteUntil = time.Now().Add(3 * time.Second)
}

// StatusLine returns the text of the bottom row.
func (h *HUD) StatusLine(s *render.State) string {
	if h.note != "" && time.Now().Before(h.noteUntil) {
		return noteStyle.Render(" " + h.note + " ")
	}
	if !h.Visible {
		return dimStyle.Render(" ? help ")
	}
	renderFPS := 0.0
	if h.renderTime > 0 {
		renderFPS = 1 / h.renderTime.Seconds()
	}
	rotation := s.Rotation.String()
	if !s.Rotating {
		rotation += " (paused)"
	}
	return fpsStyle.Render(fmt.Sprintf(" %.0f fps ", h.fps)) +
		dimStyle.Render(fmt.Sprintf("render %.0f fps │ ", renderFPS)) +
		barStyle.Render(fmt.Sprintf("%d cells in %d runs │ ", h.stats.Cells, h.stats.Chunks)) +
		modeStyle.Render(fmt.Sprintf("%s xw %.0f° xz %.0f° ", rotation, degrees(s.AngleXW), degrees(s.AngleXZ))) +
		dimStyle.Render(fmt.Sprintf("│ offset %+.2f %+.2f %+.2f %+.2f ", s.Offset.X, s.Offset.Y, s.Offset.Z, s.Offset.W))
}

// KeyLine returns the text of the row above the status row.
func (h *HUD) KeyLine() string {
	if !h.Visible {
		return ""
	}
	return dimStyle.Render(" r rotate  v single/dual  w/s z  d/a x  q/e y  p/l w  y copy view  esc quit ")
}

// Draw writes both rows at the bottom of a width×height screen.
func (h *HUD) Draw(scr uv.Screen, width, height int, s *render.State) {
	if height < 2 {
		return
	}
	drawLine(scr, h.KeyLine(), height-2, width)
	drawLine(scr, h.StatusLine(s), height-1, width)
}

func drawLine(scr uv.Screen, text string, row, width int) {
	uv.NewStyledString(lipgloss.NewStyle().MaxWidth(width).Render(text)).Draw(scr, uv.Rect(0, row, width, 1))
}

func degrees(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}
