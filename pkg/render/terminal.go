package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// HalfBlock is the glyph used for every terminal cell: its foreground paints
// the upper pixel and its background the lower one.
const HalfBlock = "▀"

// CellSetter is the part of an ultraviolet screen the sink draws through.
// *uv.Terminal and every uv.Screen satisfy it.
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// FrameStats describes one compressed frame.
type FrameStats struct {
	Rows   int // terminal rows written
	Chunks int // color runs emitted
	Cells  int // glyphs written
}

// TerminalSink draws intensity grids onto a terminal screen as half-block
// glyphs, two grid rows per terminal row, compressing each row into runs of
// near-identical color first.
type TerminalSink struct {
	scr  CellSetter
	diff uint8
}

// NewTerminalSink creates a sink drawing to scr with the given compression
// threshold.
func NewTerminalSink(scr CellSetter, diff uint8) *TerminalSink {
	return &TerminalSink{scr: scr, diff: diff}
}

// Push compresses the grid and draws it with its top-left corner at the
// screen origin.
func (s *TerminalSink) Push(g *Grid) FrameStats {
	var stats FrameStats
	for row, chunks := range Compress(g, s.diff) {
		col := 0
		for _, ch := range chunks {
			cell := &uv.Cell{
				Content: HalfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: grey(ch.Top),
					Bg: grey(ch.Bottom),
				},
			}
			for range ch.Run {
				s.scr.SetCell(col, row, cell)
				col++
			}
			stats.Chunks++
		}
		stats.Cells += col
		stats.Rows++
	}
	return stats
}

// TerminalSize returns the side of the square pixel grid that fits a
// cols×rows terminal, keeping two rows free for the status line.
func TerminalSize(cols, rows int) int {
	return max(0, min(cols, (rows-2)*2))
}

func grey(v uint8) color.Color {
	return color.RGBA{v, v, v, 255}
}
