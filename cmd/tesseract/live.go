package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atotto/clipboard"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/tesseract/pkg/math4d"
	"github.com/taigrr/tesseract/pkg/render"
	"golang.org/x/term"
)

// liveFPS caps the terminal frame rate.
const liveFPS = 60

// ErrNotTerminal is returned when live mode is started without a terminal.
var ErrNotTerminal = errors.New("live mode needs a terminal (use -gif or -glb to write a file)")

// moveKeys maps keys to viewer moves.
var moveKeys = []struct {
	key   string
	axis  math4d.Axis
	delta float64
}{
	{"w", math4d.AxisZ, render.OffsetStep},
	{"s", math4d.AxisZ, -render.OffsetStep},
	{"d", math4d.AxisX, render.OffsetStep},
	{"a", math4d.AxisX, -render.OffsetStep},
	{"q", math4d.AxisY, render.OffsetStep},
	{"e", math4d.AxisY, -render.OffsetStep},
	{"p", math4d.AxisW, render.OffsetStep},
	{"l", math4d.AxisW, -render.OffsetStep},
}

// screen is the part of *uv.Terminal the viewer drives.
type screen interface {
	uv.Screen
	Display() error
	Erase()
	Resize(width, height int) error
}

// viewer owns the live state. Events and frames are handled on the same
// goroutine, so the state is never touched mid-frame.
type viewer struct {
	scr    screen
	cfg    *Config
	state  *render.State
	motion *Motion
	raster *render.Rasterizer
	sink   *render.TerminalSink
	hud    *HUD
	logger *log.Logger

	// copyText writes to the system clipboard; swapped out in tests.
	copyText func(string) error

	width, height int // terminal cells
	side          int // pixel grid side
}

func newViewer(scr screen, cfg *Config, s *render.State, logger *log.Logger) *viewer {
	return &viewer{
		scr:      scr,
		cfg:      cfg,
		state:    s,
		motion:   NewMotion(liveFPS, s.Offset, s.Rotating),
		raster:   render.NewRasterizer(render.DefaultRasterConfig()),
		sink:     render.NewTerminalSink(scr, render.DefaultCompressionDiff),
		hud:      NewHUD(),
		logger:   logger,
		copyText: clipboard.WriteAll,
	}
}

// resize recomputes the pixel grid for a width×height terminal.
func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.side = render.TerminalSize(width, height)
	v.scr.Erase()
	if err := v.scr.Resize(width, height); err != nil {
		v.logger.Printf("resize: %v", err)
	}
	v.logger.Printf("terminal %dx%d, grid %dx%d", width, height, v.side, v.side)
}

// handle applies one terminal event. It reports whether the viewer should
// quit.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.resize(ev.Width, ev.Height)
	case uv.KeyPressEvent:
		return v.handleKey(ev)
	}
	return false
}

func (v *viewer) handleKey(ev uv.KeyPressEvent) bool {
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return true
	case ev.MatchString("r"):
		v.state.Rotating = !v.state.Rotating
		v.motion.SetRotating(v.state.Rotating)
	case ev.MatchString("v"):
		v.state.ToggleRotation()
	case ev.MatchString("?", "shift+/"):
		v.hud.Visible = !v.hud.Visible
	case ev.MatchString("y"):
		v.copyView()
	default:
		for _, m := range moveKeys {
			if ev.MatchString(m.key) {
				v.motion.Nudge(m.axis, m.delta)
				break
			}
		}
	}
	return false
}

// copyView puts the current view on the clipboard as a config file.
func (v *viewer) copyView() {
	view := v.cfg.Capture(v.state)
	t := v.motion.Target()
	view.Offset = [4]float64{t.X, t.Y, t.Z, t.W}
	text, err := view.JSON()
	if err == nil {
		err = v.copyText(text)
	}
	if err != nil {
		v.logger.Printf("copy view: %v", err)
		v.hud.Notify("copy failed")
		return
	}
	v.hud.Notify("view copied to clipboard")
}

// frame advances the state by dt seconds and draws it.
func (v *viewer) frame(dt float64) error {
	offset, speed := v.motion.Update()
	v.state.Offset = offset
	v.state.Advance(dt * speed)

	start := time.Now()
	stats := v.sink.Push(v.raster.Render(v.state, v.side, v.side))
	v.hud.Record(time.Since(start), stats)
	v.hud.Draw(v.scr, v.width, v.height, v.state)

	if err := v.scr.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// runLive shows the animation in the terminal until the user quits or ctx is
// cancelled.
func runLive(ctx context.Context, cfg *Config, s *render.State, logger *log.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	t := uv.DefaultTerminal()
	width, height, err := t.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := t.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	t.EnterAltScreen()
	t.HideCursor()
	defer func() {
		t.ExitAltScreen()
		t.ShowCursor()
		if err := t.Shutdown(context.Background()); err != nil {
			logger.Printf("shutdown terminal: %v", err)
		}
	}()

	v := newViewer(t, cfg, s, logger)
	v.resize(width, height)

	ticker := time.NewTicker(time.Second / liveFPS)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-t.Events():
			if !ok || v.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			if err := v.frame(dt); err != nil {
				return err
			}
		}
	}
}
