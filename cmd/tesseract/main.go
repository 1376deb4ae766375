// tesseract - rotating 4D hypercube wireframe
// Renders the tesseract to an animated GIF, a GLB snapshot, or live in the
// terminal with half-block graphics.
//
// Controls (live mode):
//
//	R       - Start/stop rotation
//	V       - Toggle single (xw) / dual (xw + xz) rotation
//	W/S     - Move viewer along z
//	D/A     - Move viewer along x
//	Q/E     - Move viewer along y
//	P/L     - Move viewer along w
//	Y       - Copy the current view to the clipboard as a config file
//	?       - Toggle HUD overlay
//	Esc     - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/tesseract/pkg/render"
)

// options are the command-line flags. Flags that were set explicitly
// override the config file.
type options struct {
	gif     string
	glb     string
	config  string
	logPath string
	frames  int
	fps     int
	size    int
	fov     float64
	dual    bool
	caption bool
	font    string
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.gif, "gif", "", "Write an animated GIF to `path`")
	fs.StringVar(&o.glb, "glb", "", "Write the projected 3D wireframe to `path` as GLB")
	fs.StringVar(&o.config, "config", "", "Load view settings from a JSON `file`")
	fs.StringVar(&o.logPath, "log", "", "Append log messages to `path`")
	fs.IntVar(&o.frames, "frames", DefaultFrames, "GIF frame count")
	fs.IntVar(&o.fps, "fps", DefaultFPS, "GIF frame rate")
	fs.IntVar(&o.size, "size", DefaultSize, "GIF width and height in pixels")
	fs.Float64Var(&o.fov, "fov", 0, "Field of view in degrees (default: focal length 2.5, or 70° live)")
	fs.BoolVar(&o.dual, "dual", false, "Rotate the xz plane as well as xw")
	fs.BoolVar(&o.caption, "caption", false, "Stamp the rotation angles on each GIF frame")
	fs.StringVar(&o.font, "font", "", "TrueType font `file` for captions (default Go Mono)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// buildConfig loads the config file, if any, then applies the flags that
// were set on the command line.
func buildConfig(fs *flag.FlagSet, o *options) (*Config, error) {
	cfg := DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = LoadConfig(o.config); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			cfg.Frames = o.frames
		case "fps":
			cfg.FPS = o.fps
		case "size":
			cfg.Size = o.size
		case "fov":
			cfg.FOV = o.fov
		case "dual":
			if o.dual {
				cfg.Rotation = render.RotationDual.String()
			} else {
				cfg.Rotation = render.RotationSingle.String()
			}
		case "caption":
			cfg.Caption = o.caption
		case "font":
			cfg.Font = o.font
		}
	})

	if cfg.Frames <= 0 || cfg.FPS <= 0 || cfg.Size <= 0 {
		return nil, fmt.Errorf("frames, fps and size must be positive (got %d, %d, %d)", cfg.Frames, cfg.FPS, cfg.Size)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openLog returns a logger appending to path, or one that discards
// everything when path is empty.
func openLog(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "tesseract: ", log.LstdFlags|log.Lmicroseconds), f, nil
}

func main() {
	fs := flag.NewFlagSet("tesseract", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "tesseract - Rotating 4D hypercube\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tesseract [options]\n\n")
		fmt.Fprintf(os.Stderr, "With no -gif or -glb, the tesseract is shown live in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  R         - Start/stop rotation\n")
		fmt.Fprintf(os.Stderr, "  V         - Single/dual rotation\n")
		fmt.Fprintf(os.Stderr, "  W/S D/A   - Move along z, x\n")
		fmt.Fprintf(os.Stderr, "  Q/E P/L   - Move along y, w\n")
		fmt.Fprintf(os.Stderr, "  Y         - Copy view as JSON\n")
		fmt.Fprintf(os.Stderr, "  ?         - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc       - Quit\n")
	}
	o, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(fs, o); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *flag.FlagSet, o *options) error {
	cfg, err := buildConfig(fs, o)
	if err != nil {
		return err
	}
	logger, closer, err := openLog(o.logPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	if o.gif != "" || o.glb != "" {
		s, err := cfg.State(0)
		if err != nil {
			return err
		}
		if o.glb != "" {
			if err := writeSnapshot(o.glb, s, logger); err != nil {
				return err
			}
		}
		if o.gif != "" {
			if err := writeGIF(o.gif, cfg, s, logger); err != nil {
				return err
			}
		}
		return nil
	}

	s, err := cfg.State(render.DefaultFOV)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runLive(ctx, cfg, s, logger)
}
