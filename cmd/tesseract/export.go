package main

import (
	"fmt"
	"log"

	"github.com/taigrr/tesseract/pkg/models"
	"github.com/taigrr/tesseract/pkg/render"
)

// writeGIF renders cfg.Frames frames of the rotating shape, advancing the
// angles by one frame interval each time, and saves them as a looping GIF.
func writeGIF(path string, cfg *Config, s *render.State, logger *log.Logger) error {
	anim := render.NewAnimation(cfg.Size, cfg.Size, render.DelayForFPS(cfg.FPS))
	if cfg.Caption {
		face, err := render.LoadFace(cfg.Font, captionPoints(cfg.Size))
		if err != nil {
			return fmt.Errorf("load caption font: %w", err)
		}
		anim.Labels = render.NewCaptioner(face, float64(cfg.Size)/60)
	}

	r := render.NewRasterizer(render.DefaultRasterConfig())
	dt := 1 / float64(cfg.FPS)
	for i := range cfg.Frames {
		g := r.Render(s, cfg.Size, cfg.Size)
		caption := ""
		if cfg.Caption {
			caption = frameCaption(s)
		}
		if err := anim.AddFrame(g, caption); err != nil {
			return err
		}
		s.Advance(dt)
		if (i+1)%20 == 0 || i+1 == cfg.Frames {
			logger.Printf("rendered frame %d/%d", i+1, cfg.Frames)
		}
	}

	if err := anim.Save(path); err != nil {
		return fmt.Errorf("save gif: %w", err)
	}
	logger.Printf("wrote %s (%d frames, %dx%d)", path, anim.Len(), cfg.Size, cfg.Size)
	return nil
}

// writeSnapshot saves the shape after the 4D divide (and the 3D rotation in
// dual mode) as a line-mode GLB.
func writeSnapshot(path string, s *render.State, logger *log.Logger) error {
	w := &models.Wireframe{
		Name:   s.Shape.Name,
		Points: render.ProjectStage3(s),
		Edges:  s.Shape.Edges,
	}
	if err := models.SaveWireframeGLB(path, w); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	logger.Printf("wrote %s (%d points, %d lines)", path, len(w.Points), len(w.Edges))
	return nil
}

func captionPoints(size int) float64 {
	return max(10, float64(size)/30)
}

func frameCaption(s *render.State) string {
	if s.Rotation == render.RotationDual {
		return fmt.Sprintf("xw %5.1f°  xz %5.1f°", degrees(s.AngleXW), degrees(s.AngleXZ))
	}
	return fmt.Sprintf("xw %5.1f°", degrees(s.AngleXW))
}
