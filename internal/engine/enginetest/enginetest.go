// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"errors"
	"image"
	"image/color"

	"github.com/Faultbox/meshview/internal/engine"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/scene"
)

// ErrSurface is returned by NewSurface when the engine is set to fail.
var ErrSurface = errors.New("enginetest: surface creation failed")

// Engine records every surface it creates.
type Engine struct {
	Surfaces []*Surface
	// Fail makes NewSurface return ErrSurface.
	Fail bool
}

// New creates an engine that never fails.
func New() *Engine {
	return &Engine{}
}

// NewSurface implements engine.Engine.
func (e *Engine) NewSurface(cfg engine.SurfaceConfig) (engine.Surface, error) {
	if e.Fail {
		return nil, ErrSurface
	}
	s := &Surface{Loop: engine.NewLoop(cfg.Width, cfg.Height), Config: cfg}
	e.Surfaces = append(e.Surfaces, s)
	return s, nil
}

// Live returns the surfaces that have not been disposed.
func (e *Engine) Live() []*Surface {
	var out []*Surface
	for _, s := range e.Surfaces {
		if s.Disposed == 0 {
			out = append(out, s)
		}
	}
	return out
}

// Last returns the most recently created surface, or nil.
func (e *Engine) Last() *Surface {
	if len(e.Surfaces) == 0 {
		return nil
	}
	return e.Surfaces[len(e.Surfaces)-1]
}

// Surface counts renders and disposals.
type Surface struct {
	*engine.Loop
	Config engine.SurfaceConfig

	Renders   int
	Disposed  int
	LastScene *scene.Scene
}

// Resize implements engine.Surface.
func (s *Surface) Resize(width, height int) {
	s.Loop.Resize(width, height)
}

// Render implements engine.Surface.
func (s *Surface) Render(sc *scene.Scene, _ *camera.ArcRotate) {
	s.Renders++
	s.LastScene = sc
}

// Texture implements engine.Surface.
func (s *Surface) Texture() uint32 { return 0 }

// Snapshot implements engine.Surface. The image is filled with the clear
// color of the last rendered scene.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	if s.Disposed > 0 {
		return nil, errors.New("enginetest: surface disposed")
	}
	w, h := s.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if s.LastScene != nil {
		c := s.LastScene.ClearColor
		fill := color.RGBA{uint8(c[0] * 255), uint8(c[1] * 255), uint8(c[2] * 255), uint8(c[3] * 255)}
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = fill.R, fill.G, fill.B, fill.A
		}
	}
	return img, nil
}

// Dispose implements engine.Surface.
func (s *Surface) Dispose() {
	s.Disposed++
	s.Loop.Close()
}
