// Package engine defines the boundary between the viewer and its renderer:
// an Engine creates Surfaces, and a Surface runs render loops, reports
// resizes and draws a scene.
package engine

import (
	"image"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/scene"
)

// SurfaceConfig holds render surface configuration.
type SurfaceConfig struct {
	Width     int
	Height    int
	Antialias bool
}

// Engine creates render surfaces.
type Engine interface {
	NewSurface(cfg SurfaceConfig) (Surface, error)
}

// Surface is an offscreen render target driven once per display frame.
type Surface interface {
	// RunRenderLoop registers fn to run on every Frame. The returned
	// function unregisters it.
	RunRenderLoop(fn func()) (stop func())
	// OnResize registers fn to run when the surface size changes.
	OnResize(fn func(width, height int)) (remove func())

	Resize(width, height int)
	Size() (width, height int)

	// Render draws sc as seen from cam into the surface.
	Render(sc *scene.Scene, cam *camera.ArcRotate)
	// Frame runs the registered render loops.
	Frame()
	// Texture returns the GPU texture holding the last rendered frame.
	Texture() uint32
	// Snapshot reads back the last rendered frame.
	Snapshot() (*image.RGBA, error)

	Dispose()
}
