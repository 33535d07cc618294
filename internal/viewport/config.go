package viewport

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/config"
)

// Config is read when a view is initialized. Changing it requires
// Reconfigure.
type Config struct {
	RightHanded             bool
	PreserveFileCoordinates bool
	ShowInspector           bool

	Width      int
	Height     int
	ClearColor mgl32.Vec4

	Camera config.CameraConfig

	// STLScale is applied per axis to every mesh imported from .stl.
	STLScale    float32
	MaxParallel int
}

// DefaultConfig returns the viewport settings of config.Default.
func DefaultConfig() Config {
	return FromConfig(config.Default())
}

// FromConfig extracts the viewport settings from the application config.
func FromConfig(cfg *config.Config) Config {
	return Config{
		RightHanded:             cfg.Scene.RightHanded,
		PreserveFileCoordinates: cfg.Scene.PreserveFileCoordinates,
		ShowInspector:           cfg.Scene.ShowInspector,
		Width:                   cfg.Window.Width,
		Height:                  cfg.Window.Height,
		ClearColor:              mgl32.Vec4(cfg.Scene.ClearColor),
		Camera:                  cfg.Camera,
		STLScale:                cfg.Import.STLScale,
		MaxParallel:             cfg.Import.MaxParallel,
	}
}
