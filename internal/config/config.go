// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds the application window settings.
type WindowConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS uint    `yaml:"target_fps"`
	FontPath  string  `yaml:"font_path"` // Empty uses the ImGui default font
	FontSize  float32 `yaml:"font_size"`
}

// SceneConfig holds the settings that require rebuilding the viewport.
type SceneConfig struct {
	RightHanded             bool       `yaml:"right_handed"`
	PreserveFileCoordinates bool       `yaml:"preserve_file_coordinates"`
	ShowInspector           bool       `yaml:"show_inspector"`
	ClearColor              [4]float32 `yaml:"clear_color,flow"`
}

// CameraConfig holds the orbit camera parameters.
type CameraConfig struct {
	Alpha            float32 `yaml:"alpha"`
	Beta             float32 `yaml:"beta"`
	Radius           float32 `yaml:"radius"`
	Inertia          float32 `yaml:"inertia"`
	WheelPrecision   float32 `yaml:"wheel_precision"`
	MinZ             float32 `yaml:"min_z"`
	LowerRadiusLimit float32 `yaml:"lower_radius_limit"`
	UpperRadiusLimit float32 `yaml:"upper_radius_limit"`
}

// ImportConfig holds mesh import settings.
type ImportConfig struct {
	STLScale    float32 `yaml:"stl_scale"`
	MaxParallel int     `yaml:"max_parallel"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    800,
			TargetFPS: 60,
			FontSize:  16,
		},
		Scene: SceneConfig{
			RightHanded:             true,
			PreserveFileCoordinates: true,
			ShowInspector:           true,
			ClearColor:              [4]float32{0.2, 0.2, 0.3, 1},
		},
		Camera: CameraConfig{
			Alpha:            -math32.Pi / 4,
			Beta:             math32.Pi / 4,
			Radius:           20,
			Inertia:          0.9,
			WheelPrecision:   50,
			MinZ:             0.1,
			LowerRadiusLimit: 0.5,
			UpperRadiusLimit: 100,
		},
		Import: ImportConfig{
			STLScale:    0.001,
			MaxParallel: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Radius <= 0 {
		errs = append(errs, fmt.Errorf("camera radius %g must be positive", c.Camera.Radius))
	}
	if c.Camera.LowerRadiusLimit > c.Camera.UpperRadiusLimit {
		errs = append(errs, fmt.Errorf("camera radius limits [%g, %g] are inverted",
			c.Camera.LowerRadiusLimit, c.Camera.UpperRadiusLimit))
	}
	if c.Camera.Inertia < 0 || c.Camera.Inertia >= 1 {
		errs = append(errs, fmt.Errorf("camera inertia %g must be in [0, 1)", c.Camera.Inertia))
	}
	if c.Camera.WheelPrecision <= 0 {
		errs = append(errs, fmt.Errorf("camera wheel_precision %g must be positive", c.Camera.WheelPrecision))
	}
	if c.Import.STLScale <= 0 {
		errs = append(errs, fmt.Errorf("import stl_scale %g must be positive", c.Import.STLScale))
	}
	if c.Import.MaxParallel < 1 {
		errs = append(errs, fmt.Errorf("import max_parallel %d must be at least 1", c.Import.MaxParallel))
	}
	return errors.Join(errs...)
}
