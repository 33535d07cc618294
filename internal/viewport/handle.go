package viewport

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/picking"
	"github.com/Faultbox/meshview/internal/engine/scene"
)

// Axis gizmo geometry.
const (
	AxisLength = 1000
	// NoAxis is reported while no gizmo is hovered.
	NoAxis = "?"
)

var axisGizmos = []struct {
	name  string
	dir   mgl32.Vec3
	color mgl32.Vec3
}{
	{"X+", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
	{"X-", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}},
	{"Y+", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}},
	{"Y-", mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}},
	{"Z+", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
	{"Z-", mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 1}},
}

// Handle owns one initialized view: its surface, scene and camera. The
// owner must call Teardown on every exit path.
type Handle struct {
	Surface engine.Surface
	Scene   *scene.Scene
	Camera  *camera.ArcRotate
	Config  Config

	log          *zap.Logger
	stopLoop     func()
	removeResize func()
	tornDown     bool
}

// Initialize creates the surface and populates a new scene with the
// camera, light and axis gizmos, then starts the render loop and resize
// listener. onAxisHover receives a gizmo name on pointer-over and NoAxis
// on pointer-out.
func Initialize(eng engine.Engine, cfg Config, onAxisHover func(name string), log *zap.Logger) (*Handle, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if onAxisHover == nil {
		onAxisHover = func(string) {}
	}

	surface, err := eng.NewSurface(engine.SurfaceConfig{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Antialias: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating render surface: %w", err)
	}

	sc := scene.New(cfg.RightHanded)
	if cfg.ClearColor != (mgl32.Vec4{}) {
		sc.ClearColor = cfg.ClearColor
	}

	cam := camera.NewArcRotate(cfg.Camera.Alpha, cfg.Camera.Beta, cfg.Camera.Radius, mgl32.Vec3{})
	cam.Inertia = cfg.Camera.Inertia
	cam.WheelPrecision = cfg.Camera.WheelPrecision
	cam.MinZ = cfg.Camera.MinZ
	cam.LowerRadiusLimit = cfg.Camera.LowerRadiusLimit
	cam.UpperRadiusLimit = cfg.Camera.UpperRadiusLimit
	sc.Camera = cam

	sc.Light = scene.NewHemisphericLight("light", mgl32.Vec3{0, 1, 0})
	sc.Light.Intensity = 0.9

	for _, g := range axisGizmos {
		name := g.name
		line := scene.NewLines(name, mgl32.Vec3{}, g.dir.Mul(AxisLength), g.color)
		line.Actions().RegisterAction(scene.OnPointerOver, func() { onAxisHover(name) })
		line.Actions().RegisterAction(scene.OnPointerOut, func() { onAxisHover(NoAxis) })
		sc.AddLines(line)
	}

	h := &Handle{
		Surface: surface,
		Scene:   sc,
		Camera:  cam,
		Config:  cfg,
		log:     log,
	}
	h.stopLoop = surface.RunRenderLoop(h.render)
	h.removeResize = surface.OnResize(h.resized)

	log.Info("viewport initialized",
		zap.Bool("right_handed", cfg.RightHanded),
		zap.Bool("preserve_file_coordinates", cfg.PreserveFileCoordinates),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return h, nil
}

// Gizmo pick thresholds scale with the camera radius relative to this.
const referenceRadius = 20

func (h *Handle) ray(x, y float32) picking.Ray {
	w, ht := h.Surface.Size()
	return h.Camera.Ray(x, y, w, ht, h.Scene.RightHanded)
}

func (h *Handle) lineScale() float32 {
	return h.Camera.Radius / referenceRadius
}

func (h *Handle) render() {
	h.Camera.Update()
	h.Surface.Render(h.Scene, h.Camera)
}

// resized redraws immediately into the reallocated texture.
func (h *Handle) resized(width, height int) {
	h.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
	h.Surface.Render(h.Scene, h.Camera)
}

// Teardown stops the render loop, removes the resize listener and
// releases the surface and scene. It is safe to call more than once.
func (h *Handle) Teardown() {
	if h == nil || h.tornDown {
		return
	}
	h.tornDown = true
	h.stopLoop()
	h.removeResize()
	h.Surface.Dispose()
	h.Scene.Dispose()
	h.log.Info("viewport torn down")
}

// TornDown reports whether Teardown has run.
func (h *Handle) TornDown() bool {
	return h == nil || h.tornDown
}
