// Package viewport owns the render surface lifecycle and the mesh import
// and selection pipeline. All methods except Load and LoadFiles must be
// called on the render thread.
package viewport

import (
	"errors"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/editor"
	"github.com/Faultbox/meshview/internal/engine"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/importer"
)

// ErrTornDown is returned when an operation needs a view that has been
// torn down or replaced.
var ErrTornDown = errors.New("viewport torn down")

// Selection is the mesh being edited. PanelOpen implies Mesh != nil.
type Selection struct {
	Mesh      *scene.Mesh
	PanelOpen bool
}

// Controller drives one view and hands picked meshes to the editor panel.
type Controller struct {
	eng      engine.Engine
	registry *importer.Registry
	panel    *editor.Panel
	log      *zap.Logger

	mu     sync.Mutex // guards handle for Load
	handle *Handle

	hoveredAxis string
}

// New creates a controller without a view; call Initialize next.
func New(eng engine.Engine, registry *importer.Registry, panel *editor.Panel, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if registry == nil {
		registry = importer.Default()
	}
	if panel == nil {
		panel = editor.New(log)
	}
	return &Controller{
		eng:         eng,
		registry:    registry,
		panel:       panel,
		log:         log,
		hoveredAxis: NoAxis,
	}
}

// Initialize tears down the current view, if any, and creates a new one
// from cfg. On failure no view is live.
func (c *Controller) Initialize(cfg Config) error {
	c.Teardown()

	h, err := Initialize(c.eng, cfg, c.SetHoveredAxis, c.log)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.handle = h
	c.mu.Unlock()
	return nil
}

// Reconfigure rebuilds the view with cfg. Meshes and the selection are
// discarded with the old scene.
func (c *Controller) Reconfigure(cfg Config) error {
	c.log.Info("reconfiguring viewport",
		zap.Bool("right_handed", cfg.RightHanded),
		zap.Bool("preserve_file_coordinates", cfg.PreserveFileCoordinates),
	)
	return c.Initialize(cfg)
}

// Teardown closes the panel and releases the current view.
func (c *Controller) Teardown() {
	c.panel.OnClose()
	c.hoveredAxis = NoAxis

	c.mu.Lock()
	h := c.handle
	c.handle = nil
	c.mu.Unlock()

	h.Teardown()
}

// Handle returns the live view, or nil.
func (c *Controller) Handle() *Handle {
	return c.handle
}

// Panel returns the editor panel fed by this controller.
func (c *Controller) Panel() *editor.Panel {
	return c.panel
}

// Frame runs the view's render loop once.
func (c *Controller) Frame() {
	if c.handle != nil {
		c.handle.Scene.SetHighlight(c.Selection().Mesh)
		c.handle.Surface.Frame()
	}
}

// SetHoveredAxis sets the hovered axis label; NoAxis clears it.
func (c *Controller) SetHoveredAxis(name string) {
	c.hoveredAxis = name
}

// HoveredAxis returns the hovered axis label.
func (c *Controller) HoveredAxis() string {
	return c.hoveredAxis
}

// Select opens the panel on m, replacing any current selection. A nil
// mesh closes the panel.
func (c *Controller) Select(m *scene.Mesh) {
	if m == nil {
		c.ClosePanel()
		return
	}
	c.panel.Open(m, func(t editor.Transform) {
		c.ApplyTransform(m, t.Position, t.Rotation)
	})
	c.log.Debug("mesh selected", zap.String("mesh", m.Name()))
}

// ClosePanel clears the selection.
func (c *Controller) ClosePanel() {
	c.panel.OnClose()
}

// Selection reports the mesh being edited.
func (c *Controller) Selection() Selection {
	m, _ := c.panel.Target().(*scene.Mesh)
	return Selection{Mesh: m, PanelOpen: m != nil}
}

// ApplyTransform sets m's position, resets its rotation and applies
// rotation as local rotations about X, then Y, then Z. It closes the
// panel. A nil mesh is ignored.
func (c *Controller) ApplyTransform(m *scene.Mesh, position, rotation mgl32.Vec3) {
	if m == nil {
		return
	}
	m.SetPosition(position)
	m.ResetRotation()
	for _, axis := range scene.Axes {
		m.Rotate(axis, rotation[axis], scene.Local)
	}
	c.ClosePanel()
}

// PointerMove dispatches pointer-over and pointer-out actions for the
// surface pixel (x, y).
func (c *Controller) PointerMove(x, y float32) {
	h := c.handle
	if h == nil {
		return
	}
	h.Scene.PointerMove(h.ray(x, y), h.lineScale())
}

// PointerLeave fires pointer-out on the hovered node when the pointer
// leaves the surface.
func (c *Controller) PointerLeave() {
	if h := c.handle; h != nil {
		h.Scene.PointerLeave()
	}
}

// PointerPick fires the pick action of the node under (x, y) and returns
// the picked mesh, if any.
func (c *Controller) PointerPick(x, y float32) *scene.Mesh {
	h := c.handle
	if h == nil {
		return nil
	}
	return h.Scene.Pick(h.ray(x, y), h.lineScale())
}

// Orbit rotates the camera by a pointer drag in pixels.
func (c *Controller) Orbit(dx, dy float32) {
	if c.handle != nil {
		c.handle.Camera.HandleDrag(dx, dy)
	}
}

// Zoom moves the camera by wheel notches; positive zooms in.
func (c *Controller) Zoom(notches float32) {
	if c.handle != nil {
		c.handle.Camera.HandleWheel(notches)
	}
}
