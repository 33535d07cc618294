// Package glrender draws scenes into offscreen OpenGL framebuffers.
package glrender

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/framebuffer"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/shader"
)

// Engine creates OpenGL surfaces. The GL context must be current on the
// calling thread for every method of Engine and Surface.
type Engine struct {
	log *zap.Logger
}

// New creates an engine logging to log (nil means no logging).
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// NewSurface implements engine.Engine.
func (e *Engine) NewSurface(cfg engine.SurfaceConfig) (engine.Surface, error) {
	fb, err := framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating surface: %w", err)
	}

	meshProgram, err := shader.Compile(meshVertexShader, meshFragmentShader)
	if err != nil {
		fb.Destroy()
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	lineProgram, err := shader.Compile(lineVertexShader, lineFragmentShader)
	if err != nil {
		meshProgram.Delete()
		fb.Destroy()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	w, h := fb.Size()
	s := &Surface{
		Loop:        engine.NewLoop(w, h),
		log:         e.log,
		fb:          fb,
		meshProgram: meshProgram,
		lineProgram: lineProgram,
		lines:       newLineBuffer(),
		meshes:      make(map[uint64]*gpuMesh),
		antialias:   cfg.Antialias,
	}
	e.log.Debug("surface created", zap.Int("width", w), zap.Int("height", h))
	return s, nil
}

// Surface renders into a framebuffer texture.
type Surface struct {
	*engine.Loop
	log *zap.Logger

	fb          *framebuffer.Framebuffer
	meshProgram *shader.Program
	lineProgram *shader.Program
	lines       *lineBuffer
	meshes      map[uint64]*gpuMesh
	antialias   bool

	disposed bool
}

// Resize implements engine.Surface.
func (s *Surface) Resize(width, height int) {
	if s.disposed {
		return
	}
	if s.fb.Resize(width, height) {
		w, h := s.fb.Size()
		s.Loop.Resize(w, h)
	}
}

// Texture implements engine.Surface.
func (s *Surface) Texture() uint32 {
	if s.disposed {
		return 0
	}
	return s.fb.Texture()
}

// Snapshot implements engine.Surface.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	if s.disposed {
		return nil, errors.New("surface disposed")
	}
	return s.fb.ReadPixels(), nil
}

// Render implements engine.Surface.
func (s *Surface) Render(sc *scene.Scene, cam *camera.ArcRotate) {
	if s.disposed || sc == nil || cam == nil {
		return
	}

	end := s.fb.Begin()
	defer end()

	c := sc.ClearColor
	s.fb.Clear([4]float32{c[0], c[1], c[2], c[3]})

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	if s.antialias {
		gl.Enable(gl.LINE_SMOOTH)
	}

	w, h := s.fb.Size()
	view := cam.ViewMatrix(sc.RightHanded)
	projection := cam.ProjectionMatrix(float32(w) / float32(h))

	s.drawMeshes(sc, view, projection)
	lines := sc.Lines()
	s.drawLines(append(lines[:len(lines):len(lines)], sc.SelectionOutline()...), view, projection)

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (s *Surface) drawMeshes(sc *scene.Scene, view, projection mgl32.Mat4) {
	s.meshProgram.Use()
	s.meshProgram.SetMat4("uView", view)
	s.meshProgram.SetMat4("uProjection", projection)

	light := sc.Light
	if light == nil {
		light = scene.NewHemisphericLight("default", mgl32.Vec3{0, 1, 0})
	}
	s.meshProgram.SetVec3("uLightDir", light.Direction)
	s.meshProgram.SetVec3("uSkyColor", light.Diffuse)
	s.meshProgram.SetVec3("uGroundColor", light.Ground)
	s.meshProgram.SetFloat("uIntensity", light.Intensity)

	seen := make(map[uint64]bool, len(s.meshes))
	for _, m := range sc.Meshes() {
		seen[m.ID()] = true
		if !m.Visible || m.Geometry().Empty() {
			continue
		}
		gm, ok := s.meshes[m.ID()]
		if !ok {
			gm = uploadMesh(m.Geometry())
			s.meshes[m.ID()] = gm
			s.log.Debug("mesh uploaded",
				zap.String("mesh", m.Name()),
				zap.Int("vertices", m.Geometry().VertexCount()),
			)
		}
		s.meshProgram.SetMat4("uModel", m.WorldMatrix())
		s.meshProgram.SetVec3("uBaseColor", m.Color)
		gm.draw()
	}

	// Meshes gone from the scene release their buffers.
	for id, gm := range s.meshes {
		if !seen[id] {
			gm.destroy()
			delete(s.meshes, id)
		}
	}
}

func (s *Surface) drawLines(lines []*scene.Lines, view, projection mgl32.Mat4) {
	if len(lines) == 0 {
		return
	}
	s.lines.upload(lines)

	s.lineProgram.Use()
	s.lineProgram.SetMat4("uView", view)
	s.lineProgram.SetMat4("uProjection", projection)

	gl.BindVertexArray(s.lines.vao)
	for i, l := range lines {
		if !l.Visible {
			continue
		}
		color := l.Color
		if l.Hovered {
			color = color.Add(mgl32.Vec3{1, 1, 1}).Mul(0.5)
		}
		s.lineProgram.SetVec3("uColor", color)
		gl.DrawArrays(gl.LINES, int32(i*2), 2)
	}
}

// Dispose implements engine.Surface. It stops every render loop and
// resize listener and frees the GL resources.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.Loop.Close()

	for id, gm := range s.meshes {
		gm.destroy()
		delete(s.meshes, id)
	}
	s.lines.destroy()
	s.meshProgram.Delete()
	s.lineProgram.Delete()
	s.fb.Destroy()
	s.log.Debug("surface disposed")
}
