// Package scene provides the viewer's scene graph: meshes, line gizmos, a
// hemispheric light and pointer action dispatch.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/picking"
)

// pickable is a node that can be hit by a ray and carry actions.
type pickable interface {
	Name() string
	actionManager() *ActionManager
	intersect(ray picking.Ray, scale float32) (float32, bool)
}

// Scene owns everything drawn in one view.
type Scene struct {
	RightHanded bool
	ClearColor  mgl32.Vec4

	Camera *camera.ArcRotate
	Light  *HemisphericLight

	meshes    []*Mesh
	lines     []*Lines
	hovered   pickable
	highlight *Mesh

	disposed bool
}

// New creates an empty scene.
func New(rightHanded bool) *Scene {
	return &Scene{
		RightHanded: rightHanded,
		ClearColor:  mgl32.Vec4{0.2, 0.2, 0.3, 1},
	}
}

// AddMesh appends m to the scene.
func (s *Scene) AddMesh(m *Mesh) {
	s.meshes = append(s.meshes, m)
}

// RemoveMesh removes m, reporting whether it was present.
func (s *Scene) RemoveMesh(m *Mesh) bool {
	for i, existing := range s.meshes {
		if existing == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			if s.hovered == pickable(m) {
				s.hovered = nil
			}
			if s.highlight == m {
				s.highlight = nil
			}
			return true
		}
	}
	return false
}

// Meshes returns the meshes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// MeshByName returns the first mesh with the given name, or nil.
func (s *Scene) MeshByName(name string) *Mesh {
	for _, m := range s.meshes {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// AddLines appends a line gizmo to the scene.
func (s *Scene) AddLines(l *Lines) {
	s.lines = append(s.lines, l)
}

// Lines returns the line gizmos in insertion order.
func (s *Scene) Lines() []*Lines {
	return s.lines
}

// Hovered returns the name of the node under the pointer, or "".
func (s *Scene) Hovered() string {
	if s.hovered == nil {
		return ""
	}
	return s.hovered.Name()
}

// PointerMove updates the hovered node from ray, firing OnPointerOut on the
// node left and OnPointerOver on the node entered. Only nodes with pointer
// actions take part. lineScale multiplies line hit thresholds.
func (s *Scene) PointerMove(ray picking.Ray, lineScale float32) {
	if s.disposed {
		return
	}
	next := s.closest(ray, lineScale, func(p pickable) bool {
		return p.actionManager().HasPointerTriggers()
	})
	s.setHovered(next)
}

// PointerLeave clears the hovered node, firing its OnPointerOut actions.
func (s *Scene) PointerLeave() {
	if s.disposed {
		return
	}
	s.setHovered(nil)
}

func (s *Scene) setHovered(next pickable) {
	if next == s.hovered {
		return
	}

	prev := s.hovered
	s.hovered = next
	if prev != nil {
		if l, ok := prev.(*Lines); ok {
			l.Hovered = false
		}
		prev.actionManager().Process(OnPointerOut)
	}
	if next != nil {
		if l, ok := next.(*Lines); ok {
			l.Hovered = true
		}
		next.actionManager().Process(OnPointerOver)
	}
}

// Pick finds the closest visible mesh (or line with a pick action) on ray
// and fires its OnPick actions. It returns the picked mesh, if any.
func (s *Scene) Pick(ray picking.Ray, lineScale float32) *Mesh {
	if s.disposed {
		return nil
	}
	best := s.closest(ray, lineScale, func(p pickable) bool {
		if _, ok := p.(*Mesh); ok {
			return true
		}
		return p.actionManager().HasTrigger(OnPick)
	})
	if best == nil {
		return nil
	}

	best.actionManager().Process(OnPick)
	m, _ := best.(*Mesh)
	return m
}

func (s *Scene) closest(ray picking.Ray, lineScale float32, want func(pickable) bool) pickable {
	var best pickable
	bestT := float32(0)
	consider := func(p pickable) {
		if !want(p) {
			return
		}
		t, ok := p.intersect(ray, lineScale)
		if ok && (best == nil || t < bestT) {
			best, bestT = p, t
		}
	}
	for _, m := range s.meshes {
		consider(m)
	}
	for _, l := range s.lines {
		consider(l)
	}
	return best
}

// Dispose drops all nodes and actions. Further pointer dispatch is ignored.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	for _, m := range s.meshes {
		m.actions.Clear()
	}
	for _, l := range s.lines {
		l.actions.Clear()
	}
	s.meshes = nil
	s.lines = nil
	s.hovered = nil
	s.highlight = nil
	s.disposed = true
}

// Disposed reports whether Dispose has been called.
func (s *Scene) Disposed() bool {
	return s.disposed
}
