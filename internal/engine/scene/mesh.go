package scene

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/picking"
)

var nextID atomic.Uint64

// Mesh is one drawable object owned by a Scene.
type Mesh struct {
	id       uint64
	name     string
	position mgl32.Vec3
	rotation mgl32.Quat
	scaling  mgl32.Vec3
	geometry Geometry
	bounds   picking.AABB

	// Source is the file the mesh was imported from.
	Source  string
	Visible bool
	Color   mgl32.Vec3

	actions *ActionManager
}

// NewMesh creates a visible mesh with identity transform.
func NewMesh(name string, geom Geometry) *Mesh {
	if len(geom.Normals) != len(geom.Positions) {
		geom.ComputeNormals()
	}
	return &Mesh{
		id:       nextID.Add(1),
		name:     name,
		rotation: mgl32.QuatIdent(),
		scaling:  mgl32.Vec3{1, 1, 1},
		geometry: geom,
		bounds:   geom.Bounds(),
		Visible:  true,
		Color:    mgl32.Vec3{0.8, 0.8, 0.8},
	}
}

// ID is unique per process and stable for the mesh's lifetime.
func (m *Mesh) ID() uint64 { return m.id }

func (m *Mesh) Name() string        { return m.name }
func (m *Mesh) SetName(name string) { m.name = name }

func (m *Mesh) Position() mgl32.Vec3     { return m.position }
func (m *Mesh) SetPosition(p mgl32.Vec3) { m.position = p }

func (m *Mesh) Scaling() mgl32.Vec3 { return m.scaling }

// SetScaling sets the per-axis scale.
func (m *Mesh) SetScaling(s mgl32.Vec3) { m.scaling = s }

// Rotation returns the current orientation.
func (m *Mesh) Rotation() mgl32.Quat { return m.rotation }

// Rotate composes a rotation of amount radians about axis. Local rotations
// are applied in the mesh frame, World rotations in the scene frame.
func (m *Mesh) Rotate(axis Axis, amount float32, space Space) {
	r := mgl32.QuatRotate(amount, axis.Vec())
	if space == World {
		m.rotation = r.Mul(m.rotation)
	} else {
		m.rotation = m.rotation.Mul(r)
	}
	m.rotation = m.rotation.Normalize()
}

// ResetRotation sets the orientation back to identity.
func (m *Mesh) ResetRotation() {
	m.rotation = mgl32.QuatIdent()
}

// Geometry returns the mesh geometry. Callers must not modify it.
func (m *Mesh) Geometry() *Geometry { return &m.geometry }

// LocalBounds returns the bounding box in mesh space.
func (m *Mesh) LocalBounds() picking.AABB { return m.bounds }

// WorldMatrix returns translation * rotation * scale.
func (m *Mesh) WorldMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(m.position[0], m.position[1], m.position[2])
	s := mgl32.Scale3D(m.scaling[0], m.scaling[1], m.scaling[2])
	return t.Mul4(m.rotation.Mat4()).Mul4(s)
}

// WorldBounds returns the world-space box enclosing the transformed local box.
func (m *Mesh) WorldBounds() picking.AABB {
	return picking.TransformAABB(m.bounds, m.WorldMatrix())
}

// Actions returns the mesh action manager, creating it on first use.
func (m *Mesh) Actions() *ActionManager {
	if m.actions == nil {
		m.actions = NewActionManager()
	}
	return m.actions
}

func (m *Mesh) actionManager() *ActionManager { return m.actions }

// intersect returns the nearest triangle hit. The world box is tested
// first; triangles are tested in mesh space.
func (m *Mesh) intersect(ray picking.Ray, _ float32) (float32, bool) {
	if !m.Visible || m.geometry.Empty() {
		return 0, false
	}
	if _, hit := ray.IntersectAABB(m.WorldBounds()); !hit {
		return 0, false
	}

	world := m.WorldMatrix()
	if world.Det() == 0 {
		return 0, false
	}
	local := ray.Transform(world.Inv())

	g := &m.geometry
	best, found := float32(0), false
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		if int(max(a, b, c)) >= len(g.Positions) {
			continue
		}
		t, hit := local.IntersectTriangle(g.Positions[a], g.Positions[b], g.Positions[c])
		if hit && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}
