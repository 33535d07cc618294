package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/picking"
)

// OutlineEdgeCount is the number of segments in a box outline.
const OutlineEdgeCount = 12

// OutlinePadding expands the selection box on all sides, in world units.
const OutlinePadding = 0.02

// OutlineColor is the selection box color.
var OutlineColor = mgl32.Vec3{1, 0.8, 0.2}

// BoxEdges returns the twelve edges of box grown by padding on every side:
// four on the bottom face, four on the top face, then the verticals.
func BoxEdges(box picking.AABB, padding float32) [OutlineEdgeCount][2]mgl32.Vec3 {
	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi := box.Min.Sub(pad), box.Max.Add(pad)

	corner := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
	b0 := corner(lo[0], lo[1], lo[2])
	b1 := corner(hi[0], lo[1], lo[2])
	b2 := corner(hi[0], lo[1], hi[2])
	b3 := corner(lo[0], lo[1], hi[2])
	t0 := corner(lo[0], hi[1], lo[2])
	t1 := corner(hi[0], hi[1], lo[2])
	t2 := corner(hi[0], hi[1], hi[2])
	t3 := corner(lo[0], hi[1], hi[2])

	return [OutlineEdgeCount][2]mgl32.Vec3{
		{b0, b1}, {b1, b2}, {b2, b3}, {b3, b0},
		{t0, t1}, {t1, t2}, {t2, t3}, {t3, t0},
		{b0, t0}, {b1, t1}, {b2, t2}, {b3, t3},
	}
}

// SetHighlight marks m as the selected mesh. Nil clears the highlight.
func (s *Scene) SetHighlight(m *Mesh) {
	s.highlight = m
}

// Highlighted returns the highlighted mesh, or nil.
func (s *Scene) Highlighted() *Mesh {
	return s.highlight
}

// SelectionOutline returns the world-space box around the highlighted mesh
// as line segments. The segments are not pickable and are rebuilt on every
// call so they follow the mesh transform.
func (s *Scene) SelectionOutline() []*Lines {
	m := s.highlight
	if m == nil || !m.Visible || m.Geometry().Empty() {
		return nil
	}
	edges := BoxEdges(m.WorldBounds(), OutlinePadding)
	out := make([]*Lines, 0, len(edges))
	for _, e := range edges {
		out = append(out, NewLines(m.Name()+"_outline", e[0], e[1], OutlineColor))
	}
	return out
}
