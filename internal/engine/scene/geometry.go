package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/picking"
)

// Geometry is an indexed triangle list in mesh-local space.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3 // Optional, same length as Positions
	Indices   []uint32     // Three per triangle
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Empty reports whether the geometry has nothing to draw.
func (g *Geometry) Empty() bool {
	return len(g.Positions) == 0 || len(g.Indices) < 3
}

// Bounds returns the local bounding box. Empty geometry yields a zero box.
func (g *Geometry) Bounds() picking.AABB {
	if len(g.Positions) == 0 {
		return picking.AABB{}
	}
	box := picking.AABB{Min: g.Positions[0], Max: g.Positions[0]}
	for _, p := range g.Positions[1:] {
		for axis := 0; axis < 3; axis++ {
			box.Min[axis] = math32.Min(box.Min[axis], p[axis])
			box.Max[axis] = math32.Max(box.Max[axis], p[axis])
		}
	}
	return box
}

// ComputeNormals replaces Normals with area-weighted vertex normals.
// Degenerate triangles contribute nothing.
func (g *Geometry) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		if int(i0) >= len(g.Positions) || int(i1) >= len(g.Positions) || int(i2) >= len(g.Positions) {
			continue
		}
		v0, v1, v2 := g.Positions[i0], g.Positions[i1], g.Positions[i2]
		// Cross product length is twice the triangle area.
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 1e-12 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	g.Normals = normals
}

// Transform applies m to every position and re-derives the normals.
func (g *Geometry) Transform(m mgl32.Mat4) {
	for i, p := range g.Positions {
		g.Positions[i] = mgl32.TransformCoordinate(p, m)
	}
	if len(g.Normals) > 0 {
		g.ComputeNormals()
	}
}
