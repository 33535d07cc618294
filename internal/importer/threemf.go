package importer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hpinc/go3mf"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// import3MF reads the mesh objects of the root model in file order.
// Build items and components are not expanded.
func import3MF(_ context.Context, src Source, _ Options) ([]Part, error) {
	var model go3mf.Model
	dec := go3mf.NewDecoder(bytes.NewReader(src.Data), int64(len(src.Data)))
	if err := dec.Decode(&model); err != nil {
		return nil, fmt.Errorf("3mf: %w", err)
	}

	var parts []Part
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		vertices := obj.Mesh.Vertices.Vertex
		geom := scene.Geometry{
			Positions: make([]mgl32.Vec3, len(vertices)),
			Indices:   make([]uint32, 0, len(obj.Mesh.Triangles.Triangle)*3),
		}
		for i, v := range vertices {
			geom.Positions[i] = mgl32.Vec3(v)
		}
		for _, tri := range obj.Mesh.Triangles.Triangle {
			a, b, c := tri.V1, tri.V2, tri.V3
			if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
				return nil, fmt.Errorf("3mf object %d: triangle index out of range", obj.ID)
			}
			geom.Indices = append(geom.Indices, a, b, c)
		}
		parts = append(parts, Part{Name: obj.Name, Geometry: geom})
	}
	return parts, nil
}
