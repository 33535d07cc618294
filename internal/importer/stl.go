package importer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hschendel/stl"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// importSTL reads ASCII or binary STL into one part. Every facet keeps its
// own three vertices so facet normals stay flat.
func importSTL(_ context.Context, src Source, opts Options) ([]Part, error) {
	solid, err := stl.ReadAll(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}

	geom := scene.Geometry{
		Positions: make([]mgl32.Vec3, 0, len(solid.Triangles)*3),
		Normals:   make([]mgl32.Vec3, 0, len(solid.Triangles)*3),
		Indices:   make([]uint32, 0, len(solid.Triangles)*3),
	}

	for _, tri := range solid.Triangles {
		var corners [3]mgl32.Vec3
		for i, v := range tri.Vertices {
			corners[i] = stlPoint(v, opts)
		}
		n := stlPoint(tri.Normal, opts)
		if n.Len() < 1e-6 {
			n = corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0]))
		}
		if n.Len() > 1e-12 {
			n = n.Normalize()
		}
		if !opts.PreserveFileCoordinates {
			// Swapping two axes mirrors the mesh; restore the winding.
			corners[1], corners[2] = corners[2], corners[1]
		}

		base := uint32(len(geom.Positions))
		for _, c := range corners {
			geom.Positions = append(geom.Positions, c)
			geom.Normals = append(geom.Normals, n)
		}
		geom.Indices = append(geom.Indices, base, base+1, base+2)
	}

	return []Part{{Name: solid.Name, Geometry: geom}}, nil
}

// stlPoint converts an STL vector, swapping Y and Z unless the file
// coordinates are preserved.
func stlPoint(v stl.Vec3, opts Options) mgl32.Vec3 {
	if opts.PreserveFileCoordinates {
		return mgl32.Vec3{v[0], v[1], v[2]}
	}
	return mgl32.Vec3{v[0], v[2], v[1]}
}
