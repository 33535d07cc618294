package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// babylonFile is the subset of the .babylon scene format the viewer reads.
type babylonFile struct {
	Meshes []babylonMesh `json:"meshes"`
}

type babylonMesh struct {
	Name      string    `json:"name"`
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	Position  []float32 `json:"position"`
	Rotation  []float32 `json:"rotation"`
	Scaling   []float32 `json:"scaling"`
}

// importBabylon reads the meshes of a Babylon JSON scene. Each mesh's
// transform is baked into its vertices.
func importBabylon(_ context.Context, src Source, _ Options) ([]Part, error) {
	var file babylonFile
	if err := json.Unmarshal(src.Data, &file); err != nil {
		return nil, fmt.Errorf("babylon: %w", err)
	}

	parts := make([]Part, 0, len(file.Meshes))
	for _, m := range file.Meshes {
		if len(m.Positions) == 0 {
			continue
		}
		if len(m.Positions)%3 != 0 {
			return nil, fmt.Errorf("babylon mesh %q: positions not a multiple of 3", m.Name)
		}

		geom := scene.Geometry{
			Positions: vec3s(m.Positions),
			Indices:   m.Indices,
		}
		if len(geom.Indices) == 0 {
			geom.Indices = sequence(len(geom.Positions))
		}
		for _, i := range geom.Indices {
			if int(i) >= len(geom.Positions) {
				return nil, fmt.Errorf("babylon mesh %q: index %d out of range", m.Name, i)
			}
		}
		if len(m.Normals) == len(m.Positions) {
			geom.Normals = vec3s(m.Normals)
		}

		if transform, ok := babylonTransform(m); ok {
			geom.Transform(transform)
		}
		parts = append(parts, Part{Name: m.Name, Geometry: geom})
	}
	return parts, nil
}

// babylonTransform composes translation * rotation(yaw, pitch, roll) * scale.
func babylonTransform(m babylonMesh) (mgl32.Mat4, bool) {
	if len(m.Position) < 3 && len(m.Rotation) < 3 && len(m.Scaling) < 3 {
		return mgl32.Ident4(), false
	}
	t := mgl32.Ident4()
	if len(m.Position) >= 3 {
		t = mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	}
	r := mgl32.Ident4()
	if len(m.Rotation) >= 3 {
		r = mgl32.AnglesToQuat(m.Rotation[1], m.Rotation[0], m.Rotation[2], mgl32.YXZ).Mat4()
	}
	s := mgl32.Ident4()
	if len(m.Scaling) >= 3 {
		s = mgl32.Scale3D(m.Scaling[0], m.Scaling[1], m.Scaling[2])
	}
	return t.Mul4(r).Mul4(s), true
}

func vec3s(flat []float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(flat)/3)
	for i := range out {
		out[i] = mgl32.Vec3{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

func sequence(n int) []uint32 {
	out := make([]uint32, n-n%3)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
