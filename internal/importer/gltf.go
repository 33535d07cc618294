package importer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// importGLTF reads .gltf and .glb documents. Every triangle primitive of
// every mesh node in the default scene becomes one part, with the node's
// world transform baked in.
func importGLTF(ctx context.Context, src Source, _ Options) ([]Part, error) {
	var fsys fs.FS
	if src.Dir != "" {
		fsys = os.DirFS(src.Dir)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(bytes.NewReader(src.Data), fsys).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: %w", err)
	}

	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	w := gltfWalker{doc: doc, visited: make(map[int]bool)}
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.walk(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return w.parts, nil
}

type gltfWalker struct {
	doc     *gltf.Document
	visited map[int]bool
	parts   []Part
}

func (w *gltfWalker) walk(index int, parent mgl32.Mat4) error {
	if index < 0 || index >= len(w.doc.Nodes) {
		return fmt.Errorf("gltf: node %d out of range", index)
	}
	if w.visited[index] {
		return fmt.Errorf("gltf: node %d visited twice", index)
	}
	w.visited[index] = true

	node := w.doc.Nodes[index]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(w.doc.Meshes) {
			return fmt.Errorf("gltf: mesh %d out of range", *node.Mesh)
		}
		mesh := w.doc.Meshes[*node.Mesh]
		name := mesh.Name
		if node.Name != "" {
			name = node.Name
		}
		for _, prim := range mesh.Primitives {
			geom, ok, err := w.primitive(prim)
			if err != nil {
				return fmt.Errorf("gltf mesh %q: %w", name, err)
			}
			if !ok {
				continue
			}
			geom.Transform(world)
			w.parts = append(w.parts, Part{Name: name, Geometry: geom})
		}
	}

	for _, child := range node.Children {
		if err := w.walk(child, world); err != nil {
			return err
		}
	}
	return nil
}

// primitive decodes a triangle-list primitive. Other topologies are skipped.
func (w *gltfWalker) primitive(prim *gltf.Primitive) (scene.Geometry, bool, error) {
	var geom scene.Geometry
	if prim.Mode != gltf.PrimitiveTriangles {
		return geom, false, nil
	}
	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok || posIndex >= len(w.doc.Accessors) {
		return geom, false, nil
	}

	positions, err := modeler.ReadPosition(w.doc, w.doc.Accessors[posIndex], nil)
	if err != nil {
		return geom, false, fmt.Errorf("positions: %w", err)
	}
	geom.Positions = make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		geom.Positions[i] = mgl32.Vec3(p)
	}

	if nrmIndex, ok := prim.Attributes[gltf.NORMAL]; ok && nrmIndex < len(w.doc.Accessors) {
		normals, err := modeler.ReadNormal(w.doc, w.doc.Accessors[nrmIndex], nil)
		if err != nil {
			return geom, false, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			geom.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				geom.Normals[i] = mgl32.Vec3(n)
			}
		}
	}

	if prim.Indices != nil && *prim.Indices < len(w.doc.Accessors) {
		indices, err := modeler.ReadIndices(w.doc, w.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return geom, false, fmt.Errorf("indices: %w", err)
		}
		for _, i := range indices {
			if int(i) >= len(geom.Positions) {
				return geom, false, fmt.Errorf("index %d out of range", i)
			}
		}
		geom.Indices = indices
	} else {
		geom.Indices = sequence(len(geom.Positions))
	}
	return geom, true, nil
}

// nodeMatrix returns the local transform of node. An explicit matrix wins
// over translation, rotation and scale.
func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	if node.Matrix != [16]float64{} && node.Matrix != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range node.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := mgl32.Ident4()
	if tr := node.Translation; tr != [3]float64{} {
		t = mgl32.Translate3D(float32(tr[0]), float32(tr[1]), float32(tr[2]))
	}
	r := mgl32.Ident4()
	if rot := node.Rotation; rot != [4]float64{} && rot != gltf.DefaultRotation {
		q := mgl32.Quat{W: float32(rot[3]), V: mgl32.Vec3{float32(rot[0]), float32(rot[1]), float32(rot[2])}}
		r = q.Normalize().Mat4()
	}
	s := mgl32.Ident4()
	if sc := node.Scale; sc != [3]float64{} && sc != gltf.DefaultScale {
		s = mgl32.Scale3D(float32(sc[0]), float32(sc[1]), float32(sc[2]))
	}
	return t.Mul4(r).Mul4(s)
}
