package importer

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// importOBJ returns one part per OBJ object. Polygons are fan-triangulated.
// Materials are ignored.
func importOBJ(_ context.Context, src Source, _ Options) ([]Part, error) {
	// Faces before the first "o" statement need an object to belong to.
	name := src.BaseName()
	if name == "" {
		name = defaultOBJObject
	}
	body, err := stripNamelessGroups(src.Data)
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	// The decoder always parses the material reader; a nil one panics.
	dec, err := obj.DecodeReader(
		io.MultiReader(strings.NewReader("o "+name+"\n"), bytes.NewReader(body)),
		strings.NewReader(""),
	)
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	vertexCount := len(dec.Vertices) / 3
	parts := make([]Part, 0, len(dec.Objects))
	for _, object := range dec.Objects {
		geom, err := objGeometry(dec, &object, vertexCount)
		if err != nil {
			return nil, fmt.Errorf("obj object %q: %w", object.Name, err)
		}
		if geom.Empty() {
			continue
		}
		parts = append(parts, Part{Name: object.Name, Geometry: geom})
	}
	return parts, nil
}

// defaultOBJObject names faces outside any object when the file name has
// no base.
const defaultOBJObject = "object"

// stripNamelessGroups drops bare "o" and "g" lines, which reset to the
// default group and are rejected by the decoder. Faces that follow stay
// in the current object.
func stripNamelessGroups(data []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(data))
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if fields := bytes.Fields(line); len(fields) == 1 {
			if kw := string(fields[0]); kw == "o" || kw == "g" {
				continue
			}
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// objGeometry compacts the vertices referenced by object into a local
// vertex list.
func objGeometry(dec *obj.Decoder, object *obj.Object, vertexCount int) (scene.Geometry, error) {
	var geom scene.Geometry
	remap := make(map[int]uint32)

	index := func(v int) (uint32, error) {
		if v < 0 || v >= vertexCount {
			return 0, fmt.Errorf("vertex index %d out of range", v)
		}
		if i, ok := remap[v]; ok {
			return i, nil
		}
		i := uint32(len(geom.Positions))
		geom.Positions = append(geom.Positions, mgl32.Vec3{
			dec.Vertices[3*v], dec.Vertices[3*v+1], dec.Vertices[3*v+2],
		})
		remap[v] = i
		return i, nil
	}

	for _, face := range object.Faces {
		if len(face.Vertices) < 3 {
			continue
		}
		first, err := index(face.Vertices[0])
		if err != nil {
			return geom, err
		}
		for k := 1; k+1 < len(face.Vertices); k++ {
			b, err := index(face.Vertices[k])
			if err != nil {
				return geom, err
			}
			c, err := index(face.Vertices[k+1])
			if err != nil {
				return geom, err
			}
			geom.Indices = append(geom.Indices, first, b, c)
		}
	}
	return geom, nil
}
