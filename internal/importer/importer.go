// Package importer decodes mesh files into scene geometry. Formats are
// looked up by file extension in a Registry.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

var (
	// ErrUnsupportedFormat is returned for extensions without an importer.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNoGeometry is returned when a file parses but holds no triangles.
	ErrNoGeometry = errors.New("no geometry")
)

// AcceptedExtensions are offered by the file picker. Not all of them have
// an importer; see Default.
var AcceptedExtensions = []string{
	".gltf", ".glb", ".babylon", ".obj", ".stl", ".fbx",
	".dae", ".3ds", ".blend", ".ply", ".3mf",
}

// Source is one file to import.
type Source struct {
	Name string // File name including extension
	Dir  string // Directory for external resources, may be empty
	Data []byte
}

// ReadFile loads a Source from disk.
func ReadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Source{
		Name: filepath.Base(path),
		Dir:  filepath.Dir(path),
		Data: data,
	}, nil
}

// Ext returns the lower-case extension of the source name.
func (s Source) Ext() string {
	return Ext(s.Name)
}

// BaseName returns the file name up to its first dot.
func (s Source) BaseName() string {
	name := filepath.Base(s.Name)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Ext returns the lower-case extension of name, including the dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsAccepted reports whether name has one of AcceptedExtensions.
func IsAccepted(name string) bool {
	ext := Ext(name)
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// Options controls coordinate handling during import.
type Options struct {
	// PreserveFileCoordinates keeps the file's axes. When false, Z-up
	// formats are converted to Y-up.
	PreserveFileCoordinates bool
}

// Part is one mesh decoded from a file, in file order.
type Part struct {
	Name     string // Name found in the file, may be empty
	Geometry scene.Geometry
}

// Importer decodes one format.
type Importer interface {
	Import(ctx context.Context, src Source, opts Options) ([]Part, error)
}

// ImporterFunc adapts a function to Importer.
type ImporterFunc func(ctx context.Context, src Source, opts Options) ([]Part, error)

// Import implements Importer.
func (f ImporterFunc) Import(ctx context.Context, src Source, opts Options) ([]Part, error) {
	return f(ctx, src, opts)
}

// Registry maps lower-case extensions to importers.
type Registry struct {
	importers map[string]Importer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{importers: make(map[string]Importer)}
}

// Default returns a registry with every built-in importer. .fbx, .dae,
// .3ds and .blend are accepted by the picker but have no importer.
func Default() *Registry {
	r := NewRegistry()
	r.Register(".gltf", ImporterFunc(importGLTF))
	r.Register(".glb", ImporterFunc(importGLTF))
	r.Register(".obj", ImporterFunc(importOBJ))
	r.Register(".stl", ImporterFunc(importSTL))
	r.Register(".ply", ImporterFunc(importPLY))
	r.Register(".babylon", ImporterFunc(importBabylon))
	r.Register(".3mf", ImporterFunc(import3MF))
	return r
}

// Register adds or replaces the importer for ext.
func (r *Registry) Register(ext string, imp Importer) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.importers[ext] = imp
}

// Lookup returns the importer for name's extension.
func (r *Registry) Lookup(name string) (Importer, error) {
	ext := Ext(name)
	imp, ok := r.importers[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return imp, nil
}

// Import decodes src with the importer registered for its extension.
// Parts without triangles are dropped; ErrNoGeometry is returned when
// nothing is left.
func (r *Registry) Import(ctx context.Context, src Source, opts Options) ([]Part, error) {
	imp, err := r.Lookup(src.Name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts, err := imp.Import(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", src.Name, err)
	}

	kept := parts[:0]
	for _, p := range parts {
		if p.Geometry.Empty() {
			continue
		}
		if len(p.Geometry.Normals) != len(p.Geometry.Positions) {
			p.Geometry.ComputeNormals()
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("importing %s: %w", src.Name, ErrNoGeometry)
	}
	return kept, nil
}
