package viewport

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/importer"
)

// Result is the outcome of importing one file.
type Result struct {
	File  string
	Parts []importer.Part
	Err   error

	// Meshes is filled by Commit, in part order.
	Meshes []*scene.Mesh
}

// Batch holds decoded files in input order, ready to commit to the view
// that was live when they were loaded.
type Batch struct {
	Results []Result

	handle *Handle
}

// Failures returns the results whose import failed.
func (b *Batch) Failures() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Meshes returns every committed mesh in import order.
func (b *Batch) Meshes() []*scene.Mesh {
	var out []*scene.Mesh
	for _, r := range b.Results {
		out = append(out, r.Meshes...)
	}
	return out
}

// Load decodes sources concurrently. It does not touch the scene and may
// run off the render thread. Per-file failures are recorded in the batch;
// only cancellation of ctx returns an error.
func (c *Controller) Load(ctx context.Context, sources []importer.Source) (*Batch, error) {
	return c.load(ctx, len(sources), func(i int) (importer.Source, error) {
		return sources[i], nil
	})
}

// LoadFiles reads and decodes the files at paths, like Load.
func (c *Controller) LoadFiles(ctx context.Context, paths []string) (*Batch, error) {
	return c.load(ctx, len(paths), func(i int) (importer.Source, error) {
		src, err := importer.ReadFile(paths[i])
		if err != nil {
			return importer.Source{Name: filepath.Base(paths[i])}, err
		}
		return src, nil
	})
}

func (c *Controller) load(ctx context.Context, n int, source func(i int) (importer.Source, error)) (*Batch, error) {
	c.mu.Lock()
	h := c.handle
	c.mu.Unlock()
	if h == nil {
		return nil, ErrTornDown
	}

	opts := importer.Options{PreserveFileCoordinates: h.Config.PreserveFileCoordinates}
	batch := &Batch{Results: make([]Result, n), handle: h}

	var g errgroup.Group
	g.SetLimit(max(h.Config.MaxParallel, 1))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			res := &batch.Results[i]
			src, err := source(i)
			res.File = src.Name
			if err != nil {
				res.Err = err
				return nil
			}
			res.Parts, res.Err = c.decode(ctx, src, opts)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}

// decode runs the importer for src. A panicking decoder fails only its own
// file.
func (c *Controller) decode(ctx context.Context, src importer.Source, opts importer.Options) (parts []importer.Part, err error) {
	defer func() {
		if r := recover(); r != nil {
			parts = nil
			err = fmt.Errorf("importing %s: panic: %v", src.Name, r)
		}
	}()
	return c.registry.Import(ctx, src, opts)
}

// Commit adds the decoded meshes to the scene in file order, names them
// <base>_mesh_<index> and registers their pick actions. Failed files are
// logged and skipped. The first committed mesh is selected. Commit must
// run on the render thread.
func (c *Controller) Commit(b *Batch) ([]*scene.Mesh, error) {
	if b.handle.TornDown() || b.handle != c.handle {
		return nil, ErrTornDown
	}
	sc := b.handle.Scene

	for i := range b.Results {
		res := &b.Results[i]
		if res.Err != nil {
			c.log.Error("import failed", zap.String("file", res.File), zap.Error(res.Err))
			continue
		}

		src := importer.Source{Name: res.File}
		scale := mgl32.Vec3{1, 1, 1}
		if src.Ext() == ".stl" {
			s := b.handle.Config.STLScale
			scale = mgl32.Vec3{s, s, s}
		}

		for j, part := range res.Parts {
			m := scene.NewMesh(fmt.Sprintf("%s_mesh_%d", src.BaseName(), j), part.Geometry)
			m.Source = res.File
			m.SetScaling(scale)
			m.Actions().RegisterAction(scene.OnPick, func() { c.Select(m) })
			sc.AddMesh(m)
			res.Meshes = append(res.Meshes, m)
		}
		c.log.Info("imported file",
			zap.String("file", res.File),
			zap.Int("meshes", len(res.Meshes)),
		)
	}

	meshes := b.Meshes()
	if len(meshes) > 0 {
		c.Select(meshes[0])
	}
	return meshes, nil
}

// ImportFiles loads and commits sources in one call, on the caller's
// thread.
func (c *Controller) ImportFiles(ctx context.Context, sources []importer.Source) (*Batch, error) {
	b, err := c.Load(ctx, sources)
	if err != nil {
		return nil, err
	}
	if _, err := c.Commit(b); err != nil {
		return nil, err
	}
	return b, nil
}
