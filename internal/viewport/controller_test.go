package viewport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/meshview/internal/engine/enginetest"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/importer"
)

const partSTL = `solid part
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 10 0 0
    vertex 0 10 0
  endloop
endfacet
endsolid part
`

const frameOBJ = "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"

// cube is a 2x2x2 box centered on the origin.
func cube() scene.Geometry {
	return scene.Geometry{
		Positions: []mgl32.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // back
			4, 5, 6, 4, 6, 7, // front
			0, 1, 5, 0, 5, 4, // bottom
			3, 7, 6, 3, 6, 2, // top
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
}

func cubeImporter(_ context.Context, _ importer.Source, _ importer.Options) ([]importer.Part, error) {
	return []importer.Part{{Name: "cube", Geometry: cube()}}, nil
}

type fixture struct {
	eng  *enginetest.Engine
	c    *Controller
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	registry := importer.Default()
	registry.Register(".cube", importer.ImporterFunc(cubeImporter))

	eng := enginetest.New()
	c := New(eng, registry, nil, zap.New(core))
	require.NoError(t, c.Initialize(cfg))
	t.Cleanup(c.Teardown)
	return &fixture{eng: eng, c: c, logs: logs}
}

func src(name, data string) importer.Source {
	return importer.Source{Name: name, Data: []byte(data)}
}

// project returns the surface pixel showing world point p.
func project(h *Handle, p mgl32.Vec3) (float32, float32) {
	w, ht := h.Surface.Size()
	viewProj := h.Camera.ProjectionMatrix(float32(w) / float32(ht)).Mul4(h.Camera.ViewMatrix(h.Scene.RightHanded))
	clip := viewProj.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return (ndc.X() + 1) / 2 * float32(w), (1 - ndc.Y()) / 2 * float32(ht)
}

func TestInitializeBuildsScene(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	h := f.c.Handle()
	require.NotNil(t, h)

	require.Len(t, f.eng.Surfaces, 1)
	assert.Equal(t, 1280, f.eng.Last().Config.Width)
	loops, resizes := f.eng.Last().Active()
	assert.Equal(t, 1, loops)
	assert.Equal(t, 1, resizes)

	cam := h.Camera
	assert.InDelta(t, -0.785398, cam.Alpha, 1e-5)
	assert.InDelta(t, 0.785398, cam.Beta, 1e-5)
	assert.Equal(t, float32(20), cam.Radius)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)
	assert.Equal(t, float32(0.9), cam.Inertia)
	assert.Equal(t, float32(50), cam.WheelPrecision)
	assert.Equal(t, float32(0.1), cam.MinZ)
	assert.Equal(t, float32(0.5), cam.LowerRadiusLimit)
	assert.Equal(t, float32(100), cam.UpperRadiusLimit)
	assert.Same(t, cam, h.Scene.Camera)

	require.NotNil(t, h.Scene.Light)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, h.Scene.Light.Direction)

	var names []string
	for _, l := range h.Scene.Lines() {
		names = append(names, l.Name())
		assert.InDelta(t, AxisLength, l.To.Sub(l.From).Len(), 1e-3)
		assert.True(t, l.Actions().HasPointerTriggers())
	}
	assert.Equal(t, []string{"X+", "X-", "Y+", "Y-", "Z+", "Z-"}, names)
	assert.True(t, h.Scene.RightHanded)
	assert.Equal(t, NoAxis, f.c.HoveredAxis())
}

func TestInitializeSurfaceFailure(t *testing.T) {
	eng := enginetest.New()
	eng.Fail = true
	c := New(eng, nil, nil, nil)

	err := c.Initialize(DefaultConfig())
	require.ErrorIs(t, err, enginetest.ErrSurface)
	assert.Nil(t, c.Handle())

	_, err = c.Load(context.Background(), []importer.Source{src("part.stl", partSTL)})
	assert.ErrorIs(t, err, ErrTornDown)
	c.Teardown()
}

func TestFrameRendersScene(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	f.c.Frame()
	f.c.Frame()

	s := f.eng.Last()
	assert.Equal(t, 2, s.Renders)
	assert.Same(t, f.c.Handle().Scene, s.LastScene)
}

func TestResizeRendersOnce(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	s := f.eng.Last()

	s.Resize(640, 480)
	s.Resize(640, 480)

	assert.Equal(t, 1, s.Renders)
}

func TestHandleTeardownIdempotent(t *testing.T) {
	eng := enginetest.New()
	h, err := Initialize(eng, DefaultConfig(), nil, nil)
	require.NoError(t, err)

	h.Teardown()
	h.Teardown()

	s := eng.Last()
	assert.Equal(t, 1, s.Disposed)
	loops, resizes := s.Active()
	assert.Zero(t, loops)
	assert.Zero(t, resizes)
	assert.True(t, h.Scene.Disposed())
	assert.True(t, h.TornDown())
}

func TestReconfigureDisposesExactlyOnce(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_, err := f.c.ImportFiles(context.Background(), []importer.Source{src("frame.obj", frameOBJ)})
	require.NoError(t, err)
	old := f.c.Handle()

	cfg := DefaultConfig()
	cfg.RightHanded = false
	require.NoError(t, f.c.Reconfigure(cfg))
	cfg.PreserveFileCoordinates = false
	require.NoError(t, f.c.Reconfigure(cfg))

	require.Len(t, f.eng.Surfaces, 3)
	for i, s := range f.eng.Surfaces[:2] {
		assert.Equal(t, 1, s.Disposed, "surface %d", i)
	}
	live := f.eng.Live()
	require.Len(t, live, 1)
	loops, resizes := live[0].Active()
	assert.Equal(t, 1, loops)
	assert.Equal(t, 1, resizes)

	assert.True(t, old.Scene.Disposed())
	assert.Empty(t, f.c.Handle().Scene.Meshes())
	assert.False(t, f.c.Handle().Scene.RightHanded)
	assert.Equal(t, Selection{}, f.c.Selection())
}

func TestImportScenario(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	batch, err := f.c.ImportFiles(context.Background(), []importer.Source{
		src("part.stl", partSTL),
		src("frame.obj", frameOBJ),
	})
	require.NoError(t, err)

	meshes := f.c.Handle().Scene.Meshes()
	require.Len(t, meshes, 2)
	assert.Equal(t, "part_mesh_0", meshes[0].Name())
	assert.Equal(t, "frame_mesh_0", meshes[1].Name())
	assert.Equal(t, mgl32.Vec3{0.001, 0.001, 0.001}, meshes[0].Scaling())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, meshes[1].Scaling())
	assert.Equal(t, "part.stl", meshes[0].Source)

	assert.Equal(t, Selection{Mesh: meshes[0], PanelOpen: true}, f.c.Selection())
	assert.Equal(t, meshes, batch.Meshes())
	assert.Empty(t, batch.Failures())

	f.c.Frame()
	assert.Same(t, meshes[0], f.c.Handle().Scene.Highlighted())
	f.c.ClosePanel()
	f.c.Frame()
	assert.Nil(t, f.c.Handle().Scene.Highlighted())
}

func TestImportNamesEveryPart(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	obj := "o a\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\no b\nf 1 3 2\n"

	_, err := f.c.ImportFiles(context.Background(), []importer.Source{src("two.parts.obj", obj)})
	require.NoError(t, err)

	var names []string
	for _, m := range f.c.Handle().Scene.Meshes() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"two_mesh_0", "two_mesh_1"}, names)
}

func TestImportSTLScaleIgnoresPreserveFlag(t *testing.T) {
	for _, preserve := range []bool{true, false} {
		cfg := DefaultConfig()
		cfg.PreserveFileCoordinates = preserve
		f := newFixture(t, cfg)

		_, err := f.c.ImportFiles(context.Background(), []importer.Source{
			src("PART.STL", partSTL),
			src("box.cube", ""),
		})
		require.NoError(t, err)

		meshes := f.c.Handle().Scene.Meshes()
		require.Len(t, meshes, 2)
		assert.Equal(t, mgl32.Vec3{0.001, 0.001, 0.001}, meshes[0].Scaling(), "preserve=%v", preserve)
		assert.Equal(t, mgl32.Vec3{1, 1, 1}, meshes[1].Scaling(), "preserve=%v", preserve)
	}
}

func TestImportFailureDoesNotAbortBatch(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	batch, err := f.c.ImportFiles(context.Background(), []importer.Source{
		src("part.stl", partSTL),
		src("broken.stl", "\x01\x02\x03"),
		src("scene.fbx", "Kaydara"),
		src("frame.obj", frameOBJ),
	})
	require.NoError(t, err)

	require.Len(t, batch.Results, 4)
	failures := batch.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "broken.stl", failures[0].File)
	assert.ErrorIs(t, failures[1].Err, importer.ErrUnsupportedFormat)

	succeeded := 0
	for _, r := range batch.Results {
		if r.Err == nil {
			succeeded++
			assert.Len(t, r.Meshes, 1)
		}
	}
	assert.Equal(t, 2, succeeded)

	logged := f.logs.FilterMessage("import failed").All()
	require.Len(t, logged, 2)
	assert.Equal(t, zapcore.ErrorLevel, logged[0].Level)
	assert.Equal(t, "broken.stl", logged[0].ContextMap()["file"])
	assert.Equal(t, "scene.fbx", logged[1].ContextMap()["file"])

	assert.Equal(t, "part_mesh_0", f.c.Selection().Mesh.Name())
}

func TestImportPanicFailsOnlyItsFile(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.c.registry.Register(".crash", importer.ImporterFunc(
		func(context.Context, importer.Source, importer.Options) ([]importer.Part, error) {
			panic("index out of range")
		}))

	batch, err := f.c.ImportFiles(context.Background(), []importer.Source{
		src("bad.crash", "x"),
		src("frame.obj", frameOBJ),
	})
	require.NoError(t, err)

	failures := batch.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "bad.crash", failures[0].File)
	assert.Contains(t, failures[0].Err.Error(), "panic")

	logged := f.logs.FilterMessage("import failed").All()
	require.Len(t, logged, 1)
	assert.Equal(t, "bad.crash", logged[0].ContextMap()["file"])
	assert.Equal(t, "frame_mesh_0", f.c.Selection().Mesh.Name())
}

func TestImportNothingKeepsPanelClosed(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	batch, err := f.c.ImportFiles(context.Background(), []importer.Source{src("broken.stl", "\x01")})
	require.NoError(t, err)

	assert.Len(t, batch.Failures(), 1)
	assert.Empty(t, f.c.Handle().Scene.Meshes())
	assert.False(t, f.c.Selection().PanelOpen)
}

func TestImportCancelled(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.c.ImportFiles(ctx, []importer.Source{src("part.stl", partSTL)})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.c.Handle().Scene.Meshes())
}

func TestLoadFiles(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.obj")
	require.NoError(t, os.WriteFile(path, []byte(frameOBJ), 0644))

	batch, err := f.c.LoadFiles(context.Background(), []string{path, filepath.Join(dir, "missing.stl")})
	require.NoError(t, err)
	meshes, err := f.c.Commit(batch)
	require.NoError(t, err)

	require.Len(t, meshes, 1)
	assert.Equal(t, "frame_mesh_0", meshes[0].Name())
	require.Len(t, batch.Failures(), 1)
	assert.Equal(t, "missing.stl", batch.Failures()[0].File)
}

func TestCommitAfterReconfigure(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	batch, err := f.c.Load(context.Background(), []importer.Source{src("frame.obj", frameOBJ)})
	require.NoError(t, err)
	require.NoError(t, f.c.Reconfigure(DefaultConfig()))

	_, err = f.c.Commit(batch)
	assert.ErrorIs(t, err, ErrTornDown)
	assert.Empty(t, f.c.Handle().Scene.Meshes())
}

func TestPickSelectsMesh(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_, err := f.c.ImportFiles(context.Background(), []importer.Source{src("box.cube", "")})
	require.NoError(t, err)
	f.c.ClosePanel()
	require.False(t, f.c.Selection().PanelOpen)

	w, h := f.c.Handle().Surface.Size()
	picked := f.c.PointerPick(float32(w)/2, float32(h)/2)

	require.NotNil(t, picked)
	assert.Equal(t, "box_mesh_0", picked.Name())
	assert.Equal(t, Selection{Mesh: picked, PanelOpen: true}, f.c.Selection())
}

func TestPickActionReplacesSelection(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_, err := f.c.ImportFiles(context.Background(), []importer.Source{
		src("part.stl", partSTL),
		src("frame.obj", frameOBJ),
	})
	require.NoError(t, err)

	frame := f.c.Handle().Scene.MeshByName("frame_mesh_0")
	frame.Actions().Process(scene.OnPick)

	assert.Same(t, frame, f.c.Selection().Mesh)
}

func TestPointerMoveHoversAxis(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	h := f.c.Handle()

	f.c.PointerMove(project(h, mgl32.Vec3{5, 0, 0}))
	assert.Equal(t, "X+", f.c.HoveredAxis())

	f.c.PointerMove(project(h, mgl32.Vec3{0, 5, 0}))
	assert.Equal(t, "Y+", f.c.HoveredAxis())
}

func TestPointerLeaveClearsAxis(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	h := f.c.Handle()

	f.c.PointerMove(project(h, mgl32.Vec3{5, 0, 0}))
	require.Equal(t, "X+", f.c.HoveredAxis())

	f.c.PointerLeave()
	assert.Equal(t, NoAxis, f.c.HoveredAxis())
}

func TestAxisActionsSetLabel(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	zMinus := f.c.Handle().Scene.Lines()[5]

	zMinus.Actions().Process(scene.OnPointerOver)
	assert.Equal(t, "Z-", f.c.HoveredAxis())
	zMinus.Actions().Process(scene.OnPointerOut)
	assert.Equal(t, NoAxis, f.c.HoveredAxis())
}

func TestApplyTransformOrder(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	rot := mgl32.Vec3{0.3, -1.2, 2.0}

	applied := scene.NewMesh("applied", cube())
	applied.Rotate(scene.AxisY, 0.7, scene.World) // discarded by the reset
	f.c.Select(applied)
	f.c.ApplyTransform(applied, mgl32.Vec3{1, 2, 3}, rot)

	manual := scene.NewMesh("manual", cube())
	manual.Rotate(scene.AxisX, rot.X(), scene.Local)
	manual.Rotate(scene.AxisY, rot.Y(), scene.Local)
	manual.Rotate(scene.AxisZ, rot.Z(), scene.Local)

	commuted := scene.NewMesh("commuted", cube())
	commuted.Rotate(scene.AxisZ, rot.Z(), scene.Local)
	commuted.Rotate(scene.AxisY, rot.Y(), scene.Local)
	commuted.Rotate(scene.AxisX, rot.X(), scene.Local)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, applied.Position())
	assert.True(t, applied.Rotation().ApproxEqualThreshold(manual.Rotation(), 1e-5))
	assert.False(t, applied.Rotation().ApproxEqualThreshold(commuted.Rotation(), 1e-3))
	assert.False(t, f.c.Selection().PanelOpen)
}

func TestApplyTransformNil(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_, err := f.c.ImportFiles(context.Background(), []importer.Source{src("frame.obj", frameOBJ)})
	require.NoError(t, err)

	f.c.ApplyTransform(nil, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})
	assert.True(t, f.c.Selection().PanelOpen)
}

func TestPanelSubmitAppliesTransform(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	_, err := f.c.ImportFiles(context.Background(), []importer.Source{src("frame.obj", frameOBJ)})
	require.NoError(t, err)
	m := f.c.Selection().Mesh
	require.NotNil(t, m)

	p := f.c.Panel()
	p.OnPositionFieldChange(scene.AxisX, "4")
	p.OnRotationSpaceChange(scene.World)
	p.OnRotationSliderChange(scene.AxisY, 0.5)
	p.OnSubmit()

	want := scene.NewMesh("want", cube())
	want.Rotate(scene.AxisY, 0.5, scene.Local)

	assert.Equal(t, mgl32.Vec3{4, 0, 0}, m.Position())
	assert.True(t, m.Rotation().ApproxEqualThreshold(want.Rotation(), 1e-5))
	assert.Equal(t, Selection{}, f.c.Selection())
}

func TestCameraInput(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	cam := f.c.Handle().Camera

	f.c.Zoom(2)
	f.c.Orbit(100, 0)
	f.c.Frame()

	assert.Less(t, cam.Radius, float32(20))
	assert.Less(t, cam.Alpha, float32(-0.785398))
}

func TestFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.RightHanded)
	assert.True(t, cfg.PreserveFileCoordinates)
	assert.Equal(t, float32(0.001), cfg.STLScale)
	assert.Equal(t, 4, cfg.MaxParallel)
	assert.Equal(t, mgl32.Vec4{0.2, 0.2, 0.3, 1}, cfg.ClearColor)
}
