package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

type rotation struct {
	axis   scene.Axis
	amount float32
	space  scene.Space
}

type fakeTarget struct {
	name      string
	position  mgl32.Vec3
	rotations []rotation
	positions int
}

func (f *fakeTarget) Name() string { return f.name }
func (f *fakeTarget) Position() mgl32.Vec3 { return f.position }
func (f *fakeTarget) SetPosition(p mgl32.Vec3) { f.position = p; f.positions++ }
func (f *fakeTarget) Rotate(axis scene.Axis, amount float32, space scene.Space) {
	f.rotations = append(f.rotations, rotation{axis, amount, space})
}

func openPanel(t *testing.T) (*Panel, *fakeTarget) {
	t.Helper()
	target := &fakeTarget{name: "part_mesh_0", position: mgl32.Vec3{1, 2, 3}}
	p := New(nil)
	p.Open(target, nil)
	require.True(t, p.IsOpen())
	return p, target
}

func TestOpenReadsPosition(t *testing.T) {
	p, target := openPanel(t)

	assert.Equal(t, target.position, p.Position())
	assert.Equal(t, mgl32.Vec3{}, p.Rotation())
	assert.Equal(t, scene.Local, p.Space())
	assert.Equal(t, "2", p.positionText[scene.AxisY])
	assert.Equal(t, "0", p.rotationText[scene.AxisX])
}

func TestOpenNilCloses(t *testing.T) {
	p, _ := openPanel(t)
	p.Open(nil, nil)
	assert.False(t, p.IsOpen())
	assert.Nil(t, p.Target())
}

func TestPositionFieldWritesOneAxis(t *testing.T) {
	p, target := openPanel(t)

	// The mesh moved elsewhere since the panel opened.
	target.position = mgl32.Vec3{7, 2, 9}
	p.OnPositionFieldChange(scene.AxisY, "5")

	assert.Equal(t, mgl32.Vec3{7, 5, 9}, target.position)
	assert.Equal(t, float32(5), p.Position().Y())
}

func TestPositionFieldIgnoresBadInput(t *testing.T) {
	p, target := openPanel(t)

	for _, input := range []string{"", "abc", "1e", "NaN", "inf"} {
		p.OnPositionFieldChange(scene.AxisX, input)
	}

	assert.Equal(t, 0, target.positions)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, target.position)
	assert.Equal(t, "inf", p.positionText[scene.AxisX], "text keeps what the user typed")
}

func TestStepPosition(t *testing.T) {
	p, target := openPanel(t)

	p.StepPosition(scene.AxisZ, 2)
	assert.InDelta(t, 3.002, target.position.Z(), 1e-6)
	p.StepPosition(scene.AxisZ, -1)
	assert.InDelta(t, 3.001, target.position.Z(), 1e-6)
}

func TestRotationFieldIssuesDeltas(t *testing.T) {
	p, target := openPanel(t)

	p.OnRotationFieldChange(scene.AxisX, "1.57")
	require.Len(t, target.rotations, 1)
	assert.Equal(t, scene.AxisX, target.rotations[0].axis)
	assert.InDelta(t, 1.57, target.rotations[0].amount, 1e-6)
	assert.Equal(t, scene.Local, target.rotations[0].space)

	p.OnRotationFieldChange(scene.AxisX, "0")
	require.Len(t, target.rotations, 2)
	assert.InDelta(t, -1.57, target.rotations[1].amount, 1e-6)
}

func TestRotationSliderSharesField(t *testing.T) {
	p, target := openPanel(t)

	p.OnRotationFieldChange(scene.AxisY, "1")
	p.OnRotationSliderChange(scene.AxisY, 1.5)

	require.Len(t, target.rotations, 2)
	assert.InDelta(t, 0.5, target.rotations[1].amount, 1e-6)
	assert.Equal(t, "1.5", p.rotationText[scene.AxisY])
	assert.Equal(t, float32(1.5), p.Rotation().Y())
}

func TestRotationAxesIndependent(t *testing.T) {
	p, target := openPanel(t)

	p.OnRotationSliderChange(scene.AxisX, 0.5)
	p.OnRotationSliderChange(scene.AxisZ, 0.25)

	require.Len(t, target.rotations, 2)
	assert.Equal(t, scene.AxisZ, target.rotations[1].axis)
	assert.InDelta(t, 0.25, target.rotations[1].amount, 1e-6)
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0.25}, p.Rotation())
}

func TestRotationZeroDeltaIssuesNothing(t *testing.T) {
	p, target := openPanel(t)

	p.OnRotationFieldChange(scene.AxisZ, "0")
	p.OnRotationSliderChange(scene.AxisZ, 0)
	p.OnRotationFieldChange(scene.AxisZ, "bogus")

	assert.Empty(t, target.rotations)
}

func TestRotationSpaceChange(t *testing.T) {
	p, target := openPanel(t)

	p.OnRotationSliderChange(scene.AxisX, 0.1)
	p.OnRotationSpaceChange(scene.World)
	p.OnRotationSliderChange(scene.AxisX, 0.3)

	require.Len(t, target.rotations, 2)
	assert.Equal(t, scene.Local, target.rotations[0].space)
	assert.Equal(t, scene.World, target.rotations[1].space)
	assert.InDelta(t, 0.2, target.rotations[1].amount, 1e-6)
}

func TestStepRotation(t *testing.T) {
	p, target := openPanel(t)

	p.StepRotation(scene.AxisY, 3)
	require.Len(t, target.rotations, 1)
	assert.InDelta(t, 0.003, target.rotations[0].amount, 1e-6)
	assert.Equal(t, "0.003", p.rotationText[scene.AxisY])
}

func TestReopenResetsRotation(t *testing.T) {
	p, target := openPanel(t)

	p.OnRotationSliderChange(scene.AxisX, 1)
	p.OnRotationSpaceChange(scene.World)
	p.Open(target, nil)

	assert.Equal(t, mgl32.Vec3{}, p.Rotation())
	assert.Equal(t, scene.Local, p.Space())
}

func TestCloseKeepsEdits(t *testing.T) {
	p, target := openPanel(t)

	p.OnPositionFieldChange(scene.AxisX, "4")
	p.OnClose()

	assert.False(t, p.IsOpen())
	assert.Equal(t, mgl32.Vec3{4, 2, 3}, target.position)
	assert.Equal(t, 1, target.positions, "close does not write the mesh")
	assert.Empty(t, target.rotations)
}

func TestSubmitReportsThenCloses(t *testing.T) {
	target := &fakeTarget{name: "m", position: mgl32.Vec3{1, 0, 0}}
	p := New(nil)

	var got []Transform
	p.Open(target, func(tr Transform) {
		assert.True(t, p.IsOpen(), "submit runs before close")
		got = append(got, tr)
	})
	p.OnRotationSliderChange(scene.AxisZ, 0.5)
	p.OnSubmit()

	require.Len(t, got, 1)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, got[0].Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0.5}, got[0].Rotation)
	assert.False(t, p.IsOpen())

	p.OnSubmit()
	assert.Len(t, got, 1)
}

func TestClosedPanelIgnoresEvents(t *testing.T) {
	p, target := openPanel(t)
	p.OnClose()

	p.OnPositionFieldChange(scene.AxisX, "9")
	p.StepPosition(scene.AxisX, 1)
	p.OnRotationFieldChange(scene.AxisX, "1")
	p.OnRotationSliderChange(scene.AxisX, 1)
	p.StepRotation(scene.AxisX, 1)
	p.OnRotationSpaceChange(scene.World)
	p.OnSubmit()

	assert.Equal(t, 0, target.positions)
	assert.Empty(t, target.rotations)
	assert.Equal(t, scene.Local, p.Space())
}
