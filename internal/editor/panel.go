// Package editor implements the transform panel for the selected mesh.
// The panel state machine is independent of the UI; Draw renders it with
// ImGui.
package editor

import (
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// Widget constraints.
const (
	PositionStep = 0.001
	RotationStep = 0.001
	SliderMin    = -math32.Pi
	SliderMax    = math32.Pi
)

// Target is the mesh the panel edits. The panel borrows it while open.
type Target interface {
	Name() string
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	Rotate(axis scene.Axis, amount float32, space scene.Space)
}

// Transform is the panel's state reported on submit. Rotation is the delta
// accumulated since the panel opened.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// SubmitFunc receives the final transform.
type SubmitFunc func(Transform)

// Panel edits one mesh's position and rotation.
type Panel struct {
	log    *zap.Logger
	target Target
	submit SubmitFunc

	position mgl32.Vec3
	rotation mgl32.Vec3
	space    scene.Space

	// Field text may hold input that does not parse yet.
	positionText [3]string
	rotationText [3]string
}

// New creates a closed panel.
func New(log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{log: log}
}

// Open starts editing target, replacing any current target. Position is
// read from the mesh; rotation starts at zero in local space.
func (p *Panel) Open(target Target, onSubmit SubmitFunc) {
	if target == nil {
		p.OnClose()
		return
	}
	p.target = target
	p.submit = onSubmit
	p.position = target.Position()
	p.rotation = mgl32.Vec3{}
	p.space = scene.Local
	for _, axis := range scene.Axes {
		p.positionText[axis] = formatValue(p.position[axis])
		p.rotationText[axis] = formatValue(0)
	}
	p.log.Debug("panel opened", zap.String("mesh", target.Name()))
}

// IsOpen reports whether a mesh is being edited.
func (p *Panel) IsOpen() bool {
	return p.target != nil
}

// Target returns the mesh being edited, or nil.
func (p *Panel) Target() Target {
	return p.target
}

// Position returns the displayed position.
func (p *Panel) Position() mgl32.Vec3 { return p.position }

// Rotation returns the rotation delta since the panel opened.
func (p *Panel) Rotation() mgl32.Vec3 { return p.rotation }

// Space returns the frame future rotation deltas apply in.
func (p *Panel) Space() scene.Space { return p.space }

// OnPositionFieldChange parses value and writes that axis of the mesh
// position. Unparsable input keeps the previous value.
func (p *Panel) OnPositionFieldChange(axis scene.Axis, value string) {
	if p.target == nil {
		return
	}
	p.positionText[axis] = value
	v, ok := p.parse(axis, value)
	if !ok {
		return
	}
	p.setPosition(axis, v)
}

// StepPosition nudges one position axis by steps * PositionStep.
func (p *Panel) StepPosition(axis scene.Axis, steps int) {
	if p.target == nil {
		return
	}
	p.setPosition(axis, p.position[axis]+float32(steps)*PositionStep)
	p.positionText[axis] = formatValue(p.position[axis])
}

func (p *Panel) setPosition(axis scene.Axis, v float32) {
	p.position[axis] = v
	pos := p.target.Position()
	pos[axis] = v
	p.target.SetPosition(pos)
}

// OnRotationFieldChange parses value as the rotation for axis and issues
// the difference to the previous value as one rotation.
func (p *Panel) OnRotationFieldChange(axis scene.Axis, value string) {
	if p.target == nil {
		return
	}
	p.rotationText[axis] = value
	v, ok := p.parse(axis, value)
	if !ok {
		return
	}
	p.setRotation(axis, v)
}

// OnRotationSliderChange sets the rotation for axis from the slider.
func (p *Panel) OnRotationSliderChange(axis scene.Axis, value float32) {
	if p.target == nil {
		return
	}
	p.setRotation(axis, value)
	p.rotationText[axis] = formatValue(value)
}

// StepRotation nudges one rotation axis by steps * RotationStep.
func (p *Panel) StepRotation(axis scene.Axis, steps int) {
	if p.target == nil {
		return
	}
	p.setRotation(axis, p.rotation[axis]+float32(steps)*RotationStep)
	p.rotationText[axis] = formatValue(p.rotation[axis])
}

func (p *Panel) setRotation(axis scene.Axis, v float32) {
	delta := v - p.rotation[axis]
	p.rotation[axis] = v
	if delta == 0 {
		return
	}
	p.target.Rotate(axis, delta, p.space)
}

// OnRotationSpaceChange selects the frame for subsequent deltas.
func (p *Panel) OnRotationSpaceChange(space scene.Space) {
	if p.target == nil {
		return
	}
	p.space = space
}

// OnClose closes the panel. Edits already applied stay on the mesh.
func (p *Panel) OnClose() {
	if p.target != nil {
		p.log.Debug("panel closed", zap.String("mesh", p.target.Name()))
	}
	p.target = nil
	p.submit = nil
}

// OnSubmit reports the final transform and closes the panel.
func (p *Panel) OnSubmit() {
	if p.target == nil {
		return
	}
	if p.submit != nil {
		p.submit(Transform{Position: p.position, Rotation: p.rotation})
	}
	p.OnClose()
}

func (p *Panel) parse(axis scene.Axis, value string) (float32, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = strconv.ErrSyntax
	}
	if err != nil {
		p.log.Debug("ignoring field input",
			zap.String("axis", axis.String()),
			zap.String("value", value),
		)
		return 0, false
	}
	return float32(v), true
}

func formatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
