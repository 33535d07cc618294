package editor

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

var axisColors = [3]imgui.Vec4{
	imgui.NewVec4(0.9, 0.3, 0.3, 1),
	imgui.NewVec4(0.3, 0.9, 0.3, 1),
	imgui.NewVec4(0.3, 0.5, 0.95, 1),
}

// Draw renders the panel as a fixed window. It draws nothing when closed.
func (p *Panel) Draw(pos, size imgui.Vec2) {
	if !p.IsOpen() {
		return
	}

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Transform", nil, flags) {
		imgui.Text(p.target.Name())
		imgui.Separator()

		imgui.Text("Position")
		for _, axis := range scene.Axes {
			p.drawPositionRow(axis)
		}

		imgui.Spacing()
		imgui.Text("Rotation (radians, since opened)")
		p.drawSpaceCombo()
		for _, axis := range scene.Axes {
			p.drawRotationRow(axis)
		}

		imgui.Spacing()
		imgui.Separator()
		// OnClose may clear the target; nothing below may touch it.
		if imgui.ButtonV("Close", imgui.NewVec2(-1, 0)) {
			p.OnClose()
		}
	}
	imgui.End()
}

func (p *Panel) drawPositionRow(axis scene.Axis) {
	imgui.TextColored(axisColors[axis], axisLabel(axis))
	imgui.SameLine()
	imgui.SetNextItemWidth(-60)
	if imgui.InputTextWithHint(fmt.Sprintf("##pos%s", axis), "0", &p.positionText[axis], imgui.InputTextFlagsCharsScientific, nil) {
		p.OnPositionFieldChange(axis, p.positionText[axis])
	}
	p.drawSteppers(fmt.Sprintf("pos%s", axis), func(steps int) { p.StepPosition(axis, steps) })
}

func (p *Panel) drawRotationRow(axis scene.Axis) {
	imgui.TextColored(axisColors[axis], axisLabel(axis))
	imgui.SameLine()
	imgui.SetNextItemWidth(-60)
	if imgui.InputTextWithHint(fmt.Sprintf("##rot%s", axis), "0", &p.rotationText[axis], imgui.InputTextFlagsCharsScientific, nil) {
		p.OnRotationFieldChange(axis, p.rotationText[axis])
	}
	p.drawSteppers(fmt.Sprintf("rot%s", axis), func(steps int) { p.StepRotation(axis, steps) })

	// The slider clamps its display; the field above may hold any value.
	value := p.rotation[axis]
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV(fmt.Sprintf("##slider%s", axis), &value, SliderMin, SliderMax, "%.2f", imgui.SliderFlagsNone) {
		p.OnRotationSliderChange(axis, value)
	}
}

func (p *Panel) drawSteppers(id string, step func(steps int)) {
	imgui.SameLine()
	if imgui.ButtonV("-##"+id, imgui.NewVec2(22, 0)) {
		step(-1)
	}
	imgui.SameLine()
	if imgui.ButtonV("+##"+id, imgui.NewVec2(22, 0)) {
		step(1)
	}
}

func (p *Panel) drawSpaceCombo() {
	imgui.SetNextItemWidth(-1)
	if imgui.BeginCombo("##space", p.space.String()) {
		for _, space := range []scene.Space{scene.Local, scene.World} {
			if imgui.SelectableBoolV(space.String(), p.space == space, 0, imgui.NewVec2(0, 0)) {
				p.OnRotationSpaceChange(space)
			}
		}
		imgui.EndCombo()
	}
}

func axisLabel(axis scene.Axis) string {
	switch axis {
	case scene.AxisX:
		return "X"
	case scene.AxisY:
		return "Y"
	default:
		return "Z"
	}
}
