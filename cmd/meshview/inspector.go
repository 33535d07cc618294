package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// renderInspector lists the scene nodes with their transforms.
func (app *App) renderInspector() {
	h := app.controller.Handle()
	if h == nil {
		imgui.TextDisabled("No scene")
		return
	}
	sc := h.Scene

	if imgui.TreeNodeExStrV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		cam := h.Camera
		imgui.Text(fmt.Sprintf("Alpha: %.3f  Beta: %.3f", cam.Alpha, cam.Beta))
		imgui.Text(fmt.Sprintf("Radius: %.2f", cam.Radius))
		imgui.Text("Position: " + formatVec(cam.Position()))
		imgui.TreePop()
	}

	if light := sc.Light; light != nil && imgui.TreeNodeExStrV("Light: "+light.Name, imgui.TreeNodeFlagsNone) {
		imgui.Text("Direction: " + formatVec(light.Direction))
		imgui.Text(fmt.Sprintf("Intensity: %.2f", light.Intensity))
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV(fmt.Sprintf("Axes (%d)", len(sc.Lines())), imgui.TreeNodeFlagsNone) {
		for _, l := range sc.Lines() {
			imgui.Checkbox(l.Name()+"##axis", &l.Visible)
			if l.Hovered {
				imgui.SameLine()
				imgui.TextColored(imgui.NewVec4(1, 1, 0.4, 1), "hovered")
			}
		}
		imgui.TreePop()
	}

	imgui.Separator()
	meshes := sc.Meshes()
	imgui.Text(fmt.Sprintf("Meshes (%d)", len(meshes)))
	if len(meshes) == 0 {
		imgui.TextDisabled("Nothing imported")
		return
	}

	selected := app.controller.Selection().Mesh
	for _, m := range meshes {
		app.renderMeshNode(m, m == selected)
	}
}

func (app *App) renderMeshNode(m *scene.Mesh, selected bool) {
	flags := imgui.TreeNodeFlagsNone
	if selected {
		flags |= imgui.TreeNodeFlagsSelected
	}
	open := imgui.TreeNodeExStrV(fmt.Sprintf("%s##%d", m.Name(), m.ID()), flags)
	if imgui.IsItemClicked() && !selected {
		app.controller.Select(m)
	}
	if !open {
		return
	}

	geom := m.Geometry()
	imgui.TextDisabled(m.Source)
	imgui.Checkbox(fmt.Sprintf("Visible##%d", m.ID()), &m.Visible)
	imgui.Text("Position: " + formatVec(m.Position()))
	q := m.Rotation()
	imgui.Text(fmt.Sprintf("Rotation: (%.3f, %.3f, %.3f, %.3f)", q.V.X(), q.V.Y(), q.V.Z(), q.W))
	imgui.Text("Scaling: " + formatVec(m.Scaling()))
	imgui.Text(fmt.Sprintf("Vertices: %d  Triangles: %d", geom.VertexCount(), geom.TriangleCount()))
	b := m.WorldBounds()
	imgui.Text("Size: " + formatVec(b.Max.Sub(b.Min)))
	imgui.TreePop()
}

func formatVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
}
