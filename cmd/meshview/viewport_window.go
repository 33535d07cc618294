package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshview/internal/engine/input"
)

// renderViewport draws the scene texture and feeds pointer input to the
// controller in surface pixel coordinates.
func (app *App) renderViewport() {
	h := app.controller.Handle()
	if h == nil {
		imgui.TextDisabled("Viewport unavailable")
		return
	}

	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}
	h.Surface.Resize(int(avail.X), int(avail.Y))
	app.controller.Frame()

	origin := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(h.Surface.Texture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	mouse := imgui.MousePos()
	p := &app.pointer
	p.X = mouse.X - origin.X
	p.Y = mouse.Y - origin.Y
	p.LeftDown = imgui.IsMouseDown(imgui.MouseButtonLeft)
	p.Inside = imgui.IsItemHovered()
	if p.Inside {
		p.Wheel = imgui.CurrentIO().MouseWheel()
	}
	p.Update()
	app.handlePointer(p)
	p.EndFrame()

	if len(h.Scene.Meshes()) == 0 && !app.isImporting() {
		drawHint(origin, avail)
	}
}

func (app *App) handlePointer(p *input.Pointer) {
	if p.Dragging() && (p.DeltaX != 0 || p.DeltaY != 0) {
		app.controller.Orbit(p.DeltaX, p.DeltaY)
	}
	if p.Wheel != 0 {
		app.controller.Zoom(p.Wheel)
	}
	if p.Inside && !p.Dragging() {
		app.controller.PointerMove(p.X, p.Y)
	}
	if p.Exited {
		app.controller.PointerLeave()
	}
	if p.Clicked() {
		app.controller.PointerPick(p.X, p.Y)
	}
}

// drawHint overlays usage text on an empty scene.
func drawHint(origin, size imgui.Vec2) {
	const hint = "Drop mesh files here or use Import..."
	textSize := imgui.CalcTextSize(hint)
	imgui.SetCursorScreenPos(imgui.NewVec2(origin.X+(size.X-textSize.X)/2, origin.Y+(size.Y-textSize.Y)/2))
	imgui.TextDisabled(hint)
}
