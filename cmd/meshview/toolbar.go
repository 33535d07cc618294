package main

import (
	"strconv"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// renderToolbar draws the scene setting combos, the import button and
// the hovered axis label.
func (app *App) renderToolbar() {
	if boolCombo("Right-handed", &app.cfg.Scene.RightHanded) {
		app.reconfigure()
	}
	imgui.SameLine()
	if boolCombo("Preserve file coordinates", &app.cfg.Scene.PreserveFileCoordinates) {
		app.reconfigure()
	}

	imgui.SameLine()
	if imgui.Button("Import...") {
		app.openFileDialog()
	}
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Import one or more mesh files. Files dropped on the window are imported too.")
	}

	imgui.SameLine()
	if imgui.Button("Screenshots...") {
		app.openScreenshotDirDialog()
	}
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Folder for F12 screenshots: " + app.screenshotFolder())
	}

	imgui.SameLine()
	imgui.Text("Hovered Axis: " + app.controller.HoveredAxis())

	if app.isImporting() {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0.3, 1), "Importing...")
	}
	if app.status != "" && time.Since(app.statusTime) < statusDuration {
		imgui.SameLine()
		imgui.TextDisabled(app.status)
	}
}

// boolCombo draws a true/false dropdown and reports whether v changed.
func boolCombo(label string, v *bool) bool {
	changed := false
	imgui.AlignTextToFramePadding()
	imgui.Text(label)
	imgui.SameLine()
	imgui.SetNextItemWidth(70)
	if imgui.BeginCombo("##"+label, strconv.FormatBool(*v)) {
		for _, option := range []bool{true, false} {
			if imgui.SelectableBoolV(strconv.FormatBool(option), *v == option, 0, imgui.NewVec2(0, 0)) && *v != option {
				*v = option
				changed = true
			}
		}
		imgui.EndCombo()
	}
	return changed
}
