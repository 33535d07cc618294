package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/editor"
	"github.com/Faultbox/meshview/internal/engine/glrender"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/ui"
	"github.com/Faultbox/meshview/internal/importer"
	"github.com/Faultbox/meshview/internal/viewport"
)

// Layout dimensions
const (
	toolbarHeight  = float32(38)
	inspectorWidth = float32(280)
	panelWidth     = float32(300)
	statusDuration = 3 * time.Second
)

// App is the viewer application state. Everything except the pending
// queue is owned by the main thread.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	backend *ui.Backend

	controller *viewport.Controller
	panel      *editor.Panel
	pointer    input.Pointer

	// Guards pending, inFlight and screenshotDir, which dialog and
	// decode goroutines write.
	mu            sync.Mutex
	pending       []*viewport.Batch
	inFlight      int
	screenshotDir string

	status     string
	statusTime time.Time
}

// NewApp creates the window and the first view.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	backend, err := ui.NewBackend(ui.Options{
		Title:     "Meshview",
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		TargetFPS: cfg.Window.TargetFPS,
		FontPath:  cfg.Window.FontPath,
		FontSize:  cfg.Window.FontSize,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	app := &App{
		cfg:           cfg,
		log:           log,
		backend:       backend,
		panel:         editor.New(log.Named("editor")),
		screenshotDir: filepath.Join(config.ConfigDir(), "screenshots"),
	}
	app.controller = viewport.New(
		glrender.New(log.Named("glrender")),
		importer.Default(),
		app.panel,
		log.Named("viewport"),
	)

	if err := app.controller.Initialize(viewport.FromConfig(cfg)); err != nil {
		return nil, fmt.Errorf("initializing viewport: %w", err)
	}

	backend.OnDrop(app.QueueFiles)
	return app, nil
}

// Close releases the view.
func (app *App) Close() {
	app.controller.Teardown()
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// QueueFiles decodes paths in the background and queues the batch for
// the next frame. Safe to call from any goroutine.
func (app *App) QueueFiles(paths []string) {
	var accepted []string
	for _, p := range paths {
		if !importer.IsAccepted(p) {
			app.log.Warn("skipping file with unaccepted extension", zap.String("file", p))
			continue
		}
		accepted = append(accepted, p)
	}
	if len(accepted) == 0 {
		return
	}

	app.mu.Lock()
	app.inFlight++
	app.mu.Unlock()

	go func() {
		batch, err := app.controller.LoadFiles(context.Background(), accepted)

		app.mu.Lock()
		defer app.mu.Unlock()
		app.inFlight--
		if err != nil {
			app.log.Error("import batch failed", zap.Strings("files", accepted), zap.Error(err))
			return
		}
		app.pending = append(app.pending, batch)
	}()
}

// commitPending adds decoded batches to the scene. Main thread only.
func (app *App) commitPending() {
	app.mu.Lock()
	batches := app.pending
	app.pending = nil
	app.mu.Unlock()

	for _, b := range batches {
		meshes, err := app.controller.Commit(b)
		if errors.Is(err, viewport.ErrTornDown) {
			app.log.Warn("dropping import decoded for a previous view", zap.Int("files", len(b.Results)))
			continue
		}
		if len(meshes) > 0 {
			app.backend.SetDocument(meshes[len(meshes)-1].Source)
		}
		if failed := len(b.Failures()); failed > 0 {
			app.showStatus(fmt.Sprintf("Imported %d meshes, %d files failed", len(meshes), failed))
		} else {
			app.showStatus(fmt.Sprintf("Imported %d meshes", len(meshes)))
		}
	}
}

// isImporting reports whether any batch is still decoding.
func (app *App) isImporting() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.inFlight > 0
}

// reconfigure rebuilds the view after a scene setting changed and saves it.
func (app *App) reconfigure() {
	if err := app.controller.Reconfigure(viewport.FromConfig(app.cfg)); err != nil {
		app.log.Error("rebuilding viewport", zap.Error(err))
		app.showStatus("Viewport unavailable: " + err.Error())
	}
	app.backend.SetDocument("")
	if err := app.cfg.Save(); err != nil {
		app.log.Warn("saving config", zap.Error(err))
	}
}

func (app *App) showStatus(msg string) {
	app.status = msg
	app.statusTime = time.Now()
}

// render is called each frame to draw the UI.
func (app *App) render() {
	app.commitPending()

	// F12 saves the viewport, Escape closes the transform panel
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.saveScreenshot()
	}
	if ui.IsKeyPressed(imgui.KeyEscape) && !imgui.IsAnyItemActive() {
		app.controller.ClosePanel()
	}

	x, y, width, height := ui.WorkArea()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, toolbarHeight))
	if imgui.BeginV("Toolbar", nil, flags|imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoScrollbar) {
		app.renderToolbar()
	}
	imgui.End()

	contentY := y + toolbarHeight
	contentHeight := height - toolbarHeight
	viewX := x
	viewWidth := width

	if app.cfg.Scene.ShowInspector {
		imgui.SetNextWindowPos(imgui.NewVec2(x, contentY))
		imgui.SetNextWindowSize(imgui.NewVec2(inspectorWidth, contentHeight))
		if imgui.BeginV("Scene Explorer", nil, flags) {
			app.renderInspector()
		}
		imgui.End()
		viewX += inspectorWidth
		viewWidth -= inspectorWidth
	}

	if app.panel.IsOpen() {
		viewWidth -= panelWidth
		app.panel.Draw(imgui.NewVec2(viewX+viewWidth, contentY), imgui.NewVec2(panelWidth, contentHeight))
	}

	imgui.SetNextWindowPos(imgui.NewVec2(viewX, contentY))
	imgui.SetNextWindowSize(imgui.NewVec2(viewWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse) {
		app.renderViewport()
	}
	imgui.End()
}

func (app *App) saveScreenshot() {
	path, err := app.controller.SaveScreenshot(app.screenshotFolder())
	if err != nil {
		app.log.Error("screenshot failed", zap.Error(err))
		app.showStatus("Screenshot failed: " + err.Error())
		return
	}
	app.showStatus("Saved: " + filepath.Base(path))
}
