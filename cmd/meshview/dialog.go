package main

import (
	"errors"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/importer"
)

// meshFilters lists the accepted extensions for the file picker.
func meshFilters() zenity.FileFilters {
	patterns := make([]string, len(importer.AcceptedExtensions))
	for i, ext := range importer.AcceptedExtensions {
		patterns[i] = "*" + ext
	}
	return zenity.FileFilters{
		{Name: "Mesh files", Patterns: patterns, CaseFold: true},
		{Name: "All files", Patterns: []string{"*"}},
	}
}

// openFileDialog shows a native multi-select file dialog. The chosen files
// are imported as one batch.
func (app *App) openFileDialog() {
	// The dialog blocks, so it runs off the main thread; QueueFiles hands
	// the result back through the pending queue.
	go func() {
		paths, err := zenity.SelectFileMultiple(
			zenity.Title("Import Meshes"),
			meshFilters(),
		)
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				app.log.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		app.QueueFiles(paths)
	}()
}

// openScreenshotDirDialog lets the user choose where F12 saves images.
func (app *App) openScreenshotDirDialog() {
	go func() {
		dir, err := dialog.Directory().
			Title("Screenshot Folder").
			SetStartDir(app.screenshotFolder()).
			Browse()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				app.log.Error("folder dialog failed", zap.Error(err))
			}
			return
		}
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}

		app.mu.Lock()
		app.screenshotDir = dir
		app.mu.Unlock()
		app.log.Info("screenshot folder changed", zap.String("dir", dir))
	}()
}

func (app *App) screenshotFolder() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.screenshotDir
}
