// Meshview - an interactive viewer for 3D mesh files.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/logger"
)

func main() {
	// SDL and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger.Log); err != nil {
		logger.Log.Error("meshview failed", zap.Error(err))
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

func run(cfg *config.Config, log *zap.Logger) error {
	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	// Positional arguments are imported as one batch
	if files := config.Files(); len(files) > 0 {
		app.QueueFiles(files)
	}

	app.Run()
	return nil
}
