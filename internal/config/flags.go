package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLeftHanded  = flag.Bool("left-handed", false, "Use a left-handed scene")
	flagAlterCoords = flag.Bool("alter-file-coordinates", false, "Convert STL files from Z-up to Y-up")
	flagNoInspector = flag.Bool("no-inspector", false, "Hide the scene explorer")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Files returns the positional arguments, imported at startup.
func Files() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLeftHanded {
		cfg.Scene.RightHanded = false
	}
	if *flagAlterCoords {
		cfg.Scene.PreserveFileCoordinates = false
	}
	if *flagNoInspector {
		cfg.Scene.ShowInspector = false
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
