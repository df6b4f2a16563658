package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFrontend   = flag.String("frontend", "", "Frontend: imgui or sdl")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagRemote     = flag.String("remote", "", "Enable remote control on this address")
	flagAnimate    = flag.String("animate", "", "Animate the light: orbit or sweep")
	flagPreset     = flag.String("preset", "", "Light preset file (watched for changes)")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrontend != "" {
		cfg.Graphics.Frontend = *flagFrontend
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagRemote != "" {
		cfg.Remote.Enabled = true
		cfg.Remote.Listen = *flagRemote
	}
	if *flagAnimate != "" {
		cfg.Animation.Enabled = true
		cfg.Animation.Mode = *flagAnimate
	}
	if *flagPreset != "" {
		cfg.Preset.Path = *flagPreset
		cfg.Preset.Watch = true
	}
}
