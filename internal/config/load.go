package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spotlight/internal/lighting"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "SpotlightLab")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SpotlightLab")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "spotlight-lab")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "spotlight-lab")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the viewer cannot start with.
func (c *Config) Validate() error {
	switch c.Graphics.Frontend {
	case FrontendImGui, FrontendSDL:
	default:
		return fmt.Errorf("unknown frontend %q", c.Graphics.Frontend)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	switch c.Scene.Mesh {
	case "sphere":
		if c.Scene.SphereSlices < 3 || c.Scene.SphereStacks < 2 {
			return fmt.Errorf("sphere needs at least 3 slices and 2 stacks, got %d/%d",
				c.Scene.SphereSlices, c.Scene.SphereStacks)
		}
	case "plane":
	default:
		return fmt.Errorf("unknown scene.mesh %q", c.Scene.Mesh)
	}
	if c.Scene.TextureKey == "" {
		return fmt.Errorf("scene.texture_key must not be empty")
	}
	if c.Scene.MaxFrameFailures < 1 {
		c.Scene.MaxFrameFailures = 1
	}
	if c.Animation.Enabled {
		if _, err := lighting.NewAnimator(lighting.AnimationMode(c.Animation.Mode), c.Animation.Radius, c.Animation.Speed); err != nil {
			return err
		}
	}
	return nil
}
