// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/spotlight/internal/lighting"
)

// Frontend names accepted by GraphicsConfig.Frontend.
const (
	FrontendImGui = "imgui"
	FrontendSDL   = "sdl"
)

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig    `yaml:"graphics"`
	Scene     SceneConfig       `yaml:"scene"`
	Light     lighting.Snapshot `yaml:"light"`
	Animation AnimationConfig   `yaml:"animation"`
	Remote    RemoteConfig      `yaml:"remote"`
	Preset    PresetConfig      `yaml:"preset"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Frontend   string `yaml:"frontend"` // "imgui" (debug panel) or "sdl" (keyboard only)
	Wireframe  bool   `yaml:"wireframe"`
}

// SceneConfig describes the mesh, texture and camera of the scene.
type SceneConfig struct {
	Mesh             string  `yaml:"mesh"` // "sphere" or "plane"
	TextureKey       string  `yaml:"texture_key"`
	TexturePath      string  `yaml:"texture_path"` // empty: procedural brick texture
	SphereSlices     int     `yaml:"sphere_slices"`
	SphereStacks     int     `yaml:"sphere_stacks"`
	SphereRadius     float32 `yaml:"sphere_radius"`
	CameraDistance   float32 `yaml:"camera_distance"`
	MaxFrameFailures int     `yaml:"max_frame_failures"` // consecutive failed frames before the loop stops
}

// AnimationConfig holds scripted light animation settings.
type AnimationConfig struct {
	Enabled bool    `yaml:"enabled"`
	Mode    string  `yaml:"mode"`
	Radius  float32 `yaml:"radius"`
	Speed   float32 `yaml:"speed"`
}

// RemoteConfig holds the remote control server settings.
type RemoteConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Listen    string `yaml:"listen"`
	QueueSize int    `yaml:"queue_size"`
}

// PresetConfig points at a light preset file.
type PresetConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Frontend:   FrontendImGui,
			Wireframe:  false,
		},
		Scene: SceneConfig{
			Mesh:             "sphere",
			TextureKey:       "brick",
			TexturePath:      "",
			SphereSlices:     32,
			SphereStacks:     16,
			SphereRadius:     5,
			CameraDistance:   30,
			MaxFrameFailures: 3,
		},
		Light: lighting.DefaultSnapshot(),
		Animation: AnimationConfig{
			Enabled: false,
			Mode:    string(lighting.AnimateOrbit),
			Radius:  8,
			Speed:   0.5,
		},
		Remote: RemoteConfig{
			Enabled:   false,
			Listen:    "127.0.0.1:7420",
			QueueSize: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
