// Package preset reads and writes light presets and reapplies them when the
// file changes on disk.
package preset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spotlight/internal/lighting"
)

// Load reads a preset file. Fields missing from the file keep their default
// light values.
func Load(path string) (lighting.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lighting.Snapshot{}, fmt.Errorf("read preset: %w", err)
	}
	return Parse(data)
}

// Parse decodes preset YAML on top of the default light.
func Parse(data []byte) (lighting.Snapshot, error) {
	s := lighting.DefaultSnapshot()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return lighting.Snapshot{}, fmt.Errorf("parse preset: %w", err)
	}
	return s, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s lighting.Snapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create preset dir: %w", err)
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}

// Edit returns an edit applying s through the control policy.
func Edit(s lighting.Snapshot) lighting.Edit {
	return func(c *lighting.Controls) { c.Apply(s) }
}
