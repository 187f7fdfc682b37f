package ecs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a WorldConfig from a YAML file at path, starting from
// DefaultWorldConfig so a partial file only overrides the fields it
// names. Exported as LoadConfig (not Load) to avoid colliding with the
// generic vocabulary callers expect from a package named ecs.
func LoadConfig(path string) (WorldConfig, error) {
	cfg := DefaultWorldConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ecs: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("ecs: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
