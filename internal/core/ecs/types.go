// Package ecs provides the core Entity Component System runtime: entity
// identity, per-component storage, views, collections and the world that
// ties them together.
package ecs

import "time"

// WorldConfig holds the tunables a world is constructed with. It is
// loadable from YAML via LoadConfig (see config.go).
type WorldConfig struct {
	MaxEntities     int           `yaml:"max_entities"`
	EnableMetrics   bool          `yaml:"enable_metrics"`
	DefaultPageSize int           `yaml:"default_page_size"`
	MetricsInterval time.Duration `yaml:"metrics_interval"`
}

// DefaultWorldConfig returns sane defaults for a freshly created world.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		MaxEntities:     10000,
		EnableMetrics:   true,
		DefaultPageSize: DefaultComponentTraits.PageSize,
		MetricsInterval: 30 * time.Second,
	}
}
