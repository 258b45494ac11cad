// Package config loads the YAML configuration file controlling backend
// selection and logging. It also reads a recycle_cap value, but the
// collection core's rank recycle pool uses its own fixed cap
// (collection.RecycleCap) and does not read this one.
package config

import (
	"os"

	"gopkg.in/yaml.v2"

	apperrors "github.com/arx-os/s4d/pkg/errors"
)

// BackendKind selects which backend.Backend implementation the CLI and
// long-running services construct.
type BackendKind string

const (
	BackendMemory   BackendKind = "memory"
	BackendPostgres BackendKind = "postgres"
)

// Config is the top-level on-disk configuration shape.
type Config struct {
	Backend    BackendConfig `yaml:"backend"`
	Logging    LoggingConfig `yaml:"logging"`
	RecycleCap int           `yaml:"recycle_cap"`
}

// BackendConfig selects and parameterizes the durable backend.
type BackendConfig struct {
	Kind BackendKind `yaml:"kind"`
	DSN  string      `yaml:"dsn"`
}

// LoggingConfig controls the logger's format and level.
type LoggingConfig struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is supplied: an
// in-memory backend, text logging at info level, and a 1024-entry rank
// recycle cap.
func Default() Config {
	return Config{
		Backend:    BackendConfig{Kind: BackendMemory},
		Logging:    LoggingConfig{JSON: false, Level: "info"},
		RecycleCap: 1024,
	}
}

// Load reads and parses a YAML config file at path, filling in defaults for
// anything the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.CodeBackendIO, "read config file "+path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.CodeInvariantViolation, "parse config file "+path, err)
	}
	if cfg.Backend.Kind == "" {
		cfg.Backend.Kind = BackendMemory
	}
	if cfg.RecycleCap <= 0 {
		cfg.RecycleCap = 1024
	}
	return cfg, nil
}
