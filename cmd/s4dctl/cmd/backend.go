package cmd

import (
	"fmt"

	"github.com/arx-os/s4d/internal/backend"
	"github.com/arx-os/s4d/internal/backend/memory"
	"github.com/arx-os/s4d/internal/backend/postgres"
	"github.com/arx-os/s4d/internal/config"
)

// openBackend constructs the backend.Backend named by cfg, opening a
// Postgres connection pool only when actually configured to use one.
func openBackend(cfg config.Config) (backend.Backend, error) {
	switch cfg.Backend.Kind {
	case config.BackendPostgres:
		b, err := postgres.Open(cfg.Backend.DSN)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendMemory, "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}

// loadConfig reads --config if given, else returns the library defaults.
func loadConfig() (config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}
