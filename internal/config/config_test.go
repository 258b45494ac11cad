package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s4d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend.Kind)
	assert.Equal(t, 1024, cfg.RecycleCap)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadPostgresBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s4d.yaml")
	body := "backend:\n  kind: postgres\n  dsn: postgres://localhost/s4d\nrecycle_cap: 256\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Backend.Kind)
	assert.Equal(t, "postgres://localhost/s4d", cfg.Backend.DSN)
	assert.Equal(t, 256, cfg.RecycleCap)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendMemory, cfg.Backend.Kind)
	assert.Equal(t, 1024, cfg.RecycleCap)
}
