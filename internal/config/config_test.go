package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "films.db", cfg.Database.SQLitePath)
	assert.Equal(t, 10*time.Second, cfg.Metadata.RequestTimeout)
	assert.Equal(t, "static", cfg.Static.Dir)
}

func TestLoadFromFile(t *testing.T) {
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
database:
  type: postgres
  host: db.internal
metadata:
  omdb_api_key: file-key
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, Load(path))

	cfg := Get()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "file-key", cfg.Metadata.OMDbAPIKey)

	// Unset fields keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv("PARADISO_PORT", "7070")
	t.Setenv("OMDB_API_KEY", "env-key")

	require.NoError(t, Load(""))

	cfg := Get()
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.Metadata.OMDbAPIKey)
}

func TestLoadMissingFile(t *testing.T) {
	t.Cleanup(Reset)
	assert.Error(t, Load(filepath.Join(t.TempDir(), "nope.yaml")))
}
