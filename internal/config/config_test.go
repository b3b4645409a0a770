package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// SQLite is the always-available backend
	assert.True(t, cfg.SQLite.Enabled)
	assert.NotEmpty(t, cfg.SQLite.Path)

	// Optional backends stay off until configured
	assert.False(t, cfg.PostgreSQL.Enabled)
	assert.False(t, cfg.MySQL.Enabled)
	assert.False(t, cfg.MongoDB.Enabled)
	assert.False(t, cfg.Redis.Enabled)

	assert.Equal(t, 3600, cfg.Redis.TTLSeconds)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg := DefaultConfig()
	cfg.MongoDB.Enabled = true
	cfg.MongoDB.URI = "mongodb://db.example.com:27017"
	cfg.Redis.Enabled = true
	cfg.Redis.TTLSeconds = 60
	cfg.LogLevel = "DEBUG"

	require.NoError(t, cfg.Save(path))
	assert.True(t, Exists(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sqlite: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
