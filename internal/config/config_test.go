package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "randserver.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  listen = "127.0.0.1:9999"
}

stream {
  seed = 42
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, uint64(42), cfg.Stream.Seed)
	assert.Equal(t, 1024, cfg.Stream.ChunkSize)
	assert.Equal(t, 0, cfg.Stream.Rate)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server {
  listen    = ":8080"
  log_level = "debug"
}

stream {
  seed       = 7
  chunk_size = 64
  rate       = 100
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, uint64(7), cfg.Stream.Seed)
	assert.Equal(t, 64, cfg.Stream.ChunkSize)
	assert.Equal(t, 100, cfg.Stream.Rate)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `server { listen = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen", func(c *Config) { c.Server.Listen = "" }},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "loud" }},
		{"zero chunk size", func(c *Config) { c.Stream.ChunkSize = 0 }},
		{"negative rate", func(c *Config) { c.Stream.Rate = -1 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
