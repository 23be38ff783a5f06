// Package config loads the HCL configuration shared by the stream server and
// tools.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration for randserver.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Stream StreamSettings `hcl:"stream,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Listen   string `hcl:"listen,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// StreamSettings controls how generator output is partitioned and emitted.
type StreamSettings struct {
	Seed      uint64 `hcl:"seed,optional"`       // 0 seeds from entropy
	ChunkSize int    `hcl:"chunk_size,optional"` // bytes per emitted chunk
	Rate      int    `hcl:"rate,optional"`       // chunks per second, 0 is unthrottled
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Listen:   "localhost:8080",
			LogLevel: "info",
		},
		Stream: StreamSettings{
			ChunkSize: 1024,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present file has defaults applied to any unset values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = "localhost:8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Stream.ChunkSize == 0 {
		cfg.Stream.ChunkSize = 1024
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	if c.Stream.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.Stream.ChunkSize)
	}
	if c.Stream.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %d", c.Stream.Rate)
	}
	return nil
}
