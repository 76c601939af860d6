package config

import (
	"os"
	"time"

	"github.com/ccollicutt/sensorlog/pkg/parser"
)

// Default values for configuration.
const (
	DefaultOutput         = OutputText
	DefaultWebhookTimeout = 10 * time.Second
)

// Report output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Environment variable names.
const (
	EnvReference = "SENSORLOG_REFERENCE"
	EnvOutput    = "SENSORLOG_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:       DefaultOutput,
		MaxLineBytes: parser.DefaultMaxLineBytes,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if ref := os.Getenv(EnvReference); ref != "" {
		c.Reference = ref
	}
	if out := os.Getenv(EnvOutput); out != "" {
		c.Output = out
	}
}
