package app

import (
	"flowctl/internal/config"
)

// Config holds the application configuration assembled from CLI flags.
type Config struct {
	// Debug enables verbose logging and runs the backend with debug output.
	Debug bool

	// ConfigPath optionally replaces the layered config lookup with a
	// single explicit file.
	ConfigPath string

	// FlowctlConfig is the loaded launcher configuration.
	FlowctlConfig *config.FlowctlConfig
}

// NewConfig creates an application configuration from CLI flags.
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
