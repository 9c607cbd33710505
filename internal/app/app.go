package app

import (
	"context"
	"fmt"
	"os"

	"flowctl/internal/config"
	"flowctl/pkg/logging"
)

// Application is the main application structure that bootstraps and runs
// the launcher.
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, os.Stdout)

	var flowctlCfg config.FlowctlConfig
	var err error

	if cfg.ConfigPath != "" {
		flowctlCfg, err = config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Info("Bootstrap", "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		flowctlCfg, err = config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if !cfg.Debug && flowctlCfg.GlobalSettings.LogLevel == "debug" {
		logging.InitForCLI(logging.LevelDebug, os.Stdout)
	}

	cfg.FlowctlConfig = &flowctlCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services exposes the wired components (used by one-shot commands).
func (a *Application) Services() *Services {
	return a.services
}

// Run starts everything and blocks in the foreground until interrupted.
func (a *Application) Run(ctx context.Context) error {
	return runForeground(ctx, a.services)
}
