package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/flowctl"
	projectConfigDir = ".flowctl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the flowctl configuration by layering default, user, and
// project settings.
func LoadConfig() (FlowctlConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Determine user-specific configuration path
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return FlowctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	// 3. Determine project-specific configuration path
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return FlowctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	return config, nil
}

// LoadConfigFromPath loads the configuration from a single explicit file,
// layered over the defaults. Used by the --config flag.
func LoadConfigFromPath(path string) (FlowctlConfig, error) {
	config := GetDefaultConfig()

	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return FlowctlConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return mergeConfigs(config, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a FlowctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (FlowctlConfig, error) {
	var config FlowctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return FlowctlConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return FlowctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay FlowctlConfig) FlowctlConfig {
	merged := base

	if overlay.GlobalSettings.LogLevel != "" {
		merged.GlobalSettings.LogLevel = overlay.GlobalSettings.LogLevel
	}

	// Layout
	if overlay.Layout.Mode != "" {
		merged.Layout.Mode = overlay.Layout.Mode
	}
	if overlay.Layout.SourceRoot != "" {
		merged.Layout.SourceRoot = overlay.Layout.SourceRoot
	}
	if overlay.Layout.Interpreter != "" {
		merged.Layout.Interpreter = overlay.Layout.Interpreter
	}
	if overlay.Layout.Script != "" {
		merged.Layout.Script = overlay.Layout.Script
	}
	if overlay.Layout.DevContentRoot != "" {
		merged.Layout.DevContentRoot = overlay.Layout.DevContentRoot
	}
	if overlay.Layout.ExecutableName != "" {
		merged.Layout.ExecutableName = overlay.Layout.ExecutableName
	}
	if overlay.Layout.ContentDirName != "" {
		merged.Layout.ContentDirName = overlay.Layout.ContentDirName
	}

	// Backend
	if overlay.Backend.Host != "" {
		merged.Backend.Host = overlay.Backend.Host
	}
	if overlay.Backend.Port != 0 {
		merged.Backend.Port = overlay.Backend.Port
	}
	if overlay.Backend.HealthPath != "" {
		merged.Backend.HealthPath = overlay.Backend.HealthPath
	}
	if overlay.Backend.ReadinessAttempts != 0 {
		merged.Backend.ReadinessAttempts = overlay.Backend.ReadinessAttempts
	}
	if overlay.Backend.ReadinessInterval != 0 {
		merged.Backend.ReadinessInterval = overlay.Backend.ReadinessInterval
	}
	if overlay.Backend.ProbeTimeout != 0 {
		merged.Backend.ProbeTimeout = overlay.Backend.ProbeTimeout
	}
	if overlay.Backend.StopTimeout != 0 {
		merged.Backend.StopTimeout = overlay.Backend.StopTimeout
	}
	if overlay.Backend.RetainOnTimeout != nil {
		merged.Backend.RetainOnTimeout = overlay.Backend.RetainOnTimeout
	}
	if overlay.Backend.Debug {
		merged.Backend.Debug = true
	}
	if len(overlay.Backend.Env) > 0 {
		if merged.Backend.Env == nil {
			merged.Backend.Env = make(map[string]string, len(overlay.Backend.Env))
		}
		for k, v := range overlay.Backend.Env {
			merged.Backend.Env[k] = v
		}
	}

	// Web
	if overlay.Web.Host != "" {
		merged.Web.Host = overlay.Web.Host
	}
	if overlay.Web.Port != 0 {
		merged.Web.Port = overlay.Web.Port
	}
	if overlay.Web.IndexDocument != "" {
		merged.Web.IndexDocument = overlay.Web.IndexDocument
	}
	if overlay.Web.ShutdownTimeout != 0 {
		merged.Web.ShutdownTimeout = overlay.Web.ShutdownTimeout
	}

	// Navigation
	if overlay.Navigation.Delay != 0 {
		merged.Navigation.Delay = overlay.Navigation.Delay
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
