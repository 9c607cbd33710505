package config

import "time"

// GetDefaultConfig returns the built-in configuration. It matches the layout
// produced by the standard Flowboard build: a python backend under server/,
// a built frontend under web/dist, and packaged artifacts sibling to the
// launcher binary.
func GetDefaultConfig() FlowctlConfig {
	return FlowctlConfig{
		GlobalSettings: GlobalSettings{
			LogLevel: "info",
		},
		Layout: LayoutConfig{
			Mode:           LayoutModeAuto,
			Interpreter:    "python3",
			Script:         "server/main.py",
			DevContentRoot: "web/dist",
			ExecutableName: "flowboard-server",
			ContentDirName: "web",
		},
		Backend: BackendConfig{
			Host:              "localhost",
			Port:              8000,
			HealthPath:        "/health",
			ReadinessAttempts: 30,
			ReadinessInterval: 500 * time.Millisecond,
			ProbeTimeout:      1 * time.Second,
			StopTimeout:       2 * time.Second,
		},
		Web: WebConfig{
			Host:            "localhost",
			Port:            3000,
			IndexDocument:   "index.html",
			ShutdownTimeout: 5 * time.Second,
		},
		Navigation: NavigationConfig{
			Delay: 1 * time.Second,
		},
	}
}
