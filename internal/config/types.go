package config

import (
	"time"
)

// FlowctlConfig is the top-level configuration structure for flowctl.
type FlowctlConfig struct {
	GlobalSettings GlobalSettings   `yaml:"globalSettings"`
	Layout         LayoutConfig     `yaml:"layout"`
	Backend        BackendConfig    `yaml:"backend"`
	Web            WebConfig        `yaml:"web"`
	Navigation     NavigationConfig `yaml:"navigation"`
}

// GlobalSettings holds settings that apply across the whole launcher.
type GlobalSettings struct {
	LogLevel string `yaml:"logLevel,omitempty"` // "debug", "info", "warn", "error"
}

// LayoutMode selects how executable and content paths are resolved.
type LayoutMode string

const (
	// LayoutModeAuto picks packaged when the sibling backend executable
	// exists next to the launcher binary, dev otherwise.
	LayoutModeAuto     LayoutMode = "auto"
	LayoutModeDev      LayoutMode = "dev"
	LayoutModePackaged LayoutMode = "packaged"
)

// LayoutConfig defines dev and packaged path resolution for the backend
// executable and the web content root.
type LayoutConfig struct {
	Mode LayoutMode `yaml:"mode,omitempty"` // "auto", "dev", or "packaged"

	// Fields for Mode = "dev"
	SourceRoot     string `yaml:"sourceRoot,omitempty"`     // Source tree root, defaults to the working directory
	Interpreter    string `yaml:"interpreter,omitempty"`    // Interpreter command, e.g. "python3"
	Script         string `yaml:"script,omitempty"`         // Backend entry script relative to sourceRoot
	DevContentRoot string `yaml:"devContentRoot,omitempty"` // Built frontend directory relative to sourceRoot

	// Fields for Mode = "packaged"
	ExecutableName string `yaml:"executableName,omitempty"` // Backend executable sibling to the launcher binary
	ContentDirName string `yaml:"contentDirName,omitempty"` // Content directory sibling to the launcher binary
}

// BackendConfig defines the backend server process and its health endpoint.
type BackendConfig struct {
	Host       string `yaml:"host,omitempty"`       // Health endpoint host (default: localhost)
	Port       int    `yaml:"port,omitempty"`       // Health endpoint port (default: 8000)
	HealthPath string `yaml:"healthPath,omitempty"` // Health endpoint path (default: /health)

	ReadinessAttempts int           `yaml:"readinessAttempts,omitempty"` // Probe attempts before giving up (default: 30)
	ReadinessInterval time.Duration `yaml:"readinessInterval,omitempty"` // Fixed spacing between attempts (default: 500ms)
	ProbeTimeout      time.Duration `yaml:"probeTimeout,omitempty"`      // Per-request probe timeout (default: 1s)

	// RetainOnTimeout keeps the spawned process alive when the readiness
	// budget is exhausted, treating it as degraded but possibly recoverable.
	// Set to false to kill the process on timeout instead.
	RetainOnTimeout *bool `yaml:"retainOnTimeout,omitempty"`

	StopTimeout time.Duration `yaml:"stopTimeout,omitempty"` // Wait after SIGTERM before SIGKILL (default: 2s)

	Debug bool              `yaml:"debug,omitempty"` // Sets LOG_LEVEL=DEBUG in the child environment
	Env   map[string]string `yaml:"env,omitempty"`   // Extra environment variables for the child
}

// WebConfig defines the embedded static-file web server.
type WebConfig struct {
	Host            string        `yaml:"host,omitempty"`            // Bind host (default: localhost)
	Port            int           `yaml:"port,omitempty"`            // Bind port (default: 3000)
	IndexDocument   string        `yaml:"indexDocument,omitempty"`   // Served for the directory root (default: index.html)
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"` // Bound on graceful shutdown (default: 5s)
}

// NavigationConfig controls when the shell is told to navigate to the web URL.
type NavigationConfig struct {
	// Delay is a fixed pause before issuing the navigation, tolerating web
	// server startup lag. The authoritative readiness signal remains the
	// supervisor's Start returning.
	Delay time.Duration `yaml:"delay,omitempty"`
}

// RetainOnTimeoutEnabled resolves the RetainOnTimeout pointer with its default.
func (b BackendConfig) RetainOnTimeoutEnabled() bool {
	if b.RetainOnTimeout == nil {
		return true
	}
	return *b.RetainOnTimeout
}
