// Package config provides configuration management for flowctl.
//
// This package implements a layered configuration system that allows users to
// customize flowctl's behavior through YAML files. Configuration is loaded from
// multiple sources and merged in a specific order, with later sources overriding
// earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Provides sensible defaults for all settings
//     - Ensures flowctl works out-of-the-box against a standard Flowboard build
//
//  2. User Configuration (~/.config/flowctl/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.flowctl/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share configuration via version control
//
// An explicit --config path replaces layers 2 and 3 with a single file.
//
// # Configuration Structure
//
//	globalSettings:
//	  logLevel: info
//
//	layout:
//	  mode: auto            # "auto", "dev", or "packaged"
//	  sourceRoot: .
//	  interpreter: python3
//	  script: server/main.py
//	  devContentRoot: web/dist
//	  executableName: flowboard-server
//	  contentDirName: web
//
//	backend:
//	  host: localhost
//	  port: 8000
//	  healthPath: /health
//	  readinessAttempts: 30
//	  retainOnTimeout: true
//	  env:
//	    FLOWBOARD_BASE_DIR: /opt/flowboard
//
//	web:
//	  host: localhost
//	  port: 3000
//	  indexDocument: index.html
//
// Durations (readiness interval, probe timeout, navigation delay) are
// expressed in nanoseconds when set from YAML; the defaults are usually
// what you want.
//
// # Layout Resolution
//
// The layout section controls dev-vs-packaged path resolution. In dev mode the
// backend runs as interpreter+script relative to the source tree; in packaged
// mode it runs as a self-contained executable sibling to the launcher binary.
// Auto mode selects packaged when that sibling executable exists on disk.
package config
