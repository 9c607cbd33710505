package api

import "context"

// LauncherAPI is the command surface exposed to the shell layer. Every
// operation returns success or a descriptive failure; none panics or
// aborts the launcher.
type LauncherAPI interface {
	// CheckBackendHealth issues a single health probe. Network failure is
	// reported as Running=false, never as an error.
	CheckBackendHealth(ctx context.Context) BackendHealthStatus

	// CheckWebStatus reports whether the embedded web server's port accepts
	// connections.
	CheckWebStatus(ctx context.Context) BackendHealthStatus

	StartBackend(ctx context.Context) error
	StopBackend(ctx context.Context) error
	StartWebServer(ctx context.Context) error
	StopWebServer(ctx context.Context) error

	// Status reports both supervisors' lifecycle states.
	Status() LaunchStatus
}
