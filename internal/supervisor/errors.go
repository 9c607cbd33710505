package supervisor

import "errors"

// Failure taxonomy for supervised start/stop operations. All of these are
// non-fatal to the launcher itself: they are logged at the point of origin
// and returned to the caller as descriptive failures.
var (
	// ErrSpawnFailed wraps an OS refusal to start the backend process.
	ErrSpawnFailed = errors.New("failed to spawn backend process")

	// ErrStartupTimeout indicates the readiness budget was exhausted before
	// the backend answered its health endpoint. Depending on configuration
	// the process handle may still be retained.
	ErrStartupTimeout = errors.New("backend did not become ready within the readiness budget")

	// ErrKillFailed wraps a failure to signal the backend process.
	ErrKillFailed = errors.New("failed to terminate backend process")

	// ErrBindFailed wraps a failure to bind the web server's listen address,
	// typically because a prior instance still holds the port.
	ErrBindFailed = errors.New("failed to bind web server address")
)
