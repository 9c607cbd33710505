package supervisor

import (
	"context"
)

// State represents the lifecycle state of a supervised resource.
type State string

const (
	StateIdle     State = "Idle"
	StateStarting State = "Starting"
	StateReady    State = "Ready"
	StateRunning  State = "Running"
	StateStopping State = "Stopping"
	StateFailed   State = "Failed"
)

// Supervisor owns zero-or-one live resource handle. Start and Stop are
// idempotent: starting an already-running resource and stopping an empty
// slot are both successful no-ops.
type Supervisor interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	State() State
	Label() string
}

// StateChangeCallback is called when a supervisor's state changes.
type StateChangeCallback func(label string, oldState, newState State, err error)
