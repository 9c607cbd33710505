package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flowctl/internal/health"
	"flowctl/internal/layout"
	"flowctl/pkg/logging"
)

// BackendConfig configures a BackendSupervisor.
type BackendConfig struct {
	Endpoint          health.Endpoint   // Health-check target
	ReadinessAttempts int               // Probe attempts before ErrStartupTimeout
	ReadinessInterval time.Duration     // Fixed spacing between attempts, no backoff
	RetainOnTimeout   bool              // Keep the process alive on readiness timeout
	Debug             bool              // Run the backend with LOG_LEVEL=DEBUG
	Env               map[string]string // Extra environment for the child process
}

// BackendSupervisor owns zero-or-one backend server process. Start spawns
// the process resolved by the injected Layout and polls the health probe
// with a bounded, fixed-interval retry budget; Stop terminates it.
//
// The handle slot is guarded by a mutex that is never held across the
// readiness poll, so a concurrent Stop is never blocked behind the wait.
type BackendSupervisor struct {
	mu     sync.Mutex
	handle ProcessHandle
	state  State

	layout layout.Layout
	runner Runner
	probe  health.Probe
	cfg    BackendConfig

	stateCallback StateChangeCallback
}

// NewBackendSupervisor creates a backend supervisor. The layout, runner, and
// probe are injected so the supervision logic is testable against fakes.
func NewBackendSupervisor(l layout.Layout, r Runner, p health.Probe, cfg BackendConfig) *BackendSupervisor {
	return &BackendSupervisor{
		state:  StateIdle,
		layout: l,
		runner: r,
		probe:  p,
		cfg:    cfg,
	}
}

func (s *BackendSupervisor) Label() string { return "backend" }

// State returns the current lifecycle state.
func (s *BackendSupervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetStateChangeCallback registers a callback for state transitions.
func (s *BackendSupervisor) SetStateChangeCallback(cb StateChangeCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateCallback = cb
}

// Endpoint returns the backend health endpoint.
func (s *BackendSupervisor) Endpoint() health.Endpoint {
	return s.cfg.Endpoint
}

// CheckHealth issues a one-shot probe against the backend endpoint.
func (s *BackendSupervisor) CheckHealth(ctx context.Context) health.ReadinessResult {
	return s.probe.Check(ctx, s.cfg.Endpoint)
}

// Start launches the backend process and blocks until it answers its health
// endpoint or the readiness budget is exhausted. If a process handle is
// already stored, Start is a successful no-op.
func (s *BackendSupervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.handle != nil {
		s.mu.Unlock()
		logging.Debug("BackendSupervisor", "Backend already running, start is a no-op")
		return nil
	}
	s.setStateLocked(StateStarting, nil)

	command, err := s.layout.BackendCommand()
	if err != nil {
		s.setStateLocked(StateFailed, err)
		s.mu.Unlock()
		logging.Error("BackendSupervisor", err, "Failed to resolve backend command (%s layout)", s.layout.Name())
		return err
	}

	handle, err := s.runner.Spawn(command, s.childEnv())
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrSpawnFailed, err)
		s.setStateLocked(StateFailed, wrapped)
		s.mu.Unlock()
		logging.Error("BackendSupervisor", err, "Failed to spawn %s", command.Name)
		return wrapped
	}
	s.handle = handle
	// Release before polling so a concurrent Stop is never blocked behind
	// the readiness wait.
	s.mu.Unlock()

	logging.Info("BackendSupervisor", "Waiting for backend readiness at %s (%d attempts, %s apart)",
		s.cfg.Endpoint.URL(), s.cfg.ReadinessAttempts, s.cfg.ReadinessInterval)

	for attempt := 0; attempt < s.cfg.ReadinessAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.cfg.ReadinessInterval):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if result := s.probe.Check(ctx, s.cfg.Endpoint); result.Ready {
			s.setState(StateReady, nil)
			logging.Info("BackendSupervisor", "Backend is ready at %s", s.cfg.Endpoint.URL())
			return nil
		}
	}

	if !s.cfg.RetainOnTimeout {
		s.mu.Lock()
		stale := s.handle
		s.handle = nil
		s.mu.Unlock()
		if stale != nil {
			if killErr := stale.Terminate(); killErr != nil {
				logging.Warn("BackendSupervisor", "Failed to kill unready backend: %v", killErr)
			}
		}
	}

	s.setState(StateFailed, ErrStartupTimeout)
	logging.Error("BackendSupervisor", ErrStartupTimeout, "Backend never answered %s", s.cfg.Endpoint.URL())
	return ErrStartupTimeout
}

// Stop terminates the backend process if one is stored. An empty handle
// slot is a successful no-op with no OS calls.
func (s *BackendSupervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	handle := s.handle
	s.handle = nil
	if handle == nil {
		s.mu.Unlock()
		logging.Debug("BackendSupervisor", "No backend process stored, stop is a no-op")
		return nil
	}
	s.setStateLocked(StateStopping, nil)
	s.mu.Unlock()

	logging.Info("BackendSupervisor", "Stopping backend (PID %d)", handle.PID())
	if err := handle.Terminate(); err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrKillFailed, err)
		s.setState(StateFailed, wrapped)
		logging.Error("BackendSupervisor", err, "Failed to terminate backend (PID %d)", handle.PID())
		return wrapped
	}

	s.setState(StateIdle, nil)
	return nil
}

func (s *BackendSupervisor) childEnv() map[string]string {
	env := make(map[string]string, len(s.cfg.Env)+1)
	if s.cfg.Debug {
		env["LOG_LEVEL"] = "DEBUG"
	}
	for k, v := range s.cfg.Env {
		env[k] = v
	}
	return env
}

func (s *BackendSupervisor) setState(newState State, err error) {
	s.mu.Lock()
	s.setStateLocked(newState, err)
	s.mu.Unlock()
}

// setStateLocked must be called with s.mu held. The callback is invoked
// asynchronously so subscribers can never deadlock against the slot lock.
func (s *BackendSupervisor) setStateLocked(newState State, err error) {
	oldState := s.state
	if oldState == newState {
		return
	}
	s.state = newState
	if s.stateCallback != nil {
		go s.stateCallback(s.Label(), oldState, newState, err)
	}
}
