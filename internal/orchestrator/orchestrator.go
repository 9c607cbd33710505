package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"flowctl/internal/supervisor"
	"flowctl/pkg/logging"

	"github.com/google/uuid"
)

// Navigator is the shell layer's display surface. After a successful
// StartAll the orchestrator tells it to navigate to the served URL; the
// consumer is opaque (a desktop window, a browser open call, a log line).
type Navigator interface {
	Navigate(url string)
}

// StateChangedEvent is published to subscribers whenever a supervised
// component changes lifecycle state.
type StateChangedEvent struct {
	SessionID string
	Label     string
	OldState  supervisor.State
	NewState  supervisor.State
	Err       error
	Timestamp time.Time
}

// Status is a point-in-time snapshot surfaced to the shell layer.
type Status struct {
	SessionID string
	Backend   supervisor.State
	Web       supervisor.State
	WebURL    string
}

// Config holds orchestrator settings.
type Config struct {
	WebURL string // URL the shell is told to display once everything is up

	// NavigationDelay is a fixed pause before issuing the navigation,
	// tolerating web server startup lag. An acknowledged heuristic: the
	// authoritative readiness signal is StartAll returning nil.
	NavigationDelay time.Duration
}

// stateNotifier is an optional interface for supervisors that publish
// state transitions.
type stateNotifier interface {
	SetStateChangeCallback(supervisor.StateChangeCallback)
}

// Orchestrator sequences the two supervisors: backend process first, web
// server second on startup, and the strict reverse on shutdown. It is the
// single control point the shell layer talks to.
type Orchestrator struct {
	backend   supervisor.Supervisor
	web       supervisor.Supervisor
	navigator Navigator
	cfg       Config

	sessionID string

	mu          sync.RWMutex
	subscribers []chan<- StateChangedEvent
}

// New creates an orchestrator over the given supervisors. Each launch gets
// a fresh session ID carried in published state-change events.
func New(backend, web supervisor.Supervisor, navigator Navigator, cfg Config) *Orchestrator {
	o := &Orchestrator{
		backend:   backend,
		web:       web,
		navigator: navigator,
		cfg:       cfg,
		sessionID: uuid.NewString(),
	}

	for _, s := range []supervisor.Supervisor{backend, web} {
		if notifier, ok := s.(stateNotifier); ok {
			notifier.SetStateChangeCallback(o.publishStateChange)
		}
	}
	return o
}

// SessionID returns this launch's session identifier.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// SubscribeStateChanges registers a channel for state-change events.
// Sends are non-blocking; a full subscriber misses events rather than
// stalling a supervisor transition.
func (o *Orchestrator) SubscribeStateChanges(ch chan<- StateChangedEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = append(o.subscribers, ch)
}

func (o *Orchestrator) publishStateChange(label string, oldState, newState supervisor.State, err error) {
	event := StateChangedEvent{
		SessionID: o.sessionID,
		Label:     label,
		OldState:  oldState,
		NewState:  newState,
		Err:       err,
		Timestamp: time.Now(),
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, ch := range o.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// StartAll brings the system up: backend process first (blocking until it
// is healthy), then the web server (blocking until it is bound). A failure
// in either step is logged and returned without attempting the remaining
// step. After both succeed, the shell is told to navigate to the web URL.
func (o *Orchestrator) StartAll(ctx context.Context) error {
	logging.Info("Orchestrator", "Starting launch session %s", o.sessionID)

	if err := o.backend.Start(ctx); err != nil {
		logging.Error("Orchestrator", err, "Backend failed to start, skipping web server")
		return err
	}

	if err := o.web.Start(ctx); err != nil {
		logging.Error("Orchestrator", err, "Web server failed to start")
		return err
	}

	logging.Info("Orchestrator", "All components up, web UI at %s", o.cfg.WebURL)

	if o.navigator != nil {
		// Fire-and-forget: the navigation pause tolerates startup lag on
		// the display side without holding the caller.
		go func() {
			if o.cfg.NavigationDelay > 0 {
				time.Sleep(o.cfg.NavigationDelay)
			}
			o.navigator.Navigate(o.cfg.WebURL)
		}()
	}

	return nil
}

// StopAll tears the system down in strict reverse order: web server first,
// then the backend process. Best-effort: a failure stopping the web server
// does not prevent the attempt to stop the backend. Each stop tolerates
// nothing running.
func (o *Orchestrator) StopAll(ctx context.Context) error {
	logging.Info("Orchestrator", "Stopping launch session %s", o.sessionID)

	var errs []error
	if err := o.web.Stop(ctx); err != nil {
		logging.Error("Orchestrator", err, "Failed to stop web server")
		errs = append(errs, err)
	}
	if err := o.backend.Stop(ctx); err != nil {
		logging.Error("Orchestrator", err, "Failed to stop backend")
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Status reports both supervisors' states for the shell layer.
func (o *Orchestrator) Status() Status {
	return Status{
		SessionID: o.sessionID,
		Backend:   o.backend.State(),
		Web:       o.web.State(),
		WebURL:    o.cfg.WebURL,
	}
}

// Backend exposes the backend supervisor for the command surface.
func (o *Orchestrator) Backend() supervisor.Supervisor { return o.backend }

// Web exposes the web supervisor for the command surface.
func (o *Orchestrator) Web() supervisor.Supervisor { return o.web }
