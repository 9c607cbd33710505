package supervisor

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"flowctl/internal/layout"
	"flowctl/pkg/logging"
)

// WebConfig configures a WebSupervisor.
type WebConfig struct {
	Host            string        // Loopback bind host
	Port            int           // Fixed bind port
	IndexDocument   string        // Served for the content root, e.g. "index.html"
	ShutdownTimeout time.Duration // Bound on graceful shutdown
}

// ServerHandle is an opaque reference to a running embedded HTTP server.
type ServerHandle struct {
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// WebSupervisor owns zero-or-one embedded static-file server. Start binds
// the fixed loopback address and begins serving the layout's content root
// concurrently; Stop performs a graceful shutdown.
type WebSupervisor struct {
	mu     sync.Mutex
	handle *ServerHandle
	state  State

	layout layout.Layout
	cfg    WebConfig

	stateCallback StateChangeCallback
}

// NewWebSupervisor creates a web supervisor serving the layout's content root.
func NewWebSupervisor(l layout.Layout, cfg WebConfig) *WebSupervisor {
	return &WebSupervisor{
		state:  StateIdle,
		layout: l,
		cfg:    cfg,
	}
}

func (s *WebSupervisor) Label() string { return "web" }

// State returns the current lifecycle state.
func (s *WebSupervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetStateChangeCallback registers a callback for state transitions.
func (s *WebSupervisor) SetStateChangeCallback(cb StateChangeCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateCallback = cb
}

// URL returns the address the web server serves on.
func (s *WebSupervisor) URL() string {
	return fmt.Sprintf("http://%s:%d/", s.cfg.Host, s.cfg.Port)
}

// Start binds the server and returns once the listener is accepting; the
// accept loop runs in its own goroutine. If a server handle is already
// stored, Start is a successful no-op.
func (s *WebSupervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.handle != nil {
		s.mu.Unlock()
		logging.Debug("WebSupervisor", "Web server already running, start is a no-op")
		return nil
	}
	s.setStateLocked(StateStarting, nil)

	root, err := s.layout.ContentRoot()
	if err != nil {
		s.setStateLocked(StateFailed, err)
		s.mu.Unlock()
		logging.Error("WebSupervisor", err, "Failed to resolve content root (%s layout)", s.layout.Name())
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrBindFailed, err)
		s.setStateLocked(StateFailed, wrapped)
		s.mu.Unlock()
		logging.Error("WebSupervisor", err, "Failed to bind %s", addr)
		return wrapped
	}

	server := &http.Server{
		Handler: newContentHandler(root, s.cfg.IndexDocument),
	}
	handle := &ServerHandle{
		server:   server,
		listener: listener,
		done:     make(chan struct{}),
	}
	s.handle = handle
	s.setStateLocked(StateRunning, nil)
	s.mu.Unlock()

	go func() {
		defer close(handle.done)
		if serveErr := server.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			logging.Error("WebSupervisor", serveErr, "Web server terminated unexpectedly")
		}
	}()

	logging.Info("WebSupervisor", "Serving %s at %s", root, s.URL())
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// within the configured bound. An empty handle slot is a successful no-op.
func (s *WebSupervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	handle := s.handle
	s.handle = nil
	if handle == nil {
		s.mu.Unlock()
		logging.Debug("WebSupervisor", "No web server stored, stop is a no-op")
		return nil
	}
	s.setStateLocked(StateStopping, nil)
	s.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	logging.Info("WebSupervisor", "Shutting down web server on %s", s.URL())
	err := handle.server.Shutdown(shutdownCtx)
	<-handle.done

	if err != nil {
		s.setState(StateFailed, err)
		logging.Error("WebSupervisor", err, "Graceful shutdown did not complete")
		return fmt.Errorf("web server shutdown: %w", err)
	}

	s.setState(StateIdle, nil)
	return nil
}

func (s *WebSupervisor) setState(newState State, err error) {
	s.mu.Lock()
	s.setStateLocked(newState, err)
	s.mu.Unlock()
}

func (s *WebSupervisor) setStateLocked(newState State, err error) {
	oldState := s.state
	if oldState == newState {
		return
	}
	s.state = newState
	if s.stateCallback != nil {
		go s.stateCallback(s.Label(), oldState, newState, err)
	}
}

// newContentHandler serves the content root with the designated index
// document for the directory root and plain directory listings elsewhere.
func newContentHandler(root, indexDocument string) http.Handler {
	fileServer := http.FileServer(http.Dir(root))
	if indexDocument == "" || indexDocument == "index.html" {
		// http.FileServer already prefers index.html for directories.
		return fileServer
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			index := filepath.Join(root, indexDocument)
			if _, err := os.Stat(index); err == nil {
				http.ServeFile(w, r, index)
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
