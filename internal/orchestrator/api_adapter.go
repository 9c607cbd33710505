package orchestrator

import (
	"context"

	"flowctl/internal/api"
	"flowctl/internal/health"
)

// healthChecker is the optional capability of supervisors that can issue a
// one-shot liveness probe.
type healthChecker interface {
	CheckHealth(ctx context.Context) health.ReadinessResult
}

// APIAdapter exposes the orchestrator through the api.LauncherAPI surface.
type APIAdapter struct {
	orch        *Orchestrator
	webProbe    health.Probe
	webEndpoint health.Endpoint
}

// NewAPIAdapter creates an adapter over the orchestrator. The web probe is
// a plain TCP dial against the web server's bind address.
func NewAPIAdapter(orch *Orchestrator, webProbe health.Probe, webEndpoint health.Endpoint) *APIAdapter {
	return &APIAdapter{
		orch:        orch,
		webProbe:    webProbe,
		webEndpoint: webEndpoint,
	}
}

// Register publishes this adapter as the launcher API implementation.
func (a *APIAdapter) Register() {
	api.SetLauncherAPI(a)
}

func (a *APIAdapter) CheckBackendHealth(ctx context.Context) api.BackendHealthStatus {
	checker, ok := a.orch.Backend().(healthChecker)
	if !ok {
		return api.BackendHealthStatus{}
	}
	result := checker.CheckHealth(ctx)
	return api.BackendHealthStatus{
		Running: result.Ready,
		URL:     result.Endpoint.URL(),
	}
}

func (a *APIAdapter) CheckWebStatus(ctx context.Context) api.BackendHealthStatus {
	result := a.webProbe.Check(ctx, a.webEndpoint)
	return api.BackendHealthStatus{
		Running: result.Ready,
		URL:     a.orch.cfg.WebURL,
	}
}

func (a *APIAdapter) StartBackend(ctx context.Context) error {
	return a.orch.Backend().Start(ctx)
}

func (a *APIAdapter) StopBackend(ctx context.Context) error {
	return a.orch.Backend().Stop(ctx)
}

func (a *APIAdapter) StartWebServer(ctx context.Context) error {
	return a.orch.Web().Start(ctx)
}

func (a *APIAdapter) StopWebServer(ctx context.Context) error {
	return a.orch.Web().Stop(ctx)
}

func (a *APIAdapter) Status() api.LaunchStatus {
	status := a.orch.Status()
	return api.LaunchStatus{
		SessionID: status.SessionID,
		Backend:   api.ComponentStatus{Label: a.orch.Backend().Label(), State: string(status.Backend)},
		Web:       api.ComponentStatus{Label: a.orch.Web().Label(), State: string(status.Web)},
		WebURL:    status.WebURL,
	}
}
