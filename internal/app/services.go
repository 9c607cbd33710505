package app

import (
	"fmt"

	"flowctl/internal/health"
	"flowctl/internal/layout"
	"flowctl/internal/orchestrator"
	"flowctl/internal/supervisor"
	"flowctl/pkg/logging"
)

// Services holds the wired-up components of a launcher instance.
type Services struct {
	Layout       layout.Layout
	Orchestrator *orchestrator.Orchestrator
	LauncherAPI  *orchestrator.APIAdapter
}

// logNavigator is the CLI's display surface: it surfaces the navigation
// instruction as a log entry for the user (or an attached shell) to act on.
type logNavigator struct{}

func (logNavigator) Navigate(url string) {
	logging.Info("Shell", "Web UI ready, navigate to %s", url)
}

// InitializeServices builds the layout, supervisors, orchestrator, and API
// surface from the loaded configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	fc := cfg.FlowctlConfig

	selected, err := layout.Select(fc.Layout)
	if err != nil {
		return nil, fmt.Errorf("selecting layout: %w", err)
	}
	logging.Info("Bootstrap", "Using %s layout", selected.Name())

	backendEndpoint := health.Endpoint{
		Scheme: "http",
		Host:   fc.Backend.Host,
		Port:   fc.Backend.Port,
		Path:   fc.Backend.HealthPath,
	}
	webEndpoint := health.Endpoint{
		Scheme: "http",
		Host:   fc.Web.Host,
		Port:   fc.Web.Port,
		Path:   "/",
	}

	runner := supervisor.NewExecRunner(fc.Backend.StopTimeout)
	backendProbe := health.NewHTTPProbe(fc.Backend.ProbeTimeout)

	backend := supervisor.NewBackendSupervisor(selected, runner, backendProbe, supervisor.BackendConfig{
		Endpoint:          backendEndpoint,
		ReadinessAttempts: fc.Backend.ReadinessAttempts,
		ReadinessInterval: fc.Backend.ReadinessInterval,
		RetainOnTimeout:   fc.Backend.RetainOnTimeoutEnabled(),
		Debug:             cfg.Debug || fc.Backend.Debug,
		Env:               fc.Backend.Env,
	})

	web := supervisor.NewWebSupervisor(selected, supervisor.WebConfig{
		Host:            fc.Web.Host,
		Port:            fc.Web.Port,
		IndexDocument:   fc.Web.IndexDocument,
		ShutdownTimeout: fc.Web.ShutdownTimeout,
	})

	orch := orchestrator.New(backend, web, logNavigator{}, orchestrator.Config{
		WebURL:          webEndpoint.URL(),
		NavigationDelay: fc.Navigation.Delay,
	})

	adapter := orchestrator.NewAPIAdapter(orch, health.NewTCPProbe(fc.Backend.ProbeTimeout), webEndpoint)
	adapter.Register()

	return &Services{
		Layout:       selected,
		Orchestrator: orch,
		LauncherAPI:  adapter,
	}, nil
}
