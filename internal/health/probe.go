package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"flowctl/pkg/logging"
)

// Endpoint identifies a local network target to probe. Immutable per run,
// fixed by configuration.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// URL renders the endpoint as a fetchable URL.
func (e Endpoint) URL() string {
	return fmt.Sprintf("%s://%s:%d%s", e.Scheme, e.Host, e.Port, e.Path)
}

// Address renders the endpoint as a host:port dial address.
func (e Endpoint) Address() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// ReadinessResult is the outcome of a single probe. Ephemeral, never stored.
type ReadinessResult struct {
	Ready    bool
	Endpoint Endpoint
}

// Probe issues a single liveness check against an endpoint. Implementations
// never return an error: connection failures, timeouts, and unhealthy
// responses all map to Ready=false, because transient unreachability during
// startup is expected rather than exceptional.
type Probe interface {
	Check(ctx context.Context, endpoint Endpoint) ReadinessResult
}

// HTTPProbe checks an endpoint with one GET request. Any 2xx response counts
// as ready.
type HTTPProbe struct {
	client *http.Client
}

// NewHTTPProbe creates an HTTP probe with a per-request timeout.
func NewHTTPProbe(timeout time.Duration) *HTTPProbe {
	return &HTTPProbe{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *HTTPProbe) Check(ctx context.Context, endpoint Endpoint) ReadinessResult {
	result := ReadinessResult{Endpoint: endpoint}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.URL(), nil)
	if err != nil {
		logging.Debug("HealthProbe", "Failed to build probe request for %s: %v", endpoint.URL(), err)
		return result
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// Connection refused, timeout, etc. The endpoint is simply not up yet.
		logging.Debug("HealthProbe", "Probe to %s failed: %v", endpoint.URL(), err)
		return result
	}
	defer resp.Body.Close()

	result.Ready = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Ready {
		logging.Debug("HealthProbe", "Probe to %s returned status %d", endpoint.URL(), resp.StatusCode)
	}
	return result
}

// TCPProbe checks an endpoint by attempting to open a TCP connection.
// Used for ports that do not speak HTTP health semantics, such as the
// embedded web server's bind address.
type TCPProbe struct {
	dialTimeout time.Duration
}

// NewTCPProbe creates a dial-only probe with a connect timeout.
func NewTCPProbe(timeout time.Duration) *TCPProbe {
	return &TCPProbe{dialTimeout: timeout}
}

func (p *TCPProbe) Check(ctx context.Context, endpoint Endpoint) ReadinessResult {
	result := ReadinessResult{Endpoint: endpoint}

	dialer := &net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", endpoint.Address())
	if err != nil {
		logging.Debug("HealthProbe", "TCP probe to %s failed: %v", endpoint.Address(), err)
		return result
	}
	conn.Close()

	result.Ready = true
	return result
}
