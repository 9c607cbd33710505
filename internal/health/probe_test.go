package health

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endpointFor derives an Endpoint from an httptest server URL.
func endpointFor(t *testing.T, rawURL string, path string) Endpoint {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return Endpoint{Scheme: "http", Host: u.Hostname(), Port: port, Path: path}
}

func TestEndpointURL(t *testing.T) {
	e := Endpoint{Scheme: "http", Host: "localhost", Port: 8000, Path: "/health"}
	assert.Equal(t, "http://localhost:8000/health", e.URL())
	assert.Equal(t, "localhost:8000", e.Address())
}

func TestHTTPProbe_Ready(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	probe := NewHTTPProbe(time.Second)
	result := probe.Check(context.Background(), endpointFor(t, srv.URL, "/health"))
	assert.True(t, result.Ready)
	assert.Equal(t, "/health", result.Endpoint.Path)
}

func TestHTTPProbe_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	probe := NewHTTPProbe(time.Second)
	result := probe.Check(context.Background(), endpointFor(t, srv.URL, "/health"))
	assert.False(t, result.Ready)
}

func TestHTTPProbe_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing is listening on.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	probe := NewHTTPProbe(500 * time.Millisecond)
	result := probe.Check(context.Background(), Endpoint{
		Scheme: "http", Host: "127.0.0.1", Port: port, Path: "/health",
	})
	// Network failure maps to not-ready, never to an error.
	assert.False(t, result.Ready)
}

func TestTCPProbe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	probe := NewTCPProbe(500 * time.Millisecond)
	result := probe.Check(context.Background(), Endpoint{Host: "127.0.0.1", Port: port})
	assert.True(t, result.Ready)

	l.Close()
	result = probe.Check(context.Background(), Endpoint{Host: "127.0.0.1", Port: port})
	assert.False(t, result.Ready)
}
