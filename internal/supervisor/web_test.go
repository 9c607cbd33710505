package supervisor

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"flowctl/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freePort grabs an ephemeral port and releases it for the supervisor to bind.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

// contentRoot builds a throwaway site with an index and a nested asset.
func contentRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>flowboard</html>"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)"), 0644))
	return root
}

func testWebConfig(port int) WebConfig {
	return WebConfig{
		Host:            "127.0.0.1",
		Port:            port,
		IndexDocument:   "index.html",
		ShutdownTimeout: 2 * time.Second,
	}
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestWebStart_ServesContent(t *testing.T) {
	s := NewWebSupervisor(&fakeLayout{root: contentRoot(t)}, testWebConfig(freePort(t)))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())
	assert.Equal(t, StateRunning, s.State())

	// Index fallback at the directory root
	status, body := fetch(t, s.URL())
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "flowboard")

	// Nested asset
	status, body = fetch(t, s.URL()+"assets/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "console.log")

	// Directory listing for a non-index directory
	status, body = fetch(t, s.URL()+"assets/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "app.js")
}

func TestWebStart_CustomIndexDocument(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.html"), []byte("custom entry"), 0644))

	cfg := testWebConfig(freePort(t))
	cfg.IndexDocument = "main.html"
	s := NewWebSupervisor(&fakeLayout{root: root}, cfg)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	status, body := fetch(t, s.URL())
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "custom entry")
}

func TestWebStart_Idempotent(t *testing.T) {
	s := NewWebSupervisor(&fakeLayout{root: contentRoot(t)}, testWebConfig(freePort(t)))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	// Second start observes the stored handle and does not bind again.
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, StateRunning, s.State())
}

func TestWebStart_ContentRootNotFound(t *testing.T) {
	l := &fakeLayout{rootErr: layout.ErrContentRootNotFound}
	s := NewWebSupervisor(l, testWebConfig(freePort(t)))

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, layout.ErrContentRootNotFound)
	assert.Equal(t, StateFailed, s.State())
}

func TestWebStart_BindFailed(t *testing.T) {
	port := freePort(t)

	// Occupy the fixed port with a conflicting listener.
	conflict, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	require.NoError(t, err)

	s := NewWebSupervisor(&fakeLayout{root: contentRoot(t)}, testWebConfig(port))

	err = s.Start(context.Background())
	assert.ErrorIs(t, err, ErrBindFailed)

	// Retrying after the conflicting listener closes succeeds.
	require.NoError(t, conflict.Close())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())
	assert.Equal(t, StateRunning, s.State())
}

func TestWebStop_GracefulAndIdempotent(t *testing.T) {
	cfg := testWebConfig(freePort(t))
	s := NewWebSupervisor(&fakeLayout{root: contentRoot(t)}, cfg)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, StateIdle, s.State())

	// The port is released: a fresh start binds again.
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	// Stop with nothing stored is a no-op.
	require.NoError(t, s.Stop(context.Background()))
}
