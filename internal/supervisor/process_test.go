package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowctl/internal/health"
	"flowctl/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackendConfig(attempts int, interval time.Duration) BackendConfig {
	return BackendConfig{
		Endpoint:          health.Endpoint{Scheme: "http", Host: "localhost", Port: 8000, Path: "/health"},
		ReadinessAttempts: attempts,
		ReadinessInterval: interval,
		RetainOnTimeout:   true,
	}
}

func TestBackendStart_ReadyFirstProbe(t *testing.T) {
	runner := &fakeRunner{}
	probe := &fakeProbe{}
	s := NewBackendSupervisor(&fakeLayout{}, runner, probe, testBackendConfig(30, time.Millisecond))

	err := s.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 1, runner.spawnCalls())
	assert.Equal(t, 1, probe.checkCalls())
}

func TestBackendStart_Idempotent(t *testing.T) {
	runner := &fakeRunner{}
	s := NewBackendSupervisor(&fakeLayout{}, runner, &fakeProbe{}, testBackendConfig(30, time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	// Exactly one live handle, no second spawn attempt.
	assert.Equal(t, 1, runner.spawnCalls())
}

func TestBackendStart_ReadyAfterRetries(t *testing.T) {
	const failures = 3
	interval := 10 * time.Millisecond

	runner := &fakeRunner{}
	probe := &fakeProbe{failuresBeforeReady: failures}
	s := NewBackendSupervisor(&fakeLayout{}, runner, probe, testBackendConfig(30, interval))

	started := time.Now()
	err := s.Start(context.Background())
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Equal(t, failures+1, probe.checkCalls())
	// Fixed spacing: N failed probes cost about N intervals.
	assert.GreaterOrEqual(t, elapsed, time.Duration(failures)*interval)
}

func TestBackendStart_TimeoutRetainsHandle(t *testing.T) {
	runner := &fakeRunner{}
	probe := &fakeProbe{neverReady: true}
	s := NewBackendSupervisor(&fakeLayout{}, runner, probe, testBackendConfig(5, time.Millisecond))

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrStartupTimeout)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, 5, probe.checkCalls())

	// The handle is retained, not cleaned up.
	handle := runner.lastHandle()
	require.NotNil(t, handle)
	assert.Equal(t, 0, handle.terminateCalls())

	// A later stop still takes and terminates the retained handle.
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 1, handle.terminateCalls())
}

func TestBackendStart_TimeoutKillsWhenNotRetained(t *testing.T) {
	cfg := testBackendConfig(3, time.Millisecond)
	cfg.RetainOnTimeout = false

	runner := &fakeRunner{}
	s := NewBackendSupervisor(&fakeLayout{}, runner, &fakeProbe{neverReady: true}, cfg)

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrStartupTimeout)
	assert.Equal(t, 1, runner.lastHandle().terminateCalls())

	// The slot is empty: stop performs no further OS calls.
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 1, runner.lastHandle().terminateCalls())
}

func TestBackendStart_ExecutableNotFound(t *testing.T) {
	runner := &fakeRunner{}
	l := &fakeLayout{cmdErr: layout.ErrExecutableNotFound}
	s := NewBackendSupervisor(l, runner, &fakeProbe{}, testBackendConfig(30, time.Millisecond))

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, layout.ErrExecutableNotFound)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, 0, runner.spawnCalls())
}

func TestBackendStart_SpawnFailed(t *testing.T) {
	runner := &fakeRunner{spawnErr: errors.New("exec format error")}
	s := NewBackendSupervisor(&fakeLayout{}, runner, &fakeProbe{}, testBackendConfig(30, time.Millisecond))

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrSpawnFailed)
	assert.Equal(t, StateFailed, s.State())

	// A failed spawn leaves the slot empty, so a retry spawns again.
	runner.spawnErr = nil
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 2, runner.spawnCalls())
}

func TestBackendStop_NoopWhenEmpty(t *testing.T) {
	runner := &fakeRunner{}
	s := NewBackendSupervisor(&fakeLayout{}, runner, &fakeProbe{}, testBackendConfig(30, time.Millisecond))

	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 0, runner.spawnCalls())
	assert.Equal(t, StateIdle, s.State())
}

func TestBackendStop_TerminatesProcess(t *testing.T) {
	runner := &fakeRunner{}
	s := NewBackendSupervisor(&fakeLayout{}, runner, &fakeProbe{}, testBackendConfig(30, time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	assert.Equal(t, 1, runner.lastHandle().terminateCalls())
	assert.Equal(t, StateIdle, s.State())

	// Second stop is a no-op.
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 1, runner.lastHandle().terminateCalls())
}

func TestBackendStop_KillFailed(t *testing.T) {
	runner := &fakeRunner{killErr: errors.New("operation not permitted")}
	s := NewBackendSupervisor(&fakeLayout{}, runner, &fakeProbe{}, testBackendConfig(30, time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	err := s.Stop(context.Background())
	assert.ErrorIs(t, err, ErrKillFailed)
}

func TestBackendStop_NotBlockedByReadinessPoll(t *testing.T) {
	runner := &fakeRunner{}
	probe := &fakeProbe{neverReady: true}
	s := NewBackendSupervisor(&fakeLayout{}, runner, probe, testBackendConfig(50, 20*time.Millisecond))

	startDone := make(chan error, 1)
	go func() { startDone <- s.Start(context.Background()) }()

	// Give Start time to spawn and enter the poll loop.
	require.Eventually(t, func() bool { return runner.spawnCalls() == 1 },
		time.Second, time.Millisecond)

	// The slot lock is not held across the poll, so Stop returns promptly.
	stopped := make(chan error, 1)
	go func() { stopped <- s.Stop(context.Background()) }()

	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Stop was blocked behind the readiness poll")
	}

	assert.ErrorIs(t, <-startDone, ErrStartupTimeout)
}

func TestBackendCheckHealth(t *testing.T) {
	probe := &fakeProbe{}
	s := NewBackendSupervisor(&fakeLayout{}, &fakeRunner{}, probe, testBackendConfig(30, time.Millisecond))

	result := s.CheckHealth(context.Background())
	assert.True(t, result.Ready)
	assert.Equal(t, "http://localhost:8000/health", result.Endpoint.URL())
}
