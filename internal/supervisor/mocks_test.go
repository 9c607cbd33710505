package supervisor

import (
	"context"
	"sync"

	"flowctl/internal/health"
	"flowctl/internal/layout"
)

// fakeLayout satisfies layout.Layout without touching the filesystem.
type fakeLayout struct {
	cmdErr  error
	rootErr error
	root    string
}

func (f *fakeLayout) Name() string { return "fake" }

func (f *fakeLayout) BackendCommand() (layout.Command, error) {
	if f.cmdErr != nil {
		return layout.Command{}, f.cmdErr
	}
	return layout.Command{Name: "fake-backend"}, nil
}

func (f *fakeLayout) ContentRoot() (string, error) {
	if f.rootErr != nil {
		return "", f.rootErr
	}
	return f.root, nil
}

// fakeHandle records termination without any OS interaction.
type fakeHandle struct {
	mu         sync.Mutex
	pid        int
	terminated int
	killErr    error
}

func (h *fakeHandle) PID() int { return h.pid }

func (h *fakeHandle) Alive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.terminated == 0
}

func (h *fakeHandle) Terminate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.terminated++
	return h.killErr
}

func (h *fakeHandle) terminateCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.terminated
}

// fakeRunner counts spawns and hands out fakeHandles.
type fakeRunner struct {
	mu       sync.Mutex
	spawns   int
	spawnErr error
	killErr  error
	handles  []*fakeHandle
}

func (r *fakeRunner) Spawn(cmd layout.Command, env map[string]string) (ProcessHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spawns++
	if r.spawnErr != nil {
		return nil, r.spawnErr
	}
	h := &fakeHandle{pid: 1000 + r.spawns, killErr: r.killErr}
	r.handles = append(r.handles, h)
	return h, nil
}

func (r *fakeRunner) spawnCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spawns
}

func (r *fakeRunner) lastHandle() *fakeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.handles) == 0 {
		return nil
	}
	return r.handles[len(r.handles)-1]
}

// fakeProbe reports not-ready for a fixed number of checks, then ready.
type fakeProbe struct {
	mu                  sync.Mutex
	checks              int
	failuresBeforeReady int
	neverReady          bool
}

func (p *fakeProbe) Check(ctx context.Context, endpoint health.Endpoint) health.ReadinessResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks++
	if p.neverReady {
		return health.ReadinessResult{Endpoint: endpoint}
	}
	return health.ReadinessResult{
		Ready:    p.checks > p.failuresBeforeReady,
		Endpoint: endpoint,
	}
}

func (p *fakeProbe) checkCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checks
}
