package supervisor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"flowctl/internal/layout"
	"flowctl/pkg/logging"
)

// ProcessHandle is an opaque reference to a running external process.
// At most one is live per supervisor, owned exclusively by it.
type ProcessHandle interface {
	PID() int
	Alive() bool
	// Terminate signals the process to stop and waits for it to exit,
	// escalating to SIGKILL after a bounded grace period.
	Terminate() error
}

// Runner is the narrow capability for OS process lifecycle, so supervisor
// logic stays testable against a fake without touching the real OS.
type Runner interface {
	Spawn(cmd layout.Command, env map[string]string) (ProcessHandle, error)
}

// ExecRunner spawns real OS processes via os/exec. The child is placed in
// its own process group so interpreter children die with it.
type ExecRunner struct {
	StopTimeout time.Duration // Grace period between SIGTERM and SIGKILL
}

// NewExecRunner creates a runner with the given SIGTERM grace period.
func NewExecRunner(stopTimeout time.Duration) *ExecRunner {
	return &ExecRunner{StopTimeout: stopTimeout}
}

func (r *ExecRunner) Spawn(command layout.Command, env map[string]string) (ProcessHandle, error) {
	cmd := exec.Command(command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Env = os.Environ() // Inherit current environment
	for k, v := range env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	stdoutPipe, pipeErr := cmd.StdoutPipe()
	if pipeErr != nil {
		return nil, fmt.Errorf("stdout pipe for %s: %w", command.Name, pipeErr)
	}
	stderrPipe, pipeErr := cmd.StderrPipe()
	if pipeErr != nil {
		stdoutPipe.Close()
		return nil, fmt.Errorf("stderr pipe for %s: %w", command.Name, pipeErr)
	}

	if err := cmd.Start(); err != nil {
		stdoutPipe.Close()
		stderrPipe.Close()
		return nil, err
	}

	handle := &osProcessHandle{
		pid:         cmd.Process.Pid,
		cmd:         cmd,
		done:        make(chan struct{}),
		stopTimeout: r.StopTimeout,
	}

	go forwardOutput(command.Name, "STDOUT", stdoutPipe)
	go forwardOutput(command.Name, "STDERR", stderrPipe)

	go func() {
		err := cmd.Wait()
		handle.mu.Lock()
		handle.waitErr = err
		handle.mu.Unlock()
		close(handle.done)
		if err != nil {
			logging.Warn("Runner", "Process %s (PID %d) exited: %v", command.Name, handle.pid, err)
		} else {
			logging.Debug("Runner", "Process %s (PID %d) exited cleanly", command.Name, handle.pid)
		}
	}()

	logging.Info("Runner", "Spawned %s (PID %d) in %s", command.Name, handle.pid, command.Dir)
	return handle, nil
}

// forwardOutput line-scans a child pipe into the launcher's log stream.
func forwardOutput(name string, stream string, pipe io.ReadCloser) {
	defer pipe.Close()
	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		logging.Debug("Backend", "[%s %s] %s", name, stream, scanner.Text())
	}
}

type osProcessHandle struct {
	pid         int
	cmd         *exec.Cmd
	done        chan struct{}
	stopTimeout time.Duration

	mu      sync.Mutex
	waitErr error
}

func (h *osProcessHandle) PID() int { return h.pid }

func (h *osProcessHandle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *osProcessHandle) Terminate() error {
	if !h.Alive() {
		return nil
	}

	// Signal the whole process group so interpreter children go too.
	if err := syscall.Kill(-h.pid, syscall.SIGTERM); err != nil {
		if err == syscall.ESRCH {
			return nil
		}
		return err
	}

	select {
	case <-h.done:
		return nil
	case <-time.After(h.stopTimeout):
	}

	logging.Warn("Runner", "Process group %d did not stop after SIGTERM, sending SIGKILL", h.pid)
	if err := syscall.Kill(-h.pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return err
	}
	<-h.done
	return nil
}
