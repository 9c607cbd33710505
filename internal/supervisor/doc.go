// Package supervisor provides the lifecycle supervision core of flowctl.
//
// This package defines the supervisor abstraction and its two implementations:
// BackendSupervisor, which owns the external backend server process, and
// WebSupervisor, which owns the embedded static-file web server.
//
// # Core Concepts
//
// Handle slot: each supervisor holds at most one live resource reference
// (a ProcessHandle or ServerHandle) in a single mutex-guarded slot. A start
// call that observes an occupied slot is a successful no-op, never a
// duplicate launch; a stop call that observes an empty slot is a successful
// no-op with no OS calls.
//
// Lock discipline: the slot mutex is held only across the pointer swap that
// stores or takes the handle, never across a suspension point. In particular
// the backend readiness poll (up to 15 seconds by default) runs without the
// lock, so a concurrent Stop is never blocked behind it.
//
// # Supervisor Interface
//
//	type Supervisor interface {
//	    Start(ctx context.Context) error
//	    Stop(ctx context.Context) error
//	    State() State
//	    Label() string
//	}
//
// # Failure Taxonomy
//
// Start and Stop report failures through sentinel errors (ErrSpawnFailed,
// ErrStartupTimeout, ErrKillFailed, ErrBindFailed, plus the layout package's
// ErrExecutableNotFound and ErrContentRootNotFound). All failures are
// non-fatal to the launcher: they are logged at the point of origin and
// surfaced to the caller as descriptive errors.
//
// # Process Capability
//
// OS process lifecycle is abstracted behind the narrow Runner/ProcessHandle
// pair, so the supervision logic is testable against fakes without touching
// the real OS. The production ExecRunner spawns the child in its own process
// group, forwards its stdout/stderr into the launcher's logs, and terminates
// with a SIGTERM → bounded wait → SIGKILL ladder.
package supervisor
