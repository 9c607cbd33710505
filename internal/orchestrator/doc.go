// Package orchestrator sequences flowctl's supervisors at application
// startup and shutdown.
//
// Startup order is backend process first, web server second; a failure in
// the backend step short-circuits the sequence and the web server is never
// attempted. Shutdown runs the strict reverse order and is best-effort:
// both stops are always attempted and their failures joined.
//
// After a successful startup the orchestrator tells the injected Navigator
// (the shell layer's display surface) to navigate to the web URL, after a
// fixed configurable delay. The delay is a heuristic for display-side lag;
// the authoritative readiness signal is StartAll returning nil.
//
// Every launch carries a session ID, and supervisor state transitions are
// republished to subscribers as StateChangedEvents for status surfaces.
package orchestrator
