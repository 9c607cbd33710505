// Package api provides the public command surface for the shell layer.
//
// The shell (CLI commands today, a desktop shell tomorrow) talks to the
// running launcher exclusively through the LauncherAPI interface. The
// implementation is registered at bootstrap time via SetLauncherAPI, which
// keeps the cmd layer free of dependencies on internal packages and makes
// the surface trivially mockable in tests.
//
// Operations mirror the supervisor commands: check backend health, start
// and stop the backend process, start and stop the embedded web server,
// and query combined status. Every operation reports failures as
// descriptive errors; health checks report unreachability as a boolean
// rather than an error.
package api
