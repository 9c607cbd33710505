package cmd

import (
	"context"
	"fmt"

	"flowctl/internal/app"

	"github.com/spf13/cobra"
)

// upCmd defines the up command structure.
// This is the main command of flowctl: it brings up the backend and the
// web server and supervises both until the process is interrupted.
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the Flowboard backend and web server in the foreground.",
	Long: `Starts the full Flowboard stack and supervises it until interrupted.

Startup happens in order:

1. The backend process is spawned (dev layout runs it from source, the
   packaged layout runs the bundled executable next to flowctl).
2. The backend's health endpoint is polled until it responds, with a
   bounded number of attempts.
3. The embedded web server starts serving the built web interface.
4. The web UI address is announced once everything is ready.

Press Ctrl+C to stop: the web server shuts down gracefully first, then
the backend process is terminated.

Configuration:
  flowctl loads configuration from .flowctl/config.yaml in the current
  directory, merged over the user config directory. Use --config to load
  a single explicit file instead.`,
	Args: cobra.NoArgs, // No arguments required
	RunE: runUp,
}

// runUp is the main entry point for the up command
func runUp(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(rootDebug, rootConfigPath)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

// init registers the up command with the root command.
// This is called automatically when the package is imported.
func init() {
	rootCmd.AddCommand(upCmd)
}
