package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"flowctl/internal/api"

	"github.com/spf13/cobra"
)

func newBackendCmd() *cobra.Command {
	backendCmd := &cobra.Command{
		Use:   "backend",
		Short: "Manage the Flowboard backend process on its own",
		Long: `Operates the backend process without the web server. Useful when the
web interface is served some other way, for example by a frontend dev
server with hot reload.`,
	}

	backendCmd.AddCommand(newBackendStartCmd())
	backendCmd.AddCommand(newBackendStatusCmd())
	return backendCmd
}

func newBackendStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the backend and supervise it in the foreground",
		Long: `Spawns the backend process, waits until its health endpoint responds,
then keeps supervising it. Press Ctrl+C to terminate the backend and exit.`,
		Args: cobra.NoArgs,
		RunE: runBackendStart,
	}
}

func runBackendStart(cmd *cobra.Command, args []string) error {
	if _, err := bootstrapLauncher(); err != nil {
		return err
	}

	launcher := api.GetLauncherAPI()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := launcher.StartBackend(ctx); err != nil {
		return err
	}

	health := launcher.CheckBackendHealth(ctx)
	cmd.Printf("Backend is ready at %s. Press Ctrl+C to stop.\n", health.URL)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	return launcher.StopBackend(context.Background())
}

func newBackendStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the backend health endpoint responds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrapLauncher(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			printReachability(cmd, "backend", api.GetLauncherAPI().CheckBackendHealth(ctx))
			return nil
		},
	}
}
