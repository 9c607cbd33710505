package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"flowctl/internal/api"

	"github.com/spf13/cobra"
)

func newWebCmd() *cobra.Command {
	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Manage the embedded web server on its own",
		Long: `Operates the embedded static file server without the backend. Useful
for inspecting a built web bundle in isolation.`,
	}

	webCmd.AddCommand(newWebStartCmd())
	webCmd.AddCommand(newWebStatusCmd())
	return webCmd
}

func newWebStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Serve the web interface in the foreground",
		Long: `Binds the web server port and serves the built web interface. Press
Ctrl+C to shut the server down gracefully and exit.`,
		Args: cobra.NoArgs,
		RunE: runWebStart,
	}
}

func runWebStart(cmd *cobra.Command, args []string) error {
	application, err := bootstrapLauncher()
	if err != nil {
		return err
	}

	launcher := api.GetLauncherAPI()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := launcher.StartWebServer(ctx); err != nil {
		return err
	}

	cmd.Printf("Serving web interface at %s. Press Ctrl+C to stop.\n",
		application.Services().Orchestrator.Status().WebURL)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	return launcher.StopWebServer(context.Background())
}

func newWebStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the web server port accepts connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrapLauncher(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			printReachability(cmd, "web", api.GetLauncherAPI().CheckWebStatus(ctx))
			return nil
		},
	}
}
