package cmd

import (
	"context"
	"fmt"

	"flowctl/internal/api"
	"flowctl/internal/app"

	"github.com/spf13/cobra"
)

// bootstrapLauncher loads configuration and wires the launcher components
// without starting anything. After it returns, the launcher API is
// registered and ready for one-shot operations.
func bootstrapLauncher() (*app.Application, error) {
	cfg := app.NewConfig(rootDebug, rootConfigPath)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the Flowboard backend and web server are reachable",
		Long: `Probes the configured backend health endpoint and the web server port
and reports whether each is responding. This checks the live ports, so it
also sees a stack started by another flowctl process.`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	if _, err := bootstrapLauncher(); err != nil {
		return err
	}

	launcher := api.GetLauncherAPI()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	backend := launcher.CheckBackendHealth(ctx)
	web := launcher.CheckWebStatus(ctx)

	printReachability(cmd, "backend", backend)
	printReachability(cmd, "web", web)
	return nil
}

func printReachability(cmd *cobra.Command, label string, status api.BackendHealthStatus) {
	if status.Running {
		cmd.Printf("%-8s responding  %s\n", label, status.URL)
	} else {
		cmd.Printf("%-8s not responding  %s\n", label, status.URL)
	}
}
