package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"flowctl/pkg/logging"
)

// runForeground brings the system up and blocks until the process receives
// an interrupt, then tears everything down before returning. The shutdown
// is synchronous with the signal handler: the process does not exit while
// a child process or listening socket is still live.
func runForeground(ctx context.Context, services *Services) error {
	if err := services.Orchestrator.StartAll(ctx); err != nil {
		logging.Error("CLI", err, "Startup failed")
		return err
	}

	logging.Info("CLI", "Flowboard is running. Press Ctrl+C to stop and exit.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	logging.Info("CLI", "Shutting down")
	return services.Orchestrator.StopAll(context.Background())
}
