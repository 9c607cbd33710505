package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Flags shared by every subcommand that bootstraps the launcher.
var (
	rootDebug      bool
	rootConfigPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flowctl",
	Short: "Launch and supervise the Flowboard application",
	Long: `flowctl starts the Flowboard backend process, waits for it to become
healthy, serves the built web interface from an embedded web server and
keeps both running until you stop it.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed startups)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "flowctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging and run the backend with debug output")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a flowctl config file (overrides the layered lookup)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newBackendCmd())
	rootCmd.AddCommand(newWebCmd())
}
