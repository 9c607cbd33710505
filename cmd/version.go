package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of flowctl",
		Long:  `All software has versions. This is flowctl's.`,
		Run: func(cmd *cobra.Command, args []string) {
			// rootCmd.Version is set in main via SetVersion; the version
			// template in root.go handles the --version flag, but an
			// explicit command is standard.
			fmt.Printf("flowctl version %s\n", rootCmd.Version)
		},
	}
}
