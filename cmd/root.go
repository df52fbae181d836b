package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information set by build flags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		SilenceUsage: true,
		Use:          "dotnetup",
		Short:        "Install the .NET SDK on CentOS-family hosts",
		Long: `dotnetup provisions the .NET SDK through the system package manager:
it registers the Microsoft package repository, imports its trust key,
installs the pinned SDK package and verifies the result.

Use 'dotnetup install' to run the full provisioning workflow.
Use 'dotnetup status' to inspect an existing installation.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	}

	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
