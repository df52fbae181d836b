package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dotnetup/pkg/dotnet"
)

// NewStatusCmd creates the status subcommand reporting on the installed
// SDK without touching the system.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the installed .NET SDK version and components",
		Long: `Query the installed dotnet tool and display its version together
with the installed SDK and runtime lists. Performs no installation.`,
		Args: cobra.NoArgs,
		RunE: runStatusCommand,
	}
}

func runStatusCommand(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	target := dotnet.NewCLI(dotnet.ExecRunner{})

	path, err := target.Resolve()
	if err != nil {
		fmt.Printf("❌ %s is not installed (not found on PATH)\n", dotnet.Command)
		return nil
	}

	version, err := target.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✅ %s %s (%s)\n", dotnet.Command, version, path)
	fmt.Println()

	sdks, err := target.ListSDKs(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Installed SDKs:")
	for _, sdk := range sdks {
		fmt.Printf("  %s\n", sdk)
	}

	runtimes, err := target.ListRuntimes(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Installed runtimes:")
	for _, rt := range runtimes {
		fmt.Printf("  %s\n", rt)
	}

	return nil
}
