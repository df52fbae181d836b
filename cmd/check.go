package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dotnetup/pkg/dotnet"
	"dotnetup/pkg/env"
)

// NewCheckCmd creates the check subcommand: preflight only, no changes.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the preflight checks without installing anything",
		Long: `Report whether this host is eligible for provisioning and what a
full 'dotnetup install' would do. Makes no changes.`,
		Args: cobra.NoArgs,
		RunE: runCheckCommand,
	}
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	fmt.Println("🔍 Preflight check")
	fmt.Println("==================")
	fmt.Println()

	if env.IsPrivileged() {
		fmt.Println("❌ Running as root. Run dotnetup as a regular user; privileged steps escalate themselves via sudo.")
	} else {
		fmt.Println("✅ Running as a regular user")
	}

	host, err := env.ReadOSRelease(env.DefaultOSReleasePath)
	switch {
	case err != nil:
		fmt.Printf("❌ Could not read host identity: %v\n", err)
	case !host.IsFamily(settings.OSFamilyToken):
		fmt.Printf("❌ Unsupported host %q (expected a %s-family distribution)\n", host.Describe(), settings.OSFamilyToken)
	default:
		fmt.Printf("✅ Supported host: %s\n", host.Describe())
	}

	target := dotnet.NewCLI(dotnet.ExecRunner{})
	if path, err := target.Resolve(); err == nil {
		version, verr := target.Version(context.Background())
		if verr != nil {
			version = "unknown"
		}
		fmt.Printf("⚠️  %s %s is already installed (%s); install will ask before continuing\n", dotnet.Command, version, path)
	} else {
		fmt.Printf("✅ %s is not installed yet\n", dotnet.Command)
	}

	fmt.Println()
	fmt.Println("A full install would:")
	fmt.Printf("  1. Ensure dependency package %s\n", settings.DependencyPackage)
	fmt.Printf("  2. Import trust key from %s\n", settings.TrustKeyURL)
	fmt.Printf("  3. Register repository descriptor %s/%s (from %s)\n", settings.RepoDir, settings.RepoFileName, settings.RepoURL)
	fmt.Printf("  4. Install %s\n", settings.SDKPackage)
	fmt.Printf("  5. Verify the installed major version is %d\n", settings.TargetMajor)

	return nil
}
