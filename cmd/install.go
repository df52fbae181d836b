package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dotnetup/pkg/cli"
	"dotnetup/pkg/config"
	"dotnetup/pkg/dotnet"
	"dotnetup/pkg/netfetch"
	"dotnetup/pkg/pkgmgr"
	"dotnetup/pkg/workflow"
)

// Command line flags for install command
var (
	installAssumeYes bool
	installDebug     bool
)

// NewInstallCmd creates the install subcommand running the full
// provisioning workflow.
func NewInstallCmd() *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Run the full SDK provisioning workflow",
		Long: `Run the provisioning workflow end to end:

  1. Preflight checks (caller identity, host OS, existing installation)
  2. Dependency install (libicu)
  3. Repository registration (trust key, descriptor, index refresh)
  4. SDK package install
  5. Verification (version, SDK and runtime lists)
  6. Completion report

A plain 'dotnetup install' needs no flags; defaults come from
~/.dotnetup/config.yaml and match the upstream Microsoft repository.`,
		Args: cobra.NoArgs,
		RunE: runInstallCommand,
	}

	installCmd.Flags().BoolVarP(&installAssumeYes, "yes", "y", false, "Continue without asking when an installation already exists")
	installCmd.Flags().BoolVar(&installDebug, "debug", false, "Enable debug logging")

	return installCmd
}

func runInstallCommand(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if installDebug {
		logger.SetLevel(log.DebugLevel)
	}

	settings, timeouts, err := loadSettings()
	if err != nil {
		return err
	}
	settings.AssumeYes = installAssumeYes

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An external interrupt prints a message and exits with a fixed
	// status; partially-applied system state is left as-is.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		fmt.Fprintln(os.Stderr, "\n❌ Interrupted")
		os.Exit(workflow.ExitInterrupted)
	}()
	defer signal.Stop(interrupts)

	runner := pkgmgr.NewExecRunner()
	installer := workflow.NewInstaller(
		settings,
		pkgmgr.NewDNF(runner),
		pkgmgr.NewPrivilegedFS(runner),
		netfetch.NewClient(timeouts),
		cli.NewHuhConfirmer(),
		dotnet.NewCLI(dotnet.ExecRunner{}),
		os.Stdout,
		logger,
	)

	fmt.Println("🚀 dotnetup")
	fmt.Println("===========")
	fmt.Println()

	engine := workflow.NewEngine(installer.Steps(), logger)
	if err := engine.Run(ctx, &workflow.State{}); err != nil {
		if errors.Is(err, workflow.ErrCanceled) {
			fmt.Println("Installation canceled. Nothing was changed.")
			return nil
		}
		return err
	}

	return nil
}

// loadSettings resolves the provisioning settings from the config file.
func loadSettings() (workflow.Settings, netfetch.Timeouts, error) {
	manager, err := config.NewManager()
	if err != nil {
		return workflow.Settings{}, netfetch.Timeouts{}, fmt.Errorf("failed to initialize config manager: %w", err)
	}
	if err := manager.Initialize(); err != nil {
		return workflow.Settings{}, netfetch.Timeouts{}, err
	}

	settings := workflow.Settings{
		TrustKeyURL:       manager.GetString(config.KeyTrustKeyURL),
		RepoURL:           manager.GetString(config.KeyRepoURL),
		RepoDir:           manager.GetString(config.KeyRepoDir),
		RepoFileName:      manager.GetString(config.KeyRepoFileName),
		DependencyPackage: manager.GetString(config.KeyDependencyPackage),
		SDKPackage:        manager.GetString(config.KeySDKPackage),
		TargetMajor:       manager.GetInt(config.KeyTargetMajor),
		OSFamilyToken:     manager.GetString(config.KeyOSFamilyToken),
	}

	timeouts := netfetch.Timeouts{
		DialSeconds:           manager.GetInt(config.KeyNetworkDialTimeoutSeconds),
		TLSHandshakeSeconds:   manager.GetInt(config.KeyNetworkTLSHandshakeTimeoutSeconds),
		ResponseHeaderSeconds: manager.GetInt(config.KeyNetworkResponseHeaderTimeoutSecond),
		IdleSeconds:           manager.GetInt(config.KeyNetworkIdleTimeoutSeconds),
	}

	return settings, timeouts, nil
}
