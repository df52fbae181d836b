package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dotnetup/pkg/config"
)

func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config [<key> [<value>]]",
		Short: "Manage configuration settings",
		Long: `Manage dotnetup configuration settings.

Configuration is stored in ~/.dotnetup/config.yaml. Every key has a
default matching the upstream Microsoft repository; overrides are only
needed for mirrors or a different pinned SDK version.

Usage:
  dotnetup config <key>           Get a config value
  dotnetup config <key> <value>   Set a config value
  dotnetup config ls              List all config values
  dotnetup config rm <key>        Remove a config key (restore default)

Examples:
  dotnetup config sdk_package                      # Show the SDK package
  dotnetup config sdk_package dotnet-sdk-9.0       # Pin a different SDK
  dotnetup config target_major_version 9
  dotnetup config rm sdk_package                   # Back to the default`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfigCommand,
	}

	configCmd.AddCommand(newConfigLsCmd())
	configCmd.AddCommand(newConfigRmCmd())

	return configCmd
}

func newConfigLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE:  runConfigLsCmd,
	}
}

func newConfigRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a configuration value (restore default)",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigRmCmd,
	}
}

func runConfigCommand(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	key := args[0]

	if !manager.IsValidKey(key) {
		return fmt.Errorf("invalid configuration key: %s (valid keys: %s)", key, strings.Join(manager.GetValidKeys(), ", "))
	}

	if len(args) == 1 {
		fmt.Printf("%s = %v\n", key, manager.Get(key))
		return nil
	}

	value := args[1]
	if err := manager.Set(key, value); err != nil {
		return fmt.Errorf("failed to set configuration: %w", err)
	}

	fmt.Printf("✅ Configuration set: %s = %s\n", key, value)
	return nil
}

func runConfigLsCmd(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	fmt.Printf("📋 Configuration values (stored in %s):\n\n", manager.GetConfigFile())

	settings := manager.GetAll()
	for _, key := range manager.GetValidKeys() {
		fmt.Printf("%s = %v\n", key, settings[key])
	}

	return nil
}

func runConfigRmCmd(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}

	key := args[0]
	if !manager.IsValidKey(key) {
		return fmt.Errorf("invalid configuration key: %s (valid keys: %s)", key, strings.Join(manager.GetValidKeys(), ", "))
	}

	if err := manager.Unset(key); err != nil {
		return fmt.Errorf("failed to remove configuration: %w", err)
	}

	fmt.Printf("✅ Configuration removed: %s (default restored)\n", key)
	return nil
}
