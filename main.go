package main

import (
	"os"

	"dotnetup/cmd"
	"dotnetup/pkg/workflow"
)

// Version information set by build flags
var (
	version   = "dev"
	gitCommit = "none"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, gitCommit, buildTime)

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(workflow.ExitCode(err))
	}
}
