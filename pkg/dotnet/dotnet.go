// Package dotnet adapts the installed dotnet command line tool. The tool is
// a black box: installation state is never cached, it is re-queried from
// the environment every time.
package dotnet

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Command is the binary name of the target tool.
const Command = "dotnet"

// Runner executes the tool and captures its output. Tests substitute a
// fake returning canned output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CLI queries the installed dotnet tool.
type CLI struct {
	runner Runner
}

// NewCLI creates a new dotnet CLI adapter.
func NewCLI(runner Runner) *CLI {
	return &CLI{runner: runner}
}

// Resolve looks the tool up on the search path and returns its location.
func (c *CLI) Resolve() (string, error) {
	path, err := exec.LookPath(Command)
	if err != nil {
		return "", fmt.Errorf("%s is not on PATH: %w", Command, err)
	}
	return path, nil
}

// Version returns the tool's reported version string.
func (c *CLI) Version(ctx context.Context) (string, error) {
	output, err := c.runner.Output(ctx, Command, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to read %s version: %w", Command, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ListSDKs returns the installed SDK list, one entry per line of the
// tool's --list-sdks output.
func (c *CLI) ListSDKs(ctx context.Context) ([]string, error) {
	output, err := c.runner.Output(ctx, Command, "--list-sdks")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed SDKs: %w", err)
	}
	return splitLines(output), nil
}

// ListRuntimes returns the installed runtime list.
func (c *CLI) ListRuntimes(ctx context.Context) ([]string, error) {
	output, err := c.runner.Output(ctx, Command, "--list-runtimes")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed runtimes: %w", err)
	}
	return splitLines(output), nil
}

func splitLines(output []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// MajorVersion extracts the leading numeric component of a version string
// such as "8.0.412".
func MajorVersion(version string) (int, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return 0, fmt.Errorf("empty version string")
	}

	leading, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(leading)
	if err != nil {
		return 0, fmt.Errorf("cannot parse major version from %q: %w", version, err)
	}

	return major, nil
}
