// Package pkgmgr wraps the host's system package manager (rpm/dnf) behind a
// small capability interface so the provisioning workflow can be tested
// without real privilege escalation.
package pkgmgr

import (
	"context"
	"os"
	"os/exec"
)

// Runner executes external commands. The production implementation shells
// out; tests substitute a recording fake.
type Runner interface {
	// Output runs a command and returns its combined output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Run runs a command with stdout/stderr attached to the terminal, so
	// the underlying tool's own diagnostics are the detail the operator
	// sees on failure.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
