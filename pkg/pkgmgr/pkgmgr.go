package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Manager is the capability interface over the system package manager.
// Every mutating operation escalates itself via sudo; the calling process
// is expected to run unprivileged.
type Manager interface {
	// QueryInstalled reports whether the named package is present in the
	// installed-package index.
	QueryInstalled(ctx context.Context, name string) (bool, error)

	// Install installs the named package (elevated, non-interactive).
	Install(ctx context.Context, name string) error

	// RefreshIndex refreshes the local package source index (elevated).
	RefreshIndex(ctx context.Context) error

	// ImportKey imports a GPG trust key from a URL into the package
	// manager's trust store (elevated).
	ImportKey(ctx context.Context, url string) error
}

// DNF drives rpm and dnf on CentOS/RHEL-family hosts.
type DNF struct {
	runner Runner
}

// NewDNF creates a DNF manager using the given command runner.
func NewDNF(runner Runner) *DNF {
	return &DNF{runner: runner}
}

func (d *DNF) QueryInstalled(ctx context.Context, name string) (bool, error) {
	output, err := d.runner.Output(ctx, "rpm", "-q", name)
	if err != nil {
		// rpm exits non-zero when the package is not installed. Anything
		// other than an exit status is a real failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query package %s: %w", name, err)
	}

	// Defensive: some rpm builds report "not installed" with exit 0.
	if strings.Contains(string(output), "is not installed") {
		return false, nil
	}

	return true, nil
}

func (d *DNF) Install(ctx context.Context, name string) error {
	if err := d.runner.Run(ctx, "sudo", "dnf", "install", "-y", name); err != nil {
		return fmt.Errorf("dnf install %s failed: %w", name, err)
	}
	return nil
}

func (d *DNF) RefreshIndex(ctx context.Context) error {
	if err := d.runner.Run(ctx, "sudo", "dnf", "makecache"); err != nil {
		return fmt.Errorf("dnf makecache failed: %w", err)
	}
	return nil
}

func (d *DNF) ImportKey(ctx context.Context, url string) error {
	if err := d.runner.Run(ctx, "sudo", "rpm", "--import", url); err != nil {
		return fmt.Errorf("rpm --import %s failed: %w", url, err)
	}
	return nil
}
