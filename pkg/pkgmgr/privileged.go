package pkgmgr

import (
	"context"
	"fmt"
)

// PrivilegedFS performs the few filesystem mutations that need root:
// moving the repository descriptor into the package manager's configuration
// directory and handing its ownership to the privileged user.
type PrivilegedFS struct {
	runner Runner
}

// NewPrivilegedFS creates a PrivilegedFS using the given command runner.
func NewPrivilegedFS(runner Runner) *PrivilegedFS {
	return &PrivilegedFS{runner: runner}
}

// MoveFile moves src to dst with elevation.
func (p *PrivilegedFS) MoveFile(ctx context.Context, src, dst string) error {
	if err := p.runner.Run(ctx, "sudo", "mv", src, dst); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}
	return nil
}

// ChownRoot sets the owner of path to root:root with elevation.
func (p *PrivilegedFS) ChownRoot(ctx context.Context, path string) error {
	if err := p.runner.Run(ctx, "sudo", "chown", "root:root", path); err != nil {
		return fmt.Errorf("failed to change ownership of %s: %w", path, err)
	}
	return nil
}
