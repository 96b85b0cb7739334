package git

import (
	"context"
	"fmt"
	"strings"
)

// CurrentBranch returns the name of the checked-out branch
func (r *realRunner) CurrentBranch(ctx context.Context) (string, error) {
	name, err := r.cmd.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	if name == "HEAD" {
		return "", fmt.Errorf("HEAD is detached")
	}
	return name, nil
}

// Checkout switches to an existing branch
func (r *realRunner) Checkout(ctx context.Context, branchName string) error {
	if _, err := r.cmd.Run(ctx, "checkout", branchName); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branchName, err)
	}
	return nil
}

// CreateAndCheckout creates a branch at HEAD and switches to it
func (r *realRunner) CreateAndCheckout(ctx context.Context, branchName string) error {
	if _, err := r.cmd.Run(ctx, "checkout", "-b", branchName); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch. A branch that is already gone is
// not an error; the tracked metadata is what the caller is cleaning up.
func (r *realRunner) DeleteBranch(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "branch", "-D", branchName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil
		}
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// IsWorkdirClean reports whether the working tree has no uncommitted or
// untracked changes.
func (r *realRunner) IsWorkdirClean(ctx context.Context) (bool, error) {
	output, err := r.cmd.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return output == "", nil
}

// HasUpstream reports whether a branch has an upstream tracking ref
func (r *realRunner) HasUpstream(ctx context.Context, branchName string) bool {
	_, err := r.cmd.Run(ctx, "rev-parse", "--abbrev-ref", branchName+"@{upstream}")
	return err == nil
}

// RemoteURL returns the url of the origin remote
func (r *realRunner) RemoteURL(ctx context.Context) (string, error) {
	url, err := r.cmd.Run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin url: %w", err)
	}
	return url, nil
}
