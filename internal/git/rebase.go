package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Rebase rebases the checked-out branch onto the given branch. A conflict is
// not an error: the rebase is left in progress for the user to resolve.
func (r *realRunner) Rebase(ctx context.Context, onto string) (RebaseResult, error) {
	_, err := r.cmd.Run(ctx, "rebase", onto)
	if err != nil {
		if r.IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		return RebaseConflict, fmt.Errorf("rebase onto %s failed: %w", onto, err)
	}
	return RebaseDone, nil
}

// RebaseOnto replays only the commits between upstream and HEAD onto newBase,
// leaving upstream's own commits behind. Used when a branch changes parents.
func (r *realRunner) RebaseOnto(ctx context.Context, newBase, upstream string) (RebaseResult, error) {
	_, err := r.cmd.Run(ctx, "rebase", "--onto", newBase, upstream)
	if err != nil {
		if r.IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		return RebaseConflict, fmt.Errorf("rebase onto %s failed: %w", newBase, err)
	}
	return RebaseDone, nil
}

// RebaseContinue continues an in-progress rebase. Another conflict is again
// not an error.
func (r *realRunner) RebaseContinue(ctx context.Context) (RebaseResult, error) {
	_, err := r.cmd.Run(ctx, "-c", "core.editor=true", "rebase", "--continue")
	if err != nil {
		if r.IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		return RebaseConflict, fmt.Errorf("rebase continue failed: %w", err)
	}
	return RebaseDone, nil
}

// RebaseAbort aborts an in-progress rebase
func (r *realRunner) RebaseAbort(ctx context.Context) error {
	if _, err := r.cmd.Run(ctx, "rebase", "--abort"); err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}

// IsRebaseInProgress checks for the rebase-merge/rebase-apply directories.
// This is more reliable than REBASE_HEAD, which can persist after a rebase.
func (r *realRunner) IsRebaseInProgress(ctx context.Context) bool {
	gitDir, err := r.cmd.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-merge")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-apply")); err == nil {
		return true
	}
	return false
}
