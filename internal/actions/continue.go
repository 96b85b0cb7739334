package actions

import (
	"context"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/git"
	"strand.dev/strand/internal/runtime"
)

// ContinueAction resumes a paused multi-branch operation after the user has
// resolved conflicts. The state on disk is untouched until the in-progress
// rebase actually completes, so continue can be retried any number of times.
func ContinueAction(ctx *runtime.Context, gctx context.Context) error {
	state, err := ctx.Store.LoadState()
	if err != nil {
		return err
	}
	if state == nil {
		return stranderrors.ErrNoPendingOperation
	}

	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	if ctx.Git.IsRebaseInProgress(gctx) {
		result, err := ctx.Git.RebaseContinue(gctx)
		if err != nil {
			return err
		}
		if result == git.RebaseConflict {
			ctx.Splog.Tip("Conflicts remain. Resolve them and run 'strand continue' again.")
			return stranderrors.NewRebaseConflictError(state.CurrentBranch(), "unresolved conflicts remain")
		}
	}

	// The conflicted branch is done; move past it and resume
	state.Advance()
	if err := ctx.Store.SaveState(state); err != nil {
		return err
	}

	if err := runSyncLoop(ctx, gctx, stack, state); err != nil {
		return err
	}

	// Best effort: push the repaired stack back out. A submit failure never
	// fails the continue itself.
	if ctx.GitHub != nil && ctx.GitHub.IsAuthenticated(gctx) {
		if err := SubmitAction(ctx, gctx); err != nil {
			ctx.Splog.Warn("Auto-submit after continue failed: %v", err)
		}
	}

	return nil
}
