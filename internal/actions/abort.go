package actions

import (
	"context"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/runtime"
)

// AbortAction cancels a paused multi-branch operation: aborts any in-progress
// rebase, returns to the original branch, and releases the lock. Branches
// already rebased before the pause keep their new bases.
func AbortAction(ctx *runtime.Context, gctx context.Context) error {
	state, err := ctx.Store.LoadState()
	if err != nil {
		return err
	}
	if state == nil {
		return stranderrors.ErrNoPendingOperation
	}

	if ctx.Git.IsRebaseInProgress(gctx) {
		if err := ctx.Git.RebaseAbort(gctx); err != nil {
			return err
		}
	}

	// Best effort, the original branch may no longer exist
	if err := ctx.Git.Checkout(gctx, state.OriginalHead); err != nil {
		ctx.Splog.Warn("Could not return to %s: %v", state.OriginalHead, err)
	}

	if err := ctx.Store.ClearState(); err != nil {
		return err
	}

	ctx.Splog.Info("Aborted %s operation.", state.ActiveCommand)
	return nil
}
