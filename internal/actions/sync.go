package actions

import (
	"context"
	"fmt"

	"strand.dev/strand/internal/engine"
	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/git"
	"strand.dev/strand/internal/output"
	"strand.dev/strand/internal/runtime"
)

// SyncAction rebases the current stack: every branch on the path from trunk
// to the current branch, plus all their descendants, each onto its parent in
// dependency order. A conflict pauses the operation with durable state;
// continue resumes it, abort cancels it.
func SyncAction(ctx *runtime.Context, gctx context.Context) error {
	if err := requireCleanWorkdir(ctx, gctx); err != nil {
		return err
	}
	if err := requireNoPending(ctx, engine.CommandSync); err != nil {
		return err
	}

	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	currentBranch, err := ctx.Git.CurrentBranch(gctx)
	if err != nil {
		return err
	}

	queue, err := stack.StackScope(currentBranch)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		ctx.Splog.Info("Nothing to sync.")
		return nil
	}

	// State on disk before the first rebase: a crash or conflict at any
	// point leaves a resumable operation behind.
	state := engine.NewSyncState(engine.CommandSync, queue, currentBranch)
	if err := ctx.Store.SaveState(state); err != nil {
		return err
	}

	return runSyncLoop(ctx, gctx, stack, state)
}

// runSyncLoop processes the outstanding portion of the queue. Shared by sync
// and continue; move continuation also finishes here with its single-entry
// queue already consumed.
func runSyncLoop(ctx *runtime.Context, gctx context.Context, stack *engine.Stack, state *engine.SyncState) error {
	for !state.IsComplete() {
		branch := state.CurrentBranch()

		// A queued branch deleted mid-operation is skipped, not an error
		if !stack.IsTracked(branch) {
			ctx.Splog.Warn("Skipping %s: no longer tracked.", branch)
			state.Advance()
			if err := ctx.Store.SaveState(state); err != nil {
				return err
			}
			continue
		}

		parent := stack.Parent(branch)

		if err := ctx.Git.Checkout(gctx, branch); err != nil {
			return err
		}

		if stack.CondenseEnabled() {
			condensed, err := ctx.Git.CondenseHistory(gctx, branch, parent)
			if err != nil {
				return err
			}
			if condensed {
				ctx.Splog.Debug("Condensed history of %s.", branch)
			}
		}

		result, err := ctx.Git.Rebase(gctx, parent)
		if err != nil {
			return err
		}
		if result == git.RebaseConflict {
			if err := ctx.Store.SaveState(state); err != nil {
				return err
			}
			ctx.Splog.Tip("Resolve the conflicts, stage the files, then run 'strand continue'. Run 'strand abort' to cancel.")
			return stranderrors.NewRebaseConflictError(branch, fmt.Sprintf("rebasing onto %s", parent))
		}

		ctx.Splog.Info("Rebased %s onto %s.", output.ColorBranchName(branch, false), parent)
		state.Advance()
		if err := ctx.Store.SaveState(state); err != nil {
			return err
		}
	}

	if err := ctx.Store.ClearState(); err != nil {
		return err
	}

	// Best effort: the original branch may have been deleted mid-operation
	if err := ctx.Git.Checkout(gctx, state.OriginalHead); err != nil {
		ctx.Splog.Warn("Could not return to %s: %v", state.OriginalHead, err)
	}

	ctx.Splog.Info("Sync complete.")
	return nil
}
