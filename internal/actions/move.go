package actions

import (
	"context"
	"fmt"

	"strand.dev/strand/internal/engine"
	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/git"
	"strand.dev/strand/internal/runtime"
)

// MoveOptions contains options for the move command
type MoveOptions struct {
	Branch    string
	NewParent string
}

// MoveAction reparents a branch: updates the tracked tree, rebases the branch
// onto its new parent, and retargets its pull request best-effort. A conflict
// pauses the move the same way sync pauses, resumable with continue.
func MoveAction(ctx *runtime.Context, gctx context.Context, opts MoveOptions) error {
	if err := requireCleanWorkdir(ctx, gctx); err != nil {
		return err
	}
	if err := requireNoPending(ctx, engine.CommandMove); err != nil {
		return err
	}

	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	if !stack.IsTracked(opts.Branch) {
		return stranderrors.NewBranchNotFoundError(opts.Branch)
	}
	if !stack.IsTrunk(opts.NewParent) && !stack.IsTracked(opts.NewParent) {
		exists, err := ctx.Git.BranchExists(opts.NewParent)
		if err != nil {
			return err
		}
		if !exists {
			return stranderrors.NewBranchNotFoundError(opts.NewParent)
		}
	}

	oldParent := stack.Parent(opts.Branch)
	if oldParent == opts.NewParent {
		ctx.Splog.Info("Branch %s is already on %s.", opts.Branch, opts.NewParent)
		return nil
	}

	currentBranch, err := ctx.Git.CurrentBranch(gctx)
	if err != nil {
		return err
	}

	// Reparent in the config first so a conflict pause resumes against the
	// new parent.
	if err := stack.SetParent(opts.Branch, opts.NewParent); err != nil {
		return err
	}
	if err := ctx.Store.SaveConfig(stack); err != nil {
		return err
	}

	if err := ctx.Git.Checkout(gctx, opts.Branch); err != nil {
		return err
	}

	// --onto replays only the branch's own commits, leaving the old parent's
	// history behind
	result, err := ctx.Git.RebaseOnto(gctx, opts.NewParent, oldParent)
	if err != nil {
		return err
	}
	if result == git.RebaseConflict {
		state := engine.NewSyncState(engine.CommandMove, []string{opts.Branch}, currentBranch)
		if err := ctx.Store.SaveState(state); err != nil {
			return err
		}
		ctx.Splog.Tip("Resolve the conflicts, then run 'strand continue'. Run 'strand abort' to cancel.")
		return stranderrors.NewRebaseConflictError(opts.Branch, fmt.Sprintf("rebasing onto %s", opts.NewParent))
	}

	// Retarget the PR if one exists; not critical
	if ctx.GitHub != nil {
		if pr, err := ctx.GitHub.GetPRInfo(gctx, opts.Branch); err == nil && pr != nil && pr.Base != opts.NewParent {
			if err := ctx.GitHub.UpdatePRBase(gctx, pr.Number, opts.NewParent); err != nil {
				ctx.Splog.Warn("Failed to retarget PR for %s: %v", opts.Branch, err)
			}
		}
	}

	if err := ctx.Git.Checkout(gctx, currentBranch); err != nil {
		ctx.Splog.Warn("Could not return to %s: %v", currentBranch, err)
	}

	ctx.Splog.Info("Moved %s from %s to %s.", opts.Branch, oldParent, opts.NewParent)
	return nil
}
