package actions

import (
	"context"
	"fmt"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/runtime"
)

// DeleteOptions contains options for the delete command
type DeleteOptions struct {
	Name string
}

// DeleteAction untracks a branch, reparenting its children to its parent, and
// deletes the git branch. A git branch that is already gone is tolerated; the
// tracked metadata is what's being cleaned up.
func DeleteAction(ctx *runtime.Context, gctx context.Context, opts DeleteOptions) error {
	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	if !stack.IsTracked(opts.Name) {
		return stranderrors.NewBranchNotFoundError(opts.Name)
	}

	currentBranch, err := ctx.Git.CurrentBranch(gctx)
	if err != nil {
		return err
	}
	if currentBranch == opts.Name {
		return fmt.Errorf("cannot delete the current branch, checkout a different branch first")
	}

	if err := stack.RemoveBranch(opts.Name); err != nil {
		return err
	}
	if err := ctx.Store.SaveConfig(stack); err != nil {
		return err
	}

	if err := ctx.Git.DeleteBranch(gctx, opts.Name); err != nil {
		ctx.Splog.Warn("Could not delete git branch %s: %v", opts.Name, err)
	}

	ctx.Splog.Info("Deleted branch %s.", opts.Name)
	return nil
}
