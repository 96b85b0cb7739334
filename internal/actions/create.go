package actions

import (
	"context"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/runtime"
)

// CreateOptions contains options for the create command
type CreateOptions struct {
	Name   string
	Parent string
}

// CreateAction creates a new branch at HEAD, checks it out, and tracks it
// under the given parent. The parent defaults to the current branch, which is
// what stacks a new branch on top of the one being worked on.
func CreateAction(ctx *runtime.Context, gctx context.Context, opts CreateOptions) error {
	if err := requireCleanWorkdir(ctx, gctx); err != nil {
		return err
	}

	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	exists, err := ctx.Git.BranchExists(opts.Name)
	if err != nil {
		return err
	}
	if exists {
		return stranderrors.NewBranchExistsError(opts.Name)
	}

	parent := opts.Parent
	if parent == "" {
		parent, err = ctx.Git.CurrentBranch(gctx)
		if err != nil {
			return err
		}
	}

	// Validate the tracked tree before touching git
	if err := stack.AddBranch(opts.Name, parent); err != nil {
		return err
	}

	if err := ctx.Git.CreateAndCheckout(gctx, opts.Name); err != nil {
		return err
	}

	if err := ctx.Store.SaveConfig(stack); err != nil {
		return err
	}

	ctx.Splog.Info("Created branch %s on top of %s.", opts.Name, parent)
	return nil
}
