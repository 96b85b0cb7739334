package actions

import (
	"context"
	"sort"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/runtime"
	"strand.dev/strand/internal/tui"
)

// CheckoutOptions contains options for the checkout command
type CheckoutOptions struct {
	Name string
}

// CheckoutAction switches to a tracked branch. With no name it opens an
// interactive picker over the tracked tree, trunk included.
func CheckoutAction(ctx *runtime.Context, gctx context.Context, opts CheckoutOptions) error {
	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		currentBranch, _ := ctx.Git.CurrentBranch(gctx)

		names := make([]string, 0, len(stack.Branches))
		for branch := range stack.Branches {
			names = append(names, branch)
		}
		sort.Strings(names)

		items := []tui.BranchItem{{
			Name:      stack.Trunk,
			IsCurrent: stack.Trunk == currentBranch,
		}}
		for _, branch := range names {
			items = append(items, tui.BranchItem{
				Name:      branch,
				ParentOf:  stack.Parent(branch),
				IsCurrent: branch == currentBranch,
			})
		}

		name, err = tui.PickBranch("Checkout a branch", items)
		if err != nil {
			return err
		}
	} else if !stack.IsTrunk(name) && !stack.IsTracked(name) {
		return stranderrors.NewBranchNotFoundError(name)
	}

	if err := ctx.Git.Checkout(gctx, name); err != nil {
		return err
	}

	ctx.Splog.Info("Switched to %s.", name)
	return nil
}
