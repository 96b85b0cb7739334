package actions

import (
	"context"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/runtime"
)

// PushAction pushes only the current branch and reconciles its pull request.
// A lightweight submit for quick iterations on one PR; no sync happens first.
func PushAction(ctx *runtime.Context, gctx context.Context) error {
	if err := requireCleanWorkdir(ctx, gctx); err != nil {
		return err
	}
	if err := requireAuthenticated(ctx, gctx); err != nil {
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

	if stack.IsTrunk(currentBranch) {
		return stranderrors.ErrTrunkOperation
	}
	if !stack.IsTracked(currentBranch) {
		return stranderrors.NewBranchNotFoundError(currentBranch)
	}

	prNumbers, err := submitBranches(ctx, gctx, stack, []string{currentBranch})
	if err != nil {
		return err
	}

	if err := ctx.Store.SaveConfig(stack); err != nil {
		return err
	}

	// Diagram covers the branch's whole path so reviewers see the context
	path, err := stack.PathToRoot(currentBranch)
	if err == nil {
		postStackDiagrams(ctx, gctx, stack, path, currentBranch, prNumbers)
	}

	ctx.Splog.Info("Pushed %s.", currentBranch)
	return nil
}
