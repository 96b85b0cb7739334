package actions

import (
	"context"
	"strings"

	"strand.dev/strand/internal/output"
	"strand.dev/strand/internal/runtime"
)

// LogAction renders the tracked branch tree, trunk first, with the current
// branch marked and review urls shown.
func LogAction(ctx *runtime.Context, gctx context.Context) error {
	stack, err := ctx.Store.LoadConfig()
	if err != nil {
		return err
	}

	// Detached HEAD just means nothing gets marked
	currentBranch, _ := ctx.Git.CurrentBranch(gctx)

	if len(stack.Branches) == 0 {
		ctx.Splog.Info("No stacked branches. Trunk: %s", stack.Trunk)
		return nil
	}

	lines := output.NewTreeRenderer(stack, currentBranch, false).Render()
	ctx.Splog.Page(strings.Join(lines, "\n") + "\n")
	return nil
}
