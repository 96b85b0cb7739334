package actions

import (
	"context"
	"fmt"

	"strand.dev/strand/internal/engine"
	"strand.dev/strand/internal/github"
	"strand.dev/strand/internal/output"
	"strand.dev/strand/internal/runtime"
)

// SubmitAction syncs the stack, then pushes every branch in it and ensures
// each has a pull request targeting its parent. A sync conflict fails the
// submit before anything is pushed. Push failures are fatal; PR failures are
// logged and skipped so one API hiccup doesn't strand the remaining branches.
func SubmitAction(ctx *runtime.Context, gctx context.Context) error {
	if err := requireCleanWorkdir(ctx, gctx); err != nil {
		return err
	}
	if err := requireAuthenticated(ctx, gctx); err != nil {
		return err
	}

	if err := SyncAction(ctx, gctx); err != nil {
		return fmt.Errorf("sync before submit failed: %w", err)
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
		ctx.Splog.Info("Nothing to submit.")
		return nil
	}

	prNumbers, err := submitBranches(ctx, gctx, stack, queue)
	if err != nil {
		return err
	}

	if err := ctx.Store.SaveConfig(stack); err != nil {
		return err
	}

	postStackDiagrams(ctx, gctx, stack, queue, currentBranch, prNumbers)

	ctx.Splog.Info("Submitted %d branch(es).", len(queue))
	return nil
}

// submitBranches pushes each branch and reconciles its pull request, in
// dependency order. Review urls are recorded on the stack in place; the
// caller persists the config. Returns the PR number for each branch that has
// one.
func submitBranches(ctx *runtime.Context, gctx context.Context, stack *engine.Stack, queue []string) (map[string]int, error) {
	prNumbers := map[string]int{}

	for _, branch := range queue {
		if !stack.IsTracked(branch) {
			continue
		}
		parent := stack.Parent(branch)

		setUpstream := !ctx.Git.HasUpstream(gctx, branch)
		if err := ctx.Git.Push(gctx, "origin", branch, setUpstream); err != nil {
			return prNumbers, err
		}
		ctx.Splog.Info("Pushed %s.", output.ColorBranchName(branch, false))

		pr, err := ctx.GitHub.GetPRInfo(gctx, branch)
		if err != nil {
			ctx.Splog.Warn("Failed to look up PR for %s: %v", branch, err)
			continue
		}

		if pr == nil {
			created, err := ctx.GitHub.CreatePR(gctx, github.CreatePROptions{
				Title: branch,
				Body:  fmt.Sprintf("Part of stack based on `%s`.", parent),
				Head:  branch,
				Base:  parent,
			})
			if err != nil {
				ctx.Splog.Warn("Failed to create PR for %s: %v", branch, err)
				continue
			}
			url := created.URL
			stack.Branches[branch].ReviewURL = &url
			prNumbers[branch] = created.Number
			ctx.Splog.Info("Created PR %s", output.ColorDim(url))
			continue
		}

		if pr.Merged {
			ctx.Splog.Warn("PR %s for %s is already merged, delete the branch with 'strand delete'.", output.ColorPRNumber(pr.Number), branch)
		} else if pr.Base != parent {
			if err := ctx.GitHub.UpdatePRBase(gctx, pr.Number, parent); err != nil {
				ctx.Splog.Warn("Failed to retarget PR for %s: %v", branch, err)
			} else {
				ctx.Splog.Info("Retargeted PR %s onto %s.", output.ColorPRNumber(pr.Number), parent)
			}
		}
		url := pr.URL
		stack.Branches[branch].ReviewURL = &url
		prNumbers[branch] = pr.Number
	}

	return prNumbers, nil
}

// postStackDiagrams upserts the stack-overview comment on every PR in the
// queue. Diagram failures never fail the submit.
func postStackDiagrams(ctx *runtime.Context, gctx context.Context, stack *engine.Stack, queue []string, currentBranch string, prNumbers map[string]int) {
	relevant := &engine.Stack{
		Trunk:    stack.Trunk,
		Branches: map[string]*engine.BranchInfo{},
	}
	for _, branch := range queue {
		if info, ok := stack.Branches[branch]; ok {
			relevant.Branches[branch] = info
		}
	}
	if len(relevant.Branches) == 0 {
		return
	}

	diagram := github.StackDiagram(relevant, currentBranch)
	for _, branch := range queue {
		number, ok := prNumbers[branch]
		if !ok {
			continue
		}
		if err := ctx.GitHub.UpsertStackComment(gctx, number, diagram); err != nil {
			ctx.Splog.Debug("Failed to post stack diagram on %s: %v", branch, err)
		}
	}
}
