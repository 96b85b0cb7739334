package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"strand.dev/strand/internal/engine"
	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/github"
)

func TestMoveAction(t *testing.T) {
	gctx := context.Background()

	t.Run("reparents and rebases", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		ctx := newTestContext(t, threeBranchStack(t), runner, nil)

		require.NoError(t, MoveAction(ctx, gctx, MoveOptions{Branch: "feature-ui", NewParent: "other"}))

		saved, err := ctx.Store.LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "other", saved.Parent("feature-ui"))
		require.Equal(t, []string{"feature-ui onto other"}, runner.rebases)
		require.Equal(t, "feature", runner.current) // back where we started
	})

	t.Run("no-op when already on the target parent", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		ctx := newTestContext(t, threeBranchStack(t), runner, nil)

		require.NoError(t, MoveAction(ctx, gctx, MoveOptions{Branch: "feature-ui", NewParent: "feature"}))
		require.Empty(t, runner.rebases)
		require.False(t, ctx.Store.HasPendingState())
	})

	t.Run("untracked branch fails", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature")
		ctx := newTestContext(t, threeBranchStack(t), runner, nil)

		err := MoveAction(ctx, gctx, MoveOptions{Branch: "scratch", NewParent: "main"})
		require.ErrorIs(t, err, stranderrors.ErrBranchNotFound)
	})

	t.Run("missing target fails", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		ctx := newTestContext(t, threeBranchStack(t), runner, nil)

		err := MoveAction(ctx, gctx, MoveOptions{Branch: "feature-ui", NewParent: "ghost"})
		require.ErrorIs(t, err, stranderrors.ErrBranchNotFound)

		saved, loadErr := ctx.Store.LoadConfig()
		require.NoError(t, loadErr)
		require.Equal(t, "feature", saved.Parent("feature-ui"))
	})

	t.Run("conflict persists a single-entry move state", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		runner.conflictOn["feature-ui"] = true
		ctx := newTestContext(t, threeBranchStack(t), runner, nil)

		err := MoveAction(ctx, gctx, MoveOptions{Branch: "feature-ui", NewParent: "other"})
		require.ErrorIs(t, err, stranderrors.ErrRebaseConflict)

		state, loadErr := ctx.Store.LoadState()
		require.NoError(t, loadErr)
		require.NotNil(t, state)
		require.Equal(t, engine.CommandMove, state.ActiveCommand)
		require.Equal(t, []string{"feature-ui"}, state.TodoQueue)
		require.Equal(t, "feature", state.OriginalHead)

		// Config already carries the new parent so continue resumes right
		saved, loadErr := ctx.Store.LoadConfig()
		require.NoError(t, loadErr)
		require.Equal(t, "other", saved.Parent("feature-ui"))
	})

	t.Run("conflicted move completes through continue", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		runner.conflictOn["feature-ui"] = true
		ctx := newTestContext(t, threeBranchStack(t), runner, nil)

		require.ErrorIs(t, MoveAction(ctx, gctx, MoveOptions{Branch: "feature-ui", NewParent: "other"}),
			stranderrors.ErrRebaseConflict)

		require.NoError(t, ContinueAction(ctx, gctx))
		require.False(t, ctx.Store.HasPendingState())
		require.Equal(t, "feature", runner.current)
	})

	t.Run("retargets the PR best effort", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		client.authed = false // keep continue/submit paths quiet
		client.prs["feature-ui"] = &github.PRInfo{
			Number: 9,
			URL:    "https://github.com/acme/widgets/pull/9",
			Base:   "feature",
			State:  "open",
		}
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, MoveAction(ctx, gctx, MoveOptions{Branch: "feature-ui", NewParent: "other"}))
		require.Equal(t, "other", client.baseUpdates[9])
	})
}
