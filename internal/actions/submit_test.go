package actions

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/github"
)

func TestSubmitAction(t *testing.T) {
	gctx := context.Background()

	t.Run("pushes bottom-up and opens PRs against parents", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))

		require.Equal(t, []string{
			"origin/feature (set upstream)",
			"origin/feature-ui (set upstream)",
		}, runner.pushes)

		require.Len(t, client.created, 2)
		require.Equal(t, "feature", client.created[0].Head)
		require.Equal(t, "main", client.created[0].Base)
		require.Equal(t, "feature-ui", client.created[1].Head)
		require.Equal(t, "feature", client.created[1].Base)
	})

	t.Run("records review urls in the config", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))

		saved, err := ctx.Store.LoadConfig()
		require.NoError(t, err)
		require.NotNil(t, saved.Branches["feature"].ReviewURL)
		require.NotNil(t, saved.Branches["feature-ui"].ReviewURL)
		require.Nil(t, saved.Branches["other"].ReviewURL)
	})

	t.Run("known upstream pushes without -u", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		runner.upstreams["feature"] = true
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))
		require.Equal(t, []string{
			"origin/feature",
			"origin/feature-ui (set upstream)",
		}, runner.pushes)
	})

	t.Run("existing PR with wrong base is retargeted", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		client.prs["feature-ui"] = &github.PRInfo{
			Number: 7,
			URL:    "https://github.com/acme/widgets/pull/7",
			Base:   "main",
			State:  "open",
		}
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))
		require.Equal(t, "feature", client.baseUpdates[7])
		require.Len(t, client.created, 1) // only feature got a new PR
	})

	t.Run("merged PR is never retargeted", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		client.prs["feature"] = &github.PRInfo{
			Number: 3,
			URL:    "https://github.com/acme/widgets/pull/3",
			Base:   "develop",
			State:  "closed",
			Merged: true,
		}
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))
		require.NotContains(t, client.baseUpdates, 3)
	})

	t.Run("push failure is fatal", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		runner.pushErrOn["feature-ui"] = fmt.Errorf("remote rejected")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		err := SubmitAction(ctx, gctx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "remote rejected")

		// The branch below still went out before the failure
		require.Equal(t, []string{"origin/feature (set upstream)"}, runner.pushes)
	})

	t.Run("PR failure is logged and skipped", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		client.createErr = fmt.Errorf("api unavailable")
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))
		require.Len(t, runner.pushes, 2)
		require.Empty(t, client.created)
	})

	t.Run("sync conflict fails the submit before pushing", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		runner.conflictOn["feature"] = true
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		err := SubmitAction(ctx, gctx)
		require.ErrorIs(t, err, stranderrors.ErrRebaseConflict)
		require.Empty(t, runner.pushes)
	})

	t.Run("unauthenticated fails before any mutation", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		client.authed = false
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.ErrorIs(t, SubmitAction(ctx, gctx), stranderrors.ErrNotAuthenticated)
		require.Empty(t, runner.rebases)
		require.Empty(t, runner.pushes)
	})

	t.Run("posts the stack diagram on every PR", func(t *testing.T) {
		runner := newMockRunner("feature-ui", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, SubmitAction(ctx, gctx))

		require.Len(t, client.comments, 2)
		for _, body := range client.comments {
			require.Contains(t, body, github.StackCommentMarker)
			require.Contains(t, body, "main --> feature")
		}
	})
}

func TestPushAction(t *testing.T) {
	gctx := context.Background()

	t.Run("pushes only the current branch", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, PushAction(ctx, gctx))

		require.Equal(t, []string{"origin/feature (set upstream)"}, runner.pushes)
		require.Empty(t, runner.rebases) // no sync first
		require.Len(t, client.created, 1)
		require.Equal(t, "main", client.created[0].Base)
	})

	t.Run("fails on trunk", func(t *testing.T) {
		runner := newMockRunner("main", "main", "feature")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.ErrorIs(t, PushAction(ctx, gctx), stranderrors.ErrTrunkOperation)
		require.Empty(t, runner.pushes)
	})

	t.Run("fails on untracked branch", func(t *testing.T) {
		runner := newMockRunner("scratch", "main", "scratch")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.ErrorIs(t, PushAction(ctx, gctx), stranderrors.ErrBranchNotFound)
		require.Empty(t, runner.pushes)
	})

	t.Run("records the review url", func(t *testing.T) {
		runner := newMockRunner("feature", "main", "feature", "feature-ui", "other")
		client := newMockClient()
		ctx := newTestContext(t, threeBranchStack(t), runner, client)

		require.NoError(t, PushAction(ctx, gctx))

		saved, err := ctx.Store.LoadConfig()
		require.NoError(t, err)
		require.NotNil(t, saved.Branches["feature"].ReviewURL)
	})
}
