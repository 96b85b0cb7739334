// Package actions implements the workflow engine behind each command:
// resumable multi-branch sync, submit/push against the review backend, and
// stack mutations. Actions receive their collaborators through
// runtime.Context so tests can drive them with mocks.
package actions

import (
	"context"
	"fmt"

	"strand.dev/strand/internal/engine"
	stranderrors "strand.dev/strand/internal/errors"
	"strand.dev/strand/internal/runtime"
)

// requireCleanWorkdir fails with ErrDirtyWorkdir when the working tree has
// uncommitted or untracked changes.
func requireCleanWorkdir(ctx *runtime.Context, gctx context.Context) error {
	clean, err := ctx.Git.IsWorkdirClean(gctx)
	if err != nil {
		return fmt.Errorf("failed to check working directory: %w", err)
	}
	if !clean {
		return stranderrors.ErrDirtyWorkdir
	}
	return nil
}

// requireNoPending fails when a multi-branch operation is already in progress
func requireNoPending(ctx *runtime.Context, command engine.Command) error {
	if ctx.Store.HasPendingState() {
		return stranderrors.NewPendingOperationError(string(command))
	}
	return nil
}

// requireAuthenticated fails with ErrNotAuthenticated when no usable GitHub
// client is attached to the context.
func requireAuthenticated(ctx *runtime.Context, gctx context.Context) error {
	if ctx.GitHub == nil || !ctx.GitHub.IsAuthenticated(gctx) {
		return stranderrors.ErrNotAuthenticated
	}
	return nil
}
