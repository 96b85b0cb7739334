package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrStaleRemoteInfo indicates that a force-with-lease push was rejected
// because the remote branch moved since the last fetch.
var ErrStaleRemoteInfo = errors.New("stale info")

// Push pushes a branch to the remote with --force-with-lease. Stacked
// branches are rewritten on every rebase, so a plain push would always be
// rejected; force-with-lease keeps the overwrite safe against external
// changes.
func (r *realRunner) Push(ctx context.Context, remote, branchName string, setUpstream bool) error {
	args := []string{"push", "--force-with-lease"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, branchName)

	output, err := r.cmd.RunCombined(ctx, args...)
	if err != nil {
		if strings.Contains(output, "stale info") || strings.Contains(output, "stale_info") {
			return fmt.Errorf("push of %s rejected: the remote branch changed since the last sync: %w", branchName, ErrStaleRemoteInfo)
		}
		return fmt.Errorf("failed to push branch %s: %s: %w", branchName, strings.TrimSpace(output), err)
	}
	return nil
}
