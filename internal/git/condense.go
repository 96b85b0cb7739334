package git

import (
	"context"
	"fmt"
	"strconv"
)

// CondenseHistory squashes every commit the branch carries on top of its
// parent into a single commit, keeping the oldest commit's message. The
// branch must be checked out. Returns whether anything was condensed.
func (r *realRunner) CondenseHistory(ctx context.Context, branchName, parent string) (bool, error) {
	base, err := r.cmd.Run(ctx, "merge-base", parent, branchName)
	if err != nil {
		return false, fmt.Errorf("failed to find merge base of %s and %s: %w", branchName, parent, err)
	}

	countStr, err := r.cmd.Run(ctx, "rev-list", "--count", base+".."+branchName)
	if err != nil {
		return false, fmt.Errorf("failed to count commits on %s: %w", branchName, err)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return false, fmt.Errorf("unexpected rev-list output %q: %w", countStr, err)
	}
	if count <= 1 {
		return false, nil
	}

	// Keep the message of the oldest commit on the branch
	lines, err := r.cmd.RunLines(ctx, "rev-list", "--reverse", base+".."+branchName)
	if err != nil {
		return false, fmt.Errorf("failed to list commits on %s: %w", branchName, err)
	}
	if len(lines) == 0 {
		return false, fmt.Errorf("no commits found on %s despite count %d", branchName, count)
	}
	firstSHA := lines[0]

	message, err := r.cmd.Run(ctx, "log", "-1", "--format=%B", firstSHA)
	if err != nil {
		return false, fmt.Errorf("failed to read commit message of %s: %w", firstSHA, err)
	}

	if _, err := r.cmd.Run(ctx, "reset", "--soft", base); err != nil {
		return false, fmt.Errorf("failed to reset %s: %w", branchName, err)
	}
	if _, err := r.cmd.Run(ctx, "commit", "-m", message); err != nil {
		return false, fmt.Errorf("failed to commit condensed history on %s: %w", branchName, err)
	}

	return true, nil
}
