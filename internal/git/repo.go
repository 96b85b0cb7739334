package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// openRepo opens the repository containing the runner's working directory,
// walking up to find .git the way git itself does.
func (r *realRunner) openRepo() (*gogit.Repository, error) {
	dir := r.workingDir
	if dir == "" {
		dir = "."
	}
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository (or any parent): %w", err)
	}
	return repo, nil
}

// RepoRoot returns the absolute path of the repository's working tree root
func (r *realRunner) RepoRoot() (string, error) {
	repo, err := r.openRepo()
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to resolve worktree: %w", err)
	}
	return filepath.Clean(wt.Filesystem.Root()), nil
}

// BranchExists reports whether a local branch ref exists
func (r *realRunner) BranchExists(branchName string) (bool, error) {
	repo, err := r.openRepo()
	if err != nil {
		return false, err
	}
	_, err = repo.Reference(plumbing.NewBranchReferenceName(branchName), false)
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read branch ref %s: %w", branchName, err)
	}
	return true, nil
}

// DetectTrunk guesses the trunk branch name, preferring main over master
func (r *realRunner) DetectTrunk() (string, error) {
	for _, candidate := range []string{"main", "master"} {
		exists, err := r.BranchExists(candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not detect trunk branch: neither main nor master exists")
}
