// Package git wraps the git binary and go-git for the repository operations
// the workflow engine needs. The Runner interface is the seam that lets the
// engine run against a scripted mock in tests.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	stranderrors "strand.dev/strand/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", stranderrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", stranderrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunLines executes a git command and returns the output split into lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// RunCombined executes a git command and returns combined stdout+stderr,
// returned even when the command fails. Push needs the failure output to
// classify stale-lease rejections.
func (r *CommandRunner) RunCombined(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	output, err := cmd.CombinedOutput()
	return string(output), err
}

// RebaseResult represents the result of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

// Runner defines the git operations used by the workflow engine.
// This allows the engine to run against both real git and mock implementations.
type Runner interface {
	// Repository
	RepoRoot() (string, error)
	DetectTrunk() (string, error)

	// Branch management
	CurrentBranch(ctx context.Context) (string, error)
	BranchExists(branchName string) (bool, error)
	Checkout(ctx context.Context, branchName string) error
	CreateAndCheckout(ctx context.Context, branchName string) error
	DeleteBranch(ctx context.Context, branchName string) error

	// Working tree
	IsWorkdirClean(ctx context.Context) (bool, error)

	// Rebase
	Rebase(ctx context.Context, onto string) (RebaseResult, error)
	RebaseOnto(ctx context.Context, newBase, upstream string) (RebaseResult, error)
	RebaseContinue(ctx context.Context) (RebaseResult, error)
	RebaseAbort(ctx context.Context) error
	IsRebaseInProgress(ctx context.Context) bool

	// History
	CondenseHistory(ctx context.Context, branchName, parent string) (bool, error)

	// Remote
	Push(ctx context.Context, remote, branchName string, setUpstream bool) error
	HasUpstream(ctx context.Context, branchName string) bool
	RemoteURL(ctx context.Context) (string, error)
}

// NewRunner returns the real git-backed Runner rooted at the given directory
func NewRunner(workingDir string) Runner {
	return &realRunner{cmd: NewCommandRunner(workingDir), workingDir: workingDir}
}

// realRunner implements Runner against the git binary and go-git
type realRunner struct {
	cmd        *CommandRunner
	workingDir string
}
