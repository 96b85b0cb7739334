// Package errors provides sentinel errors and custom error types for the strand application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrDirtyWorkdir indicates the working directory has uncommitted changes
	ErrDirtyWorkdir = errors.New("working directory is not clean")

	// ErrBranchNotFound indicates that a branch is not tracked by strand
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchExists indicates that a branch already exists
	ErrBranchExists = errors.New("branch already exists")

	// ErrRebaseConflict indicates that a rebase operation encountered a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrPendingOperation indicates that a multi-branch operation is already in progress
	ErrPendingOperation = errors.New("operation already in progress")

	// ErrNoPendingOperation indicates that there is nothing to continue or abort
	ErrNoPendingOperation = errors.New("no pending operation to continue or abort")

	// ErrNotAuthenticated indicates that the GitHub backend is not authenticated
	ErrNotAuthenticated = errors.New("github is not authenticated")

	// ErrNotInitialized indicates that strand has not been initialized in this repository
	ErrNotInitialized = errors.New("strand is not initialized")

	// ErrTrunkOperation indicates an invalid operation on the trunk branch
	ErrTrunkOperation = errors.New("invalid operation on trunk branch")
)

// BranchNotFoundError represents an error when a branch is not tracked
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s is not tracked by strand", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// BranchExistsError represents an error when a branch already exists
type BranchExistsError struct {
	BranchName string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("branch %s already exists", e.BranchName)
}

// Is returns true if the target error is ErrBranchExists
func (e *BranchExistsError) Is(target error) bool {
	return target == ErrBranchExists
}

// NewBranchExistsError creates a new BranchExistsError
func NewBranchExistsError(branchName string) *BranchExistsError {
	return &BranchExistsError{BranchName: branchName}
}

// RebaseConflictError represents an error when a rebase encounters a conflict
type RebaseConflictError struct {
	BranchName string
	Message    string
}

func (e *RebaseConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rebase conflict on branch %s: %s", e.BranchName, e.Message)
	}
	return fmt.Sprintf("rebase conflict on branch %s", e.BranchName)
}

// Is returns true if the target error is ErrRebaseConflict
func (e *RebaseConflictError) Is(target error) bool {
	return target == ErrRebaseConflict
}

// NewRebaseConflictError creates a new RebaseConflictError
func NewRebaseConflictError(branchName string, message string) *RebaseConflictError {
	return &RebaseConflictError{
		BranchName: branchName,
		Message:    message,
	}
}

// PendingOperationError represents an error when a second multi-branch
// operation is attempted while one is already pending
type PendingOperationError struct {
	Command string
}

func (e *PendingOperationError) Error() string {
	return fmt.Sprintf("a %s operation is already in progress. Run 'strand continue' to resume or 'strand abort' to cancel", e.Command)
}

// Is returns true if the target error is ErrPendingOperation
func (e *PendingOperationError) Is(target error) bool {
	return target == ErrPendingOperation
}

// NewPendingOperationError creates a new PendingOperationError
func NewPendingOperationError(command string) *PendingOperationError {
	return &PendingOperationError{Command: command}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
