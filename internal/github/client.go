// Package github provides the review-backend collaborator: pull request
// lookup, creation and retargeting, plus the stack-overview comment. The
// Client interface is the seam for scripted mocks in engine tests.
package github

import "context"

// PRInfo is the subset of pull request data the workflow engine uses
type PRInfo struct {
	Number int
	URL    string
	Base   string
	State  string
	Merged bool
}

// CreatePROptions carries the fields for a new pull request
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// Client defines the review-backend operations used by the workflow engine
type Client interface {
	// IsAuthenticated reports whether API calls can be made
	IsAuthenticated(ctx context.Context) bool

	// GetPRInfo returns the open or most recent PR whose head is the branch,
	// or nil when none exists.
	GetPRInfo(ctx context.Context, branchName string) (*PRInfo, error)

	// CreatePR opens a pull request
	CreatePR(ctx context.Context, opts CreatePROptions) (*PRInfo, error)

	// UpdatePRBase retargets an existing pull request
	UpdatePRBase(ctx context.Context, prNumber int, base string) error

	// UpsertStackComment creates or edits the stack-overview comment on a PR
	UpsertStackComment(ctx context.Context, prNumber int, body string) error
}
