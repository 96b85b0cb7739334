// Package runtime wires the collaborators an action needs into one context
// value. Tests construct a Context directly with mocks.
package runtime

import (
	"context"
	"path/filepath"

	"strand.dev/strand/internal/engine"
	"strand.dev/strand/internal/git"
	"strand.dev/strand/internal/github"
	"strand.dev/strand/internal/output"
)

// Context carries the collaborators for a single command invocation
type Context struct {
	Git      git.Runner
	GitHub   github.Client
	Store    *engine.Store
	Splog    *output.Splog
	RepoRoot string
}

// GetContext builds the real runtime context for the repository containing
// the current directory. GitHub stays nil until ConnectGitHub is called;
// most commands never talk to the API.
func GetContext() (*Context, error) {
	runner := git.NewRunner("")

	repoRoot, err := runner.RepoRoot()
	if err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithConfig(filepath.Join(repoRoot, ".git", "strand.log"))
	if err != nil {
		splog = output.NewSplog()
	}

	return &Context{
		Git:      git.NewRunner(repoRoot),
		Store:    engine.NewStore(repoRoot),
		Splog:    splog,
		RepoRoot: repoRoot,
	}, nil
}

// ConnectGitHub creates the real GitHub client from the origin remote and
// attaches it to the context. No-op when a client is already attached.
func (c *Context) ConnectGitHub(ctx context.Context) error {
	if c.GitHub != nil {
		return nil
	}

	remoteURL, err := c.Git.RemoteURL(ctx)
	if err != nil {
		return err
	}

	client, err := github.NewRealClient(ctx, remoteURL)
	if err != nil {
		return err
	}
	c.GitHub = client
	return nil
}
