package github

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	stranderrors "strand.dev/strand/internal/errors"
)

// RealClient implements Client against the GitHub API
type RealClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRealClient creates a Client for the repository behind the given origin
// remote url. Returns ErrNotAuthenticated when no token can be found.
func NewRealClient(ctx context.Context, remoteURL string) (*RealClient, error) {
	token, err := getToken(ctx)
	if err != nil {
		return nil, stranderrors.ErrNotAuthenticated
	}

	owner, repo, err := parseRemoteURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to determine repository from remote: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &RealClient{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// IsAuthenticated reports whether the token is accepted by the API
func (c *RealClient) IsAuthenticated(ctx context.Context) bool {
	_, _, err := c.client.Users.Get(ctx, "")
	return err == nil
}

// GetPRInfo returns the PR whose head is the branch, or nil when none exists
func (c *RealClient) GetPRInfo(ctx context.Context, branchName string) (*PRInfo, error) {
	prs, _, err := c.client.PullRequests.List(ctx, c.owner, c.repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", c.owner, branchName),
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s: %w", branchName, err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return toPRInfo(prs[0]), nil
}

// CreatePR opens a pull request
func (c *RealClient) CreatePR(ctx context.Context, opts CreatePROptions) (*PRInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}
	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	created, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request for %s: %w", opts.Head, err)
	}
	return toPRInfo(created), nil
}

// UpdatePRBase retargets an existing pull request
func (c *RealClient) UpdatePRBase(ctx context.Context, prNumber int, base string) error {
	update := &github.PullRequest{
		Base: &github.PullRequestBranch{Ref: github.String(base)},
	}
	_, _, err := c.client.PullRequests.Edit(ctx, c.owner, c.repo, prNumber, update)
	if err != nil {
		return fmt.Errorf("failed to update base of pull request #%d: %w", prNumber, err)
	}
	return nil
}

// UpsertStackComment creates or edits the stack-overview comment, found by
// its hidden marker.
func (c *RealClient) UpsertStackComment(ctx context.Context, prNumber int, body string) error {
	comments, _, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, prNumber, &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return fmt.Errorf("failed to list comments on pull request #%d: %w", prNumber, err)
	}

	for _, comment := range comments {
		if comment.Body != nil && strings.Contains(*comment.Body, StackCommentMarker) {
			_, _, err := c.client.Issues.EditComment(ctx, c.owner, c.repo, *comment.ID, &github.IssueComment{
				Body: github.String(body),
			})
			if err != nil {
				return fmt.Errorf("failed to update stack comment on pull request #%d: %w", prNumber, err)
			}
			return nil
		}
	}

	_, _, err = c.client.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to create stack comment on pull request #%d: %w", prNumber, err)
	}
	return nil
}

func toPRInfo(pr *github.PullRequest) *PRInfo {
	if pr == nil {
		return nil
	}

	info := &PRInfo{}
	if pr.Number != nil {
		info.Number = *pr.Number
	}
	if pr.HTMLURL != nil {
		info.URL = *pr.HTMLURL
	}
	if pr.Base != nil && pr.Base.Ref != nil {
		info.Base = *pr.Base.Ref
	}
	if pr.State != nil {
		info.State = *pr.State
	}
	if pr.Merged != nil {
		info.Merged = *pr.Merged
	}
	return info
}

// getToken gets a GitHub token from the environment or the gh CLI
func getToken(ctx context.Context) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	cmd := exec.CommandContext(ctx, "gh", "auth", "token")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("no GITHUB_TOKEN set and gh auth token failed: %w", err)
	}

	token := strings.TrimSpace(stdout.String())
	if token == "" {
		return "", fmt.Errorf("gh auth token returned no token")
	}
	return token, nil
}

// parseRemoteURL extracts owner and repository from an https or ssh remote url
func parseRemoteURL(remoteURL string) (string, string, error) {
	url := strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	var path string
	switch {
	case strings.HasPrefix(url, "git@"):
		// git@github.com:owner/repo
		parts := strings.SplitN(url, ":", 2)
		if len(parts) != 2 {
			return "", "", fmt.Errorf("unrecognized ssh remote url: %s", remoteURL)
		}
		path = parts[1]
	case strings.Contains(url, "://"):
		// https://github.com/owner/repo
		parts := strings.SplitN(url, "://", 2)
		segments := strings.SplitN(parts[1], "/", 2)
		if len(segments) != 2 {
			return "", "", fmt.Errorf("unrecognized remote url: %s", remoteURL)
		}
		path = segments[1]
	default:
		return "", "", fmt.Errorf("unrecognized remote url: %s", remoteURL)
	}

	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("remote url has no owner/repo: %s", remoteURL)
	}
	return segments[0], segments[1], nil
}
