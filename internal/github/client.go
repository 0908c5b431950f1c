// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
)

// Pull request states accepted by ListPullRequests
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// Credentials are the basic-auth credentials used for a single submission.
// They are never written anywhere.
type Credentials struct {
	Username string
	Password string
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// HeadInfo describes the source side of a pull request
type HeadInfo struct {
	Ref          string
	RepoGitURL   string
	RepoCloneURL string
	OwnerLogin   string
}

// RepoMissing reports whether the head repository no longer exists (deleted fork)
func (h HeadInfo) RepoMissing() bool {
	return h.RepoGitURL == "" && h.RepoCloneURL == ""
}

// PullRequestInfo contains information about a pull request
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	Title   string
	Body    string
	State   string
	HTMLURL string
	Base    string
	Head    HeadInfo
}

// Client is an interface for GitHub API interactions
type Client interface {
	// Authenticate returns a client that sends the given credentials with every request.
	// The receiver is left untouched.
	Authenticate(creds Credentials) Client

	// CreatePullRequest creates a new pull request
	CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error)

	// ListPullRequests lists every pull request in the given state, across all pages
	ListPullRequests(ctx context.Context, owner, repo, state string) ([]*PullRequestInfo, error)
}
