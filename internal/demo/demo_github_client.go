package demo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"featureflow.dev/featureflow/internal/github"
)

// prCounter is used to generate unique PR numbers
var prCounter int32 = 100

// DemoGitHubClient implements github.Client for demo mode
type DemoGitHubClient struct {
	pulls []*github.PullRequestInfo
	login string
	delay time.Duration
}

// NewDemoGitHubClient creates a new demo GitHub client
func NewDemoGitHubClient() *DemoGitHubClient {
	return &DemoGitHubClient{pulls: demoPullRequests, delay: stepDelay}
}

// Authenticate accepts any credentials
func (c *DemoGitHubClient) Authenticate(creds github.Credentials) github.Client {
	return &DemoGitHubClient{pulls: c.pulls, login: creds.Username, delay: c.delay}
}

// CreatePullRequest simulates opening a pull request. Without credentials it
// fails the way the API does for anonymous writes.
func (c *DemoGitHubClient) CreatePullRequest(ctx context.Context, owner, repo string, opts github.CreatePROptions) (*github.PullRequestInfo, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if c.login == "" {
		return nil, fmt.Errorf("failed to create pull request: 401 Requires authentication")
	}

	number := int(atomic.AddInt32(&prCounter, 1))
	return &github.PullRequestInfo{
		Number:  number,
		Title:   opts.Title,
		Body:    opts.Body,
		State:   github.StateOpen,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, number),
		Base:    opts.Base,
	}, nil
}

// ListPullRequests returns the demo pull requests; only open ones exist
func (c *DemoGitHubClient) ListPullRequests(ctx context.Context, _, _, state string) ([]*github.PullRequestInfo, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if state != "" && state != github.StateOpen && state != github.StateAll {
		return nil, nil
	}
	return c.pulls, nil
}

func (c *DemoGitHubClient) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
