package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const listPageSize = 100

// ClientOptions configures a RealClient
type ClientOptions struct {
	// Hostname is github.com or a GitHub Enterprise host
	Hostname string
	// BaseURL overrides the API endpoint derived from Hostname
	BaseURL string
	// Token is used for requests made before Authenticate is called
	Token string
	// Timeout bounds every HTTP request
	Timeout time.Duration
	// Transport is the underlying round tripper, http.DefaultTransport when nil
	Transport http.RoundTripper
}

// RealClient implements Client using the real GitHub API
type RealClient struct {
	client  *github.Client
	options ClientOptions
}

var _ Client = (*RealClient)(nil)

// NewRealClient creates a new RealClient
func NewRealClient(ctx context.Context, opts ClientOptions) (*RealClient, error) {
	if opts.Hostname == "" {
		opts.Hostname = "github.com"
	}

	httpClient := &http.Client{Transport: opts.baseTransport()}
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = opts.Timeout

	client, err := newGitHubClient(httpClient, opts)
	if err != nil {
		return nil, err
	}

	return &RealClient{client: client, options: opts}, nil
}

func (o ClientOptions) baseTransport() http.RoundTripper {
	if o.Transport != nil {
		return o.Transport
	}
	return http.DefaultTransport
}

// newGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func newGitHubClient(httpClient *http.Client, opts ClientOptions) (*github.Client, error) {
	client := github.NewClient(httpClient)

	switch {
	case opts.BaseURL != "":
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL %s: %w", opts.BaseURL, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = baseURL
	case opts.Hostname != "github.com":
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", opts.Hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", opts.Hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", opts.Hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", opts.Hostname, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

// Authenticate returns a client that uses basic auth with the given credentials
func (c *RealClient) Authenticate(creds Credentials) Client {
	tp := &github.BasicAuthTransport{
		Username:  creds.Username,
		Password:  creds.Password,
		Transport: c.options.baseTransport(),
	}

	client := github.NewClient(&http.Client{Transport: tp, Timeout: c.options.Timeout})
	client.BaseURL = c.client.BaseURL
	client.UploadURL = c.client.UploadURL

	return &RealClient{client: client, options: c.options}
}

// CreatePullRequest creates a new pull request
func (c *RealClient) CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
	}

	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	createdPR, _, err := c.client.PullRequests.Create(ctx, owner, repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return toPullRequestInfo(createdPR), nil
}

// ListPullRequests lists pull requests following pagination until the last page
func (c *RealClient) ListPullRequests(ctx context.Context, owner, repo, state string) ([]*PullRequestInfo, error) {
	if state == "" {
		state = StateOpen
	}

	opts := &github.PullRequestListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	var result []*PullRequestInfo
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}

		for _, pr := range prs {
			result = append(result, toPullRequestInfo(pr))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	if pr == nil {
		return nil
	}

	head := pr.GetHead()
	return &PullRequestInfo{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		HTMLURL: pr.GetHTMLURL(),
		Base:    pr.GetBase().GetRef(),
		Head: HeadInfo{
			Ref:          head.GetRef(),
			RepoGitURL:   head.GetRepo().GetGitURL(),
			RepoCloneURL: head.GetRepo().GetCloneURL(),
			OwnerLogin:   head.GetRepo().GetOwner().GetLogin(),
		},
	}
}
