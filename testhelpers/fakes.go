package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/github"
	"featureflow.dev/featureflow/internal/prompt"
	"featureflow.dev/featureflow/internal/utils"
)

// Journal records events from every fake in the order they happened
type Journal struct {
	mu     sync.Mutex
	events []string
}

// Record appends an event; a nil journal ignores it
func (j *Journal) Record(format string, args ...interface{}) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of the recorded events
func (j *Journal) Events() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

// Git operation names recorded by FakeGit
const (
	OpRefresh      = "refresh"
	OpCreate       = "create"
	OpPush         = "push"
	OpTrack        = "track"
	OpCheckout     = "checkout"
	OpDeleteLocal  = "delete-local"
	OpDeleteRemote = "delete-remote"
	OpCurrent      = "current-branch"
	OpRemoteURL    = "remote-url"
)

// GitCall is one recorded git.Runner call
type GitCall struct {
	Op       string
	Branch   string
	Base     string
	Source   string
	Upstream bool
}

func (c GitCall) String() string {
	if c.Branch == "" {
		return c.Op
	}
	return c.Op + " " + c.Branch
}

// FakeGit is a recording git.Runner backed by an in-memory branch set
type FakeGit struct {
	mu       sync.Mutex
	Calls    []GitCall
	Current  string
	Branches map[string]bool
	Remotes  map[string]string
	// FailOn makes the named operation return the error
	FailOn  map[string]error
	Journal *Journal
}

var _ git.Runner = (*FakeGit)(nil)

// NewFakeGit returns a FakeGit on master with origin and upstream remotes
func NewFakeGit() *FakeGit {
	return &FakeGit{
		Current:  SceneBaseBranch,
		Branches: map[string]bool{SceneBaseBranch: true},
		Remotes: map[string]string{
			"origin":   "git@github.com:alice/video-js.git",
			"upstream": "https://github.com/zencoder/video-js.git",
		},
		FailOn: map[string]error{},
	}
}

func (f *FakeGit) record(call GitCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
	f.Journal.Record("git:%s", call)
	return f.FailOn[call.Op]
}

// Ops returns the recorded calls as "op branch" strings
func (f *FakeGit) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		ops = append(ops, c.String())
	}
	return ops
}

// MutatingOps returns the recorded calls that change repository state
func (f *FakeGit) MutatingOps() []string {
	var ops []string
	for _, op := range f.Ops() {
		if strings.HasPrefix(op, OpCurrent) || strings.HasPrefix(op, OpRemoteURL) {
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// CreateBranch records the call and fails if the branch already exists
func (f *FakeGit) CreateBranch(_ context.Context, branchName string, opts git.CreateBranchOptions) error {
	if err := f.record(GitCall{Op: OpCreate, Branch: branchName, Base: opts.Base, Source: opts.Source}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Branches[branchName] {
		return fmt.Errorf("fatal: a branch named '%s' already exists", branchName)
	}
	f.Branches[branchName] = true
	f.Current = branchName
	return nil
}

func (f *FakeGit) Checkout(_ context.Context, branchName string) error {
	if err := f.record(GitCall{Op: OpCheckout, Branch: branchName}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Current = branchName
	return nil
}

func (f *FakeGit) DeleteLocalBranch(_ context.Context, branchName string) error {
	if err := f.record(GitCall{Op: OpDeleteLocal, Branch: branchName}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Branches, branchName)
	return nil
}

func (f *FakeGit) RefreshTracking(_ context.Context, branchName string, opts git.RefreshOptions) error {
	if err := f.record(GitCall{Op: OpRefresh, Branch: branchName, Upstream: opts.Upstream}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Current = branchName
	return nil
}

func (f *FakeGit) PushBranch(_ context.Context, branchName string) error {
	return f.record(GitCall{Op: OpPush, Branch: branchName})
}

func (f *FakeGit) SetTracking(_ context.Context, branchName string) error {
	return f.record(GitCall{Op: OpTrack, Branch: branchName})
}

func (f *FakeGit) DeleteRemoteBranch(_ context.Context, branchName string) error {
	return f.record(GitCall{Op: OpDeleteRemote, Branch: branchName})
}

func (f *FakeGit) CurrentBranch(_ context.Context) (*git.BranchInfo, error) {
	if err := f.record(GitCall{Op: OpCurrent}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Current == "" {
		return nil, fferrors.ErrNotOnBranch
	}
	return &git.BranchInfo{Name: f.Current, ChangeType: utils.ChangeTypeOf(f.Current)}, nil
}

func (f *FakeGit) RemoteURL(remoteName string) (string, error) {
	if err := f.record(GitCall{Op: OpRemoteURL, Branch: remoteName}); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url, ok := f.Remotes[remoteName]
	if !ok {
		return "", fmt.Errorf("%w: %s", git.ErrRemoteNotFound, remoteName)
	}
	return url, nil
}

// CreatedPR is one recorded CreatePullRequest call
type CreatedPR struct {
	Owner string
	Repo  string
	Opts  github.CreatePROptions
	// Creds is nil when the call was made without Authenticate
	Creds *github.Credentials
}

// ListCall is one recorded ListPullRequests call
type ListCall struct {
	Owner string
	Repo  string
	State string
}

// FakeGitHub is a recording github.Client
type FakeGitHub struct {
	mu            sync.Mutex
	PullRequests  []*github.PullRequestInfo
	Authenticated []github.Credentials
	Created       []CreatedPR
	Lists         []ListCall
	CreateErr     error
	ListErr       error
	Journal       *Journal
}

var _ github.Client = (*FakeGitHub)(nil)

// Authenticate returns a session that attaches creds to its calls
func (f *FakeGitHub) Authenticate(creds github.Credentials) github.Client {
	f.mu.Lock()
	f.Authenticated = append(f.Authenticated, creds)
	f.mu.Unlock()
	f.Journal.Record("github:authenticate %s", creds.Username)
	return &fakeGitHubSession{parent: f, creds: creds}
}

func (f *FakeGitHub) CreatePullRequest(ctx context.Context, owner, repo string, opts github.CreatePROptions) (*github.PullRequestInfo, error) {
	return f.create(owner, repo, opts, nil)
}

func (f *FakeGitHub) ListPullRequests(_ context.Context, owner, repo, state string) ([]*github.PullRequestInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lists = append(f.Lists, ListCall{Owner: owner, Repo: repo, State: state})
	f.Journal.Record("github:list %s/%s", owner, repo)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.PullRequests, nil
}

func (f *FakeGitHub) create(owner, repo string, opts github.CreatePROptions, creds *github.Credentials) (*github.PullRequestInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, CreatedPR{Owner: owner, Repo: repo, Opts: opts, Creds: creds})
	f.Journal.Record("github:create %s/%s %s", owner, repo, opts.Head)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	number := len(f.Created)
	return &github.PullRequestInfo{
		Number:  number,
		Title:   opts.Title,
		Body:    opts.Body,
		State:   github.StateOpen,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, number),
		Base:    opts.Base,
	}, nil
}

type fakeGitHubSession struct {
	parent *FakeGitHub
	creds  github.Credentials
}

func (s *fakeGitHubSession) Authenticate(creds github.Credentials) github.Client {
	return s.parent.Authenticate(creds)
}

func (s *fakeGitHubSession) CreatePullRequest(_ context.Context, owner, repo string, opts github.CreatePROptions) (*github.PullRequestInfo, error) {
	creds := s.creds
	return s.parent.create(owner, repo, opts, &creds)
}

func (s *fakeGitHubSession) ListPullRequests(ctx context.Context, owner, repo, state string) ([]*github.PullRequestInfo, error) {
	return s.parent.ListPullRequests(ctx, owner, repo, state)
}

// ScriptedPrompter answers prompts from per-field queues of raw input.
// Answers are validated like a terminal prompt: rejected input is recorded
// and the next queued answer is tried.
type ScriptedPrompter struct {
	mu       sync.Mutex
	answers  map[string][]string
	Asked    []prompt.Field
	Rejected []string
	Journal  *Journal
}

var _ prompt.Prompter = (*ScriptedPrompter)(nil)

// NewScriptedPrompter creates a prompter with no answers
func NewScriptedPrompter() *ScriptedPrompter {
	return &ScriptedPrompter{answers: map[string][]string{}}
}

// Script queues raw answers for a field
func (p *ScriptedPrompter) Script(field string, answers ...string) *ScriptedPrompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers[field] = append(p.answers[field], answers...)
	return p
}

// AskedNames returns the names of every field asked, in order
func (p *ScriptedPrompter) AskedNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.Asked))
	for _, f := range p.Asked {
		names = append(names, f.Name)
	}
	return names
}

// Ask answers each field from its queue, re-asking on invalid input
func (p *ScriptedPrompter) Ask(fields ...prompt.Field) (prompt.Answers, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	answers := prompt.Answers{}
	for _, field := range fields {
		p.Asked = append(p.Asked, field)
		p.Journal.Record("prompt:%s", field.Name)

		for {
			queue := p.answers[field.Name]
			if len(queue) == 0 {
				return nil, fmt.Errorf("no scripted answer for %s: %w", field.Name, fferrors.ErrInteractiveDisabled)
			}
			raw := queue[0]
			p.answers[field.Name] = queue[1:]

			value := field.Resolve(raw)
			if err := prompt.Validate(field, value); err != nil {
				p.Rejected = append(p.Rejected, raw)
				continue
			}
			answers[field.Name] = value
			break
		}
	}
	return answers, nil
}

// FakeTrigger records test triggers
type FakeTrigger struct {
	mu        sync.Mutex
	Triggered int
	Err       error
	Journal   *Journal
}

// Trigger records the call
func (f *FakeTrigger) Trigger(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Triggered++
	f.Journal.Record("trigger")
	return f.Err
}
