package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	fferrors "featureflow.dev/featureflow/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
	binary     string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir, binary: "git"}
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
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

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		return "", fferrors.NewGitCommandError(r.binary, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Runner defines the git operations feature pipelines are built from.
// This allows pipelines to run against both real git and recording fakes.
type Runner interface {
	// Branch Management
	CreateBranch(ctx context.Context, branchName string, opts CreateBranchOptions) error
	Checkout(ctx context.Context, branchName string) error
	DeleteLocalBranch(ctx context.Context, branchName string) error

	// Remote Operations
	RefreshTracking(ctx context.Context, branchName string, opts RefreshOptions) error
	PushBranch(ctx context.Context, branchName string) error
	SetTracking(ctx context.Context, branchName string) error
	DeleteRemoteBranch(ctx context.Context, branchName string) error

	// Repository State
	CurrentBranch(ctx context.Context) (*BranchInfo, error)
	RemoteURL(remoteName string) (string, error)
}

// RemoteOptions names the remotes a Runner talks to
type RemoteOptions struct {
	// Remote receives pushed branches (usually "origin")
	Remote string
	// UpstreamRemote is pulled when refreshing with RefreshOptions.Upstream (usually "upstream")
	UpstreamRemote string
}

// NewRunner returns a Runner executing git in repoDir
func NewRunner(repoDir string, remotes RemoteOptions) Runner {
	if remotes.Remote == "" {
		remotes.Remote = "origin"
	}
	if remotes.UpstreamRemote == "" {
		remotes.UpstreamRemote = "upstream"
	}
	return &realRunner{
		cmd:     NewCommandRunner(repoDir),
		remotes: remotes,
	}
}

// realRunner implements Runner with the git binary and go-git
type realRunner struct {
	cmd     *CommandRunner
	remotes RemoteOptions
}
