package actions

import (
	"context"
	"strconv"
	"strings"

	"featureflow.dev/featureflow/internal/config"
	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/github"
	"featureflow.dev/featureflow/internal/runtime"
)

// TestOptions contains options for testing a pull request locally
type TestOptions struct {
	// PullRequestID is compared numerically with open pull request numbers
	PullRequestID string
}

// TestPullRequest copies an open pull request into a local branch and starts the tests.
// When no open pull request matches, nothing happens.
func TestPullRequest(ctx *runtime.Context, opts TestOptions) error {
	owner, repo := ctx.Config.Repository.Owner, ctx.Config.Repository.Name

	var pulls []*github.PullRequestInfo
	err := runSteps(ctx, "fetch pull requests", []step{
		{name: "list-pull-requests", run: func(c context.Context) error {
			var err error
			pulls, err = ctx.GitHub.ListPullRequests(c, owner, repo, github.StateOpen)
			return err
		}},
	})
	if err != nil {
		return err
	}

	pull := findPullRequest(pulls, opts.PullRequestID)
	if pull == nil {
		ctx.Splog.Debug("no open pull request #%s in %s/%s", opts.PullRequestID, owner, repo)
		return nil
	}
	if pull.Head.RepoMissing() {
		return fferrors.NewPreconditionError("Pull request #%d has no source repository", pull.Number)
	}

	branch := pull.Head.OwnerLogin + "-" + pull.Head.Ref
	source := sourceURL(ctx.Config, pull.Head) + " " + pull.Head.Ref
	base := ctx.Config.BaseBranch

	err = runSteps(ctx, "test #"+strconv.Itoa(pull.Number), []step{
		{name: "refresh-base", run: func(c context.Context) error {
			return ctx.Git.RefreshTracking(c, base, git.RefreshOptions{Upstream: true})
		}},
		{name: "create-branch", run: func(c context.Context) error {
			return ctx.Git.CreateBranch(c, branch, git.CreateBranchOptions{Base: base, Source: source})
		}},
	})
	if err != nil {
		return err
	}

	// The test run's own result is reported by the test task, not here
	if err := ctx.Tests.Trigger(ctx.Context); err != nil {
		ctx.Splog.Warn("Could not start tests: %v", err)
	}

	ctx.Splog.Info(MsgCopied)
	return nil
}

// findPullRequest returns the first pull request whose number equals id
func findPullRequest(pulls []*github.PullRequestInfo, id string) *github.PullRequestInfo {
	number, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return nil
	}
	for _, pull := range pulls {
		if pull != nil && pull.Number == number {
			return pull
		}
	}
	return nil
}

func sourceURL(cfg *config.ProjectConfig, head github.HeadInfo) string {
	if cfg.Test.SourceURL == config.SourceURLHTTPS && head.RepoCloneURL != "" {
		return head.RepoCloneURL
	}
	if head.RepoGitURL != "" {
		return head.RepoGitURL
	}
	return head.RepoCloneURL
}
