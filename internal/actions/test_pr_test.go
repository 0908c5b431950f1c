package actions_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"featureflow.dev/featureflow/internal/actions"
	"featureflow.dev/featureflow/internal/config"
	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/github"
	"featureflow.dev/featureflow/testhelpers"
)

func bobsPullRequest() *github.PullRequestInfo {
	return &github.PullRequestInfo{
		Number: 42,
		Title:  "Fix seeking",
		State:  github.StateOpen,
		Base:   "master",
		Head: github.HeadInfo{
			Ref:          "fix",
			RepoGitURL:   "git://github.com/bob/video-js.git",
			RepoCloneURL: "https://github.com/bob/video-js.git",
			OwnerLogin:   "bob",
		},
	}
}

func TestTestPullRequest(t *testing.T) {
	t.Run("copies the pull request into a local branch", func(t *testing.T) {
		h := testhelpers.NewFeatureContext(t)
		h.GitHub.PullRequests = []*github.PullRequestInfo{bobsPullRequest()}

		require.NoError(t, actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"}))

		require.Equal(t, []testhelpers.ListCall{{Owner: "zencoder", Repo: "video-js", State: github.StateOpen}}, h.GitHub.Lists)
		require.Equal(t, []string{"refresh master", "create bob-fix"}, h.Git.Ops())
		require.True(t, h.Git.Calls[0].Upstream)
		require.Equal(t, "master", h.Git.Calls[1].Base)
		require.Equal(t, "git://github.com/bob/video-js.git fix", h.Git.Calls[1].Source)
		require.Equal(t, 1, h.Tests.Triggered)
		require.Equal(t, actions.MsgCopied, h.LastLine())
		require.Equal(t, []string{
			"github:list zencoder/video-js",
			"git:refresh master",
			"git:create bob-fix",
			"trigger",
		}, h.Journal.Events())
	})

	t.Run("id is compared numerically", func(t *testing.T) {
		for _, id := range []string{"42", " 42 ", "042", "+42"} {
			h := testhelpers.NewFeatureContext(t)
			h.GitHub.PullRequests = []*github.PullRequestInfo{bobsPullRequest()}

			require.NoError(t, actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: id}), id)
			require.Equal(t, "create bob-fix", h.Git.Ops()[1], id)
		}
	})

	t.Run("no matching pull request is a silent no-op", func(t *testing.T) {
		for _, id := range []string{"7", "", "abc", "42a"} {
			h := testhelpers.NewFeatureContext(t)
			h.GitHub.PullRequests = []*github.PullRequestInfo{bobsPullRequest()}

			require.NoError(t, actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: id}), id)
			require.Len(t, h.GitHub.Lists, 1, "pull requests are still listed")
			require.Empty(t, h.Git.Calls, id)
			require.Zero(t, h.Tests.Triggered, id)
			require.Empty(t, h.Lines(), id)
		}
	})

	t.Run("first matching pull request wins", func(t *testing.T) {
		h := testhelpers.NewFeatureContext(t)
		other := bobsPullRequest()
		other.Head.OwnerLogin = "carol"
		h.GitHub.PullRequests = []*github.PullRequestInfo{nil, bobsPullRequest(), other}

		require.NoError(t, actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"}))
		require.Equal(t, "create bob-fix", h.Git.Ops()[1])
	})

	t.Run("https source when configured", func(t *testing.T) {
		h := testhelpers.NewFeatureContext(t)
		h.Ctx.Config.Test.SourceURL = config.SourceURLHTTPS
		h.GitHub.PullRequests = []*github.PullRequestInfo{bobsPullRequest()}

		require.NoError(t, actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"}))
		require.Equal(t, "https://github.com/bob/video-js.git fix", h.Git.Calls[1].Source)
	})

	t.Run("listing failure is a collaborator error", func(t *testing.T) {
		h := testhelpers.NewFeatureContext(t)
		h.GitHub.ListErr = errors.New("503 Service Unavailable")

		err := actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"})
		require.ErrorIs(t, err, fferrors.ErrCollaborator)
		require.EqualError(t, err, "list-pull-requests: 503 Service Unavailable")
		require.Empty(t, h.Git.Calls)
	})

	t.Run("deleted fork is a precondition failure", func(t *testing.T) {
		h := testhelpers.NewFeatureContext(t)
		pull := bobsPullRequest()
		pull.Head.RepoGitURL = ""
		pull.Head.RepoCloneURL = ""
		h.GitHub.PullRequests = []*github.PullRequestInfo{pull}

		err := actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"})
		require.ErrorIs(t, err, fferrors.ErrPrecondition)
		require.EqualError(t, err, "Pull request #42 has no source repository")
		require.Empty(t, h.Git.Calls)
	})

	t.Run("git failures stop the pipeline before tests run", func(t *testing.T) {
		tests := []struct {
			op   string
			step string
			ops  []string
		}{
			{testhelpers.OpRefresh, "refresh-base", []string{"refresh master"}},
			{testhelpers.OpCreate, "create-branch", []string{"refresh master", "create bob-fix"}},
		}

		for _, tt := range tests {
			h := testhelpers.NewFeatureContext(t)
			h.GitHub.PullRequests = []*github.PullRequestInfo{bobsPullRequest()}
			h.Git.FailOn[tt.op] = errors.New("merge conflict")

			err := actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"})
			var stepErr *fferrors.StepError
			require.ErrorAs(t, err, &stepErr)
			require.Equal(t, tt.step, stepErr.Step)
			require.Equal(t, tt.ops, h.Git.Ops())
			require.Zero(t, h.Tests.Triggered)
			require.NotContains(t, h.Lines(), actions.MsgCopied)
		}
	})

	t.Run("tests that fail to start only warn", func(t *testing.T) {
		h := testhelpers.NewFeatureContext(t)
		h.GitHub.PullRequests = []*github.PullRequestInfo{bobsPullRequest()}
		h.Tests.Err = errors.New("executable file not found")

		require.NoError(t, actions.TestPullRequest(h.Ctx, actions.TestOptions{PullRequestID: "42"}))
		require.Contains(t, h.Lines(), "⚠️  Could not start tests: executable file not found")
		require.Equal(t, actions.MsgCopied, h.LastLine())
	})
}
