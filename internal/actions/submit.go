package actions

import (
	"context"
	"regexp"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/github"
	"featureflow.dev/featureflow/internal/prompt"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/tui"
)

// githubLoginPattern matches GitHub user names
var githubLoginPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

var submitFields = []prompt.Field{
	{
		Name:     "username",
		Message:  "Github Username",
		Pattern:  githubLoginPattern,
		Warning:  "Usernames can only contain letters, numbers and dashes, and cannot start with a dash",
		Required: true,
	},
	{Name: "password", Message: "Github Password", Hidden: true, Required: true},
	{Name: "title", Message: "Please title the pull request", Required: true},
	{Name: "body", Message: "Please describe the feature"},
}

// SubmitOptions contains options for submitting a feature
type SubmitOptions struct {
	// UpstreamOwner receives the pull request; defaults to submit.owner
	UpstreamOwner string
	// BaseBranch is the pull request base; defaults to submit.base
	BaseBranch string
}

// Submit opens a pull request from the current branch of the user's fork
func Submit(ctx *runtime.Context, opts SubmitOptions) error {
	owner := opts.UpstreamOwner
	if owner == "" {
		owner = ctx.Config.Submit.Owner
	}
	base := opts.BaseBranch
	if base == "" {
		base = ctx.Config.Submit.Base
	}

	current, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return fferrors.NewStepError("current-branch", err)
	}

	answers, err := ctx.Prompter.Ask(submitFields...)
	if err != nil {
		return err
	}

	username := answers["username"]
	pr := github.CreatePROptions{
		Title: answers["title"],
		Body:  answers["body"],
		Head:  username + ":" + current.Name,
		Base:  base,
	}

	var created *github.PullRequestInfo
	err = runSteps(ctx, "submit "+current.Name, []step{
		{name: "create-pull-request", run: func(c context.Context) error {
			client := ctx.GitHub.Authenticate(github.Credentials{
				Username: username,
				Password: answers["password"],
			})
			var err error
			created, err = client.CreatePullRequest(c, owner, ctx.Config.Repository.Name, pr)
			return err
		}},
	})
	if err != nil {
		return err
	}

	if created != nil && created.HTMLURL != "" {
		ctx.Splog.Info("Pull request #%d: %s", created.Number, tui.ColorURL(created.HTMLURL))
	}
	ctx.Splog.Info(MsgSubmitted)
	return nil
}
