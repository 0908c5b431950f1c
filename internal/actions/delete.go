package actions

import (
	"context"
	"errors"
	"fmt"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/prompt"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/utils"
)

const confirmField = "yesno"

// DeleteOptions contains options for deleting a feature
type DeleteOptions struct {
	// Name selects feature/<name>; when empty the current branch is deleted
	Name string
}

// Delete removes a feature branch locally and from the push remote after confirmation
func Delete(ctx *runtime.Context, opts DeleteOptions) error {
	branch, err := branchToDelete(ctx, opts.Name)
	if err != nil {
		return err
	}

	answers, err := ctx.Prompter.Ask(prompt.Confirm(confirmField, fmt.Sprintf("Are you sure you want to delete %s?", branch)))
	if err != nil {
		return err
	}
	if !prompt.IsYes(answers[confirmField]) {
		return fferrors.NewUserAbortError(MsgDeleteAborted)
	}

	base := ctx.Config.BaseBranch
	err = runSteps(ctx, "delete "+branch, []step{
		{name: "checkout-base", run: func(c context.Context) error {
			return ctx.Git.Checkout(c, base)
		}},
		{name: "delete-local-branch", run: func(c context.Context) error {
			return ctx.Git.DeleteLocalBranch(c, branch)
		}},
		{name: "delete-remote-branch", run: func(c context.Context) error {
			return ctx.Git.DeleteRemoteBranch(c, branch)
		}},
	})
	if err != nil {
		return err
	}

	ctx.Splog.Info(MsgDeleted)
	return nil
}

// branchToDelete resolves the explicit name, or requires the current branch to be a feature
func branchToDelete(ctx *runtime.Context, name string) (string, error) {
	if name != "" {
		if !utils.IsValidFeatureName(name) {
			return "", fferrors.NewValidationError("name", name, utils.FeatureNameWarning)
		}
		return utils.FeatureBranchName(name), nil
	}

	info, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		if errors.Is(err, fferrors.ErrNotOnBranch) {
			return "", fferrors.NewPreconditionError(MsgNotFeatureBranch)
		}
		return "", fferrors.NewStepError("current-branch", err)
	}
	if !info.IsFeature() {
		return "", fferrors.NewPreconditionError(MsgNotFeatureBranch)
	}
	return info.Name, nil
}
