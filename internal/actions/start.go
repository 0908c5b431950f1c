package actions

import (
	"context"
	"errors"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/prompt"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/utils"
)

var featureNameField = prompt.Field{
	Name:     "name",
	Message:  "Name of the feature:",
	Pattern:  utils.FeatureNameRegex,
	Warning:  utils.FeatureNameWarning,
	Required: true,
}

// StartOptions contains options for starting a feature
type StartOptions struct {
	// Name is asked for when empty or invalid
	Name string
}

// Start refreshes the base branch from upstream and creates, pushes and tracks feature/<name>
func Start(ctx *runtime.Context, opts StartOptions) error {
	name, err := resolveFeatureName(ctx, opts.Name)
	if err != nil {
		return err
	}

	branch := utils.FeatureBranchName(name)
	base := ctx.Config.BaseBranch

	err = runSteps(ctx, "start "+branch, []step{
		{name: "refresh-base", run: func(c context.Context) error {
			return ctx.Git.RefreshTracking(c, base, git.RefreshOptions{Upstream: true})
		}},
		{name: "create-branch", run: func(c context.Context) error {
			return ctx.Git.CreateBranch(c, branch, git.CreateBranchOptions{Base: base})
		}},
		{name: "push-branch", run: func(c context.Context) error {
			return ctx.Git.PushBranch(c, branch)
		}},
		{name: "set-tracking", run: func(c context.Context) error {
			return ctx.Git.SetTracking(c, branch)
		}},
	})
	if err != nil {
		return err
	}

	ctx.Splog.Info(MsgStarted)
	return nil
}

// resolveFeatureName returns a valid feature name, asking for one when needed
func resolveFeatureName(ctx *runtime.Context, given string) (string, error) {
	if utils.IsValidFeatureName(given) {
		return given, nil
	}

	if given != "" {
		ctx.Splog.Warn(utils.FeatureNameWarning)
	}

	answers, err := ctx.Prompter.Ask(featureNameField)
	if err != nil {
		if given != "" && errors.Is(err, fferrors.ErrInteractiveDisabled) {
			return "", fferrors.NewValidationError(featureNameField.Name, given, utils.FeatureNameWarning)
		}
		return "", err
	}

	name := answers[featureNameField.Name]
	if !utils.IsValidFeatureName(name) {
		return "", fferrors.NewValidationError(featureNameField.Name, name, utils.FeatureNameWarning)
	}
	return name, nil
}
