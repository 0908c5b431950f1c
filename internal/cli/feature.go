package cli

import (
	"github.com/spf13/cobra"

	"featureflow.dev/featureflow/internal/actions"
	"featureflow.dev/featureflow/internal/cli/helpers"
	"featureflow.dev/featureflow/internal/runtime"
)

// newFeatureCmd creates the feature command
func newFeatureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature <action> [option] [option2]",
		Short: "Run a feature branch action",
		Long: `Run a feature branch action.

Actions:
  start [name]             Refresh the base branch from upstream and create,
                           push and track feature/<name>
  delete [name]            Delete feature/<name>, or the current feature
                           branch, locally and on your fork
  submit [owner] [base]    Open a pull request from the current branch
  test <id>                Copy open pull request <id> into a local branch
                           and start the test command
  accept                   Reserved

Unknown or missing actions are ignored.`,
		Example: `  featureflow feature start captions
  featureflow feature submit videojs stable
  featureflow feature test 42`,
		Args:              cobra.MaximumNArgs(3),
		ValidArgsFunction: helpers.CompleteFeatureArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := invocationFromArgs(args)
			if !inv.Action.RunsPipeline() {
				return nil
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return helpers.Reported(actions.Dispatch(ctx, inv))
			})
		},
	}

	return cmd
}

func invocationFromArgs(args []string) actions.Invocation {
	var inv actions.Invocation
	if len(args) > 0 {
		inv.Action = actions.Action(args[0])
	}
	if len(args) > 1 {
		inv.Option = args[1]
	}
	if len(args) > 2 {
		inv.Option2 = args[2]
	}
	return inv
}
