package helpers

import (
	"github.com/spf13/cobra"

	"featureflow.dev/featureflow/internal/actions"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/utils"
)

// CompleteFeatureArgs is a cobra.ValidArgsFunction for `feature`.
// It completes action names first, then feature names for delete.
func CompleteFeatureArgs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch {
	case len(args) == 0:
		names := make([]string, 0, len(actions.Actions))
		for _, action := range actions.Actions {
			names = append(names, string(action))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	case len(args) == 1 && args[0] == string(actions.ActionDelete):
		return CompleteFeatureNames("")
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// CompleteFeatureNames returns the names of local feature branches in the repository containing dir
func CompleteFeatureNames(dir string) ([]string, cobra.ShellCompDirective) {
	branches, err := git.LocalBranchNames(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, branch := range branches {
		if name, ok := utils.FeatureNameFromBranch(branch); ok {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
