package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"featureflow.dev/featureflow/internal/cli/helpers"
	_ "featureflow.dev/featureflow/internal/demo" // Register demo context factory
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "featureflow",
		Short: "Featureflow starts, submits, tests and deletes feature branches",
		Long: `Featureflow coordinates the lifecycle of feature branches in a fork-based
GitHub workflow: start a feature from the upstream base branch, submit it as a
pull request, copy someone else's pull request locally to test it, and delete
it when you are done.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Add subcommands
	rootCmd.AddCommand(newFeatureCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// Execute runs cmd and returns the process exit code.
// Errors not already shown by the feature dispatcher are printed to stderr.
func Execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var reported *helpers.ReportedError
	if !errors.As(err, &reported) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
