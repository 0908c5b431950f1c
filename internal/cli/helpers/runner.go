// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"context"

	"github.com/spf13/cobra"

	"featureflow.dev/featureflow/internal/runtime"
)

// ContextFactory builds the runtime context for a command. Tests replace it
// to run commands against fakes.
var ContextFactory = runtime.GetContext

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	ctx, err := ContextFactory(parent)
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()

	return fn(ctx)
}

// ReportedError marks an error whose message has already been shown to the user
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported wraps err as a ReportedError; nil stays nil
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}
