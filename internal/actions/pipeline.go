package actions

import (
	"context"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/tui"
)

// step is a single collaborator call inside a pipeline
type step struct {
	name string
	run  func(ctx context.Context) error
}

// runSteps runs steps in order and stops at the first failure, which is
// returned as a StepError naming the step. Later steps are never started.
func runSteps(ctx *runtime.Context, title string, steps []step) error {
	ui := pipelineUI(ctx)

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	ui.Begin(title, names)

	for i, s := range steps {
		ui.StepStarted(i)
		if err := s.run(ctx.Context); err != nil {
			ui.StepFinished(i, err)
			ui.End(err)
			return fferrors.NewStepError(s.name, err)
		}
		ui.StepFinished(i, nil)
	}

	ui.End(nil)
	return nil
}

func pipelineUI(ctx *runtime.Context) tui.PipelineUI {
	if ctx.UI != nil {
		return ctx.UI
	}
	return tui.NewPlainPipelineUI(ctx.Splog)
}
