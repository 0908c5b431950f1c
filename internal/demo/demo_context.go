package demo

import (
	"context"
	"os"

	"featureflow.dev/featureflow/internal/config"
	"featureflow.dev/featureflow/internal/prompt"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/tui"
	"featureflow.dev/featureflow/internal/utils"
)

func init() {
	runtime.DemoContextFactory = NewDemoContext
}

// NewDemoContext builds a Context whose git and GitHub are simulated.
// Prompts still go to the real terminal.
func NewDemoContext(ctx context.Context) (*runtime.Context, error) {
	cfg := config.Default()
	cfg.Submit.Owner = demoSubmitOwner
	cfg.FillRepository(demoOwner, demoRepo)

	terminal := utils.IsTerminalOutput()
	tui.ConfigureColors(terminal)
	splog := tui.NewSplog()

	return &runtime.Context{
		Context:  ctx,
		Git:      NewDemoGitRunner(),
		GitHub:   NewDemoGitHubClient(),
		Prompter: prompt.NewSurveyPrompter(),
		Tests:    &demoTrigger{splog: splog},
		Splog:    splog,
		UI:       tui.NewPipelineUI(splog, os.Stdout, terminal),
		Config:   cfg,
	}, nil
}

// demoTrigger pretends to start the test suite
type demoTrigger struct {
	splog *tui.Splog
}

func (t *demoTrigger) Trigger(_ context.Context) error {
	t.splog.Debug("demo: test run requested")
	return nil
}
