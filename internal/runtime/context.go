package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"

	"featureflow.dev/featureflow/internal/config"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/github"
	"featureflow.dev/featureflow/internal/prompt"
	"featureflow.dev/featureflow/internal/testrun"
	"featureflow.dev/featureflow/internal/tui"
	"featureflow.dev/featureflow/internal/utils"
)

// Context carries the collaborators a feature action runs against
type Context struct {
	Context  context.Context
	Git      git.Runner
	GitHub   github.Client
	Prompter prompt.Prompter
	Tests    testrun.Trigger
	Splog    *tui.Splog
	UI       tui.PipelineUI
	Config   *config.ProjectConfig
	RepoRoot string
}

// NewContextAuto builds a Context for the repository containing dir.
// An empty dir means the current working directory.
func NewContextAuto(ctx context.Context, dir string) (*Context, error) {
	repoRoot, err := git.GetRepoRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	runner := git.NewRunner(repoRoot, git.RemoteOptions{
		Remote:         cfg.Remote,
		UpstreamRemote: cfg.UpstreamRemote,
	})

	splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}

	if err := InferRepository(cfg, runner); err != nil {
		splog.Debug("could not infer repository from remotes: %v", err)
	}

	ghClient, err := github.NewRealClient(ctx, github.ClientOptions{
		Hostname: cfg.GitHub.Hostname,
		Token:    github.LookupToken(ctx),
		Timeout:  cfg.RequestTimeout(),
	})
	if err != nil {
		return nil, err
	}

	terminal := utils.IsTerminalOutput()
	tui.ConfigureColors(terminal)

	return &Context{
		Context:  ctx,
		Git:      runner,
		GitHub:   ghClient,
		Prompter: prompt.NewSurveyPrompter(),
		Tests:    testrun.NewCommandTrigger(cfg.Test.Command, repoRoot, os.Stdout, os.Stderr),
		Splog:    splog,
		UI:       tui.NewPipelineUI(splog, os.Stdout, terminal),
		Config:   cfg,
		RepoRoot: repoRoot,
	}, nil
}

// IsDemoMode returns true if FEATUREFLOW_DEMO environment variable is set
func IsDemoMode() bool {
	return os.Getenv("FEATUREFLOW_DEMO") != ""
}

// DemoContextFactory builds a Context backed by simulated collaborators.
// Set by the demo package to avoid import cycles.
var DemoContextFactory func(ctx context.Context) (*Context, error)

// GetContext returns a Context for the current working directory,
// or a simulated one in demo mode
func GetContext(ctx context.Context) (*Context, error) {
	if IsDemoMode() && DemoContextFactory != nil {
		return DemoContextFactory(ctx)
	}
	return NewContextAuto(ctx, "")
}

// Close releases the log file
func (c *Context) Close() error {
	if c.Splog == nil {
		return nil
	}
	return c.Splog.Close()
}

// InferRepository fills owner and name from the upstream remote, falling back to the push remote
func InferRepository(cfg *config.ProjectConfig, runner git.Runner) error {
	if cfg.Repository.Owner != "" && cfg.Repository.Name != "" {
		cfg.FillRepository("", "")
		return nil
	}

	var lastErr error
	for _, remote := range []string{cfg.UpstreamRemote, cfg.Remote} {
		url, err := runner.RemoteURL(remote)
		if err != nil {
			lastErr = err
			continue
		}
		info, err := github.ParseGitHubRemoteURL(url)
		if err != nil {
			lastErr = err
			continue
		}
		cfg.FillRepository(info.Owner, info.Repo)
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("no remotes configured")
	}
	return lastErr
}
