package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"featureflow.dev/featureflow/internal/config"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/tui"
)

type initOptions struct {
	dir         string
	owner       string
	repo        string
	submitOwner string
	base        string
	force       bool
}

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	opts := initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .featureflow.yml for the current repository",
		Long: `Write a .featureflow.yml at the repository root.

The upstream owner and repository name are read from the upstream remote
(falling back to origin) unless given with flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := tui.NewSplogWithWriter(cmd.OutOrStdout())
			return runInit(splog, opts)
		},
	}

	cmd.Flags().StringVar(&opts.owner, "owner", "", "Owner of the upstream repository")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "Name of the upstream repository")
	cmd.Flags().StringVar(&opts.submitOwner, "submit-owner", "", "Owner pull requests are opened against")
	cmd.Flags().StringVar(&opts.base, "base", "", "Branch features start from")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config")

	return cmd
}

func runInit(splog *tui.Splog, opts initOptions) error {
	repoRoot, err := git.GetRepoRoot(opts.dir)
	if err != nil {
		return fmt.Errorf("failed to get repo root: %w", err)
	}

	reinit := config.Exists(repoRoot)
	if reinit && !opts.force {
		return fmt.Errorf("%s already exists; use --force to overwrite it", config.FileName)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return err
	}
	if opts.owner != "" {
		cfg.Repository.Owner = opts.owner
	}
	if opts.repo != "" {
		cfg.Repository.Name = opts.repo
	}
	if opts.submitOwner != "" {
		cfg.Submit.Owner = opts.submitOwner
	}
	if opts.base != "" {
		cfg.BaseBranch = opts.base
		cfg.Submit.Base = opts.base
	}

	runner := git.NewRunner(repoRoot, git.RemoteOptions{Remote: cfg.Remote, UpstreamRemote: cfg.UpstreamRemote})
	if err := runtime.InferRepository(cfg, runner); err != nil {
		splog.Warn("Could not read the repository from your remotes: %v", err)
	}

	if err := cfg.Save(repoRoot); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if reinit {
		splog.Info("Rewrote %s", config.FileName)
	} else {
		splog.Info("Wrote %s", config.FileName)
	}
	splog.Info("Upstream repository: %s/%s", cfg.Repository.Owner, cfg.Repository.Name)
	splog.Info("Pull requests go to %s, based on %s", cfg.Submit.Owner, tui.ColorBranch(cfg.Submit.Base))
	if cfg.Repository.Owner == "" || cfg.Repository.Name == "" {
		splog.Tip("Set them with featureflow init --force --owner <owner> --repo <repo>")
	}
	return nil
}
