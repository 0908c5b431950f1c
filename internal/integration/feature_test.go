package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"featureflow.dev/featureflow/internal/config"
)

func TestFeatureLifecycle(t *testing.T) {
	t.Parallel()
	binaryPath := getFeatureflowBinary(t)

	t.Run("start refreshes master and publishes the branch", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)
		sha := sh.Scene().AdvanceUpstream("released upstream")

		sh.Log("Starting a feature...")
		sh.Run("feature start captions").
			OutputContains("Ready to start building your feature!").
			OnBranch("feature/captions").
			OnOrigin("feature/captions", true)

		master, err := sh.Scene().Repo.GetRevision("master")
		require.NoError(t, err)
		require.Equal(t, sha, master)

		upstream, err := sh.Scene().Repo.UpstreamOf("feature/captions")
		require.NoError(t, err)
		require.Equal(t, "origin/feature/captions", upstream)

		sh.Log("Starting it again fails at branch creation...")
		sh.RunExpectError("feature start captions").
			OutputContains("create-branch").
			OutputNotContains("Ready to start")
	})

	t.Run("invalid names are rejected without a terminal", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)

		sh.RunExpectError("feature start 'Bad Name'").
			OutputContains("Names can only contain dashes, 0-9, and a-z").
			HasBranches("master")
	})

	t.Run("delete needs a confirmation", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)
		sh.Run("feature start captions")

		sh.RunExpectError("feature delete").
			OutputContains("yesno").
			HasBranches("feature/captions", "master").
			OnOrigin("feature/captions", true)
	})

	t.Run("delete outside a feature branch", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)

		sh.RunExpectError("feature delete").
			OutputContains("❌ You are not in a feature branch")
	})

	t.Run("submit without a terminal cannot ask for credentials", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)
		sh.Run("feature start captions")

		sh.RunExpectError("feature submit").
			OutputContains("username").
			OutputNotContains("Feature submitted!")
	})

	t.Run("accept and unknown actions do nothing", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)

		sh.Run("feature accept 42").OutputEmpty()
		sh.Run("feature frobnicate").OutputEmpty().HasBranches("master")
	})

	t.Run("missing action does nothing", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)

		sh.Run("feature").OutputEmpty().HasBranches("master")
	})
}

func TestInitAndVersion(t *testing.T) {
	t.Parallel()
	binaryPath := getFeatureflowBinary(t)

	t.Run("init writes the project config", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)
		sh.Git("remote set-url upstream https://github.com/zencoder/video-js.git")

		sh.Run("init --submit-owner heff2").
			OutputContains("Wrote .featureflow.yml").
			OutputContains("Upstream repository: zencoder/video-js")

		cfg, err := config.Load(sh.Scene().Dir)
		require.NoError(t, err)
		require.Equal(t, "zencoder", cfg.Repository.Owner)
		require.Equal(t, "video-js", cfg.Repository.Name)
		require.Equal(t, "heff2", cfg.Submit.Owner)

		sh.RunExpectError("init").OutputContains("--force")
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath)

		sh.Run("version").OutputContains("featureflow dev")
	})
}

func TestDemoMode(t *testing.T) {
	t.Parallel()
	binaryPath := getFeatureflowBinary(t)

	t.Run("start runs against the simulated repository", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath).WithEnv("FEATUREFLOW_DEMO=1")

		sh.Run("feature start subtitles").
			OutputContains("Ready to start building your feature!").
			HasBranches("master")
	})

	t.Run("test copies a demo pull request", func(t *testing.T) {
		t.Parallel()
		sh := NewTestShell(t, binaryPath).WithEnv("FEATUREFLOW_DEMO=1")

		sh.Run("feature test 42").
			OutputContains("Feature copied into your local repo").
			HasBranches("master")
	})
}
