package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"featureflow.dev/featureflow/internal/cli/helpers"
	"featureflow.dev/featureflow/internal/config"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/tui"
	"featureflow.dev/featureflow/testhelpers"
)

// useHarness routes commands to a fake-backed context for the rest of the test
func useHarness(t *testing.T) *testhelpers.FeatureHarness {
	t.Helper()
	h := testhelpers.NewFeatureContext(t)
	previous := helpers.ContextFactory
	helpers.ContextFactory = func(context.Context) (*runtime.Context, error) {
		return h.Ctx, nil
	}
	t.Cleanup(func() { helpers.ContextFactory = previous })
	return h
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd("1.2.3", "abc123", "2024-01-01")
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	code := Execute(cmd, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFeatureCommand(t *testing.T) {
	t.Run("dispatches the action with its options", func(t *testing.T) {
		h := useHarness(t)

		code, _, stderr := execute("feature", "start", "my-fix")
		require.Equal(t, 0, code, stderr)
		require.Equal(t, []string{
			"refresh master",
			"create feature/my-fix",
			"push feature/my-fix",
			"track feature/my-fix",
		}, h.Git.Ops())
	})

	t.Run("passes both submit options", func(t *testing.T) {
		h := useHarness(t)
		h.Git.Branches["feature/captions"] = true
		h.Git.Current = "feature/captions"
		h.Prompter.Script("username", "alice").Script("password", "pw").Script("title", "T").Script("body", "")

		code, _, stderr := execute("feature", "submit", "videojs", "stable")
		require.Equal(t, 0, code, stderr)
		require.Equal(t, "videojs", h.GitHub.Created[0].Owner)
		require.Equal(t, "stable", h.GitHub.Created[0].Opts.Base)
	})

	t.Run("failures exit 1 without printing twice", func(t *testing.T) {
		h := useHarness(t)

		code, _, stderr := execute("feature", "delete")
		require.Equal(t, 1, code)
		require.Empty(t, stderr)
		require.Equal(t, "❌ You are not in a feature branch", h.LastLine())
	})

	t.Run("declined delete exits 1", func(t *testing.T) {
		h := useHarness(t)
		h.Git.Branches["feature/x"] = true
		h.Git.Current = "feature/x"
		h.Prompter.Script("yesno", "no")

		code, _, _ := execute("feature", "delete")
		require.Equal(t, 1, code)
		require.Empty(t, h.Git.MutatingOps())
	})

	t.Run("unknown actions exit 0", func(t *testing.T) {
		h := useHarness(t)

		code, _, _ := execute("feature", "rebase", "x")
		require.Equal(t, 0, code)
		require.Empty(t, h.Journal.Events())
	})

	t.Run("a missing action does nothing", func(t *testing.T) {
		h := useHarness(t)

		code, stdout, stderr := execute("feature")
		require.Equal(t, 0, code)
		require.Empty(t, stdout)
		require.Empty(t, stderr)
		require.Empty(t, h.Journal.Events())
	})

	t.Run("ignored actions never build a context", func(t *testing.T) {
		previous := helpers.ContextFactory
		helpers.ContextFactory = func(context.Context) (*runtime.Context, error) {
			return nil, errors.New("failed to get repo root: not a git repository")
		}
		t.Cleanup(func() { helpers.ContextFactory = previous })

		for _, args := range [][]string{{"feature", "bogus"}, {"feature", "accept", "42"}, {"feature"}} {
			code, stdout, stderr := execute(args...)
			require.Equal(t, 0, code, args)
			require.Empty(t, stdout, args)
			require.Empty(t, stderr, args)
		}
	})

	t.Run("ignored actions succeed outside a repository", func(t *testing.T) {
		t.Chdir(t.TempDir())

		code, _, stderr := execute("feature", "bogus")
		require.Equal(t, 0, code)
		require.Empty(t, stderr)
	})

	t.Run("too many arguments are rejected", func(t *testing.T) {
		useHarness(t)

		code, _, stderr := execute("feature", "submit", "a", "b", "c")
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "accepts at most 3 arg(s), received 4")
	})

	t.Run("context errors are printed", func(t *testing.T) {
		previous := helpers.ContextFactory
		helpers.ContextFactory = func(context.Context) (*runtime.Context, error) {
			return nil, errors.New("failed to get repo root: not a git repository")
		}
		t.Cleanup(func() { helpers.ContextFactory = previous })

		code, _, stderr := execute("feature", "start", "x")
		require.Equal(t, 1, code)
		require.Equal(t, "Error: failed to get repo root: not a git repository\n", stderr)
	})
}

func TestInvocationFromArgs(t *testing.T) {
	require.Empty(t, invocationFromArgs(nil).Action)

	inv := invocationFromArgs([]string{"submit"})
	require.Equal(t, "submit", string(inv.Action))
	require.Empty(t, inv.Option)
	require.Empty(t, inv.Option2)

	inv = invocationFromArgs([]string{"submit", "", "stable"})
	require.Empty(t, inv.Option, "an empty owner keeps the configured default")
	require.Equal(t, "stable", inv.Option2)
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := execute("version")
	require.Equal(t, 0, code)
	require.Equal(t, "featureflow 1.2.3 (commit abc123, built 2024-01-01)\n", stdout)
}

func TestInit(t *testing.T) {
	for _, key := range []string{"FEATUREFLOW_UPSTREAM_OWNER", "FEATUREFLOW_REPO", "FEATUREFLOW_SUBMIT_OWNER", "FEATUREFLOW_BASE_BRANCH"} {
		t.Setenv(key, "")
	}

	t.Run("writes the repository read from remotes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.Repo.RunGitCommand("remote", "set-url", "upstream", "https://github.com/zencoder/video-js.git"))
		var out bytes.Buffer

		require.NoError(t, runInit(tui.NewSplogWithWriter(&out), initOptions{dir: scene.Dir}))

		cfg, err := config.Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, config.RepositoryConfig{Owner: "zencoder", Name: "video-js"}, cfg.Repository)
		require.Equal(t, "zencoder", cfg.Submit.Owner)
		require.Equal(t, "master", cfg.BaseBranch)
		require.Contains(t, out.String(), "Wrote .featureflow.yml")
		require.Contains(t, out.String(), "Upstream repository: zencoder/video-js")
	})

	t.Run("flags override remotes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.Repo.RunGitCommand("remote", "set-url", "upstream", "https://github.com/zencoder/video-js.git"))

		err := runInit(tui.NewSplogWithWriter(&bytes.Buffer{}), initOptions{
			dir:         scene.Dir,
			owner:       "videojs",
			submitOwner: "heff2",
			base:        "stable",
		})
		require.NoError(t, err)

		cfg, err := config.Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "videojs", cfg.Repository.Owner)
		require.Equal(t, "video-js", cfg.Repository.Name)
		require.Equal(t, "heff2", cfg.Submit.Owner)
		require.Equal(t, "stable", cfg.BaseBranch)
		require.Equal(t, "stable", cfg.Submit.Base)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		splog := tui.NewSplogWithWriter(&bytes.Buffer{})
		require.NoError(t, runInit(splog, initOptions{dir: scene.Dir, owner: "a", repo: "b"}))

		err := runInit(splog, initOptions{dir: scene.Dir, owner: "c"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "--force")

		require.NoError(t, runInit(splog, initOptions{dir: scene.Dir, owner: "c", force: true}))
		cfg, err := config.Load(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, "c", cfg.Repository.Owner)
		require.Equal(t, "b", cfg.Repository.Name)
	})

	t.Run("warns when remotes are not on GitHub", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		var out bytes.Buffer

		require.NoError(t, runInit(tui.NewSplogWithWriter(&out), initOptions{dir: scene.Dir}))
		require.Contains(t, out.String(), "⚠️  Could not read the repository from your remotes")
		require.Contains(t, out.String(), "💡 Set them with featureflow init --force")
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		err := runInit(tui.NewSplogWithWriter(&bytes.Buffer{}), initOptions{dir: t.TempDir()})
		require.Error(t, err)
	})
}

func TestCompletion(t *testing.T) {
	t.Run("actions first", func(t *testing.T) {
		names, directive := helpers.CompleteFeatureArgs(nil, nil, "")
		require.Equal(t, []string{"start", "delete", "submit", "test", "accept"}, names)
		require.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})

	t.Run("feature names for delete", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		for _, branch := range []string{"feature/b", "feature/a", "hotfix/c", "feature/Bad"} {
			require.NoError(t, scene.Repo.RunGitCommand("branch", branch))
		}

		names, directive := helpers.CompleteFeatureNames(scene.Dir)
		require.Equal(t, []string{"a", "b"}, names)
		require.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})

	t.Run("nothing after the options", func(t *testing.T) {
		names, _ := helpers.CompleteFeatureArgs(nil, []string{"start", "x"}, "")
		require.Empty(t, names)
	})
}
