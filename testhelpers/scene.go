package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SceneBaseBranch is the branch every scene starts on
const SceneBaseBranch = "master"

// Scene is a working clone on master with bare "origin" and "upstream" remotes,
// both already holding master.
type Scene struct {
	Dir      string
	Repo     *GitRepo
	Origin   *GitRepo
	Upstream *GitRepo
	t        *testing.T
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene. Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := t.TempDir()
	remotes := t.TempDir()

	repo, err := NewGitRepo(dir, SceneBaseBranch)
	require.NoError(t, err)
	require.NoError(t, repo.CreateChangeAndCommit("initial", ""))

	origin, err := NewBareRepo(filepath.Join(remotes, "origin.git"))
	require.NoError(t, err)
	upstream, err := NewBareRepo(filepath.Join(remotes, "upstream.git"))
	require.NoError(t, err)

	require.NoError(t, repo.AddRemote("origin", origin.Dir))
	require.NoError(t, repo.AddRemote("upstream", upstream.Dir))
	require.NoError(t, repo.PushBranch("origin", SceneBaseBranch))
	require.NoError(t, repo.PushBranch("upstream", SceneBaseBranch))

	scene := &Scene{
		Dir:      dir,
		Repo:     repo,
		Origin:   origin,
		Upstream: upstream,
		t:        t,
	}

	if setup != nil {
		require.NoError(t, setup(scene), "scene setup failed")
	}

	return scene
}

// AdvanceUpstream commits to master through a second clone and pushes it to
// upstream, so the scene's local master falls behind.
func (s *Scene) AdvanceUpstream(content string) string {
	s.t.Helper()

	other, err := NewGitRepo(s.t.TempDir(), SceneBaseBranch)
	require.NoError(s.t, err)
	require.NoError(s.t, other.AddRemote("upstream", s.Upstream.Dir))
	require.NoError(s.t, other.RunGitCommand("pull", "upstream", SceneBaseBranch))
	require.NoError(s.t, other.CreateChangeAndCommit(content, "upstream"))
	require.NoError(s.t, other.PushBranch("upstream", SceneBaseBranch))

	sha, err := other.GetRevision("HEAD")
	require.NoError(s.t, err)
	return sha
}

// PublishFork creates a bare contributor fork holding branch with one extra
// commit on top of master. Returns the fork path, usable as a pull source.
func (s *Scene) PublishFork(branch, content string) string {
	s.t.Helper()

	fork, err := NewBareRepo(filepath.Join(s.t.TempDir(), "fork.git"))
	require.NoError(s.t, err)

	contributor, err := NewGitRepo(s.t.TempDir(), SceneBaseBranch)
	require.NoError(s.t, err)
	require.NoError(s.t, contributor.AddRemote("upstream", s.Upstream.Dir))
	require.NoError(s.t, contributor.AddRemote("fork", fork.Dir))
	require.NoError(s.t, contributor.RunGitCommand("pull", "upstream", SceneBaseBranch))
	require.NoError(s.t, contributor.CreateAndCheckoutBranch(branch))
	require.NoError(s.t, contributor.CreateChangeAndCommit(content, "fork"))
	require.NoError(s.t, contributor.PushBranch("fork", branch))

	return fork.Dir
}

// BasicSceneSetup is a setup function that adds a second commit on master.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
