// Package testhelpers provides testing utilities for featureflow,
// including a git scene with bare remotes, a mock GitHub server and
// recording fakes of every collaborator.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. Useful in test setup where errors are not expected.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	actual, err := repo.GetLocalBranches()
	require.NoError(t, err, "Failed to list branches")
	sort.Strings(actual)
	sorted := append([]string(nil), expected...)
	sort.Strings(sorted)

	require.Equal(t, sorted, actual, "Branches do not match")
}

// ExpectCurrentBranch asserts which branch is checked out.
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()

	current, err := repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, expected, current)
}

// ExpectRemoteBranch asserts whether a bare remote holds a branch.
func ExpectRemoteBranch(t *testing.T, remote *GitRepo, branch string, present bool) {
	t.Helper()

	if present {
		require.True(t, remote.HasBranch(branch), "expected %s on remote %s", branch, remote.Dir)
		return
	}
	require.False(t, remote.HasBranch(branch), "expected %s to be absent from remote %s", branch, remote.Dir)
}
