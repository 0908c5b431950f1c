package integration

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"featureflow.dev/featureflow/testhelpers"
)

// TestShell wraps a scene and runs featureflow in it, so tests read like
// terminal sessions.
type TestShell struct {
	t          *testing.T
	scene      *testhelpers.Scene
	binaryPath string
	extraEnv   []string
	lastOutput string
	lastCode   int
}

// NewTestShell creates a shell on master with origin and upstream remotes.
func NewTestShell(t *testing.T, binaryPath string) *TestShell {
	t.Helper()
	scene := testhelpers.NewScene(t, nil)
	return &TestShell{t: t, scene: scene, binaryPath: binaryPath}
}

// Scene returns the underlying test scene for direct access when needed.
func (s *TestShell) Scene() *testhelpers.Scene {
	return s.scene
}

func (s *TestShell) env() []string {
	return append(append(os.Environ(),
		"GIT_CONFIG_GLOBAL=/dev/null",
		"FEATUREFLOW_NON_INTERACTIVE=1",
		"FEATUREFLOW_LOG_FILE=off",
		"GITHUB_TOKEN=test-token",
		"NO_COLOR=1",
		"DEBUG=",
	), s.extraEnv...)
}

// WithEnv adds KEY=VALUE pairs to every later command
func (s *TestShell) WithEnv(pairs ...string) *TestShell {
	s.extraEnv = append(s.extraEnv, pairs...)
	return s
}

func (s *TestShell) exec(args string) error {
	s.t.Helper()
	cmd := exec.Command(s.binaryPath, splitArgs(args)...)
	cmd.Dir = s.scene.Dir
	cmd.Env = s.env()
	output, err := cmd.CombinedOutput()
	s.lastOutput = string(output)
	s.lastCode = cmd.ProcessState.ExitCode()
	return err
}

// Run executes a featureflow command and expects it to succeed
func (s *TestShell) Run(args string) *TestShell {
	s.t.Helper()
	err := s.exec(args)
	require.NoError(s.t, err, "$ featureflow %s\n%s", args, s.lastOutput)
	return s
}

// RunExpectError executes a featureflow command and expects exit code 1
func (s *TestShell) RunExpectError(args string) *TestShell {
	s.t.Helper()
	err := s.exec(args)
	require.Error(s.t, err, "$ featureflow %s (expected error)\n%s", args, s.lastOutput)
	require.Equal(s.t, 1, s.lastCode, s.lastOutput)
	return s
}

// Git executes a raw git command
func (s *TestShell) Git(args string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.RunGitCommand(splitArgs(args)...), "$ git %s", args)
	return s
}

// Output returns the last command's output
func (s *TestShell) Output() string {
	return s.lastOutput
}

// OutputContains asserts the last output contains the given string
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// OutputNotContains asserts the last output does NOT contain the given string
func (s *TestShell) OutputNotContains(substr string) *TestShell {
	s.t.Helper()
	require.NotContains(s.t, s.lastOutput, substr)
	return s
}

// OutputEmpty asserts the last command printed nothing
func (s *TestShell) OutputEmpty() *TestShell {
	s.t.Helper()
	require.Empty(s.t, strings.TrimSpace(s.lastOutput))
	return s
}

// OnBranch asserts we're on the expected branch
func (s *TestShell) OnBranch(expected string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectCurrentBranch(s.t, s.scene.Repo, expected)
	return s
}

// HasBranches asserts the repo has exactly these branches
func (s *TestShell) HasBranches(branches ...string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectBranches(s.t, s.scene.Repo, branches)
	return s
}

// OnOrigin asserts whether the push remote holds branch
func (s *TestShell) OnOrigin(branch string, present bool) *TestShell {
	s.t.Helper()
	testhelpers.ExpectRemoteBranch(s.t, s.scene.Origin, branch, present)
	return s
}

// Log prints a message (useful for documenting test steps)
func (s *TestShell) Log(msg string) *TestShell {
	s.t.Log(msg)
	return s
}

// splitArgs splits a command string into args, respecting quotes
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			switch {
			case inQuote && r == quoteChar:
				inQuote = false
			case !inQuote:
				inQuote = true
				quoteChar = r
			default:
				current.WriteRune(r)
			}
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
