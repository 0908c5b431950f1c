package testhelpers

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"featureflow.dev/featureflow/internal/config"
	"featureflow.dev/featureflow/internal/runtime"
	"featureflow.dev/featureflow/internal/tui"
)

// FeatureHarness is a runtime.Context wired entirely to recording fakes
type FeatureHarness struct {
	Ctx      *runtime.Context
	Git      *FakeGit
	GitHub   *FakeGitHub
	Prompter *ScriptedPrompter
	Tests    *FakeTrigger
	Journal  *Journal
	Output   *bytes.Buffer
}

// NewFeatureContext creates a harness for the zencoder/video-js repository,
// submitting to heff2 by default, checked out on master.
func NewFeatureContext(t *testing.T) *FeatureHarness {
	t.Helper()
	t.Setenv("DEBUG", "")

	journal := &Journal{}
	out := &bytes.Buffer{}
	splog := tui.NewSplogWithWriter(out)

	fakeGit := NewFakeGit()
	fakeGit.Journal = journal
	gh := &FakeGitHub{Journal: journal}
	prompter := NewScriptedPrompter()
	prompter.Journal = journal
	trigger := &FakeTrigger{Journal: journal}

	cfg := config.Default()
	cfg.Repository = config.RepositoryConfig{Owner: "zencoder", Name: "video-js"}
	cfg.Submit.Owner = "heff2"

	return &FeatureHarness{
		Ctx: &runtime.Context{
			Context:  context.Background(),
			Git:      fakeGit,
			GitHub:   gh,
			Prompter: prompter,
			Tests:    trigger,
			Splog:    splog,
			UI:       tui.NewPlainPipelineUI(splog),
			Config:   cfg,
			RepoRoot: t.TempDir(),
		},
		Git:      fakeGit,
		GitHub:   gh,
		Prompter: prompter,
		Tests:    trigger,
		Journal:  journal,
		Output:   out,
	}
}

// Lines returns the console lines written so far
func (h *FeatureHarness) Lines() []string {
	return splitLines(h.Output.String())
}

// LastLine returns the last console line, or "" when nothing was written
func (h *FeatureHarness) LastLine() string {
	lines := h.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
