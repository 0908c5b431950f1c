// Package demo provides simulated collaborators for trying feature actions
// without a real repository or GitHub account.
package demo

import (
	"time"

	"featureflow.dev/featureflow/internal/github"
)

// Repository the demo pretends to work in
const (
	demoOwner       = "zencoder"
	demoRepo        = "video-js"
	demoSubmitOwner = "heff2"
	demoBaseBranch  = "master"
)

// stepDelay slows each simulated operation down enough for the spinner to show
var stepDelay = 300 * time.Millisecond

// demoBranches are the local branches the demo repository starts with
var demoBranches = []string{
	"master",
	"feature/captions",
	"feature/playback-rate",
}

// demoPullRequests are the open pull requests on the demo upstream
var demoPullRequests = []*github.PullRequestInfo{
	{
		Number:  42,
		Title:   "Fix seeking past the buffered range",
		State:   github.StateOpen,
		HTMLURL: "https://github.com/zencoder/video-js/pull/42",
		Base:    demoBaseBranch,
		Head: github.HeadInfo{
			Ref:          "fix-seek",
			RepoGitURL:   "git://github.com/bob/video-js.git",
			RepoCloneURL: "https://github.com/bob/video-js.git",
			OwnerLogin:   "bob",
		},
	},
	{
		Number:  43,
		Title:   "Add a volume slider",
		State:   github.StateOpen,
		HTMLURL: "https://github.com/zencoder/video-js/pull/43",
		Base:    demoBaseBranch,
		Head: github.HeadInfo{
			Ref:          "volume-slider",
			RepoGitURL:   "git://github.com/carol/video-js.git",
			RepoCloneURL: "https://github.com/carol/video-js.git",
			OwnerLogin:   "carol",
		},
	},
	{
		// head repository was deleted
		Number:  44,
		Title:   "Old experiment",
		State:   github.StateOpen,
		HTMLURL: "https://github.com/zencoder/video-js/pull/44",
		Base:    demoBaseBranch,
		Head:    github.HeadInfo{Ref: "experiment"},
	},
}
