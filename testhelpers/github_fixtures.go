package testhelpers

import (
	"strconv"

	"github.com/google/go-github/v62/github"
)

// SamplePRData provides common PR data for testing
type SamplePRData struct {
	Number     int
	Title      string
	Head       string
	Base       string
	HeadOwner  string
	HeadGitURL string
	// HeadCloneURL defaults to an https URL derived from HeadOwner
	HeadCloneURL string
	// DeletedFork leaves the head repository out, as GitHub does for removed forks
	DeletedFork bool
}

// NewSamplePullRequest creates a github.PullRequest from sample data
func NewSamplePullRequest(data SamplePRData) *github.PullRequest {
	pr := &github.PullRequest{
		Number:  github.Int(data.Number),
		Title:   github.String(data.Title),
		State:   github.String("open"),
		HTMLURL: github.String("https://github.com/owner/repo/pull/" + strconv.Itoa(data.Number)),
		Base:    &github.PullRequestBranch{Ref: github.String(data.Base)},
		Head:    &github.PullRequestBranch{Ref: github.String(data.Head)},
	}

	if data.DeletedFork {
		return pr
	}

	gitURL := data.HeadGitURL
	if gitURL == "" {
		gitURL = "git://github.com/" + data.HeadOwner + "/repo.git"
	}
	cloneURL := data.HeadCloneURL
	if cloneURL == "" {
		cloneURL = "https://github.com/" + data.HeadOwner + "/repo.git"
	}

	pr.Head.Repo = &github.Repository{
		GitURL:   github.String(gitURL),
		CloneURL: github.String(cloneURL),
		Owner:    &github.User{Login: github.String(data.HeadOwner)},
	}
	return pr
}

// DefaultPRData returns a default PR data structure for testing
func DefaultPRData() SamplePRData {
	return SamplePRData{
		Number:    42,
		Title:     "Add playback rate menu",
		Head:      "rate-menu",
		Base:      "master",
		HeadOwner: "alice",
	}
}

// OpenPRs builds count sequentially numbered pull requests starting at 1
func OpenPRs(count int) []*github.PullRequest {
	prs := make([]*github.PullRequest, 0, count)
	for i := 1; i <= count; i++ {
		data := DefaultPRData()
		data.Number = i
		data.Head = "branch-" + strconv.Itoa(i)
		prs = append(prs, NewSamplePullRequest(data))
	}
	return prs
}
