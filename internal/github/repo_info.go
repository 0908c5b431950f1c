package github

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Supports both github.com and GitHub Enterprise URLs
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - git://github.com/owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")
	if remoteURL == "" {
		return nil, fmt.Errorf("empty remote URL")
	}

	var hostname, path string
	if scheme := strings.Index(remoteURL, "://"); scheme >= 0 {
		// https://, http://, git:// and ssh:// forms
		rest := remoteURL[scheme+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid remote URL %q: must be protocol://hostname/owner/repo", remoteURL)
		}
		hostname, path = parts[0], parts[1]
		// ssh://git@host:22/owner/repo
		if colon := strings.Index(hostname, ":"); colon >= 0 {
			hostname = hostname[:colon]
		}
	} else if at := strings.Index(remoteURL, "@"); at >= 0 {
		// scp-like form: git@hostname:owner/repo
		hostAndPath := remoteURL[at+1:]
		parts := strings.SplitN(hostAndPath, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid SSH remote URL %q", remoteURL)
		}
		hostname, path = parts[0], parts[1]
	} else {
		return nil, fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}

	info := &RepoInfo{
		Hostname: hostname,
		Owner:    segments[len(segments)-2],
		Repo:     segments[len(segments)-1],
	}
	if info.Hostname == "" || info.Owner == "" || info.Repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}

	return info, nil
}

// LookupToken finds an API token in the environment or from the gh CLI.
// An empty string means no token is available, which is not an error:
// listing public pull requests works anonymously.
func LookupToken(ctx context.Context) string {
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(key)); token != "" {
			return token
		}
	}

	if _, err := exec.LookPath("gh"); err != nil {
		return ""
	}
	output, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
