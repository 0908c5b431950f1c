package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/utils"
)

// BranchInfo describes a local branch
type BranchInfo struct {
	Name       string
	ChangeType string
}

// IsFeature reports whether the branch is a feature branch
func (b *BranchInfo) IsFeature() bool {
	return b.ChangeType == utils.ChangeTypeFeature
}

// GetRepoRoot returns the root directory of the Git repository containing dir.
// An empty dir means the current working directory.
func GetRepoRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := openRepository(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// LocalBranchNames returns the sorted local branch names of the repository containing dir
func LocalBranchNames(dir string) ([]string, error) {
	root, err := GetRepoRoot(dir)
	if err != nil {
		return nil, err
	}
	repo, err := openRepository(root)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func openRepository(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return repo, nil
}

// CurrentBranch returns the checked out branch and its change type
func (r *realRunner) CurrentBranch(_ context.Context) (*BranchInfo, error) {
	repo, err := openRepository(r.cmd.WorkingDir())
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return nil, fferrors.ErrNotOnBranch
	}

	name := head.Name().Short()
	return &BranchInfo{
		Name:       name,
		ChangeType: utils.ChangeTypeOf(name),
	}, nil
}

// ErrRemoteNotFound indicates the requested remote is not configured
var ErrRemoteNotFound = errors.New("remote not found")

// RemoteURL returns the first URL configured for remoteName
func (r *realRunner) RemoteURL(remoteName string) (string, error) {
	repo, err := openRepository(r.cmd.WorkingDir())
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, remoteName)
		}
		return "", fmt.Errorf("failed to read remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remoteName)
	}
	return urls[0], nil
}
