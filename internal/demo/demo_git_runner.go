package demo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/git"
	"featureflow.dev/featureflow/internal/utils"
)

// demoGitRunner implements git.Runner with simulated data for demo mode.
type demoGitRunner struct {
	mu            sync.Mutex
	currentBranch string
	branches      map[string]bool
	pushed        map[string]bool
	delay         time.Duration
}

// NewDemoGitRunner creates a new demo git runner with simulated data.
func NewDemoGitRunner() git.Runner {
	return newDemoGitRunner(stepDelay)
}

func newDemoGitRunner(delay time.Duration) *demoGitRunner {
	d := &demoGitRunner{
		currentBranch: demoBaseBranch,
		branches:      make(map[string]bool),
		pushed:        make(map[string]bool),
		delay:         delay,
	}
	for _, name := range demoBranches {
		d.branches[name] = true
		d.pushed[name] = true
	}
	return d
}

// wait simulates network and disk latency, honoring cancellation
func (d *demoGitRunner) wait(ctx context.Context) error {
	if d.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(d.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *demoGitRunner) CreateBranch(ctx context.Context, branchName string, _ git.CreateBranchOptions) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.branches[branchName] {
		return fmt.Errorf("fatal: a branch named '%s' already exists", branchName)
	}
	d.branches[branchName] = true
	d.currentBranch = branchName
	return nil
}

func (d *demoGitRunner) Checkout(ctx context.Context, branchName string) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.branches[branchName] {
		return fmt.Errorf("error: pathspec '%s' did not match any file(s) known to git", branchName)
	}
	d.currentBranch = branchName
	return nil
}

func (d *demoGitRunner) DeleteLocalBranch(ctx context.Context, branchName string) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.branches[branchName] {
		return fmt.Errorf("error: branch '%s' not found", branchName)
	}
	delete(d.branches, branchName)
	return nil
}

func (d *demoGitRunner) RefreshTracking(ctx context.Context, branchName string, _ git.RefreshOptions) error {
	return d.Checkout(ctx, branchName)
}

func (d *demoGitRunner) PushBranch(ctx context.Context, branchName string) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushed[branchName] = true
	return nil
}

func (d *demoGitRunner) SetTracking(ctx context.Context, branchName string) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pushed[branchName] {
		return fmt.Errorf("fatal: the requested upstream branch 'origin/%s' does not exist", branchName)
	}
	return nil
}

func (d *demoGitRunner) DeleteRemoteBranch(ctx context.Context, branchName string) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pushed[branchName] {
		return fmt.Errorf("error: unable to delete '%s': remote ref does not exist", branchName)
	}
	delete(d.pushed, branchName)
	return nil
}

func (d *demoGitRunner) CurrentBranch(_ context.Context) (*git.BranchInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.currentBranch == "" {
		return nil, fferrors.ErrNotOnBranch
	}
	return &git.BranchInfo{
		Name:       d.currentBranch,
		ChangeType: utils.ChangeTypeOf(d.currentBranch),
	}, nil
}

func (d *demoGitRunner) RemoteURL(remoteName string) (string, error) {
	switch remoteName {
	case "origin":
		return "git@github.com:alice/" + demoRepo + ".git", nil
	case "upstream":
		return "https://github.com/" + demoOwner + "/" + demoRepo + ".git", nil
	}
	return "", fmt.Errorf("%w: %s", git.ErrRemoteNotFound, remoteName)
}

// localBranches returns the simulated local branches, sorted
func (d *demoGitRunner) localBranches() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.branches))
	for name := range d.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
