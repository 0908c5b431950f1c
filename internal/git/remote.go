package git

import (
	"context"
	"fmt"
)

// RefreshOptions contains options for refreshing a branch from its remote
type RefreshOptions struct {
	// Upstream pulls from the upstream remote instead of the push remote
	Upstream bool
}

// RefreshTracking checks out branchName and fast-forwards it from the remote
func (r *realRunner) RefreshTracking(ctx context.Context, branchName string, opts RefreshOptions) error {
	remote := r.remotes.Remote
	if opts.Upstream {
		remote = r.remotes.UpstreamRemote
	}

	if err := r.Checkout(ctx, branchName); err != nil {
		return err
	}
	if _, err := r.cmd.Run(ctx, "pull", "--ff-only", remote, branchName); err != nil {
		return fmt.Errorf("failed to update %s from %s: %w", branchName, remote, err)
	}
	return nil
}

// PushBranch pushes a branch to the push remote
func (r *realRunner) PushBranch(ctx context.Context, branchName string) error {
	if _, err := r.cmd.Run(ctx, "push", r.remotes.Remote, branchName); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}
	return nil
}

// SetTracking sets the branch's upstream to its counterpart on the push remote
func (r *realRunner) SetTracking(ctx context.Context, branchName string) error {
	upstream := r.remotes.Remote + "/" + branchName
	if _, err := r.cmd.Run(ctx, "branch", "--set-upstream-to="+upstream, branchName); err != nil {
		return fmt.Errorf("failed to track %s: %w", upstream, err)
	}
	return nil
}

// DeleteRemoteBranch deletes a branch from the push remote
func (r *realRunner) DeleteRemoteBranch(ctx context.Context, branchName string) error {
	if _, err := r.cmd.Run(ctx, "push", r.remotes.Remote, "--delete", branchName); err != nil {
		return fmt.Errorf("failed to delete remote branch %s: %w", branchName, err)
	}
	return nil
}
