package git

import (
	"context"
	"fmt"
	"strings"
)

// CreateBranchOptions contains options for creating a branch
type CreateBranchOptions struct {
	// Base is the branch the new branch starts from
	Base string
	// Source is "<url> <ref>"; when set it is pulled into the new branch
	Source string
}

// CreateBranch creates and checks out a new branch, optionally pulling a source into it
func (r *realRunner) CreateBranch(ctx context.Context, branchName string, opts CreateBranchOptions) error {
	args := []string{"checkout", "-b", branchName}
	if opts.Base != "" {
		args = append(args, opts.Base)
	}
	if _, err := r.cmd.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}

	if opts.Source == "" {
		return nil
	}

	source := strings.Fields(opts.Source)
	pullArgs := append([]string{"pull", "--no-rebase", "--no-edit"}, source...)
	if _, err := r.cmd.Run(ctx, pullArgs...); err != nil {
		return fmt.Errorf("failed to pull %s into %s: %w", opts.Source, branchName, err)
	}
	return nil
}

// Checkout checks out an existing branch
func (r *realRunner) Checkout(ctx context.Context, branchName string) error {
	if _, err := r.cmd.Run(ctx, "checkout", branchName); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteLocalBranch force-deletes a local branch
func (r *realRunner) DeleteLocalBranch(ctx context.Context, branchName string) error {
	if _, err := r.cmd.Run(ctx, "branch", "-D", branchName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}
