// Package git provides the version-control operations featureflow orchestrates.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Branch management (create, checkout, delete)
//   - Remote operations (refresh, push, tracking, remote deletion)
//   - Repo state queries (current branch, remote URLs, repository root)
//
// This package should be the only place where direct git commands are executed.
package git
