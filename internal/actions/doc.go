// Package actions implements the feature branch workflow behind `featureflow feature`.
//
// Each action (start, delete, submit, test, accept) gathers its input first
// and then runs an ordered list of steps against the collaborators in
// runtime.Context. Steps run one at a time and the first failure stops the
// pipeline; nothing already applied is rolled back.
//
// Dependencies:
//   - git: branch and remote operations
//   - github: pull request listing and creation
//   - prompt: interactive input
//   - testrun: starting the project's test task
//   - tui: logging and step progress
package actions
