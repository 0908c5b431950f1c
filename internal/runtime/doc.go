// Package runtime provides the execution context for featureflow commands.
//
// It builds every collaborator an action needs (git runner, GitHub client,
// prompter, test trigger, logger, step UI) once per invocation, so actions
// never construct clients themselves and tests can swap in fakes.
package runtime
