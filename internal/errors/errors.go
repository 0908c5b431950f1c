// Package errors provides sentinel errors and custom error types for featureflow.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrValidation indicates malformed user input
	ErrValidation = errors.New("validation failed")

	// ErrPrecondition indicates the repository is not in a state the action can run from
	ErrPrecondition = errors.New("precondition failed")

	// ErrCollaborator indicates a git or GitHub operation failed inside a pipeline
	ErrCollaborator = errors.New("operation failed")

	// ErrUserAbort indicates the user declined a confirmation
	ErrUserAbort = errors.New("aborted")

	// ErrInteractiveDisabled is returned when input is required but prompts are disabled
	ErrInteractiveDisabled = errors.New("interactive prompts are disabled")
)

// ValidationError represents user input that does not satisfy a field's rules
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}

// Is returns true if the target error is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// PreconditionError is raised before any mutating step runs
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrPrecondition
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

// UserAbortError represents an explicit "no" from the user
type UserAbortError struct {
	Message string
}

func (e *UserAbortError) Error() string {
	return e.Message
}

// Is returns true if the target error is ErrUserAbort
func (e *UserAbortError) Is(target error) bool {
	return target == ErrUserAbort
}

// NewUserAbortError creates a new UserAbortError
func NewUserAbortError(message string) *UserAbortError {
	return &UserAbortError{Message: message}
}

// StepError wraps the failure of a single pipeline step
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrCollaborator
func (e *StepError) Is(target error) bool {
	return target == ErrCollaborator
}

// NewStepError creates a new StepError
func NewStepError(step string, err error) *StepError {
	return &StepError{Step: step, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
