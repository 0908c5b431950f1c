// Package testrun starts the project's test task after a pull request has
// been copied into a local branch.
package testrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrNoCommand is returned when no test command is configured
var ErrNoCommand = errors.New("no test command configured")

// Trigger starts a test run. It does not wait for the run to finish.
type Trigger interface {
	Trigger(ctx context.Context) error
}

// CommandTrigger runs a configured command in the repository
type CommandTrigger struct {
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
	// OnExit, when set, receives the result of the finished command
	OnExit func(err error)
}

// NewCommandTrigger creates a trigger for command, run in dir
func NewCommandTrigger(command []string, dir string, stdout, stderr io.Writer) *CommandTrigger {
	return &CommandTrigger{Command: command, Dir: dir, Stdout: stdout, Stderr: stderr}
}

// Trigger starts the command and reaps it in the background.
// The child is detached from ctx so it outlives the invocation's deadline.
func (t *CommandTrigger) Trigger(_ context.Context) error {
	if len(t.Command) == 0 {
		return ErrNoCommand
	}

	cmd := exec.Command(t.Command[0], t.Command[1:]...) //nolint:gosec // command comes from the project config
	cmd.Dir = t.Dir
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", t.Command[0], err)
	}

	go func() {
		err := cmd.Wait()
		if t.OnExit != nil {
			t.OnExit(err)
		}
	}()

	return nil
}
