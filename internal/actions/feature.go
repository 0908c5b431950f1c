package actions

import (
	"errors"

	fferrors "featureflow.dev/featureflow/internal/errors"
	"featureflow.dev/featureflow/internal/runtime"
)

// Action names a feature workflow action
type Action string

// Recognized actions
const (
	ActionStart  Action = "start"
	ActionDelete Action = "delete"
	ActionSubmit Action = "submit"
	ActionTest   Action = "test"
	ActionAccept Action = "accept"
)

// Actions lists every recognized action
var Actions = []Action{ActionStart, ActionDelete, ActionSubmit, ActionTest, ActionAccept}

// RunsPipeline reports whether a runs a pipeline against git or GitHub.
// Accept and unknown actions do not, so they need no repository.
func (a Action) RunsPipeline() bool {
	switch a {
	case ActionStart, ActionDelete, ActionSubmit, ActionTest:
		return true
	}
	return false
}

// Log lines written when an action completes
const (
	MsgStarted   = "Ready to start building your feature!"
	MsgDeleted   = "Feature deleted"
	MsgSubmitted = "Feature submitted!"
	MsgCopied    = "Feature copied into your local repo"

	MsgDeleteAborted    = "Delete branch aborted"
	MsgNotFeatureBranch = "You are not in a feature branch"
)

// Invocation is one request from the command line.
// Option and Option2 are positional and their meaning depends on the action.
type Invocation struct {
	Action  Action
	Option  string
	Option2 string
}

// Dispatch runs the pipeline for inv.Action.
// Unknown actions are ignored. Failures are logged before being returned.
func Dispatch(ctx *runtime.Context, inv Invocation) error {
	var err error

	switch inv.Action {
	case ActionStart:
		err = Start(ctx, StartOptions{Name: inv.Option})
	case ActionDelete:
		err = Delete(ctx, DeleteOptions{Name: inv.Option})
	case ActionSubmit:
		err = Submit(ctx, SubmitOptions{UpstreamOwner: inv.Option, BaseBranch: inv.Option2})
	case ActionTest:
		err = TestPullRequest(ctx, TestOptions{PullRequestID: inv.Option})
	case ActionAccept:
		err = Accept(ctx)
	default:
		ctx.Splog.Debug("ignoring unknown feature action %q", string(inv.Action))
		return nil
	}

	if err != nil {
		reportFailure(ctx, err)
		return err
	}
	return nil
}

func reportFailure(ctx *runtime.Context, err error) {
	if errors.Is(err, fferrors.ErrUserAbort) {
		ctx.Splog.Warn("%s", err)
		return
	}
	ctx.Splog.Error("%s", err)
}

// Accept is reserved for merging a tested pull request and does nothing yet
func Accept(_ *runtime.Context) error {
	return nil
}
