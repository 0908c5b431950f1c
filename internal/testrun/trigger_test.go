package testrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCommandTrigger(t *testing.T) {
	t.Run("returns before the command finishes", func(t *testing.T) {
		dir := t.TempDir()
		exited := make(chan error, 1)

		trigger := NewCommandTrigger([]string{"sh", "-c", "sleep 0.2 && touch done"}, dir, nil, nil)
		trigger.OnExit = func(err error) { exited <- err }

		require.NoError(t, trigger.Trigger(context.Background()))
		_, err := os.Stat(filepath.Join(dir, "done"))
		require.True(t, os.IsNotExist(err), "command should still be running")

		select {
		case err := <-exited:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("command never finished")
		}
		require.FileExists(t, filepath.Join(dir, "done"))
	})

	t.Run("a failing command still triggers successfully", func(t *testing.T) {
		exited := make(chan error, 1)
		trigger := NewCommandTrigger([]string{"sh", "-c", "exit 3"}, t.TempDir(), nil, nil)
		trigger.OnExit = func(err error) { exited <- err }

		require.NoError(t, trigger.Trigger(context.Background()))
		require.Error(t, <-exited)
	})

	t.Run("missing binary fails to start", func(t *testing.T) {
		trigger := NewCommandTrigger([]string{"featureflow-no-such-binary"}, t.TempDir(), nil, nil)
		require.Error(t, trigger.Trigger(context.Background()))
	})

	t.Run("empty command", func(t *testing.T) {
		require.ErrorIs(t, NewCommandTrigger(nil, "", nil, nil).Trigger(context.Background()), ErrNoCommand)
	})
}
