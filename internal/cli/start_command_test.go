package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-timelog/internal/errors"
	"task-timelog/internal/timelog"
)

func TestStartCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("starts a task by number", func(t *testing.T) {
		env := setupTestApp(t)
		id := env.seedTask(t, "T-1", 0, timelog.EmptyLog)

		require.NoError(t, NewStartCommand(env.app).Execute(ctx, []string{"T-1"}))
		assert.Equal(t, "Started timer for T-1 seeded T-1\n", env.out.String())

		task := env.task(t, id)
		assert.True(t, task.IsRunning())
		assert.Equal(t, `[[1700001800,0,"",true]]`, task.TimeLog)
	})

	t.Run("appends to a stopped log", func(t *testing.T) {
		env := setupTestApp(t)
		id := env.seedTask(t, "T-1", 0, `[[1700000000,1700000600,"",false]]`)

		require.NoError(t, NewStartCommand(env.app).Execute(ctx, []string{id}))

		log, err := env.task(t, id).Intervals()
		require.NoError(t, err)
		assert.Len(t, log, 2)
		assert.Equal(t, timelog.Running, log.State())
	})

	t.Run("already running", func(t *testing.T) {
		env := setupTestApp(t)
		env.seedTask(t, "T-1", 0, runningLog)

		err := NewStartCommand(env.app).Execute(ctx, []string{"T-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to start timer")
		assert.Contains(t, err.Error(), "timer is already running")
	})

	t.Run("unknown task", func(t *testing.T) {
		env := setupTestApp(t)
		err := NewStartCommand(env.app).Execute(ctx, []string{"T-404"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("usage", func(t *testing.T) {
		env := setupTestApp(t)
		err := NewStartCommand(env.app).Execute(ctx, nil)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		assert.Contains(t, err.Error(), "usage: tl start")
	})
}

func TestToggleCommand_Execute(t *testing.T) {
	ctx := context.Background()
	env := setupTestApp(t)
	id := env.seedTask(t, "T-1", 0, `[[1700001000,1700001200,"",false]]`)
	cmd := NewToggleCommand(env.app)

	require.NoError(t, cmd.Execute(ctx, []string{"T-1"}))
	assert.Contains(t, env.out.String(), "Started timer for T-1")
	assert.True(t, env.task(t, id).IsRunning())

	env.out.Reset()
	require.NoError(t, cmd.Execute(ctx, []string{"T-1"}))
	assert.Equal(t, "Stopped timer for T-1 seeded T-1 after 00:00:00\n", env.out.String())
	assert.False(t, env.task(t, id).IsRunning())
}
