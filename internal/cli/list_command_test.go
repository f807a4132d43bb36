package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-timelog/internal/timelog"
)

func TestListCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		env := setupTestApp(t)
		require.NoError(t, NewListCommand(env.app).Execute(ctx, nil))
		assert.Equal(t, "No tasks found\n", env.out.String())
	})

	t.Run("lists every task with its state and total", func(t *testing.T) {
		env := setupTestApp(t)
		env.seedTask(t, "T-1", 0, runningLog)
		env.seedTask(t, "T-2", 0, `[[1700000000,1700000600,"",false]]`)
		env.seedTask(t, "T-3", 0, timelog.EmptyLog)
		env.seedTask(t, "T-4", 0, "not json")

		require.NoError(t, NewListCommand(env.app).Execute(ctx, nil))
		lines := strings.Split(strings.TrimRight(env.out.String(), "\n"), "\n")
		require.Len(t, lines, 5)

		assert.Contains(t, lines[0], "STATE")
		assert.Contains(t, lines[0], "DURATION")
		assert.NotContains(t, lines[0], "ID")

		assert.Contains(t, lines[1], "running")
		assert.Contains(t, lines[1], "00:23:20")
		assert.Contains(t, lines[2], "stopped")
		assert.Contains(t, lines[2], "00:10:00")
		assert.Contains(t, lines[3], "not started")
		assert.Contains(t, lines[3], "00:00:00")
		assert.Contains(t, lines[4], "T-4")
		assert.Contains(t, lines[4], "unreadable")
	})

	t.Run("running only", func(t *testing.T) {
		env := setupTestApp(t)
		env.seedTask(t, "T-1", 0, runningLog)
		env.seedTask(t, "T-2", 0, `[[1700000000,1700000600,"",false]]`)

		cmd := NewListCommand(env.app)
		cmd.Running = true
		require.NoError(t, cmd.Execute(ctx, nil))
		assert.Contains(t, env.out.String(), "T-1")
		assert.NotContains(t, env.out.String(), "T-2")
	})

	t.Run("text filter", func(t *testing.T) {
		env := setupTestApp(t)
		env.seedTask(t, "ABC-1", 0, timelog.EmptyLog)
		env.seedTask(t, "XYZ-1", 0, timelog.EmptyLog)

		require.NoError(t, NewListCommand(env.app).Execute(ctx, []string{"abc"}))
		assert.Contains(t, env.out.String(), "ABC-1")
		assert.NotContains(t, env.out.String(), "XYZ-1")
	})

	t.Run("verbose shows IDs and problems", func(t *testing.T) {
		env := setupTestApp(t)
		id := env.seedTask(t, "T-1", 0, "not json")
		env.app.config.Application.Verbose = true

		require.NoError(t, NewListCommand(env.app).Execute(ctx, nil))
		out := env.out.String()
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, id)
		assert.Contains(t, out, "corrupted")
	})
}
