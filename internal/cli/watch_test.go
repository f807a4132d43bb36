package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-timelog/internal/errors"
	"task-timelog/internal/timelog"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchModel_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the interval", func(t *testing.T) {
		env := setupTestApp(t)
		m := newWatchModel(ctx, env.app.api, "id", DefaultStyles(), 0)
		assert.Equal(t, time.Second, m.interval)
		assert.Equal(t, "Loading...\n", m.View())
	})

	t.Run("quit keys", func(t *testing.T) {
		env := setupTestApp(t)
		m := newWatchModel(ctx, env.app.api, "id", DefaultStyles(), time.Second)

		for _, msg := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
			_, cmd := m.Update(msg)
			require.NotNil(t, cmd, msg.String())
			assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
		}
	})

	t.Run("refresh shows the live status", func(t *testing.T) {
		env := setupTestApp(t)
		id := env.seedTask(t, "T-1", 0, runningLog)
		m := newWatchModel(ctx, env.app.api, id, DefaultStyles(), time.Second)

		msg := m.refresh()()
		status, ok := msg.(watchStatusMsg)
		require.True(t, ok)
		require.NoError(t, status.err)

		next, cmd := m.Update(status)
		assert.Nil(t, cmd)
		view := next.View()
		assert.Contains(t, view, "T-1 seeded T-1")
		assert.Contains(t, view, "00:13:20")
		assert.Contains(t, view, "total 00:23:20")
		assert.Contains(t, view, "running")
		assert.Contains(t, view, "quit")
	})

	t.Run("toggle stops the timer", func(t *testing.T) {
		env := setupTestApp(t)
		id := env.seedTask(t, "T-1", 0, runningLog)
		m := newWatchModel(ctx, env.app.api, id, DefaultStyles(), time.Second)

		_, cmd := m.Update(keyPress("s"))
		require.NotNil(t, cmd)
		toggled, ok := cmd().(watchToggledMsg)
		require.True(t, ok)
		require.NoError(t, toggled.err)
		assert.False(t, toggled.task.IsRunning())

		next, cmd := m.Update(toggled)
		assert.Equal(t, "Timer stopped", next.(watchModel).message)
		require.NotNil(t, cmd)
		status := cmd().(watchStatusMsg)
		assert.False(t, status.status.IsRunning)
		assert.Equal(t, timelog.Closed, env.task(t, id).State())
	})

	t.Run("toggle failure is shown", func(t *testing.T) {
		env := setupTestApp(t)
		m := newWatchModel(ctx, env.app.api, "id", DefaultStyles(), time.Second)

		next, _ := m.Update(watchToggledMsg{err: errors.NewConflictError("task", "id", "stale")})
		assert.Equal(t, "task id: stale", next.(watchModel).message)
	})

	t.Run("deleted task ends the view", func(t *testing.T) {
		env := setupTestApp(t)
		m := newWatchModel(ctx, env.app.api, "gone", DefaultStyles(), time.Second)

		next, cmd := m.Update(watchStatusMsg{err: errors.NewNotFoundError("task", "gone")})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Error(t, next.(watchModel).err)
	})

	t.Run("unreadable log is reported and polling continues", func(t *testing.T) {
		env := setupTestApp(t)
		m := newWatchModel(ctx, env.app.api, "id", DefaultStyles(), time.Second)

		next, cmd := m.Update(watchStatusMsg{err: errors.NewMalformedLogError("bad", nil)})
		assert.Nil(t, cmd)
		assert.Nil(t, next.(watchModel).err)
		assert.Contains(t, next.View(), "corrupted")

		_, cmd = next.Update(watchTickMsg{})
		assert.NotNil(t, cmd)
	})
}

func TestWatchCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("quits on q", func(t *testing.T) {
		env := setupTestApp(t)
		env.seedTask(t, "T-1", 0, runningLog)
		env.app.SetInput(strings.NewReader("q"))

		cmd := NewWatchCommand(env.app)
		cmd.Interval = 10 * time.Millisecond
		require.NoError(t, cmd.Execute(ctx, []string{"T-1"}))
	})

	t.Run("unknown task", func(t *testing.T) {
		env := setupTestApp(t)
		err := NewWatchCommand(env.app).Execute(ctx, []string{"T-404"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to watch task")
	})

	t.Run("usage", func(t *testing.T) {
		env := setupTestApp(t)
		assert.Error(t, NewWatchCommand(env.app).Execute(ctx, nil))
	})
}
