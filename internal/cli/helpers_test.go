package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-timelog/internal/api"
	"task-timelog/internal/config"
	"task-timelog/internal/domain"
	"task-timelog/internal/lock"
	"task-timelog/internal/repository/sqlite"
	"task-timelog/internal/services"
	"task-timelog/internal/timelog"
)

// 2023-11-14 22:43:20 UTC
const testNow = int64(1700001800)

// A stopped ten minute interval followed by one running since 22:30:00
const runningLog = `[[1700000000,1700000600,"",false],[1700001000,0,"",true]]`

type testEnv struct {
	app  *App
	out  *bytes.Buffer
	repo sqlite.Repository
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	repo, err := sqlite.New(filepath.Join(dir, "tl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	cfg.Database.Dir = dir
	cfg.Display.Location = "UTC"

	locker := lock.New(filepath.Join(dir, "tl.lock"), time.Second, 10*time.Millisecond)
	container, err := services.NewServiceContainer(repo, locker, timelog.FixedClock(time.Unix(testNow, 0)), cfg)
	require.NoError(t, err)

	app := NewApp(api.New(container, cfg), cfg)
	out := &bytes.Buffer{}
	app.SetOutput(out)

	return &testEnv{app: app, out: out, repo: repo}
}

// seedTask stores a task with a raw time log and returns its ID
func (e *testEnv) seedTask(t *testing.T, number string, rate float64, timeLog string) string {
	t.Helper()
	task := domain.NewTask(number, "seeded "+number, rate)
	task.TimeLog = timeLog
	row := domain.NewMapper().Task.ToDatabase(task)
	require.NoError(t, e.repo.CreateTask(context.Background(), &row))
	return row.ID
}

func (e *testEnv) task(t *testing.T, ref string) *domain.Task {
	t.Helper()
	task, err := e.app.api.GetTask(context.Background(), ref)
	require.NoError(t, err)
	return task
}
