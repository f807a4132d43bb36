package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-timelog/internal/domain"
	"task-timelog/internal/lock"
	"task-timelog/internal/repository/sqlite"
	"task-timelog/internal/timelog"
)

// 2023-11-14 22:43:20 UTC
const testNow = int64(1700001800)

func testClock() timelog.Clock {
	return timelog.FixedClock(time.Unix(testNow, 0))
}

func setupRepo(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testLocker(t *testing.T) *lock.FileLock {
	t.Helper()
	return lock.New(filepath.Join(t.TempDir(), "tl.lock"), time.Second, 10*time.Millisecond)
}

// seedTask stores a task with a raw time log, bypassing validation
func seedTask(t *testing.T, repo sqlite.Repository, number string, rate float64, timeLog string) string {
	t.Helper()
	task := domain.NewTask(number, "seeded "+number, rate)
	task.TimeLog = timeLog
	row := domain.NewMapper().Task.ToDatabase(task)
	require.NoError(t, repo.CreateTask(context.Background(), &row))
	return row.ID
}

func decodeLog(t *testing.T, task *domain.Task) timelog.Log {
	t.Helper()
	log, err := task.Intervals()
	require.NoError(t, err)
	return log
}

func ptr[T any](v T) *T {
	return &v
}
