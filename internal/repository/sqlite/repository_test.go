package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-timelog/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := New(filepath.Join(t.TempDir(), "data", "tl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestCreateTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	repo.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 500, time.UTC) }

	task := &Task{
		Number:      "T-1",
		Description: "Write report",
		Rate:        42.5,
		TimeLog:     `[[1700000000,1700003600,"",false]]`,
	}
	require.NoError(t, repo.CreateTask(ctx, task))

	_, err := uuid.Parse(task.ID)
	assert.NoError(t, err, "generated ID should be a UUID")
	assert.Equal(t, int64(1), task.Version)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), task.CreatedAt)

	stored, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, stored)
}

func TestCreateTask_KeepsGivenIDAndRejectsDuplicates(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	id := uuid.New().String()

	require.NoError(t, repo.CreateTask(ctx, &Task{ID: id, Description: "first"}))

	err := repo.CreateTask(ctx, &Task{ID: id, Description: "second"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConflict), "got %v", err)
}

func TestGetTask_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTask(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestTimeLogStoredVerbatim(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	logs := []string{
		"",
		"[]",
		`[ [1700000000, 0, "naïve <note>", true] ]`,
		`{corrupt`,
	}

	for _, log := range logs {
		task := &Task{TimeLog: log}
		require.NoError(t, repo.CreateTask(ctx, task))

		stored, err := repo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, log, stored.TimeLog)
	}
}

func TestListTasks(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	tasks := []*Task{
		{Number: "A-1", Description: "Design review"},
		{Number: "A-2", Description: "Fix login", Running: true},
		{Number: "B-1", Description: "Review invoices", Running: true},
	}
	for _, task := range tasks {
		require.NoError(t, repo.CreateTask(ctx, task))
	}

	tests := []struct {
		name     string
		opts     ListOptions
		expected []string
	}{
		{"all in creation order", ListOptions{}, []string{"A-1", "A-2", "B-1"}},
		{"running only", ListOptions{RunningOnly: true}, []string{"A-2", "B-1"}},
		{"text matches description", ListOptions{Text: "review"}, []string{"A-1", "B-1"}},
		{"text matches number", ListOptions{Text: "A-"}, []string{"A-1", "A-2"}},
		{"text and running combine", ListOptions{Text: "review", RunningOnly: true}, []string{"B-1"}},
		{"no match", ListOptions{Text: "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.ListTasks(ctx, tt.opts)
			require.NoError(t, err)

			numbers := []string{}
			for _, task := range result {
				numbers = append(numbers, task.Number)
			}
			assert.Equal(t, tt.expected, numbers)
		})
	}
}

func TestUpdateTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Description: "Draft"}
	require.NoError(t, repo.CreateTask(ctx, task))

	task.Description = "Final"
	task.TimeLog = `[[1700000000,0,"",true]]`
	task.Running = true
	require.NoError(t, repo.UpdateTask(ctx, task))
	assert.Equal(t, int64(2), task.Version)

	stored, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Description)
	assert.Equal(t, `[[1700000000,0,"",true]]`, stored.TimeLog)
	assert.True(t, stored.Running)
	assert.Equal(t, int64(2), stored.Version)
}

func TestUpdateTask_StaleVersion(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Description: "Shared"}
	require.NoError(t, repo.CreateTask(ctx, task))

	first, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	second, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)

	first.TimeLog = `[[1700000000,0,"",true]]`
	require.NoError(t, repo.UpdateTask(ctx, first))

	second.TimeLog = `[[1700000500,0,"",true]]`
	err = repo.UpdateTask(ctx, second)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	current, _ := appErr.GetContext("current_version")
	assert.Equal(t, int64(2), current)
	assert.Equal(t, int64(1), second.Version, "a failed update leaves the version alone")

	stored, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, `[[1700000000,0,"",true]]`, stored.TimeLog)
}

func TestUpdateTask_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.UpdateTask(context.Background(), &Task{ID: "missing", Version: 1})

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestDeleteTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Description: "Temporary"}
	require.NoError(t, repo.CreateTask(ctx, task))

	require.NoError(t, repo.DeleteTask(ctx, task.ID))

	_, err := repo.GetTask(ctx, task.ID)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	err = repo.DeleteTask(ctx, task.ID)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tl.db")
	ctx := context.Background()

	repo, err := New(path)
	require.NoError(t, err)
	task := &Task{Description: "Persisted"}
	require.NoError(t, repo.CreateTask(ctx, task))
	require.NoError(t, repo.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	stored, err := reopened.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", stored.Description)
}
