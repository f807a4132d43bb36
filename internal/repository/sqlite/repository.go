package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-timelog/internal/errors"
	"task-timelog/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, opts ListOptions) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string) error
	Close() error
}

// Options tunes how the database file is opened
type Options struct {
	DirPermissions os.FileMode
	BusyTimeout    time.Duration
}

// DefaultOptions are used by New
func DefaultOptions() Options {
	return Options{
		DirPermissions: 0755,
		BusyTimeout:    5 * time.Second,
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions opens (creating if needed) the database at dbPath and migrates it
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), opts.DirPermissions); err != nil {
		return nil, errors.NewDatabaseError("create database directory", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", dbPath, opts.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

// CreateTask inserts a task at version 1. A missing ID is generated.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := r.timestamp()

	query := `
	INSERT INTO tasks (id, number, description, rate, time_log, running, version, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Number, task.Description, task.Rate, task.TimeLog,
		FormatBoolForDB(task.Running), FormatTimeForDB(now), FormatTimeForDB(now))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errors.NewConflictError("task", task.ID, "already exists")
		}
		return HandleDatabaseError("create task", err)
	}

	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// ListTasks retrieves tasks in creation order, filtered by opts
func (r *SQLiteRepository) ListTasks(ctx context.Context, opts ListOptions) ([]*Task, error) {
	var conditions []string
	var args []interface{}

	if text := strings.TrimSpace(opts.Text); text != "" {
		conditions = append(conditions, "(number LIKE ? OR description LIKE ?)")
		pattern := "%" + text + "%"
		args = append(args, pattern, pattern)
	}
	if opts.RunningOnly {
		conditions = append(conditions, "running = 1")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, rowid ASC"

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

// UpdateTask writes task if its Version still matches the stored one, then
// bumps Version. A stale version fails with a conflict error.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	now := r.timestamp()

	query := `
	UPDATE tasks
	SET number = ?, description = ?, rate = ?, time_log = ?, running = ?, version = version + 1, updated_at = ?
	WHERE id = ? AND version = ?`

	result, err := r.db.ExecContext(ctx, query,
		task.Number, task.Description, task.Rate, task.TimeLog, FormatBoolForDB(task.Running),
		FormatTimeForDB(now), task.ID, task.Version)
	if err != nil {
		return HandleDatabaseError("update task", err)
	}

	rows, err := RowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.updateMiss(ctx, task)
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}

func (r *SQLiteRepository) updateMiss(ctx context.Context, task *Task) error {
	var current int64
	err := r.db.QueryRowContext(ctx, `SELECT version FROM tasks WHERE id = ?`, task.ID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("task", task.ID)
		}
		return HandleDatabaseError("check task version", err)
	}
	return errors.NewConflictError("task", task.ID,
		fmt.Sprintf("version %d is stale, current version is %d", task.Version, current)).
		WithContext("current_version", current)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}
