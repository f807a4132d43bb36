package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"task-timelog/internal/logging"
	"task-timelog/internal/timelog"
)

func init() {
	goose.AddMigrationContext(upAddRunningFlag, downAddRunningFlag)
}

// upAddRunningFlag adds the denormalized running column used by list filters
// and backfills it from each task's stored time log. Tasks whose log cannot be
// decoded keep running = 0.
func upAddRunningFlag(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `ALTER TABLE tasks ADD COLUMN running INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("failed to add running column: %w", err)
	}

	// Read all rows into memory first to avoid locking issues
	type task struct {
		id      string
		timeLog string
	}
	var tasks []task

	rows, err := tx.QueryContext(ctx, "SELECT id, time_log FROM tasks")
	if err != nil {
		return fmt.Errorf("failed to query tasks: %w", err)
	}
	for rows.Next() {
		var t task
		if err := rows.Scan(&t.id, &t.timeLog); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating tasks: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, "UPDATE tasks SET running = 1 WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare running update statement: %w", err)
	}
	defer stmt.Close()

	running, skipped := 0, 0
	for _, t := range tasks {
		log, err := timelog.Decode(t.timeLog)
		if err != nil {
			logging.Debugf("Warning: task %s has an unreadable time log: %v\n", t.id, err)
			skipped++
			continue
		}
		if log.State() != timelog.Running {
			continue
		}
		if _, err := stmt.ExecContext(ctx, t.id); err != nil {
			return fmt.Errorf("failed to mark task %s running: %w", t.id, err)
		}
		running++
	}

	logging.Debugf("Backfill complete: %d tasks, %d running, %d skipped\n", len(tasks), running, skipped)
	return nil
}

func downAddRunningFlag(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `ALTER TABLE tasks DROP COLUMN running`); err != nil {
		return fmt.Errorf("failed to drop running column: %w", err)
	}
	return nil
}
