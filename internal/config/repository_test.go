package config

import (
	"context"
	"path/filepath"
	"testing"

	"task-timelog/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TL_DB_DIR", filepath.Join(tmpDir, "nested"))

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := CreateRepository(cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	task := &sqlite.Task{Number: "T-1", Description: "Test Task"}
	if err := repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := repo.ListTasks(context.Background(), sqlite.ListOptions{})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("ListTasks() = %v, want the created task", tasks)
	}
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer repo.Close()

	if err := repo.CreateTask(context.Background(), &sqlite.Task{Description: "Test Task"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := repo.ListTasks(context.Background(), sqlite.ListOptions{})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("ListTasks() returned %d tasks, want 1", len(tasks))
	}
}

func TestCreateLock(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := NewConfig()
	cfg.Database.Dir = tmpDir
	cfg.Lock.Filename = "custom.lock"

	locker := CreateLock(cfg)

	if want := filepath.Join(tmpDir, "custom.lock"); locker.Path() != want {
		t.Errorf("CreateLock().Path() = %q, want %q", locker.Path(), want)
	}

	ran := false
	err := locker.WithLock(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil || !ran {
		t.Errorf("WithLock() ran = %v, err = %v", ran, err)
	}
}
