package config

import (
	"fmt"
	"os"

	"task-timelog/internal/lock"
	"task-timelog/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	dbPath := config.GetDatabasePath()

	repo, err := sqlite.NewWithOptions(dbPath, sqlite.Options{
		DirPermissions: os.FileMode(config.Database.DirPermissions),
		BusyTimeout:    config.Lock.AcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateLock creates the file lock guarding timer mutations on the configured database
func CreateLock(config *Config) *lock.FileLock {
	return lock.New(config.GetLockPath(), config.Lock.AcquireTimeout, config.Lock.RetryDelay)
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
