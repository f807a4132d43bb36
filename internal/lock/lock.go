// Package lock serializes timer mutations across tl processes with an
// advisory file lock next to the database.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	apperrors "task-timelog/internal/errors"
	"task-timelog/internal/logging"
)

// Locker runs fn while holding an exclusive lock.
type Locker interface {
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileLock is a Locker backed by a lock file.
type FileLock struct {
	path       string
	timeout    time.Duration
	retryDelay time.Duration
}

// New creates a FileLock. Acquisition polls every retryDelay and gives up after timeout.
func New(path string, timeout, retryDelay time.Duration) *FileLock {
	return &FileLock{path: path, timeout: timeout, retryDelay: retryDelay}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	return l.path
}

// WithLock acquires the lock, runs fn, and releases the lock. Failing to
// acquire within the timeout yields a timeout AppError.
func (l *FileLock) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	fileLock := flock.New(l.path)

	acquireCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(acquireCtx, l.retryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperrors.NewTimeoutError("acquire lock "+l.path, l.timeout)
	}
	logging.Debugf("lock %s acquired\n", l.path)

	defer func() {
		if err := fileLock.Unlock(); err != nil {
			logging.Debugf("failed to release lock %s: %v\n", l.path, err)
		}
	}()

	return fn(ctx)
}
