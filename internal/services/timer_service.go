package services

import (
	"context"
	"slices"

	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/lock"
	"task-timelog/internal/logging"
	"task-timelog/internal/repository/sqlite"
	"task-timelog/internal/timelog"
	"task-timelog/internal/validation"
)

// timerServiceImpl implements the TimerService interface. Every mutation
// reads, changes and writes the log while holding the file lock, and the
// write is rejected if another writer got in first.
type timerServiceImpl struct {
	repo          sqlite.Repository
	locker        lock.Locker
	clock         timelog.Clock
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logValidator  *validation.TimeLogValidator
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, locker lock.Locker, clock timelog.Clock) TimerService {
	if clock == nil {
		clock = timelog.SystemClock{}
	}
	return &timerServiceImpl{
		repo:          repo,
		locker:        locker,
		clock:         clock,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
		logValidator:  validation.NewTimeLogValidator(),
	}
}

// StartTimer opens a new interval. A not-started placeholder row is filled in
// rather than followed by a second row.
func (s *timerServiceImpl) StartTimer(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, id, startInterval)
}

// StopTimer closes the open interval
func (s *timerServiceImpl) StopTimer(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, id, stopInterval)
}

// ToggleTimer stops a running timer or starts a stopped one
func (s *timerServiceImpl) ToggleTimer(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, id, func(id string, log timelog.Log, now int64) (timelog.Log, error) {
		if log.State() == timelog.Running {
			return stopInterval(id, log, now)
		}
		return startInterval(id, log, now)
	})
}

type logMutation func(id string, log timelog.Log, now int64) (timelog.Log, error)

func (s *timerServiceImpl) mutate(ctx context.Context, id string, change logMutation) (*domain.Task, error) {
	if err := s.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	var result *domain.Task
	err := s.locker.WithLock(ctx, func(ctx context.Context) error {
		dbTask, err := s.repo.GetTask(ctx, id)
		if err != nil {
			return err
		}
		task := s.mapper.Task.FromDatabase(*dbTask)

		log, err := task.Intervals()
		if err != nil {
			return err
		}
		if err := s.logValidator.ValidateLog(log); err != nil {
			return errors.NewValidationError("time log is inconsistent", err).WithContext("task_id", id)
		}

		next, err := change(id, slices.Clone(log), s.clock.Now().Unix())
		if err != nil {
			return err
		}

		task, err = task.WithTimeLog(next)
		if err != nil {
			return err
		}

		row := s.mapper.Task.ToDatabase(task)
		if err := s.repo.UpdateTask(ctx, &row); err != nil {
			return err
		}

		updated := s.mapper.Task.FromDatabase(row)
		result = &updated
		logging.Debugf("task %s timer is now %s (version %d)\n", id, updated.State(), updated.Version)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func startInterval(id string, log timelog.Log, now int64) (timelog.Log, error) {
	last, ok := log.Last()
	if !ok || last.State() == timelog.Closed {
		return append(log, timelog.Interval{Start: now, IsRunning: true}), nil
	}
	if last.State() == timelog.Running {
		return nil, errors.NewConflictError("task", id, "timer is already running")
	}

	i := len(log) - 1
	log[i].Start = now
	log[i].Stop = 0
	log[i].IsRunning = true
	return log, nil
}

func stopInterval(id string, log timelog.Log, now int64) (timelog.Log, error) {
	i := log.OpenIndex()
	if i < 0 {
		return nil, errors.NewConflictError("task", id, "timer is not running")
	}
	if now < log[i].Start {
		return nil, errors.NewNegativeDurationError(i, log[i].Start, now)
	}

	log[i].Stop = now
	log[i].IsRunning = false
	return log, nil
}
