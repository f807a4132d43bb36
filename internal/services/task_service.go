package services

import (
	"context"
	"strings"

	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/repository/sqlite"
	"task-timelog/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, taskValidator *validation.TaskValidator) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: taskValidator,
	}
}

func (t *taskServiceImpl) validateID(id string) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}
	return nil
}

// CreateTask creates a task with an empty time log
func (t *taskServiceImpl) CreateTask(ctx context.Context, number, description string, rate float64) (*domain.Task, error) {
	number = strings.TrimSpace(number)
	description = strings.TrimSpace(description)

	if err := t.taskValidator.ValidateTaskForCreation(number, description, rate); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	dbTask := t.mapper.Task.ToDatabase(domain.NewTask(number, description, rate))
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	domainTask := t.mapper.Task.FromDatabase(dbTask)
	return &domainTask, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := t.validateID(id); err != nil {
		return nil, err
	}

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	domainTask := t.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// ListTasks returns tasks in creation order
func (t *taskServiceImpl) ListTasks(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error) {
	dbTasks, err := t.repo.ListTasks(ctx, t.mapper.ListOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		domainTask := t.mapper.Task.FromDatabase(*dbTask)
		tasks[i] = &domainTask
	}
	return tasks, nil
}

// UpdateTask changes the descriptive fields of a task. The time log is left
// untouched; a concurrent change surfaces as a conflict error.
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id string, details TaskDetails) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if details.Number != nil {
		task.Number = strings.TrimSpace(*details.Number)
	}
	if details.Description != nil {
		task.Description = strings.TrimSpace(*details.Description)
	}
	if details.Rate != nil {
		task.Rate = *details.Rate
	}

	if err := t.taskValidator.ValidateTaskForCreation(task.Number, task.Description, task.Rate); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	dbTask := t.mapper.Task.ToDatabase(*task)
	if err := t.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	updated := t.mapper.Task.FromDatabase(dbTask)
	return &updated, nil
}

// DeleteTask deletes a task and its time log
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := t.validateID(id); err != nil {
		return err
	}
	return t.repo.DeleteTask(ctx, id)
}
