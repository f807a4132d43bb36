package api

import (
	"context"
	"strings"

	"task-timelog/internal/config"
	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/services"
	"task-timelog/internal/validation"
)

// API defines the interface for all task, timer and reporting operations.
// Methods taking a ref accept either a task ID or an exact task number.
type API interface {
	// Task operations
	CreateTask(ctx context.Context, number, description string, rate float64) (*domain.Task, error)
	GetTask(ctx context.Context, ref string) (*domain.Task, error)
	ListTasks(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, ref string, details services.TaskDetails) (*domain.Task, error)
	DeleteTask(ctx context.Context, ref string) error

	// Timer operations
	StartTimer(ctx context.Context, ref string) (*domain.Task, error)
	StopTimer(ctx context.Context, ref string) (*domain.Task, error)
	ToggleTimer(ctx context.Context, ref string) (*domain.Task, error)

	// Reporting
	GetTaskSummary(ctx context.Context, ref string) (*services.TaskSummary, error)
	ListTaskOverviews(ctx context.Context, opts domain.ListOptions) ([]*services.TaskOverview, error)
	LiveElapsed(ctx context.Context, ref string) (*services.LiveStatus, error)
	IntervalDuration(ctx context.Context, ref string, index int) (string, error)

	// ResolveTask turns a ref into a task ID
	ResolveTask(ctx context.Context, ref string) (string, error)
}

type apiImpl struct {
	services      *services.ServiceContainer
	taskValidator *validation.TaskValidator
}

// New creates a new API instance over the given services.
func New(container *services.ServiceContainer, cfg *config.Config) API {
	taskValidator := validation.NewTaskValidator()
	if cfg != nil {
		taskValidator = validation.NewTaskValidatorWithConfig(cfg)
	}
	return &apiImpl{
		services:      container,
		taskValidator: taskValidator,
	}
}

func (a *apiImpl) CreateTask(ctx context.Context, number, description string, rate float64) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskForCreation(number, description, rate); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}
	return a.services.TaskService.CreateTask(ctx, number, description, rate)
}

func (a *apiImpl) GetTask(ctx context.Context, ref string) (*domain.Task, error) {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.TaskService.GetTask(ctx, id)
}

func (a *apiImpl) ListTasks(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error) {
	opts.Text = strings.TrimSpace(opts.Text)
	return a.services.TaskService.ListTasks(ctx, opts)
}

func (a *apiImpl) UpdateTask(ctx context.Context, ref string, details services.TaskDetails) (*domain.Task, error) {
	if details.Number == nil && details.Description == nil && details.Rate == nil {
		return nil, errors.NewInvalidInputError("details", nil, "nothing to update")
	}
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.TaskService.UpdateTask(ctx, id, details)
}

func (a *apiImpl) DeleteTask(ctx context.Context, ref string) error {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return err
	}
	return a.services.TaskService.DeleteTask(ctx, id)
}

func (a *apiImpl) StartTimer(ctx context.Context, ref string) (*domain.Task, error) {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.TimerService.StartTimer(ctx, id)
}

func (a *apiImpl) StopTimer(ctx context.Context, ref string) (*domain.Task, error) {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.TimerService.StopTimer(ctx, id)
}

func (a *apiImpl) ToggleTimer(ctx context.Context, ref string) (*domain.Task, error) {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.TimerService.ToggleTimer(ctx, id)
}

func (a *apiImpl) GetTaskSummary(ctx context.Context, ref string) (*services.TaskSummary, error) {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.ReportingService.GetTaskSummary(ctx, id)
}

func (a *apiImpl) ListTaskOverviews(ctx context.Context, opts domain.ListOptions) ([]*services.TaskOverview, error) {
	opts.Text = strings.TrimSpace(opts.Text)
	return a.services.ReportingService.ListTaskOverviews(ctx, opts)
}

func (a *apiImpl) LiveElapsed(ctx context.Context, ref string) (*services.LiveStatus, error) {
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return nil, err
	}
	return a.services.ReportingService.LiveElapsed(ctx, id)
}

func (a *apiImpl) IntervalDuration(ctx context.Context, ref string, index int) (string, error) {
	if index < 0 {
		return "", errors.NewInvalidInputError("index", index, "row index cannot be negative")
	}
	id, err := a.ResolveTask(ctx, ref)
	if err != nil {
		return "", err
	}
	return a.services.ReportingService.IntervalDuration(ctx, id, index)
}

// ResolveTask accepts a task ID as is. Anything else must match exactly one
// task number.
func (a *apiImpl) ResolveTask(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewInvalidInputError("task", ref, "a task ID or number is required")
	}
	if a.taskValidator.ValidateTaskID(ref) == nil {
		return ref, nil
	}

	candidates, err := a.services.TaskService.ListTasks(ctx, domain.ListOptions{Text: ref})
	if err != nil {
		return "", err
	}

	var matches []*domain.Task
	for _, task := range candidates {
		if task.Number == ref {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0].ID, nil
	default:
		return "", errors.NewConflictError("task", ref, "number is shared by several tasks, use the task ID")
	}
}
