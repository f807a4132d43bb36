package services

import (
	"context"

	"task-timelog/internal/domain"
	"task-timelog/internal/timelog"
)

// TaskDetails carries a partial update of a task's descriptive fields.
// Nil fields are left unchanged.
type TaskDetails struct {
	Number      *string
	Description *string
	Rate        *float64
}

// TaskRow is one display row of a task's time log with its own duration
type TaskRow struct {
	Index    int    `json:"index"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"` // wrapped HH:mm:ss
}

// TaskSummary is everything the detail view shows for one task
type TaskSummary struct {
	Task       *domain.Task  `json:"task"`
	State      timelog.State `json:"state"`
	IsRunning  bool          `json:"is_running"`
	Duration   string        `json:"duration"` // HH:mm:ss, humanized past one day
	Seconds    int64         `json:"seconds"`
	Amount     float64       `json:"amount"`
	AmountText string        `json:"amount_text"`
	UpdatedAgo string        `json:"updated_ago"`
	Rows       []TaskRow     `json:"rows"`
}

// TaskOverview is one line of a task listing
type TaskOverview struct {
	Task      *domain.Task `json:"task"`
	IsRunning bool         `json:"is_running"`
	Duration  string       `json:"duration"`
	Problem   string       `json:"problem,omitempty"` // set when the log cannot be read
}

// LiveStatus feeds a ticking display of a task's timer
type LiveStatus struct {
	Task      *domain.Task `json:"task"`
	IsRunning bool         `json:"is_running"`
	Current   string       `json:"current"` // last interval only
	Total     string       `json:"total"`
}

// TaskService handles task lifecycle operations
type TaskService interface {
	CreateTask(ctx context.Context, number, description string, rate float64) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, id string, details TaskDetails) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TimerService appends and closes intervals of a task's time log
type TimerService interface {
	StartTimer(ctx context.Context, id string) (*domain.Task, error)
	StopTimer(ctx context.Context, id string) (*domain.Task, error)
	ToggleTimer(ctx context.Context, id string) (*domain.Task, error)
}

// ReportingService renders durations, rows and amounts
type ReportingService interface {
	GetTaskSummary(ctx context.Context, id string) (*TaskSummary, error)
	ListTaskOverviews(ctx context.Context, opts domain.ListOptions) ([]*TaskOverview, error)
	LiveElapsed(ctx context.Context, id string) (*LiveStatus, error)
	IntervalDuration(ctx context.Context, id string, index int) (string, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService      TaskService
	TimerService     TimerService
	ReportingService ReportingService
}
