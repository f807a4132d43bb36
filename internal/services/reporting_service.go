package services

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"

	"task-timelog/internal/config"
	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/timelog"
)

// DisplayOptions controls how the reporting service renders labels and amounts
type DisplayOptions struct {
	Labels       timelog.LabelFormatter
	RunningLabel string
	AmountFormat string // go-humanize FormatFloat pattern
}

// DefaultDisplayOptions renders ISO dates and 24h times in local time
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Labels:       timelog.LayoutLabels{DateLayout: "2006-01-02", TimeLayout: "15:04:05"},
		RunningLabel: timelog.DefaultRunningLabel,
		AmountFormat: "#,###.##",
	}
}

// DisplayOptionsFromConfig builds display options from the display section
func DisplayOptionsFromConfig(cfg *config.Config) (DisplayOptions, error) {
	loc, err := cfg.LoadLocation()
	if err != nil {
		return DisplayOptions{}, errors.NewInvalidInputError("display.location", cfg.Display.Location, err.Error())
	}
	return DisplayOptions{
		Labels: timelog.LayoutLabels{
			DateLayout: cfg.Display.DateFormat,
			TimeLayout: cfg.Display.TimeFormat,
			Location:   loc,
		},
		RunningLabel: cfg.Display.RunningLabel,
		AmountFormat: cfg.Display.AmountFormat,
	}, nil
}

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	taskService TaskService
	clock       timelog.Clock
	display     DisplayOptions
	formatter   *timelog.Formatter
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(taskService TaskService, clock timelog.Clock, display DisplayOptions) ReportingService {
	if clock == nil {
		clock = timelog.SystemClock{}
	}
	if display.Labels == nil {
		display.Labels = DefaultDisplayOptions().Labels
	}
	if display.AmountFormat == "" {
		display.AmountFormat = DefaultDisplayOptions().AmountFormat
	}
	return &reportingServiceImpl{
		taskService: taskService,
		clock:       clock,
		display:     display,
		formatter:   timelog.NewFormatter(display.Labels, display.RunningLabel),
	}
}

// snapshot freezes "now" so every figure in one report agrees
func (r *reportingServiceImpl) snapshot() (time.Time, *timelog.Calculator) {
	now := r.clock.Now()
	return now, timelog.NewCalculator(timelog.FixedClock(now))
}

// GetTaskSummary returns the task with its total, rows and billable amount
func (r *reportingServiceImpl) GetTaskSummary(ctx context.Context, id string) (*TaskSummary, error) {
	task, err := r.taskService.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	log, err := task.Intervals()
	if err != nil {
		return nil, err
	}

	now, calc := r.snapshot()
	seconds, err := calc.TotalElapsed(log, timelog.Options{})
	if err != nil {
		return nil, err
	}

	normalized := timelog.Normalize(log)
	rows := make([]TaskRow, 0, len(normalized))
	i := 0
	for row := range r.formatter.Rows(log) {
		rowSeconds, err := calc.IndexedDuration(normalized, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, TaskRow{
			Index:    i,
			Date:     row.Date,
			Start:    row.Start,
			End:      row.End,
			Duration: timelog.FormatClock(rowSeconds),
		})
		i++
	}

	amount := Amount(task.Rate, seconds)
	return &TaskSummary{
		Task:       task,
		State:      log.State(),
		IsRunning:  log.State() == timelog.Running,
		Duration:   timelog.FormatTotal(seconds),
		Seconds:    seconds,
		Amount:     amount,
		AmountText: humanize.FormatFloat(r.display.AmountFormat, amount),
		UpdatedAgo: humanize.RelTime(task.UpdatedAt, now, "ago", "from now"),
		Rows:       rows,
	}, nil
}

// ListTaskOverviews lists tasks with their total durations. A task whose log
// cannot be read is still listed, with the reason in Problem.
func (r *reportingServiceImpl) ListTaskOverviews(ctx context.Context, opts domain.ListOptions) ([]*TaskOverview, error) {
	tasks, err := r.taskService.ListTasks(ctx, opts)
	if err != nil {
		return nil, err
	}

	_, calc := r.snapshot()
	overviews := make([]*TaskOverview, 0, len(tasks))
	for _, task := range tasks {
		overview := &TaskOverview{Task: task, IsRunning: task.IsRunning()}
		overview.Duration, err = calc.Calculate(task.TimeLog, timelog.Options{})
		if err != nil {
			overview.Problem = errors.GetUserMessage(err)
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

// LiveElapsed reports the running interval alongside the total, for ticking displays
func (r *reportingServiceImpl) LiveElapsed(ctx context.Context, id string) (*LiveStatus, error) {
	task, err := r.taskService.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	log, err := task.Intervals()
	if err != nil {
		return nil, err
	}

	_, calc := r.snapshot()
	total, err := calc.TotalElapsed(log, timelog.Options{})
	if err != nil {
		return nil, err
	}

	// A stopped timer shows its last interval frozen instead of ticking on
	running := log.State() == timelog.Running
	var current int64
	if running {
		current, err = calc.TotalElapsed(log, timelog.Options{CalculateLastOnly: true})
	} else {
		current, err = calc.IndexedDuration(log, len(log)-1)
	}
	if err != nil {
		return nil, err
	}

	return &LiveStatus{
		Task:      task,
		IsRunning: running,
		Current:   timelog.FormatTotal(current),
		Total:     timelog.FormatTotal(total),
	}, nil
}

// IntervalDuration renders one row's duration as a wrapped clock value
func (r *reportingServiceImpl) IntervalDuration(ctx context.Context, id string, index int) (string, error) {
	task, err := r.taskService.GetTask(ctx, id)
	if err != nil {
		return "", err
	}

	_, calc := r.snapshot()
	return calc.Difference(task.TimeLog, index)
}

// Amount is the billable value of seconds at an hourly rate
func Amount(rate float64, seconds int64) float64 {
	return rate * float64(seconds) / 3600
}
