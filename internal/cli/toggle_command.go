package cli

import (
	"context"

	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/timelog"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute stops a running timer or starts a stopped one
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "toggle", "usage: tl toggle <task>")
	}

	task, err := c.app.api.ToggleTimer(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("toggle timer", err)
	}
	return c.errorHandler.Handle("report timer", c.app.reportTimer(ctx, task))
}

// reportTimer prints the outcome of a timer mutation. A stopped timer
// reports the length of the interval it just closed.
func (a *App) reportTimer(ctx context.Context, task *domain.Task) error {
	if task.IsRunning() {
		a.printf("Started timer for %s\n", task)
		return nil
	}

	log, err := task.Intervals()
	if err != nil {
		return err
	}
	duration, err := a.api.IntervalDuration(ctx, task.ID, len(log)-1)
	if err != nil {
		return err
	}
	a.printf("Stopped timer for %s after %s\n", task, duration)
	return nil
}

// stateLabel names a timer state for display
func (a *App) stateLabel(state timelog.State) string {
	switch state {
	case timelog.Running:
		return a.config.Display.RunningLabel
	case timelog.Closed:
		return "stopped"
	default:
		return "not started"
	}
}
