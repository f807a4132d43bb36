package cli

import (
	"context"

	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute shows every running task with its live durations
func (c *CurrentCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "current", "usage: tl current")
	}

	running, err := c.app.api.ListTaskOverviews(ctx, domain.ListOptions{RunningOnly: true})
	if err != nil {
		return c.errorHandler.Handle("find running tasks", err)
	}

	if len(running) == 0 {
		c.app.println("No task is currently running")
		return nil
	}

	for _, overview := range running {
		status, err := c.app.api.LiveElapsed(ctx, overview.Task.ID)
		if err != nil {
			return c.errorHandler.Handle("read running task", err)
		}
		c.app.printf("Current task: %s (running for %s, total %s)\n",
			status.Task, c.app.styles.Running.Render(status.Current), status.Total)
	}
	return nil
}
