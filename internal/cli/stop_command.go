package cli

import (
	"context"

	"task-timelog/internal/errors"
)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute closes the open interval of the task named by args[0]
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "stop", "usage: tl stop <task>")
	}

	task, err := c.app.api.StopTimer(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}
	return c.errorHandler.Handle("report timer", c.app.reportTimer(ctx, task))
}
