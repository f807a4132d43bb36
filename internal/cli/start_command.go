package cli

import (
	"context"

	"task-timelog/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute opens a new interval on the task named by args[0]
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "start", "usage: tl start <task>")
	}

	task, err := c.app.api.StartTimer(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}
	return c.errorHandler.Handle("report timer", c.app.reportTimer(ctx, task))
}
