package cli

import (
	"context"

	"task-timelog/internal/errors"
)

// RowCommand prints the duration of one row of a task's time log
type RowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRowCommand creates a new row command handler
func NewRowCommand(app *App) *RowCommand {
	return &RowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the row command
func (c *RowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "row", "usage: tl row <task> <index>")
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	duration, err := c.app.api.IntervalDuration(ctx, args[0], index)
	if err != nil {
		return c.errorHandler.Handle("read row", err)
	}

	c.app.println(duration)
	return nil
}
