package cli

import (
	"context"

	"task-timelog/internal/errors"
	"task-timelog/internal/services"
)

// EditCommand changes the number, description or rate of a task. Only the
// fields present in Details are touched.
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Details services.TaskDetails
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tl edit <task> [--number N] [--description D] [--rate R]")
	}

	task, err := c.app.api.UpdateTask(ctx, args[0], c.Details)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	c.app.printf("Updated task %s: %s (rate %g)\n", task.ID, task, task.Rate)
	return nil
}
