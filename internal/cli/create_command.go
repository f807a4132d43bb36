package cli

import (
	"context"
	"strings"

	"task-timelog/internal/errors"
)

// CreateCommand handles the create command
type CreateCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Number string
	Rate   float64
}

// NewCreateCommand creates a new create command handler
func NewCreateCommand(app *App) *CreateCommand {
	return &CreateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute creates a task from the description words in args
func (c *CreateCommand) Execute(ctx context.Context, args []string) error {
	description := strings.Join(args, " ")
	if strings.TrimSpace(c.Number) == "" && strings.TrimSpace(description) == "" {
		return errors.NewInvalidInputError("command", "create", "usage: tl create [--number N] [--rate R] description")
	}

	task, err := c.app.api.CreateTask(ctx, c.Number, description, c.Rate)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	c.app.printf("Created task %s: %s\n", task.ID, task)
	return nil
}
