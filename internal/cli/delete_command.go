package cli

import (
	"context"
	"fmt"
	"strings"

	"task-timelog/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes a task and its time log after confirmation
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tl delete <task> [--yes]")
	}

	task, err := c.app.api.GetTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find task", err)
	}

	if !c.Yes {
		answer, err := c.app.prompt(fmt.Sprintf("Delete task %s and its time log? [y/N]: ", task))
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		if answer = strings.ToLower(answer); answer != "y" && answer != "yes" {
			c.app.println("Delete cancelled.")
			return nil
		}
	}

	if err := c.app.api.DeleteTask(ctx, task.ID); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	c.app.printf("Deleted task: %s\n", task)
	return nil
}
