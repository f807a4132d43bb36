package cli

import (
	"context"
	"strings"

	"task-timelog/internal/domain"
	"task-timelog/internal/services"
)

// ResumeCommand starts the timer of a task picked from a menu
type ResumeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute offers every stopped task matching the text in args
func (c *ResumeCommand) Execute(ctx context.Context, args []string) error {
	overviews, err := c.app.api.ListTaskOverviews(ctx, domain.ListOptions{Text: strings.Join(args, " ")})
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	var candidates []*services.TaskOverview
	for _, overview := range overviews {
		if !overview.IsRunning && overview.Problem == "" {
			candidates = append(candidates, overview)
		}
	}
	if len(candidates) == 0 {
		c.app.println("No tasks to resume.")
		return nil
	}

	c.app.println("Select a task to resume:")
	for i, overview := range candidates {
		c.app.printf("%d. %s (total %s)\n", i+1, overview.Task, overview.Duration)
	}

	index, ok, err := c.app.choose("Enter number to resume, or 'q' to quit: ", len(candidates))
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if !ok {
		c.app.println("Resume cancelled.")
		return nil
	}

	task, err := c.app.api.StartTimer(ctx, candidates[index].Task.ID)
	if err != nil {
		return c.errorHandler.Handle("resume task", err)
	}
	c.app.printf("Resumed task: %s\n", task)
	return nil
}
