package cli

import (
	"context"
	"strings"

	"task-timelog/internal/domain"
)

var listWidths = []int{38, 14, 14, 12}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Running bool
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute lists tasks in creation order. Any args form a text filter on
// number and description.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	opts := domain.ListOptions{
		Text:        strings.Join(args, " "),
		RunningOnly: c.Running,
	}

	overviews, err := c.app.api.ListTaskOverviews(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if len(overviews) == 0 {
		c.app.println("No tasks found")
		return nil
	}

	styles := c.app.styles
	verbose := c.app.config.Application.Verbose
	widths := listWidths
	if !verbose {
		widths = widths[1:]
	}

	header := []string{"STATE", "NUMBER", "DURATION", "DESCRIPTION"}
	if verbose {
		header = append([]string{"ID"}, header...)
	}
	for i := range header {
		header[i] = styles.Header.Render(header[i])
	}
	c.app.println(row(widths, header...))

	for _, overview := range overviews {
		state := styles.Stopped.Render(c.app.stateLabel(overview.Task.State()))
		if overview.IsRunning {
			state = styles.Running.Render(c.app.stateLabel(overview.Task.State()))
		}
		duration := overview.Duration
		if overview.Problem != "" {
			duration = styles.Problem.Render("unreadable")
		}

		cells := []string{state, overview.Task.Number, duration, overview.Task.Description}
		if verbose {
			cells = append([]string{styles.Muted.Render(overview.Task.ID)}, cells...)
		}
		c.app.println(row(widths, cells...))

		if overview.Problem != "" && verbose {
			c.app.println(styles.Problem.Render("  " + overview.Problem))
		}
	}

	return nil
}
