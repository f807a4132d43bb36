package cli

import (
	"context"
	"fmt"
	"strconv"

	"task-timelog/internal/errors"
	"task-timelog/internal/services"
)

var showWidths = []int{4, 12, 10, 10}

// ShowCommand prints a task's total, amount and rows
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Seconds bool
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the show command. With Seconds set only the raw total is printed.
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: tl show <task> [--seconds]")
	}

	summary, err := c.app.api.GetTaskSummary(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}

	if c.Seconds {
		c.app.println(strconv.FormatInt(summary.Seconds, 10))
		return nil
	}

	c.printSummary(summary)
	return nil
}

func (c *ShowCommand) printSummary(summary *services.TaskSummary) {
	styles := c.app.styles
	state := styles.Stopped.Render(c.app.stateLabel(summary.State))
	if summary.IsRunning {
		state = styles.Running.Render(c.app.stateLabel(summary.State))
	}

	c.app.println(styles.Title.Render(summary.Task.String()))
	c.app.printf("ID:       %s\n", styles.Muted.Render(summary.Task.ID))
	c.app.printf("State:    %s\n", state)
	c.app.printf("Total:    %s\n", summary.Duration)
	c.app.printf("Rate:     %s\n", fmt.Sprintf("%g/h", summary.Task.Rate))
	c.app.printf("Amount:   %s\n", styles.Amount.Render(summary.AmountText))
	c.app.printf("Updated:  %s\n", summary.UpdatedAgo)
	c.app.println()

	header := []string{"#", "DATE", "START", "END", "DURATION"}
	for i := range header {
		header[i] = styles.Header.Render(header[i])
	}
	c.app.println(row(showWidths, header...))

	for _, r := range summary.Rows {
		end := r.End
		if end == c.app.config.Display.RunningLabel {
			end = styles.Running.Render(end)
		}
		c.app.println(row(showWidths, strconv.Itoa(r.Index), r.Date, r.Start, end, r.Duration))
	}
}
