package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"task-timelog/internal/domain"
	"task-timelog/internal/errors"
	"task-timelog/internal/logging"
	"task-timelog/internal/timelog"
)

// OutputCommand exports time log rows
type OutputCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Format string
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app, errorHandler: NewErrorHandler(), Format: "csv"}
}

// Execute writes every tracked row of the tasks matching the text in args
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	switch c.Format {
	case "csv":
		return c.outputCSV(ctx, strings.Join(args, " "))
	default:
		return errors.NewInvalidInputError("format", c.Format, "unsupported format")
	}
}

// outputCSV writes one line per interval. Tasks without tracked time are
// skipped, as are tasks whose log cannot be read.
func (c *OutputCommand) outputCSV(ctx context.Context, text string) error {
	overviews, err := c.app.api.ListTaskOverviews(ctx, domain.ListOptions{Text: text})
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	writer := csv.NewWriter(c.app.out)

	header := []string{"Task ID", "Number", "Description", "Row", "Date", "Start", "End", "Duration", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, overview := range overviews {
		if overview.Problem != "" {
			logging.Debugf("skipping task %s: %s\n", overview.Task.ID, overview.Problem)
			continue
		}

		summary, err := c.app.api.GetTaskSummary(ctx, overview.Task.ID)
		if err != nil {
			logging.Debugf("skipping task %s: %v\n", overview.Task.ID, err)
			continue
		}
		if summary.State == timelog.NotStarted && len(summary.Rows) == 1 {
			continue
		}

		for _, r := range summary.Rows {
			record := []string{
				summary.Task.ID,
				summary.Task.Number,
				summary.Task.Description,
				strconv.Itoa(r.Index),
				r.Date,
				r.Start,
				r.End,
				r.Duration,
				summary.AmountText,
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
