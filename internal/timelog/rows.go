package timelog

import (
	"iter"
	"slices"
	"time"
)

// DefaultRunningLabel is shown as the end label of an open interval.
const DefaultRunningLabel = "running"

// Row is the display tuple for one interval.
type Row struct {
	Date  string
	Start string
	End   string
}

// LabelFormatter renders timestamps for display. Locale concerns live here,
// not in the engine.
type LabelFormatter interface {
	Date(t time.Time) string
	Time(t time.Time) string
}

// LayoutLabels formats with Go layout strings in a fixed location.
type LayoutLabels struct {
	DateLayout string
	TimeLayout string
	Location   *time.Location
}

// Date formats the calendar date of t.
func (l LayoutLabels) Date(t time.Time) string {
	return t.In(l.location()).Format(l.DateLayout)
}

// Time formats the time of day of t.
func (l LayoutLabels) Time(t time.Time) string {
	return t.In(l.location()).Format(l.TimeLayout)
}

func (l LayoutLabels) location() *time.Location {
	if l.Location == nil {
		return time.Local
	}
	return l.Location
}

// Formatter turns a log into display rows.
type Formatter struct {
	labels       LabelFormatter
	runningLabel string
}

// NewFormatter creates a formatter. An empty running label falls back to DefaultRunningLabel.
func NewFormatter(labels LabelFormatter, runningLabel string) *Formatter {
	if runningLabel == "" {
		runningLabel = DefaultRunningLabel
	}
	return &Formatter{labels: labels, runningLabel: runningLabel}
}

// Rows yields one Row per interval of the normalized log, in log order. The
// sequence can be ranged over any number of times.
func (f *Formatter) Rows(log Log) iter.Seq[Row] {
	intervals := slices.Clone(Normalize(log))
	return func(yield func(Row) bool) {
		for _, iv := range intervals {
			if !yield(f.row(iv)) {
				return
			}
		}
	}
}

// Format collects Rows into a slice.
func (f *Formatter) Format(log Log) []Row {
	return slices.Collect(f.Rows(log))
}

func (f *Formatter) row(iv Interval) Row {
	if iv.Start == 0 {
		return Row{}
	}

	start := time.Unix(iv.Start, 0)
	row := Row{
		Date:  f.labels.Date(start),
		Start: f.labels.Time(start),
		End:   f.runningLabel,
	}
	if iv.Stop != 0 {
		row.End = f.labels.Time(time.Unix(iv.Stop, 0))
	}
	return row
}
