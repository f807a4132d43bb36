package domain

import (
	"time"

	"task-timelog/internal/timelog"
)

// Task is a billable unit of work with its serialized time log.
// TimeLog is kept exactly as stored; Intervals decodes it on demand.
type Task struct {
	ID          string
	Number      string
	Description string
	Rate        float64
	TimeLog     string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates a task with an empty time log.
func NewTask(number, description string, rate float64) Task {
	return Task{
		Number:      number,
		Description: description,
		Rate:        rate,
		TimeLog:     timelog.EmptyLog,
	}
}

// Intervals strictly decodes the task's time log.
func (t Task) Intervals() (timelog.Log, error) {
	return timelog.Decode(t.TimeLog)
}

// State is the state of the last interval. An empty or unreadable log has not started.
func (t Task) State() timelog.State {
	log, err := t.Intervals()
	if err != nil {
		return timelog.NotStarted
	}
	return log.State()
}

// IsRunning reports whether the last interval is open.
func (t Task) IsRunning() bool {
	return t.State() == timelog.Running
}

// WithTimeLog returns a copy of the task carrying the encoded log.
func (t Task) WithTimeLog(log timelog.Log) (Task, error) {
	encoded, err := timelog.Encode(log)
	if err != nil {
		return t, err
	}
	t.TimeLog = encoded
	return t, nil
}

// String returns the number and description for display purposes.
func (t Task) String() string {
	switch {
	case t.Number == "":
		return t.Description
	case t.Description == "":
		return t.Number
	default:
		return t.Number + " " + t.Description
	}
}
