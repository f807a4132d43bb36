package sqlite

import "time"

// Task is a row of the tasks table. TimeLog holds the serialized log exactly
// as it was written; Running mirrors whether its last interval is open.
type Task struct {
	ID          string
	Number      string
	Description string
	Rate        float64
	TimeLog     string
	Running     bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListOptions filters ListTasks. Text matches number or description.
type ListOptions struct {
	Text        string
	RunningOnly bool
}
