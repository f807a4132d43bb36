package domain

// ListOptions narrows a task listing. Text matches number or description.
type ListOptions struct {
	Text        string
	RunningOnly bool
}
