package domain

import (
	"task-timelog/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task. The running column
// is derived from the log so list filters stay in step with it.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:          domainTask.ID,
		Number:      domainTask.Number,
		Description: domainTask.Description,
		Rate:        domainTask.Rate,
		TimeLog:     domainTask.TimeLog,
		Running:     domainTask.IsRunning(),
		Version:     domainTask.Version,
		CreatedAt:   domainTask.CreatedAt,
		UpdatedAt:   domainTask.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		Number:      dbTask.Number,
		Description: dbTask.Description,
		Rate:        dbTask.Rate,
		TimeLog:     dbTask.TimeLog,
		Version:     dbTask.Version,
		CreatedAt:   dbTask.CreatedAt,
		UpdatedAt:   dbTask.UpdatedAt,
	}
}

// FromDatabaseSlice converts database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// ListOptionsMapper handles conversion between domain and database list filters.
type ListOptionsMapper struct{}

// NewListOptionsMapper creates a new ListOptionsMapper instance.
func NewListOptionsMapper() *ListOptionsMapper {
	return &ListOptionsMapper{}
}

// ToDatabase converts domain ListOptions to database ListOptions.
func (m *ListOptionsMapper) ToDatabase(domainOpts ListOptions) sqlite.ListOptions {
	return sqlite.ListOptions{
		Text:        domainOpts.Text,
		RunningOnly: domainOpts.RunningOnly,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task        *TaskMapper
	ListOptions *ListOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:        NewTaskMapper(),
		ListOptions: NewListOptionsMapper(),
	}
}
