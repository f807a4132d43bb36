package services

import (
	"task-timelog/internal/config"
	"task-timelog/internal/lock"
	"task-timelog/internal/repository/sqlite"
	"task-timelog/internal/timelog"
	"task-timelog/internal/validation"
)

// NewServiceContainer wires every service over one repository, lock and clock
func NewServiceContainer(repo sqlite.Repository, locker lock.Locker, clock timelog.Clock, cfg *config.Config) (*ServiceContainer, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	display, err := DisplayOptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	taskService := NewTaskService(repo, validation.NewTaskValidatorWithConfig(cfg))
	return &ServiceContainer{
		TaskService:      taskService,
		TimerService:     NewTimerService(repo, locker, clock),
		ReportingService: NewReportingService(taskService, clock, display),
	}, nil
}
