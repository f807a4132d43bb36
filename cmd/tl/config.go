package main

import (
	"fmt"
	"os"

	"task-timelog/internal/api"
	"task-timelog/internal/config"
	"task-timelog/internal/repository/sqlite"
	"task-timelog/internal/services"
	"task-timelog/internal/timelog"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// getEnvironment determines the current environment from TL_ENV
func getEnvironment() Environment {
	switch os.Getenv("TL_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		// Local database in the working directory
		repo, err := sqlite.New("tl.db")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// OpenAPI wires the repository, lock and services for cfg
func (rf *RepositoryFactory) OpenAPI(cfg *config.Config) (api.API, func() error, error) {
	repo, err := rf.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	container, err := services.NewServiceContainer(repo, config.CreateLock(cfg), timelog.SystemClock{}, cfg)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	return api.New(container, cfg), repo.Close, nil
}
