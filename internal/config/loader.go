package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(l.config)
	}

	// Validate once everything is merged, so a flag can repair a bad env value
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are left alone.
type ConfigOverrides struct {
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	DateFormat   *string
	TimeFormat   *string
	RunningLabel *string
	Location     *string

	LockTimeout *time.Duration

	Timeout *time.Duration
	Verbose *bool
}

func (o *ConfigOverrides) apply(config *Config) {
	set(&config.Database.Dir, o.DBDir)
	set(&config.Database.Filename, o.DBFilename)
	set(&config.Database.QueryTimeout, o.DBQueryTimeout)

	set(&config.Display.DateFormat, o.DateFormat)
	set(&config.Display.TimeFormat, o.TimeFormat)
	set(&config.Display.RunningLabel, o.RunningLabel)
	set(&config.Display.Location, o.Location)

	set(&config.Lock.AcquireTimeout, o.LockTimeout)

	set(&config.Application.Timeout, o.Timeout)
	set(&config.Application.Verbose, o.Verbose)
}

func set[T any](dst *T, override *T) {
	if override != nil {
		*dst = *override
	}
}
