package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task time log
type Config struct {
	Database    DatabaseConfig
	Display     DisplayConfig
	Validation  ValidationConfig
	Lock        LockConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TL_DB_DIR"`
	Filename       string        `env:"TL_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TL_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"TL_DB_DIR_PERMISSIONS"`
}

// DisplayConfig controls how rows, durations and amounts are rendered
type DisplayConfig struct {
	DateFormat   string `env:"TL_DISPLAY_DATE_FORMAT"`
	TimeFormat   string `env:"TL_DISPLAY_TIME_FORMAT"`
	RunningLabel string `env:"TL_DISPLAY_RUNNING_LABEL"`
	Location     string `env:"TL_DISPLAY_LOCATION"`
	AmountFormat string `env:"TL_DISPLAY_AMOUNT_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	DescriptionMaxLength int     `env:"TL_VALIDATION_DESCRIPTION_MAX"`
	MaxRate              float64 `env:"TL_VALIDATION_MAX_RATE"`
}

// LockConfig controls the cross-process lock taken around timer mutations
type LockConfig struct {
	Filename       string        `env:"TL_LOCK_FILENAME"`
	AcquireTimeout time.Duration `env:"TL_LOCK_TIMEOUT"`
	RetryDelay     time.Duration `env:"TL_LOCK_RETRY_DELAY"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TL_APP_TIMEOUT"`
	Verbose bool          `env:"TL_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".tl"),
			Filename:       "tl.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			DateFormat:   "2006-01-02",
			TimeFormat:   "15:04:05",
			RunningLabel: "running",
			Location:     "Local",
			AmountFormat: "#,###.##",
		},
		Validation: ValidationConfig{
			DescriptionMaxLength: 1000,
			MaxRate:              100000,
		},
		Lock: LockConfig{
			Filename:       "tl.lock",
			AcquireTimeout: 5 * time.Second,
			RetryDelay:     50 * time.Millisecond,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetLockPath returns the full path to the lock file, next to the database
func (c *Config) GetLockPath() string {
	return filepath.Join(c.Database.Dir, c.Lock.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadLocation resolves the configured display location
func (c *Config) LoadLocation() (*time.Location, error) {
	return time.LoadLocation(c.Display.Location)
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are reported as a ConfigError naming the variable.
func (c *Config) LoadFromEnvironment() error {
	env := envReader{}

	env.str("TL_DB_DIR", &c.Database.Dir)
	env.str("TL_DB_FILENAME", &c.Database.Filename)
	env.duration("TL_DB_QUERY_TIMEOUT", &c.Database.QueryTimeout)
	env.perms("TL_DB_DIR_PERMISSIONS", &c.Database.DirPermissions)

	env.str("TL_DISPLAY_DATE_FORMAT", &c.Display.DateFormat)
	env.str("TL_DISPLAY_TIME_FORMAT", &c.Display.TimeFormat)
	env.str("TL_DISPLAY_RUNNING_LABEL", &c.Display.RunningLabel)
	env.str("TL_DISPLAY_LOCATION", &c.Display.Location)
	env.str("TL_DISPLAY_AMOUNT_FORMAT", &c.Display.AmountFormat)

	env.integer("TL_VALIDATION_DESCRIPTION_MAX", &c.Validation.DescriptionMaxLength)
	env.float("TL_VALIDATION_MAX_RATE", &c.Validation.MaxRate)

	env.str("TL_LOCK_FILENAME", &c.Lock.Filename)
	env.duration("TL_LOCK_TIMEOUT", &c.Lock.AcquireTimeout)
	env.duration("TL_LOCK_RETRY_DELAY", &c.Lock.RetryDelay)

	env.duration("TL_APP_TIMEOUT", &c.Application.Timeout)
	env.boolean("TL_APP_VERBOSE", &c.Application.Verbose)

	return env.err
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.RunningLabel == "" {
		return &ConfigError{Field: "display.running_label", Message: "running label cannot be empty"}
	}
	if c.Display.AmountFormat == "" {
		return &ConfigError{Field: "display.amount_format", Message: "amount format cannot be empty"}
	}
	if _, err := c.LoadLocation(); err != nil {
		return &ConfigError{Field: "display.location", Message: "unknown location " + strconv.Quote(c.Display.Location)}
	}

	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}
	if c.Validation.MaxRate <= 0 {
		return &ConfigError{Field: "validation.max_rate", Message: "max rate must be positive"}
	}

	if c.Lock.Filename == "" {
		return &ConfigError{Field: "lock.filename", Message: "lock filename cannot be empty"}
	}
	if c.Lock.AcquireTimeout <= 0 {
		return &ConfigError{Field: "lock.acquire_timeout", Message: "lock timeout must be positive"}
	}
	if c.Lock.RetryDelay <= 0 || c.Lock.RetryDelay > c.Lock.AcquireTimeout {
		return &ConfigError{Field: "lock.retry_delay", Message: "lock retry delay must be positive and no longer than the lock timeout"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// envReader applies set environment variables and keeps the first parse failure.
type envReader struct {
	err error
}

func (r *envReader) lookup(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	return value, ok && value != ""
}

func (r *envReader) fail(name, value string) {
	if r.err == nil {
		r.err = &ConfigError{Field: name, Message: "cannot parse " + strconv.Quote(value)}
	}
}

func (r *envReader) str(name string, dst *string) {
	if value, ok := r.lookup(name); ok {
		*dst = value
	}
}

func (r *envReader) duration(name string, dst *time.Duration) {
	if value, ok := r.lookup(name); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			r.fail(name, value)
			return
		}
		*dst = d
	}
}

func (r *envReader) integer(name string, dst *int) {
	if value, ok := r.lookup(name); ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			r.fail(name, value)
			return
		}
		*dst = n
	}
}

func (r *envReader) float(name string, dst *float64) {
	if value, ok := r.lookup(name); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			r.fail(name, value)
			return
		}
		*dst = f
	}
}

func (r *envReader) boolean(name string, dst *bool) {
	if value, ok := r.lookup(name); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			r.fail(name, value)
			return
		}
		*dst = b
	}
}

func (r *envReader) perms(name string, dst *uint32) {
	if value, ok := r.lookup(name); ok {
		p, err := strconv.ParseUint(value, 8, 32)
		if err != nil {
			r.fail(name, value)
			return
		}
		*dst = uint32(p)
	}
}
