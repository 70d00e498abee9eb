// Package config resolves runtime settings from the environment, with
// command-line flags layered on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/timemodel"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	DBPath              string
	SolveTimeoutMs      int
	MaxConcurrentSolves int
	LogCalls            bool
	WorkStart           string
	WorkEnd             string
}

// DefaultConfig returns the built-in settings: a 30 s solve budget, one
// concurrent solve per CPU and a 09:00-17:00 fallback window.
func DefaultConfig() Config {
	return Config{
		DBPath:              defaultDBPath(),
		SolveTimeoutMs:      30000,
		MaxConcurrentSolves: runtime.NumCPU(),
		LogCalls:            false,
		WorkStart:           "09:00",
		WorkEnd:             "17:00",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dayplan", "dayplan.db")
	}
	return filepath.Join(home, ".dayplan", "dayplan.db")
}

// LoadConfig reads DAYPLAN_* environment variables, falling back to
// defaults for unset or malformed values. A .env file in the working
// directory is loaded first; variables already set in the environment win.
func LoadConfig() Config {
	_ = godotenv.Load()
	cfg := DefaultConfig()

	if v := os.Getenv("DAYPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DAYPLAN_SOLVE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SolveTimeoutMs = n
		}
	}
	if v := os.Getenv("DAYPLAN_MAX_CONCURRENT_SOLVES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxConcurrentSolves = n
		}
	}
	if v := os.Getenv("DAYPLAN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYPLAN_WORK_START"); v != "" {
		cfg.WorkStart = v
	}
	if v := os.Getenv("DAYPLAN_WORK_END"); v != "" {
		cfg.WorkEnd = v
	}
	return cfg
}

// BindFlags registers persistent flags whose defaults are the current
// values, so flags override the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.DBPath, "db", c.DBPath, "path to the SQLite database")
	fs.IntVar(&c.SolveTimeoutMs, "solve-timeout-ms", c.SolveTimeoutMs, "wall-clock budget per solve in milliseconds")
	fs.IntVar(&c.MaxConcurrentSolves, "max-concurrent-solves", c.MaxConcurrentSolves, "number of solves allowed to run at once")
	fs.BoolVar(&c.LogCalls, "log-calls", c.LogCalls, "log each use case to stderr")
	fs.StringVar(&c.WorkStart, "work-start", c.WorkStart, "fallback work window start (HH:MM)")
	fs.StringVar(&c.WorkEnd, "work-end", c.WorkEnd, "fallback work window end (HH:MM)")
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.SolveTimeoutMs <= 0 {
		return fmt.Errorf("solve timeout must be positive, got %d", c.SolveTimeoutMs)
	}
	if c.MaxConcurrentSolves <= 0 {
		return fmt.Errorf("max concurrent solves must be positive, got %d", c.MaxConcurrentSolves)
	}
	if _, err := c.DefaultWindow(); err != nil {
		return fmt.Errorf("fallback work window: %w", err)
	}
	return nil
}

func (c Config) SolveTimeout() time.Duration {
	return time.Duration(c.SolveTimeoutMs) * time.Millisecond
}

// DefaultWindow is used for requests that omit work hours.
func (c Config) DefaultWindow() (domain.WorkWindow, error) {
	return timemodel.ParseWindow(c.WorkStart, c.WorkEnd)
}
