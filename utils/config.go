package utils

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the simulation
type Config struct {
	Width               int     `json:"width"`
	Height              int     `json:"height"`
	CellSize            float64 `json:"cell_size"` // presentation only, unused by the core
	StartPopulated      bool    `json:"start_populated"`
	StartRunning        bool    `json:"start_running"`
	StepIntervalSeconds float64 `json:"step_interval_seconds"`
	Seed                int64   `json:"seed"`
	Workers             int     `json:"workers"`
	MaxGenerations      int     `json:"max_generations"`
	StagnationThreshold int     `json:"stagnation_threshold"`
	AutoRestart         bool    `json:"auto_restart"`
	InjectionCount      int     `json:"injection_count"`
	Pattern             string  `json:"pattern"` // plaintext file stamped at the grid center
	LogLevel            string  `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              48,
		CellSize:            1,
		StartPopulated:      false,
		StartRunning:        true,
		StepIntervalSeconds: 0.1,
		Seed:                0, // time-based
		Workers:             0, // one per CPU
		MaxGenerations:      0,
		StagnationThreshold: 5,
		AutoRestart:         false,
		InjectionCount:      3,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches overrides for the most common settings to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.BoolVar(&c.StartPopulated, "populated", c.StartPopulated, "seed roughly a quarter of the cells alive")
	fs.BoolVar(&c.StartRunning, "run", c.StartRunning, "start stepping immediately instead of paused")
	fs.Float64Var(&c.StepIntervalSeconds, "interval", c.StepIntervalSeconds, "seconds between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial population, 0 for time-based")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "plaintext pattern file to place at the grid center")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations, 0 for no limit")
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.StepInterval() <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] step_interval_seconds must be at least 1ns, got %v", c.StepIntervalSeconds)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must not be negative, got %d", c.Workers)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	case c.InjectionCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] injection_count must not be negative, got %d", c.InjectionCount)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// StepInterval returns the interval between generations as a Duration
func (c Config) StepInterval() time.Duration {
	return time.Duration(c.StepIntervalSeconds * float64(time.Second))
}

// SeedOrNow returns the configured seed, or the current time when it is zero
func (c Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Level parses the configured log level
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, errors.Wrapf(ErrInvalidConfig, "[Level] unknown log_level %q", c.LogLevel)
	}
	return level, nil
}
