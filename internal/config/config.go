// Package config loads runtime settings: defaults, then an optional YAML
// file, then CAPACITY_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the capacity tool.
type Config struct {
	DBPath            string  `yaml:"db_path"`
	LogCalls          bool    `yaml:"log_calls"`
	HTTPPort          int     `yaml:"http_port"`
	Timezone          string  `yaml:"timezone"`
	DefaultDailyHours float64 `yaml:"default_daily_hours"`
}

// Default returns a Config with the DB under ~/.capacity.
func Default() Config {
	dbPath := "capacity.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".capacity", "capacity.db")
	}
	return Config{
		DBPath:            dbPath,
		HTTPPort:          8080,
		Timezone:          "America/Sao_Paulo",
		DefaultDailyHours: 8,
	}
}

// Load builds the effective configuration. path overrides CAPACITY_CONFIG;
// when both are empty no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CAPACITY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data, cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse overlays YAML bytes on base. Keys absent from the document keep base values.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CAPACITY_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("CAPACITY_LOG_CALLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: CAPACITY_LOG_CALLS: %w", err)
		}
		c.LogCalls = b
	}
	if v := os.Getenv("CAPACITY_HTTP_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CAPACITY_HTTP_PORT: %w", err)
		}
		c.HTTPPort = n
	}
	if v := os.Getenv("CAPACITY_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("CAPACITY_DEFAULT_DAILY_HOURS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: CAPACITY_DEFAULT_DAILY_HOURS: %w", err)
		}
		c.DefaultDailyHours = f
	}
	return nil
}

func (c *Config) validate() error {
	var errs []string
	if c.DBPath == "" {
		errs = append(errs, "db_path is required")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("http_port %d out of range", c.HTTPPort))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("timezone %q: %v", c.Timezone, err))
	}
	if c.DefaultDailyHours <= 0 || c.DefaultDailyHours > 24 {
		errs = append(errs, fmt.Sprintf("default_daily_hours %g must be in (0, 24]", c.DefaultDailyHours))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Today returns the calendar date of now in the configured timezone, as UTC midnight.
func (c Config) Today(now time.Time) time.Time {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
