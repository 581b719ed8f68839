// Package config loads the voxsched configuration from a YAML file with
// environment-variable fallbacks.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"voxsched/internal/schedule"
)

// Defaults applied when the config file or individual fields are absent.
const (
	DefaultTimezone        = "UTC"
	DefaultCalendarID      = "primary"
	DefaultDurationMinutes = 30
	DefaultMaxSpokenSlots  = 5
)

// BusinessHoursConfig is the YAML shape of the daily business-hours
// constraint. Weekday names are lowercase English ("monday"). An empty
// weekday list applies the hours every day.
type BusinessHoursConfig struct {
	Open     string   `yaml:"open"`
	Close    string   `yaml:"close"`
	Weekdays []string `yaml:"weekdays"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA canonical timezone all instants are normalized
	// to before comparison (e.g. "America/New_York").
	Timezone string `yaml:"timezone"`

	// CalendarID is the calendar queried and written by default.
	CalendarID string `yaml:"calendar_id"`

	// DefaultDurationMinutes is the slot length used when a request does
	// not specify one.
	DefaultDurationMinutes int `yaml:"default_duration_minutes"`

	// MaxSpokenSlots caps how many slot options a tool reads back to the
	// user in one answer.
	MaxSpokenSlots int `yaml:"max_spoken_slots"`

	// ReportFullGaps controls slot reporting: when true a free gap is
	// returned whole, when false it is trimmed to the first
	// duration-length slice.
	ReportFullGaps bool `yaml:"report_full_gaps"`

	// BusinessHours, when set, restricts slots to the open portion of each
	// day. Nil means no restriction beyond the requested time preference.
	BusinessHours *BusinessHoursConfig `yaml:"business_hours"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timezone:               DefaultTimezone,
		CalendarID:             DefaultCalendarID,
		DefaultDurationMinutes: DefaultDurationMinutes,
		MaxSpokenSlots:         DefaultMaxSpokenSlots,
	}
}

// Load reads the configuration from path. An empty path falls back to
// $VOXSCHED_CONFIG, then the default location under the user config dir. A
// missing file yields the defaults; a malformed file is an error.
// CALENDAR_TIMEZONE and GOOGLE_CALENDAR_ID environment variables override
// the corresponding file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXSCHED_CONFIG")
	}
	if path == "" {
		path = defaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file: defaults plus env overrides.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies the environment overrides inherited from the voice
// agent deployment: CALENDAR_TIMEZONE and GOOGLE_CALENDAR_ID (with
// GOOGLE_CALENDAR_USER_EMAIL as a legacy alias for the calendar id).
func applyEnv(cfg *Config) {
	if tz := os.Getenv("CALENDAR_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
	if id := os.Getenv("GOOGLE_CALENDAR_ID"); id != "" {
		cfg.CalendarID = id
	} else if email := os.Getenv("GOOGLE_CALENDAR_USER_EMAIL"); email != "" {
		cfg.CalendarID = email
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("default_duration_minutes must be positive, got %d", c.DefaultDurationMinutes)
	}
	if c.MaxSpokenSlots <= 0 {
		return fmt.Errorf("max_spoken_slots must be positive, got %d", c.MaxSpokenSlots)
	}
	if c.BusinessHours != nil {
		if _, err := c.Hours(); err != nil {
			return err
		}
	}
	return nil
}

// Location returns the canonical timezone as a *time.Location.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// DefaultDuration returns the configured default slot length.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationMinutes) * time.Minute
}

// Hours converts the configured business hours into the engine's
// representation. Returns nil when no business hours are configured.
func (c *Config) Hours() (*schedule.BusinessHours, error) {
	if c.BusinessHours == nil {
		return nil, nil
	}

	open, err := schedule.ParseTimeOfDay(c.BusinessHours.Open)
	if err != nil {
		return nil, fmt.Errorf("invalid business_hours.open: %w", err)
	}
	closeAt, err := schedule.ParseTimeOfDay(c.BusinessHours.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid business_hours.close: %w", err)
	}

	hours := &schedule.BusinessHours{Open: open, Close: closeAt}
	for _, name := range c.BusinessHours.Weekdays {
		wd, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		hours.Weekdays = append(hours.Weekdays, wd)
	}

	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return hours, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch name {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q in business_hours.weekdays", name)
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "voxsched.yaml"
	}
	return filepath.Join(dir, "voxsched", "config.yaml")
}
