package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CALENDAR_TIMEZONE", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	t.Setenv("GOOGLE_CALENDAR_USER_EMAIL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, 30*time.Minute, cfg.DefaultDuration())
	assert.Equal(t, 5, cfg.MaxSpokenSlots)
	assert.False(t, cfg.ReportFullGaps)
	assert.Nil(t, cfg.BusinessHours)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("CALENDAR_TIMEZONE", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	t.Setenv("GOOGLE_CALENDAR_USER_EMAIL", "")

	path := writeConfig(t, `
timezone: America/New_York
calendar_id: team@example.com
default_duration_minutes: 45
max_spoken_slots: 3
report_full_gaps: true
business_hours:
  open: "09:00"
  close: "17:30"
  weekdays: [monday, tuesday, wednesday, thursday, friday]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "team@example.com", cfg.CalendarID)
	assert.Equal(t, 45*time.Minute, cfg.DefaultDuration())
	assert.Equal(t, 3, cfg.MaxSpokenSlots)
	assert.True(t, cfg.ReportFullGaps)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	hours, err := cfg.Hours()
	require.NoError(t, err)
	require.NotNil(t, hours)
	assert.Equal(t, 9, hours.Open.Hour)
	assert.Equal(t, 17, hours.Close.Hour)
	assert.Equal(t, 30, hours.Close.Minute)
	assert.Len(t, hours.Weekdays, 5)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CALENDAR_TIMEZONE", "Europe/Berlin")
	t.Setenv("GOOGLE_CALENDAR_ID", "ops@example.com")

	path := writeConfig(t, "timezone: UTC\ncalendar_id: primary\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "ops@example.com", cfg.CalendarID)
}

func TestLoad_LegacyUserEmailFallback(t *testing.T) {
	t.Setenv("CALENDAR_TIMEZONE", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	t.Setenv("GOOGLE_CALENDAR_USER_EMAIL", "me@example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", cfg.CalendarID)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CALENDAR_TIMEZONE", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	t.Setenv("GOOGLE_CALENDAR_USER_EMAIL", "")

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "timezone: [unclosed"},
		{"bad timezone", "timezone: Mars/Olympus\n"},
		{"zero duration", "default_duration_minutes: 0\n"},
		{"bad weekday", "business_hours:\n  open: \"09:00\"\n  close: \"17:00\"\n  weekdays: [funday]\n"},
		{"inverted hours", "business_hours:\n  open: \"17:00\"\n  close: \"09:00\"\n"},
		{"bad open", "business_hours:\n  open: \"9am\"\n  close: \"17:00\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
