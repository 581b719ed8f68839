package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voxsched/internal/calendar"
	"voxsched/internal/config"
	"voxsched/internal/google"
	"voxsched/internal/ics"
	"voxsched/internal/schedule"
)

func newSlotsCmd() *cobra.Command {
	var (
		startDate  string
		endDate    string
		duration   int
		preference string
		calendarID string
		account    string
		icsSource  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Compute free time slots from the command line",
		Long: `Compute free time slots without starting the MCP server.

Busy intervals come from the Google Calendar free/busy API by default, or
from an iCalendar export when --ics is given (a local .ics file path or an
HTTP(S) feed URL). The .ics path needs no Google credentials at all.

Examples:
  voxsched slots --start tomorrow --duration 30
  voxsched slots --start 2026-09-01 --end 2026-09-05 --preference morning
  voxsched slots --ics ./calendar-export.ics --start monday --duration 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlots(cmd.Context(), slotsOptions{
				startDate:  startDate,
				endDate:    endDate,
				duration:   duration,
				preference: preference,
				calendarID: calendarID,
				account:    account,
				icsSource:  icsSource,
				configPath: configPath,
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "today", "Start of the search range (YYYY-MM-DD, today, tomorrow, or a weekday like 'next friday')")
	cmd.Flags().StringVar(&endDate, "end", "", "End of the search range, inclusive. Defaults to the start date.")
	cmd.Flags().IntVar(&duration, "duration", 0, "Meeting duration in minutes. Defaults to the configured duration.")
	cmd.Flags().StringVar(&preference, "preference", "", "Time of day preference: morning, afternoon, or evening")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID to query. Defaults to the configured calendar.")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name used for credential lookup")
	cmd.Flags().StringVar(&icsSource, "ics", "", "iCalendar source: a .ics file path or an HTTP(S) feed URL")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration file")

	return cmd
}

type slotsOptions struct {
	startDate  string
	endDate    string
	duration   int
	preference string
	calendarID string
	account    string
	icsSource  string
	configPath string
}

func runSlots(ctx context.Context, opts slotsOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}
	now := time.Now().In(loc)

	duration := cfg.DefaultDuration()
	if opts.duration > 0 {
		duration = time.Duration(opts.duration) * time.Minute
	}

	endDate := opts.endDate
	if endDate == "" {
		endDate = opts.startDate
	}

	window, err := schedule.ResolveWindow(now, opts.startDate, endDate, duration)
	if err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}

	hours, err := resolveSlotsHours(opts.preference, cfg)
	if err != nil {
		return err
	}

	busy, err := loadBusyIntervals(ctx, opts, cfg, window)
	if err != nil {
		return err
	}

	slots, err := schedule.FreeSlots(window, busy, hours)
	if err != nil {
		return fmt.Errorf("failed to compute free slots: %w", err)
	}
	if !cfg.ReportFullGaps {
		slots = schedule.TrimToDuration(slots, duration)
	}

	if len(slots) == 0 {
		fmt.Printf("No free slots of %d minutes between %s and %s.\n",
			int(duration.Minutes()),
			window.Start.Format("2006-01-02"),
			window.End.Format("2006-01-02"))
		return nil
	}

	fmt.Printf("Free slots (%d minutes, %s):\n", int(duration.Minutes()), cfg.Timezone)
	for _, slot := range slots {
		slot = slot.In(loc)
		fmt.Printf("  %s  %s - %s\n",
			slot.Start.Format("Mon 2006-01-02"),
			slot.Start.Format("15:04"),
			slot.End.Format("15:04"))
	}
	return nil
}

// loadBusyIntervals reads busy time from the ics source when one is given,
// otherwise from the Google Calendar free/busy API.
func loadBusyIntervals(ctx context.Context, opts slotsOptions, cfg *config.Config, window schedule.SearchWindow) ([]schedule.Interval, error) {
	queryWindow := schedule.Interval{Start: window.Start, End: window.End}

	if opts.icsSource != "" {
		source := ics.Source{}
		if strings.HasPrefix(opts.icsSource, "http://") || strings.HasPrefix(opts.icsSource, "https://") {
			source.URL = opts.icsSource
		} else {
			source.Path = opts.icsSource
		}

		body, err := source.Read(ctx)
		if err != nil {
			return nil, err
		}
		events, err := ics.Parse(body)
		if err != nil {
			return nil, err
		}
		return ics.BusyIntervals(events, queryWindow)
	}

	if !calendar.HasTokenForAccount(opts.account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(opts.account))
	}
	client, err := calendar.NewClientForAccount(ctx, opts.account)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	calendarID := opts.calendarID
	if calendarID == "" {
		calendarID = cfg.CalendarID
	}
	return client.BusyIntervals(calendarID, queryWindow)
}

func resolveSlotsHours(preference string, cfg *config.Config) (*schedule.BusinessHours, error) {
	if preference != "" {
		hours, err := schedule.PreferenceHours(preference)
		if err != nil {
			return nil, err
		}
		return &hours, nil
	}
	hours, err := cfg.Hours()
	if err != nil {
		return nil, fmt.Errorf("invalid business hours configuration: %w", err)
	}
	return hours, nil
}
