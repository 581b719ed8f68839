package scheduling_tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"voxsched/internal/calendar"
	"voxsched/internal/config"
	"voxsched/internal/instrumentation"
	"voxsched/internal/logging"
	"voxsched/internal/schedule"
	"voxsched/internal/server"
	"voxsched/internal/tools/common"
)

// registerSlotTools registers the availability tools with the MCP server
func registerSlotTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	findSlotsTool := mcp.NewTool("scheduler_find_available_slots",
		mcp.WithDescription("Find free time slots in a date range, respecting existing events and time-of-day preferences"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("startDate",
			mcp.Required(),
			mcp.Description("Start of the search range: '2006-01-02', 'today', 'tomorrow', 'this friday', 'next monday'"),
		),
		mcp.WithString("endDate",
			mcp.Description("End of the search range (same formats; a date-only value searches through that whole day). Defaults to startDate."),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Minimum slot length in minutes (defaults to the configured duration)"),
		),
		mcp.WithString("timePreference",
			mcp.Description("Preferred time of day: 'morning', 'afternoon', 'evening', or 'anytime'"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of slots to read back (defaults to the configured cap)"),
		),
	)

	s.AddTool(findSlotsTool, common.InstrumentedCalendarToolHandler(
		"scheduler_find_available_slots", instrumentation.OperationFreeBusy, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindAvailableSlots(ctx, request, sc)
		}))

	checkTool := mcp.NewTool("scheduler_check_availability",
		mcp.WithDescription("Check whether a specific time range is free, reporting any conflicting events"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Candidate start ('2006-01-02T15:04' or '2006-01-02 15:04', in the scheduling timezone)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Candidate end (same format; must be after start)"),
		),
	)

	s.AddTool(checkTool, common.InstrumentedCalendarToolHandler(
		"scheduler_check_availability", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCheckAvailability(ctx, request, sc)
		}))

	return nil
}

func handleFindAvailableSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	cfg := sc.Config()
	now := sc.Now()

	startDate, ok := args["startDate"].(string)
	if !ok || startDate == "" {
		return mcp.NewToolResultError("startDate is required"), nil
	}

	endDate := startDate
	if endVal, ok := args["endDate"].(string); ok && endVal != "" {
		endDate = endVal
	}

	duration := cfg.DefaultDuration()
	if durationVal, ok := args["durationMinutes"].(float64); ok {
		if durationVal <= 0 {
			return mcp.NewToolResultError("durationMinutes must be positive"), nil
		}
		duration = time.Duration(durationVal) * time.Minute
	}

	window, err := schedule.ResolveWindow(now, startDate, endDate, duration)
	if err != nil {
		if errors.Is(err, schedule.ErrAmbiguousInput) {
			return mcp.NewToolResultError(fmt.Sprintf("Could not understand the date range: %v. Please give a specific date.", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Invalid date range: %v", err)), nil
	}

	hours, err := resolveHours(args, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	maxResults := cfg.MaxSpokenSlots
	if maxVal, ok := args["maxResults"].(float64); ok && maxVal > 0 {
		maxResults = int(maxVal)
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := calendarIDFromArgs(args, sc)
	busy, err := client.BusyIntervals(calendarID, schedule.Interval{Start: window.Start, End: window.End})
	if err != nil {
		sc.Metrics().RecordSlotSearch(ctx, instrumentation.StatusError, 0)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch busy intervals: %v", err)), nil
	}

	slots, err := schedule.FreeSlots(window, busy, hours)
	if err != nil {
		sc.Metrics().RecordSlotSearch(ctx, instrumentation.StatusError, 0)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute free slots: %v", err)), nil
	}

	if !cfg.ReportFullGaps {
		slots = schedule.TrimToDuration(slots, duration)
	}

	sc.Metrics().RecordSlotSearch(ctx, instrumentation.StatusSuccess, len(slots))
	slog.LogAttrs(ctx, slog.LevelDebug, "slot search completed",
		logging.Calendar(calendarID),
		logging.Slots(len(slots)),
		logging.Status(logging.StatusSuccess))

	return mcp.NewToolResultText(formatSlots(slots, duration, maxResults)), nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	now := sc.Now()

	startStr, ok := args["start"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("start is required"), nil
	}
	endStr, ok := args["end"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("end is required"), nil
	}

	candidate, err := schedule.ResolveCandidate(now, startStr, endStr)
	if err != nil {
		if errors.Is(err, schedule.ErrAmbiguousInput) {
			return mcp.NewToolResultError(fmt.Sprintf("Could not understand the requested time: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Invalid time range: %v", err)), nil
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Listed events carry titles, so conflicts can be read back by name.
	events, err := client.ListEvents(calendarIDFromArgs(args, sc), candidate.Start, candidate.End, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	busy := make([]schedule.Interval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, ev.Interval())
	}

	conflicts, err := schedule.Conflicts(candidate, busy)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check availability: %v", err)), nil
	}

	if len(conflicts) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s is available.", formatSlot(candidate))), nil
	}

	var conflicting []calendar.EventSummary
	for _, ev := range events {
		if ev.Interval().Overlaps(candidate) {
			conflicting = append(conflicting, ev)
		}
	}

	return mcp.NewToolResultText(formatConflicts(candidate, conflicting)), nil
}

// resolveHours picks the business-hour constraint for a slot search: an
// explicit time preference wins, otherwise the configured business hours,
// otherwise the "anytime" default window.
func resolveHours(args map[string]interface{}, cfg *config.Config) (*schedule.BusinessHours, error) {
	preference := ""
	if prefVal, ok := args["timePreference"].(string); ok {
		preference = prefVal
	}

	if preference == "" {
		if hours, err := cfg.Hours(); err != nil {
			return nil, fmt.Errorf("invalid configured business hours: %w", err)
		} else if hours != nil {
			return hours, nil
		}
	}

	hours, err := schedule.PreferenceHours(preference)
	if err != nil {
		return nil, err
	}
	return &hours, nil
}
