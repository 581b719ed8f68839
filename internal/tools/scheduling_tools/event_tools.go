package scheduling_tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"voxsched/internal/calendar"
	"voxsched/internal/instrumentation"
	"voxsched/internal/schedule"
	"voxsched/internal/server"
	"voxsched/internal/tools/common"
)

// registerEventTools registers event listing and, outside read-only mode,
// event creation.
func registerEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listEventsTool := mcp.NewTool("scheduler_list_events",
		mcp.WithDescription("List calendar events within a date range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("startDate",
			mcp.Required(),
			mcp.Description("Start of the range: '2006-01-02', 'today', 'tomorrow', 'this friday', 'next monday'"),
		),
		mcp.WithString("endDate",
			mcp.Description("End of the range (same formats; a date-only value includes that whole day). Defaults to startDate."),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query to filter events"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedCalendarToolHandler(
		"scheduler_list_events", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createEventTool := mcp.NewTool("scheduler_create_event",
		mcp.WithDescription("Create a calendar event for a confirmed time slot"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (defaults to the configured calendar)"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time ('2006-01-02T15:04', in the scheduling timezone)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (same format; must be after start)"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence rule (e.g., 'RRULE:FREQ=WEEKLY;BYDAY=MO')"),
		),
		mcp.WithBoolean("addGoogleMeet",
			mcp.Description("Attach a Google Meet link to the event"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedCalendarToolHandler(
		"scheduler_create_event", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	return nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	now := sc.Now()

	startDate, ok := args["startDate"].(string)
	if !ok || startDate == "" {
		return mcp.NewToolResultError("startDate is required"), nil
	}

	endDate := startDate
	if endVal, ok := args["endDate"].(string); ok && endVal != "" {
		endDate = endVal
	}

	window, err := schedule.ResolveRange(now, startDate, endDate)
	if err != nil {
		if errors.Is(err, schedule.ErrAmbiguousInput) {
			return mcp.NewToolResultError(fmt.Sprintf("Could not understand the date range: %v. Please give a specific date.", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Invalid date range: %v", err)), nil
	}

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListEvents(calendarIDFromArgs(args, sc), window.Start, window.End, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEvents(window, events)), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)
	cfg := sc.Config()
	now := sc.Now()

	summary, ok := args["summary"].(string)
	if !ok || strings.TrimSpace(summary) == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}

	startStr, ok := args["start"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("start is required"), nil
	}
	endStr, ok := args["end"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("end is required"), nil
	}

	slot, err := schedule.ResolveCandidate(now, startStr, endStr)
	if err != nil {
		if errors.Is(err, schedule.ErrAmbiguousInput) {
			return mcp.NewToolResultError(fmt.Sprintf("Could not understand the event time: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Invalid event time: %v", err)), nil
	}

	input := calendar.EventInput{
		Summary:  summary,
		Start:    slot.Start,
		End:      slot.End,
		TimeZone: cfg.Timezone,
	}

	if descVal, ok := args["description"].(string); ok {
		input.Description = descVal
	}
	if locVal, ok := args["location"].(string); ok {
		input.Location = locVal
	}
	if attendeesVal, ok := args["attendees"].(string); ok && attendeesVal != "" {
		for _, email := range strings.Split(attendeesVal, ",") {
			if email = strings.TrimSpace(email); email != "" {
				input.Attendees = append(input.Attendees, email)
			}
		}
	}
	if recurrenceVal, ok := args["recurrence"].(string); ok && recurrenceVal != "" {
		input.Recurrence = []string{recurrenceVal}
	}
	if meetVal, ok := args["addGoogleMeet"].(bool); ok {
		input.AddMeet = meetVal
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := client.CreateEvent(calendarIDFromArgs(args, sc), input)
	if err != nil {
		// Never retried here: a retry after partial success could double-book.
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	result := fmt.Sprintf("Created %q on %s. Event ID: %s", created.Summary, formatSlot(slot), created.ID)
	if created.MeetLink != "" {
		result += fmt.Sprintf("\nGoogle Meet: %s", created.MeetLink)
	}
	if len(input.Attendees) > 0 {
		result += fmt.Sprintf("\nInvitations sent to %s.", strings.Join(input.Attendees, ", "))
	}

	return mcp.NewToolResultText(result), nil
}
