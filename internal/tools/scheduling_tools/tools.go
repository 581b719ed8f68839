package scheduling_tools

import (
	"context"
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"voxsched/internal/calendar"
	"voxsched/internal/google"
	"voxsched/internal/server"
)

// RegisterSchedulingTools registers all scheduling tools with the MCP
// server. Event creation is only registered when readOnly is false.
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerTimeTools(s, sc); err != nil {
		return fmt.Errorf("failed to register time tools: %w", err)
	}

	if err := registerSlotTools(s, sc); err != nil {
		return fmt.Errorf("failed to register slot tools: %w", err)
	}

	if err := registerEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	return nil
}

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		// Check if credentials exist before trying to create the client
		if !calendar.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}

		var err error
		client, err = calendar.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}
		sc.SetCalendarClientForAccount(account, client)
	}
	return client, nil
}

// calendarIDFromArgs returns the calendar to operate on, falling back to
// the configured default.
func calendarIDFromArgs(args map[string]interface{}, sc *server.ServerContext) string {
	if id, ok := args["calendarId"].(string); ok && id != "" {
		return id
	}
	return sc.Config().CalendarID
}
