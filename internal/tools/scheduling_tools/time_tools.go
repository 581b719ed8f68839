package scheduling_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"voxsched/internal/server"
	"voxsched/internal/tools/common"
)

// registerTimeTools registers the clock tool. The orchestration layer calls
// it at the start of a conversation so every relative date ("tomorrow",
// "next tuesday") resolves against the same reference instant.
func registerTimeTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	currentTimeTool := mcp.NewTool("scheduler_current_time",
		mcp.WithDescription("Get the current date, time, and weekday in the scheduling timezone. Call this before resolving relative dates like 'tomorrow'."),
	)

	s.AddTool(currentTimeTool, common.InstrumentedToolHandler("scheduler_current_time", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCurrentTime(ctx, request, sc)
		}))

	return nil
}

func handleCurrentTime(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	now := sc.Now()

	result := fmt.Sprintf("It is %s at %s in %s.",
		now.Format("Monday, January 2, 2006"),
		now.Format("3:04 PM"),
		sc.Config().Timezone)

	return mcp.NewToolResultText(result), nil
}
