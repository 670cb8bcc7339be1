package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"gcalmcp/internal/calendar"
	"gcalmcp/internal/instrumentation"
	"gcalmcp/internal/server"
	"gcalmcp/internal/tools/common"
)

// RegisterCalendarListTools registers the calendar listing and resolution
// tools with the MCP server.
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) error {
	listCalendarsTool := mcp.NewTool("list_calendars",
		mcp.WithDescription("List all calendars the user can access"),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandler("list_calendars", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	resolveCalendarTool := mcp.NewTool("resolve_calendar",
		mcp.WithDescription("Resolve a calendar name, id, or fragment to a concrete calendar"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment ('primary' or empty selects the primary calendar)"),
		),
	)

	s.AddTool(resolveCalendarTool, common.InstrumentedToolHandler("resolve_calendar", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleResolveCalendar(ctx, request, sc)
		}))

	return nil
}

type listCalendarsResult struct {
	Calendars []calendar.Calendar `json:"calendars"`
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	calendars, err := tk.API.ListCalendars(ctx)
	if err != nil {
		return common.FailureResult(err)
	}
	if calendars == nil {
		calendars = []calendar.Calendar{}
	}

	return common.JSONResult(listCalendarsResult{Calendars: calendars})
}

func handleResolveCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query := common.StringArg(args, "query")

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	resolved, err := tk.Resolver.Resolve(ctx, query)
	if err != nil {
		return common.FailureResult(err)
	}

	return common.JSONResult(resolved)
}
