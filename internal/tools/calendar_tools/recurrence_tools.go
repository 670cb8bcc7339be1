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

// RegisterRecurrenceTools registers the recurring-series tools with the MCP
// server.
func RegisterRecurrenceTools(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) error {
	listInstancesTool := mcp.NewTool("list_recurring_instances",
		mcp.WithDescription("List the materialized instances of a recurring event"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment"),
		),
		mcp.WithString("recurring_event_id",
			mcp.Required(),
			mcp.Description("The id of the recurring series"),
		),
		mcp.WithString("time_min",
			mcp.Description("Lower bound for instance start (RFC3339)"),
		),
		mcp.WithString("time_max",
			mcp.Description("Upper bound for instance start (RFC3339)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of instances (default 50, capped at 500)"),
		),
	)

	s.AddTool(listInstancesTool, common.InstrumentedToolHandler("list_recurring_instances", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListRecurringInstances(ctx, request, sc)
		}))

	cancelInstanceTool := mcp.NewTool("cancel_recurring_instance",
		mcp.WithDescription("Cancel a single instance of a recurring event, leaving the rest of the series intact"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment"),
		),
		mcp.WithString("instance_id",
			mcp.Description("The id of the instance to cancel"),
		),
		mcp.WithString("recurring_event_id",
			mcp.Description("The series id, used with original_start_time when instance_id is unknown"),
		),
		mcp.WithString("original_start_time",
			mcp.Description("The instance's original start (RFC3339), used with recurring_event_id"),
		),
	)

	s.AddTool(cancelInstanceTool, common.InstrumentedToolHandler("cancel_recurring_instance", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCancelRecurringInstance(ctx, request, sc)
		}))

	updateFollowingTool := mcp.NewTool("update_following_instances",
		mcp.WithDescription("Change a recurring event from a target instance onward by splitting the series"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment"),
		),
		mcp.WithString("recurring_event_id",
			mcp.Required(),
			mcp.Description("The id of the recurring series to split"),
		),
		mcp.WithString("target_instance_start",
			mcp.Required(),
			mcp.Description("Start of the first instance the change applies to (RFC3339)"),
		),
		mcp.WithObject("change_patch",
			mcp.Description("Fields to change on the new series: summary, description, location, time_zone, attendees, reminders"),
		),
		mcp.WithArray("new_recurrence",
			mcp.Required(),
			mcp.Description("Recurrence lines for the new series, applied verbatim"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.AddTool(updateFollowingTool, common.InstrumentedToolHandler("update_following_instances", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateFollowingInstances(ctx, request, sc)
		}))

	return nil
}

type instancesResult struct {
	OK        bool             `json:"ok"`
	Instances []calendar.Event `json:"instances"`
}

type instanceResult struct {
	OK       bool           `json:"ok"`
	Instance calendar.Event `json:"instance"`
}

type splitResult struct {
	OK                bool           `json:"ok"`
	NewRecurringEvent calendar.Event `json:"newRecurringEvent"`
}

func handleListRecurringInstances(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	recurringEventID := common.StringArg(args, "recurring_event_id")
	if recurringEventID == "" {
		return common.FailureResult(calendar.AmbiguousInputf("recurring_event_id is required"))
	}

	opts := calendar.ListOptions{
		TimeMin:    common.StringArg(args, "time_min"),
		TimeMax:    common.StringArg(args, "time_max"),
		MaxResults: common.Int64Arg(args, "max_results"),
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	instances, err := tk.Series.ListInstances(ctx, common.StringArg(args, "calendar"), recurringEventID, opts)
	if err != nil {
		return common.FailureResult(err)
	}
	if instances == nil {
		instances = []calendar.Event{}
	}

	return common.JSONResult(instancesResult{OK: true, Instances: instances})
}

func handleCancelRecurringInstance(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := calendar.CancelRequest{
		Calendar:          common.StringArg(args, "calendar"),
		InstanceID:        common.StringArg(args, "instance_id"),
		RecurringEventID:  common.StringArg(args, "recurring_event_id"),
		OriginalStartTime: common.StringArg(args, "original_start_time"),
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	instance, err := tk.Series.CancelInstance(ctx, req)
	if err != nil {
		return common.FailureResult(err)
	}

	return common.JSONResult(instanceResult{OK: true, Instance: *instance})
}

func handleUpdateFollowingInstances(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	patch, _, err := patchFromArgs(common.MapArg(args, "change_patch"))
	if err != nil {
		return common.FailureResult(err)
	}

	req := calendar.SplitRequest{
		Calendar:            common.StringArg(args, "calendar"),
		RecurringEventID:    common.StringArg(args, "recurring_event_id"),
		TargetInstanceStart: common.StringArg(args, "target_instance_start"),
		Patch:               patch,
		NewRecurrence:       common.StringListArg(args, "new_recurrence"),
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	newSeries, err := tk.Series.UpdateFollowingInstances(ctx, req)
	if err != nil {
		return common.FailureResult(err)
	}

	return common.JSONResult(splitResult{OK: true, NewRecurringEvent: *newSeries})
}
