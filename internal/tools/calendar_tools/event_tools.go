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

// RegisterEventTools registers the single-event tools with the MCP server.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) error {
	listEventsTool := mcp.NewTool("list_events",
		mcp.WithDescription("List events from one calendar or merged across all calendars"),
		mcp.WithString("calendar",
			mcp.Description("Calendar id, display name, or name fragment (default: primary)"),
		),
		mcp.WithString("time_min",
			mcp.Description("Lower bound for event start (RFC3339, e.g. '2026-01-01T00:00:00Z')"),
		),
		mcp.WithString("time_max",
			mcp.Description("Upper bound for event start (RFC3339)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of events per calendar (default 50, capped at 500)"),
		),
		mcp.WithString("query",
			mcp.Description("Free-text search filter"),
		),
		mcp.WithBoolean("include_all_calendars",
			mcp.Description("Merge events from every accessible calendar, sorted by start time"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandler("list_events", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	createEventTool := mcp.NewTool("create_event",
		mcp.WithDescription("Create a calendar event (timed or all-day, optionally recurring)"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339) or date (YYYY-MM-DD for all-day)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (RFC3339) or date (YYYY-MM-DD for all-day, exclusive)"),
		),
		mcp.WithString("time_zone",
			mcp.Description("IANA time zone for the event (e.g. 'Europe/Berlin')"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated attendee email addresses"),
		),
		mcp.WithObject("reminders",
			mcp.Description("Reminder settings: {use_default: bool, overrides: [{method, minutes}]}"),
		),
		mcp.WithArray("recurrence",
			mcp.Description("Recurrence lines (e.g. 'RRULE:FREQ=WEEKLY;BYDAY=MO'), passed through verbatim"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandler("create_event", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	updateEventTool := mcp.NewTool("update_event",
		mcp.WithDescription("Apply a partial update to an existing event"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The id of the event to update"),
		),
		mcp.WithObject("patch",
			mcp.Required(),
			mcp.Description("Fields to change: summary, description, location, start, end, time_zone, attendees, recurrence, reminders. Omitted fields are left untouched."),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandler("update_event", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateEvent(ctx, request, sc)
		}))

	deleteEventTool := mcp.NewTool("delete_event",
		mcp.WithDescription("Delete an event or cancel a single recurring instance"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, display name, or name fragment"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The id of the event to delete"),
		),
		mcp.WithBoolean("as_instance",
			mcp.Description("Require the target to be an instance of a recurring series; fails on standalone events"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandler("delete_event", metrics,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvent(ctx, request, sc)
		}))

	return nil
}

type eventResult struct {
	OK    bool           `json:"ok"`
	Event calendar.Event `json:"event"`
}

type deleteResult struct {
	OK bool `json:"ok"`
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := calendar.ListRequest{
		Calendar:     common.StringArg(args, "calendar"),
		TimeMin:      common.StringArg(args, "time_min"),
		TimeMax:      common.StringArg(args, "time_max"),
		MaxResults:   common.Int64Arg(args, "max_results"),
		Query:        common.StringArg(args, "query"),
		AllCalendars: common.BoolArg(args, "include_all_calendars"),
	}

	for _, bound := range []struct{ name, value string }{
		{"time_min", req.TimeMin},
		{"time_max", req.TimeMax},
	} {
		if bound.value == "" {
			continue
		}
		if _, _, err := calendar.ParseEventTime(bound.value); err != nil {
			return common.FailureResult(calendar.AmbiguousInputf("invalid %s: %q is not RFC3339", bound.name, bound.value))
		}
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	result, err := tk.Aggregator.ListEvents(ctx, req)
	if err != nil {
		return common.FailureResult(err)
	}
	if result.Events == nil {
		result.Events = []calendar.Event{}
	}

	return common.JSONResult(result)
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	draft := &calendar.EventDraft{
		Summary:     common.StringArg(args, "summary"),
		Description: common.StringArg(args, "description"),
		Location:    common.StringArg(args, "location"),
		Start:       common.StringArg(args, "start"),
		End:         common.StringArg(args, "end"),
		TimeZone:    common.StringArg(args, "time_zone"),
		Attendees:   common.StringListArg(args, "attendees"),
		Recurrence:  common.StringListArg(args, "recurrence"),
	}

	if draft.Summary == "" {
		return common.FailureResult(calendar.AmbiguousInputf("summary is required"))
	}
	if draft.Start == "" || draft.End == "" {
		return common.FailureResult(calendar.AmbiguousInputf("start and end are required"))
	}

	if _, _, err := calendar.ParseEventTime(draft.Start); err != nil {
		return common.FailureResult(calendar.AmbiguousInputf("invalid start: %q is neither RFC3339 nor a date", draft.Start))
	}
	if _, _, err := calendar.ParseEventTime(draft.End); err != nil {
		return common.FailureResult(calendar.AmbiguousInputf("invalid end: %q is neither RFC3339 nor a date", draft.End))
	}
	if calendar.IsDateOnly(draft.Start) != calendar.IsDateOnly(draft.End) {
		return common.FailureResult(calendar.AmbiguousInputf("start and end must both be timestamps or both be dates"))
	}

	if reminders := common.MapArg(args, "reminders"); reminders != nil {
		draft.Reminders = parseReminders(reminders)
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	resolved, err := tk.Resolver.Resolve(ctx, common.StringArg(args, "calendar"))
	if err != nil {
		return common.FailureResult(err)
	}

	event, err := tk.API.InsertEvent(ctx, resolved.CalendarID, draft)
	if err != nil {
		return common.FailureResult(err)
	}

	return common.JSONResult(eventResult{OK: true, Event: *event})
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID := common.StringArg(args, "event_id")
	if eventID == "" {
		return common.FailureResult(calendar.AmbiguousInputf("event_id is required"))
	}

	patchArgs := common.MapArg(args, "patch")
	patch, changed, err := patchFromArgs(patchArgs)
	if err != nil {
		return common.FailureResult(err)
	}
	if !changed {
		return common.FailureResult(calendar.AmbiguousInputf("patch must set at least one field"))
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	resolved, err := tk.Resolver.Resolve(ctx, common.StringArg(args, "calendar"))
	if err != nil {
		return common.FailureResult(err)
	}

	event, err := tk.API.PatchEvent(ctx, resolved.CalendarID, eventID, &patch)
	if err != nil {
		return common.FailureResult(err)
	}

	return common.JSONResult(eventResult{OK: true, Event: *event})
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID := common.StringArg(args, "event_id")
	if eventID == "" {
		return common.FailureResult(calendar.AmbiguousInputf("event_id is required"))
	}

	tk, err := sc.Toolkit()
	if err != nil {
		return common.FailureResult(err)
	}

	resolved, err := tk.Resolver.Resolve(ctx, common.StringArg(args, "calendar"))
	if err != nil {
		return common.FailureResult(err)
	}

	if common.BoolArg(args, "as_instance") {
		event, err := tk.API.GetEvent(ctx, resolved.CalendarID, eventID)
		if err != nil {
			return common.FailureResult(err)
		}
		if !event.IsInstance() {
			return common.FailureResult(calendar.UnsupportedEventTypef("event %q is not an instance of a recurring series", eventID))
		}
	}

	if err := tk.API.DeleteEvent(ctx, resolved.CalendarID, eventID); err != nil {
		return common.FailureResult(err)
	}

	return common.JSONResult(deleteResult{OK: true})
}

// patchFromArgs converts the patch argument object into an EventPatch.
// The second return value reports whether any field was set.
func patchFromArgs(args map[string]interface{}) (calendar.EventPatch, bool, error) {
	var patch calendar.EventPatch
	if args == nil {
		return patch, false, nil
	}

	changed := false
	setString := func(key string, dst **string) {
		if _, present := args[key]; !present {
			return
		}
		v := common.StringArg(args, key)
		*dst = &v
		changed = true
	}

	setString("summary", &patch.Summary)
	setString("description", &patch.Description)
	setString("location", &patch.Location)
	setString("start", &patch.Start)
	setString("end", &patch.End)

	if tz := common.StringArg(args, "time_zone"); tz != "" {
		patch.TimeZone = tz
		changed = true
	}
	if _, present := args["attendees"]; present {
		patch.Attendees = common.StringListArg(args, "attendees")
		changed = true
	}
	if _, present := args["recurrence"]; present {
		patch.Recurrence = common.StringListArg(args, "recurrence")
		changed = true
	}
	if reminders := common.MapArg(args, "reminders"); reminders != nil {
		patch.Reminders = parseReminders(reminders)
		changed = true
	}

	for _, bound := range []struct {
		name  string
		value *string
	}{
		{"start", patch.Start},
		{"end", patch.End},
	} {
		if bound.value == nil || *bound.value == "" {
			continue
		}
		if _, _, err := calendar.ParseEventTime(*bound.value); err != nil {
			return patch, changed, calendar.AmbiguousInputf("invalid %s: %q is neither RFC3339 nor a date", bound.name, *bound.value)
		}
	}

	return patch, changed, nil
}

// parseReminders converts the reminders argument object into the domain
// shape. Unknown keys are ignored.
func parseReminders(args map[string]interface{}) *calendar.Reminders {
	reminders := &calendar.Reminders{
		UseDefault: common.BoolArg(args, "use_default"),
	}

	overrides, _ := args["overrides"].([]interface{})
	for _, item := range overrides {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		method := common.StringArg(entry, "method")
		if method == "" {
			method = "popup"
		}
		reminders.Overrides = append(reminders.Overrides, calendar.ReminderOverride{
			Method:  method,
			Minutes: common.Int64Arg(entry, "minutes"),
		})
	}

	return reminders
}
