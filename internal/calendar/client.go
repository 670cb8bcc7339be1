package calendar

import (
	"context"
	"fmt"
	"net/http"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	defaultMaxResults = 50
	maxMaxResults     = 500
)

// Client wraps the Google Calendar service and translates provider errors
// into the local taxonomy. It implements API.
type Client struct {
	svc *calendar.Service
}

var _ API = (*Client)(nil)

// NewClient creates a Calendar client on top of an authenticated HTTP client
// (see internal/google).
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// clampMaxResults bounds a requested page size to the provider's limits.
func clampMaxResults(n int64) int64 {
	if n <= 0 {
		return defaultMaxResults
	}
	if n > maxMaxResults {
		return maxMaxResults
	}
	return n
}

// ListCalendars lists all calendars accessible to the credential, following
// pagination to the end.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	var calendars []Calendar
	pageToken := ""
	for {
		call := c.svc.CalendarList.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, wrapUpstream("list calendars", err)
		}
		for _, entry := range resp.Items {
			calendars = append(calendars, toCalendar(entry))
		}
		if resp.NextPageToken == "" {
			return calendars, nil
		}
		pageToken = resp.NextPageToken
	}
}

// GetCalendar retrieves one calendar list entry by id.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*Calendar, error) {
	entry, err := c.svc.CalendarList.Get(calendarID).Context(ctx).Do()
	if err != nil {
		return nil, wrapUpstream(fmt.Sprintf("get calendar %q", calendarID), err)
	}
	cal := toCalendar(entry)
	return &cal, nil
}

// ListEvents lists events in one calendar. Recurring events are flattened to
// concrete instances (singleEvents) and ordered by start time by the
// provider.
func (c *Client) ListEvents(ctx context.Context, calendarID string, opts ListOptions) ([]Event, error) {
	limit := clampMaxResults(opts.MaxResults)

	var events []Event
	pageToken := ""
	for {
		call := c.svc.Events.List(calendarID).
			Context(ctx).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(limit - int64(len(events)))
		if opts.TimeMin != "" {
			call = call.TimeMin(opts.TimeMin)
		}
		if opts.TimeMax != "" {
			call = call.TimeMax(opts.TimeMax)
		}
		if opts.Query != "" {
			call = call.Q(opts.Query)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, wrapUpstream(fmt.Sprintf("list events in %q", calendarID), err)
		}
		for _, ev := range resp.Items {
			events = append(events, toEvent(calendarID, ev))
		}
		if resp.NextPageToken == "" || int64(len(events)) >= limit {
			return events, nil
		}
		pageToken = resp.NextPageToken
	}
}

// GetEvent retrieves one event by id.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	ev, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, wrapUpstream(fmt.Sprintf("get event %q", eventID), err)
	}
	out := toEvent(calendarID, ev)
	return &out, nil
}

// InsertEvent creates a new event from a draft.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, draft *EventDraft) (*Event, error) {
	ev := &calendar.Event{
		Summary:     draft.Summary,
		Description: draft.Description,
		Location:    draft.Location,
		Start:       eventDateTime(draft.Start, draft.TimeZone),
		End:         eventDateTime(draft.End, draft.TimeZone),
		Recurrence:  draft.Recurrence,
		Attendees:   toProviderAttendees(draft.Attendees),
		Reminders:   toProviderReminders(draft.Reminders),
	}

	created, err := c.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, wrapUpstream(fmt.Sprintf("create event in %q", calendarID), err)
	}
	out := toEvent(calendarID, created)
	return &out, nil
}

// PatchEvent applies a partial update. Only fields set on the patch are sent
// to the provider.
func (c *Client) PatchEvent(ctx context.Context, calendarID, eventID string, patch *EventPatch) (*Event, error) {
	ev := &calendar.Event{}
	if patch.Summary != nil {
		ev.Summary = *patch.Summary
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
	}
	if patch.Start != nil {
		ev.Start = eventDateTime(*patch.Start, patch.TimeZone)
	}
	if patch.End != nil {
		ev.End = eventDateTime(*patch.End, patch.TimeZone)
	}
	if patch.Attendees != nil {
		ev.Attendees = toProviderAttendees(patch.Attendees)
	}
	if patch.Recurrence != nil {
		ev.Recurrence = patch.Recurrence
	}
	if patch.Reminders != nil {
		ev.Reminders = toProviderReminders(patch.Reminders)
	}

	updated, err := c.svc.Events.Patch(calendarID, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, wrapUpstream(fmt.Sprintf("update event %q", eventID), err)
	}
	out := toEvent(calendarID, updated)
	return &out, nil
}

// DeleteEvent deletes one event (or instance) by id.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return wrapUpstream(fmt.Sprintf("delete event %q", eventID), err)
	}
	return nil
}

// ListInstances lists the materialized occurrences of a recurring series.
func (c *Client) ListInstances(ctx context.Context, calendarID, eventID string, opts ListOptions) ([]Event, error) {
	limit := clampMaxResults(opts.MaxResults)

	var instances []Event
	pageToken := ""
	for {
		call := c.svc.Events.Instances(calendarID, eventID).
			Context(ctx).
			MaxResults(limit - int64(len(instances)))
		if opts.TimeMin != "" {
			call = call.TimeMin(opts.TimeMin)
		}
		if opts.TimeMax != "" {
			call = call.TimeMax(opts.TimeMax)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, wrapUpstream(fmt.Sprintf("list instances of %q", eventID), err)
		}
		for _, ev := range resp.Items {
			instances = append(instances, toEvent(calendarID, ev))
		}
		if resp.NextPageToken == "" || int64(len(instances)) >= limit {
			return instances, nil
		}
		pageToken = resp.NextPageToken
	}
}
