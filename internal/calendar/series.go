package calendar

import (
	"context"
	"log/slog"
	"time"

	"gcalmcp/internal/logging"
)

// SeriesManager implements the recurring-series operations: listing
// instances, cancelling a single occurrence, and the
// "edit this and all following occurrences" split.
type SeriesManager struct {
	api      API
	resolver *Resolver
	logger   *slog.Logger
}

// NewSeriesManager creates a SeriesManager. A nil logger falls back to
// slog.Default().
func NewSeriesManager(api API, resolver *Resolver, logger *slog.Logger) *SeriesManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesManager{api: api, resolver: resolver, logger: logger}
}

// SplitRequest describes an update_following_instances operation.
type SplitRequest struct {
	// Calendar is a resolver query.
	Calendar         string
	RecurringEventID string
	// TargetInstanceStart is the RFC3339 start of the first occurrence the
	// new series covers.
	TargetInstanceStart string
	// Patch is overlaid on the original series' fields; its Start/End are
	// ignored because the new series' times are derived from
	// TargetInstanceStart and the original duration.
	Patch EventPatch
	// NewRecurrence is applied to the new series verbatim, never inferred.
	NewRecurrence []string
}

// ListInstances resolves the calendar and lists the materialized occurrences
// of a recurring series.
func (m *SeriesManager) ListInstances(ctx context.Context, calendarQuery, recurringEventID string, opts ListOptions) ([]Event, error) {
	resolved, err := m.resolver.Resolve(ctx, calendarQuery)
	if err != nil {
		return nil, err
	}
	return m.api.ListInstances(ctx, resolved.CalendarID, recurringEventID, opts)
}

// UpdateFollowingInstances emulates "edit this and all following occurrences"
// for a timestamped recurring series:
//
//  1. fetch the series and reject non-recurring or all-day events
//  2. terminate the original series strictly before the target start
//  3. create a new series starting at the target start, carrying the
//     original fields overlaid with the patch and the new recurrence
//
// The truncation is applied before the create so a failure never leaves two
// overlapping series; if the truncation itself fails, the original series is
// untouched and no new series exists.
func (m *SeriesManager) UpdateFollowingInstances(ctx context.Context, req SplitRequest) (*Event, error) {
	if req.RecurringEventID == "" {
		return nil, AmbiguousInputf("recurring_event_id is required")
	}
	if len(req.NewRecurrence) == 0 {
		return nil, AmbiguousInputf("new_recurrence is required and applied verbatim")
	}
	target, err := time.Parse(time.RFC3339, req.TargetInstanceStart)
	if err != nil {
		return nil, AmbiguousInputf("target_instance_start must be an RFC3339 timestamp: %v", err)
	}

	resolved, err := m.resolver.Resolve(ctx, req.Calendar)
	if err != nil {
		return nil, err
	}

	series, err := m.api.GetEvent(ctx, resolved.CalendarID, req.RecurringEventID)
	if err != nil {
		return nil, err
	}
	if !series.IsRecurring() {
		return nil, UnsupportedEventTypef("event %q is not a recurring series", req.RecurringEventID)
	}
	if series.AllDay {
		return nil, UnsupportedEventTypef("splitting an all-day series is not supported")
	}

	truncated, err := TerminateBefore(series.Recurrence, target)
	if err != nil {
		return nil, SeriesUpdateError("cannot terminate original series", err)
	}

	if _, err := m.api.PatchEvent(ctx, resolved.CalendarID, series.ID, &EventPatch{Recurrence: truncated}); err != nil {
		// Fail fast: the original series keeps its old rule and no new
		// series is created.
		return nil, SeriesUpdateError("failed to truncate original series, no new series created", err)
	}

	draft := buildSuccessorDraft(series, req.Patch, target, req.NewRecurrence)
	created, err := m.api.InsertEvent(ctx, resolved.CalendarID, draft)
	if err != nil {
		m.logger.Error("series truncated but successor creation failed",
			slog.String("calendar_id", resolved.CalendarID),
			slog.String("recurring_event_id", series.ID),
			logging.Err(err))
		return nil, SeriesUpdateError("original series truncated but new series creation failed", err)
	}

	m.logger.Info("recurring series split",
		slog.String("calendar_id", resolved.CalendarID),
		slog.String("recurring_event_id", series.ID),
		slog.String("new_event_id", created.ID))
	return created, nil
}

// buildSuccessorDraft overlays the patch on the original series and pins the
// new series' start to target, preserving the original event duration.
func buildSuccessorDraft(series *Event, patch EventPatch, target time.Time, newRecurrence []string) *EventDraft {
	draft := &EventDraft{
		Summary:     series.Summary,
		Description: series.Description,
		Location:    series.Location,
		TimeZone:    series.TimeZone,
		Attendees:   series.Attendees,
		Reminders:   series.Reminders,
		Recurrence:  newRecurrence,
	}

	if patch.Summary != nil {
		draft.Summary = *patch.Summary
	}
	if patch.Description != nil {
		draft.Description = *patch.Description
	}
	if patch.Location != nil {
		draft.Location = *patch.Location
	}
	if patch.TimeZone != "" {
		draft.TimeZone = patch.TimeZone
	}
	if patch.Attendees != nil {
		draft.Attendees = patch.Attendees
	}
	if patch.Reminders != nil {
		draft.Reminders = patch.Reminders
	}

	draft.Start = target.Format(time.RFC3339)
	duration := time.Hour
	start, _, _ := ParseEventTime(series.Start)
	end, _, _ := ParseEventTime(series.End)
	if !start.IsZero() && end.After(start) {
		duration = end.Sub(start)
	}
	draft.End = target.Add(duration).Format(time.RFC3339)

	return draft
}

// CancelRequest identifies exactly one occurrence of a recurring series,
// either directly by instance id or by the (series id, original start) pair.
type CancelRequest struct {
	Calendar          string
	InstanceID        string
	RecurringEventID  string
	OriginalStartTime string
}

// CancelInstance deletes one occurrence. When neither identification path is
// fully specified it fails with ambiguous_input before any provider call.
func (m *SeriesManager) CancelInstance(ctx context.Context, req CancelRequest) (*Event, error) {
	byPair := req.RecurringEventID != "" && req.OriginalStartTime != ""
	if req.InstanceID == "" && !byPair {
		return nil, AmbiguousInputf("specify instance_id or both recurring_event_id and original_start_time")
	}

	resolved, err := m.resolver.Resolve(ctx, req.Calendar)
	if err != nil {
		return nil, err
	}

	var instance *Event
	if req.InstanceID != "" {
		instance, err = m.api.GetEvent(ctx, resolved.CalendarID, req.InstanceID)
		if err != nil {
			return nil, err
		}
		if !instance.IsInstance() {
			return nil, UnsupportedEventTypef("event %q is not a recurring-event instance", req.InstanceID)
		}
	} else {
		instance, err = m.findInstance(ctx, resolved.CalendarID, req.RecurringEventID, req.OriginalStartTime)
		if err != nil {
			return nil, err
		}
	}

	if err := m.api.DeleteEvent(ctx, resolved.CalendarID, instance.ID); err != nil {
		return nil, err
	}

	m.logger.Info("recurring instance cancelled",
		slog.String("calendar_id", resolved.CalendarID),
		slog.String("instance_id", instance.ID))
	return instance, nil
}

// findInstance locates the occurrence of a series whose original start
// matches originalStart. Starts are compared as instants, so the same moment
// expressed in different offsets still matches.
func (m *SeriesManager) findInstance(ctx context.Context, calendarID, recurringEventID, originalStart string) (*Event, error) {
	want, _, err := ParseEventTime(originalStart)
	if err != nil {
		return nil, AmbiguousInputf("original_start_time %q is not a valid time value", originalStart)
	}

	instances, err := m.api.ListInstances(ctx, calendarID, recurringEventID, ListOptions{MaxResults: maxMaxResults})
	if err != nil {
		return nil, err
	}
	for i := range instances {
		got, _, gerr := ParseEventTime(instances[i].OriginalStartTime)
		if gerr == nil && got.Equal(want) {
			return &instances[i], nil
		}
	}
	return nil, NotFoundf("series %q has no instance with original start %q", recurringEventID, originalStart)
}
