package calendar

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newSeriesFixture() (*fakeAPI, *SeriesManager) {
	api := newFakeAPI(testCalendars()...)
	api.addEvent("alice@example.com", Event{
		ID:         "standup",
		Summary:    "Daily Standup",
		Start:      "2026-09-07T10:00:00Z",
		End:        "2026-09-07T10:30:00Z",
		Recurrence: []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"},
		Attendees:  []string{"alice@example.com", "bob@example.com"},
	})
	api.addEvent("alice@example.com", Event{
		ID:      "offsite",
		Summary: "Offsite",
		Start:   "2026-09-10",
		End:     "2026-09-11",
		AllDay:  true,
	})
	api.addEvent("alice@example.com", Event{
		ID:      "lunch",
		Summary: "Lunch",
		Start:   "2026-09-08T12:00:00Z",
		End:     "2026-09-08T13:00:00Z",
	})
	return api, NewSeriesManager(api, NewResolver(api), nil)
}

func TestUpdateFollowingInstances(t *testing.T) {
	api, mgr := newSeriesFixture()
	newSummary := "Daily Standup (moved)"

	created, err := mgr.UpdateFollowingInstances(context.Background(), SplitRequest{
		Calendar:            "primary",
		RecurringEventID:    "standup",
		TargetInstanceStart: "2026-09-28T11:00:00Z",
		Patch:               EventPatch{Summary: &newSummary},
		NewRecurrence:       []string{"RRULE:FREQ=WEEKLY;BYDAY=TU"},
	})
	if err != nil {
		t.Fatalf("UpdateFollowingInstances returned error: %v", err)
	}

	// The original series must have been truncated before the successor was
	// created.
	if len(api.patches) != 1 {
		t.Fatalf("got %d patches, want 1", len(api.patches))
	}
	truncated := api.patches[0].Recurrence
	if len(truncated) != 1 || !strings.Contains(truncated[0], "UNTIL") {
		t.Errorf("truncated recurrence %v carries no UNTIL bound", truncated)
	}

	if len(api.inserted) != 1 {
		t.Fatalf("got %d inserts, want 1", len(api.inserted))
	}
	draft := api.inserted[0]
	if draft.Summary != newSummary {
		t.Errorf("successor summary = %q, want the patched value", draft.Summary)
	}
	if draft.Start != "2026-09-28T11:00:00Z" {
		t.Errorf("successor start = %q, want the target instance start", draft.Start)
	}
	if draft.End != "2026-09-28T11:30:00Z" {
		t.Errorf("successor end = %q, want start plus the original duration", draft.End)
	}
	if len(draft.Recurrence) != 1 || draft.Recurrence[0] != "RRULE:FREQ=WEEKLY;BYDAY=TU" {
		t.Errorf("successor recurrence = %v, want the new recurrence verbatim", draft.Recurrence)
	}
	if len(draft.Attendees) != 2 {
		t.Errorf("successor attendees = %v, want the original attendees carried over", draft.Attendees)
	}
	if created.ID == "" {
		t.Error("created event has no id")
	}
}

func TestUpdateFollowingInstancesRejectsAllDay(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.events["alice@example.com"][1].Recurrence = []string{"RRULE:FREQ=WEEKLY"}

	_, err := mgr.UpdateFollowingInstances(context.Background(), SplitRequest{
		Calendar:            "primary",
		RecurringEventID:    "offsite",
		TargetInstanceStart: "2026-09-28T00:00:00Z",
		NewRecurrence:       []string{"RRULE:FREQ=WEEKLY"},
	})
	if KindOf(err) != KindUnsupportedEventType {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindUnsupportedEventType)
	}
	if len(api.patches) != 0 || len(api.inserted) != 0 {
		t.Error("all-day rejection must happen before any mutation")
	}
}

func TestUpdateFollowingInstancesRejectsNonRecurring(t *testing.T) {
	api, mgr := newSeriesFixture()

	_, err := mgr.UpdateFollowingInstances(context.Background(), SplitRequest{
		Calendar:            "primary",
		RecurringEventID:    "lunch",
		TargetInstanceStart: "2026-09-28T12:00:00Z",
		NewRecurrence:       []string{"RRULE:FREQ=DAILY"},
	})
	if KindOf(err) != KindUnsupportedEventType {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindUnsupportedEventType)
	}
	if len(api.patches) != 0 || len(api.inserted) != 0 {
		t.Error("non-recurring rejection must happen before any mutation")
	}
}

func TestUpdateFollowingInstancesTruncationFailure(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.patchErr = errors.New("precondition failed")

	_, err := mgr.UpdateFollowingInstances(context.Background(), SplitRequest{
		Calendar:            "primary",
		RecurringEventID:    "standup",
		TargetInstanceStart: "2026-09-28T10:00:00Z",
		NewRecurrence:       []string{"RRULE:FREQ=WEEKLY"},
	})
	if KindOf(err) != KindSeriesUpdate {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindSeriesUpdate)
	}
	if len(api.inserted) != 0 {
		t.Error("no successor may be created when the truncation fails")
	}
}

func TestUpdateFollowingInstancesCreateFailure(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.insertErr = errors.New("quota exceeded")

	_, err := mgr.UpdateFollowingInstances(context.Background(), SplitRequest{
		Calendar:            "primary",
		RecurringEventID:    "standup",
		TargetInstanceStart: "2026-09-28T10:00:00Z",
		NewRecurrence:       []string{"RRULE:FREQ=WEEKLY"},
	})
	if KindOf(err) != KindSeriesUpdate {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindSeriesUpdate)
	}
	if len(api.patches) != 1 {
		t.Error("the truncation should have been applied before the failing create")
	}
}

func TestUpdateFollowingInstancesRequiresRecurrence(t *testing.T) {
	api, mgr := newSeriesFixture()

	_, err := mgr.UpdateFollowingInstances(context.Background(), SplitRequest{
		Calendar:            "primary",
		RecurringEventID:    "standup",
		TargetInstanceStart: "2026-09-28T10:00:00Z",
	})
	if KindOf(err) != KindAmbiguousInput {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindAmbiguousInput)
	}
	if len(api.calls) != 0 {
		t.Errorf("input validation must not reach the provider, got calls %v", api.calls)
	}
}

func TestCancelInstanceByID(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.addEvent("alice@example.com", Event{
		ID:                "standup_20260914",
		Summary:           "Daily Standup",
		Start:             "2026-09-14T10:00:00Z",
		End:               "2026-09-14T10:30:00Z",
		RecurringEventID:  "standup",
		OriginalStartTime: "2026-09-14T10:00:00Z",
	})

	cancelled, err := mgr.CancelInstance(context.Background(), CancelRequest{
		Calendar:   "primary",
		InstanceID: "standup_20260914",
	})
	if err != nil {
		t.Fatalf("CancelInstance returned error: %v", err)
	}
	if cancelled.ID != "standup_20260914" {
		t.Errorf("cancelled %q, want the requested instance", cancelled.ID)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "alice@example.com/standup_20260914" {
		t.Errorf("deleted %v, want the single instance", api.deleted)
	}
}

func TestCancelInstanceRejectsPlainEvent(t *testing.T) {
	api, mgr := newSeriesFixture()

	_, err := mgr.CancelInstance(context.Background(), CancelRequest{
		Calendar:   "primary",
		InstanceID: "lunch",
	})
	if KindOf(err) != KindUnsupportedEventType {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindUnsupportedEventType)
	}
	if len(api.deleted) != 0 {
		t.Error("a plain event must not be deleted through instance cancellation")
	}
}

func TestCancelInstanceByOriginalStart(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.addInstance("alice@example.com", "standup", Event{
		ID:                "standup_20260914",
		Start:             "2026-09-14T10:00:00Z",
		OriginalStartTime: "2026-09-14T10:00:00Z",
	})
	api.addInstance("alice@example.com", "standup", Event{
		ID:                "standup_20260921",
		Start:             "2026-09-21T10:00:00Z",
		OriginalStartTime: "2026-09-21T10:00:00Z",
	})

	// The requested start names the same instant in a different offset.
	cancelled, err := mgr.CancelInstance(context.Background(), CancelRequest{
		Calendar:          "primary",
		RecurringEventID:  "standup",
		OriginalStartTime: "2026-09-21T12:00:00+02:00",
	})
	if err != nil {
		t.Fatalf("CancelInstance returned error: %v", err)
	}
	if cancelled.ID != "standup_20260921" {
		t.Errorf("cancelled %q, want standup_20260921", cancelled.ID)
	}
}

func TestCancelInstanceNoMatchingStart(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.addInstance("alice@example.com", "standup", Event{
		ID:                "standup_20260914",
		OriginalStartTime: "2026-09-14T10:00:00Z",
	})

	_, err := mgr.CancelInstance(context.Background(), CancelRequest{
		Calendar:          "primary",
		RecurringEventID:  "standup",
		OriginalStartTime: "2026-12-24T10:00:00Z",
	})
	if KindOf(err) != KindNotFound {
		t.Fatalf("error kind = %q, want %q", KindOf(err), KindNotFound)
	}
}

func TestCancelInstanceAmbiguousInput(t *testing.T) {
	tests := []struct {
		name string
		req  CancelRequest
	}{
		{name: "nothing given", req: CancelRequest{Calendar: "primary"}},
		{name: "series id without start", req: CancelRequest{Calendar: "primary", RecurringEventID: "standup"}},
		{name: "start without series id", req: CancelRequest{Calendar: "primary", OriginalStartTime: "2026-09-14T10:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, mgr := newSeriesFixture()
			_, err := mgr.CancelInstance(context.Background(), tt.req)
			if KindOf(err) != KindAmbiguousInput {
				t.Fatalf("error kind = %q, want %q", KindOf(err), KindAmbiguousInput)
			}
			if len(api.calls) != 0 {
				t.Errorf("ambiguous input must not reach the provider, got calls %v", api.calls)
			}
		})
	}
}

func TestListInstances(t *testing.T) {
	api, mgr := newSeriesFixture()
	api.addInstance("alice@example.com", "standup", Event{ID: "standup_20260907"})
	api.addInstance("alice@example.com", "standup", Event{ID: "standup_20260914"})

	instances, err := mgr.ListInstances(context.Background(), "primary", "standup", ListOptions{})
	if err != nil {
		t.Fatalf("ListInstances returned error: %v", err)
	}
	if len(instances) != 2 {
		t.Errorf("got %d instances, want 2", len(instances))
	}
}
