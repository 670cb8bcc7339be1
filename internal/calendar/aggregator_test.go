package calendar

import (
	"context"
	"errors"
	"testing"
)

func TestAggregatorSingleCalendar(t *testing.T) {
	api := newFakeAPI(testCalendars()...)
	api.addEvent("family@group.calendar.google.com", Event{ID: "ev1", Summary: "Dinner", Start: "2026-09-01T18:00:00Z"})
	agg := NewAggregator(api, NewResolver(api), nil)

	result, err := agg.ListEvents(context.Background(), ListRequest{Calendar: "Family"})
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].ID != "ev1" {
		t.Errorf("got events %+v, want the single family event", result.Events)
	}
	if len(result.Errors) != 0 {
		t.Errorf("got unexpected per-calendar errors: %+v", result.Errors)
	}
}

func TestAggregatorAllCalendars(t *testing.T) {
	api := newFakeAPI(testCalendars()...)
	api.addEvent("alice@example.com", Event{ID: "a", Start: "2026-09-01T09:00:00Z"})
	api.addEvent("family@group.calendar.google.com", Event{ID: "b", Start: "2026-09-01T08:00:00Z"})
	agg := NewAggregator(api, NewResolver(api), nil)

	result, err := agg.ListEvents(context.Background(), ListRequest{AllCalendars: true})
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(result.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(result.Events))
	}
	// Merged output is ordered by start time regardless of calendar order.
	if result.Events[0].ID != "b" || result.Events[1].ID != "a" {
		t.Errorf("got order [%s %s], want [b a]", result.Events[0].ID, result.Events[1].ID)
	}
}

func TestAggregatorPartialFailure(t *testing.T) {
	api := newFakeAPI(testCalendars()...)
	api.addEvent("alice@example.com", Event{ID: "a", Start: "2026-09-01T09:00:00Z"})
	api.listEventsErr = map[string]error{
		"work@group.calendar.google.com": errors.New("backend unavailable"),
	}
	agg := NewAggregator(api, NewResolver(api), nil)

	result, err := agg.ListEvents(context.Background(), ListRequest{AllCalendars: true})
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].ID != "a" {
		t.Errorf("got events %+v, want the surviving calendar's event", result.Events)
	}
	if len(result.Errors) != 1 || result.Errors[0].CalendarID != "work@group.calendar.google.com" {
		t.Fatalf("got errors %+v, want one note for the failing calendar", result.Errors)
	}
}

func TestAggregatorResolutionFailure(t *testing.T) {
	api := newFakeAPI(testCalendars()...)
	agg := NewAggregator(api, NewResolver(api), nil)

	_, err := agg.ListEvents(context.Background(), ListRequest{Calendar: "no such calendar"})
	if err == nil {
		t.Fatal("expected an error when the single calendar cannot be resolved")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("error kind = %q, want %q", KindOf(err), KindNotFound)
	}
}

func TestSortEvents(t *testing.T) {
	events := []Event{
		{ID: "z", CalendarID: "b", Start: "2026-09-01T09:00:00Z"},
		{ID: "y", CalendarID: "a", Start: "2026-09-01T09:00:00Z"},
		{ID: "x", CalendarID: "a", Start: "2026-09-01T08:00:00Z"},
		{ID: "w", CalendarID: "a", Start: "2026-09-01T09:00:00Z"},
		{ID: "allday", CalendarID: "a", Start: "2026-09-01"},
	}

	SortEvents(events)

	var got []string
	for _, ev := range events {
		got = append(got, ev.ID)
	}
	// Midnight (the all-day event) sorts first, then 08:00, then the 09:00
	// group ordered by calendar id and event id.
	want := []string{"allday", "x", "w", "y", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}
