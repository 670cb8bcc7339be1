package calendar

import (
	"context"
	"fmt"
)

// fakeAPI is an in-memory API for exercising the resolver, aggregator, and
// series manager without a provider.
type fakeAPI struct {
	calendars []Calendar
	events    map[string][]Event // calendar id -> events
	instances map[string][]Event // calendar id + "/" + series id -> instances

	listEventsErr map[string]error // calendar id -> forced ListEvents failure
	patchErr      error
	insertErr     error
	deleteErr     error

	calls    []string
	patches  []EventPatch
	inserted []*EventDraft
	deleted  []string
}

func newFakeAPI(calendars ...Calendar) *fakeAPI {
	return &fakeAPI{
		calendars: calendars,
		events:    map[string][]Event{},
		instances: map[string][]Event{},
	}
}

func (f *fakeAPI) addEvent(calendarID string, ev Event) {
	ev.CalendarID = calendarID
	f.events[calendarID] = append(f.events[calendarID], ev)
}

func (f *fakeAPI) addInstance(calendarID, seriesID string, ev Event) {
	ev.CalendarID = calendarID
	ev.RecurringEventID = seriesID
	f.instances[calendarID+"/"+seriesID] = append(f.instances[calendarID+"/"+seriesID], ev)
}

func (f *fakeAPI) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) ListCalendars(ctx context.Context) ([]Calendar, error) {
	f.record("ListCalendars")
	return f.calendars, nil
}

func (f *fakeAPI) GetCalendar(ctx context.Context, calendarID string) (*Calendar, error) {
	f.record("GetCalendar %s", calendarID)
	for i := range f.calendars {
		cal := f.calendars[i]
		if cal.ID == calendarID || (calendarID == "primary" && cal.Primary) {
			return &cal, nil
		}
	}
	return nil, NotFoundf("get calendar %q: not found", calendarID)
}

func (f *fakeAPI) ListEvents(ctx context.Context, calendarID string, opts ListOptions) ([]Event, error) {
	f.record("ListEvents %s", calendarID)
	if err := f.listEventsErr[calendarID]; err != nil {
		return nil, err
	}
	return f.events[calendarID], nil
}

func (f *fakeAPI) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	f.record("GetEvent %s/%s", calendarID, eventID)
	for i := range f.events[calendarID] {
		if f.events[calendarID][i].ID == eventID {
			ev := f.events[calendarID][i]
			return &ev, nil
		}
	}
	return nil, NotFoundf("get event %q: not found", eventID)
}

func (f *fakeAPI) InsertEvent(ctx context.Context, calendarID string, draft *EventDraft) (*Event, error) {
	f.record("InsertEvent %s", calendarID)
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, draft)
	created := Event{
		ID:         fmt.Sprintf("created-%d", len(f.inserted)),
		CalendarID: calendarID,
		Summary:    draft.Summary,
		Start:      draft.Start,
		End:        draft.End,
		Recurrence: draft.Recurrence,
		Attendees:  draft.Attendees,
	}
	f.events[calendarID] = append(f.events[calendarID], created)
	return &created, nil
}

func (f *fakeAPI) PatchEvent(ctx context.Context, calendarID, eventID string, patch *EventPatch) (*Event, error) {
	f.record("PatchEvent %s/%s", calendarID, eventID)
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	f.patches = append(f.patches, *patch)
	for i := range f.events[calendarID] {
		ev := &f.events[calendarID][i]
		if ev.ID != eventID {
			continue
		}
		if patch.Summary != nil {
			ev.Summary = *patch.Summary
		}
		if patch.Recurrence != nil {
			ev.Recurrence = patch.Recurrence
		}
		out := *ev
		return &out, nil
	}
	return nil, NotFoundf("update event %q: not found", eventID)
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	f.record("DeleteEvent %s/%s", calendarID, eventID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, calendarID+"/"+eventID)
	return nil
}

func (f *fakeAPI) ListInstances(ctx context.Context, calendarID, eventID string, opts ListOptions) ([]Event, error) {
	f.record("ListInstances %s/%s", calendarID, eventID)
	return f.instances[calendarID+"/"+eventID], nil
}
