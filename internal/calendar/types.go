package calendar

import (
	"fmt"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

const dateOnlyLayout = "2006-01-02"

// Calendar describes one entry from the user's calendar list.
type Calendar struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	Primary    bool   `json:"primary"`
	AccessRole string `json:"accessRole,omitempty"`
	TimeZone   string `json:"timeZone,omitempty"`
}

// Event is the flattened wire shape returned by every tool. Start and End are
// either RFC3339 timestamps or date-only values (all-day), never both forms
// on one event.
type Event struct {
	ID          string     `json:"id"`
	CalendarID  string     `json:"calendarId"`
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	AllDay      bool       `json:"allDay,omitempty"`
	TimeZone    string     `json:"timeZone,omitempty"`
	Status      string     `json:"status,omitempty"`
	Attendees   []string   `json:"attendees,omitempty"`
	Recurrence  []string   `json:"recurrence,omitempty"`
	Reminders   *Reminders `json:"reminders,omitempty"`

	// Set only on materialized instances of a recurring series.
	RecurringEventID  string `json:"recurringEventId,omitempty"`
	OriginalStartTime string `json:"originalStartTime,omitempty"`
}

// Reminders mirrors the provider's reminder settings.
type Reminders struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides,omitempty"`
}

// ReminderOverride is a single non-default reminder.
type ReminderOverride struct {
	Method  string `json:"method"`
	Minutes int64  `json:"minutes"`
}

// EventDraft carries the fields for creating a new event.
type EventDraft struct {
	Summary     string
	Description string
	Location    string
	Start       string
	End         string
	TimeZone    string
	Attendees   []string
	Recurrence  []string
	Reminders   *Reminders
}

// EventPatch carries partial updates; nil pointers leave the provider value
// untouched.
type EventPatch struct {
	Summary     *string
	Description *string
	Location    *string
	Start       *string
	End         *string
	TimeZone    string
	Attendees   []string
	Recurrence  []string
	Reminders   *Reminders
}

// IsRecurring reports whether the event defines a recurring series.
func (e *Event) IsRecurring() bool {
	return len(e.Recurrence) > 0
}

// IsInstance reports whether the event is a materialized occurrence of a
// recurring series.
func (e *Event) IsInstance() bool {
	return e.RecurringEventID != ""
}

// StartTime parses the event start for ordering. Date-only values sort at
// midnight UTC. A zero time is returned for unparseable values so that
// malformed events sort first instead of failing the merge.
func (e *Event) StartTime() time.Time {
	t, _, _ := ParseEventTime(e.Start)
	return t
}

// ParseEventTime parses an RFC3339 timestamp or a date-only value. The
// dateOnly return value reports which form was parsed; err is non-nil when
// the value matches neither form.
func ParseEventTime(value string) (t time.Time, dateOnly bool, err error) {
	if value == "" {
		return time.Time{}, false, fmt.Errorf("empty time value")
	}
	if !strings.Contains(value, "T") {
		t, err = time.Parse(dateOnlyLayout, value)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("%q is neither RFC3339 nor a date", value)
		}
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%q is neither RFC3339 nor a date", value)
	}
	return t, false, nil
}

// IsDateOnly reports whether value is a date-only (all-day) time value.
func IsDateOnly(value string) bool {
	return value != "" && !strings.Contains(value, "T")
}

// eventDateTime builds the provider representation for a start/end value,
// choosing Date for all-day values and DateTime otherwise.
func eventDateTime(value, timeZone string) *calendar.EventDateTime {
	if IsDateOnly(value) {
		return &calendar.EventDateTime{Date: value}
	}
	return &calendar.EventDateTime{DateTime: value, TimeZone: timeZone}
}

// flattenEventTime collapses the provider's start/end structure into a single
// string, preferring the timed form.
func flattenEventTime(edt *calendar.EventDateTime) (value string, allDay bool) {
	if edt == nil {
		return "", false
	}
	if edt.DateTime != "" {
		return edt.DateTime, false
	}
	return edt.Date, edt.Date != ""
}

// toEvent converts a provider event to the wire shape, tagging it with the
// calendar it was read from.
func toEvent(calendarID string, ev *calendar.Event) Event {
	if ev == nil {
		return Event{CalendarID: calendarID}
	}

	out := Event{
		ID:               ev.Id,
		CalendarID:       calendarID,
		Summary:          ev.Summary,
		Description:      ev.Description,
		Location:         ev.Location,
		Status:           ev.Status,
		Recurrence:       ev.Recurrence,
		RecurringEventID: ev.RecurringEventId,
	}

	out.Start, out.AllDay = flattenEventTime(ev.Start)
	out.End, _ = flattenEventTime(ev.End)

	if ev.Start != nil && ev.Start.TimeZone != "" {
		out.TimeZone = ev.Start.TimeZone
	} else if ev.End != nil {
		out.TimeZone = ev.End.TimeZone
	}

	if ev.OriginalStartTime != nil {
		original, _ := flattenEventTime(ev.OriginalStartTime)
		out.OriginalStartTime = original
	}

	for _, att := range ev.Attendees {
		if att.Email != "" {
			out.Attendees = append(out.Attendees, att.Email)
		}
	}

	if ev.Reminders != nil {
		reminders := &Reminders{UseDefault: ev.Reminders.UseDefault}
		for _, o := range ev.Reminders.Overrides {
			reminders.Overrides = append(reminders.Overrides, ReminderOverride{
				Method:  o.Method,
				Minutes: o.Minutes,
			})
		}
		out.Reminders = reminders
	}

	return out
}

// toCalendar converts a provider calendar list entry to the wire shape.
func toCalendar(entry *calendar.CalendarListEntry) Calendar {
	if entry == nil {
		return Calendar{}
	}
	return Calendar{
		ID:         entry.Id,
		Summary:    entry.Summary,
		Primary:    entry.Primary,
		AccessRole: entry.AccessRole,
		TimeZone:   entry.TimeZone,
	}
}

// toProviderReminders converts wire reminders to the provider shape.
func toProviderReminders(r *Reminders) *calendar.EventReminders {
	if r == nil {
		return nil
	}
	out := &calendar.EventReminders{
		UseDefault:      r.UseDefault,
		ForceSendFields: []string{"UseDefault"},
	}
	for _, o := range r.Overrides {
		out.Overrides = append(out.Overrides, &calendar.EventReminder{
			Method:  o.Method,
			Minutes: o.Minutes,
		})
	}
	return out
}

// toProviderAttendees converts attendee emails to the provider shape.
func toProviderAttendees(emails []string) []*calendar.EventAttendee {
	var out []*calendar.EventAttendee
	for _, email := range emails {
		out = append(out, &calendar.EventAttendee{Email: email})
	}
	return out
}
