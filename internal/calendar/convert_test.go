package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gcal "google.golang.org/api/calendar/v3"
)

func TestToCalendar(t *testing.T) {
	tests := []struct {
		name     string
		input    *gcal.CalendarListEntry
		expected Calendar
	}{
		{
			name: "primary calendar",
			input: &gcal.CalendarListEntry{
				Id:         "alice@example.com",
				Summary:    "Alice",
				Primary:    true,
				AccessRole: "owner",
				TimeZone:   "Europe/Berlin",
			},
			expected: Calendar{
				ID:         "alice@example.com",
				Summary:    "Alice",
				Primary:    true,
				AccessRole: "owner",
				TimeZone:   "Europe/Berlin",
			},
		},
		{
			name: "shared calendar",
			input: &gcal.CalendarListEntry{
				Id:         "team@group.calendar.google.com",
				Summary:    "Team",
				AccessRole: "reader",
			},
			expected: Calendar{
				ID:         "team@group.calendar.google.com",
				Summary:    "Team",
				AccessRole: "reader",
			},
		},
		{
			name:     "nil entry",
			input:    nil,
			expected: Calendar{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toCalendar(tt.input))
		})
	}
}

func TestFlattenEventTime(t *testing.T) {
	tests := []struct {
		name       string
		input      *gcal.EventDateTime
		wantValue  string
		wantAllDay bool
	}{
		{
			name:      "timed",
			input:     &gcal.EventDateTime{DateTime: "2026-09-07T10:00:00Z"},
			wantValue: "2026-09-07T10:00:00Z",
		},
		{
			name:       "all-day",
			input:      &gcal.EventDateTime{Date: "2026-09-07"},
			wantValue:  "2026-09-07",
			wantAllDay: true,
		},
		{
			name:      "timed wins over date",
			input:     &gcal.EventDateTime{DateTime: "2026-09-07T10:00:00Z", Date: "2026-09-07"},
			wantValue: "2026-09-07T10:00:00Z",
		},
		{
			name:  "nil",
			input: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, allDay := flattenEventTime(tt.input)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantAllDay, allDay)
		})
	}
}

func TestToProviderAttendees(t *testing.T) {
	attendees := toProviderAttendees([]string{"a@example.com", "b@example.com"})
	assert.Len(t, attendees, 2)
	assert.Equal(t, "a@example.com", attendees[0].Email)
	assert.Equal(t, "b@example.com", attendees[1].Email)

	assert.Nil(t, toProviderAttendees(nil))
}
