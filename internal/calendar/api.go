package calendar

import "context"

// ListOptions narrow an event listing. Zero values mean "provider default":
// an empty TimeMin lists from now, an empty TimeMax is unbounded.
type ListOptions struct {
	TimeMin    string
	TimeMax    string
	MaxResults int64
	Query      string
}

// API is the outbound surface the resolver, aggregator, and series manager
// depend on. *Client implements it against Google Calendar; tests supply
// fakes.
type API interface {
	ListCalendars(ctx context.Context) ([]Calendar, error)
	GetCalendar(ctx context.Context, calendarID string) (*Calendar, error)

	ListEvents(ctx context.Context, calendarID string, opts ListOptions) ([]Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error)
	InsertEvent(ctx context.Context, calendarID string, draft *EventDraft) (*Event, error)
	PatchEvent(ctx context.Context, calendarID, eventID string, patch *EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error

	ListInstances(ctx context.Context, calendarID, eventID string, opts ListOptions) ([]Event, error)
}
