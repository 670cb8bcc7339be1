package calendar

import (
	"context"
	"log/slog"
	"sort"

	"gcalmcp/internal/logging"
)

// ListRequest describes a (possibly multi-calendar) event listing.
type ListRequest struct {
	// Calendar is a resolver query; ignored when AllCalendars is set.
	Calendar     string
	TimeMin      string
	TimeMax      string
	MaxResults   int64
	Query        string
	AllCalendars bool
}

// CalendarError is a per-calendar failure note in a best-effort aggregation.
type CalendarError struct {
	CalendarID string `json:"calendarId"`
	Error      string `json:"error"`
}

// ListResult is the merged outcome of a fan-out listing.
type ListResult struct {
	Events []Event         `json:"events"`
	Errors []CalendarError `json:"errors,omitempty"`
}

// Aggregator fans event listings out across one or many calendars, flattens
// recurring events into concrete instances, and merges the results into one
// deterministic order.
type Aggregator struct {
	api      API
	resolver *Resolver
	logger   *slog.Logger
}

// NewAggregator creates an Aggregator. A nil logger falls back to
// slog.Default().
func NewAggregator(api API, resolver *Resolver, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{api: api, resolver: resolver, logger: logger}
}

// ListEvents resolves the target calendar set and lists each calendar with
// MaxResults as a per-calendar cap, so a busy calendar cannot starve later
// ones. A failing calendar does not abort the request: its results are
// omitted and a failure note is recorded instead. Resolution failures of the
// single-calendar form are still returned as errors, since there is nothing
// to aggregate.
func (a *Aggregator) ListEvents(ctx context.Context, req ListRequest) (*ListResult, error) {
	var targets []Calendar
	if req.AllCalendars {
		calendars, err := a.api.ListCalendars(ctx)
		if err != nil {
			return nil, err
		}
		targets = calendars
	} else {
		resolved, err := a.resolver.Resolve(ctx, req.Calendar)
		if err != nil {
			return nil, err
		}
		targets = []Calendar{{ID: resolved.CalendarID, Summary: resolved.Summary}}
	}

	opts := ListOptions{
		TimeMin:    req.TimeMin,
		TimeMax:    req.TimeMax,
		MaxResults: req.MaxResults,
		Query:      req.Query,
	}

	result := &ListResult{Events: []Event{}}
	for _, cal := range targets {
		events, err := a.api.ListEvents(ctx, cal.ID, opts)
		if err != nil {
			a.logger.Warn("calendar listing failed, continuing fan-out",
				slog.String("calendar_id", cal.ID),
				logging.Err(err))
			result.Errors = append(result.Errors, CalendarError{
				CalendarID: cal.ID,
				Error:      err.Error(),
			})
			continue
		}
		result.Events = append(result.Events, events...)
	}

	SortEvents(result.Events)
	return result, nil
}

// SortEvents orders events ascending by start time, breaking ties by
// calendarId and then id, both lexicographic, so merged listings are
// deterministic.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		si, sj := events[i].StartTime(), events[j].StartTime()
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		if events[i].CalendarID != events[j].CalendarID {
			return events[i].CalendarID < events[j].CalendarID
		}
		return events[i].ID < events[j].ID
	})
}
