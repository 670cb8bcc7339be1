package calendar

import (
	"context"
	"time"

	"gcalmcp/internal/instrumentation"
)

// instrumentedAPI decorates an API with per-operation metrics and client
// spans. Operation names follow the provider's method naming.
type instrumentedAPI struct {
	api     API
	metrics *instrumentation.Metrics
}

// NewInstrumentedAPI wraps api so every provider call is timed, counted,
// and traced. A nil metrics value still produces spans.
func NewInstrumentedAPI(api API, metrics *instrumentation.Metrics) API {
	return &instrumentedAPI{api: api, metrics: metrics}
}

func (i *instrumentedAPI) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := instrumentation.StartCalendarSpan(ctx, operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	i.metrics.RecordCalendarOperation(ctx, operation, status, duration)
	return err
}

func (i *instrumentedAPI) ListCalendars(ctx context.Context) ([]Calendar, error) {
	var out []Calendar
	err := i.observe(ctx, "calendars.list", func(ctx context.Context) error {
		var err error
		out, err = i.api.ListCalendars(ctx)
		return err
	})
	return out, err
}

func (i *instrumentedAPI) GetCalendar(ctx context.Context, calendarID string) (*Calendar, error) {
	var out *Calendar
	err := i.observe(ctx, "calendars.get", func(ctx context.Context) error {
		var err error
		out, err = i.api.GetCalendar(ctx, calendarID)
		return err
	})
	return out, err
}

func (i *instrumentedAPI) ListEvents(ctx context.Context, calendarID string, opts ListOptions) ([]Event, error) {
	var out []Event
	err := i.observe(ctx, "events.list", func(ctx context.Context) error {
		var err error
		out, err = i.api.ListEvents(ctx, calendarID, opts)
		return err
	})
	return out, err
}

func (i *instrumentedAPI) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	var out *Event
	err := i.observe(ctx, "events.get", func(ctx context.Context) error {
		var err error
		out, err = i.api.GetEvent(ctx, calendarID, eventID)
		return err
	})
	return out, err
}

func (i *instrumentedAPI) InsertEvent(ctx context.Context, calendarID string, draft *EventDraft) (*Event, error) {
	var out *Event
	err := i.observe(ctx, "events.insert", func(ctx context.Context) error {
		var err error
		out, err = i.api.InsertEvent(ctx, calendarID, draft)
		return err
	})
	return out, err
}

func (i *instrumentedAPI) PatchEvent(ctx context.Context, calendarID, eventID string, patch *EventPatch) (*Event, error) {
	var out *Event
	err := i.observe(ctx, "events.patch", func(ctx context.Context) error {
		var err error
		out, err = i.api.PatchEvent(ctx, calendarID, eventID, patch)
		return err
	})
	return out, err
}

func (i *instrumentedAPI) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	return i.observe(ctx, "events.delete", func(ctx context.Context) error {
		return i.api.DeleteEvent(ctx, calendarID, eventID)
	})
}

func (i *instrumentedAPI) ListInstances(ctx context.Context, calendarID, eventID string, opts ListOptions) ([]Event, error) {
	var out []Event
	err := i.observe(ctx, "events.instances", func(ctx context.Context) error {
		var err error
		out, err = i.api.ListInstances(ctx, calendarID, eventID, opts)
		return err
	})
	return out, err
}
