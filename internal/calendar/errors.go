package calendar

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Kind classifies a calendar error for the tool-level failure payload.
type Kind string

const (
	// KindNotFound indicates a calendar, event, or instance is absent.
	KindNotFound Kind = "not_found"

	// KindAmbiguousInput indicates a lookup was underspecified.
	KindAmbiguousInput Kind = "ambiguous_input"

	// KindUnsupportedEventType indicates an operation is not valid for the
	// target event (e.g. splitting an all-day or non-recurring series).
	KindUnsupportedEventType Kind = "unsupported_event_type"

	// KindSeriesUpdate indicates a series split was aborted before the new
	// half was created.
	KindSeriesUpdate Kind = "series_update"

	// KindUpstream wraps any failure from the calendar provider, including
	// auth failures.
	KindUpstream Kind = "upstream"
)

// Error is a classified calendar error. Tool handlers translate it into the
// structured failure payload instead of raising across the tool boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundf creates a not_found error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// AmbiguousInputf creates an ambiguous_input error.
func AmbiguousInputf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAmbiguousInput, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedEventTypef creates an unsupported_event_type error.
func UnsupportedEventTypef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnsupportedEventType, Message: fmt.Sprintf(format, args...)}
}

// SeriesUpdateError wraps a failure that aborted a series split mid-way.
func SeriesUpdateError(message string, err error) *Error {
	return &Error{Kind: KindSeriesUpdate, Message: message, Err: err}
}

// KindOf extracts the Kind from err. Unclassified errors are reported as
// upstream failures.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUpstream
}

// IsNotFound reports whether err is classified as not_found.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// wrapUpstream translates a provider error into the taxonomy. HTTP 404
// becomes not_found; everything else stays an upstream failure.
func wrapUpstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 404 {
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s: not found", op), Err: err}
	}
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf("failed to %s", op), Err: err}
}
