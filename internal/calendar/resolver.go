package calendar

import (
	"context"
	"strings"
)

// MatchRule records how a calendar query was matched, so callers can detect
// when a fuzzy match was applied.
type MatchRule string

const (
	// MatchPrimary means the query was empty or the literal "primary".
	MatchPrimary MatchRule = "primary"
	// MatchID means the query was an exact calendar id.
	MatchID MatchRule = "id"
	// MatchExactName means the query equaled a display name
	// (case-insensitive).
	MatchExactName MatchRule = "exactName"
	// MatchSubstring means the query was a substring of a display name.
	MatchSubstring MatchRule = "substring"
)

// ResolvedCalendar is the result of a calendar lookup.
type ResolvedCalendar struct {
	CalendarID string    `json:"calendarId"`
	Summary    string    `json:"summary"`
	MatchedBy  MatchRule `json:"matchedBy"`
}

// Resolver maps a free-text query to a concrete calendar. It is stateless and
// read-only; the provider stays the source of truth, so results are never
// memoized.
type Resolver struct {
	api API
}

// NewResolver creates a Resolver on top of an API.
func NewResolver(api API) *Resolver {
	return &Resolver{api: api}
}

// Resolve maps query to a calendar:
//
//   - empty or "primary" resolves to the credential's primary calendar
//   - an exact calendar id resolves directly, without listing
//   - otherwise the display names of all accessible calendars are matched
//     case-insensitively; an exact name match beats a substring match, the
//     primary calendar beats other calendars, and listing order breaks
//     remaining ties
//
// Zero name matches fail with a not_found error.
func (r *Resolver) Resolve(ctx context.Context, query string) (*ResolvedCalendar, error) {
	query = strings.TrimSpace(query)

	if query == "" || query == "primary" {
		cal, err := r.api.GetCalendar(ctx, "primary")
		if err != nil {
			return nil, err
		}
		return &ResolvedCalendar{CalendarID: cal.ID, Summary: cal.Summary, MatchedBy: MatchPrimary}, nil
	}

	// Probe for a direct id hit before paying for a full listing.
	if cal, err := r.api.GetCalendar(ctx, query); err == nil {
		return &ResolvedCalendar{CalendarID: cal.ID, Summary: cal.Summary, MatchedBy: MatchID}, nil
	} else if !IsNotFound(err) {
		return nil, err
	}

	calendars, err := r.api.ListCalendars(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var exact, substring []Calendar
	for _, cal := range calendars {
		name := strings.ToLower(strings.TrimSpace(cal.Summary))
		switch {
		case name == needle:
			exact = append(exact, cal)
		case strings.Contains(name, needle):
			substring = append(substring, cal)
		}
	}

	pick := func(matches []Calendar, rule MatchRule) *ResolvedCalendar {
		best := matches[0]
		for _, cal := range matches[1:] {
			if cal.Primary && !best.Primary {
				best = cal
			}
		}
		return &ResolvedCalendar{CalendarID: best.ID, Summary: best.Summary, MatchedBy: rule}
	}

	switch {
	case len(exact) > 0:
		return pick(exact, MatchExactName), nil
	case len(substring) > 0:
		return pick(substring, MatchSubstring), nil
	}
	return nil, NotFoundf("no calendar matches %q", query)
}
