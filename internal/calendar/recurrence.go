package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

const rrulePrefix = "RRULE:"

// TerminateBefore rewrites a recurrence rule set so that no occurrence at or
// after cutoff remains: every RRULE line gets an UNTIL bound strictly before
// cutoff and any COUNT cap is dropped (UNTIL and COUNT are mutually
// exclusive). EXRULE, EXDATE, and RDATE lines pass through verbatim.
//
// The function is pure; it never talks to the provider, so the boundary math
// is unit-testable on its own.
func TerminateBefore(rules []string, cutoff time.Time) ([]string, error) {
	if cutoff.IsZero() {
		return nil, fmt.Errorf("cutoff must be set")
	}

	// UNTIL is inclusive per RFC 5545, so step one second back to exclude
	// the cutoff instant itself.
	until := cutoff.Add(-time.Second).UTC()

	out := make([]string, 0, len(rules))
	rewrote := false
	for _, line := range rules {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToUpper(trimmed), rrulePrefix) {
			out = append(out, line)
			continue
		}

		opt, err := rrule.StrToROption(trimmed[len(rrulePrefix):])
		if err != nil {
			return nil, fmt.Errorf("parse recurrence rule %q: %w", line, err)
		}
		opt.Count = 0
		opt.Until = until
		if _, err := rrule.NewRRule(*opt); err != nil {
			return nil, fmt.Errorf("rebuild recurrence rule %q: %w", line, err)
		}
		out = append(out, rrulePrefix+opt.RRuleString())
		rewrote = true
	}

	if !rewrote {
		return nil, fmt.Errorf("recurrence set has no RRULE to terminate")
	}
	return out, nil
}
