package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/teambition/rrule-go"
)

// occurrences expands an RRULE line for assertions, anchored at dtstart.
func occurrences(t *testing.T, line string, dtstart time.Time) []time.Time {
	t.Helper()
	opt, err := rrule.StrToROption(strings.TrimPrefix(line, "RRULE:"))
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	opt.Dtstart = dtstart
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		t.Fatalf("build %q: %v", line, err)
	}
	return rule.All()
}

func TestTerminateBefore(t *testing.T) {
	dtstart := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC) // a Monday
	cutoff := time.Date(2026, 9, 28, 10, 0, 0, 0, time.UTC) // the 4th occurrence

	out, err := TerminateBefore([]string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}, cutoff)
	if err != nil {
		t.Fatalf("TerminateBefore returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d rules, want 1", len(out))
	}

	occs := occurrences(t, out[0], dtstart)
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences, want 3 (before the cutoff)", len(occs))
	}
	for _, occ := range occs {
		if !occ.Before(cutoff) {
			t.Errorf("occurrence %v is not strictly before cutoff %v", occ, cutoff)
		}
	}
}

func TestTerminateBeforeDropsCount(t *testing.T) {
	cutoff := time.Date(2026, 9, 21, 10, 0, 0, 0, time.UTC)

	out, err := TerminateBefore([]string{"RRULE:FREQ=WEEKLY;COUNT=10"}, cutoff)
	if err != nil {
		t.Fatalf("TerminateBefore returned error: %v", err)
	}
	if strings.Contains(out[0], "COUNT") {
		t.Errorf("rewritten rule %q still carries COUNT", out[0])
	}
	if !strings.Contains(out[0], "UNTIL") {
		t.Errorf("rewritten rule %q carries no UNTIL", out[0])
	}
}

func TestTerminateBeforePassesExdateThrough(t *testing.T) {
	cutoff := time.Date(2026, 9, 21, 10, 0, 0, 0, time.UTC)
	rules := []string{
		"EXDATE;TZID=Europe/Berlin:20260914T100000",
		"RRULE:FREQ=WEEKLY",
	}

	out, err := TerminateBefore(rules, cutoff)
	if err != nil {
		t.Fatalf("TerminateBefore returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d rules, want 2", len(out))
	}
	if out[0] != rules[0] {
		t.Errorf("EXDATE line changed: got %q, want %q", out[0], rules[0])
	}
}

func TestTerminateBeforeErrors(t *testing.T) {
	tests := []struct {
		name   string
		rules  []string
		cutoff time.Time
	}{
		{
			name:   "zero cutoff",
			rules:  []string{"RRULE:FREQ=DAILY"},
			cutoff: time.Time{},
		},
		{
			name:   "no RRULE line",
			rules:  []string{"EXDATE:20260914T100000Z"},
			cutoff: time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "unparseable rule",
			rules:  []string{"RRULE:FREQ=NEVERLY"},
			cutoff: time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TerminateBefore(tt.rules, tt.cutoff); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
