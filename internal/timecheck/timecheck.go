// Package timecheck validates time-format correctness and date/time internal
// consistency. It is advisory: invalid values are cleared and reported as
// issue strings, events are enriched rather than discarded, and only
// impossible combinations (end before start) count as hard errors.
package timecheck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

// timeFormatPattern accepts wall-clock HH:mm, hours 00-23, minutes 00-59.
var timeFormatPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeFormat reports whether s is a valid HH:mm wall-clock value.
func ValidTimeFormat(s string) bool {
	return timeFormatPattern.MatchString(s)
}

// clockMinutes converts a valid HH:mm value to minutes since midnight.
// Hours may be written with one digit ("9:00"), so values must never be
// compared as strings.
func clockMinutes(s string) int {
	h, m, _ := strings.Cut(s, ":")
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	return hour*60 + minute
}

// Result is the outcome of validating one event. The event is returned with
// invalid time fields cleared; Issues holds the human-readable findings.
type Result struct {
	Event       *event.Event
	Issues      []string
	HasErrors   bool
	HasWarnings bool
}

// BatchReport aggregates validation over a whole batch.
type BatchReport struct {
	Results            []Result
	EventsWithErrors   int
	EventsWithWarnings int
	CleanEvents        int
}

// Validate checks one event's time fields and date/time consistency. The
// event is modified in place: malformed HH:mm values are cleared. Nothing is
// ever discarded here; hard errors route the event to review instead.
func Validate(e *event.Event) Result {
	r := Result{Event: e}

	if e.StartTime != "" && !ValidTimeFormat(e.StartTime) {
		r.warn(fmt.Sprintf("Invalid startTime format: %q (cleared)", e.StartTime))
		e.StartTime = ""
	}
	if e.EndTime != "" && !ValidTimeFormat(e.EndTime) {
		r.warn(fmt.Sprintf("Invalid endTime format: %q (cleared)", e.EndTime))
		e.EndTime = ""
	}

	start := event.ParseWhen(e.StartDate)
	legacy := event.ParseWhen(e.Date)
	end := event.ParseWhen(e.EndDate)

	if !start.IsZero() && !legacy.IsZero() {
		if diff := start.Sub(legacy); diff > 24*time.Hour || diff < -24*time.Hour {
			r.warn(fmt.Sprintf("date and startDate disagree by more than 24h (%s vs %s)", e.Date, e.StartDate))
		}
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) && !event.SameDay(start, end) {
		r.fail(fmt.Sprintf("endDate %s is before startDate %s", e.EndDate, e.StartDate))
		e.Flag("endDate before startDate")
	}

	if e.StartTime != "" && e.EndTime != "" && clockMinutes(e.EndTime) <= clockMinutes(e.StartTime) {
		if end.IsZero() || event.SameDay(start, end) {
			r.warn(fmt.Sprintf("endTime %s is at or before startTime %s; possible multi-day event", e.EndTime, e.StartTime))
		}
	}

	// A UTC-midnight date alongside a real startTime usually means the
	// scraper parsed a bare date and the true time-of-day never made it
	// into the date field.
	if !start.IsZero() && start.UTC().Hour() == 0 && e.StartTime != "" && clockMinutes(e.StartTime) != 0 {
		r.warn(fmt.Sprintf("date carries midnight but startTime is %s; date may need timezone reconstruction", e.StartTime))
	}

	return r
}

// ValidateBatch validates every event and aggregates the counts. Events are
// never removed from the batch.
func ValidateBatch(events []*event.Event) BatchReport {
	report := BatchReport{Results: make([]Result, 0, len(events))}
	for _, e := range events {
		r := Validate(e)
		report.Results = append(report.Results, r)
		switch {
		case r.HasErrors:
			report.EventsWithErrors++
		case r.HasWarnings:
			report.EventsWithWarnings++
		default:
			report.CleanEvents++
		}
	}
	return report
}

func (r *Result) warn(issue string) {
	r.Issues = append(r.Issues, issue)
	r.HasWarnings = true
}

func (r *Result) fail(issue string) {
	r.Issues = append(r.Issues, issue)
	r.HasErrors = true
}

// eveningWords and morningWords are the time-of-day language the
// plausibility check looks for in descriptions.
var (
	eveningWords = []string{"evening", "tonight", "nightcap", "late night", "doors at"}
	morningWords = []string{"morning", "breakfast", "sunrise"}
)

// PlausibilityIssue cross-checks the literal UTC hour stored in the date
// field against time-of-day language in the description. Returns a finding
// when they contradict, such as an evening event dated at 9am.
func PlausibilityIssue(e *event.Event) (string, bool) {
	start := e.When()
	if start.IsZero() {
		return "", false
	}
	hour := start.UTC().Hour()
	if hour == 0 {
		// Midnight is a default-parse artifact, not a real claim.
		return "", false
	}
	lower := strings.ToLower(e.Description)
	for _, w := range eveningWords {
		if strings.Contains(lower, w) && hour < 12 {
			return fmt.Sprintf("description suggests an evening event but date hour is %02d:00", hour), true
		}
	}
	for _, w := range morningWords {
		if strings.Contains(lower, w) && hour >= 17 {
			return fmt.Sprintf("description suggests a morning event but date hour is %02d:00", hour), true
		}
	}
	return "", false
}

// MentionsTimeOfDay reports whether a description talks about clock time at
// all; used to flag records where a time was described but never extracted.
func MentionsTimeOfDay(description string) bool {
	lower := strings.ToLower(description)
	for _, marker := range []string{"a.m.", "p.m.", "am ", "pm ", "noon", "midnight", "o'clock", "doors at"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
