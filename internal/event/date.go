package event

import (
	"sort"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing the loosely-formatted date
// strings scrapers produce. RFC3339 first since normalized records carry it.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseWhen attempts to parse a scraped date string into a time.Time.
// Returns the zero value when nothing matches.
func ParseWhen(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// When returns the event's effective start, preferring StartDate over the
// legacy Date mirror. Zero when neither parses.
func (e *Event) When() time.Time {
	if t := ParseWhen(e.StartDate); !t.IsZero() {
		return t
	}
	return ParseWhen(e.Date)
}

// SameDay reports whether two times fall on the exact same UTC calendar day.
// Intentionally strict: recurring weekly events must not collapse together.
func SameDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.YearDay() == bu.YearDay()
}

// SortByStart orders events ascending by effective start date, with title
// and id tiebreaks so repeated runs emit byte-identical output.
func SortByStart(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, tj := events[i].When(), events[j].When()
		if !ti.Equal(tj) {
			// Unparseable dates sort last.
			if ti.IsZero() {
				return false
			}
			if tj.IsZero() {
				return true
			}
			return ti.Before(tj)
		}
		if events[i].Title != events[j].Title {
			return strings.ToLower(events[i].Title) < strings.ToLower(events[j].Title)
		}
		return events[i].ID < events[j].ID
	})
}
