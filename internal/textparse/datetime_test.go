package textparse

import (
	"testing"
	"time"
)

func TestMatchDateNamedMonth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		month time.Month
		day   int
		year  int
	}{
		{name: "full month with year", input: "Join us on November 3, 2025 for trivia", month: time.November, day: 3, year: 2025},
		{name: "abbreviated month", input: "Concert Nov. 14, 2025 at the Hive", month: time.November, day: 14, year: 2025},
		{name: "ordinal day", input: "Gallery walk on March 21st, 2026", month: time.March, day: 21, year: 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := matchDate(tt.input)
			if !ok {
				t.Fatalf("expected a date match in %q", tt.input)
			}
			if m.Start.Month() != tt.month || m.Start.Day() != tt.day || m.Start.Year() != tt.year {
				t.Errorf("got %v, want %v %d %d", m.Start, tt.month, tt.day, tt.year)
			}
		})
	}
}

func TestMatchDateISO(t *testing.T) {
	m, ok := matchDate("Rescheduled to 2025-12-05 due to weather")
	if !ok {
		t.Fatal("expected ISO date match")
	}
	want := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
	if !m.Start.Equal(want) {
		t.Errorf("got %v, want %v", m.Start, want)
	}
}

func TestMatchDateNumeric(t *testing.T) {
	m, ok := matchDate("Fundraiser dinner 12/05/2025 at the Heartwood Center")
	if !ok {
		t.Fatal("expected numeric date match")
	}
	if m.Start.Month() != time.December || m.Start.Day() != 5 || m.Start.Year() != 2025 {
		t.Errorf("got %v", m.Start)
	}

	// Two-digit years expand to the 2000s.
	m, ok = matchDate("Dance 01/24/26 in the gym")
	if !ok || m.Start.Year() != 2026 {
		t.Errorf("two-digit year handling failed: ok=%v start=%v", ok, m.Start)
	}
}

func TestMatchDateDayRange(t *testing.T) {
	m, ok := matchDate("14-16 Winter Carnival with events all weekend, December 2025 schedule")
	if !ok {
		t.Fatal("expected day-range match")
	}
	if m.Start.Day() != 14 {
		t.Errorf("start day = %d, want 14", m.Start.Day())
	}
	if m.End.IsZero() || m.End.Day() != 16 {
		t.Errorf("end day = %v, want day 16", m.End)
	}
	if m.Start.Month() != time.December {
		t.Errorf("month should come from the named month in the text, got %v", m.Start.Month())
	}
}

func TestMatchDateLeadingDay(t *testing.T) {
	m, ok := matchDate("14 Live Music with The Sandpoint Trio. Start at 7:30 p.m. at the Tervan.")
	if !ok {
		t.Fatal("expected leading-day match")
	}
	if m.Start.Day() != 14 {
		t.Errorf("day = %d, want 14", m.Start.Day())
	}
	if !m.End.IsZero() {
		t.Errorf("single-day marker should not set an end date, got %v", m.End)
	}
}

func TestMatchDateNone(t *testing.T) {
	if _, ok := matchDate("Live music at the Tervan, details to follow"); ok {
		t.Error("did not expect a date match")
	}
}

func TestMatchTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
		wantEnd   string
	}{
		{name: "explicit pm range", input: "Open studio from 3-5:30 p.m. on Friday", wantStart: "15:00", wantEnd: "17:30"},
		{name: "en dash range", input: "Music 6–9 p.m. nightly", wantStart: "18:00", wantEnd: "21:00"},
		{name: "between phrasing", input: "Doors between 8:00-8:45 p.m. only", wantStart: "20:00", wantEnd: "20:45"},
		{name: "ambiguous start resolves to am", input: "Farmers market 9-1 p.m. at Farmin Park", wantStart: "09:00", wantEnd: "13:00"},
		{name: "both meridiems", input: "Workshop 10 a.m. to 2 p.m.", wantStart: "10:00", wantEnd: "14:00"},
		{name: "noon start reads forward", input: "Lunch concert from 12-1 p.m. at the park.", wantStart: "12:00", wantEnd: "13:00"},
		{name: "range ending at noon", input: "Pancake breakfast 10-12 p.m. at the hall", wantStart: "10:00", wantEnd: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := matchTime(tt.input)
			if !ok {
				t.Fatalf("expected a time match in %q", tt.input)
			}
			if m.Start != tt.wantStart || m.End != tt.wantEnd {
				t.Errorf("got %s-%s, want %s-%s", m.Start, m.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestMatchTimeSingle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "evening with minutes", input: "Start at 7:30 p.m. at the Tervan.", want: "19:30"},
		{name: "noon meridiem", input: "Lunch served at 12 p.m. sharp", want: "12:00"},
		{name: "midnight edge", input: "Countdown at 12 a.m. on the dot", want: "00:00"},
		{name: "noon word", input: "Parade starts at noon downtown", want: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := matchTime(tt.input)
			if !ok {
				t.Fatalf("expected a time match in %q", tt.input)
			}
			if m.Start != tt.want {
				t.Errorf("got %s, want %s", m.Start, tt.want)
			}
			if m.End != "" {
				t.Errorf("single time should not set an end, got %s", m.End)
			}
		})
	}
}

func TestMatchTimeNone(t *testing.T) {
	if _, ok := matchTime("An all-day affair with food and games"); ok {
		t.Error("did not expect a time match")
	}
}
