package timecheck

import (
	"strings"
	"testing"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

func TestValidTimeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"09:00", true},
		{"7:30", true},
		{"00:00", true},
		{"23:59", true},
		{"25:00", false},
		{"12:60", false},
		{"19", false},
		{"7pm", false},
		{"noon", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidTimeFormat(tt.input); got != tt.want {
			t.Errorf("ValidTimeFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateClearsInvalidTimes(t *testing.T) {
	e := &event.Event{
		Title:     "Evening Show",
		StartDate: "2026-03-14",
		StartTime: "25:00",
		EndTime:   "7pm",
	}

	r := Validate(e)

	if e.StartTime != "" {
		t.Errorf("StartTime = %q, want cleared", e.StartTime)
	}
	if e.EndTime != "" {
		t.Errorf("EndTime = %q, want cleared", e.EndTime)
	}
	if r.HasErrors {
		t.Error("format problems must be warnings, not errors")
	}
	if !r.HasWarnings {
		t.Error("cleared times did not produce warnings")
	}
	if !issueContaining(r.Issues, `Invalid startTime format: "25:00"`) {
		t.Errorf("Issues = %v, want an invalid-startTime finding", r.Issues)
	}
	if !issueContaining(r.Issues, `Invalid endTime format: "7pm"`) {
		t.Errorf("Issues = %v, want an invalid-endTime finding", r.Issues)
	}
}

func TestValidateDateDisagreement(t *testing.T) {
	e := &event.Event{
		Date:      "2026-03-01",
		StartDate: "2026-03-05",
	}

	r := Validate(e)

	if r.HasErrors {
		t.Error("date disagreement must be a warning, not an error")
	}
	if !issueContaining(r.Issues, "disagree by more than 24h") {
		t.Errorf("Issues = %v, want a date-disagreement finding", r.Issues)
	}
}

func TestValidateEndBeforeStart(t *testing.T) {
	e := &event.Event{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-10",
	}

	r := Validate(e)

	if !r.HasErrors {
		t.Fatal("endDate before startDate must be a hard error")
	}
	if !e.NeedsReview {
		t.Error("hard error did not flag the event for review")
	}
	if !issueContaining(r.Issues, "before startDate") {
		t.Errorf("Issues = %v, want an end-before-start finding", r.Issues)
	}
}

func TestValidateEndTimeBeforeStartTime(t *testing.T) {
	e := &event.Event{
		StartDate: "2026-03-14",
		StartTime: "21:00",
		EndTime:   "01:00",
	}

	r := Validate(e)

	if r.HasErrors {
		t.Error("inverted times on one day must stay a warning")
	}
	if !issueContaining(r.Issues, "possible multi-day event") {
		t.Errorf("Issues = %v, want a possible-multi-day finding", r.Issues)
	}
}

func TestValidateSingleDigitHoursCompareNumerically(t *testing.T) {
	// "9:00" sorts after "10:30" as a string; the comparison must use
	// minutes since midnight, not lexicographic order.
	e := &event.Event{
		StartDate: "2026-03-14",
		StartTime: "9:00",
		EndTime:   "10:30",
	}

	r := Validate(e)

	if issueContaining(r.Issues, "possible multi-day event") {
		t.Errorf("Issues = %v, forward range misread as inverted", r.Issues)
	}

	e = &event.Event{
		StartDate: "2026-03-14",
		StartTime: "10:30",
		EndTime:   "9:00",
	}
	if r := Validate(e); !issueContaining(r.Issues, "possible multi-day event") {
		t.Errorf("Issues = %v, inverted range not detected", r.Issues)
	}
}

func TestValidateEndTimeNextDayIsFine(t *testing.T) {
	e := &event.Event{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-15",
		StartTime: "21:00",
		EndTime:   "01:00",
	}

	r := Validate(e)

	if issueContaining(r.Issues, "possible multi-day event") {
		t.Errorf("Issues = %v, multi-day event should not warn on inverted clock times", r.Issues)
	}
}

func TestValidateMidnightDateWithRealStartTime(t *testing.T) {
	e := &event.Event{
		StartDate: "2026-03-14",
		StartTime: "19:00",
	}

	r := Validate(e)

	if !issueContaining(r.Issues, "timezone reconstruction") {
		t.Errorf("Issues = %v, want a timezone-reconstruction finding", r.Issues)
	}

	e = &event.Event{
		StartDate: "2026-03-14T19:00:00Z",
		StartTime: "19:00",
	}
	if r := Validate(e); issueContaining(r.Issues, "timezone reconstruction") {
		t.Errorf("Issues = %v, non-midnight date should not warn", r.Issues)
	}

	// "0:00" is the same midnight reading as "00:00".
	e = &event.Event{
		StartDate: "2026-03-14",
		StartTime: "0:00",
	}
	if r := Validate(e); issueContaining(r.Issues, "timezone reconstruction") {
		t.Errorf("Issues = %v, single-digit midnight should not warn", r.Issues)
	}
}

func TestValidateBatch(t *testing.T) {
	events := []*event.Event{
		{StartDate: "2026-03-14", EndDate: "2026-03-10"}, // hard error
		{StartDate: "2026-03-14", StartTime: "25:00"},    // warning
		{StartDate: "2026-03-14"},                        // clean
	}

	report := ValidateBatch(events)

	if len(report.Results) != 3 {
		t.Fatalf("Results = %d, want 3", len(report.Results))
	}
	if report.EventsWithErrors != 1 {
		t.Errorf("EventsWithErrors = %d, want 1", report.EventsWithErrors)
	}
	if report.EventsWithWarnings != 1 {
		t.Errorf("EventsWithWarnings = %d, want 1", report.EventsWithWarnings)
	}
	if report.CleanEvents != 1 {
		t.Errorf("CleanEvents = %d, want 1", report.CleanEvents)
	}
}

func TestPlausibilityIssue(t *testing.T) {
	tests := []struct {
		name        string
		event       *event.Event
		wantFinding bool
	}{
		{
			name: "evening language with morning hour",
			event: &event.Event{
				StartDate:   "2026-03-14T09:00:00Z",
				Description: "An evening of wine and song.",
			},
			wantFinding: true,
		},
		{
			name: "morning language with evening hour",
			event: &event.Event{
				StartDate:   "2026-03-14T18:00:00Z",
				Description: "Pancake breakfast for the fire district.",
			},
			wantFinding: true,
		},
		{
			name: "midnight hour is a parse artifact",
			event: &event.Event{
				StartDate:   "2026-03-14",
				Description: "An evening of wine and song.",
			},
			wantFinding: false,
		},
		{
			name: "consistent evening event",
			event: &event.Event{
				StartDate:   "2026-03-14T19:00:00Z",
				Description: "An evening of wine and song.",
			},
			wantFinding: false,
		},
		{
			name:        "no date",
			event:       &event.Event{Description: "An evening of wine and song."},
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := PlausibilityIssue(tt.event)
			if got != tt.wantFinding {
				t.Errorf("PlausibilityIssue = %v, want %v", got, tt.wantFinding)
			}
		})
	}
}

func TestMentionsTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Doors at 7 for the show", true},
		{"Starts at 7 p.m. sharp", true},
		{"Lunch served from noon", true},
		{"A potluck in the park", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := MentionsTimeOfDay(tt.input); got != tt.want {
			t.Errorf("MentionsTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func issueContaining(issues []string, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}
	return false
}
