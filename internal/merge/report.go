package merge

import (
	"time"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

// Report is the read-only statistical summary of one merge run. It feeds
// the run summary and the persisted merge-report.json; nothing reads it
// back into the pipeline.
type Report struct {
	Timestamp         string         `json:"timestamp"`
	OriginalCount     int            `json:"original_count"`
	ProductionCount   int            `json:"production_count"`
	ReviewCount       int            `json:"review_count"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	Sources           map[string]int `json:"sources"`
	DateRange         DateRange      `json:"date_range"`
	Venues            map[string]int `json:"venues"`
	Tags              map[string]int `json:"tags"`
	FieldCompleteness map[string]int `json:"field_completeness"`
}

// DateRange bounds the output set.
type DateRange struct {
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

func buildReport(now time.Time, originalCount, duplicatesRemoved int, production, review []*event.Event) *Report {
	r := &Report{
		Timestamp:         now.Format(time.RFC3339),
		OriginalCount:     originalCount,
		ProductionCount:   len(production),
		ReviewCount:       len(review),
		DuplicatesRemoved: duplicatesRemoved,
		Sources:           make(map[string]int),
		Venues:            make(map[string]int),
		Tags:              make(map[string]int),
		FieldCompleteness: make(map[string]int),
	}

	var earliest, latest time.Time
	all := make([]*event.Event, 0, len(production)+len(review))
	all = append(all, production...)
	all = append(all, review...)

	for _, e := range all {
		if e.Source != "" {
			r.Sources[e.Source]++
		}
		if e.Venue != nil && e.Venue.Name != "" {
			r.Venues[e.Venue.Name]++
		}
		for _, tag := range e.Tags {
			r.Tags[tag]++
		}

		if when := e.When(); !when.IsZero() {
			if earliest.IsZero() || when.Before(earliest) {
				earliest = when
			}
			if latest.IsZero() || when.After(latest) {
				latest = when
			}
		}

		countField(r.FieldCompleteness, "description", e.Description != "")
		countField(r.FieldCompleteness, "startTime", e.StartTime != "")
		countField(r.FieldCompleteness, "endTime", e.EndTime != "")
		countField(r.FieldCompleteness, "venue", e.Venue != nil)
		countField(r.FieldCompleteness, "tags", len(e.Tags) > 0)
		countField(r.FieldCompleteness, "referenceUrl", e.ReferenceURL != "")
		countField(r.FieldCompleteness, "image", e.Image != "")
		countField(r.FieldCompleteness, "price", e.Price != "")
	}

	if !earliest.IsZero() {
		r.DateRange.Earliest = earliest.Format("2006-01-02")
		r.DateRange.Latest = latest.Format("2006-01-02")
	}

	return r
}

func countField(m map[string]int, field string, present bool) {
	if present {
		m[field]++
	}
}
