package merge

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sandpointevents/event-pipeline/internal/dedupe"
	"github.com/sandpointevents/event-pipeline/internal/event"
	"github.com/sandpointevents/event-pipeline/internal/gazetteer"
	"github.com/sandpointevents/event-pipeline/internal/logger"
	"github.com/sandpointevents/event-pipeline/internal/normalize"
	"github.com/sandpointevents/event-pipeline/internal/storage"
	"github.com/sandpointevents/event-pipeline/internal/timecheck"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

// Result is the outcome of one merge run.
type Result struct {
	Production []*event.Event
	Review     []*event.Event
	Discards   []dedupe.Discard
	Report     *Report
}

// Orchestrator runs the full consolidation pipeline: load, dedupe,
// normalize, filter, clean, sort, partition, validate, persist.
type Orchestrator struct {
	tables     *gazetteer.Tables
	store      *storage.Store
	windowDays int
	counters   *logger.Counters

	// now is injectable so tests can pin the publishable window.
	now func() time.Time
}

// New creates an Orchestrator. windowDays bounds how far ahead a
// publishable event may start.
func New(tables *gazetteer.Tables, store *storage.Store, windowDays int) *Orchestrator {
	return &Orchestrator{
		tables:     tables,
		store:      store,
		windowDays: windowDays,
		counters:   logger.NewCounters(),
		now:        time.Now,
	}
}

// MergeAll executes the pipeline end to end and persists the outputs. A
// malformed source file or record never aborts the run; any error returned
// here is an environment failure and the caller should surface it loudly.
func (o *Orchestrator) MergeAll() (*Result, error) {
	raw, err := o.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}
	originalCount := len(raw)
	o.counters.Add("events.loaded", int64(originalCount))
	logger.Info("loaded raw events", logger.Fields{"count": originalCount})

	unique, discards := dedupe.New().Resolve(raw)
	o.counters.Add("events.duplicates_removed", int64(len(discards)))
	logger.Info("resolved duplicates", logger.Fields{
		"unique":  len(unique),
		"removed": len(discards),
	})

	normalizer := normalize.New(o.tables)
	for _, e := range unique {
		normalizer.Normalize(e)
	}

	kept := o.filter(unique)
	o.counters.Add("events.filtered_out", int64(len(unique)-len(kept)))

	event.SortByStart(kept)

	production, review := partition(kept)

	// Final safety net: upstream stages may reintroduce time values, so the
	// production set is validated once more immediately before persistence.
	production, review = o.finalValidate(production, review)

	event.SortByStart(production)
	event.SortByStart(review)

	report := buildReport(o.now().UTC(), originalCount, len(discards), production, review)

	if err := o.store.WriteOutputs(production, review); err != nil {
		return nil, fmt.Errorf("writing outputs: %w", err)
	}
	if err := o.store.WriteReport(report); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	logger.Info("merge complete", logger.Fields{
		"production": len(production),
		"review":     len(review),
		"duplicates": len(discards),
	})

	return &Result{
		Production: production,
		Review:     review,
		Discards:   discards,
		Report:     report,
	}, nil
}

// filter drops events that can never be published: no title, no parseable
// date, or outside the publishable window. It also clamps runaway text and
// deletes malformed URL fields rather than keeping broken links. URLs are
// never fabricated.
func (o *Orchestrator) filter(events []*event.Event) []*event.Event {
	today := startOfDay(o.now().UTC())
	horizon := today.AddDate(0, 0, o.windowDays)

	kept := make([]*event.Event, 0, len(events))
	for _, e := range events {
		if e.Title == "" || (e.Title == "Untitled Event" && e.Description == "") {
			logger.Debug("dropping event without usable title", logger.Fields{"id": e.ID})
			continue
		}
		when := e.When()
		if when.IsZero() {
			logger.Debug("dropping event without parseable date", logger.Fields{"id": e.ID, "title": e.Title})
			continue
		}
		if when.Before(today) || when.After(horizon) {
			logger.Debug("dropping event outside window", logger.Fields{"id": e.ID, "date": e.StartDate})
			continue
		}

		e.Title = clampText(e.Title, maxTitleLen)
		e.Description = clampText(e.Description, maxDescriptionLen)
		for _, field := range []*string{&e.URL, &e.TicketURL, &e.ReferenceURL, &e.Image} {
			if *field != "" && !event.ValidURL(*field) {
				*field = ""
			}
		}
		if len(e.Tags) == 0 {
			e.Tags = nil
		}

		kept = append(kept, e)
	}
	return kept
}

// partition splits events into the production set and the review queue.
func partition(events []*event.Event) (production, review []*event.Event) {
	for _, e := range events {
		if e.NeedsReview {
			review = append(review, e)
		} else {
			production = append(production, e)
		}
	}
	return production, review
}

// finalValidate runs the time validator over the production set. Events the
// validator marks with hard errors move to the review queue; warnings stay
// in production with their time fields repaired.
func (o *Orchestrator) finalValidate(production, review []*event.Event) ([]*event.Event, []*event.Event) {
	report := timecheck.ValidateBatch(production)
	stillProduction := make([]*event.Event, 0, len(production))
	for _, r := range report.Results {
		if r.HasErrors {
			for _, issue := range r.Issues {
				r.Event.Flag(issue)
			}
			review = append(review, r.Event)
			continue
		}
		stillProduction = append(stillProduction, r.Event)
	}
	if report.EventsWithErrors > 0 || report.EventsWithWarnings > 0 {
		logger.Warn("final validation findings", logger.Fields{
			"errors":   report.EventsWithErrors,
			"warnings": report.EventsWithWarnings,
			"clean":    report.CleanEvents,
		})
	}
	return stillProduction, review
}

// clampText cuts runaway text to at most max bytes, backing up to a rune
// boundary so the output stays valid UTF-8.
func clampText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
