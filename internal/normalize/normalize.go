// Package normalize repairs schema drift in scraped event records: source
// canonicalization, date backfill, venue/location disambiguation, tag
// canonicalization, stable id assignment and review-requirement scoring.
// Corrections run in a fixed order because later steps read fields earlier
// steps fix. The review flag is monotonic: normalization may set it, never
// clear it.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sandpointevents/event-pipeline/internal/event"
	"github.com/sandpointevents/event-pipeline/internal/gazetteer"
	"github.com/sandpointevents/event-pipeline/internal/textparse"
	"github.com/sandpointevents/event-pipeline/internal/timecheck"
)

// Normalizer applies the correction pipeline using injected lookup tables.
type Normalizer struct {
	tables *gazetteer.Tables
}

// New creates a Normalizer with the given tables.
func New(tables *gazetteer.Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Normalize repairs one event in place and returns it. Field-name aliases
// (snake_case variants) are already resolved by the storage decode shim
// before records reach this point.
func (n *Normalizer) Normalize(e *event.Event) *event.Event {
	n.canonicalizeSource(e)
	n.backfillDates(e)
	n.disambiguateVenue(e)
	n.canonicalizeTags(e)
	e.EnsureID()
	n.scoreReview(e)
	n.cleanupText(e)
	return e
}

func (n *Normalizer) canonicalizeSource(e *event.Event) {
	e.Source = n.tables.CanonicalSource(e.Source)
}

// backfillDates mirrors date and startDate onto each other and validates
// that whatever is present actually parses. Unparseable dates flag the
// record instead of dropping it.
func (n *Normalizer) backfillDates(e *event.Event) {
	if e.StartDate == "" && e.Date != "" {
		e.StartDate = e.Date
	}
	if e.Date == "" && e.StartDate != "" {
		e.Date = e.StartDate
	}
	if e.StartDate != "" && event.ParseWhen(e.StartDate).IsZero() {
		e.Flag(fmt.Sprintf("unparseable startDate %q", e.StartDate))
	}
	if e.EndDate != "" && event.ParseWhen(e.EndDate).IsZero() {
		e.Flag(fmt.Sprintf("unparseable endDate %q", e.EndDate))
	}
}

// disambiguateVenue demotes vague venue names ("downtown", "various
// locations") to a location note, cleans cosmetic issues in real names, and
// enriches from the known-venue table. Known-venue data always wins over
// partial scraped fields.
func (n *Normalizer) disambiguateVenue(e *event.Event) {
	if e.Venue == nil {
		return
	}
	name := textparse.CollapseWhitespace(e.Venue.Name)
	if name == "" {
		e.Venue = nil
		return
	}
	if n.tables.IsGenericLocation(name) {
		e.LocationNote = name
		e.Venue = nil
		return
	}
	e.Venue.Name = cleanVenueName(name)
	if known, ok := n.tables.LookupVenue(e.Venue.Name); ok {
		merged := known
		// Keep scraped extras only where the table has no opinion.
		if merged.Phone == "" {
			merged.Phone = e.Venue.Phone
		}
		if merged.Website == "" {
			merged.Website = e.Venue.Website
		}
		e.Venue = &merged
	}
}

var apostropheSpacing = strings.NewReplacer(" 's", "'s", "' s", "'s", " ' ", "'")

func cleanVenueName(name string) string {
	return textparse.CollapseWhitespace(apostropheSpacing.Replace(name))
}

// canonicalizeTags maps every tag through the synonym table. Unrecognized
// tags are dropped, not errored.
func (n *Normalizer) canonicalizeTags(e *event.Event) {
	if len(e.Tags) == 0 {
		return
	}
	seen := make(map[string]bool, len(e.Tags))
	for _, tag := range e.Tags {
		if canonical, ok := n.tables.CanonicalTag(tag); ok {
			seen[canonical] = true
		}
	}
	e.Tags = e.Tags[:0]
	for tag := range seen {
		e.Tags = append(e.Tags, tag)
	}
	sort.Strings(e.Tags)
}

// scoreReview evaluates the independent quality signals and flags the event
// when any fire. An already-set flag is never cleared.
func (n *Normalizer) scoreReview(e *event.Event) {
	if e.ReferenceURL == "" {
		if fallback, ok := n.tables.DefaultReferenceURL[e.Source]; ok {
			e.ReferenceURL = fallback
		} else {
			e.Flag("missing reference URL")
		}
	}
	if e.Image == "" && n.tables.ImageExpected[e.Source] {
		e.Flag(fmt.Sprintf("source %s normally provides an image", e.Source))
	}
	if len(strings.TrimSpace(e.Description)) < 20 {
		e.Flag("description missing or too short")
	}
	if issue, ok := timecheck.PlausibilityIssue(e); ok {
		e.Flag(issue)
	}
	if e.StartTime == "" && timecheck.MentionsTimeOfDay(e.Description) {
		e.Flag("description mentions a time but none was extracted")
	}
	if reason, ok := detectGarbledText(e.Description); ok {
		e.Flag(reason)
	}
}

func (n *Normalizer) cleanupText(e *event.Event) {
	e.Title = textparse.CleanText(e.Title)
	e.Description = textparse.CleanText(e.Description)
	e.Performer = textparse.CollapseWhitespace(e.Performer)
	e.Organizer = textparse.CollapseWhitespace(e.Organizer)
	if e.LocationNote != "" {
		e.LocationNote = textparse.CollapseWhitespace(e.LocationNote)
	}
}
