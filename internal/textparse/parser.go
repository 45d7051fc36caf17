package textparse

import (
	"fmt"
	"strings"

	"github.com/sandpointevents/event-pipeline/internal/event"
	"github.com/sandpointevents/event-pipeline/internal/gazetteer"
)

// Options carries per-record context supplied by the calling scraper.
type Options struct {
	Source       string
	ReferenceURL string
	// GlobalIndex distinguishes records within one scrape batch when the
	// text itself carries no identity (no date, no title).
	GlobalIndex int
}

// Parser converts free-text event announcements into candidate Event
// records. It performs no I/O; the same input always yields the same output.
type Parser struct {
	tables *gazetteer.Tables
}

// New creates a Parser using the given lookup tables.
func New(tables *gazetteer.Tables) *Parser {
	return &Parser{tables: tables}
}

// Parse extracts a structured candidate event from one announcement
// paragraph. Ambiguous or failed extractions flag the record for review
// rather than erroring; the only error is empty input.
func (p *Parser) Parse(raw string, opts Options) (*event.Event, error) {
	text := strings.TrimSpace(StripHTML(raw))
	if text == "" {
		return nil, fmt.Errorf("empty announcement text")
	}

	e := &event.Event{
		Source:       p.tables.CanonicalSource(opts.Source),
		ReferenceURL: opts.ReferenceURL,
	}

	// consumed collects the substrings already absorbed into structured
	// fields so the description pass can strip them.
	var consumed []string

	title, span, ok := extractTitle(text)
	if ok {
		e.Title = title
		consumed = append(consumed, span)
	} else {
		e.Title = "Untitled Event"
		e.Flag("could not extract title")
	}

	if d, dok := matchDate(text); dok {
		e.StartDate = d.Start.Format("2006-01-02T15:04:05Z07:00")
		e.Date = e.StartDate
		if !d.End.IsZero() {
			e.EndDate = d.End.Format("2006-01-02T15:04:05Z07:00")
		}
		consumed = append(consumed, d.Span)
	} else {
		e.Flag("no date found")
	}

	if tm, tok := matchTime(text); tok {
		e.StartTime = tm.Start
		e.EndTime = tm.End
		consumed = append(consumed, tm.Span)
	}

	p.extractVenue(text, e)
	if e.Venue == nil && e.LocationNote == "" {
		e.Flag("no venue or location found")
	}

	if price, span, pok := extractPrice(text); pok {
		e.Price = price
		consumed = append(consumed, span)
	}

	e.Tags = p.extractTags(text)

	if contact := extractContact(text); contact != nil {
		e.Contact = contact
	}

	extractURLs(text, e)
	extractPeople(text, e)

	e.Description = buildDescription(text, consumed)
	// Measured against the whole announcement: a short remainder after
	// extraction is normal, a short announcement is a thin record.
	if len(text) < 50 {
		e.Flag("announcement text too short")
	}
	if containsHedgeWord(text) {
		e.Flag("tentative wording in announcement")
	}

	// Stable id so re-parsing the same announcement converges. The batch
	// index only participates when no date anchors the record.
	dateKey := e.StartDate
	if dateKey == "" {
		dateKey = fmt.Sprintf("idx-%d", opts.GlobalIndex)
	}
	e.ID = event.StableID(e.Source, e.ReferenceURL, dateKey, e.Title)

	return e, nil
}

// extractVenue checks the gazetteer first, then the "at/near/held at"
// patterns, falling back to a generic location note.
func (p *Parser) extractVenue(text string, e *event.Event) {
	lower := strings.ToLower(text)
	for _, key := range p.tables.VenueKeys() {
		if strings.Contains(lower, key) {
			v := p.tables.Venues[key]
			e.Venue = &v
			return
		}
	}

	name, ok := matchVenuePhrase(text)
	if !ok {
		return
	}
	if p.tables.IsGenericLocation(name) {
		e.LocationNote = name
		return
	}
	e.Venue = &event.Venue{Name: name}
}

// extractTags maps announcement keywords to canonical tags. Every parsed
// event gets the community tag as a baseline.
func (p *Parser) extractTags(text string) []string {
	lower := strings.ToLower(text)
	seen := map[string]bool{"community": true}
	for keyword, tag := range p.tables.TagKeywords {
		if strings.Contains(lower, keyword) {
			seen[tag] = true
		}
	}
	return sortedTags(seen)
}

var hedgeWords = []string{"tbd", "to be determined", "maybe", "tentative", "tentatively"}

func containsHedgeWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range hedgeWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
