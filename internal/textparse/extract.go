package textparse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

var (
	// "14 Live Music with The Sandpoint Trio." — day-of-month listing marker
	// followed by the title sentence.
	leadingDayTitlePattern = regexp.MustCompile(`^\d{1,2}(?:-\d{1,2})?\s+([A-Z][^.!\n]{3,119})`)
	// "Join us at the Panida for A Night of Jazz on Friday ..."
	joinUsTitlePattern = regexp.MustCompile(`(?i:join us) (?i:at|for)\s+.+?\s(?i:for)\s+([A-Z][^.!\n]{3,119}?)\s+on\s+(?:Mon|Tues|Wednes|Thurs|Fri|Satur|Sun)day`)
	firstSentencePattern = regexp.MustCompile(`^([A-Z][^.!\n]{3,119})[.!\n]`)
)

// extractTitle tries the title matchers in priority order. Returns the
// title, the matched span to strip from the description, and whether any
// matcher hit.
func extractTitle(text string) (string, string, bool) {
	if m := leadingDayTitlePattern.FindStringSubmatch(text); m != nil {
		return trimTitle(m[1]), m[0], true
	}
	if m := joinUsTitlePattern.FindStringSubmatch(text); m != nil {
		return trimTitle(m[1]), m[1], true
	}
	if m := firstSentencePattern.FindStringSubmatch(text); m != nil {
		return trimTitle(m[1]), m[1], true
	}
	return "", "", false
}

// trimTitle cuts trailing announcement boilerplate off an extracted title:
// anything from an embedded date or time phrase onward.
func trimTitle(s string) string {
	s = strings.TrimSpace(s)
	for _, pat := range []*regexp.Regexp{namedMonthPattern, timeRangePattern, singleTimePattern, numericPattern} {
		if loc := pat.FindStringIndex(s); loc != nil && loc[0] > 3 {
			s = strings.TrimSpace(s[:loc[0]])
		}
	}
	return strings.TrimRight(s, " ,;:-")
}

// Case-insensitivity is scoped to the keywords: the venue name itself must
// be capitalized or the match is rejected.
var venuePhrasePattern = regexp.MustCompile(`\b(?i:held at|at|near)\s+((?:[Tt]he\s+)?[A-Z][\w'&.-]*(?:\s+(?:[A-Z][\w'&.-]*|of|the|and|&)){0,5})`)

// matchVenuePhrase extracts a venue name from "at/near/held at <Name>"
// phrasing. Capped in length so garbled matches are rejected.
func matchVenuePhrase(text string) (string, bool) {
	m := venuePhrasePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	name = strings.TrimRight(name, " ,.;:")
	if len(name) < 3 || len(name) > 50 {
		return "", false
	}
	return name, true
}

var (
	dollarPattern   = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)
	freePattern     = regexp.MustCompile(`(?i)\b(free admission|free entry|free)\b`)
	donationPattern = regexp.MustCompile(`(?i)\b(suggested donation|donation|pay what you can)\b`)
)

// extractPrice finds an explicit dollar amount or a free/donation phrase.
func extractPrice(text string) (string, string, bool) {
	if m := dollarPattern.FindString(text); m != "" {
		return m, m, true
	}
	if m := donationPattern.FindString(text); m != "" {
		return "Donation", m, true
	}
	if m := freePattern.FindString(text); m != "" {
		return "Free", m, true
	}
	return "", "", false
}

var (
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

func extractContact(text string) *event.Contact {
	phone := phonePattern.FindString(text)
	email := emailPattern.FindString(text)
	if phone == "" && email == "" {
		return nil
	}
	return &event.Contact{Phone: strings.TrimSpace(phone), Email: email}
}

var urlPattern = regexp.MustCompile(`https?://[^\s)>\]"']+`)

var ticketURLMarkers = []string{"ticket", "eventbrite", "buy"}

// extractURLs records the first URL found; URLs that look transactional are
// additionally classified as the ticket link. URLs are never synthesized.
func extractURLs(text string, e *event.Event) {
	matches := urlPattern.FindAllString(text, -1)
	for _, raw := range matches {
		u := strings.TrimRight(raw, ".,;")
		if !event.ValidURL(u) {
			continue
		}
		if e.URL == "" {
			e.URL = u
		}
		lower := strings.ToLower(u)
		for _, marker := range ticketURLMarkers {
			if strings.Contains(lower, marker) && e.TicketURL == "" {
				e.TicketURL = u
			}
		}
	}
}

var (
	performerPattern = regexp.MustCompile(`\b(?i:featuring|feat\.|with)\s+((?:[A-Z][\w'.-]*|[Tt]he)(?:\s+(?:[A-Z][\w'.-]*|the|and|&)){0,6})`)
	organizerPattern = regexp.MustCompile(`\b(?i:hosted by|presented by|sponsored by)\s+((?:[A-Z][\w'.-]*|[Tt]he)(?:\s+(?:[A-Z][\w'.-]*|the|of|and|&)){0,6})`)
)

// extractPeople pulls performer and organizer names from "featuring/with"
// and "hosted by/presented by" clauses. Length caps reject garbled matches.
func extractPeople(text string, e *event.Event) {
	if m := performerPattern.FindStringSubmatch(text); m != nil {
		name := strings.TrimRight(strings.TrimSpace(m[1]), " ,.;:&")
		if len(name) >= 3 && len(name) <= 60 {
			e.Performer = name
		}
	}
	if m := organizerPattern.FindStringSubmatch(text); m != nil {
		name := strings.TrimRight(strings.TrimSpace(m[1]), " ,.;:&")
		if len(name) >= 3 && len(name) <= 60 {
			e.Organizer = name
		}
	}
}

func sortedTags(seen map[string]bool) []string {
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
