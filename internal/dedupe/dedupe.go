// Package dedupe detects near-duplicate events scraped from different
// sources. Two records are duplicates only when their titles are close
// (token Jaccard >= 0.8), they fall on the exact same calendar day, and
// their venues are close (Jaccard >= 0.7) or either venue is absent. The
// same-day requirement is deliberately strict so genuinely recurring weekly
// events never collapse into one.
package dedupe

import (
	"strings"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

const (
	titleThreshold = 0.8
	venueThreshold = 0.7
)

// Discard records a losing duplicate for the merge report.
type Discard struct {
	LoserID     string `json:"loser_id"`
	LoserTitle  string `json:"loser_title"`
	LoserSource string `json:"loser_source"`
	LoserScore  int    `json:"loser_score"`
	WinnerID    string `json:"winner_id"`
	WinnerScore int    `json:"winner_score"`
}

// Resolver performs pairwise duplicate detection.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve deduplicates a batch. Each incoming event is compared against
// every already-accepted event; on a duplicate, the record with the higher
// completeness score survives in the accepted list at the position of the
// record it replaced, so relative order stays stable. O(n^2), which is fine
// for batches in the hundreds; bucket by day before calling this for
// anything much larger.
func (r *Resolver) Resolve(events []*event.Event) ([]*event.Event, []Discard) {
	accepted := make([]*event.Event, 0, len(events))
	var discards []Discard

	for _, candidate := range events {
		matched := false
		for i, existing := range accepted {
			if !isDuplicate(existing, candidate) {
				continue
			}
			matched = true
			existingScore := event.CompletenessScore(existing)
			candidateScore := event.CompletenessScore(candidate)
			if candidateScore > existingScore {
				accepted[i] = candidate
				discards = append(discards, Discard{
					LoserID:     existing.ID,
					LoserTitle:  existing.Title,
					LoserSource: existing.Source,
					LoserScore:  existingScore,
					WinnerID:    candidate.ID,
					WinnerScore: candidateScore,
				})
			} else {
				discards = append(discards, Discard{
					LoserID:     candidate.ID,
					LoserTitle:  candidate.Title,
					LoserSource: candidate.Source,
					LoserScore:  candidateScore,
					WinnerID:    existing.ID,
					WinnerScore: existingScore,
				})
			}
			break
		}
		if !matched {
			accepted = append(accepted, candidate)
		}
	}

	return accepted, discards
}

// isDuplicate applies the three-factor similarity test. All three factors
// must hold.
func isDuplicate(a, b *event.Event) bool {
	if jaccard(titleTokens(a.Title), titleTokens(b.Title)) < titleThreshold {
		return false
	}

	da, db := a.When(), b.When()
	if da.IsZero() || db.IsZero() || !event.SameDay(da, db) {
		return false
	}

	va, vb := venueName(a), venueName(b)
	if va == "" || vb == "" {
		// Absence of venue data never blocks a duplicate match.
		return true
	}
	return jaccard(titleTokens(va), titleTokens(vb)) >= venueThreshold
}

func venueName(e *event.Event) string {
	if e.Venue == nil {
		return ""
	}
	return e.Venue.Name
}

// titleTokens lowercases and splits on whitespace, stripping surrounding
// punctuation so "Night!" and "Night" compare equal.
func titleTokens(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,!?;:'\"()[]")
		// Apostrophe variants ("Connie's" vs "Connies") must compare equal.
		tok = strings.ReplaceAll(tok, "'", "")
		if tok != "" {
			tokens[tok] = true
		}
	}
	return tokens
}

// jaccard computes the token-set Jaccard index.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
