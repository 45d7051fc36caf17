package normalize

import (
	"strings"
	"testing"

	"github.com/sandpointevents/event-pipeline/internal/event"
	"github.com/sandpointevents/event-pipeline/internal/gazetteer"
)

func newTestNormalizer() *Normalizer {
	return New(gazetteer.Default())
}

func TestNormalizeCleanEventStaysClean(t *testing.T) {
	e := &event.Event{
		Title:       "Live Music at the Panida",
		Description: "Acoustic tunes with local favorites at the theater.",
		Date:        "2026-03-14",
		Source:      "sandpointonline",
		Venue:       &event.Venue{Name: "Panida Theater"},
		Tags:        []string{"live music"},
	}

	newTestNormalizer().Normalize(e)

	if e.NeedsReview {
		t.Fatalf("clean event flagged for review: %v", e.ReviewReasons)
	}
	if e.Source != "Sandpoint Online" {
		t.Errorf("Source = %q, want %q", e.Source, "Sandpoint Online")
	}
	if e.ReferenceURL != "https://sandpointonline.com/current/index.shtml" {
		t.Errorf("ReferenceURL = %q, want the source default", e.ReferenceURL)
	}
	if e.StartDate != "2026-03-14" {
		t.Errorf("StartDate = %q, want backfilled from date", e.StartDate)
	}
	if e.ID == "" {
		t.Error("Normalize did not assign an id")
	}
}

func TestBackfillDates(t *testing.T) {
	n := newTestNormalizer()

	t.Run("startDate mirrored to date", func(t *testing.T) {
		e := &event.Event{StartDate: "2026-03-14"}
		n.backfillDates(e)
		if e.Date != "2026-03-14" {
			t.Errorf("Date = %q, want %q", e.Date, "2026-03-14")
		}
	})

	t.Run("date mirrored to startDate", func(t *testing.T) {
		e := &event.Event{Date: "2026-03-14"}
		n.backfillDates(e)
		if e.StartDate != "2026-03-14" {
			t.Errorf("StartDate = %q, want %q", e.StartDate, "2026-03-14")
		}
	})

	t.Run("unparseable startDate flags review", func(t *testing.T) {
		e := &event.Event{StartDate: "sometime in spring"}
		n.backfillDates(e)
		if !e.NeedsReview {
			t.Error("unparseable startDate did not flag review")
		}
	})

	t.Run("unparseable endDate flags review", func(t *testing.T) {
		e := &event.Event{StartDate: "2026-03-14", EndDate: "whenever"}
		n.backfillDates(e)
		if !e.NeedsReview {
			t.Error("unparseable endDate did not flag review")
		}
	})
}

func TestDisambiguateVenue(t *testing.T) {
	n := newTestNormalizer()

	t.Run("generic name demoted to location note", func(t *testing.T) {
		e := &event.Event{Venue: &event.Venue{Name: "Downtown Sandpoint"}}
		n.disambiguateVenue(e)
		if e.Venue != nil {
			t.Fatalf("generic venue kept: %+v", e.Venue)
		}
		if e.LocationNote != "Downtown Sandpoint" {
			t.Errorf("LocationNote = %q, want %q", e.LocationNote, "Downtown Sandpoint")
		}
	})

	t.Run("known venue enriched from table", func(t *testing.T) {
		e := &event.Event{Venue: &event.Venue{Name: "the Panida Theater"}}
		n.disambiguateVenue(e)
		if e.Venue == nil {
			t.Fatal("known venue dropped")
		}
		if e.Venue.Address != "300 N First Ave" {
			t.Errorf("Address = %q, want table value", e.Venue.Address)
		}
		if e.Venue.Phone != "(208) 263-9191" {
			t.Errorf("Phone = %q, want table value", e.Venue.Phone)
		}
	})

	t.Run("scraped phone kept when table has none", func(t *testing.T) {
		e := &event.Event{Venue: &event.Venue{Name: "The Tervan", Phone: "(208) 555-1234"}}
		n.disambiguateVenue(e)
		if e.Venue.Phone != "(208) 555-1234" {
			t.Errorf("Phone = %q, want scraped value preserved", e.Venue.Phone)
		}
		if e.Venue.Address != "411 Cedar St" {
			t.Errorf("Address = %q, want table value", e.Venue.Address)
		}
	})

	t.Run("detached apostrophe repaired", func(t *testing.T) {
		e := &event.Event{Venue: &event.Venue{Name: "Joe ' s Garage"}}
		n.disambiguateVenue(e)
		if e.Venue == nil || e.Venue.Name != "Joe's Garage" {
			t.Errorf("Venue = %+v, want name %q", e.Venue, "Joe's Garage")
		}
	})

	t.Run("empty name drops venue", func(t *testing.T) {
		e := &event.Event{Venue: &event.Venue{Name: "   "}}
		n.disambiguateVenue(e)
		if e.Venue != nil {
			t.Errorf("empty venue kept: %+v", e.Venue)
		}
	})
}

func TestCanonicalizeTags(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"synonyms collapse", []string{"Live Music", "concert"}, []string{"music"}},
		{"unknown dropped", []string{"music", "zumba"}, []string{"music"}},
		{"sorted output", []string{"theatre", "benefit"}, []string{"fundraiser", "theater"}},
		{"empty stays empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &event.Event{Tags: tt.in}
			n.canonicalizeTags(e)
			if len(e.Tags) != len(tt.want) {
				t.Fatalf("Tags = %v, want %v", e.Tags, tt.want)
			}
			for i := range tt.want {
				if e.Tags[i] != tt.want[i] {
					t.Errorf("Tags = %v, want %v", e.Tags, tt.want)
					break
				}
			}
		})
	}
}

func TestScoreReview(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name       string
		event      *event.Event
		wantReason string
	}{
		{
			name:       "missing reference url with no source default",
			event:      &event.Event{Source: "Visit Sandpoint", Description: "A fine gathering for the whole neighborhood."},
			wantReason: "missing reference URL",
		},
		{
			name: "image expected from source",
			event: &event.Event{
				Source:       "Eventbrite",
				ReferenceURL: "https://eventbrite.com/e/1",
				Description:  "A fine gathering for the whole neighborhood.",
			},
			wantReason: "normally provides an image",
		},
		{
			name: "short description",
			event: &event.Event{
				Source:       "Visit Sandpoint",
				ReferenceURL: "https://example.com/a",
				Description:  "Fun.",
			},
			wantReason: "description missing or too short",
		},
		{
			name: "time mentioned but not extracted",
			event: &event.Event{
				Source:       "Visit Sandpoint",
				ReferenceURL: "https://example.com/a",
				Description:  "Doors at seven, show follows right after that.",
			},
			wantReason: "description mentions a time",
		},
		{
			name: "garbled doubled spacing",
			event: &event.Event{
				Source:       "Visit Sandpoint",
				ReferenceURL: "https://example.com/a",
				Description:  "A fine gathering  for the whole neighborhood.",
			},
			wantReason: "doubled spacing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n.scoreReview(tt.event)
			if !tt.event.NeedsReview {
				t.Fatal("event not flagged for review")
			}
			found := false
			for _, reason := range tt.event.ReviewReasons {
				if strings.Contains(reason, tt.wantReason) {
					found = true
				}
			}
			if !found {
				t.Errorf("ReviewReasons = %v, want one containing %q", tt.event.ReviewReasons, tt.wantReason)
			}
		})
	}
}

func TestScoreReviewFillsDefaultReferenceURL(t *testing.T) {
	e := &event.Event{
		Source:      "Sandpoint Online",
		Description: "A fine gathering for the whole neighborhood.",
	}
	newTestNormalizer().scoreReview(e)
	if e.ReferenceURL == "" {
		t.Fatal("default reference URL not filled in")
	}
	if e.NeedsReview {
		t.Errorf("event flagged despite source default: %v", e.ReviewReasons)
	}
}

func TestNormalizeNeverClearsReviewFlag(t *testing.T) {
	e := &event.Event{
		Title:         "Live Music at the Panida",
		Description:   "Acoustic tunes with local favorites at the theater.",
		Date:          "2026-03-14",
		Source:        "sandpointonline",
		NeedsReview:   true,
		ReviewReasons: []string{"scraper marked this manually"},
	}
	newTestNormalizer().Normalize(e)
	if !e.NeedsReview {
		t.Error("Normalize cleared a pre-set review flag")
	}
}

func TestDetectGarbledText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		garbled bool
	}{
		{"clean text", "Join us for an evening of acoustic music downtown.", false},
		{"repeated tokens", "The. The. concert starts soon after the doors open.", true},
		{"doubled spacing", "Concert starts  soon after doors", true},
		{"all caps run", "COMMUNITY ALERT TONIGHT EVERYONE please attend", true},
		{"ellipsis truncation", "The band will be playing all of your favorite songs from...", true},
		{"dangling conjunction", "Come down to the park for food trucks, live tunes and", true},
		{"short text never truncated", "Games and", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := detectGarbledText(tt.input)
			if got != tt.garbled {
				t.Errorf("detectGarbledText(%q) = %v, want %v", tt.input, got, tt.garbled)
			}
		})
	}
}
