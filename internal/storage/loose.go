package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

// looseEvent accepts the field spellings scrapers actually produce: legacy
// snake_case aliases next to the canonical camelCase names, and a venue that
// may be either a bare string or a structured object. DecodeLoose resolves
// all of that once, so downstream stages only ever see the canonical shape.
type looseEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Date           string `json:"date"`
	StartDate      string `json:"startDate"`
	StartDateSnake string `json:"start_date"`
	EndDate        string `json:"endDate"`
	EndDateSnake   string `json:"end_date"`

	StartTime      string `json:"startTime"`
	StartTimeSnake string `json:"start_time"`
	EndTime        string `json:"endTime"`
	EndTimeSnake   string `json:"end_time"`

	Venue    json.RawMessage `json:"venue"`
	Location json.RawMessage `json:"location"`

	LocationNote      string `json:"locationNote"`
	LocationNoteSnake string `json:"location_note"`

	Tags []string `json:"tags"`

	Source            string `json:"source"`
	ReferenceURL      string `json:"referenceUrl"`
	ReferenceURLSnake string `json:"reference_url"`
	URL               string `json:"url"`
	TicketURL         string `json:"ticketUrl"`
	TicketURLSnake    string `json:"ticket_url"`
	Image             string `json:"image"`
	ImageURL          string `json:"imageUrl"`
	ImageURLSnake     string `json:"image_url"`

	Price     string          `json:"price"`
	Contact   *event.Contact  `json:"contact"`
	Performer string          `json:"performer"`
	Organizer string          `json:"organizer"`

	NeedsReview      bool `json:"needsReview"`
	NeedsReviewSnake bool `json:"needs_review"`

	ScrapedAt      string `json:"scrapedAt"`
	ScrapedAtSnake string `json:"scraped_at"`
}

// DecodeLoose parses one raw record into the canonical Event shape,
// resolving snake_case aliases and the string-or-object venue union.
func DecodeLoose(raw json.RawMessage) (*event.Event, error) {
	var loose looseEvent
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	e := &event.Event{
		ID:           loose.ID,
		Title:        loose.Title,
		Description:  loose.Description,
		Date:         loose.Date,
		StartDate:    coalesce(loose.StartDate, loose.StartDateSnake),
		EndDate:      coalesce(loose.EndDate, loose.EndDateSnake),
		StartTime:    coalesce(loose.StartTime, loose.StartTimeSnake),
		EndTime:      coalesce(loose.EndTime, loose.EndTimeSnake),
		LocationNote: coalesce(loose.LocationNote, loose.LocationNoteSnake),
		Tags:         loose.Tags,
		Source:       loose.Source,
		ReferenceURL: coalesce(loose.ReferenceURL, loose.ReferenceURLSnake),
		URL:          loose.URL,
		TicketURL:    coalesce(loose.TicketURL, loose.TicketURLSnake),
		Image:        coalesce(loose.Image, loose.ImageURL, loose.ImageURLSnake),
		Price:        loose.Price,
		Contact:      loose.Contact,
		Performer:    loose.Performer,
		Organizer:    loose.Organizer,
		NeedsReview:  loose.NeedsReview || loose.NeedsReviewSnake,
		ScrapedAt:    coalesce(loose.ScrapedAt, loose.ScrapedAtSnake),
	}

	venue, note, err := decodeVenue(loose.Venue)
	if err != nil {
		return nil, err
	}
	if venue == nil && note == "" && len(loose.Location) > 0 {
		venue, note, err = decodeVenue(loose.Location)
		if err != nil {
			return nil, err
		}
	}
	e.Venue = venue
	if e.LocationNote == "" {
		e.LocationNote = note
	}

	return e, nil
}

// decodeVenue resolves the string-or-object venue duck typing. A string
// venue is promoted to a structured object here; the normalizer decides
// later whether the name is too generic to keep.
func decodeVenue(raw json.RawMessage) (*event.Venue, string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, "", nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if name == "" {
			return nil, "", nil
		}
		return &event.Venue{Name: name}, "", nil
	}
	var venue event.Venue
	if err := json.Unmarshal(raw, &venue); err != nil {
		return nil, "", fmt.Errorf("decoding venue: %w", err)
	}
	if venue.Name == "" && venue.Address == "" {
		return nil, "", nil
	}
	return &venue, "", nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
