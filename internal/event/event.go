package event

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Event is the canonical record flowing through the pipeline. Raw scraped
// records are a loose superset/subset of this shape; the normalizer is
// responsible for bending them into it.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// StartDate is authoritative; Date is kept as a backward-compatible
	// mirror for consumers still reading the legacy field.
	Date      string `json:"date,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	// Wall-clock times in HH:mm, independent of the date fields. The date
	// fields may carry a placeholder midnight while the real time-of-day
	// lives here.
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	Venue        *Venue `json:"venue,omitempty"`
	LocationNote string `json:"locationNote,omitempty"`

	Tags []string `json:"tags,omitempty"`

	Source       string `json:"source,omitempty"`
	ReferenceURL string `json:"referenceUrl,omitempty"`
	URL          string `json:"url,omitempty"`
	TicketURL    string `json:"ticketUrl,omitempty"`
	Image        string `json:"image,omitempty"`

	Price     string   `json:"price,omitempty"`
	Contact   *Contact `json:"contact,omitempty"`
	Performer string   `json:"performer,omitempty"`
	Organizer string   `json:"organizer,omitempty"`

	NeedsReview   bool     `json:"needsReview,omitempty"`
	ReviewReasons []string `json:"reviewReasons,omitempty"`

	ScrapedAt string `json:"scrapedAt,omitempty"`
}

// Venue is a structured location. An event carries either a Venue or a
// free-text LocationNote, never a venue object built from vague text.
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Contact holds scraped contact details.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// StableID derives a deterministic id from the fields that identify an event
// across runs. Repeated runs over the same source data converge to the same
// id, which keeps the merge idempotent.
func StableID(source, referenceURL, date, title string) string {
	input := strings.ToLower(source + "|" + referenceURL + "|" + date + "|" + title)
	sum := md5.Sum([]byte(input))
	return fmt.Sprintf("%x", sum)[:8]
}

// NewFallbackID returns a random id for records with no identifying fields at
// all. Only used when source, url, date and title are all empty.
func NewFallbackID() string {
	return uuid.NewString()
}

var trailingMillisPattern = regexp.MustCompile(`[-_]\d{13}$`)

// autoGeneratedPrefixes are the placeholder id markers scrapers emit when
// they have no stable identity for a record.
var autoGeneratedPrefixes = []string{"auto-", "generated-", "temp-", "evt-"}

// IsAutoGeneratedID reports whether an id is a throwaway placeholder that
// should be replaced with a stable hash-derived id.
func IsAutoGeneratedID(id string) bool {
	if id == "" {
		return true
	}
	lower := strings.ToLower(id)
	for _, prefix := range autoGeneratedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	// Millisecond-timestamp suffixes are another scraper placeholder style.
	return trailingMillisPattern.MatchString(id)
}

// EnsureID assigns a stable id when the current one is a placeholder.
// Already-stable ids are left untouched so repeated runs are idempotent.
func (e *Event) EnsureID() {
	if !IsAutoGeneratedID(e.ID) {
		return
	}
	date := e.StartDate
	if date == "" {
		date = e.Date
	}
	if e.Source == "" && e.ReferenceURL == "" && date == "" && e.Title == "" {
		e.ID = NewFallbackID()
		return
	}
	e.ID = StableID(e.Source, e.ReferenceURL, date, e.Title)
}

// Flag marks the event for manual review with a reason. The flag is
// monotonic: once set by any stage it is never cleared by a later one.
func (e *Event) Flag(reason string) {
	e.NeedsReview = true
	for _, r := range e.ReviewReasons {
		if r == reason {
			return
		}
	}
	e.ReviewReasons = append(e.ReviewReasons, reason)
}

// ValidURL reports whether s is a well-formed absolute http(s) URL.
func ValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// officialSourceMarkers identify government or chamber sources whose records
// tend to be authoritative when breaking duplicate ties.
var officialSourceMarkers = []string{"city of", "county", "chamber"}

// CompletenessScore ranks an event by how much usable data it carries. Used
// to pick the surviving record when two events are detected as duplicates.
func CompletenessScore(e *Event) int {
	score := 0
	for _, v := range []string{e.Description, e.EndDate, e.EndTime, e.Price, e.Performer, e.Organizer, e.Image, e.URL, e.TicketURL, e.LocationNote} {
		if v != "" {
			score++
		}
	}
	if e.Venue != nil && e.Venue.Name != "" {
		score++
		if e.Venue.Address != "" {
			score++
		}
	}
	if e.Contact != nil && (e.Contact.Phone != "" || e.Contact.Email != "") {
		score++
	}
	if len(e.Tags) > 0 {
		score++
	}
	// New-schema fields weigh more: a record carrying them came through a
	// scraper that extracts real structure.
	if e.StartTime != "" {
		score += 2
	}
	if e.ReferenceURL != "" {
		score += 2
	}
	if e.NeedsReview {
		score -= 2
	} else {
		score += 3
	}
	lower := strings.ToLower(e.Source)
	for _, marker := range officialSourceMarkers {
		if strings.Contains(lower, marker) {
			score++
			break
		}
	}
	return score
}
