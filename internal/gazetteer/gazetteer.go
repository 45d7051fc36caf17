package gazetteer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandpointevents/event-pipeline/internal/event"
)

// Tables holds the lookup data the parser, normalizer and orchestrator are
// constructed with. Treated as immutable after construction; tests inject
// fixture tables instead of relying on package state.
type Tables struct {
	// Venues maps a lowercase venue-name substring to the enriched record
	// for that venue. Matching is substring containment on the lowercased
	// scraped name.
	Venues map[string]event.Venue `yaml:"venues"`

	// TagSynonyms maps scraped tag spellings to canonical lowercase tags.
	// Tags absent from this table are dropped, not errored.
	TagSynonyms map[string]string `yaml:"tag_synonyms"`

	// TagKeywords maps free-text keywords to the canonical tag the text
	// parser should assign when the keyword appears in an announcement.
	TagKeywords map[string]string `yaml:"tag_keywords"`

	// Sources maps scraped source labels to the canonical provenance label.
	Sources map[string]string `yaml:"sources"`

	// GenericLocations are terms that mark a venue name as too vague to be
	// a real venue ("downtown", "various locations", ...).
	GenericLocations []string `yaml:"generic_locations"`

	// DefaultReferenceURL supplies a reference URL for legacy sources whose
	// scraper predates the referenceUrl field.
	DefaultReferenceURL map[string]string `yaml:"default_reference_url"`

	// ImageExpected lists canonical sources whose records normally carry an
	// image; a missing image from these sources is a review signal.
	ImageExpected map[string]bool `yaml:"image_expected"`
}

// Load reads a YAML overlay and merges it over the built-in defaults.
// A missing file is not an error: the defaults are used as-is.
func Load(path string) (*Tables, error) {
	tables := Default()
	if path == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tables, nil
		}
		return nil, fmt.Errorf("reading gazetteer: %w", err)
	}
	var overlay Tables
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing gazetteer: %w", err)
	}
	tables.merge(&overlay)
	return tables, nil
}

func (t *Tables) merge(o *Tables) {
	for k, v := range o.Venues {
		t.Venues[strings.ToLower(k)] = v
	}
	for k, v := range o.TagSynonyms {
		t.TagSynonyms[strings.ToLower(k)] = v
	}
	for k, v := range o.TagKeywords {
		t.TagKeywords[strings.ToLower(k)] = v
	}
	for k, v := range o.Sources {
		t.Sources[strings.ToLower(k)] = v
	}
	t.GenericLocations = append(t.GenericLocations, o.GenericLocations...)
	for k, v := range o.DefaultReferenceURL {
		t.DefaultReferenceURL[k] = v
	}
	for k, v := range o.ImageExpected {
		t.ImageExpected[k] = v
	}
}

// LookupVenue finds a known venue whose key is contained in the scraped
// name, case-insensitively. Substring containment is deliberate: scraped
// names arrive as "at the Panida Theater downtown" and similar. Keys are
// scanned in sorted order so lookups are deterministic.
func (t *Tables) LookupVenue(name string) (event.Venue, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return event.Venue{}, false
	}
	for _, key := range t.VenueKeys() {
		if strings.Contains(lower, key) {
			return t.Venues[key], true
		}
	}
	return event.Venue{}, false
}

// VenueKeys returns the venue lookup keys in sorted order.
func (t *Tables) VenueKeys() []string {
	keys := make([]string, 0, len(t.Venues))
	for key := range t.Venues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CanonicalSource maps a scraped source label to its canonical form.
// Unrecognized labels pass through unchanged.
func (t *Tables) CanonicalSource(s string) string {
	if canonical, ok := t.Sources[strings.ToLower(strings.TrimSpace(s))]; ok {
		return canonical
	}
	return s
}

// CanonicalTag maps a tag through the synonym table to its canonical
// lowercase form. Returns false for tags with no canonical form.
func (t *Tables) CanonicalTag(tag string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := t.TagSynonyms[lower]; ok {
		return canonical, true
	}
	return "", false
}

// IsGenericLocation reports whether a venue name is too vague to identify a
// real venue and should be demoted to a location note.
func (t *Tables) IsGenericLocation(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range t.GenericLocations {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
