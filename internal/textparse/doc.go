// Package textparse converts unstructured event announcements into candidate
// Event records. Extraction runs as ordered matcher strategies per field
// (title, dates, times, venue, price, tags, contact, links, people),
// first-match-wins, so each matcher stays testable on its own. The parser
// does no I/O and is deterministic for a given input.
package textparse
